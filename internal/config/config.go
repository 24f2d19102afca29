package config

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/straye-as/cpq-api/internal/secrets"
	"go.uber.org/zap"
)

// Config holds all application configuration
type Config struct {
	App          AppConfig
	Database     DatabaseConfig
	Storage      StorageConfig
	Secrets      SecretsConfig
	Logging      LoggingConfig
	Server       ServerConfig
	CORS         CORSConfig
	Security     SecurityConfig
	RateLimit    RateLimitConfig
	Mail         MailConfig
	Links        LinksConfig
	Company      CompanyConfig
	PDF          PDFConfig
	Jobs         JobsConfig
	Integrations IntegrationsConfig
}

type AppConfig struct {
	Name        string
	Environment string
	Port        int
	// BaseURL overrides cloud hostname detection for links embedded in emails
	BaseURL string
}

type DatabaseConfig struct {
	// Driver is "postgres" or "sqlite"
	Driver          string
	URL             string
	Host            string
	Port            int
	Name            string
	User            string
	Password        string
	SSLMode         string
	SQLitePath      string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int
}

type StorageConfig struct {
	// Mode is "local" or "azure"
	Mode                  string
	DocumentsDir          string
	UploadsDir            string
	CloudConnectionString string
	CloudContainer        string
	MaxUploadSizeMB       int64
}

type SecretsConfig struct {
	// Source determines where secrets are loaded from: "environment", "vault", or "auto"
	Source       string
	KeyVaultName string
	CacheEnabled bool
	CacheTTL     int // seconds
}

type LoggingConfig struct {
	Level  string
	Format string
}

type ServerConfig struct {
	ReadTimeout    int
	WriteTimeout   int
	RequestTimeout int
	EnableSwagger  bool
}

// CORSConfig holds CORS configuration
type CORSConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	// MaxAge is the max age (in seconds) for preflight cache
	MaxAge int
}

// SecurityConfig holds security header configuration
type SecurityConfig struct {
	EnableHSTS            bool
	HSTSMaxAge            int
	HSTSIncludeSubdomains bool
	HSTSPreload           bool
	ContentSecurityPolicy string
	// FrameOptions sets the X-Frame-Options header (DENY, SAMEORIGIN, or empty to disable)
	FrameOptions       string
	ContentTypeNosniff bool
	XSSProtection      string
	ReferrerPolicy     string
	PermissionsPolicy  string
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	Enabled bool
	// RequestsPerMinute is the rate limit per client IP
	RequestsPerMinute int
	// LinkRequestsPerMinute limits each client IP per endpoint on the routes opened from emailed links
	LinkRequestsPerMinute int
	WhitelistIPs          []string
	// WhitelistPaths bypass rate limiting; a trailing /* matches a prefix
	WhitelistPaths []string
}

// MailConfig selects and configures the outgoing mail transport
type MailConfig struct {
	// Provider is "smtp", "ses" or "log"
	Provider  string
	Host      string
	Port      int
	Username  string
	Password  string
	From      string
	FromName  string
	SESRegion string
}

// LinksConfig configures signed action links embedded in notification emails
type LinksConfig struct {
	Secret   string
	TTLHours int
}

// CompanyConfig is the static company identity rendered into documents
type CompanyConfig struct {
	Name         string
	Address      string
	City         string
	Email        string
	Phone        string
	Website      string
	SupportHours string
}

type PDFConfig struct {
	WkhtmltopdfPath string
	// DisableHTMLEngine forces the layout engine, used when no wkhtmltopdf binary is installed
	DisableHTMLEngine bool
}

type JobsConfig struct {
	DocumentIntegrityEnabled bool
	DocumentIntegrityCron    string
	// Timeout is the maximum run time of a single job execution (seconds)
	Timeout int
}

type IntegrationsConfig struct {
	HubSpotToken          string
	GoogleCredentialsPath string
}

// ConnectionString builds PostgreSQL connection string
func (d *DatabaseConfig) ConnectionString() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
}

// ReadTimeoutDuration returns read timeout as duration
func (s *ServerConfig) ReadTimeoutDuration() time.Duration {
	return time.Duration(s.ReadTimeout) * time.Second
}

// WriteTimeoutDuration returns write timeout as duration
func (s *ServerConfig) WriteTimeoutDuration() time.Duration {
	return time.Duration(s.WriteTimeout) * time.Second
}

// RequestTimeoutDuration returns request timeout as duration
func (s *ServerConfig) RequestTimeoutDuration() time.Duration {
	return time.Duration(s.RequestTimeout) * time.Second
}

// ConnMaxLifetimeDuration returns connection max lifetime as duration
func (d *DatabaseConfig) ConnMaxLifetimeDuration() time.Duration {
	return time.Duration(d.ConnMaxLifetime) * time.Second
}

// TTL returns the lifetime of a signed action link
func (l *LinksConfig) TTL() time.Duration {
	return time.Duration(l.TTLHours) * time.Hour
}

// TimeoutDuration returns the job timeout as duration
func (j *JobsConfig) TimeoutDuration() time.Duration {
	return time.Duration(j.Timeout) * time.Second
}

// Load loads configuration from file and environment variables.
// Secrets held in Azure Key Vault are resolved by LoadWithSecrets.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Environment variables override config file
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindLegacyEnv(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Secrets.KeyVaultName == "" {
		cfg.Secrets.KeyVaultName = v.GetString("AZURE_KEY_VAULT_NAME")
	}

	return &cfg, nil
}

// bindLegacyEnv maps the variable names used by existing deployments onto config keys
func bindLegacyEnv(v *viper.Viper) {
	_ = v.BindEnv("app.baseURL", "APP_BASEURL", "APP_BASE_URL")
	_ = v.BindEnv("database.url", "DATABASE_URL")
	_ = v.BindEnv("mail.username", "MAIL_USERNAME", "GMAIL_EMAIL")
	_ = v.BindEnv("mail.password", "MAIL_PASSWORD", "GMAIL_APP_PASSWORD")
	_ = v.BindEnv("links.secret", "LINKS_SECRET", "LINK_SIGNING_SECRET")
	_ = v.BindEnv("integrations.hubSpotToken", "INTEGRATIONS_HUBSPOTTOKEN", "HUBSPOT_ACCESS_TOKEN")
	_ = v.BindEnv("integrations.googleCredentialsPath", "INTEGRATIONS_GOOGLECREDENTIALSPATH", "GOOGLE_CREDENTIALS_PATH")
}

// LoadWithSecrets loads configuration and resolves secrets from the configured source.
//
// Key Vault is used when USE_AZURE_KEY_VAULT=true and the environment is staging or production.
// Otherwise secrets come from environment variables already applied by Load.
func LoadWithSecrets(ctx context.Context, logger *zap.Logger) (*Config, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}

	useKeyVault := strings.ToLower(os.Getenv("USE_AZURE_KEY_VAULT")) == "true"
	isValidEnv := cfg.App.Environment == "staging" || cfg.App.Environment == "production"

	if !useKeyVault {
		logger.Info("USE_AZURE_KEY_VAULT not enabled, using environment variables for secrets",
			zap.String("environment", cfg.App.Environment),
		)
		return cfg, nil
	}

	if !isValidEnv {
		logger.Warn("USE_AZURE_KEY_VAULT is enabled but environment is not staging or production, using environment variables for secrets",
			zap.String("environment", cfg.App.Environment),
		)
		return cfg, nil
	}

	if cfg.Secrets.KeyVaultName == "" {
		return nil, fmt.Errorf("AZURE_KEY_VAULT_NAME is required when USE_AZURE_KEY_VAULT=true")
	}

	fetcher, err := secrets.NewFetcher(&secrets.Options{
		Source:       secrets.SourceVault,
		VaultName:    cfg.Secrets.KeyVaultName,
		Environment:  cfg.App.Environment,
		CacheEnabled: cfg.Secrets.CacheEnabled,
		CacheTTL:     time.Duration(cfg.Secrets.CacheTTL) * time.Second,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize secrets (USE_AZURE_KEY_VAULT=true requires valid vault): %w", err)
	}

	logger.Info("Loading secrets from Azure Key Vault",
		zap.String("key_vault_name", cfg.Secrets.KeyVaultName),
	)

	if err := secrets.Resolve(ctx, fetcher, cfg.secretBindings(), logger); err != nil {
		return nil, err
	}

	logger.Info("Secrets loaded from vault successfully")
	return cfg, nil
}

// secretBindings lists the credentials that may live in Key Vault
func (c *Config) secretBindings() []secrets.Binding {
	return []secrets.Binding{
		{Secret: "POSTGRES-MAIN-PASSWORD", Env: "DATABASE_PASSWORD", Target: &c.Database.Password},
		{Secret: "mail-password", Env: "GMAIL_APP_PASSWORD", Target: &c.Mail.Password},
		{Secret: "link-signing-secret", Env: "LINK_SIGNING_SECRET", Target: &c.Links.Secret, Required: true},
		{Secret: "hubspot-access-token", Env: "HUBSPOT_ACCESS_TOKEN", Target: &c.Integrations.HubSpotToken},
		{Secret: "storage-connection-string", Env: "STORAGE_CLOUDCONNECTIONSTRING", Target: &c.Storage.CloudConnectionString},
	}
}

func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.name", "CPQ API")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.port", 8080)
	v.SetDefault("app.baseURL", "")

	// Database defaults
	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.url", "")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "cpq")
	v.SetDefault("database.user", "cpq_user")
	v.SetDefault("database.password", "cpq_password")
	v.SetDefault("database.sslMode", "disable")
	v.SetDefault("database.sqlitePath", "cpq.db")
	v.SetDefault("database.maxOpenConns", 25)
	v.SetDefault("database.maxIdleConns", 5)
	v.SetDefault("database.connMaxLifetime", 300)

	// Secrets defaults
	v.SetDefault("secrets.source", "auto")
	v.SetDefault("secrets.cacheEnabled", true)
	v.SetDefault("secrets.cacheTTL", 300)

	// Storage defaults
	v.SetDefault("storage.mode", "local")
	v.SetDefault("storage.documentsDir", "./documents")
	v.SetDefault("storage.uploadsDir", "./uploaded_docs")
	v.SetDefault("storage.cloudContainer", "documents")
	v.SetDefault("storage.maxUploadSizeMB", 20)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	// Server defaults
	v.SetDefault("server.readTimeout", 30)
	v.SetDefault("server.writeTimeout", 60)
	v.SetDefault("server.requestTimeout", 60)
	v.SetDefault("server.enableSwagger", true)

	// CORS defaults
	v.SetDefault("cors.allowedOrigins", []string{})
	v.SetDefault("cors.allowedMethods", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})
	v.SetDefault("cors.allowedHeaders", []string{"Accept", "Content-Type", "X-Request-ID"})
	v.SetDefault("cors.exposedHeaders", []string{"Content-Disposition", "X-Document-ID", "X-Request-ID"})
	v.SetDefault("cors.allowCredentials", false)
	v.SetDefault("cors.maxAge", 300)

	// Security header defaults
	v.SetDefault("security.enableHSTS", false)
	v.SetDefault("security.hstsMaxAge", 31536000)
	v.SetDefault("security.hstsIncludeSubdomains", true)
	v.SetDefault("security.hstsPreload", false)
	v.SetDefault("security.contentSecurityPolicy", "default-src 'self'")
	v.SetDefault("security.frameOptions", "DENY")
	v.SetDefault("security.contentTypeNosniff", true)
	v.SetDefault("security.xssProtection", "1; mode=block")
	v.SetDefault("security.referrerPolicy", "strict-origin-when-cross-origin")
	v.SetDefault("security.permissionsPolicy", "geolocation=(), microphone=(), camera=()")

	// Rate limiting defaults
	v.SetDefault("rateLimit.enabled", true)
	v.SetDefault("rateLimit.requestsPerMinute", 120)
	v.SetDefault("rateLimit.linkRequestsPerMinute", 20)
	v.SetDefault("rateLimit.whitelistIPs", []string{"127.0.0.1", "::1"})
	v.SetDefault("rateLimit.whitelistPaths", []string{"/health", "/health/db", "/health/ready"})

	// Mail defaults (Gmail SMTP with STARTTLS)
	v.SetDefault("mail.provider", "smtp")
	v.SetDefault("mail.host", "smtp.gmail.com")
	v.SetDefault("mail.port", 587)
	v.SetDefault("mail.fromName", "CPQ Approvals")
	v.SetDefault("mail.sesRegion", "")

	// Signed link defaults
	v.SetDefault("links.secret", "")
	v.SetDefault("links.ttlHours", 168)

	// Company identity defaults
	v.SetDefault("company.name", "Your Company Name")
	v.SetDefault("company.address", "123 Business Street")
	v.SetDefault("company.city", "City, State 12345")
	v.SetDefault("company.email", "support@yourcompany.com")
	v.SetDefault("company.phone", "+1 (555) 123-4567")
	v.SetDefault("company.website", "https://yourcompany.com")
	v.SetDefault("company.supportHours", "Monday - Friday, 9:00 AM - 6:00 PM EST")

	// PDF defaults
	v.SetDefault("pdf.wkhtmltopdfPath", "")
	v.SetDefault("pdf.disableHTMLEngine", false)

	// Job defaults
	v.SetDefault("jobs.documentIntegrityEnabled", true)
	v.SetDefault("jobs.documentIntegrityCron", "0 */6 * * *")
	v.SetDefault("jobs.timeout", 600)
}
