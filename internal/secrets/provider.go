// Package secrets resolves credentials from Azure Key Vault or the process environment.
package secrets

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Source names where secrets are read from
type Source string

const (
	SourceEnvironment Source = "environment"
	SourceVault       Source = "vault"
	// SourceAuto uses the environment in development and the vault everywhere else
	SourceAuto Source = "auto"
)

// ErrNotFound is returned when a secret has no value in its source
var ErrNotFound = errors.New("secret not found")

// Fetcher reads one named secret
type Fetcher interface {
	Fetch(ctx context.Context, name string) (string, error)
}

// Options selects and tunes the fetcher built by NewFetcher
type Options struct {
	Source       Source
	VaultName    string
	Environment  string
	CacheEnabled bool
	CacheTTL     time.Duration
}

// ResolveSource turns SourceAuto into a concrete source for the environment
func ResolveSource(source Source, environment string) Source {
	if source != SourceAuto && source != "" {
		return source
	}
	switch environment {
	case "development", "local", "test", "":
		return SourceEnvironment
	default:
		return SourceVault
	}
}

// NewFetcher builds the fetcher for opts, wrapping vault access in a TTL cache when enabled
func NewFetcher(opts *Options, logger *zap.Logger) (Fetcher, error) {
	source := ResolveSource(opts.Source, opts.Environment)

	var f Fetcher
	switch source {
	case SourceEnvironment:
		f = EnvFetcher{}
	case SourceVault:
		vault, err := NewVaultClient(opts.VaultName, logger)
		if err != nil {
			return nil, err
		}
		f = vault
		if opts.CacheEnabled {
			f = NewCache(vault, opts.CacheTTL)
		}
	default:
		return nil, fmt.Errorf("unknown secret source: %s", source)
	}

	logger.Info("Secrets fetcher initialized",
		zap.String("source", string(source)),
		zap.String("environment", opts.Environment),
		zap.Bool("cache_enabled", opts.CacheEnabled && source == SourceVault),
	)
	return f, nil
}

// EnvFetcher treats the secret name as an environment variable
type EnvFetcher struct{}

func (EnvFetcher) Fetch(_ context.Context, name string) (string, error) {
	if v := os.Getenv(name); v != "" {
		return v, nil
	}
	return "", fmt.Errorf("%w: environment variable %s", ErrNotFound, name)
}

// Cache memoizes fetched values for a fixed TTL
type Cache struct {
	next Fetcher
	ttl  time.Duration
	now  func() time.Time

	mu      sync.Mutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	value     string
	expiresAt time.Time
}

// NewCache wraps next; a zero ttl defaults to five minutes
func NewCache(next Fetcher, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Cache{
		next:    next,
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]cacheEntry),
	}
}

func (c *Cache) Fetch(ctx context.Context, name string) (string, error) {
	c.mu.Lock()
	entry, ok := c.entries[name]
	c.mu.Unlock()
	if ok && c.now().Before(entry.expiresAt) {
		return entry.value, nil
	}

	value, err := c.next.Fetch(ctx, name)
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	c.entries[name] = cacheEntry{value: value, expiresAt: c.now().Add(c.ttl)}
	c.mu.Unlock()
	return value, nil
}

// Binding maps one secret onto a configuration field.
// A non-empty Env variable overrides the fetched value.
type Binding struct {
	Secret   string
	Env      string
	Target   *string
	Required bool
}

// Resolve fills every binding target. Optional secrets that cannot be found keep their
// current value; a missing required secret fails the whole resolution.
func Resolve(ctx context.Context, f Fetcher, bindings []Binding, logger *zap.Logger) error {
	var missing []string
	for _, b := range bindings {
		if b.Env != "" {
			if v := os.Getenv(b.Env); v != "" {
				*b.Target = v
				logger.Debug("Secret overridden by environment", zap.String("env_name", b.Env))
				continue
			}
		}

		value, err := f.Fetch(ctx, b.Secret)
		if err == nil && value != "" {
			*b.Target = value
			continue
		}

		if b.Required && *b.Target == "" {
			missing = append(missing, b.Secret)
			continue
		}
		if err != nil && !errors.Is(err, ErrNotFound) {
			logger.Warn("Failed to fetch secret, keeping configured value",
				zap.String("secret_name", b.Secret),
				zap.Error(err),
			)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("required secrets missing: %v", missing)
	}
	return nil
}
