package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/straye-as/cpq-api/docs"
	"github.com/straye-as/cpq-api/internal/config"
	"github.com/straye-as/cpq-api/internal/database"
	"github.com/straye-as/cpq-api/internal/http/handler"
	"github.com/straye-as/cpq-api/internal/http/middleware"
	"github.com/straye-as/cpq-api/internal/http/router"
	"github.com/straye-as/cpq-api/internal/jobs"
	"github.com/straye-as/cpq-api/internal/logger"
	"github.com/straye-as/cpq-api/internal/notify"
	"github.com/straye-as/cpq-api/internal/render"
	"github.com/straye-as/cpq-api/internal/repository"
	"github.com/straye-as/cpq-api/internal/service"
	"github.com/straye-as/cpq-api/internal/storage"
	"go.uber.org/zap"
)

// @title CPQ API
// @version 1.0
// @description Quote pricing, document assembly, approval workflow and e-signature API

// @contact.name API Support

// @BasePath /

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// Load basic configuration first (for logging setup)
	basicCfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewLogger(&basicCfg.Logging, &basicCfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting application",
		zap.String("app", basicCfg.App.Name),
		zap.String("env", basicCfg.App.Environment),
		zap.Int("port", basicCfg.App.Port),
	)

	if basicCfg.App.Environment == "development" || basicCfg.App.Environment == "" {
		docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", basicCfg.App.Port)
	}

	// In staging/production secrets may come from Azure Key Vault
	cfg, err := config.LoadWithSecrets(ctx, log)
	if err != nil {
		return fmt.Errorf("failed to load secrets: %w", err)
	}

	db, err := database.NewDatabase(&cfg.Database, log)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if cfg.Database.Driver == "sqlite" {
		if err := database.AutoMigrate(db); err != nil {
			return fmt.Errorf("failed to migrate sqlite database: %w", err)
		}
	}

	documentStore, err := storage.NewStorage(&cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("failed to initialize document storage: %w", err)
	}
	uploadStore, err := storage.NewUploadStorage(&cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("failed to initialize upload storage: %w", err)
	}
	log.Info("Storage initialized", zap.String("mode", cfg.Storage.Mode))

	// Mail transport and signed links fail here, never at request time
	mailer, err := notify.NewMailer(ctx, &cfg.Mail, log)
	if err != nil {
		return fmt.Errorf("failed to initialize mailer: %w", err)
	}
	secret, err := linkSecret(cfg, log)
	if err != nil {
		return err
	}
	links, err := notify.NewLinkSigner(secret, cfg.Links.TTL())
	if err != nil {
		return fmt.Errorf("failed to initialize link signer: %w", err)
	}
	notifier := notify.NewNotifier(mailer, links, notify.NewBaseURLResolver(cfg.App.BaseURL, cfg.App.Port), &cfg.Company, log)
	renderer := render.NewPDFRenderer(&cfg.PDF, log)
	log.Info("Document rendering configured",
		zap.Bool("html_engine", renderer.HTMLEngineEnabled()),
		zap.String("documents_dir", cfg.Storage.DocumentsDir),
	)

	// Initialize repositories
	quoteRepo := repository.NewQuoteRepository(db)
	hubSpotQuoteRepo := repository.NewHubSpotQuoteRepository(db)
	statusLogRepo := repository.NewQuoteStatusLogRepository(db)
	documentRepo := repository.NewDocumentRepository(db)
	templateRepo := repository.NewTemplateRepository(db)
	workflowRepo := repository.NewWorkflowRepository(db)
	eventRepo := repository.NewWorkflowEventRepository(db)
	signatureRepo := repository.NewSignatureRepository(db)
	certRepo := repository.NewCertificateRepository(db)

	// Initialize services
	quoteService := service.NewQuoteService(quoteRepo, hubSpotQuoteRepo, statusLogRepo, log)
	documentService := service.NewDocumentService(quoteService, documentRepo, templateRepo, documentStore, renderer, &cfg.Company, log)
	templateService := service.NewTemplateService(templateRepo, uploadStore, log)
	certificateService := service.NewCertificateService(certRepo, signatureRepo, workflowRepo, eventRepo, documentService, notifier, log)
	workflowService := service.NewWorkflowService(workflowRepo, eventRepo, signatureRepo, certRepo, documentService, quoteService, notifier, links, log)
	signatureService := service.NewSignatureService(signatureRepo, workflowRepo, eventRepo, certificateService, log)
	emailService := service.NewEmailService(quoteService, documentService, notifier, log)

	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit, log)

	rt := router.NewRouter(cfg, log, rateLimiter, router.Handlers{
		Health:    handler.NewHealthHandler(db, documentStore, log),
		Quote:     handler.NewQuoteHandler(quoteService, documentService, log),
		Email:     handler.NewEmailHandler(emailService, log),
		Document:  handler.NewDocumentHandler(documentService, log),
		Agreement: handler.NewAgreementHandler(documentService, log),
		Template:  handler.NewTemplateHandler(templateService, cfg.Storage.MaxUploadSizeMB, log),
		Approval:  handler.NewApprovalHandler(workflowService, log),
		Signature: handler.NewSignatureHandler(signatureService, certificateService, log),
	})

	var scheduler *jobs.Scheduler
	if cfg.Jobs.DocumentIntegrityEnabled {
		scheduler = jobs.NewScheduler(log)
		if err := jobs.RegisterDocumentIntegrityJob(
			scheduler,
			documentService,
			log,
			cfg.Jobs.DocumentIntegrityCron,
			cfg.Jobs.TimeoutDuration(),
			true,
		); err != nil {
			log.Error("Failed to register document integrity job", zap.Error(err))
			scheduler = nil
		} else {
			scheduler.Start()
		}
	} else {
		log.Info("Document integrity job disabled")
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      rt.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		if scheduler != nil {
			<-scheduler.Stop().Done()
			log.Info("Scheduler stopped")
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Failed to shutdown gracefully", zap.Error(err))
			return err
		}

		log.Info("Server stopped gracefully")
	}

	return nil
}

// linkSecret returns the configured signing secret. Development falls back to a
// random per-process secret, which invalidates links on restart.
func linkSecret(cfg *config.Config, log *zap.Logger) (string, error) {
	if cfg.Links.Secret != "" {
		return cfg.Links.Secret, nil
	}
	if cfg.App.Environment != "development" && cfg.App.Environment != "" {
		return "", fmt.Errorf("LINK_SIGNING_SECRET is required in %s", cfg.App.Environment)
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate link secret: %w", err)
	}
	log.Warn("LINK_SIGNING_SECRET not set, using a random secret; email links stop working after restart")
	return hex.EncodeToString(buf), nil
}
