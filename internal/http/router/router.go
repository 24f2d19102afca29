package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/straye-as/cpq-api/internal/config"
	"github.com/straye-as/cpq-api/internal/http/handler"
	"github.com/straye-as/cpq-api/internal/http/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"

	_ "github.com/straye-as/cpq-api/docs" // Import generated swagger docs
)

// Handlers groups the HTTP handlers mounted by the router
type Handlers struct {
	Health    *handler.HealthHandler
	Quote     *handler.QuoteHandler
	Email     *handler.EmailHandler
	Document  *handler.DocumentHandler
	Agreement *handler.AgreementHandler
	Template  *handler.TemplateHandler
	Approval  *handler.ApprovalHandler
	Signature *handler.SignatureHandler
}

type Router struct {
	cfg         *config.Config
	logger      *zap.Logger
	rateLimiter *middleware.RateLimiter
	h           Handlers
}

func NewRouter(cfg *config.Config, logger *zap.Logger, rateLimiter *middleware.RateLimiter, handlers Handlers) *Router {
	return &Router{
		cfg:         cfg,
		logger:      logger,
		rateLimiter: rateLimiter,
		h:           handlers,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.Logging(rt.logger))
	r.Use(middleware.SecurityHeaders(&rt.cfg.Security))
	r.Use(middleware.CORS(&rt.cfg.CORS, rt.cfg.App.Environment, rt.logger))
	r.Use(rt.rateLimiter.LimitByIP)
	if timeout := rt.cfg.Server.RequestTimeoutDuration(); timeout > 0 {
		r.Use(chimw.Timeout(timeout))
	}

	r.NotFound(handler.NotFound)
	r.MethodNotAllowed(handler.MethodNotAllowed)

	r.Get("/health", rt.h.Health.Live)
	r.Get("/health/db", rt.h.Health.Database)
	r.Get("/health/ready", rt.h.Health.Ready)

	if rt.cfg.Server.EnableSwagger {
		r.Get("/swagger/*", httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
		))
	}

	r.Route("/api", func(r chi.Router) {
		// Quotes
		r.Post("/quote", rt.h.Quote.Create)
		r.Post("/quote/status", rt.h.Quote.UpdateStatus)
		r.Post("/quote/send-email", rt.h.Email.SendQuote)
		r.Post("/hubspot/quotes", rt.h.Quote.ImportHubSpot)
		r.Route("/quotes", func(r chi.Router) {
			r.Get("/", rt.h.Quote.List)
			r.Get("/lookup", rt.h.Quote.Lookup)
			r.Get("/{id}", rt.h.Quote.GetByID)
			r.Get("/{id}/history", rt.h.Quote.History)
			r.Get("/{id}/export", rt.h.Quote.Export)
		})
		r.Get("/email/test-connection", rt.h.Email.TestConnection)

		// Documents
		r.Post("/generate-pdf", rt.h.Document.GeneratePDF)
		r.Route("/documents", func(r chi.Router) {
			r.Get("/", rt.h.Document.List)
			r.Get("/{id}", rt.h.Document.GetByID)
			r.Get("/{id}/download", rt.h.Document.Download)
		})

		// Templates
		r.Route("/templates", func(r chi.Router) {
			r.Get("/", rt.h.Template.List)
			r.Post("/", rt.h.Template.Create)
			r.Post("/upload", rt.h.Template.Upload)
			r.Get("/{id}", rt.h.Template.GetByID)
			r.Delete("/{id}", rt.h.Template.Delete)
		})

		// Agreements and signatures
		r.Route("/agreements", func(r chi.Router) {
			r.Post("/generate-from-quote", rt.h.Agreement.GenerateFromQuote)
			r.Post("/generate-pdf", rt.h.Agreement.GeneratePDF)
			r.Post("/generate-docx", rt.h.Agreement.GenerateDOCX)
			r.Get("/download/{id}", rt.h.Document.Download)

			r.With(rt.rateLimiter.LimitLinks).Post("/submit-signature/{id}", rt.h.Signature.SubmitClientSignature)
			r.With(rt.rateLimiter.LimitLinks).Post("/submit-ceo-signature/{id}", rt.h.Signature.SubmitCEOSignature)
			r.Get("/signatures/{id}", rt.h.Signature.List)
			r.Get("/certificate/{id}", rt.h.Signature.GetCertificate)
			r.Get("/download-certificate/{id}", rt.h.Signature.DownloadCertificate)
		})

		// Approval workflow
		r.Route("/approval", func(r chi.Router) {
			r.Post("/start-workflow", rt.h.Approval.StartWorkflow)
			r.Post("/approve", rt.h.Approval.Decide)
			r.Post("/resubmit/{id}", rt.h.Approval.Resubmit)
			r.Post("/cancel/{id}", rt.h.Approval.Cancel)

			r.Get("/pending", rt.h.Approval.Pending)
			r.Get("/my-queue", rt.h.Approval.MyQueue)
			r.Get("/workflow-status", rt.h.Approval.WorkflowStatus)
			r.Get("/history", rt.h.Approval.History)
			r.Get("/denied", rt.h.Approval.Denied)
			r.Get("/stats", rt.h.Approval.Stats)
			r.Get("/client", rt.h.Approval.ByClient)
			r.Get("/search", rt.h.Approval.Search)
			r.With(rt.rateLimiter.LimitLinks).Get("/verify-link", rt.h.Approval.VerifyLink)
			r.Get("/workflow/{id}", rt.h.Approval.GetWorkflow)
			r.Get("/workflow/{id}/events", rt.h.Approval.Events)
		})

		r.With(rt.rateLimiter.LimitLinks).Post("/client/feedback", rt.h.Approval.ClientFeedback)
	})

	return r
}
