package router_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/straye-as/cpq-api/internal/config"
	"github.com/straye-as/cpq-api/internal/domain"
	"github.com/straye-as/cpq-api/internal/http/handler"
	"github.com/straye-as/cpq-api/internal/http/middleware"
	"github.com/straye-as/cpq-api/internal/http/router"
	"github.com/straye-as/cpq-api/internal/notify"
	"github.com/straye-as/cpq-api/internal/render"
	"github.com/straye-as/cpq-api/internal/repository"
	"github.com/straye-as/cpq-api/internal/service"
	"github.com/straye-as/cpq-api/internal/storage"
	"github.com/straye-as/cpq-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	managerEmail = "manager@example.com"
	ceoEmail     = "ceo@example.com"
	clientEmail  = "client@example.com"
)

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "cpq-api", Environment: "test", Port: 8080},
		Server: config.ServerConfig{
			RequestTimeout: 30,
			EnableSwagger:  true,
		},
		CORS: config.CORSConfig{
			AllowedOrigins: []string{"https://app.example.com"},
			AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		},
		Security: config.SecurityConfig{
			ContentTypeNosniff: true,
			FrameOptions:       "DENY",
		},
		RateLimit: config.RateLimitConfig{Enabled: false, RequestsPerMinute: 100},
		Company:   config.CompanyConfig{Name: "Acme Migrations", Email: "hello@acme.test"},
	}
}

// newTestServer wires the full router on an in-memory database
func newTestServer(t *testing.T) http.Handler {
	t.Helper()

	cfg := testConfig()
	db := testutil.NewTestDB(t)
	log := testutil.NewTestLogger()

	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	uploads, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	links, err := notify.NewLinkSigner("router-test-secret", time.Hour)
	require.NoError(t, err)
	notifier := notify.NewNotifier(notify.NewLogMailer(log), links, notify.NewBaseURLResolver("https://cpq.example.com", 8080), &cfg.Company, log)
	renderer := render.NewPDFRenderer(&config.PDFConfig{DisableHTMLEngine: true}, log)

	workflowRepo := repository.NewWorkflowRepository(db)
	eventRepo := repository.NewWorkflowEventRepository(db)
	signatureRepo := repository.NewSignatureRepository(db)
	certRepo := repository.NewCertificateRepository(db)
	templateRepo := repository.NewTemplateRepository(db)

	quotes := service.NewQuoteService(
		repository.NewQuoteRepository(db),
		repository.NewHubSpotQuoteRepository(db),
		repository.NewQuoteStatusLogRepository(db),
		log,
	)
	documents := service.NewDocumentService(quotes, repository.NewDocumentRepository(db), templateRepo, store, renderer, &cfg.Company, log)
	certificates := service.NewCertificateService(certRepo, signatureRepo, workflowRepo, eventRepo, documents, notifier, log)
	workflows := service.NewWorkflowService(workflowRepo, eventRepo, signatureRepo, certRepo, documents, quotes, notifier, links, log)
	signatures := service.NewSignatureService(signatureRepo, workflowRepo, eventRepo, certificates, log)

	rt := router.NewRouter(cfg, log, middleware.NewRateLimiter(&cfg.RateLimit, log), router.Handlers{
		Health:    handler.NewHealthHandler(db, store, log),
		Quote:     handler.NewQuoteHandler(quotes, documents, log),
		Email:     handler.NewEmailHandler(service.NewEmailService(quotes, documents, notifier, log), log),
		Document:  handler.NewDocumentHandler(documents, log),
		Agreement: handler.NewAgreementHandler(documents, log),
		Template:  handler.NewTemplateHandler(service.NewTemplateService(templateRepo, uploads, log), 5, log),
		Approval:  handler.NewApprovalHandler(workflows, log),
		Signature: handler.NewSignatureHandler(signatures, certificates, log),
	})
	return rt.Setup()
}

func do(t *testing.T, h http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

// envelope decodes an APIResponse and re-decodes its data into out
func envelope(t *testing.T, rr *httptest.ResponseRecorder, out interface{}) domain.APIResponse {
	t.Helper()
	var resp struct {
		Success bool            `json:"success"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	if out != nil {
		require.NoError(t, json.Unmarshal(resp.Data, out))
	}
	return domain.APIResponse{Success: resp.Success, Message: resp.Message}
}

func apiError(t *testing.T, rr *httptest.ResponseRecorder) domain.APIError {
	t.Helper()
	var e domain.APIError
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &e))
	return e
}

func quoteBody() domain.CreateQuoteRequest {
	return domain.CreateQuoteRequest{
		ClientName:    "Jane Doe",
		Email:         "jane@example.com",
		CompanyName:   "Doe Industries",
		ServiceType:   "Migration",
		Users:         10,
		InstanceType:  "standard",
		Instances:     1,
		Duration:      1,
		MigrationType: "content",
		DataSize:      100,
	}
}

func createQuote(t *testing.T, h http.Handler) string {
	t.Helper()
	rr := do(t, h, http.MethodPost, "/api/quote", quoteBody())
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var resp domain.CreateQuoteResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp.QuoteID
}

// startWorkflow generates an agreement for a new quote and starts its approval
func startWorkflow(t *testing.T, h http.Handler) string {
	t.Helper()
	quoteID := createQuote(t, h)

	rr := do(t, h, http.MethodPost, "/api/agreements/generate-pdf", domain.GenerateAgreementRequest{QuoteID: quoteID})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	documentID := rr.Header().Get("X-Document-ID")
	require.NotEmpty(t, documentID)

	rr = do(t, h, http.MethodPost, "/api/approval/start-workflow", domain.StartWorkflowRequest{
		DocumentID:   documentID,
		DocumentType: string(domain.WorkflowDocumentAgreement),
		ManagerEmail: managerEmail,
		CEOEmail:     ceoEmail,
		ClientEmail:  clientEmail,
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var resp domain.StartWorkflowResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp.WorkflowID.String()
}

func TestRouter_Health(t *testing.T) {
	h := newTestServer(t)

	rr := do(t, h, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "OK", rr.Body.String())
	assert.Equal(t, "nosniff", rr.Header().Get("X-Content-Type-Options"))
	assert.NotEmpty(t, rr.Header().Get(middleware.RequestIDHeader))

	rr = do(t, h, http.MethodGet, "/health/db", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = do(t, h, http.MethodGet, "/health/ready", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRouter_Swagger(t *testing.T) {
	h := newTestServer(t)

	rr := do(t, h, http.MethodGet, "/swagger/doc.json", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "/api/quote")
}

func TestRouter_UnknownRouteAndMethod(t *testing.T) {
	h := newTestServer(t)

	rr := do(t, h, http.MethodGet, "/api/nothing-here", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, domain.ErrorTypeNotFound, apiError(t, rr).Type)

	rr = do(t, h, http.MethodGet, "/api/quote", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	e := apiError(t, rr)
	assert.Equal(t, domain.ErrorTypeMethod, e.Type)
	assert.Contains(t, e.Message, "GET")
}

func TestRouter_Quotes(t *testing.T) {
	h := newTestServer(t)

	t.Run("create prices all plans", func(t *testing.T) {
		rr := do(t, h, http.MethodPost, "/api/quote", quoteBody())
		require.Equal(t, http.StatusCreated, rr.Code)

		var resp domain.CreateQuoteResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, 1600.0, resp.Quote.Standard.TotalCost)
		_, err := uuid.Parse(resp.QuoteID)
		assert.NoError(t, err)
	})

	t.Run("validation errors name the field", func(t *testing.T) {
		body := quoteBody()
		body.Users = 0
		rr := do(t, h, http.MethodPost, "/api/quote", body)
		require.Equal(t, http.StatusBadRequest, rr.Code)

		e := apiError(t, rr)
		assert.Equal(t, domain.ErrorTypeValidation, e.Type)
		assert.Contains(t, e.Errors, "users")

		rr = do(t, h, http.MethodPost, "/api/quote/status", map[string]string{"quote_id": "nope", "status": "sent"})
		require.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "Must be a valid UUID", apiError(t, rr).Errors["quote_id"])
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/quote", bytes.NewBufferString("{"))
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("get and lookup", func(t *testing.T) {
		id := createQuote(t, h)

		rr := do(t, h, http.MethodGet, "/api/quotes/"+id, nil)
		require.Equal(t, http.StatusOK, rr.Code)
		var quote domain.QuoteDTO
		envelope(t, rr, &quote)
		assert.Equal(t, id, quote.ID.String())
		assert.Equal(t, domain.QuoteStatusDraft, quote.Status)

		rr = do(t, h, http.MethodGet, "/api/quotes/lookup?q=jane@example.com", nil)
		require.Equal(t, http.StatusOK, rr.Code)

		rr = do(t, h, http.MethodGet, "/api/quotes/lookup", nil)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("unknown quote", func(t *testing.T) {
		rr := do(t, h, http.MethodGet, "/api/quotes/"+uuid.NewString(), nil)
		assert.Equal(t, http.StatusNotFound, rr.Code)

		rr = do(t, h, http.MethodGet, "/api/quotes/not-a-uuid", nil)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("status change is logged", func(t *testing.T) {
		id := createQuote(t, h)

		rr := do(t, h, http.MethodPost, "/api/quote/status", domain.UpdateQuoteStatusRequest{QuoteID: id, Status: "sent"})
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

		rr = do(t, h, http.MethodGet, "/api/quotes/"+id+"/history", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		var history []domain.QuoteStatusLogDTO
		envelope(t, rr, &history)
		statuses := make([]domain.QuoteStatus, len(history))
		for i, entry := range history {
			statuses[i] = entry.Status
		}
		assert.ElementsMatch(t, []domain.QuoteStatus{domain.QuoteStatusDraft, domain.QuoteStatusSent}, statuses)
	})

	t.Run("list", func(t *testing.T) {
		rr := do(t, h, http.MethodGet, "/api/quotes?pageSize=2", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		var result domain.PaginatedResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
		assert.Equal(t, 2, result.PageSize)
		assert.GreaterOrEqual(t, result.Total, int64(3))
	})

	t.Run("export workbook", func(t *testing.T) {
		id := createQuote(t, h)
		rr := do(t, h, http.MethodGet, "/api/quotes/"+id+"/export", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, render.XLSXContentType, rr.Header().Get("Content-Type"))
		// xlsx files are zip archives
		assert.True(t, bytes.HasPrefix(rr.Body.Bytes(), []byte("PK")))
	})
}

func TestRouter_GeneratePDF(t *testing.T) {
	h := newTestServer(t)
	id := createQuote(t, h)

	rr := do(t, h, http.MethodPost, "/api/generate-pdf", domain.GeneratePDFRequest{QuoteID: id})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "application/pdf", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Header().Get("Content-Disposition"), "attachment; filename=")
	assert.True(t, bytes.HasPrefix(rr.Body.Bytes(), []byte("%PDF")))

	documentID := rr.Header().Get("X-Document-ID")
	require.NotEmpty(t, documentID)

	rr = do(t, h, http.MethodGet, "/api/documents/"+documentID+"/download", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, bytes.HasPrefix(rr.Body.Bytes(), []byte("%PDF")))

	rr = do(t, h, http.MethodGet, "/api/documents?quote_id="+id, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var result domain.PaginatedResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
	assert.Equal(t, int64(1), result.Total)

	rr = do(t, h, http.MethodPost, "/api/generate-pdf", domain.GeneratePDFRequest{})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRouter_ApprovalFlow(t *testing.T) {
	h := newTestServer(t)
	id := startWorkflow(t, h)

	decide := func(role, action string) *httptest.ResponseRecorder {
		return do(t, h, http.MethodPost, "/api/approval/approve", domain.ApprovalDecisionRequest{
			WorkflowID: id,
			Role:       role,
			Action:     action,
		})
	}

	rr := decide("manager", "approve")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var wf domain.WorkflowDTO
	envelope(t, rr, &wf)
	assert.Equal(t, domain.StageCEO, wf.CurrentStage)

	t.Run("repeated decision conflicts", func(t *testing.T) {
		rr := decide("manager", "approve")
		assert.Equal(t, http.StatusConflict, rr.Code)
		assert.Equal(t, domain.ErrorTypeConflict, apiError(t, rr).Type)
	})

	t.Run("invalid role is a validation error", func(t *testing.T) {
		rr := decide("janitor", "approve")
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	rr = decide("ceo", "approve")
	require.Equal(t, http.StatusOK, rr.Code)
	envelope(t, rr, &wf)
	assert.Equal(t, domain.StageClientFeedback, wf.CurrentStage)

	rr = do(t, h, http.MethodPost, "/api/client/feedback", domain.ClientFeedbackRequest{
		WorkflowID:  id,
		ClientEmail: clientEmail,
		Decision:    "accepted",
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	envelope(t, rr, &wf)
	assert.Equal(t, domain.StageCompleted, wf.CurrentStage)
	assert.Equal(t, domain.FinalStatusAcceptedByClient, wf.FinalStatus)

	rr = do(t, h, http.MethodGet, "/api/approval/workflow/"+id+"/events", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var events []domain.WorkflowEventDTO
	envelope(t, rr, &events)
	assert.Len(t, events, 4)

	rr = do(t, h, http.MethodGet, "/api/approval/workflow/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestRouter_DenialAndResubmit(t *testing.T) {
	h := newTestServer(t)
	id := startWorkflow(t, h)

	rr := do(t, h, http.MethodPost, "/api/approval/approve", domain.ApprovalDecisionRequest{
		WorkflowID: id,
		Role:       "manager",
		Action:     "deny",
		Comments:   "Pricing is off",
	})
	require.Equal(t, http.StatusOK, rr.Code)
	var wf domain.WorkflowDTO
	resp := envelope(t, rr, &wf)
	assert.True(t, resp.Success)
	assert.Equal(t, "Document denied", resp.Message)
	assert.Equal(t, domain.WorkflowStatusCancelled, wf.WorkflowStatus)

	rr = do(t, h, http.MethodGet, "/api/approval/denied", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var denied domain.PaginatedResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &denied))
	assert.Equal(t, int64(1), denied.Total)

	rr = do(t, h, http.MethodPost, "/api/approval/resubmit/"+id, nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	envelope(t, rr, &wf)
	assert.Equal(t, domain.StageManager, wf.CurrentStage)

	// an active workflow cannot be resubmitted
	rr = do(t, h, http.MethodPost, "/api/approval/resubmit/"+id, nil)
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = do(t, h, http.MethodPost, "/api/approval/cancel/"+id, domain.CancelWorkflowRequest{Reason: "client withdrew"})
	require.Equal(t, http.StatusOK, rr.Code)
	envelope(t, rr, &wf)
	assert.Equal(t, domain.WorkflowStatusCancelled, wf.WorkflowStatus)
}

func TestRouter_Signatures(t *testing.T) {
	h := newTestServer(t)
	id := startWorkflow(t, h)

	sign := func(path, name, email string) *httptest.ResponseRecorder {
		return do(t, h, http.MethodPost, path+id, domain.SubmitSignatureRequest{
			Signature: domain.SignaturePayload{Type: "typed", Data: name},
			Name:      name,
			Email:     email,
		})
	}

	rr := sign("/api/agreements/submit-signature/", "Jane Doe", clientEmail)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var resp domain.SubmitSignatureResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.False(t, resp.CertificateIssued)

	rr = do(t, h, http.MethodGet, "/api/agreements/certificate/"+id, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = sign("/api/agreements/submit-ceo-signature/", "Carl CEO", ceoEmail)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.CertificateIssued)
	require.NotNil(t, resp.Certificate)
	assert.Len(t, resp.Certificate.ReferenceNumber, 20)

	rr = sign("/api/agreements/submit-ceo-signature/", "Carl CEO", ceoEmail)
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = do(t, h, http.MethodGet, "/api/agreements/signatures/"+id, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var sigs []domain.SignatureDTO
	envelope(t, rr, &sigs)
	assert.Len(t, sigs, 2)

	rr = do(t, h, http.MethodGet, "/api/agreements/download-certificate/"+id, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, bytes.HasPrefix(rr.Body.Bytes(), []byte("%PDF")))
	assert.NotEmpty(t, rr.Header().Get("X-Document-ID"))

	t.Run("signature type outside the allowed set", func(t *testing.T) {
		rr := do(t, h, http.MethodPost, "/api/agreements/submit-signature/"+id, domain.SubmitSignatureRequest{
			Signature: domain.SignaturePayload{Type: "stamp", Data: "x"},
			Name:      "Jane Doe",
			Email:     clientEmail,
		})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestRouter_CORSPreflight(t *testing.T) {
	h := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/quote", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, "https://app.example.com", rr.Header().Get("Access-Control-Allow-Origin"))
}
