package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/straye-as/cpq-api/internal/config"
	"github.com/straye-as/cpq-api/internal/domain"
	"github.com/straye-as/cpq-api/internal/notify"
	"github.com/straye-as/cpq-api/internal/render"
	"github.com/straye-as/cpq-api/internal/repository"
	"github.com/straye-as/cpq-api/internal/service"
	"github.com/straye-as/cpq-api/internal/storage"
	"github.com/straye-as/cpq-api/internal/testutil"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// recordingMailer captures outgoing messages and optionally fails every send
type recordingMailer struct {
	mu       sync.Mutex
	messages []notify.Message
	fail     error
}

func (m *recordingMailer) Send(_ context.Context, msg notify.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	m.messages = append(m.messages, msg)
	return nil
}

func (m *recordingMailer) Ping(context.Context) error {
	return m.fail
}

func (m *recordingMailer) sent() []notify.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]notify.Message(nil), m.messages...)
}

func (m *recordingMailer) sentTo(email string) []notify.Message {
	var out []notify.Message
	for _, msg := range m.sent() {
		for _, to := range msg.To {
			if to == email {
				out = append(out, msg)
				break
			}
		}
	}
	return out
}

func (m *recordingMailer) reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = nil
}

type fixture struct {
	db           *gorm.DB
	store        *storage.LocalStorage
	mailer       *recordingMailer
	links        *notify.LinkSigner
	quotes       *service.QuoteService
	documents    *service.DocumentService
	templates    *service.TemplateService
	workflows    *service.WorkflowService
	certificates *service.CertificateService
	signatures   *service.SignatureService
	email        *service.EmailService
}

const (
	linkSecret     = "test-secret"
	managerEmail   = "manager@example.com"
	ceoEmail       = "ceo@example.com"
	clientEmail    = "client@example.com"
	initiatorEmail = "sales@example.com"
)

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := testutil.NewTestDB(t)
	log := testutil.NewTestLogger()

	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	uploads, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	company := &config.CompanyConfig{Name: "Acme Migrations", Email: "hello@acme.test", Website: "acme.test"}
	renderer := render.NewPDFRenderer(&config.PDFConfig{DisableHTMLEngine: true}, log)

	mailer := &recordingMailer{}
	links, err := notify.NewLinkSigner(linkSecret, time.Hour)
	require.NoError(t, err)
	notifier := notify.NewNotifier(mailer, links, notify.NewBaseURLResolver("https://cpq.example.com", 8080), company, log)

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
	documents := service.NewDocumentService(quotes, repository.NewDocumentRepository(db), templateRepo, store, renderer, company, log)
	certificates := service.NewCertificateService(certRepo, signatureRepo, workflowRepo, eventRepo, documents, notifier, log)

	return &fixture{
		db:           db,
		store:        store,
		mailer:       mailer,
		links:        links,
		quotes:       quotes,
		documents:    documents,
		templates:    service.NewTemplateService(templateRepo, uploads, log),
		workflows:    service.NewWorkflowService(workflowRepo, eventRepo, signatureRepo, certRepo, documents, quotes, notifier, links, log),
		certificates: certificates,
		signatures:   service.NewSignatureService(signatureRepo, workflowRepo, eventRepo, certificates, log),
		email:        service.NewEmailService(quotes, documents, notifier, log),
	}
}

func quoteRequest() *domain.CreateQuoteRequest {
	return &domain.CreateQuoteRequest{
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

func (f *fixture) createQuote(t *testing.T) uuid.UUID {
	t.Helper()
	resp, err := f.quotes.Create(context.Background(), quoteRequest())
	require.NoError(t, err)
	return uuid.MustParse(resp.QuoteID)
}

func (f *fixture) createAgreement(t *testing.T) *service.GeneratedDocument {
	t.Helper()
	quoteID := f.createQuote(t)
	doc, err := f.documents.GenerateAgreementPDF(context.Background(), &domain.GenerateAgreementRequest{QuoteID: quoteID.String()})
	require.NoError(t, err)
	return doc
}

// startWorkflow creates an agreement and starts its workflow; an empty client email skips client feedback
func (f *fixture) startWorkflow(t *testing.T, client string) uuid.UUID {
	t.Helper()
	doc := f.createAgreement(t)
	resp, err := f.workflows.Start(context.Background(), &domain.StartWorkflowRequest{
		DocumentID:     doc.Document.ID.String(),
		DocumentType:   string(domain.WorkflowDocumentAgreement),
		ManagerEmail:   managerEmail,
		CEOEmail:       ceoEmail,
		ClientEmail:    client,
		InitiatorEmail: initiatorEmail,
	})
	require.NoError(t, err)
	return resp.WorkflowID
}

func (f *fixture) decide(t *testing.T, id uuid.UUID, role, action string) *domain.WorkflowDTO {
	t.Helper()
	wf, err := f.workflows.Decide(context.Background(), &domain.ApprovalDecisionRequest{
		WorkflowID: id.String(),
		Role:       role,
		Action:     action,
		Comments:   role + " " + action,
	})
	require.NoError(t, err)
	return wf
}

func typedSignature(name, email string) *domain.SubmitSignatureRequest {
	return &domain.SubmitSignatureRequest{
		Signature: domain.SignaturePayload{Type: "typed", Data: name},
		Name:      name,
		Email:     email,
		Title:     "Signer",
		Date:      "2026-10-18",
	}
}
