package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/straye-as/cpq-api/internal/config"
	"github.com/straye-as/cpq-api/internal/domain"
	"github.com/straye-as/cpq-api/internal/mapper"
	"github.com/straye-as/cpq-api/internal/pricing"
	"github.com/straye-as/cpq-api/internal/render"
	"github.com/straye-as/cpq-api/internal/repository"
	"github.com/straye-as/cpq-api/internal/storage"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DefaultAgreementTitle is used when an agreement is generated without a template
const DefaultAgreementTitle = "Migration Services Agreement"

const pdfContentType = "application/pdf"

// GeneratedDocument is a persisted artifact together with its bytes
type GeneratedDocument struct {
	Document *domain.Document
	Data     []byte
}

// ReconcileReport summarizes a document integrity pass
type ReconcileReport struct {
	Checked     int
	Restored    int
	Regenerated int
	Removed     int
	Failed      int
}

// DocumentService assembles quote and agreement documents from quotes and templates
type DocumentService struct {
	quotes       *QuoteService
	documentRepo *repository.DocumentRepository
	templateRepo *repository.TemplateRepository
	store        storage.Storage
	renderer     *render.PDFRenderer
	company      *config.CompanyConfig
	logger       *zap.Logger
	now          func() time.Time
}

func NewDocumentService(
	quotes *QuoteService,
	documentRepo *repository.DocumentRepository,
	templateRepo *repository.TemplateRepository,
	store storage.Storage,
	renderer *render.PDFRenderer,
	company *config.CompanyConfig,
	logger *zap.Logger,
) *DocumentService {
	return &DocumentService{
		quotes:       quotes,
		documentRepo: documentRepo,
		templateRepo: templateRepo,
		store:        store,
		renderer:     renderer,
		company:      company,
		logger:       logger,
		now:          time.Now,
	}
}

// ============================================================================
// Quote documents
// ============================================================================

// GenerateQuotePDF renders a quote PDF from a stored quote or an inline configuration.
// Inline prices are always recomputed.
func (s *DocumentService) GenerateQuotePDF(ctx context.Context, req *domain.GeneratePDFRequest) (*GeneratedDocument, error) {
	var quote *domain.Quote
	switch {
	case req.QuoteID != "":
		q, _, err := s.quotes.Resolve(ctx, req.QuoteID)
		if err != nil {
			return nil, err
		}
		quote = q
	case req.Configuration != nil:
		q, err := s.transientQuote(req)
		if err != nil {
			return nil, err
		}
		quote = q
	default:
		return nil, fmt.Errorf("%w: quote_id or configuration is required", ErrInvalidInput)
	}

	data, err := s.renderQuotePDF(ctx, quote)
	if err != nil {
		return nil, err
	}

	doc := &domain.Document{
		QuoteID:     persistedQuoteID(quote),
		Kind:        domain.DocumentKindQuotePDF,
		ContentType: pdfContentType,
		ClientName:  quote.Client.Name,
		CompanyName: quote.Client.Company,
		ServiceType: quote.Client.ServiceType,
	}
	if err := s.StoreArtifact(ctx, doc, data, "pdf"); err != nil {
		return nil, err
	}
	return &GeneratedDocument{Document: doc, Data: data}, nil
}

func (s *DocumentService) renderQuotePDF(ctx context.Context, quote *domain.Quote) ([]byte, error) {
	data := render.BuildTemplateData(quote, s.company, s.now())
	pdf, err := s.renderer.Render(ctx, render.Job{
		HTML:   render.QuoteHTML(data),
		Layout: render.QuoteLayout(data),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRenderFailure, err)
	}
	return pdf, nil
}

func (s *DocumentService) transientQuote(req *domain.GeneratePDFRequest) (*domain.Quote, error) {
	c := req.Configuration
	result, err := s.quotes.Price(&domain.CreateQuoteRequest{
		Users:         c.Users,
		InstanceType:  c.InstanceType,
		Instances:     c.Instances,
		Duration:      c.Duration,
		MigrationType: c.MigrationType,
		DataSize:      c.DataSize,
	})
	if err != nil {
		return nil, err
	}
	return &domain.Quote{
		BaseModel: domain.BaseModel{CreatedAt: s.now()},
		Client: domain.ClientProfile{
			Name:        req.Client.Name,
			Company:     req.Client.Company,
			Email:       req.Client.Email,
			Phone:       req.Client.Phone,
			ServiceType: req.Client.ServiceType,
		},
		Configuration: result.Input.Configuration(),
		Plans:         datatypes.NewJSONType(result.Plans()),
		Status:        domain.QuoteStatusDraft,
	}, nil
}

// ExportQuoteWorkbook renders the pricing spreadsheet of a quote
func (s *DocumentService) ExportQuoteWorkbook(ctx context.Context, identifier string) ([]byte, string, error) {
	quote, _, err := s.quotes.Resolve(ctx, identifier)
	if err != nil {
		return nil, "", err
	}
	data := render.BuildTemplateData(quote, s.company, s.now())
	wb, err := render.QuoteWorkbook(quote, data)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrRenderFailure, err)
	}
	return wb, storage.ArtifactName("quote", quote.Client.Name, "xlsx", s.now()), nil
}

// ============================================================================
// Agreements
// ============================================================================

type agreementDraft struct {
	quote    *domain.Quote
	template *domain.Template
	plan     domain.PlanName
	title    string
	data     render.TemplateData
	items    []domain.AgreementLineItem
	subtotal decimal.Decimal
	total    decimal.Decimal
	html     string
}

func (d *agreementDraft) layoutItems() []render.LineItem {
	items := make([]render.LineItem, len(d.items))
	for i, it := range d.items {
		items[i] = render.LineItem{
			Description: it.Description,
			Quantity:    formatQuantity(it.Quantity, it.Unit),
			UnitPrice:   render.FormatMoney(it.UnitPrice),
			Amount:      render.FormatMoney(it.Amount),
		}
	}
	return items
}

// BuildAgreement returns the structured agreement of a quote
func (s *DocumentService) BuildAgreement(ctx context.Context, req *domain.GenerateAgreementRequest) (*domain.AgreementDTO, error) {
	draft, err := s.draftAgreement(ctx, req, true)
	if err != nil {
		return nil, err
	}

	dto := &domain.AgreementDTO{
		QuoteID:        draft.quote.ID,
		Plan:           draft.plan,
		Title:          draft.title,
		Client:         draft.quote.Client,
		Configuration:  draft.quote.Configuration,
		LineItems:      draft.items,
		Subtotal:       draft.subtotal.Round(2).InexactFloat64(),
		Total:          draft.total.Round(2).InexactFloat64(),
		TotalFormatted: render.FormatCurrency(draft.total),
		TemplateData:   draft.data,
		HTML:           draft.html,
	}
	if draft.template != nil {
		dto.TemplateID = &draft.template.ID
	}
	return dto, nil
}

// GenerateAgreementPDF renders and stores an agreement PDF
func (s *DocumentService) GenerateAgreementPDF(ctx context.Context, req *domain.GenerateAgreementRequest) (*GeneratedDocument, error) {
	draft, err := s.draftAgreement(ctx, req, true)
	if err != nil {
		return nil, err
	}

	data, err := s.renderer.Render(ctx, render.Job{
		HTML:   draft.html,
		Layout: render.AgreementLayout(draft.title, draft.data, draft.layoutItems(), render.FormatCurrency(draft.total)),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRenderFailure, err)
	}

	doc := s.agreementDocument(draft, pdfContentType)
	if err := s.StoreArtifact(ctx, doc, data, "pdf"); err != nil {
		return nil, err
	}
	return &GeneratedDocument{Document: doc, Data: data}, nil
}

// GenerateAgreementDOCX fills a DOCX template and stores the result
func (s *DocumentService) GenerateAgreementDOCX(ctx context.Context, req *domain.GenerateAgreementRequest) (*GeneratedDocument, error) {
	if req.TemplateID == "" {
		return nil, fmt.Errorf("%w: template_id is required", ErrInvalidInput)
	}
	draft, err := s.draftAgreement(ctx, req, false)
	if err != nil {
		return nil, err
	}
	if draft.template.Kind != domain.TemplateKindDOCX {
		return nil, fmt.Errorf("%w: template %s is not a DOCX template", ErrInvalidInput, draft.template.ID)
	}

	data, err := render.FillDOCX(draft.template.Blob, draft.data)
	if err != nil {
		if errors.Is(err, render.ErrInvalidDOCX) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrRenderFailure, err)
	}

	doc := s.agreementDocument(draft, render.DOCXContentType)
	if err := s.StoreArtifact(ctx, doc, data, "docx"); err != nil {
		return nil, err
	}
	return &GeneratedDocument{Document: doc, Data: data}, nil
}

func (s *DocumentService) agreementDocument(draft *agreementDraft, contentType string) *domain.Document {
	doc := &domain.Document{
		QuoteID:     persistedQuoteID(draft.quote),
		Kind:        domain.DocumentKindAgreement,
		ContentType: contentType,
		ClientName:  draft.quote.Client.Name,
		CompanyName: draft.quote.Client.Company,
		ServiceType: draft.quote.Client.ServiceType,
	}
	if draft.template != nil {
		doc.TemplateID = &draft.template.ID
	}
	return doc
}

// draftAgreement resolves the quote and template and prices the selected plan.
// withHTML renders the HTML body; DOCX agreements skip it.
func (s *DocumentService) draftAgreement(ctx context.Context, req *domain.GenerateAgreementRequest, withHTML bool) (*agreementDraft, error) {
	plan := domain.PlanStandard
	if req.Plan != "" {
		plan = domain.PlanName(req.Plan)
		if !plan.IsValid() {
			return nil, fmt.Errorf("%w: unknown plan %q", ErrInvalidInput, req.Plan)
		}
	}

	quote, _, err := s.quotes.Resolve(ctx, req.QuoteID)
	if err != nil {
		return nil, err
	}

	draft := &agreementDraft{quote: quote, plan: plan, title: DefaultAgreementTitle}

	if req.TemplateID != "" {
		tmpl, err := s.loadTemplate(ctx, req.TemplateID)
		if err != nil {
			return nil, err
		}
		draft.template = tmpl
		draft.title = tmpl.Name
	}

	draft.data = render.WithPlan(render.BuildTemplateData(quote, s.company, s.now()), plan, draft.title)
	draft.items, draft.subtotal, draft.total = agreementLineItems(quote, plan)

	if withHTML {
		html, err := s.agreementHTML(draft)
		if err != nil {
			return nil, err
		}
		draft.html = html
	}
	return draft, nil
}

func (s *DocumentService) agreementHTML(d *agreementDraft) (string, error) {
	items := d.layoutItems()
	if d.template == nil {
		return render.AgreementHTML(d.data, items), nil
	}

	switch d.template.Kind {
	case domain.TemplateKindHTML:
		return render.InsertLineItems(render.SubstituteHTML(d.template.Content, d.data), items), nil
	case domain.TemplateKindBuilder:
		body := render.BlocksToHTML(d.title, d.template.Blocks.Data())
		return render.InsertLineItems(render.SubstituteHTML(body, d.data), items), nil
	default:
		return "", fmt.Errorf("%w: DOCX templates are rendered with generate-docx", ErrInvalidInput)
	}
}

func (s *DocumentService) loadTemplate(ctx context.Context, rawID string) (*domain.Template, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid template id", ErrInvalidInput)
	}
	tmpl, err := s.templateRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, fmt.Errorf("failed to get template: %w", err)
	}
	return tmpl, nil
}

// agreementLineItems prices the selected plan as four rows; the subtotal excludes migration services
func agreementLineItems(q *domain.Quote, plan domain.PlanName) ([]domain.AgreementLineItem, decimal.Decimal, decimal.Decimal) {
	cost := q.Plans.Data().Plan(plan)
	cfg := q.Configuration
	hours := pricing.MigrationHours(cfg.MigrationType)
	instanceMonths := cfg.Instances * cfg.DurationMonths

	items := []domain.AgreementLineItem{
		{
			Description: "User licenses",
			Quantity:    float64(cfg.Users),
			Unit:        "users",
			UnitPrice:   cost.PerUserCost,
			Amount:      cost.TotalUserCost,
		},
		{
			Description: "Data migration",
			Quantity:    cfg.DataSizeGB,
			Unit:        "GB",
			UnitPrice:   cost.PerGBCost,
			Amount:      cost.DataCost,
		},
		{
			Description: fmt.Sprintf("Migration services (%s)", cfg.MigrationType),
			Quantity:    float64(hours),
			Unit:        "hours",
			UnitPrice:   pricing.HourlyRate.InexactFloat64(),
			Amount:      cost.MigrationCost,
		},
		{
			Description: fmt.Sprintf("%s instances", humanizeValue(string(cfg.InstanceType))),
			Quantity:    float64(instanceMonths),
			Unit:        "instance-months",
			UnitPrice:   pricing.InstanceMonthlyCost(cfg.InstanceType).InexactFloat64(),
			Amount:      cost.InstanceCost,
		},
	}

	subtotal := decimal.NewFromFloat(cost.TotalUserCost).
		Add(decimal.NewFromFloat(cost.DataCost)).
		Add(decimal.NewFromFloat(cost.InstanceCost))
	return items, subtotal, decimal.NewFromFloat(cost.TotalCost)
}

// ============================================================================
// Persistence and retrieval
// ============================================================================

// StoreArtifact writes artifact bytes under a generated name and records the metadata.
// The file is removed again when the metadata cannot be saved.
func (s *DocumentService) StoreArtifact(ctx context.Context, doc *domain.Document, data []byte, ext string) error {
	client := doc.ClientName
	if client == "" {
		client = doc.CompanyName
	}
	name := storage.ArtifactName(string(doc.Kind), client, ext, s.now())

	storedPath, size, err := s.store.Upload(ctx, name, doc.ContentType, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}

	doc.Filename = path.Base(storedPath)
	doc.FilePath = storedPath
	doc.SizeBytes = size
	doc.Payload = base64.StdEncoding.EncodeToString(data)

	if err := s.documentRepo.Create(ctx, doc); err != nil {
		if delErr := s.store.Delete(ctx, storedPath); delErr != nil {
			s.logger.Warn("failed to remove artifact after metadata error",
				zap.String("path", storedPath), zap.Error(delErr))
		}
		return fmt.Errorf("%w: %v", ErrStorageFailure, mapper.FormatError("document", "create", err))
	}

	s.logger.Info("Document stored",
		zap.String("document_id", doc.ID.String()),
		zap.String("kind", string(doc.Kind)),
		zap.String("path", storedPath),
		zap.Int64("size", size),
	)
	return nil
}

// GetByID returns document metadata
func (s *DocumentService) GetByID(ctx context.Context, id uuid.UUID) (*domain.DocumentDTO, error) {
	doc, err := s.getDocument(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := mapper.ToDocumentDTO(doc)
	return &dto, nil
}

// List returns document metadata, optionally filtered by kind and quote
func (s *DocumentService) List(ctx context.Context, kind string, quoteID *uuid.UUID, page, pageSize int) (*domain.PaginatedResponse, error) {
	if kind != "" && !domain.DocumentKind(kind).IsValid() {
		return nil, fmt.Errorf("%w: unknown document kind %q", ErrInvalidInput, kind)
	}
	page, pageSize = repository.NormalizePagination(page, pageSize)

	docs, total, err := s.documentRepo.List(ctx, domain.DocumentKind(kind), quoteID, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	dtos := make([]domain.DocumentDTO, len(docs))
	for i := range docs {
		dtos[i] = mapper.ToDocumentDTO(&docs[i])
	}
	return paginated(dtos, total, page, pageSize), nil
}

// Open returns a document with its bytes, restoring or regenerating a missing file
func (s *DocumentService) Open(ctx context.Context, id uuid.UUID) (*GeneratedDocument, error) {
	doc, err := s.getDocument(ctx, id)
	if err != nil {
		return nil, err
	}

	data, err := s.read(ctx, doc.FilePath)
	if err == nil {
		return &GeneratedDocument{Document: doc, Data: data}, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}

	s.logger.Warn("Document file missing, attempting recovery",
		zap.String("document_id", doc.ID.String()),
		zap.String("path", doc.FilePath),
	)
	data, _, err = s.recover(ctx, doc)
	if err != nil {
		return nil, err
	}
	return &GeneratedDocument{Document: doc, Data: data}, nil
}

// ReconcileArtifacts checks every document file, restoring or regenerating missing ones
// and deleting metadata that can be neither.
func (s *DocumentService) ReconcileArtifacts(ctx context.Context) (*ReconcileReport, error) {
	docs, err := s.documentRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	report := &ReconcileReport{}
	for i := range docs {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		doc := &docs[i]
		report.Checked++

		exists, err := s.store.Exists(ctx, doc.FilePath)
		if err != nil {
			report.Failed++
			s.logger.Warn("failed to check document file", zap.String("document_id", doc.ID.String()), zap.Error(err))
			continue
		}
		if exists {
			continue
		}

		_, action, err := s.recover(ctx, doc)
		switch {
		case err == nil && action == recoveryRestored:
			report.Restored++
		case err == nil:
			report.Regenerated++
		case errors.Is(err, ErrDocumentNotFound):
			if delErr := s.documentRepo.Delete(ctx, doc.ID); delErr != nil {
				report.Failed++
				s.logger.Warn("failed to delete orphaned document", zap.String("document_id", doc.ID.String()), zap.Error(delErr))
				continue
			}
			report.Removed++
			s.logger.Info("Removed orphaned document record", zap.String("document_id", doc.ID.String()))
		default:
			report.Failed++
			s.logger.Warn("failed to recover document", zap.String("document_id", doc.ID.String()), zap.Error(err))
		}
	}
	return report, nil
}

const (
	recoveryRestored    = "restored"
	recoveryRegenerated = "regenerated"
)

// recover rewrites a missing file from the embedded payload, else re-renders it from its quote
func (s *DocumentService) recover(ctx context.Context, doc *domain.Document) ([]byte, string, error) {
	if doc.Payload != "" {
		data, err := base64.StdEncoding.DecodeString(doc.Payload)
		if err == nil {
			if err := s.rewrite(ctx, doc, data); err != nil {
				return nil, "", err
			}
			return data, recoveryRestored, nil
		}
		s.logger.Warn("document payload is corrupt", zap.String("document_id", doc.ID.String()), zap.Error(err))
	}

	data, err := s.regenerate(ctx, doc)
	if err != nil {
		return nil, "", err
	}
	if err := s.rewrite(ctx, doc, data); err != nil {
		return nil, "", err
	}
	return data, recoveryRegenerated, nil
}

func (s *DocumentService) regenerate(ctx context.Context, doc *domain.Document) ([]byte, error) {
	if doc.QuoteID == nil || doc.Kind == domain.DocumentKindCertificate {
		return nil, fmt.Errorf("%w: %s cannot be regenerated", ErrDocumentNotFound, doc.ID)
	}

	quote, _, err := s.quotes.Resolve(ctx, doc.QuoteID.String())
	if err != nil {
		if errors.Is(err, ErrQuoteNotFound) {
			return nil, fmt.Errorf("%w: source quote of %s is gone", ErrDocumentNotFound, doc.ID)
		}
		return nil, err
	}

	if doc.Kind == domain.DocumentKindQuotePDF {
		return s.renderQuotePDF(ctx, quote)
	}

	req := &domain.GenerateAgreementRequest{QuoteID: quote.ID.String()}
	if doc.TemplateID != nil {
		req.TemplateID = doc.TemplateID.String()
	}

	if doc.ContentType == render.DOCXContentType {
		if doc.TemplateID == nil {
			return nil, fmt.Errorf("%w: %s has no source template", ErrDocumentNotFound, doc.ID)
		}
		draft, err := s.draftAgreement(ctx, req, false)
		if err != nil {
			return nil, missingSource(doc, err)
		}
		data, err := render.FillDOCX(draft.template.Blob, draft.data)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrRenderFailure, err)
		}
		return data, nil
	}

	draft, err := s.draftAgreement(ctx, req, true)
	if err != nil {
		return nil, missingSource(doc, err)
	}
	data, err := s.renderer.Render(ctx, render.Job{
		HTML:   draft.html,
		Layout: render.AgreementLayout(draft.title, draft.data, draft.layoutItems(), render.FormatCurrency(draft.total)),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRenderFailure, err)
	}
	return data, nil
}

// rewrite stores recovered bytes and points the metadata at the new file
func (s *DocumentService) rewrite(ctx context.Context, doc *domain.Document, data []byte) error {
	storedPath, size, err := s.store.Upload(ctx, doc.Filename, doc.ContentType, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}
	doc.FilePath = storedPath
	doc.Filename = path.Base(storedPath)
	doc.SizeBytes = size
	doc.Payload = base64.StdEncoding.EncodeToString(data)

	if err := s.documentRepo.Update(ctx, doc); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}
	s.logger.Info("Document file recovered",
		zap.String("document_id", doc.ID.String()),
		zap.String("path", storedPath),
	)
	return nil
}

func (s *DocumentService) read(ctx context.Context, storedPath string) ([]byte, error) {
	rc, err := s.store.Download(ctx, storedPath)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func (s *DocumentService) getDocument(ctx context.Context, id uuid.UUID) (*domain.Document, error) {
	doc, err := s.documentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	return doc, nil
}

// missingSource reports a deleted template as an unrecoverable document
func missingSource(doc *domain.Document, err error) error {
	if errors.Is(err, ErrTemplateNotFound) {
		return fmt.Errorf("%w: source template of %s is gone", ErrDocumentNotFound, doc.ID)
	}
	return err
}

// persistedQuoteID returns nil for quotes that were priced inline and never stored
func persistedQuoteID(q *domain.Quote) *uuid.UUID {
	if q.ID == uuid.Nil {
		return nil
	}
	id := q.ID
	return &id
}

func formatQuantity(q float64, unit string) string {
	return fmt.Sprintf("%s %s", decimal.NewFromFloat(q).String(), unit)
}

func humanizeValue(s string) string {
	b := []byte(s)
	upper := true
	for i, c := range b {
		switch {
		case c == '_':
			b[i] = ' '
			upper = true
		case upper && c >= 'a' && c <= 'z':
			b[i] = c - 'a' + 'A'
			upper = false
		default:
			upper = false
		}
	}
	return string(b)
}
