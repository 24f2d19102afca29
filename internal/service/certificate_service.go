package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/straye-as/cpq-api/internal/domain"
	"github.com/straye-as/cpq-api/internal/mapper"
	"github.com/straye-as/cpq-api/internal/notify"
	"github.com/straye-as/cpq-api/internal/render"
	"github.com/straye-as/cpq-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DefaultCertificateDocumentTitle names the signed document when the workflow has no document name
const DefaultCertificateDocumentTitle = "Purchase Agreement"

const referenceNumberLength = 20

// CertificateNotifier delivers the issued certificate to both signers
type CertificateNotifier interface {
	NotifyCertificateIssued(ctx context.Context, wf *domain.Workflow, cert *domain.SignatureCertificate, att *notify.Attachment) error
}

// CertificateService issues one signature certificate per fully signed workflow
type CertificateService struct {
	certRepo      *repository.CertificateRepository
	signatureRepo *repository.SignatureRepository
	workflowRepo  *repository.WorkflowRepository
	eventRepo     *repository.WorkflowEventRepository
	documents     *DocumentService
	notifier      CertificateNotifier
	logger        *zap.Logger
	now           func() time.Time
}

func NewCertificateService(
	certRepo *repository.CertificateRepository,
	signatureRepo *repository.SignatureRepository,
	workflowRepo *repository.WorkflowRepository,
	eventRepo *repository.WorkflowEventRepository,
	documents *DocumentService,
	notifier CertificateNotifier,
	logger *zap.Logger,
) *CertificateService {
	return &CertificateService{
		certRepo:      certRepo,
		signatureRepo: signatureRepo,
		workflowRepo:  workflowRepo,
		eventRepo:     eventRepo,
		documents:     documents,
		notifier:      notifier,
		logger:        logger,
		now:           time.Now,
	}
}

// IssueIfReady issues the certificate once both the CEO and the client have signed.
// It returns nil without error when the workflow is not ready or already has one.
// The certificate record survives artifact failures; Download repairs the artifact later.
func (s *CertificateService) IssueIfReady(ctx context.Context, wf *domain.Workflow) (*domain.SignatureCertificate, error) {
	if wf.CurrentStage == domain.StageCancelled || wf.CurrentStage == domain.StageClientRejected {
		return nil, nil
	}

	exists, err := s.certRepo.ExistsForWorkflow(ctx, wf.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check certificate: %w", err)
	}
	if exists {
		return nil, nil
	}

	signatures, err := s.signatureRepo.ListByWorkflow(ctx, wf.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list signatures: %w", err)
	}
	ceo, client := signatureByRole(signatures, domain.SignatureRoleCEO), signatureByRole(signatures, domain.SignatureRoleClient)
	if ceo == nil || client == nil {
		return nil, nil
	}

	cert := &domain.SignatureCertificate{
		WorkflowID:      wf.ID,
		AgreementID:     wf.DocumentID,
		ReferenceNumber: NewReferenceNumber(),
		DocumentTitle:   orDefault(wf.DocumentName, DefaultCertificateDocumentTitle),
		CompanyName:     wf.CompanyName,
		ClientName:      wf.ClientName,
		ServiceType:     wf.ServiceType,
		TotalAmount:     wf.TotalAmount,
		Signers: datatypes.NewJSONType([]domain.CertificateSigner{
			certificateSigner(ceo, wf.ManagerDecidedAt, wf.CreatedAt),
			certificateSigner(client, wf.CEODecidedAt, wf.CreatedAt),
		}),
		CompletionDate: s.now().UTC(),
	}

	if err := s.certRepo.Create(ctx, cert); err != nil {
		// a concurrent signer won the unique index
		if exists, checkErr := s.certRepo.ExistsForWorkflow(ctx, wf.ID); checkErr == nil && exists {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrStorageFailure, mapper.FormatError("certificate", "create", err))
	}

	s.logger.Info("Signature certificate issued",
		zap.String("workflow_id", wf.ID.String()),
		zap.String("certificate_id", cert.ID.String()),
		zap.String("reference", cert.ReferenceNumber),
	)

	s.recordIssued(ctx, wf, cert)

	artifact, err := s.storeArtifact(ctx, wf, cert)
	if err != nil {
		return cert, err
	}

	if s.notifier != nil {
		att := &notify.Attachment{
			Filename:    artifact.Document.Filename,
			ContentType: artifact.Document.ContentType,
			Data:        artifact.Data,
		}
		if err := s.notifier.NotifyCertificateIssued(ctx, wf, cert, att); err != nil {
			s.logger.Warn("certificate notification failed",
				zap.String("workflow_id", wf.ID.String()),
				zap.Error(fmt.Errorf("%w: %v", ErrNotifyFailure, err)),
			)
		}
	}

	return cert, nil
}

// GetByWorkflow returns the certificate metadata of a workflow
func (s *CertificateService) GetByWorkflow(ctx context.Context, workflowID uuid.UUID) (*domain.CertificateDTO, error) {
	cert, err := s.getByWorkflow(ctx, workflowID)
	if err != nil {
		return nil, err
	}
	dto := mapper.ToCertificateDTO(cert)
	return &dto, nil
}

// Download returns the certificate PDF, re-rendering it from the record when the artifact is gone
func (s *CertificateService) Download(ctx context.Context, workflowID uuid.UUID) (*GeneratedDocument, error) {
	cert, err := s.getByWorkflow(ctx, workflowID)
	if err != nil {
		return nil, err
	}

	if cert.DocumentID != nil {
		doc, err := s.documents.Open(ctx, *cert.DocumentID)
		if err == nil {
			return doc, nil
		}
		if !errors.Is(err, ErrDocumentNotFound) {
			return nil, err
		}
		s.logger.Warn("certificate artifact missing, re-rendering",
			zap.String("certificate_id", cert.ID.String()),
			zap.String("document_id", cert.DocumentID.String()),
		)
	}

	wf, err := s.workflowRepo.GetByID(ctx, workflowID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkflowNotFound
		}
		return nil, fmt.Errorf("failed to get workflow: %w", err)
	}
	return s.storeArtifact(ctx, wf, cert)
}

// storeArtifact renders the certificate, stores it as a document and links it to the record
func (s *CertificateService) storeArtifact(ctx context.Context, wf *domain.Workflow, cert *domain.SignatureCertificate) (*GeneratedDocument, error) {
	data, err := render.RenderCertificate(cert)
	if err != nil {
		s.logger.Error("failed to render signature certificate",
			zap.String("certificate_id", cert.ID.String()), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrRenderFailure, err)
	}

	doc := &domain.Document{
		QuoteID:     wf.QuoteID,
		Kind:        domain.DocumentKindCertificate,
		ContentType: pdfContentType,
		ClientName:  wf.ClientName,
		CompanyName: wf.CompanyName,
		ServiceType: wf.ServiceType,
	}
	if err := s.documents.StoreArtifact(ctx, doc, data, "pdf"); err != nil {
		s.logger.Error("failed to store signature certificate",
			zap.String("certificate_id", cert.ID.String()), zap.Error(err))
		return nil, err
	}

	if err := s.certRepo.SetDocument(ctx, cert.ID, doc.ID, doc.FilePath); err != nil {
		s.logger.Warn("failed to link certificate document",
			zap.String("certificate_id", cert.ID.String()),
			zap.String("document_id", doc.ID.String()),
			zap.Error(err),
		)
	} else {
		cert.DocumentID = &doc.ID
		cert.FilePath = doc.FilePath
	}

	return &GeneratedDocument{Document: doc, Data: data}, nil
}

func (s *CertificateService) recordIssued(ctx context.Context, wf *domain.Workflow, cert *domain.SignatureCertificate) {
	event := &domain.WorkflowEvent{
		WorkflowID: wf.ID,
		Event:      domain.EventCertificateIssued,
		FromStage:  wf.CurrentStage,
		ToStage:    wf.CurrentStage,
		Comments:   cert.ReferenceNumber,
		OccurredAt: cert.CompletionDate,
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		s.logger.Warn("failed to record certificate event",
			zap.String("workflow_id", wf.ID.String()), zap.Error(err))
	}
}

func (s *CertificateService) getByWorkflow(ctx context.Context, workflowID uuid.UUID) (*domain.SignatureCertificate, error) {
	cert, err := s.certRepo.GetByWorkflowID(ctx, workflowID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCertificateNotFound
		}
		return nil, fmt.Errorf("failed to get certificate: %w", err)
	}
	return cert, nil
}

// NewReferenceNumber returns 20 uppercase hex characters of a random UUID
func NewReferenceNumber() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))[:referenceNumberLength]
}

// certificateSigner freezes a signature into a certificate row. The request is
// considered sent at the previous approval and viewed when sent.
func certificateSigner(sig *domain.Signature, sentAt *time.Time, fallback time.Time) domain.CertificateSigner {
	sent := fallback
	if sentAt != nil {
		sent = *sentAt
	}
	if sent.After(sig.SignedAt) {
		sent = sig.SignedAt
	}

	label := "Client"
	if sig.Role == domain.SignatureRoleCEO {
		label = "CEO"
	}

	return domain.CertificateSigner{
		Role:          sig.Role,
		RoleLabel:     label,
		Name:          sig.SignerName,
		Email:         sig.SignerEmail,
		Title:         sig.SignerTitle,
		SignatureType: sig.SignatureType,
		SignatureData: sig.SignatureData,
		SentAt:        sent.UTC(),
		ViewedAt:      sent.UTC(),
		SignedAt:      sig.SignedAt.UTC(),
		IPAddress:     sig.IPAddress,
		UserAgent:     sig.UserAgent,
	}
}

func signatureByRole(signatures []domain.Signature, role domain.SignatureRole) *domain.Signature {
	for i := range signatures {
		if signatures[i].Role == role {
			return &signatures[i]
		}
	}
	return nil
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
