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
	"github.com/straye-as/cpq-api/internal/render"
	"github.com/straye-as/cpq-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const maxTypedSignatureLength = 200

// SignatureService records electronic signatures and triggers certificate issuance
type SignatureService struct {
	signatureRepo *repository.SignatureRepository
	workflowRepo  *repository.WorkflowRepository
	eventRepo     *repository.WorkflowEventRepository
	certificates  *CertificateService
	logger        *zap.Logger
	now           func() time.Time
}

func NewSignatureService(
	signatureRepo *repository.SignatureRepository,
	workflowRepo *repository.WorkflowRepository,
	eventRepo *repository.WorkflowEventRepository,
	certificates *CertificateService,
	logger *zap.Logger,
) *SignatureService {
	return &SignatureService{
		signatureRepo: signatureRepo,
		workflowRepo:  workflowRepo,
		eventRepo:     eventRepo,
		certificates:  certificates,
		logger:        logger,
		now:           time.Now,
	}
}

// Submit stores the signature of role on a workflow. The second of the two
// signatures issues the certificate; issuance failures do not fail the submission.
func (s *SignatureService) Submit(ctx context.Context, workflowID uuid.UUID, role domain.SignatureRole, req *domain.SubmitSignatureRequest, ipAddress, userAgent string) (*domain.SubmitSignatureResponse, error) {
	if role != domain.SignatureRoleClient && role != domain.SignatureRoleCEO {
		return nil, fmt.Errorf("%w: unknown signature role %q", ErrInvalidInput, role)
	}
	if err := validateSignaturePayload(req.Signature); err != nil {
		return nil, err
	}

	wf, err := s.workflowRepo.GetByID(ctx, workflowID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkflowNotFound
		}
		return nil, fmt.Errorf("failed to get workflow: %w", err)
	}
	if wf.CurrentStage == domain.StageCancelled || wf.CurrentStage == domain.StageClientRejected {
		return nil, fmt.Errorf("%w: workflow is %s", ErrInvalidTransition, wf.CurrentStage)
	}
	if expected := signerEmail(wf, role); expected != "" && !strings.EqualFold(expected, strings.TrimSpace(req.Email)) {
		return nil, fmt.Errorf("%w: email does not match the %s of this workflow", ErrInvalidInput, role)
	}

	if _, err := s.signatureRepo.GetByWorkflowAndRole(ctx, workflowID, role); err == nil {
		return nil, fmt.Errorf("%w: %s has already signed", ErrSignatureExists, role)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check signature: %w", err)
	}

	sig := &domain.Signature{
		WorkflowID:    workflowID,
		Role:          role,
		SignerName:    strings.TrimSpace(req.Name),
		SignerEmail:   normalizeEmail(req.Email),
		SignerTitle:   strings.TrimSpace(req.Title),
		SignedDate:    req.Date,
		SignatureType: domain.SignatureType(req.Signature.Type),
		SignatureData: req.Signature.Data,
		SignedAt:      s.now().UTC(),
		IPAddress:     ipAddress,
		UserAgent:     userAgent,
	}
	if err := s.signatureRepo.Create(ctx, sig); err != nil {
		// unique (workflow, role) index lost to a concurrent submission
		if _, getErr := s.signatureRepo.GetByWorkflowAndRole(ctx, workflowID, role); getErr == nil {
			return nil, fmt.Errorf("%w: %s has already signed", ErrSignatureExists, role)
		}
		return nil, fmt.Errorf("%w: %v", ErrStorageFailure, mapper.FormatError("signature", "create", err))
	}

	event := &domain.WorkflowEvent{
		WorkflowID: workflowID,
		Event:      domain.EventSignatureSubmitted,
		FromStage:  wf.CurrentStage,
		ToStage:    wf.CurrentStage,
		ActorRole:  string(role),
		ActorEmail: sig.SignerEmail,
		OccurredAt: sig.SignedAt,
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		s.logger.Warn("failed to record signature event",
			zap.String("workflow_id", workflowID.String()), zap.Error(err))
	}

	s.logger.Info("Signature submitted",
		zap.String("workflow_id", workflowID.String()),
		zap.String("role", string(role)),
		zap.String("type", string(sig.SignatureType)),
	)

	resp := &domain.SubmitSignatureResponse{
		Success:   true,
		Message:   "Signature submitted successfully",
		Signature: mapper.ToSignatureDTO(sig),
	}

	cert, err := s.certificates.IssueIfReady(ctx, wf)
	if err != nil {
		s.logger.Warn("certificate issuance failed",
			zap.String("workflow_id", workflowID.String()), zap.Error(err))
	}
	if cert != nil {
		dto := mapper.ToCertificateDTO(cert)
		resp.CertificateIssued = true
		resp.Certificate = &dto
		resp.Message = "Signature submitted, certificate issued"
	}
	return resp, nil
}

// List returns the signatures of a workflow
func (s *SignatureService) List(ctx context.Context, workflowID uuid.UUID) ([]domain.SignatureDTO, error) {
	if _, err := s.workflowRepo.GetByID(ctx, workflowID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkflowNotFound
		}
		return nil, fmt.Errorf("failed to get workflow: %w", err)
	}
	signatures, err := s.signatureRepo.ListByWorkflow(ctx, workflowID)
	if err != nil {
		return nil, fmt.Errorf("failed to list signatures: %w", err)
	}
	dtos := make([]domain.SignatureDTO, len(signatures))
	for i := range signatures {
		dtos[i] = mapper.ToSignatureDTO(&signatures[i])
	}
	return dtos, nil
}

func validateSignaturePayload(p domain.SignaturePayload) error {
	switch domain.SignatureType(p.Type) {
	case domain.SignatureTypeTyped:
		text := strings.TrimSpace(p.Data)
		if text == "" || len(text) > maxTypedSignatureLength {
			return fmt.Errorf("%w: typed signature must be 1-%d characters", ErrInvalidInput, maxTypedSignatureLength)
		}
	case domain.SignatureTypeDrawn:
		if _, _, ok := render.DecodeDataURI(p.Data); !ok {
			return fmt.Errorf("%w: drawn signature must be a base64 png, jpeg or gif data URI", ErrInvalidInput)
		}
	default:
		return fmt.Errorf("%w: signature type must be typed or drawn", ErrInvalidInput)
	}
	return nil
}

func signerEmail(wf *domain.Workflow, role domain.SignatureRole) string {
	if role == domain.SignatureRoleCEO {
		return wf.CEOEmail
	}
	return wf.ClientEmail
}
