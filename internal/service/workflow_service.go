package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/straye-as/cpq-api/internal/domain"
	"github.com/straye-as/cpq-api/internal/logger"
	"github.com/straye-as/cpq-api/internal/mapper"
	"github.com/straye-as/cpq-api/internal/notify"
	"github.com/straye-as/cpq-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// WorkflowNotifier delivers the emails of workflow transitions
type WorkflowNotifier interface {
	NotifyWorkflowEvent(ctx context.Context, event domain.WorkflowEventType, wf *domain.Workflow, att *notify.Attachment) error
}

// WorkflowService drives documents through manager, CEO and client review
type WorkflowService struct {
	workflowRepo  *repository.WorkflowRepository
	eventRepo     *repository.WorkflowEventRepository
	signatureRepo *repository.SignatureRepository
	certRepo      *repository.CertificateRepository
	documents     *DocumentService
	quotes        *QuoteService
	notifier      WorkflowNotifier
	links         *notify.LinkSigner
	logger        *zap.Logger
	now           func() time.Time
}

func NewWorkflowService(
	workflowRepo *repository.WorkflowRepository,
	eventRepo *repository.WorkflowEventRepository,
	signatureRepo *repository.SignatureRepository,
	certRepo *repository.CertificateRepository,
	documents *DocumentService,
	quotes *QuoteService,
	notifier WorkflowNotifier,
	links *notify.LinkSigner,
	logger *zap.Logger,
) *WorkflowService {
	return &WorkflowService{
		workflowRepo:  workflowRepo,
		eventRepo:     eventRepo,
		signatureRepo: signatureRepo,
		certRepo:      certRepo,
		documents:     documents,
		quotes:        quotes,
		notifier:      notifier,
		links:         links,
		logger:        logger,
		now:           time.Now,
	}
}

// ============================================================================
// Transitions
// ============================================================================

// Start creates a workflow for a stored document and asks the manager for approval
func (s *WorkflowService) Start(ctx context.Context, req *domain.StartWorkflowRequest) (*domain.StartWorkflowResponse, error) {
	documentID, err := uuid.Parse(req.DocumentID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid document id", ErrInvalidInput)
	}
	docType := domain.WorkflowDocumentType(req.DocumentType)
	if docType != domain.WorkflowDocumentPDF && docType != domain.WorkflowDocumentAgreement {
		return nil, fmt.Errorf("%w: document_type must be PDF or Agreement", ErrInvalidInput)
	}

	doc, err := s.documents.getDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if doc.Kind == domain.DocumentKindCertificate {
		return nil, fmt.Errorf("%w: certificates cannot be sent for approval", ErrInvalidInput)
	}

	wf := &domain.Workflow{
		DocumentID:     doc.ID,
		DocumentType:   docType,
		DocumentName:   doc.Filename,
		QuoteID:        doc.QuoteID,
		ClientName:     doc.ClientName,
		CompanyName:    doc.CompanyName,
		ServiceType:    doc.ServiceType,
		ManagerEmail:   normalizeEmail(req.ManagerEmail),
		CEOEmail:       normalizeEmail(req.CEOEmail),
		ClientEmail:    normalizeEmail(req.ClientEmail),
		InitiatorEmail: normalizeEmail(req.InitiatorEmail),
		CurrentStage:   domain.StageManager,
		WorkflowStatus: domain.WorkflowStatusActive,
		ManagerStatus:  domain.DecisionPending,
		CEOStatus:      domain.DecisionPending,
		ClientStatus:   domain.DecisionPending,
	}
	wf.TotalAmount = s.documentTotal(ctx, doc)

	if err := s.workflowRepo.Create(ctx, wf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageFailure, mapper.FormatError("workflow", "create", err))
	}

	s.recordEvent(ctx, wf, domain.EventWorkflowStarted, "", domain.StageManager, "", wf.InitiatorEmail, "")
	s.logger.Info("Workflow started",
		logger.WorkflowFields(wf.ID, domain.StageManager, doc.ID)...,
	)

	s.notify(ctx, domain.EventWorkflowStarted, wf, s.attachment(ctx, wf))

	return &domain.StartWorkflowResponse{
		Success:    true,
		Message:    "Workflow started, approval request sent to manager",
		WorkflowID: wf.ID,
	}, nil
}

// Decide records a manager or CEO decision on the active stage
func (s *WorkflowService) Decide(ctx context.Context, req *domain.ApprovalDecisionRequest) (*domain.WorkflowDTO, error) {
	id, err := uuid.Parse(req.WorkflowID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid workflow id", ErrInvalidInput)
	}
	role := domain.WorkflowRole(req.Role)
	approve := req.Action == "approve"
	if req.Action != "approve" && req.Action != "deny" {
		return nil, fmt.Errorf("%w: action must be approve or deny", ErrInvalidInput)
	}

	wf, err := s.getWorkflow(ctx, id)
	if err != nil {
		return nil, err
	}

	var (
		status   domain.DecisionStatus
		stage    domain.WorkflowStage
		actor    string
		prefix   string
		approved domain.WorkflowEventType
		denied   domain.WorkflowEventType
		final    string
	)
	switch role {
	case domain.RoleManager:
		status, stage, actor, prefix = wf.ManagerStatus, domain.StageManager, wf.ManagerEmail, "manager"
		approved, denied, final = domain.EventManagerApproved, domain.EventManagerDenied, domain.FinalStatusDeniedByManager
	case domain.RoleCEO:
		status, stage, actor, prefix = wf.CEOStatus, domain.StageCEO, wf.CEOEmail, "ceo"
		approved, denied, final = domain.EventCEOApproved, domain.EventCEODenied, domain.FinalStatusDeniedByCEO
	default:
		return nil, fmt.Errorf("%w: role must be manager or ceo", ErrInvalidInput)
	}

	if status != domain.DecisionPending {
		return nil, fmt.Errorf("%w: %s already %s this workflow", ErrAlreadyDecided, role, status)
	}
	if wf.CurrentStage != stage {
		return nil, fmt.Errorf("%w: workflow is at stage %s, not %s", ErrInvalidTransition, wf.CurrentStage, stage)
	}

	now := s.now().UTC()
	updates := map[string]interface{}{
		prefix + "_comments":   req.Comments,
		prefix + "_decided_at": now,
	}

	var event domain.WorkflowEventType
	var next domain.WorkflowStage
	if approve {
		event = approved
		updates[prefix+"_status"] = domain.DecisionApproved
		next = domain.StageCEO
		if role == domain.RoleCEO {
			next = domain.StageClientFeedback
			if !wf.RequiresClientStage() {
				next = domain.StageCompleted
				updates["workflow_status"] = domain.WorkflowStatusCompleted
				updates["final_status"] = domain.FinalStatusApproved
				updates["completed_at"] = now
			}
		}
	} else {
		event = denied
		next = domain.StageCancelled
		updates[prefix+"_status"] = domain.DecisionDenied
		updates["workflow_status"] = domain.WorkflowStatusCancelled
		updates["final_status"] = final
	}
	updates["current_stage"] = next

	if err := s.updateStage(ctx, wf.ID, stage, updates); err != nil {
		return nil, err
	}

	wf, err = s.getWorkflow(ctx, id)
	if err != nil {
		return nil, err
	}

	s.recordEvent(ctx, wf, event, stage, next, string(role), actor, req.Comments)
	s.logger.Info("Workflow decision recorded",
		append(logger.WorkflowFields(wf.ID, next, wf.DocumentID),
			zap.String("role", string(role)),
			zap.String("action", req.Action),
		)...,
	)

	var att *notify.Attachment
	if approve {
		att = s.attachment(ctx, wf)
	}
	s.notify(ctx, event, wf, att)

	dto := mapper.ToWorkflowDTO(wf)
	return &dto, nil
}

// SubmitClientFeedback records the client's response to the delivered document
func (s *WorkflowService) SubmitClientFeedback(ctx context.Context, req *domain.ClientFeedbackRequest) (*domain.WorkflowDTO, error) {
	id, err := uuid.Parse(req.WorkflowID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid workflow id", ErrInvalidInput)
	}
	decision := domain.DecisionStatus(req.Decision)
	switch decision {
	case domain.DecisionAccepted, domain.DecisionRejected, domain.DecisionNeedsChanges:
	default:
		return nil, fmt.Errorf("%w: decision must be accepted, rejected or needs_changes", ErrInvalidInput)
	}

	wf, err := s.getWorkflow(ctx, id)
	if err != nil {
		return nil, err
	}
	if wf.ClientEmail == "" || !strings.EqualFold(wf.ClientEmail, strings.TrimSpace(req.ClientEmail)) {
		return nil, fmt.Errorf("%w: client email does not match workflow", ErrInvalidInput)
	}
	if wf.ClientStatus == domain.DecisionAccepted || wf.ClientStatus == domain.DecisionRejected {
		return nil, fmt.Errorf("%w: client already %s this document", ErrAlreadyDecided, wf.ClientStatus)
	}
	if wf.CurrentStage != domain.StageClientFeedback {
		return nil, fmt.Errorf("%w: workflow is at stage %s, not %s", ErrInvalidTransition, wf.CurrentStage, domain.StageClientFeedback)
	}

	now := s.now().UTC()
	next := domain.StageClientFeedback
	updates := map[string]interface{}{
		"client_status":     decision,
		"client_comments":   req.Comments,
		"client_decided_at": now,
	}
	switch decision {
	case domain.DecisionAccepted:
		next = domain.StageCompleted
		updates["workflow_status"] = domain.WorkflowStatusCompleted
		updates["final_status"] = domain.FinalStatusAcceptedByClient
		updates["completed_at"] = now
	case domain.DecisionRejected:
		next = domain.StageClientRejected
		updates["workflow_status"] = domain.WorkflowStatusClientRejected
		updates["final_status"] = domain.FinalStatusRejectedByClient
	}
	updates["current_stage"] = next

	if err := s.updateStage(ctx, wf.ID, domain.StageClientFeedback, updates); err != nil {
		return nil, err
	}

	wf, err = s.getWorkflow(ctx, id)
	if err != nil {
		return nil, err
	}

	s.recordEvent(ctx, wf, domain.EventClientFeedback, domain.StageClientFeedback, next, string(domain.RoleClient), wf.ClientEmail, req.Comments)
	s.logger.Info("Client feedback recorded",
		append(logger.WorkflowFields(wf.ID, next, wf.DocumentID),
			zap.String("decision", string(decision)),
		)...,
	)
	s.notify(ctx, domain.EventClientFeedback, wf, nil)

	dto := mapper.ToWorkflowDTO(wf)
	return &dto, nil
}

// Resubmit resets a cancelled or client-rejected workflow to manager review
func (s *WorkflowService) Resubmit(ctx context.Context, id uuid.UUID) (*domain.WorkflowDTO, error) {
	wf, err := s.getWorkflow(ctx, id)
	if err != nil {
		return nil, err
	}
	if wf.CurrentStage != domain.StageCancelled && wf.CurrentStage != domain.StageClientRejected {
		return nil, fmt.Errorf("%w: only cancelled or rejected workflows can be resubmitted (stage %s)", ErrInvalidTransition, wf.CurrentStage)
	}

	from := wf.CurrentStage
	updates := map[string]interface{}{
		"current_stage":      domain.StageManager,
		"workflow_status":    domain.WorkflowStatusActive,
		"final_status":       "",
		"manager_status":     domain.DecisionPending,
		"manager_comments":   "",
		"manager_decided_at": nil,
		"ceo_status":         domain.DecisionPending,
		"ceo_comments":       "",
		"ceo_decided_at":     nil,
		"client_status":      domain.DecisionPending,
		"client_comments":    "",
		"client_decided_at":  nil,
		"cancel_reason":      "",
		"completed_at":       nil,
		"resubmit_count":     gorm.Expr("resubmit_count + ?", 1),
	}
	if err := s.updateStage(ctx, wf.ID, from, updates); err != nil {
		return nil, err
	}

	s.clearSignatures(ctx, wf.ID)

	wf, err = s.getWorkflow(ctx, id)
	if err != nil {
		return nil, err
	}

	s.recordEvent(ctx, wf, domain.EventWorkflowResubmitted, from, domain.StageManager, "", wf.InitiatorEmail, "")
	s.logger.Info("Workflow resubmitted",
		append(logger.WorkflowFields(wf.ID, domain.StageManager, wf.DocumentID),
			zap.Int("resubmit_count", wf.ResubmitCount),
		)...,
	)
	s.notify(ctx, domain.EventWorkflowResubmitted, wf, s.attachment(ctx, wf))

	dto := mapper.ToWorkflowDTO(wf)
	return &dto, nil
}

// Cancel stops an active workflow
func (s *WorkflowService) Cancel(ctx context.Context, id uuid.UUID, reason string) (*domain.WorkflowDTO, error) {
	wf, err := s.getWorkflow(ctx, id)
	if err != nil {
		return nil, err
	}
	if wf.CurrentStage.IsTerminal() {
		return nil, fmt.Errorf("%w: workflow is already %s", ErrInvalidTransition, wf.CurrentStage)
	}

	from := wf.CurrentStage
	updates := map[string]interface{}{
		"current_stage":   domain.StageCancelled,
		"workflow_status": domain.WorkflowStatusCancelled,
		"final_status":    domain.FinalStatusCancelled,
		"cancel_reason":   reason,
	}
	if err := s.updateStage(ctx, wf.ID, from, updates); err != nil {
		return nil, err
	}

	wf, err = s.getWorkflow(ctx, id)
	if err != nil {
		return nil, err
	}

	s.recordEvent(ctx, wf, domain.EventWorkflowCancelled, from, domain.StageCancelled, "", "", reason)
	s.logger.Info("Workflow cancelled", logger.WorkflowFields(wf.ID, domain.StageCancelled, wf.DocumentID)...)
	s.notify(ctx, domain.EventWorkflowCancelled, wf, nil)

	dto := mapper.ToWorkflowDTO(wf)
	return &dto, nil
}

// ============================================================================
// Queries
// ============================================================================

// GetByID returns a workflow
func (s *WorkflowService) GetByID(ctx context.Context, id uuid.UUID) (*domain.WorkflowDTO, error) {
	wf, err := s.getWorkflow(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := mapper.ToWorkflowDTO(wf)
	return &dto, nil
}

// Events returns the transition log of a workflow
func (s *WorkflowService) Events(ctx context.Context, id uuid.UUID) ([]domain.WorkflowEventDTO, error) {
	if _, err := s.getWorkflow(ctx, id); err != nil {
		return nil, err
	}
	events, err := s.eventRepo.ListByWorkflow(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list workflow events: %w", err)
	}
	dtos := make([]domain.WorkflowEventDTO, len(events))
	for i := range events {
		dtos[i] = mapper.ToWorkflowEventDTO(&events[i])
	}
	return dtos, nil
}

// ListPending returns active workflows
func (s *WorkflowService) ListPending(ctx context.Context, page, pageSize int) (*domain.PaginatedResponse, error) {
	page, pageSize = repository.NormalizePagination(page, pageSize)
	workflows, total, err := s.workflowRepo.ListPending(ctx, page, pageSize)
	return s.page(workflows, total, err, page, pageSize)
}

// ListQueue returns workflows waiting on a participant
func (s *WorkflowService) ListQueue(ctx context.Context, role, email string, page, pageSize int) (*domain.PaginatedResponse, error) {
	r := domain.WorkflowRole(role)
	if r != domain.RoleManager && r != domain.RoleCEO && r != domain.RoleClient {
		return nil, fmt.Errorf("%w: role must be manager, ceo or client", ErrInvalidInput)
	}
	if strings.TrimSpace(email) == "" {
		return nil, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	page, pageSize = repository.NormalizePagination(page, pageSize)
	workflows, total, err := s.workflowRepo.ListQueue(ctx, r, normalizeEmail(email), page, pageSize)
	return s.page(workflows, total, err, page, pageSize)
}

// ListByStatus returns workflows with a coarse status; empty returns all
func (s *WorkflowService) ListByStatus(ctx context.Context, status string, page, pageSize int) (*domain.PaginatedResponse, error) {
	switch domain.WorkflowStatus(status) {
	case "", domain.WorkflowStatusActive, domain.WorkflowStatusCompleted, domain.WorkflowStatusCancelled, domain.WorkflowStatusClientRejected:
	default:
		return nil, fmt.Errorf("%w: unknown workflow status %q", ErrInvalidInput, status)
	}
	page, pageSize = repository.NormalizePagination(page, pageSize)
	workflows, total, err := s.workflowRepo.ListByStatus(ctx, domain.WorkflowStatus(status), page, pageSize)
	return s.page(workflows, total, err, page, pageSize)
}

// ListHistory returns finished workflows
func (s *WorkflowService) ListHistory(ctx context.Context, page, pageSize int) (*domain.PaginatedResponse, error) {
	page, pageSize = repository.NormalizePagination(page, pageSize)
	workflows, total, err := s.workflowRepo.ListHistory(ctx, page, pageSize)
	return s.page(workflows, total, err, page, pageSize)
}

// ListDenied returns workflows denied by the manager or CEO
func (s *WorkflowService) ListDenied(ctx context.Context, page, pageSize int) (*domain.PaginatedResponse, error) {
	page, pageSize = repository.NormalizePagination(page, pageSize)
	workflows, total, err := s.workflowRepo.ListDenied(ctx, page, pageSize)
	return s.page(workflows, total, err, page, pageSize)
}

// ListByClient returns the workflows addressed to a client email
func (s *WorkflowService) ListByClient(ctx context.Context, email string, page, pageSize int) (*domain.PaginatedResponse, error) {
	if strings.TrimSpace(email) == "" {
		return nil, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	page, pageSize = repository.NormalizePagination(page, pageSize)
	workflows, total, err := s.workflowRepo.ListByClientEmail(ctx, normalizeEmail(email), page, pageSize)
	return s.page(workflows, total, err, page, pageSize)
}

// Search matches document, client and company names
func (s *WorkflowService) Search(ctx context.Context, q string, page, pageSize int) (*domain.PaginatedResponse, error) {
	if strings.TrimSpace(q) == "" {
		return nil, fmt.Errorf("%w: search term is required", ErrInvalidInput)
	}
	page, pageSize = repository.NormalizePagination(page, pageSize)
	workflows, total, err := s.workflowRepo.Search(ctx, q, page, pageSize)
	return s.page(workflows, total, err, page, pageSize)
}

// Stats returns dashboard counters; completed_today counts from midnight UTC
func (s *WorkflowService) Stats(ctx context.Context) (*domain.WorkflowStatsDTO, error) {
	now := s.now().UTC()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	stats, err := s.workflowRepo.GetStats(ctx, midnight)
	if err != nil {
		return nil, fmt.Errorf("failed to get workflow stats: %w", err)
	}
	return &domain.WorkflowStatsDTO{
		Pending:         stats.Pending,
		CompletedToday:  stats.CompletedToday,
		Completed:       stats.Completed,
		Cancelled:       stats.Cancelled,
		ClientRejected:  stats.ClientRejected,
		Total:           stats.Total,
		AvgApprovalTime: fmt.Sprintf("%.1fh", stats.AvgApproval.Hours()),
	}, nil
}

// VerifyLink decodes a signed email action link
func (s *WorkflowService) VerifyLink(ctx context.Context, token string) (*domain.ActionLinkDTO, error) {
	claims, err := s.links.Verify(token)
	if err != nil {
		return nil, ErrInvalidLink
	}
	id, err := uuid.Parse(claims.WorkflowID)
	if err != nil {
		return nil, ErrInvalidLink
	}
	if _, err := s.getWorkflow(ctx, id); err != nil {
		return nil, err
	}

	dto := &domain.ActionLinkDTO{
		WorkflowID: id,
		Role:       claims.Role,
		Email:      claims.Email,
	}
	if claims.ExpiresAt != nil {
		dto.ExpiresAt = claims.ExpiresAt.UTC().Format(time.RFC3339)
	}
	return dto, nil
}

// ============================================================================
// Helpers
// ============================================================================

func (s *WorkflowService) page(workflows []domain.Workflow, total int64, err error, page, pageSize int) (*domain.PaginatedResponse, error) {
	if err != nil {
		return nil, fmt.Errorf("failed to list workflows: %w", err)
	}
	return paginated(mapper.ToWorkflowDTOs(workflows), total, page, pageSize), nil
}

func (s *WorkflowService) getWorkflow(ctx context.Context, id uuid.UUID) (*domain.Workflow, error) {
	wf, err := s.workflowRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkflowNotFound
		}
		return nil, fmt.Errorf("failed to get workflow: %w", err)
	}
	return wf, nil
}

func (s *WorkflowService) updateStage(ctx context.Context, id uuid.UUID, expected domain.WorkflowStage, updates map[string]interface{}) error {
	if err := s.workflowRepo.UpdateStage(ctx, id, expected, updates); err != nil {
		if errors.Is(err, repository.ErrStaleWorkflow) {
			return ErrConcurrentUpdate
		}
		return fmt.Errorf("%w: failed to update workflow: %v", ErrStorageFailure, err)
	}
	return nil
}

// recordEvent appends to the transition log; failures are logged only
func (s *WorkflowService) recordEvent(ctx context.Context, wf *domain.Workflow, event domain.WorkflowEventType, from, to domain.WorkflowStage, role, email, comments string) {
	entry := &domain.WorkflowEvent{
		WorkflowID: wf.ID,
		Event:      event,
		FromStage:  from,
		ToStage:    to,
		ActorRole:  role,
		ActorEmail: email,
		Comments:   comments,
		OccurredAt: s.now().UTC(),
	}
	if err := s.eventRepo.Create(ctx, entry); err != nil {
		s.logger.Warn("failed to record workflow event",
			zap.String("workflow_id", wf.ID.String()),
			zap.String("event", string(event)),
			zap.Error(err),
		)
	}
}

// notify sends transition emails; delivery errors never fail the transition
func (s *WorkflowService) notify(ctx context.Context, event domain.WorkflowEventType, wf *domain.Workflow, att *notify.Attachment) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.NotifyWorkflowEvent(ctx, event, wf, att); err != nil {
		s.logger.Warn("workflow notification failed",
			zap.String("workflow_id", wf.ID.String()),
			zap.String("event", string(event)),
			zap.Error(fmt.Errorf("%w: %v", ErrNotifyFailure, err)),
		)
	}
}

// attachment loads the workflow document; a missing document sends text-only emails
func (s *WorkflowService) attachment(ctx context.Context, wf *domain.Workflow) *notify.Attachment {
	doc, err := s.documents.Open(ctx, wf.DocumentID)
	if err != nil {
		s.logger.Warn("failed to load workflow document for attachment",
			zap.String("workflow_id", wf.ID.String()),
			zap.String("document_id", wf.DocumentID.String()),
			zap.Error(err),
		)
		return nil
	}
	return &notify.Attachment{
		Filename:    doc.Document.Filename,
		ContentType: doc.Document.ContentType,
		Data:        doc.Data,
	}
}

// documentTotal is the standard plan total of the quote behind a document
func (s *WorkflowService) documentTotal(ctx context.Context, doc *domain.Document) float64 {
	if doc.QuoteID == nil {
		return 0
	}
	quote, _, err := s.quotes.Resolve(ctx, doc.QuoteID.String())
	if err != nil {
		s.logger.Warn("failed to load quote for workflow total",
			zap.String("document_id", doc.ID.String()),
			zap.Error(err),
		)
		return 0
	}
	return quote.Plans.Data().Standard.TotalCost
}

// clearSignatures drops the signatures of a resubmitted workflow unless a certificate already froze them
func (s *WorkflowService) clearSignatures(ctx context.Context, workflowID uuid.UUID) {
	issued, err := s.certRepo.ExistsForWorkflow(ctx, workflowID)
	if err != nil {
		s.logger.Warn("failed to check certificate before clearing signatures",
			zap.String("workflow_id", workflowID.String()), zap.Error(err))
		return
	}
	if issued {
		return
	}
	if err := s.signatureRepo.DeleteByWorkflow(ctx, workflowID); err != nil {
		s.logger.Warn("failed to clear signatures of resubmitted workflow",
			zap.String("workflow_id", workflowID.String()), zap.Error(err))
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
