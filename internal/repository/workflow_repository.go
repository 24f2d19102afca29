package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/straye-as/cpq-api/internal/domain"
	"gorm.io/gorm"
)

// ErrStaleWorkflow is returned when a stage-guarded update finds the workflow in a different stage
var ErrStaleWorkflow = errors.New("workflow stage changed concurrently")

type WorkflowRepository struct {
	db *gorm.DB
}

func NewWorkflowRepository(db *gorm.DB) *WorkflowRepository {
	return &WorkflowRepository{db: db}
}

func (r *WorkflowRepository) Create(ctx context.Context, workflow *domain.Workflow) error {
	return r.db.WithContext(ctx).Create(workflow).Error
}

func (r *WorkflowRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Workflow, error) {
	var workflow domain.Workflow
	err := r.db.WithContext(ctx).First(&workflow, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &workflow, nil
}

// UpdateStage applies updates only if the workflow is still in expectedStage.
// Returns ErrStaleWorkflow when another writer moved it first.
func (r *WorkflowRepository) UpdateStage(ctx context.Context, id uuid.UUID, expectedStage domain.WorkflowStage, updates map[string]interface{}) error {
	result := r.db.WithContext(ctx).
		Model(&domain.Workflow{}).
		Where("id = ? AND current_stage = ?", id, expectedStage).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrStaleWorkflow
	}
	return nil
}

// ListPending returns active workflows awaiting a decision
func (r *WorkflowRepository) ListPending(ctx context.Context, page, pageSize int) ([]domain.Workflow, int64, error) {
	query := r.db.WithContext(ctx).Model(&domain.Workflow{}).
		Where("workflow_status = ?", domain.WorkflowStatusActive)
	return r.list(query, page, pageSize, "created_at DESC")
}

// ListQueue returns the workflows currently waiting on the given participant
func (r *WorkflowRepository) ListQueue(ctx context.Context, role domain.WorkflowRole, email string, page, pageSize int) ([]domain.Workflow, int64, error) {
	query := r.db.WithContext(ctx).Model(&domain.Workflow{}).
		Where("workflow_status = ?", domain.WorkflowStatusActive)

	switch role {
	case domain.RoleManager:
		query = query.Where("current_stage = ? AND LOWER(manager_email) = ?", domain.StageManager, NormalizeSearchTerm(email))
	case domain.RoleCEO:
		query = query.Where("current_stage = ? AND LOWER(ceo_email) = ?", domain.StageCEO, NormalizeSearchTerm(email))
	case domain.RoleClient:
		query = query.Where("current_stage = ? AND LOWER(client_email) = ?", domain.StageClientFeedback, NormalizeSearchTerm(email))
	default:
		return []domain.Workflow{}, 0, nil
	}

	return r.list(query, page, pageSize, "created_at ASC")
}

// ListByStatus returns workflows filtered by workflow status; an empty status returns all
func (r *WorkflowRepository) ListByStatus(ctx context.Context, status domain.WorkflowStatus, page, pageSize int) ([]domain.Workflow, int64, error) {
	query := r.db.WithContext(ctx).Model(&domain.Workflow{})
	if status != "" {
		query = query.Where("workflow_status = ?", status)
	}
	return r.list(query, page, pageSize, "updated_at DESC")
}

// ListHistory returns workflows that reached a terminal stage
func (r *WorkflowRepository) ListHistory(ctx context.Context, page, pageSize int) ([]domain.Workflow, int64, error) {
	query := r.db.WithContext(ctx).Model(&domain.Workflow{}).
		Where("workflow_status <> ?", domain.WorkflowStatusActive)
	return r.list(query, page, pageSize, "updated_at DESC")
}

// ListDenied returns workflows denied by the manager or the CEO
func (r *WorkflowRepository) ListDenied(ctx context.Context, page, pageSize int) ([]domain.Workflow, int64, error) {
	query := r.db.WithContext(ctx).Model(&domain.Workflow{}).
		Where("final_status IN ?", []string{domain.FinalStatusDeniedByManager, domain.FinalStatusDeniedByCEO})
	return r.list(query, page, pageSize, "updated_at DESC")
}

// ListByClientEmail returns every workflow addressed to a client email
func (r *WorkflowRepository) ListByClientEmail(ctx context.Context, email string, page, pageSize int) ([]domain.Workflow, int64, error) {
	query := r.db.WithContext(ctx).Model(&domain.Workflow{}).
		Where("LOWER(client_email) = ?", NormalizeSearchTerm(email))
	return r.list(query, page, pageSize, "created_at DESC")
}

// Search matches the term against document, client and company names
func (r *WorkflowRepository) Search(ctx context.Context, term string, page, pageSize int) ([]domain.Workflow, int64, error) {
	pattern := containsPattern(term)
	query := r.db.WithContext(ctx).Model(&domain.Workflow{}).
		Where(
			r.db.Where(likeLower("document_name"), pattern).
				Or(likeLower("client_name"), pattern).
				Or(likeLower("company_name"), pattern),
		)
	return r.list(query, page, pageSize, "created_at DESC")
}

func (r *WorkflowRepository) list(query *gorm.DB, page, pageSize int, order string) ([]domain.Workflow, int64, error) {
	var workflows []domain.Workflow
	var total int64

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := paginate(query, page, pageSize).Order(order).Find(&workflows).Error
	return workflows, total, err
}
