package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/straye-as/cpq-api/internal/domain"
	"gorm.io/gorm"
)

type WorkflowEventRepository struct {
	db *gorm.DB
}

func NewWorkflowEventRepository(db *gorm.DB) *WorkflowEventRepository {
	return &WorkflowEventRepository{db: db}
}

func (r *WorkflowEventRepository) Create(ctx context.Context, event *domain.WorkflowEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

// ListByWorkflow returns the transition log of a workflow in occurrence order
func (r *WorkflowEventRepository) ListByWorkflow(ctx context.Context, workflowID uuid.UUID) ([]domain.WorkflowEvent, error) {
	var events []domain.WorkflowEvent
	err := r.db.WithContext(ctx).
		Where("workflow_id = ?", workflowID).
		Order("occurred_at ASC, created_at ASC").
		Find(&events).Error
	return events, err
}
