package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/straye-as/cpq-api/internal/domain"
	"gorm.io/gorm"
)

type SignatureRepository struct {
	db *gorm.DB
}

func NewSignatureRepository(db *gorm.DB) *SignatureRepository {
	return &SignatureRepository{db: db}
}

// Create inserts a signature. The (workflow_id, role) unique index rejects a second signature per role.
func (r *SignatureRepository) Create(ctx context.Context, sig *domain.Signature) error {
	return r.db.WithContext(ctx).Create(sig).Error
}

func (r *SignatureRepository) GetByWorkflowAndRole(ctx context.Context, workflowID uuid.UUID, role domain.SignatureRole) (*domain.Signature, error) {
	var sig domain.Signature
	err := r.db.WithContext(ctx).
		Where("workflow_id = ? AND role = ?", workflowID, role).
		First(&sig).Error
	if err != nil {
		return nil, err
	}
	return &sig, nil
}

func (r *SignatureRepository) ListByWorkflow(ctx context.Context, workflowID uuid.UUID) ([]domain.Signature, error) {
	var sigs []domain.Signature
	err := r.db.WithContext(ctx).
		Where("workflow_id = ?", workflowID).
		Order("signed_at ASC").
		Find(&sigs).Error
	return sigs, err
}

// DeleteByWorkflow removes all signatures of a workflow, used when it is resubmitted
func (r *SignatureRepository) DeleteByWorkflow(ctx context.Context, workflowID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("workflow_id = ?", workflowID).Delete(&domain.Signature{}).Error
}
