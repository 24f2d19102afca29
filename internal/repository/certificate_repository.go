package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/straye-as/cpq-api/internal/domain"
	"gorm.io/gorm"
)

type CertificateRepository struct {
	db *gorm.DB
}

func NewCertificateRepository(db *gorm.DB) *CertificateRepository {
	return &CertificateRepository{db: db}
}

// Create inserts a certificate. The unique index on workflow_id enforces one certificate per workflow.
func (r *CertificateRepository) Create(ctx context.Context, cert *domain.SignatureCertificate) error {
	return r.db.WithContext(ctx).Create(cert).Error
}

func (r *CertificateRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.SignatureCertificate, error) {
	var cert domain.SignatureCertificate
	err := r.db.WithContext(ctx).First(&cert, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &cert, nil
}

func (r *CertificateRepository) GetByWorkflowID(ctx context.Context, workflowID uuid.UUID) (*domain.SignatureCertificate, error) {
	var cert domain.SignatureCertificate
	err := r.db.WithContext(ctx).First(&cert, "workflow_id = ?", workflowID).Error
	if err != nil {
		return nil, err
	}
	return &cert, nil
}

func (r *CertificateRepository) ExistsForWorkflow(ctx context.Context, workflowID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.SignatureCertificate{}).
		Where("workflow_id = ?", workflowID).
		Count(&count).Error
	return count > 0, err
}

// SetDocument links the stored certificate artifact
func (r *CertificateRepository) SetDocument(ctx context.Context, id uuid.UUID, documentID uuid.UUID, filePath string) error {
	return r.db.WithContext(ctx).
		Model(&domain.SignatureCertificate{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"document_id": documentID,
			"file_path":   filePath,
		}).Error
}
