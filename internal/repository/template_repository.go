package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/straye-as/cpq-api/internal/domain"
	"gorm.io/gorm"
)

type TemplateRepository struct {
	db *gorm.DB
}

func NewTemplateRepository(db *gorm.DB) *TemplateRepository {
	return &TemplateRepository{db: db}
}

func (r *TemplateRepository) Create(ctx context.Context, tmpl *domain.Template) error {
	return r.db.WithContext(ctx).Create(tmpl).Error
}

// GetByID returns an active template
func (r *TemplateRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Template, error) {
	var tmpl domain.Template
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", id, true).
		First(&tmpl).Error
	if err != nil {
		return nil, err
	}
	return &tmpl, nil
}

// List returns active templates, optionally filtered by kind
func (r *TemplateRepository) List(ctx context.Context, kind domain.TemplateKind) ([]domain.Template, error) {
	var templates []domain.Template
	query := r.db.WithContext(ctx).Where("is_active = ?", true)
	if kind != "" {
		query = query.Where("kind = ?", kind)
	}
	err := query.Omit("blob").Order("created_at DESC").Find(&templates).Error
	return templates, err
}

// SoftDelete marks a template inactive
func (r *TemplateRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&domain.Template{}).
		Where("id = ? AND is_active = ?", id, true).
		Update("is_active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
