package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/straye-as/cpq-api/internal/domain"
	"gorm.io/gorm"
)

type DocumentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

func (r *DocumentRepository) Create(ctx context.Context, doc *domain.Document) error {
	return r.db.WithContext(ctx).Create(doc).Error
}

func (r *DocumentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Document, error) {
	var doc domain.Document
	err := r.db.WithContext(ctx).First(&doc, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *DocumentRepository) Update(ctx context.Context, doc *domain.Document) error {
	return r.db.WithContext(ctx).Save(doc).Error
}

func (r *DocumentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Document{}, "id = ?", id).Error
}

// List returns documents newest first, optionally filtered by kind and owning quote
func (r *DocumentRepository) List(ctx context.Context, kind domain.DocumentKind, quoteID *uuid.UUID, page, pageSize int) ([]domain.Document, int64, error) {
	var docs []domain.Document
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.Document{})
	if kind != "" {
		query = query.Where("kind = ?", kind)
	}
	if quoteID != nil {
		query = query.Where("quote_id = ?", *quoteID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Payload can be large; it is only loaded by GetByID.
	err := paginate(query, page, pageSize).
		Omit("payload").
		Order("created_at DESC").
		Find(&docs).Error
	return docs, total, err
}

// ListAll returns every document including payloads, oldest first
func (r *DocumentRepository) ListAll(ctx context.Context) ([]domain.Document, error) {
	var docs []domain.Document
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&docs).Error
	return docs, err
}
