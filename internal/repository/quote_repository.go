package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/straye-as/cpq-api/internal/domain"
	"gorm.io/gorm"
)

// QuoteRepository handles database operations for manually captured quotes
type QuoteRepository struct {
	db *gorm.DB
}

func NewQuoteRepository(db *gorm.DB) *QuoteRepository {
	return &QuoteRepository{db: db}
}

func (r *QuoteRepository) Create(ctx context.Context, quote *domain.Quote) error {
	return r.db.WithContext(ctx).Create(quote).Error
}

func (r *QuoteRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Quote, error) {
	var quote domain.Quote
	err := r.db.WithContext(ctx).First(&quote, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

// UpdateFields updates selected columns and reports gorm.ErrRecordNotFound when no row matched
func (r *QuoteRepository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(&domain.Quote{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *QuoteRepository) List(ctx context.Context, page, pageSize int, status string) ([]domain.Quote, int64, error) {
	var quotes []domain.Quote
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.Quote{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := paginate(query, page, pageSize).Order("created_at DESC").Find(&quotes).Error
	return quotes, total, err
}

// FindLatestByClientField returns the most recent quote whose client column contains the term.
// column must be "client_name" or "client_company".
func (r *QuoteRepository) FindLatestByClientField(ctx context.Context, column, term string) (*domain.Quote, error) {
	if !isClientSearchColumn(column) {
		return nil, errors.New("unsupported search column: " + column)
	}
	var quote domain.Quote
	err := r.db.WithContext(ctx).
		Where(likeLower(column), containsPattern(term)).
		Order("created_at DESC").
		First(&quote).Error
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

// HubSpotQuoteRepository handles database operations for HubSpot-sourced quotes
type HubSpotQuoteRepository struct {
	db *gorm.DB
}

func NewHubSpotQuoteRepository(db *gorm.DB) *HubSpotQuoteRepository {
	return &HubSpotQuoteRepository{db: db}
}

func (r *HubSpotQuoteRepository) Create(ctx context.Context, quote *domain.HubSpotQuote) error {
	return r.db.WithContext(ctx).Create(quote).Error
}

func (r *HubSpotQuoteRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.HubSpotQuote, error) {
	var quote domain.HubSpotQuote
	err := r.db.WithContext(ctx).First(&quote, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

func (r *HubSpotQuoteRepository) GetByDealID(ctx context.Context, dealID string) (*domain.HubSpotQuote, error) {
	var quote domain.HubSpotQuote
	err := r.db.WithContext(ctx).
		Where("hubspot_deal_id = ?", dealID).
		Order("created_at DESC").
		First(&quote).Error
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

func (r *HubSpotQuoteRepository) List(ctx context.Context, page, pageSize int) ([]domain.HubSpotQuote, int64, error) {
	var quotes []domain.HubSpotQuote
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.HubSpotQuote{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := paginate(query, page, pageSize).Order("created_at DESC").Find(&quotes).Error
	return quotes, total, err
}

// FindLatestByClientField mirrors QuoteRepository.FindLatestByClientField for HubSpot quotes
func (r *HubSpotQuoteRepository) FindLatestByClientField(ctx context.Context, column, term string) (*domain.HubSpotQuote, error) {
	if !isClientSearchColumn(column) {
		return nil, errors.New("unsupported search column: " + column)
	}
	var quote domain.HubSpotQuote
	err := r.db.WithContext(ctx).
		Where(likeLower(column), containsPattern(term)).
		Order("created_at DESC").
		First(&quote).Error
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

func isClientSearchColumn(column string) bool {
	return column == "client_name" || column == "client_company" || column == "client_email"
}

// QuoteStatusLogRepository stores the quote status history
type QuoteStatusLogRepository struct {
	db *gorm.DB
}

func NewQuoteStatusLogRepository(db *gorm.DB) *QuoteStatusLogRepository {
	return &QuoteStatusLogRepository{db: db}
}

func (r *QuoteStatusLogRepository) Create(ctx context.Context, entry *domain.QuoteStatusLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *QuoteStatusLogRepository) ListByQuote(ctx context.Context, quoteID uuid.UUID) ([]domain.QuoteStatusLog, error) {
	var entries []domain.QuoteStatusLog
	err := r.db.WithContext(ctx).
		Where("quote_id = ?", quoteID).
		Order("created_at ASC").
		Find(&entries).Error
	return entries, err
}
