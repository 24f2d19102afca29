package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/straye-as/cpq-api/internal/domain"
	"github.com/straye-as/cpq-api/internal/mapper"
	"github.com/straye-as/cpq-api/internal/pricing"
	"github.com/straye-as/cpq-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Quote sources reported by lookups
const (
	QuoteSourceManual  = "manual"
	QuoteSourceHubSpot = "hubspot"
)

// QuoteService prices, stores and resolves quotes
type QuoteService struct {
	quoteRepo     *repository.QuoteRepository
	hubspotRepo   *repository.HubSpotQuoteRepository
	statusLogRepo *repository.QuoteStatusLogRepository
	logger        *zap.Logger
}

func NewQuoteService(
	quoteRepo *repository.QuoteRepository,
	hubspotRepo *repository.HubSpotQuoteRepository,
	statusLogRepo *repository.QuoteStatusLogRepository,
	logger *zap.Logger,
) *QuoteService {
	return &QuoteService{
		quoteRepo:     quoteRepo,
		hubspotRepo:   hubspotRepo,
		statusLogRepo: statusLogRepo,
		logger:        logger,
	}
}

// Price runs the pricer over a calculator request
func (s *QuoteService) Price(req *domain.CreateQuoteRequest) (pricing.Result, error) {
	result, err := pricing.Calculate(pricing.Input{
		Users:          req.Users,
		InstanceType:   domain.InstanceType(req.InstanceType),
		Instances:      req.Instances,
		DurationMonths: req.Duration,
		MigrationType:  domain.MigrationType(req.MigrationType),
		DataSizeGB:     decimal.NewFromFloat(req.DataSize),
	})
	if err != nil {
		return pricing.Result{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return result, nil
}

// Create prices and stores a manual quote in draft status
func (s *QuoteService) Create(ctx context.Context, req *domain.CreateQuoteRequest) (*domain.CreateQuoteResponse, error) {
	result, err := s.Price(req)
	if err != nil {
		return nil, err
	}

	quote := &domain.Quote{
		Client:        clientFromRequest(req),
		Configuration: result.Input.Configuration(),
		Plans:         datatypes.NewJSONType(result.Plans()),
		Status:        domain.QuoteStatusDraft,
	}

	if err := s.quoteRepo.Create(ctx, quote); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageFailure, mapper.FormatError("quote", "create", err))
	}

	s.logStatus(ctx, quote.ID, domain.QuoteStatusDraft, "Quote created", "system")

	s.logger.Info("Quote created",
		zap.String("quote_id", quote.ID.String()),
		zap.String("client", quote.Client.Name),
		zap.Float64("standard_total", result.Plans().Standard.TotalCost),
	)

	return &domain.CreateQuoteResponse{
		Success: true,
		Quote:   quote.Plans.Data(),
		QuoteID: quote.ID.String(),
	}, nil
}

// ImportHubSpot prices and stores a quote sourced from a HubSpot deal
func (s *QuoteService) ImportHubSpot(ctx context.Context, req *domain.ImportHubSpotQuoteRequest) (*domain.QuoteDTO, error) {
	result, err := s.Price(&req.CreateQuoteRequest)
	if err != nil {
		return nil, err
	}

	quote := &domain.HubSpotQuote{
		HubSpotDealID:  req.DealID,
		HubSpotQuoteID: req.HubSpotQuoteID,
		Client:         clientFromRequest(&req.CreateQuoteRequest),
		Configuration:  result.Input.Configuration(),
		Plans:          datatypes.NewJSONType(result.Plans()),
		Status:         domain.QuoteStatusDraft,
	}

	if err := s.hubspotRepo.Create(ctx, quote); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageFailure, mapper.FormatError("hubspot quote", "create", err))
	}

	s.logger.Info("HubSpot quote imported",
		zap.String("quote_id", quote.ID.String()),
		zap.String("deal_id", quote.HubSpotDealID),
	)

	dto := mapper.ToHubSpotQuoteDTO(quote)
	return &dto, nil
}

// GetByID returns a manual quote
func (s *QuoteService) GetByID(ctx context.Context, id uuid.UUID) (*domain.QuoteDTO, error) {
	quote, err := s.quoteRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuoteNotFound
		}
		return nil, fmt.Errorf("failed to get quote: %w", err)
	}
	dto := mapper.ToQuoteDTO(quote)
	return &dto, nil
}

// List returns manual quotes newest first
func (s *QuoteService) List(ctx context.Context, page, pageSize int, status string) (*domain.PaginatedResponse, error) {
	if status != "" && !domain.QuoteStatus(status).IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
	}
	page, pageSize = repository.NormalizePagination(page, pageSize)

	quotes, total, err := s.quoteRepo.List(ctx, page, pageSize, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list quotes: %w", err)
	}

	dtos := make([]domain.QuoteDTO, len(quotes))
	for i := range quotes {
		dtos[i] = mapper.ToQuoteDTO(&quotes[i])
	}
	return paginated(dtos, total, page, pageSize), nil
}

// UpdateStatus changes the status of a quote and appends it to the status log
func (s *QuoteService) UpdateStatus(ctx context.Context, req *domain.UpdateQuoteStatusRequest, changedBy string) (*domain.QuoteDTO, error) {
	id, err := uuid.Parse(req.QuoteID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid quote id", ErrInvalidInput)
	}
	status := domain.QuoteStatus(req.Status)
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, req.Status)
	}

	if err := s.quoteRepo.UpdateFields(ctx, id, map[string]interface{}{"status": status}); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuoteNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}

	s.logStatus(ctx, id, status, req.Notes, changedBy)
	return s.GetByID(ctx, id)
}

// MarkSent records a successful quote email
func (s *QuoteService) MarkSent(ctx context.Context, id uuid.UUID, recipient string) error {
	now := time.Now()
	err := s.quoteRepo.UpdateFields(ctx, id, map[string]interface{}{
		"status":        domain.QuoteStatusSent,
		"email_sent_at": now,
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrQuoteNotFound
		}
		return fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}
	s.logStatus(ctx, id, domain.QuoteStatusSent, "Quote emailed to "+recipient, "system")
	return nil
}

// History returns the status log of a quote
func (s *QuoteService) History(ctx context.Context, id uuid.UUID) ([]domain.QuoteStatusLogDTO, error) {
	if _, err := s.quoteRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuoteNotFound
		}
		return nil, fmt.Errorf("failed to get quote: %w", err)
	}

	logs, err := s.statusLogRepo.ListByQuote(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list quote history: %w", err)
	}
	dtos := make([]domain.QuoteStatusLogDTO, len(logs))
	for i := range logs {
		dtos[i] = mapper.ToQuoteStatusLogDTO(&logs[i])
	}
	return dtos, nil
}

// Resolve finds a quote by an opaque identifier: manual quote id, HubSpot quote id,
// HubSpot deal id, then the newest quote whose client name, company or email contains
// the identifier, tried in that order.
func (s *QuoteService) Resolve(ctx context.Context, identifier string) (*domain.Quote, string, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil, "", fmt.Errorf("%w: quote identifier is required", ErrInvalidInput)
	}

	if id, err := uuid.Parse(identifier); err == nil {
		quote, err := s.quoteRepo.GetByID(ctx, id)
		if err == nil {
			return quote, QuoteSourceManual, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", fmt.Errorf("failed to get quote: %w", err)
		}

		hs, err := s.hubspotRepo.GetByID(ctx, id)
		if err == nil {
			return hs.AsQuote(), QuoteSourceHubSpot, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", fmt.Errorf("failed to get hubspot quote: %w", err)
		}
	}

	hs, err := s.hubspotRepo.GetByDealID(ctx, identifier)
	if err == nil {
		return hs.AsQuote(), QuoteSourceHubSpot, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", fmt.Errorf("failed to get hubspot quote by deal: %w", err)
	}

	term := repository.NormalizeSearchTerm(identifier)
	for _, column := range []string{"client_name", "client_company", "client_email"} {
		quote, source, err := s.latestByClientField(ctx, column, term)
		if err != nil {
			return nil, "", err
		}
		if quote != nil {
			return quote, source, nil
		}
	}

	return nil, "", fmt.Errorf("%w: no quote matches %q", ErrQuoteNotFound, identifier)
}

// Lookup exposes Resolve as a DTO
func (s *QuoteService) Lookup(ctx context.Context, identifier string) (*domain.QuoteDTO, error) {
	quote, source, err := s.Resolve(ctx, identifier)
	if err != nil {
		return nil, err
	}
	dto := mapper.ToQuoteDTO(quote)
	dto.Source = source
	return &dto, nil
}

// latestByClientField picks the newer of the manual and HubSpot matches on one column
func (s *QuoteService) latestByClientField(ctx context.Context, column, term string) (*domain.Quote, string, error) {
	manual, err := s.quoteRepo.FindLatestByClientField(ctx, column, term)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", fmt.Errorf("failed to search quotes: %w", err)
	}
	hs, err := s.hubspotRepo.FindLatestByClientField(ctx, column, term)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", fmt.Errorf("failed to search hubspot quotes: %w", err)
	}

	switch {
	case manual != nil && hs != nil:
		if hs.CreatedAt.After(manual.CreatedAt) {
			return hs.AsQuote(), QuoteSourceHubSpot, nil
		}
		return manual, QuoteSourceManual, nil
	case manual != nil:
		return manual, QuoteSourceManual, nil
	case hs != nil:
		return hs.AsQuote(), QuoteSourceHubSpot, nil
	}
	return nil, "", nil
}

func (s *QuoteService) logStatus(ctx context.Context, quoteID uuid.UUID, status domain.QuoteStatus, notes, changedBy string) {
	if changedBy == "" {
		changedBy = "system"
	}
	entry := &domain.QuoteStatusLog{
		QuoteID:   quoteID,
		Status:    status,
		Notes:     notes,
		ChangedBy: changedBy,
	}
	if err := s.statusLogRepo.Create(ctx, entry); err != nil {
		s.logger.Warn("failed to record quote status change",
			zap.String("quote_id", quoteID.String()),
			zap.Error(err),
		)
	}
}

func clientFromRequest(req *domain.CreateQuoteRequest) domain.ClientProfile {
	return domain.ClientProfile{
		Name:         strings.TrimSpace(req.ClientName),
		Company:      strings.TrimSpace(req.CompanyName),
		Email:        strings.TrimSpace(req.Email),
		Phone:        strings.TrimSpace(req.PhoneNumber),
		ServiceType:  strings.TrimSpace(req.ServiceType),
		Requirements: req.Requirements,
	}
}

func paginated(data interface{}, total int64, page, pageSize int) *domain.PaginatedResponse {
	totalPages := int(total) / pageSize
	if int(total)%pageSize != 0 {
		totalPages++
	}
	return &domain.PaginatedResponse{
		Success:    true,
		Data:       data,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}
