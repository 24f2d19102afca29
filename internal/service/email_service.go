package service

import (
	"context"
	"fmt"

	"github.com/straye-as/cpq-api/internal/domain"
	"github.com/straye-as/cpq-api/internal/notify"
	"github.com/straye-as/cpq-api/internal/storage"
	"go.uber.org/zap"
)

// QuoteMailer sends standalone quote emails and checks the mail transport
type QuoteMailer interface {
	SendQuote(ctx context.Context, q notify.QuoteEmail, att *notify.Attachment) error
	Ping(ctx context.Context) error
}

// EmailService sends quotes outside of an approval workflow.
// Unlike workflow notifications, delivery failures surface to the caller.
type EmailService struct {
	quotes    *QuoteService
	documents *DocumentService
	mailer    QuoteMailer
	logger    *zap.Logger
}

func NewEmailService(quotes *QuoteService, documents *DocumentService, mailer QuoteMailer, logger *zap.Logger) *EmailService {
	return &EmailService{
		quotes:    quotes,
		documents: documents,
		mailer:    mailer,
		logger:    logger,
	}
}

// SendQuote renders the quote PDF, emails it and marks the quote as sent
func (s *EmailService) SendQuote(ctx context.Context, req *domain.SendQuoteEmailRequest) error {
	quote, source, err := s.quotes.Resolve(ctx, req.QuoteID)
	if err != nil {
		return err
	}

	pdf, err := s.documents.renderQuotePDF(ctx, quote)
	if err != nil {
		return err
	}

	client := quote.Client.Company
	if client == "" {
		client = quote.Client.Name
	}
	att := &notify.Attachment{
		Filename:    storage.ArtifactName("quote", client, "pdf", s.documents.now()),
		ContentType: pdfContentType,
		Data:        pdf,
	}

	err = s.mailer.SendQuote(ctx, notify.QuoteEmail{
		To:            req.RecipientEmail,
		RecipientName: req.RecipientName,
		CompanyName:   req.CompanyName,
		Quote:         quote,
	}, att)
	if err != nil {
		s.logger.Error("failed to send quote email",
			zap.String("quote_id", quote.ID.String()),
			zap.String("recipient", req.RecipientEmail),
			zap.Error(err),
		)
		return fmt.Errorf("%w: %v", ErrNotifyFailure, err)
	}

	s.logger.Info("Quote email sent",
		zap.String("quote_id", quote.ID.String()),
		zap.String("recipient", req.RecipientEmail),
	)

	if source != QuoteSourceManual {
		return nil
	}
	if err := s.quotes.MarkSent(ctx, quote.ID, req.RecipientEmail); err != nil {
		s.logger.Warn("failed to mark quote as sent",
			zap.String("quote_id", quote.ID.String()), zap.Error(err))
	}
	return nil
}

// TestConnection dials the configured mail transport
func (s *EmailService) TestConnection(ctx context.Context) error {
	if err := s.mailer.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrNotifyFailure, err)
	}
	return nil
}
