package handler

import (
	"net/http"

	"github.com/straye-as/cpq-api/internal/domain"
	"github.com/straye-as/cpq-api/internal/service"
	"go.uber.org/zap"
)

type EmailHandler struct {
	emailService *service.EmailService
	logger       *zap.Logger
}

func NewEmailHandler(emailService *service.EmailService, logger *zap.Logger) *EmailHandler {
	return &EmailHandler{
		emailService: emailService,
		logger:       logger,
	}
}

// @Summary Email a quote
// @Description Sends the quote PDF to the recipient and marks the quote as sent
// @Tags Email
// @Accept json
// @Produce json
// @Param request body domain.SendQuoteEmailRequest true "Quote and recipient"
// @Success 200 {object} domain.APIResponse
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Router /api/quote/send-email [post]
func (h *EmailHandler) SendQuote(w http.ResponseWriter, r *http.Request) {
	var req domain.SendQuoteEmailRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.emailService.SendQuote(r.Context(), &req); err != nil {
		handleServiceError(w, h.logger, err, "send quote email")
		return
	}

	respondOK(w, http.StatusOK, nil, "Quote sent to "+req.RecipientEmail)
}

// @Summary Test mail connection
// @Tags Email
// @Produce json
// @Success 200 {object} domain.APIResponse
// @Failure 500 {object} domain.APIError
// @Router /api/email/test-connection [get]
func (h *EmailHandler) TestConnection(w http.ResponseWriter, r *http.Request) {
	if err := h.emailService.TestConnection(r.Context()); err != nil {
		handleServiceError(w, h.logger, err, "connect to mail server")
		return
	}

	respondOK(w, http.StatusOK, nil, "Mail server connection successful")
}
