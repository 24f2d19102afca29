package handler

import (
	"net/http"
	"strings"

	"github.com/straye-as/cpq-api/internal/domain"
	"github.com/straye-as/cpq-api/internal/render"
	"github.com/straye-as/cpq-api/internal/service"
	"go.uber.org/zap"
)

// changedByHeader optionally names the user behind a status change
const changedByHeader = "X-User-Email"

type QuoteHandler struct {
	quoteService    *service.QuoteService
	documentService *service.DocumentService
	logger          *zap.Logger
}

func NewQuoteHandler(quoteService *service.QuoteService, documentService *service.DocumentService, logger *zap.Logger) *QuoteHandler {
	return &QuoteHandler{
		quoteService:    quoteService,
		documentService: documentService,
		logger:          logger,
	}
}

// @Summary Calculate and store a quote
// @Description Prices the configuration for all three plans and stores the quote
// @Tags Quotes
// @Accept json
// @Produce json
// @Param request body domain.CreateQuoteRequest true "Client and configuration"
// @Success 201 {object} domain.CreateQuoteResponse
// @Failure 400 {object} domain.APIError
// @Router /api/quote [post]
func (h *QuoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateQuoteRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := h.quoteService.Create(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.logger, err, "create quote")
		return
	}

	respondJSON(w, http.StatusCreated, resp)
}

// @Summary Import a HubSpot quote
// @Tags Quotes
// @Accept json
// @Produce json
// @Param request body domain.ImportHubSpotQuoteRequest true "HubSpot deal and configuration"
// @Success 201 {object} domain.APIResponse{data=domain.QuoteDTO}
// @Failure 400 {object} domain.APIError
// @Router /api/hubspot/quotes [post]
func (h *QuoteHandler) ImportHubSpot(w http.ResponseWriter, r *http.Request) {
	var req domain.ImportHubSpotQuoteRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	quote, err := h.quoteService.ImportHubSpot(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.logger, err, "import HubSpot quote")
		return
	}

	respondOK(w, http.StatusCreated, quote, "HubSpot quote stored")
}

// @Summary List quotes
// @Tags Quotes
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Param status query string false "Filter by status" Enums(draft, sent, accepted, rejected)
// @Success 200 {object} domain.PaginatedResponse{data=[]domain.QuoteDTO}
// @Router /api/quotes [get]
func (h *QuoteHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := parsePagination(r)

	result, err := h.quoteService.List(r.Context(), page, pageSize, r.URL.Query().Get("status"))
	if err != nil {
		handleServiceError(w, h.logger, err, "list quotes")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// @Summary Get quote
// @Tags Quotes
// @Produce json
// @Param id path string true "Quote ID"
// @Success 200 {object} domain.APIResponse{data=domain.QuoteDTO}
// @Failure 404 {object} domain.APIError
// @Router /api/quotes/{id} [get]
func (h *QuoteHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id", "quote ID")
	if !ok {
		return
	}

	quote, err := h.quoteService.GetByID(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.logger, err, "get quote")
		return
	}

	respondOK(w, http.StatusOK, quote, "")
}

// @Summary Look up a quote
// @Description Resolves a quote id, HubSpot deal id, client email or client name to the most recent quote
// @Tags Quotes
// @Produce json
// @Param q query string true "Quote identifier"
// @Success 200 {object} domain.APIResponse{data=domain.QuoteDTO}
// @Failure 404 {object} domain.APIError
// @Router /api/quotes/lookup [get]
func (h *QuoteHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		respondWithError(w, http.StatusBadRequest, "Query parameter q is required")
		return
	}

	quote, err := h.quoteService.Lookup(r.Context(), q)
	if err != nil {
		handleServiceError(w, h.logger, err, "look up quote")
		return
	}

	respondOK(w, http.StatusOK, quote, "")
}

// @Summary Update quote status
// @Tags Quotes
// @Accept json
// @Produce json
// @Param request body domain.UpdateQuoteStatusRequest true "New status"
// @Success 200 {object} domain.APIResponse{data=domain.QuoteDTO}
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Router /api/quote/status [post]
func (h *QuoteHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateQuoteStatusRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	changedBy := r.Header.Get(changedByHeader)
	if changedBy == "" {
		changedBy = "api"
	}

	quote, err := h.quoteService.UpdateStatus(r.Context(), &req, changedBy)
	if err != nil {
		handleServiceError(w, h.logger, err, "update quote status")
		return
	}

	respondOK(w, http.StatusOK, quote, "Quote status updated")
}

// @Summary Quote status history
// @Tags Quotes
// @Produce json
// @Param id path string true "Quote ID"
// @Success 200 {object} domain.APIResponse{data=[]domain.QuoteStatusLogDTO}
// @Failure 404 {object} domain.APIError
// @Router /api/quotes/{id}/history [get]
func (h *QuoteHandler) History(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id", "quote ID")
	if !ok {
		return
	}

	history, err := h.quoteService.History(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.logger, err, "get quote history")
		return
	}

	respondOK(w, http.StatusOK, history, "")
}

// @Summary Export quote pricing
// @Description XLSX workbook with the three plans side by side
// @Tags Quotes
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path string true "Quote ID"
// @Success 200 {file} binary
// @Failure 404 {object} domain.APIError
// @Router /api/quotes/{id}/export [get]
func (h *QuoteHandler) Export(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id", "quote ID")
	if !ok {
		return
	}

	data, filename, err := h.documentService.ExportQuoteWorkbook(r.Context(), id.String())
	if err != nil {
		handleServiceError(w, h.logger, err, "export quote")
		return
	}

	respondFile(w, filename, render.XLSXContentType, data)
}
