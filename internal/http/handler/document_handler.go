package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/straye-as/cpq-api/internal/domain"
	"github.com/straye-as/cpq-api/internal/service"
	"go.uber.org/zap"
)

type DocumentHandler struct {
	documentService *service.DocumentService
	logger          *zap.Logger
}

func NewDocumentHandler(documentService *service.DocumentService, logger *zap.Logger) *DocumentHandler {
	return &DocumentHandler{
		documentService: documentService,
		logger:          logger,
	}
}

// @Summary Generate quote PDF
// @Description Renders a quote PDF from a stored quote or an ad-hoc configuration. Prices are always recomputed.
// @Tags Documents
// @Accept json
// @Produce application/pdf
// @Param request body domain.GeneratePDFRequest true "Quote reference or client and configuration"
// @Success 200 {file} binary
// @Header 200 {string} X-Document-ID "Stored document id"
// @Failure 400 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Router /api/generate-pdf [post]
func (h *DocumentHandler) GeneratePDF(w http.ResponseWriter, r *http.Request) {
	var req domain.GeneratePDFRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	generated, err := h.documentService.GenerateQuotePDF(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.logger, err, "generate quote PDF")
		return
	}

	respondGenerated(w, generated)
}

// @Summary List documents
// @Tags Documents
// @Produce json
// @Param kind query string false "Document kind" Enums(pdf_quote, agreement, certificate)
// @Param quote_id query string false "Quote ID"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Success 200 {object} domain.PaginatedResponse{data=[]domain.DocumentDTO}
// @Failure 400 {object} domain.APIError
// @Router /api/documents [get]
func (h *DocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := parsePagination(r)

	var quoteID *uuid.UUID
	if raw := r.URL.Query().Get("quote_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid quote_id: must be a valid UUID")
			return
		}
		quoteID = &id
	}

	result, err := h.documentService.List(r.Context(), r.URL.Query().Get("kind"), quoteID, page, pageSize)
	if err != nil {
		handleServiceError(w, h.logger, err, "list documents")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// @Summary Get document metadata
// @Tags Documents
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {object} domain.APIResponse{data=domain.DocumentDTO}
// @Failure 404 {object} domain.APIError
// @Router /api/documents/{id} [get]
func (h *DocumentHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id", "document ID")
	if !ok {
		return
	}

	doc, err := h.documentService.GetByID(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.logger, err, "get document")
		return
	}

	respondOK(w, http.StatusOK, doc, "")
}

// @Summary Download document
// @Description Returns the stored file, restoring or regenerating it when missing
// @Tags Documents
// @Produce application/octet-stream
// @Param id path string true "Document ID"
// @Success 200 {file} binary
// @Failure 404 {object} domain.APIError
// @Router /api/documents/{id}/download [get]
// @Router /api/agreements/download/{id} [get]
func (h *DocumentHandler) Download(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id", "document ID")
	if !ok {
		return
	}

	opened, err := h.documentService.Open(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.logger, err, "download document")
		return
	}

	respondGenerated(w, opened)
}
