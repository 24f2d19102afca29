package handler

import (
	"net/http"

	"github.com/straye-as/cpq-api/internal/domain"
	"github.com/straye-as/cpq-api/internal/service"
	"go.uber.org/zap"
)

type AgreementHandler struct {
	documentService *service.DocumentService
	logger          *zap.Logger
}

func NewAgreementHandler(documentService *service.DocumentService, logger *zap.Logger) *AgreementHandler {
	return &AgreementHandler{
		documentService: documentService,
		logger:          logger,
	}
}

// @Summary Build agreement from quote
// @Description Resolves the quote identifier and returns the agreement data with its line-item pricing table
// @Tags Agreements
// @Accept json
// @Produce json
// @Param request body domain.GenerateAgreementRequest true "Quote identifier, optional template and plan"
// @Success 200 {object} domain.APIResponse{data=domain.AgreementDTO}
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Router /api/agreements/generate-from-quote [post]
func (h *AgreementHandler) GenerateFromQuote(w http.ResponseWriter, r *http.Request) {
	var req domain.GenerateAgreementRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	agreement, err := h.documentService.BuildAgreement(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.logger, err, "build agreement")
		return
	}

	respondOK(w, http.StatusOK, agreement, "")
}

// @Summary Generate agreement PDF
// @Tags Agreements
// @Accept json
// @Produce application/pdf
// @Param request body domain.GenerateAgreementRequest true "Quote identifier, optional template and plan"
// @Success 200 {file} binary
// @Header 200 {string} X-Document-ID "Stored document id"
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Router /api/agreements/generate-pdf [post]
func (h *AgreementHandler) GeneratePDF(w http.ResponseWriter, r *http.Request) {
	var req domain.GenerateAgreementRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	generated, err := h.documentService.GenerateAgreementPDF(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.logger, err, "generate agreement PDF")
		return
	}

	respondGenerated(w, generated)
}

// @Summary Generate agreement DOCX
// @Description Fills a DOCX template with the quote's agreement data
// @Tags Agreements
// @Accept json
// @Produce application/vnd.openxmlformats-officedocument.wordprocessingml.document
// @Param request body domain.GenerateAgreementRequest true "Quote identifier and DOCX template"
// @Success 200 {file} binary
// @Header 200 {string} X-Document-ID "Stored document id"
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Router /api/agreements/generate-docx [post]
func (h *AgreementHandler) GenerateDOCX(w http.ResponseWriter, r *http.Request) {
	var req domain.GenerateAgreementRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	if req.TemplateID == "" {
		respondWithError(w, http.StatusBadRequest, "template_id is required for DOCX agreements")
		return
	}

	generated, err := h.documentService.GenerateAgreementDOCX(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.logger, err, "generate agreement DOCX")
		return
	}

	respondGenerated(w, generated)
}
