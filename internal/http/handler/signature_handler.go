package handler

import (
	"net/http"

	"github.com/straye-as/cpq-api/internal/domain"
	"github.com/straye-as/cpq-api/internal/http/middleware"
	"github.com/straye-as/cpq-api/internal/service"
	"go.uber.org/zap"
)

type SignatureHandler struct {
	signatureService   *service.SignatureService
	certificateService *service.CertificateService
	logger             *zap.Logger
}

func NewSignatureHandler(signatureService *service.SignatureService, certificateService *service.CertificateService, logger *zap.Logger) *SignatureHandler {
	return &SignatureHandler{
		signatureService:   signatureService,
		certificateService: certificateService,
		logger:             logger,
	}
}

// @Summary Submit client signature
// @Description Stores the client's signature; the second of the two signatures issues the certificate
// @Tags Signatures
// @Accept json
// @Produce json
// @Param id path string true "Workflow ID"
// @Param request body domain.SubmitSignatureRequest true "Signature"
// @Success 201 {object} domain.SubmitSignatureResponse
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Router /api/agreements/submit-signature/{id} [post]
func (h *SignatureHandler) SubmitClientSignature(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, domain.SignatureRoleClient)
}

// @Summary Submit CEO signature
// @Tags Signatures
// @Accept json
// @Produce json
// @Param id path string true "Workflow ID"
// @Param request body domain.SubmitSignatureRequest true "Signature"
// @Success 201 {object} domain.SubmitSignatureResponse
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Router /api/agreements/submit-ceo-signature/{id} [post]
func (h *SignatureHandler) SubmitCEOSignature(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, domain.SignatureRoleCEO)
}

func (h *SignatureHandler) submit(w http.ResponseWriter, r *http.Request, role domain.SignatureRole) {
	id, ok := uuidParam(w, r, "id", "workflow ID")
	if !ok {
		return
	}

	var req domain.SubmitSignatureRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := h.signatureService.Submit(r.Context(), id, role, &req, middleware.ClientIP(r), r.UserAgent())
	if err != nil {
		handleServiceError(w, h.logger, err, "submit signature")
		return
	}

	respondJSON(w, http.StatusCreated, resp)
}

// @Summary List workflow signatures
// @Tags Signatures
// @Produce json
// @Param id path string true "Workflow ID"
// @Success 200 {object} domain.APIResponse{data=[]domain.SignatureDTO}
// @Failure 404 {object} domain.APIError
// @Router /api/agreements/signatures/{id} [get]
func (h *SignatureHandler) List(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id", "workflow ID")
	if !ok {
		return
	}

	signatures, err := h.signatureService.List(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.logger, err, "list signatures")
		return
	}

	respondOK(w, http.StatusOK, signatures, "")
}

// @Summary Get signature certificate
// @Tags Signatures
// @Produce json
// @Param id path string true "Workflow ID"
// @Success 200 {object} domain.APIResponse{data=domain.CertificateDTO}
// @Failure 404 {object} domain.APIError
// @Router /api/agreements/certificate/{id} [get]
func (h *SignatureHandler) GetCertificate(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id", "workflow ID")
	if !ok {
		return
	}

	cert, err := h.certificateService.GetByWorkflow(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.logger, err, "get certificate")
		return
	}

	respondOK(w, http.StatusOK, cert, "")
}

// @Summary Download signature certificate
// @Tags Signatures
// @Produce application/pdf
// @Param id path string true "Workflow ID"
// @Success 200 {file} binary
// @Failure 404 {object} domain.APIError
// @Router /api/agreements/download-certificate/{id} [get]
func (h *SignatureHandler) DownloadCertificate(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id", "workflow ID")
	if !ok {
		return
	}

	doc, err := h.certificateService.Download(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.logger, err, "download certificate")
		return
	}

	respondGenerated(w, doc)
}
