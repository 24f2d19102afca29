package handler

import (
	"fmt"
	"io"
	"net/http"

	"github.com/straye-as/cpq-api/internal/domain"
	"github.com/straye-as/cpq-api/internal/service"
	"go.uber.org/zap"
)

type TemplateHandler struct {
	templateService *service.TemplateService
	maxUploadMB     int64
	logger          *zap.Logger
}

func NewTemplateHandler(templateService *service.TemplateService, maxUploadMB int64, logger *zap.Logger) *TemplateHandler {
	return &TemplateHandler{
		templateService: templateService,
		maxUploadMB:     maxUploadMB,
		logger:          logger,
	}
}

// @Summary Create template
// @Description Creates an HTML template or a builder template made of ordered blocks
// @Tags Templates
// @Accept json
// @Produce json
// @Param request body domain.CreateTemplateRequest true "Template definition"
// @Success 201 {object} domain.APIResponse{data=domain.TemplateDTO}
// @Failure 400 {object} domain.APIError
// @Router /api/templates [post]
func (h *TemplateHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateTemplateRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	tmpl, err := h.templateService.Create(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.logger, err, "create template")
		return
	}

	respondOK(w, http.StatusCreated, tmpl, "Template created")
}

// @Summary Upload DOCX template
// @Tags Templates
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "DOCX template"
// @Param name formData string false "Template name, defaults to the file name"
// @Param description formData string false "Template description"
// @Success 201 {object} domain.APIResponse{data=domain.TemplateDTO}
// @Failure 400 {object} domain.APIError
// @Failure 413 {object} domain.APIError
// @Router /api/templates/upload [post]
func (h *TemplateHandler) Upload(w http.ResponseWriter, r *http.Request) {
	limit := h.maxUploadMB * 1024 * 1024
	r.Body = http.MaxBytesReader(w, r.Body, limit)

	if err := r.ParseMultipartForm(limit); err != nil {
		respondWithError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("File too large: maximum size is %dMB", h.maxUploadMB))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid file upload: file field is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Failed to read uploaded file")
		return
	}

	tmpl, err := h.templateService.UploadDOCX(r.Context(), r.FormValue("name"), r.FormValue("description"), header.Filename, data)
	if err != nil {
		handleServiceError(w, h.logger, err, "upload template")
		return
	}

	respondOK(w, http.StatusCreated, tmpl, "Template uploaded")
}

// @Summary List templates
// @Tags Templates
// @Produce json
// @Param kind query string false "Template kind" Enums(html, docx, builder)
// @Success 200 {object} domain.APIResponse{data=[]domain.TemplateDTO}
// @Router /api/templates [get]
func (h *TemplateHandler) List(w http.ResponseWriter, r *http.Request) {
	templates, err := h.templateService.List(r.Context(), r.URL.Query().Get("kind"))
	if err != nil {
		handleServiceError(w, h.logger, err, "list templates")
		return
	}

	respondOK(w, http.StatusOK, templates, "")
}

// @Summary Get template
// @Tags Templates
// @Produce json
// @Param id path string true "Template ID"
// @Success 200 {object} domain.APIResponse{data=domain.TemplateDTO}
// @Failure 404 {object} domain.APIError
// @Router /api/templates/{id} [get]
func (h *TemplateHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id", "template ID")
	if !ok {
		return
	}

	tmpl, err := h.templateService.GetByID(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.logger, err, "get template")
		return
	}

	respondOK(w, http.StatusOK, tmpl, "")
}

// @Summary Delete template
// @Description Deactivates the template; documents generated from it are kept
// @Tags Templates
// @Produce json
// @Param id path string true "Template ID"
// @Success 204
// @Failure 404 {object} domain.APIError
// @Router /api/templates/{id} [delete]
func (h *TemplateHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id", "template ID")
	if !ok {
		return
	}

	if err := h.templateService.Delete(r.Context(), id); err != nil {
		handleServiceError(w, h.logger, err, "delete template")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
