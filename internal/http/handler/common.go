package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/straye-as/cpq-api/internal/domain"
	"github.com/straye-as/cpq-api/internal/service"
	"go.uber.org/zap"
)

var validate = newValidator()

// newValidator reports field errors under their json names
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

const (
	defaultPageSize = 20
	maxPageSize     = 200
)

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// respondOK wraps data in the standard success envelope
func respondOK(w http.ResponseWriter, status int, data interface{}, message string) {
	respondJSON(w, status, domain.APIResponse{
		Success: true,
		Data:    data,
		Message: message,
	})
}

// respondFile writes a binary artifact as an attachment
func respondFile(w http.ResponseWriter, filename, contentType string, data []byte) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// respondValidationError sends a standardized validation error response with specific field messages
func respondValidationError(w http.ResponseWriter, err error) {
	fieldErrors := make(map[string]string)
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			fieldErrors[fe.Field()] = formatValidationError(fe)
		}
	}

	respondJSON(w, http.StatusBadRequest, domain.APIError{
		Success: false,
		Message: "One or more fields failed validation",
		Type:    domain.ErrorTypeValidation,
		Status:  http.StatusBadRequest,
		Errors:  fieldErrors,
	})
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return "Must be a valid email address"
	case "max":
		return fmt.Sprintf("Must be at most %s characters", fe.Param())
	case "min":
		return fmt.Sprintf("Must be at least %s characters", fe.Param())
	case "gte":
		return fmt.Sprintf("Must be greater than or equal to %s", fe.Param())
	case "gt":
		return fmt.Sprintf("Must be greater than %s", fe.Param())
	case "lte":
		return fmt.Sprintf("Must be less than or equal to %s", fe.Param())
	case "uuid":
		return "Must be a valid UUID"
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", fe.Param())
	default:
		return domain.ValidationMessage(fe.Tag())
	}
}

// decodeAndValidate reads a JSON body into dst and runs struct validation.
// It writes the error response itself and reports whether the handler may continue.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	if err := validate.Struct(dst); err != nil {
		respondValidationError(w, err)
		return false
	}
	return true
}

// respondWithError sends a standardized JSON error response
func respondWithError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, domain.APIError{
		Success: false,
		Message: message,
		Type:    getErrorType(status),
		Status:  status,
	})
}

// getErrorType returns the appropriate error type for an HTTP status code
func getErrorType(status int) string {
	switch status {
	case http.StatusBadRequest:
		return domain.ErrorTypeBadRequest
	case http.StatusNotFound:
		return domain.ErrorTypeNotFound
	case http.StatusMethodNotAllowed:
		return domain.ErrorTypeMethod
	case http.StatusConflict:
		return domain.ErrorTypeConflict
	case http.StatusTooManyRequests:
		return domain.ErrorTypeRateLimited
	case http.StatusServiceUnavailable:
		return domain.ErrorTypeUnavailable
	default:
		return domain.ErrorTypeInternal
	}
}

// NotFound answers unknown routes
func NotFound(w http.ResponseWriter, r *http.Request) {
	respondWithError(w, http.StatusNotFound, "Resource not found")
}

// MethodNotAllowed answers known routes called with the wrong method
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	respondWithError(w, http.StatusMethodNotAllowed, fmt.Sprintf("Method %s not allowed", r.Method))
}

// handleServiceError maps the service error kinds to status codes.
// Client errors carry the service message; server errors carry a generic one.
func handleServiceError(w http.ResponseWriter, logger *zap.Logger, err error, action string) {
	switch {
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrInvalidLink):
		respondWithError(w, http.StatusBadRequest, clientMessage(err))
	case errors.Is(err, service.ErrQuoteNotFound):
		respondWithError(w, http.StatusNotFound, "Quote not found")
	case errors.Is(err, service.ErrDocumentNotFound):
		respondWithError(w, http.StatusNotFound, "Document not found")
	case errors.Is(err, service.ErrTemplateNotFound):
		respondWithError(w, http.StatusNotFound, "Template not found")
	case errors.Is(err, service.ErrWorkflowNotFound):
		respondWithError(w, http.StatusNotFound, "Workflow not found")
	case errors.Is(err, service.ErrCertificateNotFound):
		respondWithError(w, http.StatusNotFound, "Certificate not found")
	case errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrAlreadyDecided),
		errors.Is(err, service.ErrSignatureExists):
		respondWithError(w, http.StatusConflict, clientMessage(err))
	case errors.Is(err, service.ErrConcurrentUpdate):
		respondWithError(w, http.StatusConflict, "Workflow was updated by another request, reload and try again")
	case errors.Is(err, service.ErrRenderFailure):
		logger.Error("failed to "+action, zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to render document")
	case errors.Is(err, service.ErrStorageFailure):
		logger.Error("failed to "+action, zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to store document")
	case errors.Is(err, service.ErrNotifyFailure):
		logger.Error("failed to "+action, zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to send email")
	case errors.Is(err, service.ErrIntegrationFailure):
		logger.Error("failed to "+action, zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "External integration failed")
	default:
		logger.Error("failed to "+action, zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to "+action)
	}
}

// clientMessage capitalizes a wrapped service error for display
func clientMessage(err error) string {
	msg := err.Error()
	if msg == "" {
		return msg
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}

// parsePagination reads page and pageSize with the standard defaults and bounds
func parsePagination(r *http.Request) (int, int) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}

// uuidParam parses a UUID path parameter and writes a 400 when it is malformed
func uuidParam(w http.ResponseWriter, r *http.Request, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, fmt.Sprintf("Invalid %s: must be a valid UUID", label))
		return uuid.Nil, false
	}
	return id, true
}

// documentIDHeader exposes the stored document id on binary responses
const documentIDHeader = "X-Document-ID"

// respondGenerated writes a freshly stored artifact and its document id
func respondGenerated(w http.ResponseWriter, generated *service.GeneratedDocument) {
	w.Header().Set(documentIDHeader, generated.Document.ID.String())
	respondFile(w, generated.Document.Filename, generated.Document.ContentType, generated.Data)
}
