package domain

// APIError is the body of every failed request.
// Success is always false; Message is safe to show to end users.
type APIError struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Type    string            `json:"type"`
	Status  int               `json:"status"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

var validationMessages = map[string]string{
	"lt":       "Must be less than the allowed maximum",
	"url":      "Must be a valid URL",
	"len":      "Must have the exact required length",
	"numeric":  "Must be a numeric value",
	"alphanum": "Must contain only letters and digits",
	"datetime": "Must be a valid date",
}

// ValidationMessage returns the fallback message for validator tags the handlers
// do not format themselves
func ValidationMessage(tag string) string {
	if msg, ok := validationMessages[tag]; ok {
		return msg
	}
	return "Validation failed: " + tag
}

// Error types reported in APIError.Type
const (
	ErrorTypeValidation  = "validation_error"
	ErrorTypeNotFound    = "not_found"
	ErrorTypeBadRequest  = "bad_request"
	ErrorTypeConflict    = "conflict"
	ErrorTypeMethod      = "method_not_allowed"
	ErrorTypeRateLimited = "rate_limited"
	ErrorTypeUnavailable = "service_unavailable"
	ErrorTypeInternal    = "internal_error"
)
