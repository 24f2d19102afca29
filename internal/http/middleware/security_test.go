package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/straye-as/cpq-api/internal/config"
	"github.com/straye-as/cpq-api/internal/http/middleware"
	"github.com/stretchr/testify/assert"
)

func secured(cfg *config.SecurityConfig, path string) *httptest.ResponseRecorder {
	h := middleware.SecurityHeaders(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestSecurityHeaders_DefaultConfig(t *testing.T) {
	cfg := &config.SecurityConfig{
		ContentTypeNosniff:    true,
		FrameOptions:          "DENY",
		XSSProtection:         "1; mode=block",
		ContentSecurityPolicy: "default-src 'self'",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		PermissionsPolicy:     "geolocation=(), microphone=(), camera=()",
	}

	w := secured(cfg, "/api/quote")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "1; mode=block", w.Header().Get("X-XSS-Protection"))
	assert.Equal(t, "default-src 'self'", w.Header().Get("Content-Security-Policy"))
	assert.Equal(t, "strict-origin-when-cross-origin", w.Header().Get("Referrer-Policy"))
	assert.Equal(t, "geolocation=(), microphone=(), camera=()", w.Header().Get("Permissions-Policy"))
	assert.Empty(t, w.Header().Get("Strict-Transport-Security"))
}

func TestSecurityHeaders_HSTS(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.SecurityConfig
		want string
	}{
		{"max age only", config.SecurityConfig{EnableHSTS: true, HSTSMaxAge: 31536000}, "max-age=31536000"},
		{"subdomains", config.SecurityConfig{EnableHSTS: true, HSTSMaxAge: 60, HSTSIncludeSubdomains: true}, "max-age=60; includeSubDomains"},
		{"preload", config.SecurityConfig{EnableHSTS: true, HSTSMaxAge: 60, HSTSIncludeSubdomains: true, HSTSPreload: true}, "max-age=60; includeSubDomains; preload"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := secured(&tt.cfg, "/")
			assert.Equal(t, tt.want, w.Header().Get("Strict-Transport-Security"))
		})
	}
}

func TestSecurityHeaders_EmptyValuesAreOmitted(t *testing.T) {
	w := secured(&config.SecurityConfig{}, "/")

	for _, name := range []string{"X-Content-Type-Options", "X-Frame-Options", "X-XSS-Protection", "Content-Security-Policy", "Referrer-Policy"} {
		assert.Empty(t, w.Header().Get(name), name)
	}
}

func TestSecurityHeaders_SwaggerGetsRelaxedCSP(t *testing.T) {
	cfg := &config.SecurityConfig{ContentSecurityPolicy: "default-src 'none'"}

	api := secured(cfg, "/api/quote")
	assert.Equal(t, "default-src 'none'", api.Header().Get("Content-Security-Policy"))

	docs := secured(cfg, "/swagger/index.html")
	assert.Contains(t, docs.Header().Get("Content-Security-Policy"), "'unsafe-inline'")
}
