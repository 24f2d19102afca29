package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/straye-as/cpq-api/internal/config"
	"github.com/straye-as/cpq-api/internal/http/middleware"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func corsHandler(cfg *config.CORSConfig, environment string) http.Handler {
	return middleware.CORS(cfg, environment, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func preflight(h http.Handler, origin string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodOptions, "/api/quote", nil)
	req.Header.Set("Origin", origin)
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func baseCORS(origins ...string) *config.CORSConfig {
	return &config.CORSConfig{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
}

func TestCORS_DevelopmentAllowsAllOrigins(t *testing.T) {
	h := corsHandler(baseCORS(), "development")
	w := preflight(h, "http://localhost:3000")
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_ExplicitOrigins(t *testing.T) {
	h := corsHandler(baseCORS("https://app.example.com", "https://admin.example.com"), "production")

	w := preflight(h, "https://admin.example.com")
	assert.Equal(t, "https://admin.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	w = preflight(h, "https://evil.example.com")
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_ProductionWithoutOriginsDeniesAll(t *testing.T) {
	h := corsHandler(baseCORS(), "production")
	w := preflight(h, "https://app.example.com")
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_Wildcard(t *testing.T) {
	h := corsHandler(baseCORS("*"), "staging")
	w := preflight(h, "https://anything.example.com")
	assert.Equal(t, "https://anything.example.com", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_ExposesDownloadHeaders(t *testing.T) {
	cfg := baseCORS("https://app.example.com")
	cfg.ExposedHeaders = []string{"Location"}
	h := corsHandler(cfg, "production")

	req := httptest.NewRequest(http.MethodGet, "/api/documents/x/download", nil)
	req.Header.Set("Origin", "https://app.example.com")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	exposed := strings.ToLower(w.Header().Get("Access-Control-Expose-Headers"))
	assert.Contains(t, exposed, "location")
	assert.Contains(t, exposed, "content-disposition")
	assert.Contains(t, exposed, "x-document-id")
	assert.Contains(t, exposed, "x-request-id")
}
