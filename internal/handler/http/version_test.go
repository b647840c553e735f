package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-chat-sync/internal/logger"
)

// ─────────────────────────────────────────────
// Tests
// ─────────────────────────────────────────────

func TestGetVersion_WritesVersion(t *testing.T) {
	const want = "1.2.3"

	h := NewHandler(nil, nil, want, logger.Nop())

	req := httptest.NewRequest(http.MethodGet, "/version", nil)
	rec := httptest.NewRecorder()

	h.getVersion(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, want, rec.Body.String())
	assert.Equal(t, "text/plain", rec.Header().Get("Content-Type"))
}

func TestGetVersion_ViaRouter(t *testing.T) {
	const want = "v2.0.0-beta+build.42"

	router := NewHandler(nil, nil, want, logger.Nop()).Init()

	req := httptest.NewRequest(http.MethodGet, "/version", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, want, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(traceIDHeader))
}

func TestHealthz(t *testing.T) {
	router := NewHandler(nil, nil, "", logger.Nop()).Init()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}
