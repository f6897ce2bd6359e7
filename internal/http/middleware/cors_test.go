package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

const allowedOrigin = "http://localhost:3000"

func corsHandler() http.Handler {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	return CORS([]string{allowedOrigin})(next)
}

func TestCORSSimpleRequestAllowed(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/people", nil)
	req.Header.Set("Origin", allowedOrigin)
	w := httptest.NewRecorder()

	corsHandler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, allowedOrigin, w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
	assert.Contains(t, w.Header().Values("Vary"), "Origin")
}

func TestCORSSimpleRequestOtherOrigin(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/people", nil)
	req.Header.Set("Origin", "http://evil.example")
	w := httptest.NewRecorder()

	corsHandler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code, "request still reaches the handler")
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORSNoOrigin(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/people", nil)
	w := httptest.NewRecorder()

	corsHandler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Header().Values("Vary"))
}

func TestCORSPreflightAllowed(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/people/1", nil)
	req.Header.Set("Origin", allowedOrigin)
	req.Header.Set("Access-Control-Request-Method", http.MethodPut)
	req.Header.Set("Access-Control-Request-Headers", "content-type, x-custom")
	w := httptest.NewRecorder()

	corsHandler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, allowedOrigin, w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodPut)
	assert.Equal(t, "content-type, x-custom", w.Header().Get("Access-Control-Allow-Headers"))
}

func TestCORSPreflightOtherOrigin(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/people", nil)
	req.Header.Set("Origin", "http://evil.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()

	corsHandler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
