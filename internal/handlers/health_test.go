package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hiibolt/sabi/internal/storage"
)

func TestHealthHandler(t *testing.T) {
	mock := storage.NewMockStorage()
	h := NewHealthHandler(mock, testLogger())

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp HealthResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "sabi", resp.Service)
	assert.Equal(t, "healthy", resp.Components["storage"])
}

func TestHealthHandler_Degraded(t *testing.T) {
	mock := storage.NewMockStorage()
	mock.Err = errors.New("connection refused")
	h := NewHealthHandler(mock, testLogger())

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	var resp HealthResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "degraded", resp.Status)
	assert.Equal(t, "unhealthy", resp.Components["storage"])
}

func TestScriptsHandler(t *testing.T) {
	mock := storage.NewMockStorage()
	mock.Scripts["chapter_2"] = `scene a { Amy "hi" }`
	mock.Scripts["chapter_1"] = `scene b { Ben "yo" }`
	h := NewScriptsHandler(mock, testLogger())

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/scripts", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string][]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, []string{"chapter_1", "chapter_2"}, body["scripts"])
}

func TestScriptsHandler_MethodNotAllowed(t *testing.T) {
	h := NewScriptsHandler(storage.NewMockStorage(), testLogger())
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/scripts", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
