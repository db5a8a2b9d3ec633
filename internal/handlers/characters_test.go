package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hiibolt/sabi/internal/storage"
	"github.com/hiibolt/sabi/pkg/character"
)

func newCharactersFixture() *CharactersHandler {
	mock := storage.NewMockStorage()
	mock.Characters["amy"] = &character.Config{
		Name:     "Amy",
		Outfit:   "casual",
		Emotion:  "happy",
		Emotions: []string{"happy", "sad"},
		Outfits:  []string{"casual"},
	}
	mock.Characters["ben"] = &character.Config{
		Name:     "Ben",
		Outfit:   "formal",
		Emotion:  "calm",
		Emotions: []string{"calm"},
		Outfits:  []string{"formal"},
	}
	return NewCharactersHandler(mock, testLogger())
}

func TestCharactersHandler_List(t *testing.T) {
	h := newCharactersFixture()

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/characters", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string][]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, []string{"amy", "ben"}, body["characters"])
}

func TestCharactersHandler_Get(t *testing.T) {
	h := newCharactersFixture()

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/characters/amy", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var cfg character.Config
	require.NoError(t, json.NewDecoder(w.Body).Decode(&cfg))
	assert.Equal(t, "Amy", cfg.Name)
	assert.Equal(t, []string{"happy", "sad"}, cfg.Emotions)
}

func TestCharactersHandler_Errors(t *testing.T) {
	h := newCharactersFixture()

	tests := []struct {
		name   string
		method string
		path   string
		status int
	}{
		{"unknown character", http.MethodGet, "/v1/characters/zed", http.StatusNotFound},
		{"traversal name", http.MethodGet, "/v1/characters/../secret", http.StatusBadRequest},
		{"method not allowed", http.MethodPost, "/v1/characters", http.StatusMethodNotAllowed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.status, w.Code)
		})
	}
}
