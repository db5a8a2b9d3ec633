package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/hiibolt/sabi/internal/storage"
)

// CharactersHandler serves the character configs in the data directory.
//
// Routes:
// GET /v1/characters        - list character names
// GET /v1/characters/{name} - one character config
type CharactersHandler struct {
	storage storage.Storage
	logger  *slog.Logger
}

func NewCharactersHandler(storage storage.Storage, logger *slog.Logger) *CharactersHandler {
	return &CharactersHandler{
		storage: storage,
		logger:  logger,
	}
}

func (h *CharactersHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		writeJSON(w, h.logger, ErrorResponse{Error: "Method not allowed. Supported methods: GET"})
		return
	}

	name := strings.Trim(strings.TrimPrefix(r.URL.Path, "/v1/characters"), "/")
	if name == "" {
		h.handleList(w, r)
		return
	}

	if strings.Contains(name, "..") || strings.Contains(name, "/") {
		w.WriteHeader(http.StatusBadRequest)
		writeJSON(w, h.logger, ErrorResponse{Error: "Invalid character name"})
		return
	}

	cfg, err := h.storage.GetCharacter(r.Context(), name)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			w.WriteHeader(http.StatusNotFound)
			writeJSON(w, h.logger, ErrorResponse{Error: "Character not found"})
			return
		}
		h.logger.Error("Failed to get character", "name", name, "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		writeJSON(w, h.logger, ErrorResponse{Error: "Failed to retrieve character"})
		return
	}

	writeJSON(w, h.logger, cfg)
}

func (h *CharactersHandler) handleList(w http.ResponseWriter, r *http.Request) {
	names, err := h.storage.ListCharacters(r.Context())
	if err != nil {
		h.logger.Error("Failed to list characters", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		writeJSON(w, h.logger, ErrorResponse{Error: "Failed to list characters"})
		return
	}

	writeJSON(w, h.logger, map[string][]string{"characters": names})
}
