package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/hiibolt/sabi/internal/storage"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// ScriptsHandler lists the playable scripts in the data directory.
type ScriptsHandler struct {
	storage storage.Storage
	logger  *slog.Logger
}

func NewScriptsHandler(storage storage.Storage, logger *slog.Logger) *ScriptsHandler {
	return &ScriptsHandler{
		storage: storage,
		logger:  logger,
	}
}

func (h *ScriptsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		writeJSON(w, h.logger, ErrorResponse{Error: "Method not allowed. Supported methods: GET"})
		return
	}

	scripts, err := h.storage.ListScripts(r.Context())
	if err != nil {
		h.logger.Error("Failed to list scripts", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		writeJSON(w, h.logger, ErrorResponse{Error: "Failed to list scripts"})
		return
	}

	writeJSON(w, h.logger, map[string][]string{"scripts": scripts})
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, v any) {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}
