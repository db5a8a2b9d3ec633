package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/hiibolt/sabi/internal/storage"
	"github.com/hiibolt/sabi/pkg/ast"
	"github.com/hiibolt/sabi/pkg/loader"
	"github.com/hiibolt/sabi/pkg/playback"
	"github.com/hiibolt/sabi/pkg/state"
)

// SessionHandler drives playback sessions over HTTP. The playback engine
// itself is stateless between requests: each mutating request recompiles
// the script, restores the engine from the saved cursor, applies one
// operation and saves the cursor back.
//
// Routes:
// POST   /v1/session                - create a session for a script
// GET    /v1/session/{id}           - read session state
// DELETE /v1/session/{id}           - delete a session
// POST   /v1/session/{id}/advance   - advance one statement
// POST   /v1/session/{id}/rewind    - rewind to the previous dialogue
// POST   /v1/session/{id}/scene     - change scene by name
// GET    /v1/session/{id}/history   - summarized history lines
type SessionHandler struct {
	storage storage.Storage
	logger  *slog.Logger
}

func NewSessionHandler(storage storage.Storage, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{
		storage: storage,
		logger:  logger,
	}
}

// CreateSessionRequest defines the request body for creating a session.
type CreateSessionRequest struct {
	Script     string `json:"script"`                // Required: logical script name
	PlayerName string `json:"player_name,omitempty"` // Default binding for [_PLAYERNAME_]
}

// ChangeSceneRequest defines the request body for a scene change.
type ChangeSceneRequest struct {
	Scene string `json:"scene"`
}

// SessionResponse is the common response shape for session operations.
type SessionResponse struct {
	State    *state.PlaybackState `json:"state"`
	Scene    string               `json:"scene,omitempty"`
	Current  *StatementView       `json:"current,omitempty"`
	Finished bool                 `json:"finished,omitempty"`
	Rewound  int                  `json:"rewound,omitempty"`
	Reason   string               `json:"reason,omitempty"`
}

func (h *SessionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	// Path is /v1/session, /v1/session/{id} or /v1/session/{id}/{action}
	path := strings.Trim(strings.TrimPrefix(r.URL.Path, "/v1/session"), "/")
	if path == "" {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			writeJSON(w, h.logger, ErrorResponse{Error: "Method not allowed. Use POST to create a session"})
			return
		}
		h.handleCreate(w, r)
		return
	}

	parts := strings.SplitN(path, "/", 2)
	id, err := uuid.Parse(parts[0])
	if err != nil {
		h.logger.Warn("Invalid session ID", "id", parts[0], "error", err)
		w.WriteHeader(http.StatusBadRequest)
		writeJSON(w, h.logger, ErrorResponse{Error: "Invalid session ID format"})
		return
	}

	action := ""
	if len(parts) == 2 {
		action = parts[1]
	}

	switch {
	case action == "" && r.Method == http.MethodGet:
		h.handleRead(w, r, id)
	case action == "" && r.Method == http.MethodDelete:
		h.handleDelete(w, r, id)
	case action == "advance" && r.Method == http.MethodPost:
		h.handleAdvance(w, r, id)
	case action == "rewind" && r.Method == http.MethodPost:
		h.handleRewind(w, r, id)
	case action == "scene" && r.Method == http.MethodPost:
		h.handleChangeScene(w, r, id)
	case action == "history" && r.Method == http.MethodGet:
		h.handleHistory(w, r, id)
	default:
		w.WriteHeader(http.StatusNotFound)
		writeJSON(w, h.logger, ErrorResponse{Error: "Unknown session operation"})
	}
}

func (h *SessionHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid JSON in request body", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		writeJSON(w, h.logger, ErrorResponse{Error: "Invalid JSON in request body"})
		return
	}
	if req.Script == "" {
		w.WriteHeader(http.StatusBadRequest)
		writeJSON(w, h.logger, ErrorResponse{Error: "script is required"})
		return
	}

	engine, err := h.compile(r.Context(), req.Script)
	if err != nil {
		// A script that fails to parse or build blocks play entirely.
		h.logger.Warn("Script failed to load", "script", req.Script, "error", err)
		w.WriteHeader(http.StatusUnprocessableEntity)
		writeJSON(w, h.logger, ErrorResponse{Error: err.Error()})
		return
	}

	st := state.NewPlaybackState(req.Script, req.PlayerName)
	engine.Save(st)

	if err := h.storage.SavePlaybackState(r.Context(), st.ID, st); err != nil {
		h.logger.Error("Failed to save playback state", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		writeJSON(w, h.logger, ErrorResponse{Error: "Failed to save session"})
		return
	}

	h.logger.Info("Session created", "session_id", st.ID, "script", req.Script)
	w.WriteHeader(http.StatusCreated)
	writeJSON(w, h.logger, h.respond(engine, st))
}

func (h *SessionHandler) handleRead(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	st, engine, ok := h.restore(w, r, id)
	if !ok {
		return
	}
	writeJSON(w, h.logger, h.respond(engine, st))
}

func (h *SessionHandler) handleDelete(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	if err := h.storage.DeletePlaybackState(r.Context(), id); err != nil {
		h.logger.Error("Failed to delete session", "session_id", id, "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		writeJSON(w, h.logger, ErrorResponse{Error: "Failed to delete session"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *SessionHandler) handleAdvance(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	st, engine, ok := h.restore(w, r, id)
	if !ok {
		return
	}

	if err := engine.Advance(); err != nil {
		if errors.Is(err, playback.ErrActFinished) {
			// Expected end condition, not a failure.
			resp := h.respond(engine, st)
			resp.Finished = true
			writeJSON(w, h.logger, resp)
			return
		}
		h.logger.Error("Advance failed", "session_id", id, "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		writeJSON(w, h.logger, ErrorResponse{Error: "Advance failed"})
		return
	}

	if !h.save(w, r, engine, st) {
		return
	}
	writeJSON(w, h.logger, h.respond(engine, st))
}

func (h *SessionHandler) handleRewind(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	st, engine, ok := h.restore(w, r, id)
	if !ok {
		return
	}

	distance, err := engine.RewindDistance()
	if err != nil {
		// Cannot rewind from here; report why but leave the cursor alone.
		resp := h.respond(engine, st)
		resp.Reason = err.Error()
		writeJSON(w, h.logger, resp)
		return
	}

	// The two-call protocol exists so interactive hosts can animate each
	// backward step. Over HTTP there is nothing to animate, so the full
	// distance is applied here.
	for i := 0; i < distance; i++ {
		engine.RewindOneStep()
	}

	if !h.save(w, r, engine, st) {
		return
	}
	resp := h.respond(engine, st)
	resp.Rewound = distance
	writeJSON(w, h.logger, resp)
}

func (h *SessionHandler) handleChangeScene(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	var req ChangeSceneRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		writeJSON(w, h.logger, ErrorResponse{Error: "Invalid JSON in request body"})
		return
	}

	st, engine, ok := h.restore(w, r, id)
	if !ok {
		return
	}

	if err := engine.ChangeScene(req.Scene); err != nil {
		var unknown *playback.UnknownSceneError
		if errors.As(err, &unknown) {
			// Content error in the request, cursor untouched.
			w.WriteHeader(http.StatusBadRequest)
			writeJSON(w, h.logger, ErrorResponse{Error: unknown.Error()})
			return
		}
		h.logger.Error("Scene change failed", "session_id", id, "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		writeJSON(w, h.logger, ErrorResponse{Error: "Scene change failed"})
		return
	}

	if !h.save(w, r, engine, st) {
		return
	}
	writeJSON(w, h.logger, h.respond(engine, st))
}

func (h *SessionHandler) handleHistory(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	st, err := h.storage.LoadPlaybackState(r.Context(), id)
	if err != nil {
		h.logger.Error("Failed to load session", "session_id", id, "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		writeJSON(w, h.logger, ErrorResponse{Error: "Failed to load session"})
		return
	}
	if st == nil {
		w.WriteHeader(http.StatusNotFound)
		writeJSON(w, h.logger, ErrorResponse{Error: "Session not found"})
		return
	}

	// The binding context is applied at summarization time, so a renamed
	// player retroactively renames every line of the transcript.
	playerName := st.PlayerName
	if override := r.URL.Query().Get("player_name"); override != "" {
		playerName = override
	}

	lines := playback.Summarize(st.History, ast.PlayerBindings(playerName))
	writeJSON(w, h.logger, map[string][]string{"history": lines})
}

// compile loads and compiles a script into a fresh engine.
func (h *SessionHandler) compile(ctx context.Context, script string) (*playback.Engine, error) {
	source, err := h.storage.GetScriptSource(ctx, script)
	if err != nil {
		return nil, err
	}
	act, err := loader.Load(source, script)
	if err != nil {
		return nil, err
	}
	return playback.New(act), nil
}

// restore loads the saved session and rebuilds its engine, writing the
// appropriate error response when it cannot. The boolean reports success.
func (h *SessionHandler) restore(w http.ResponseWriter, r *http.Request, id uuid.UUID) (*state.PlaybackState, *playback.Engine, bool) {
	st, err := h.storage.LoadPlaybackState(r.Context(), id)
	if err != nil {
		h.logger.Error("Failed to load session", "session_id", id, "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		writeJSON(w, h.logger, ErrorResponse{Error: "Failed to load session"})
		return nil, nil, false
	}
	if st == nil {
		w.WriteHeader(http.StatusNotFound)
		writeJSON(w, h.logger, ErrorResponse{Error: "Session not found"})
		return nil, nil, false
	}

	source, err := h.storage.GetScriptSource(r.Context(), st.Script)
	if err != nil {
		h.logger.Error("Script missing for session", "session_id", id, "script", st.Script, "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		writeJSON(w, h.logger, ErrorResponse{Error: "Script missing for session"})
		return nil, nil, false
	}
	act, err := loader.Load(source, st.Script)
	if err != nil {
		h.logger.Error("Script failed to load", "session_id", id, "script", st.Script, "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		writeJSON(w, h.logger, ErrorResponse{Error: "Script failed to load"})
		return nil, nil, false
	}

	engine, err := playback.Restore(act, st)
	if err != nil {
		h.logger.Error("Saved cursor no longer fits script", "session_id", id, "error", err)
		w.WriteHeader(http.StatusConflict)
		writeJSON(w, h.logger, ErrorResponse{Error: "Saved session no longer matches the script"})
		return nil, nil, false
	}

	return st, engine, true
}

// save persists the engine's cursor and history back into the session.
func (h *SessionHandler) save(w http.ResponseWriter, r *http.Request, engine *playback.Engine, st *state.PlaybackState) bool {
	engine.Save(st)
	if err := h.storage.SavePlaybackState(r.Context(), st.ID, st); err != nil {
		h.logger.Error("Failed to save playback state", "session_id", st.ID, "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		writeJSON(w, h.logger, ErrorResponse{Error: "Failed to save session"})
		return false
	}
	return true
}

func (h *SessionHandler) respond(engine *playback.Engine, st *state.PlaybackState) *SessionResponse {
	view := NewStatementView(engine.Current(), ast.PlayerBindings(st.PlayerName))
	return &SessionResponse{
		State:   st,
		Scene:   engine.Scene().Name,
		Current: view,
	}
}
