package state

import (
	"time"

	"github.com/google/uuid"
)

// HistoryEntry is one append-only record of played content. Dialogue
// entries carry the speaker and the raw authored text (variable markers
// intact, so summaries can re-evaluate against the current bindings);
// descriptor entries carry free text such as a scene-change note.
type HistoryEntry struct {
	Speaker    string `json:"speaker,omitempty"`
	Text       string `json:"text,omitempty"`
	Descriptor string `json:"descriptor,omitempty"`
}

// IsDialogue reports whether the entry records a played dialogue line.
func (e HistoryEntry) IsDialogue() bool {
	return e.Descriptor == ""
}

// PlaybackState is the persistable state of one playback session: the
// cursor into the act plus the history log. Everything else about an act
// is immutable and recompiled from its script on load.
type PlaybackState struct {
	ID             uuid.UUID      `json:"id"`
	Script         string         `json:"script"`      // logical script name, e.g. "chapter_1"
	PlayerName     string         `json:"player_name"` // default binding for [_PLAYERNAME_]
	SceneIndex     int            `json:"scene_index"`
	StatementIndex int            `json:"statement_index"`
	Started        bool           `json:"started"` // false until the first advance
	History        []HistoryEntry `json:"history,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// NewPlaybackState creates a fresh session for the named script.
func NewPlaybackState(script, playerName string) *PlaybackState {
	now := time.Now().UTC()
	return &PlaybackState{
		ID:         uuid.New(),
		Script:     script,
		PlayerName: playerName,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}
