package storage

import (
	"context"

	"github.com/google/uuid"
	"github.com/hiibolt/sabi/pkg/character"
	"github.com/hiibolt/sabi/pkg/state"
)

// Storage defines a unified interface for all storage operations:
// playback session persistence (Redis) and static asset loading
// (filesystem scripts and character configs).
type Storage interface {
	// Health and lifecycle
	Ping(ctx context.Context) error
	Close() error

	// Playback session operations (Redis-backed)
	SavePlaybackState(ctx context.Context, id uuid.UUID, st *state.PlaybackState) error
	LoadPlaybackState(ctx context.Context, id uuid.UUID) (*state.PlaybackState, error)
	DeletePlaybackState(ctx context.Context, id uuid.UUID) error

	// Script operations (filesystem-backed). Scripts are identified by
	// their logical name, the file stem of a *.sabi file in the data dir.
	ListScripts(ctx context.Context) ([]string, error)
	GetScriptSource(ctx context.Context, name string) (string, error)

	// Character operations (filesystem-backed)
	ListCharacters(ctx context.Context) ([]string, error)
	GetCharacter(ctx context.Context, name string) (*character.Config, error)
}
