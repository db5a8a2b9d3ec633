package storage

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/hiibolt/sabi/pkg/character"
	"github.com/hiibolt/sabi/pkg/state"
)

// MockStorage is an in-memory Storage for tests.
type MockStorage struct {
	Sessions   map[uuid.UUID]*state.PlaybackState
	Scripts    map[string]string // name -> source
	Characters map[string]*character.Config
	Err        error // returned from every call when set
}

var _ Storage = (*MockStorage)(nil)

func NewMockStorage() *MockStorage {
	return &MockStorage{
		Sessions:   make(map[uuid.UUID]*state.PlaybackState),
		Scripts:    make(map[string]string),
		Characters: make(map[string]*character.Config),
	}
}

func (m *MockStorage) Ping(ctx context.Context) error { return m.Err }
func (m *MockStorage) Close() error                   { return nil }

func (m *MockStorage) SavePlaybackState(ctx context.Context, id uuid.UUID, st *state.PlaybackState) error {
	if m.Err != nil {
		return m.Err
	}
	copied := *st
	copied.History = append([]state.HistoryEntry(nil), st.History...)
	m.Sessions[id] = &copied
	return nil
}

func (m *MockStorage) LoadPlaybackState(ctx context.Context, id uuid.UUID) (*state.PlaybackState, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	st, ok := m.Sessions[id]
	if !ok {
		return nil, nil
	}
	copied := *st
	copied.History = append([]state.HistoryEntry(nil), st.History...)
	return &copied, nil
}

func (m *MockStorage) DeletePlaybackState(ctx context.Context, id uuid.UUID) error {
	if m.Err != nil {
		return m.Err
	}
	delete(m.Sessions, id)
	return nil
}

func (m *MockStorage) ListScripts(ctx context.Context) ([]string, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	names := make([]string, 0, len(m.Scripts))
	for name := range m.Scripts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (m *MockStorage) GetScriptSource(ctx context.Context, name string) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	src, ok := m.Scripts[name]
	if !ok {
		return "", fmt.Errorf("script not found: %s", name)
	}
	return src, nil
}

func (m *MockStorage) ListCharacters(ctx context.Context) ([]string, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	names := make([]string, 0, len(m.Characters))
	for name := range m.Characters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (m *MockStorage) GetCharacter(ctx context.Context, name string) (*character.Config, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	cfg, ok := m.Characters[name]
	if !ok {
		return nil, fmt.Errorf("character not found: %s", name)
	}
	return cfg, nil
}
