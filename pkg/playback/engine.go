package playback

import (
	"fmt"
	"time"

	"github.com/hiibolt/sabi/pkg/ast"
	"github.com/hiibolt/sabi/pkg/state"
)

// Engine is a cursor over one act's scenes and statements. It is the only
// writer of the history log, and history appends happen exclusively as an
// effect of a successful advance or scene change, so the log can never
// drift out of sync with the cursor.
//
// The engine is single-threaded by contract: it is driven synchronously
// from one control point per host tick. Whether advancing is currently
// allowed (text still scrolling, a fade still running) is the host's
// blocking flag; the engine has no notion of waiting.
type Engine struct {
	act      *ast.Act
	sceneIdx int
	stmtIdx  int
	started  bool
	history  []state.HistoryEntry
}

// New positions a fresh engine before the first statement of the first
// scene. Current returns that statement immediately; the first Advance
// lands on it and records it.
func New(act *ast.Act) *Engine {
	return &Engine{act: act}
}

// Restore rebuilds an engine from a saved cursor and history. The state
// must have been produced against the same compiled act; indices are
// validated before use.
func Restore(act *ast.Act, st *state.PlaybackState) (*Engine, error) {
	if st.SceneIndex < 0 || st.SceneIndex >= len(act.Scenes) {
		return nil, fmt.Errorf("saved scene index %d out of range for act %q", st.SceneIndex, act.Name)
	}
	scene := act.Scenes[st.SceneIndex]
	if st.StatementIndex < 0 || st.StatementIndex >= len(scene.Statements) {
		return nil, fmt.Errorf("saved statement index %d out of range for scene %q", st.StatementIndex, scene.Name)
	}
	return &Engine{
		act:      act,
		sceneIdx: st.SceneIndex,
		stmtIdx:  st.StatementIndex,
		started:  st.Started,
		history:  append([]state.HistoryEntry(nil), st.History...),
	}, nil
}

// Save writes the cursor and history into st.
func (e *Engine) Save(st *state.PlaybackState) {
	st.SceneIndex = e.sceneIdx
	st.StatementIndex = e.stmtIdx
	st.Started = e.started
	st.History = append([]state.HistoryEntry(nil), e.history...)
	st.UpdatedAt = time.Now().UTC()
}

// Act returns the compiled act being played.
func (e *Engine) Act() *ast.Act {
	return e.act
}

// Scene returns the current scene.
func (e *Engine) Scene() *ast.Scene {
	return e.act.Scenes[e.sceneIdx]
}

// Position returns the cursor. started is false only before the first
// advance into the current scene.
func (e *Engine) Position() (sceneIndex, statementIndex int, started bool) {
	return e.sceneIdx, e.stmtIdx, e.started
}

// Current returns the statement at the cursor without mutating anything.
// It returns nil only for an act with no scenes, which the builder rejects.
func (e *Engine) Current() ast.Statement {
	if len(e.act.Scenes) == 0 {
		return nil
	}
	return e.Scene().Statements[e.stmtIdx]
}

// Advance moves the cursor to the next statement, crossing implicitly into
// the next scene when the current one is exhausted. On success the
// now-current statement is recorded: dialogue lines are appended to the
// history log verbatim. Past the last statement it returns ErrActFinished
// and leaves the cursor exactly as it was.
func (e *Engine) Advance() error {
	switch {
	case !e.started:
		e.started = true
	case e.stmtIdx+1 < len(e.Scene().Statements):
		e.stmtIdx++
	case e.sceneIdx+1 < len(e.act.Scenes):
		e.sceneIdx++
		e.stmtIdx = 0
	default:
		return ErrActFinished
	}

	if d, ok := e.Current().(ast.Dialogue); ok {
		e.history = append(e.history, state.HistoryEntry{
			Speaker: d.Speaker,
			Text:    d.Text.String(),
		})
	}
	return nil
}

// ChangeScene makes the named scene current with its statement index
// reset, recording a descriptor in the history. This is the only
// non-monotonic cursor movement. On an unknown name the cursor is left
// untouched.
func (e *Engine) ChangeScene(name string) error {
	idx := e.act.SceneIndex(name)
	if idx < 0 {
		return &UnknownSceneError{Scene: name}
	}
	e.sceneIdx = idx
	e.stmtIdx = 0
	e.started = false
	e.history = append(e.history, state.HistoryEntry{
		Descriptor: "— scene changed: " + name + " —",
	})
	return nil
}

// RewindDistance computes how many single steps backward land on the
// nearest prior dialogue within the current scene. It never crosses a
// scene boundary, even from a scene's first statement; this mirrors the
// original engine and is a known limitation, not an invitation to extend.
func (e *Engine) RewindDistance() (int, error) {
	if !e.started || e.stmtIdx == 0 {
		return 0, ErrAtSceneStart
	}
	statements := e.Scene().Statements
	for i := e.stmtIdx - 1; i >= 0; i-- {
		if _, ok := statements[i].(ast.Dialogue); ok {
			return e.stmtIdx - i, nil
		}
	}
	return 0, ErrNoPriorDialogue
}

// RewindOneStep decrements the statement index by one, saturating at zero.
// It performs no dialogue-boundary validation: callers are expected to
// invoke it exactly RewindDistance times, one per frame, so each backward
// step can be animated by the host.
func (e *Engine) RewindOneStep() {
	if e.stmtIdx > 0 {
		e.stmtIdx--
	}
}

// History returns the append-only history log. The returned slice must
// not be mutated.
func (e *Engine) History() []state.HistoryEntry {
	return e.history
}

// Summarize renders the history log to display-ready lines, one per entry
// in chronological order. Dialogue is formatted as "speaker: text" with
// both the speaker and the text evaluated against the bindings supplied
// now, not those active when the line was recorded, so a summary always
// reflects the current player name. Descriptor entries pass through as
// their literal text. Unresolved variables degrade to blanks rather than
// failing the whole summary.
func Summarize(history []state.HistoryEntry, bindings ast.Bindings) []string {
	lines := make([]string, 0, len(history))
	for _, entry := range history {
		if !entry.IsDialogue() {
			lines = append(lines, entry.Descriptor)
			continue
		}
		speaker, err := ast.ResolveSpeaker(entry.Speaker, bindings)
		if err != nil && speaker == "" {
			speaker = entry.Speaker
		}
		text, _ := ast.ParseText(entry.Text).Eval(bindings)
		lines = append(lines, speaker+": "+text)
	}
	return lines
}

// Summarize renders this engine's history; see the package-level function.
func (e *Engine) Summarize(bindings ast.Bindings) []string {
	return Summarize(e.history, bindings)
}
