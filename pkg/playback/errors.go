package playback

import (
	"errors"
	"fmt"
)

// Expected end conditions. The host branches on these; they are ordinary
// control-flow results, never defects, and must not be routed to a fatal
// error handler.
var (
	// ErrActFinished means advance was called with no statement left.
	ErrActFinished = errors.New("act finished")

	// ErrAtSceneStart means the cursor is on the first statement of the
	// current scene, so there is nothing to rewind to.
	ErrAtSceneStart = errors.New("at scene start")

	// ErrNoPriorDialogue means no dialogue precedes the cursor within the
	// current scene. Rewind never crosses a scene boundary.
	ErrNoPriorDialogue = errors.New("no prior dialogue in scene")
)

// UnknownSceneError means a scene change named a scene the act does not
// contain. Unlike the end conditions above, this indicates a content
// authoring error.
type UnknownSceneError struct {
	Scene string
}

func (e *UnknownSceneError) Error() string {
	return fmt.Sprintf("unknown scene %q", e.Scene)
}
