package ast

import "fmt"

// Act is one compiled script: an ordered sequence of scenes. It is built
// once at load time and never mutates afterwards; all navigation state
// lives in the playback engine.
type Act struct {
	Name   string
	Scenes []*Scene
}

// Scene is a named, ordered, immutable sequence of statements. A scene
// with zero statements is rejected at build time.
type Scene struct {
	Name       string
	Statements []Statement
}

// SceneIndex returns the index of the named scene, or -1.
func (a *Act) SceneIndex(name string) int {
	for i, s := range a.Scenes {
		if s.Name == name {
			return i
		}
	}
	return -1
}

// StatementCount is the total number of statements across all scenes.
func (a *Act) StatementCount() int {
	n := 0
	for _, s := range a.Scenes {
		n += len(s.Statements)
	}
	return n
}

// Statement is one executable unit of script content. The variant set is
// closed: adding a directive means updating the builder and every
// dispatcher that switches over these types.
type Statement interface {
	stmt()
}

// Dialogue is a spoken line. Speaker may be a variable marker such as
// [_PLAYERNAME_], resolved at display time.
type Dialogue struct {
	Speaker string
	Text    Text
}

// Position is a named horizontal stage position for an actor.
type Position string

const (
	PositionCenter         Position = "center"
	PositionLeft           Position = "left"
	PositionRight          Position = "right"
	PositionFarLeft        Position = "far left"
	PositionFarRight       Position = "far right"
	PositionInvisibleLeft  Position = "invisible left"
	PositionInvisibleRight Position = "invisible right"
)

// ParsePosition accepts both the spaced and underscored spellings.
func ParsePosition(value string) (Position, error) {
	switch normalize(value) {
	case "center":
		return PositionCenter, nil
	case "left":
		return PositionLeft, nil
	case "right":
		return PositionRight, nil
	case "far left":
		return PositionFarLeft, nil
	case "far right":
		return PositionFarRight, nil
	case "invisible left":
		return PositionInvisibleLeft, nil
	case "invisible right":
		return PositionInvisibleRight, nil
	default:
		return "", fmt.Errorf("unknown position %q", value)
	}
}

// Direction is which way an actor faces.
type Direction string

const (
	DirectionLeft  Direction = "left"
	DirectionRight Direction = "right"
)

// ParseDirection validates a facing direction argument.
func ParseDirection(value string) (Direction, error) {
	switch normalize(value) {
	case "left":
		return DirectionLeft, nil
	case "right":
		return DirectionRight, nil
	default:
		return "", fmt.Errorf("unknown direction %q", value)
	}
}

// GUITarget selects which chrome element a gui directive retextures.
type GUITarget string

const (
	GUITextBox GUITarget = "textbox"
	GUINameBox GUITarget = "namebox"
)

// GUIMode is how the sprite is applied to the target.
type GUIMode string

const (
	GUIModeAuto   GUIMode = "auto"
	GUIModeSliced GUIMode = "sliced"
)

// Spawn places an actor on stage with an initial emotion and position.
type Spawn struct {
	Actor    string
	Emotion  string
	Position Position
	Fade     bool
}

// SetEmotion swaps an on-stage actor's sprite to another emotion.
type SetEmotion struct {
	Actor   string
	Emotion string
}

// Despawn removes an actor from stage, optionally fading it out.
type Despawn struct {
	Actor string
	Fade  bool
}

// Look flips an actor to face left or right.
type Look struct {
	Actor     string
	Direction Direction
}

// Move slides an actor to another stage position.
type Move struct {
	Actor    string
	Position Position
}

// Background swaps the backdrop image.
type Background struct {
	Name string
}

// GUI retextures a chrome element (text box or name box).
type GUI struct {
	Target GUITarget
	Sprite string
	Mode   GUIMode
}

// Jump is the explicit scene-change directive, the only way the cursor
// moves non-monotonically.
type Jump struct {
	Scene string
}

// Choice presents options to the player; the host reacts to a selection
// by changing to the option's target scene.
type Choice struct {
	Prompt  Text
	Options []ChoiceOption
}

// ChoiceOption is one selectable branch of a Choice.
type ChoiceOption struct {
	Label Text
	Scene string
}

func (Dialogue) stmt()   {}
func (Spawn) stmt()      {}
func (SetEmotion) stmt() {}
func (Despawn) stmt()    {}
func (Look) stmt()       {}
func (Move) stmt()       {}
func (Background) stmt() {}
func (GUI) stmt()        {}
func (Jump) stmt()       {}
func (Choice) stmt()     {}
