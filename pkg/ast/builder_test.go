package ast

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hiibolt/sabi/pkg/script"
)

func mustParse(t *testing.T, source string) *script.Tree {
	t.Helper()
	tree, err := script.Parse(source)
	require.NoError(t, err)
	return tree
}

func TestBuild_FullAct(t *testing.T) {
	source := `
scene intro {
	bg(park)
	gui(textbox, wooden_box, sliced)
	spawn(Amy, happy, far_left, fade)
	look(Amy, right)
	Amy "Hello, [_PLAYERNAME_]!"
	move(Amy, center)
	emotion(Amy, sad)
	[_PLAYERNAME_] "What's wrong?"
	choice("Stay or go?", "Stay here", intro, "Leave", outro)
}

scene outro {
	despawn(Amy, fade)
	Amy "Bye"
	jump(intro)
}
`
	act, err := Build(mustParse(t, source), "demo")
	require.NoError(t, err)
	assert.Equal(t, "demo", act.Name)
	require.Len(t, act.Scenes, 2)
	assert.Equal(t, 12, act.StatementCount())

	intro := act.Scenes[0]
	require.Len(t, intro.Statements, 9)

	assert.Equal(t, Background{Name: "park"}, intro.Statements[0])
	assert.Equal(t, GUI{Target: GUITextBox, Sprite: "wooden_box", Mode: GUIModeSliced}, intro.Statements[1])
	assert.Equal(t, Spawn{Actor: "Amy", Emotion: "happy", Position: PositionFarLeft, Fade: true}, intro.Statements[2])
	assert.Equal(t, Look{Actor: "Amy", Direction: DirectionRight}, intro.Statements[3])

	dialogue, ok := intro.Statements[4].(Dialogue)
	require.True(t, ok)
	assert.Equal(t, "Amy", dialogue.Speaker)
	assert.Equal(t, "Hello, [_PLAYERNAME_]!", dialogue.Text.String())

	assert.Equal(t, Move{Actor: "Amy", Position: PositionCenter}, intro.Statements[5])
	assert.Equal(t, SetEmotion{Actor: "Amy", Emotion: "sad"}, intro.Statements[6])

	playerLine, ok := intro.Statements[7].(Dialogue)
	require.True(t, ok)
	assert.Equal(t, "[_PLAYERNAME_]", playerLine.Speaker)

	choice, ok := intro.Statements[8].(Choice)
	require.True(t, ok)
	assert.Equal(t, "Stay or go?", choice.Prompt.String())
	require.Len(t, choice.Options, 2)
	assert.Equal(t, "intro", choice.Options[0].Scene)
	assert.Equal(t, "Leave", choice.Options[1].Label.String())
	assert.Equal(t, "outro", choice.Options[1].Scene)

	outro := act.Scenes[1]
	assert.Equal(t, Despawn{Actor: "Amy", Fade: true}, outro.Statements[0])
	assert.Equal(t, Jump{Scene: "intro"}, outro.Statements[2])
}

func TestBuild_GUIModeDefault(t *testing.T) {
	act, err := Build(mustParse(t, `scene a { gui(namebox, gold_trim) }`), "a")
	require.NoError(t, err)
	assert.Equal(t, GUI{Target: GUINameBox, Sprite: "gold_trim", Mode: GUIModeAuto}, act.Scenes[0].Statements[0])
}

func TestBuild_EmptyTree(t *testing.T) {
	for _, tree := range []*script.Tree{nil, {}} {
		_, err := Build(tree, "x")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no playable content")
	}
}

func TestBuild_Errors(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		message string
	}{
		{
			name:    "duplicate scene",
			source:  `scene a { Amy "hi" } scene a { Amy "yo" }`,
			message: `duplicate scene name "a"`,
		},
		{
			name:    "empty scene",
			source:  `scene a { }`,
			message: `scene "a" has no statements`,
		},
		{
			name:    "unknown directive",
			source:  `scene a { teleport(Amy) }`,
			message: `unknown directive "teleport"`,
		},
		{
			name:    "spawn too few args",
			source:  `scene a { spawn(Amy, happy) }`,
			message: "spawn: want 3 to 4 arguments, got 2",
		},
		{
			name:    "spawn bad position",
			source:  `scene a { spawn(Amy, happy, offstage) }`,
			message: `unknown position "offstage"`,
		},
		{
			name:    "spawn bad trailing flag",
			source:  `scene a { spawn(Amy, happy, center, slowly) }`,
			message: `trailing flag must be "fade"`,
		},
		{
			name:    "spawn string actor",
			source:  `scene a { spawn("Amy", happy, center) }`,
			message: "actor name must be an identifier",
		},
		{
			name:    "look bad direction",
			source:  `scene a { look(Amy, up) }`,
			message: `unknown direction "up"`,
		},
		{
			name:    "bg too many args",
			source:  `scene a { bg(park, fast) }`,
			message: "bg: want 1 arguments, got 2",
		},
		{
			name:    "gui unknown target",
			source:  `scene a { gui(window, sprite) }`,
			message: `gui: unknown target "window"`,
		},
		{
			name:    "gui unknown mode",
			source:  `scene a { gui(textbox, sprite, tiled) }`,
			message: `gui: unknown image mode "tiled"`,
		},
		{
			name:    "jump to undefined scene",
			source:  `scene a { jump(nowhere) }`,
			message: `jump references undefined scene "nowhere"`,
		},
		{
			name:    "choice even args",
			source:  `scene a { choice("pick", "one") }`,
			message: "choice: want a prompt followed by label/scene pairs",
		},
		{
			name:    "choice prompt not string",
			source:  `scene a { choice(pick, "one", a) }`,
			message: "choice: prompt must be a string",
		},
		{
			name:    "choice label not string",
			source:  `scene a { choice("pick", one, a) }`,
			message: "choice: option label must be a string",
		},
		{
			name:    "choice target not scene name",
			source:  `scene a { choice("pick", "one", "a") }`,
			message: "choice: option target must be a scene name",
		},
		{
			name:    "choice to undefined scene",
			source:  `scene a { choice("pick", "one", b) }`,
			message: `choice references undefined scene "b"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(mustParse(t, tt.source), "x")
			require.Error(t, err)

			var buildErr *BuildError
			require.True(t, errors.As(err, &buildErr), "expected *BuildError, got %T", err)
			assert.Contains(t, buildErr.Error(), tt.message)
		})
	}
}

func TestBuild_PositionSpellings(t *testing.T) {
	underscored, err := Build(mustParse(t, `scene a { spawn(Amy, happy, far_left) }`), "x")
	require.NoError(t, err)
	spaced, err := Build(mustParse(t, `scene a { spawn(Amy, happy, "far left") }`), "x")
	require.NoError(t, err)
	assert.Equal(t, underscored.Scenes[0].Statements[0], spaced.Scenes[0].Statements[0])
}

func TestAct_SceneIndex(t *testing.T) {
	act, err := Build(mustParse(t, `scene a { Amy "hi" } scene b { Ben "yo" }`), "x")
	require.NoError(t, err)
	assert.Equal(t, 0, act.SceneIndex("a"))
	assert.Equal(t, 1, act.SceneIndex("b"))
	assert.Equal(t, -1, act.SceneIndex("missing"))
}
