package script

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Act(t *testing.T) {
	source := `
# chapter one
scene intro {
	Amy "Hello"
	[_PLAYERNAME_] "Who, me?"
	spawn(Amy, happy, far_left, fade)
	jump(park)
}

scene park {
	Ben "Bye"
}
`
	tree, err := Parse(source)
	require.NoError(t, err)
	require.Len(t, tree.Scenes, 2)

	intro := tree.Scenes[0]
	assert.Equal(t, "intro", intro.Name)
	require.Len(t, intro.Statements, 4)

	assert.Equal(t, NodeDialogue, intro.Statements[0].Kind)
	assert.Equal(t, "Amy", intro.Statements[0].Speaker)
	assert.Equal(t, "Hello", intro.Statements[0].Text)

	assert.Equal(t, NodeDialogue, intro.Statements[1].Kind)
	assert.Equal(t, "[_PLAYERNAME_]", intro.Statements[1].Speaker)

	spawn := intro.Statements[2]
	require.Equal(t, NodeDirective, spawn.Kind)
	assert.Equal(t, "spawn", spawn.Keyword)
	require.Len(t, spawn.Args, 4)
	assert.Equal(t, ArgIdent, spawn.Args[0].Kind)
	assert.Equal(t, "Amy", spawn.Args[0].Value)
	assert.Equal(t, ArgIdent, spawn.Args[2].Kind)
	assert.Equal(t, "far_left", spawn.Args[2].Value)

	jump := intro.Statements[3]
	require.Equal(t, NodeDirective, jump.Kind)
	assert.Equal(t, "jump", jump.Keyword)

	park := tree.Scenes[1]
	assert.Equal(t, "park", park.Name)
	require.Len(t, park.Statements, 1)
}

func TestParse_EmptyDirectiveArgs(t *testing.T) {
	tree, err := Parse(`scene a { clear() Amy "hi" }`)
	require.NoError(t, err)
	require.Len(t, tree.Scenes[0].Statements, 2)
	assert.Equal(t, "clear", tree.Scenes[0].Statements[0].Keyword)
	assert.Empty(t, tree.Scenes[0].Statements[0].Args)
}

func TestParse_Deterministic(t *testing.T) {
	source := `scene a { Amy "hi" bg(park) }`
	first, err := Parse(source)
	require.NoError(t, err)
	second, err := Parse(source)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestParse_SyntaxErrors(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		expected string // expected-token description
		line     int
	}{
		{
			name:     "missing scene keyword",
			source:   `intro { Amy "hi" }`,
			expected: `"scene"`,
			line:     1,
		},
		{
			name:     "missing scene name",
			source:   `scene { Amy "hi" }`,
			expected: "scene name",
			line:     1,
		},
		{
			name:     "missing open brace",
			source:   "scene intro\nAmy \"hi\"",
			expected: `"{"`,
			line:     2,
		},
		{
			name:     "unclosed scene",
			source:   "scene intro {\n\tAmy \"hi\"\n",
			expected: `"}"`,
			line:     3,
		},
		{
			name:     "dialogue without text",
			source:   "scene intro {\n\tAmy\n}",
			expected: "dialogue text",
			line:     3,
		},
		{
			name:     "unclosed argument list",
			source:   "scene intro {\n\tbg(park\n}",
			expected: `"," or ")"`,
			line:     3,
		},
		{
			name:     "bad argument",
			source:   "scene intro {\n\tbg({)\n}",
			expected: "identifier, string or number argument",
			line:     2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.source)
			require.Error(t, err)

			var syntaxErr *SyntaxError
			require.True(t, errors.As(err, &syntaxErr), "expected *SyntaxError, got %T", err)
			assert.Equal(t, tt.expected, syntaxErr.Expected)
			assert.Equal(t, tt.line, syntaxErr.Line)
			assert.Contains(t, syntaxErr.Error(), "syntax error at line")
		})
	}
}

func TestParse_SameErrorTwice(t *testing.T) {
	source := `scene intro { Amy }`
	_, err1 := Parse(source)
	_, err2 := Parse(source)
	require.Error(t, err1)
	require.Error(t, err2)
	assert.Equal(t, err1.Error(), err2.Error())
}
