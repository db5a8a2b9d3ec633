package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hiibolt/sabi/pkg/ast"
)

func TestNewStatementView(t *testing.T) {
	bindings := ast.PlayerBindings("Sam")

	tests := []struct {
		name string
		stmt ast.Statement
		want StatementView
	}{
		{
			name: "dialogue evaluates bindings",
			stmt: ast.Dialogue{Speaker: "[_PLAYERNAME_]", Text: ast.ParseText("Hi, [_PLAYERNAME_]")},
			want: StatementView{Type: "dialogue", Speaker: "Sam", Text: "Hi, Sam"},
		},
		{
			name: "spawn",
			stmt: ast.Spawn{Actor: "Amy", Emotion: "happy", Position: ast.PositionFarLeft, Fade: true},
			want: StatementView{Type: "spawn", Actor: "Amy", Emotion: "happy", Position: "far left", Fade: true},
		},
		{
			name: "jump",
			stmt: ast.Jump{Scene: "park"},
			want: StatementView{Type: "jump", Scene: "park"},
		},
		{
			name: "gui",
			stmt: ast.GUI{Target: ast.GUINameBox, Sprite: "gold", Mode: ast.GUIModeSliced},
			want: StatementView{Type: "gui", Target: "namebox", Sprite: "gold", Mode: "sliced"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := NewStatementView(tt.stmt, bindings)
			require.NotNil(t, view)
			assert.Equal(t, tt.want, *view)
		})
	}
}

func TestNewStatementView_Choice(t *testing.T) {
	stmt := ast.Choice{
		Prompt: ast.ParseText("Where to, [_PLAYERNAME_]?"),
		Options: []ast.ChoiceOption{
			{Label: ast.ParseText("The park"), Scene: "park"},
			{Label: ast.ParseText("Home"), Scene: "home"},
		},
	}

	view := NewStatementView(stmt, ast.PlayerBindings("Sam"))
	require.NotNil(t, view)
	assert.Equal(t, "choice", view.Type)
	assert.Equal(t, "Where to, Sam?", view.Prompt)
	require.Len(t, view.Options, 2)
	assert.Equal(t, OptionView{Label: "The park", Scene: "park"}, view.Options[0])
}

func TestNewStatementView_Nil(t *testing.T) {
	assert.Nil(t, NewStatementView(nil, nil))
}
