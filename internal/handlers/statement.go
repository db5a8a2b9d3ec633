package handlers

import "github.com/hiibolt/sabi/pkg/ast"

// StatementView is the wire form of one statement. Type is always set;
// the remaining fields depend on the variant.
type StatementView struct {
	Type      string       `json:"type"`
	Speaker   string       `json:"speaker,omitempty"`
	Text      string       `json:"text,omitempty"`
	Actor     string       `json:"actor,omitempty"`
	Emotion   string       `json:"emotion,omitempty"`
	Position  string       `json:"position,omitempty"`
	Fade      bool         `json:"fade,omitempty"`
	Direction string       `json:"direction,omitempty"`
	Name      string       `json:"name,omitempty"`
	Target    string       `json:"target,omitempty"`
	Sprite    string       `json:"sprite,omitempty"`
	Mode      string       `json:"mode,omitempty"`
	Scene     string       `json:"scene,omitempty"`
	Prompt    string       `json:"prompt,omitempty"`
	Options   []OptionView `json:"options,omitempty"`
}

// OptionView is one selectable branch of a choice statement.
type OptionView struct {
	Label string `json:"label"`
	Scene string `json:"scene"`
}

// NewStatementView renders a statement for the wire, evaluating dialogue
// text and speaker against the given bindings. The switch is exhaustive
// over the statement variant set.
func NewStatementView(stmt ast.Statement, bindings ast.Bindings) *StatementView {
	if stmt == nil {
		return nil
	}
	switch s := stmt.(type) {
	case ast.Dialogue:
		speaker, _ := ast.ResolveSpeaker(s.Speaker, bindings)
		text, _ := s.Text.Eval(bindings)
		return &StatementView{Type: "dialogue", Speaker: speaker, Text: text}
	case ast.Spawn:
		return &StatementView{Type: "spawn", Actor: s.Actor, Emotion: s.Emotion, Position: string(s.Position), Fade: s.Fade}
	case ast.SetEmotion:
		return &StatementView{Type: "emotion", Actor: s.Actor, Emotion: s.Emotion}
	case ast.Despawn:
		return &StatementView{Type: "despawn", Actor: s.Actor, Fade: s.Fade}
	case ast.Look:
		return &StatementView{Type: "look", Actor: s.Actor, Direction: string(s.Direction)}
	case ast.Move:
		return &StatementView{Type: "move", Actor: s.Actor, Position: string(s.Position)}
	case ast.Background:
		return &StatementView{Type: "background", Name: s.Name}
	case ast.GUI:
		return &StatementView{Type: "gui", Target: string(s.Target), Sprite: s.Sprite, Mode: string(s.Mode)}
	case ast.Jump:
		return &StatementView{Type: "jump", Scene: s.Scene}
	case ast.Choice:
		prompt, _ := s.Prompt.Eval(bindings)
		view := &StatementView{Type: "choice", Prompt: prompt}
		for _, opt := range s.Options {
			label, _ := opt.Label.Eval(bindings)
			view.Options = append(view.Options, OptionView{Label: label, Scene: opt.Scene})
		}
		return view
	default:
		return &StatementView{Type: "unknown"}
	}
}
