package ast

import (
	"fmt"
	"strings"

	"github.com/hiibolt/sabi/pkg/script"
)

// BuildError reports a structurally well-formed script that is
// semantically invalid: wrong directive arity, unknown argument
// vocabulary, an undefined scene reference, or no playable content.
// It is fatal to loading the script.
type BuildError struct {
	Line    int
	Column  int
	Message string
}

func (e *BuildError) Error() string {
	if e.Line == 0 {
		return "build error: " + e.Message
	}
	return fmt.Sprintf("build error at line %d, column %d: %s", e.Line, e.Column, e.Message)
}

func buildErrorf(line, column int, format string, args ...any) *BuildError {
	return &BuildError{Line: line, Column: column, Message: fmt.Sprintf(format, args...)}
}

// Build walks a parse tree and produces a typed Act. All directive
// argument counts and vocabularies are validated here so that playback
// never encounters a malformed statement at runtime. The act's name is
// set from the caller-supplied logical script name.
func Build(tree *script.Tree, name string) (*Act, error) {
	if tree == nil || len(tree.Scenes) == 0 {
		return nil, &BuildError{Message: "script produced no playable content"}
	}

	act := &Act{Name: name}
	seen := make(map[string]bool, len(tree.Scenes))
	for _, sceneNode := range tree.Scenes {
		if seen[sceneNode.Name] {
			return nil, buildErrorf(sceneNode.Line, sceneNode.Column,
				"duplicate scene name %q", sceneNode.Name)
		}
		seen[sceneNode.Name] = true

		if len(sceneNode.Statements) == 0 {
			return nil, buildErrorf(sceneNode.Line, sceneNode.Column,
				"scene %q has no statements", sceneNode.Name)
		}

		scene := &Scene{Name: sceneNode.Name}
		for _, stmtNode := range sceneNode.Statements {
			stmt, err := buildStatement(stmtNode)
			if err != nil {
				return nil, err
			}
			scene.Statements = append(scene.Statements, stmt)
		}
		act.Scenes = append(act.Scenes, scene)
	}

	// Scene references can point forward, so they are checked after all
	// scenes exist.
	for _, scene := range act.Scenes {
		for _, stmt := range scene.Statements {
			if err := checkSceneRefs(act, stmt); err != nil {
				return nil, err
			}
		}
	}

	return act, nil
}

func buildStatement(node script.StatementNode) (Statement, error) {
	if node.Kind == script.NodeDialogue {
		return Dialogue{Speaker: node.Speaker, Text: ParseText(node.Text)}, nil
	}
	return buildDirective(node)
}

func buildDirective(node script.StatementNode) (Statement, error) {
	switch node.Keyword {
	case "spawn":
		if err := arity(node, 3, 4); err != nil {
			return nil, err
		}
		actor, err := identArg(node, 0, "actor name")
		if err != nil {
			return nil, err
		}
		emotion, err := identArg(node, 1, "emotion")
		if err != nil {
			return nil, err
		}
		position, err := positionArg(node, 2)
		if err != nil {
			return nil, err
		}
		fade, err := fadeArg(node, 3)
		if err != nil {
			return nil, err
		}
		return Spawn{Actor: actor, Emotion: emotion, Position: position, Fade: fade}, nil

	case "emotion":
		if err := arity(node, 2, 2); err != nil {
			return nil, err
		}
		actor, err := identArg(node, 0, "actor name")
		if err != nil {
			return nil, err
		}
		emotion, err := identArg(node, 1, "emotion")
		if err != nil {
			return nil, err
		}
		return SetEmotion{Actor: actor, Emotion: emotion}, nil

	case "despawn":
		if err := arity(node, 1, 2); err != nil {
			return nil, err
		}
		actor, err := identArg(node, 0, "actor name")
		if err != nil {
			return nil, err
		}
		fade, err := fadeArg(node, 1)
		if err != nil {
			return nil, err
		}
		return Despawn{Actor: actor, Fade: fade}, nil

	case "look":
		if err := arity(node, 2, 2); err != nil {
			return nil, err
		}
		actor, err := identArg(node, 0, "actor name")
		if err != nil {
			return nil, err
		}
		direction, err := ParseDirection(node.Args[1].Value)
		if err != nil {
			return nil, buildErrorf(node.Args[1].Line, node.Args[1].Column, "look: %v", err)
		}
		return Look{Actor: actor, Direction: direction}, nil

	case "move":
		if err := arity(node, 2, 2); err != nil {
			return nil, err
		}
		actor, err := identArg(node, 0, "actor name")
		if err != nil {
			return nil, err
		}
		position, err := positionArg(node, 1)
		if err != nil {
			return nil, err
		}
		return Move{Actor: actor, Position: position}, nil

	case "bg":
		if err := arity(node, 1, 1); err != nil {
			return nil, err
		}
		return Background{Name: node.Args[0].Value}, nil

	case "gui":
		if err := arity(node, 2, 3); err != nil {
			return nil, err
		}
		var target GUITarget
		switch normalize(node.Args[0].Value) {
		case "textbox":
			target = GUITextBox
		case "namebox":
			target = GUINameBox
		default:
			return nil, buildErrorf(node.Args[0].Line, node.Args[0].Column,
				"gui: unknown target %q (want textbox or namebox)", node.Args[0].Value)
		}
		mode := GUIModeAuto
		if len(node.Args) == 3 {
			switch normalize(node.Args[2].Value) {
			case "auto":
				mode = GUIModeAuto
			case "sliced":
				mode = GUIModeSliced
			default:
				return nil, buildErrorf(node.Args[2].Line, node.Args[2].Column,
					"gui: unknown image mode %q (want auto or sliced)", node.Args[2].Value)
			}
		}
		return GUI{Target: target, Sprite: node.Args[1].Value, Mode: mode}, nil

	case "jump":
		if err := arity(node, 1, 1); err != nil {
			return nil, err
		}
		scene, err := identArg(node, 0, "scene name")
		if err != nil {
			return nil, err
		}
		return Jump{Scene: scene}, nil

	case "choice":
		// choice("prompt", "label", target, "label", target, ...)
		if len(node.Args) < 3 || len(node.Args)%2 == 0 {
			return nil, buildErrorf(node.Line, node.Column,
				"choice: want a prompt followed by label/scene pairs, got %d arguments", len(node.Args))
		}
		if node.Args[0].Kind != script.ArgString {
			return nil, buildErrorf(node.Args[0].Line, node.Args[0].Column,
				"choice: prompt must be a string")
		}
		choice := Choice{Prompt: ParseText(node.Args[0].Value)}
		for i := 1; i < len(node.Args); i += 2 {
			label, scene := node.Args[i], node.Args[i+1]
			if label.Kind != script.ArgString {
				return nil, buildErrorf(label.Line, label.Column,
					"choice: option label must be a string")
			}
			if scene.Kind != script.ArgIdent {
				return nil, buildErrorf(scene.Line, scene.Column,
					"choice: option target must be a scene name")
			}
			choice.Options = append(choice.Options, ChoiceOption{
				Label: ParseText(label.Value),
				Scene: scene.Value,
			})
		}
		return choice, nil

	default:
		return nil, buildErrorf(node.Line, node.Column, "unknown directive %q", node.Keyword)
	}
}

func checkSceneRefs(act *Act, stmt Statement) error {
	switch s := stmt.(type) {
	case Jump:
		if act.SceneIndex(s.Scene) < 0 {
			return &BuildError{Message: fmt.Sprintf("jump references undefined scene %q", s.Scene)}
		}
	case Choice:
		for _, opt := range s.Options {
			if act.SceneIndex(opt.Scene) < 0 {
				return &BuildError{Message: fmt.Sprintf("choice references undefined scene %q", opt.Scene)}
			}
		}
	}
	return nil
}

func arity(node script.StatementNode, min, max int) error {
	if len(node.Args) < min || len(node.Args) > max {
		want := fmt.Sprintf("%d", min)
		if max != min {
			want = fmt.Sprintf("%d to %d", min, max)
		}
		return buildErrorf(node.Line, node.Column,
			"%s: want %s arguments, got %d", node.Keyword, want, len(node.Args))
	}
	return nil
}

func identArg(node script.StatementNode, i int, what string) (string, error) {
	arg := node.Args[i]
	if arg.Kind != script.ArgIdent {
		return "", buildErrorf(arg.Line, arg.Column,
			"%s: %s must be an identifier, got %s %q", node.Keyword, what, arg.Kind, arg.Value)
	}
	return arg.Value, nil
}

func positionArg(node script.StatementNode, i int) (Position, error) {
	arg := node.Args[i]
	position, err := ParsePosition(arg.Value)
	if err != nil {
		return "", buildErrorf(arg.Line, arg.Column, "%s: %v", node.Keyword, err)
	}
	return position, nil
}

// fadeArg reads the optional trailing "fade" flag of spawn and despawn.
// Index i may be past the end of the argument list.
func fadeArg(node script.StatementNode, i int) (bool, error) {
	if i >= len(node.Args) {
		return false, nil
	}
	arg := node.Args[i]
	if arg.Kind != script.ArgIdent || normalize(arg.Value) != "fade" {
		return false, buildErrorf(arg.Line, arg.Column,
			`%s: trailing flag must be "fade", got %q`, node.Keyword, arg.Value)
	}
	return true, nil
}

// normalize folds case and treats underscores as spaces, so scripts may
// write far_left or "far left" interchangeably.
func normalize(value string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(value)), "_", " ")
}
