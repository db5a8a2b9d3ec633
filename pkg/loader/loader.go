// Package loader is the top-level entry point for turning stored assets
// into typed runtime structures: script text into a compiled act, and
// character JSON into a config record. It performs no I/O itself; callers
// hand it bytes already read from storage.
package loader

import (
	"encoding/json"
	"fmt"

	"github.com/hiibolt/sabi/pkg/ast"
	"github.com/hiibolt/sabi/pkg/character"
	"github.com/hiibolt/sabi/pkg/script"
)

// LoadError wraps a parse or build failure for a named script. Use
// errors.As to recover the underlying *script.SyntaxError or
// *ast.BuildError.
type LoadError struct {
	Script string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading script %q: %v", e.Script, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Load parses and builds one script. logicalName becomes the act's name
// and is normally derived from the source file's stem, the way the asset
// pipeline names things.
func Load(source, logicalName string) (*ast.Act, error) {
	tree, err := script.Parse(source)
	if err != nil {
		return nil, &LoadError{Script: logicalName, Err: err}
	}
	act, err := ast.Build(tree, logicalName)
	if err != nil {
		return nil, &LoadError{Script: logicalName, Err: err}
	}
	return act, nil
}

// LoadCharacter decodes one character configuration record.
func LoadCharacter(data []byte) (*character.Config, error) {
	var cfg character.Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing character config: %w", err)
	}
	return &cfg, nil
}

// ValidateCast cross-checks an act against the character configs that are
// available: spawn and emotion directives naming a configured actor must
// use an emotion that actor declares. Actors without a config are skipped,
// so scripts stay playable with a partial cast. All findings are returned,
// not just the first.
func ValidateCast(act *ast.Act, cast map[string]*character.Config) []error {
	var errs []error
	check := func(scene, actor, emotion string) {
		cfg, ok := cast[actor]
		if !ok {
			return
		}
		if !cfg.HasEmotion(emotion) {
			errs = append(errs, fmt.Errorf("scene %q: character %q does not declare emotion %q",
				scene, actor, emotion))
		}
	}
	for _, scene := range act.Scenes {
		for _, stmt := range scene.Statements {
			switch s := stmt.(type) {
			case ast.Spawn:
				check(scene.Name, s.Actor, s.Emotion)
			case ast.SetEmotion:
				check(scene.Name, s.Actor, s.Emotion)
			}
		}
	}
	return errs
}
