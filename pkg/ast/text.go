package ast

import (
	"fmt"
	"strings"
)

// PlayerNameVar is the well-known binding key for the runtime player name,
// written in scripts as [_PLAYERNAME_].
const PlayerNameVar = "PLAYERNAME"

// Bindings is the runtime binding context supplied by the host on each
// evaluation call. The engine never owns one; this keeps the core
// decoupled from player-profile storage.
type Bindings map[string]string

// PlayerBindings is a convenience constructor for the common single-name
// binding context.
func PlayerBindings(playerName string) Bindings {
	return Bindings{PlayerNameVar: playerName}
}

// UnboundVariableError reports a variable reference with no binding.
// It is recoverable: evaluation still returns a usable string with the
// unresolved reference blanked out.
type UnboundVariableError struct {
	Name string
}

func (e *UnboundVariableError) Error() string {
	return fmt.Sprintf("no binding for variable %q", e.Name)
}

// Segment is one piece of an evaluatable text fragment.
type Segment interface {
	segment()
}

// Literal is a text segment that passes through evaluation unchanged.
type Literal struct {
	Value string
}

// Variable is a reference resolved against the binding context.
type Variable struct {
	Name string
}

func (Literal) segment()  {}
func (Variable) segment() {}

// Text is an ordered sequence of literal and variable segments, exactly as
// authored. Evaluation preserves segment order and never mutates anything.
type Text []Segment

// ParseText splits a raw authored string on [_NAME_] variable markers.
// Malformed markers are kept as literal text.
func ParseText(raw string) Text {
	var text Text
	rest := raw
	for rest != "" {
		start := strings.Index(rest, "[_")
		if start < 0 {
			break
		}
		end := strings.Index(rest[start+2:], "_]")
		if end < 0 {
			break
		}
		name := rest[start+2 : start+2+end]
		if !isVarName(name) {
			// Not a marker after all; emit up to and including "[_"
			// literally and keep scanning.
			text = appendLiteral(text, rest[:start+2])
			rest = rest[start+2:]
			continue
		}
		if start > 0 {
			text = appendLiteral(text, rest[:start])
		}
		text = append(text, Variable{Name: name})
		rest = rest[start+2+end+2:]
	}
	if rest != "" {
		text = appendLiteral(text, rest)
	}
	return text
}

func appendLiteral(text Text, value string) Text {
	if len(text) > 0 {
		if lit, ok := text[len(text)-1].(Literal); ok {
			text[len(text)-1] = Literal{Value: lit.Value + value}
			return text
		}
	}
	return append(text, Literal{Value: value})
}

func isVarName(name string) bool {
	if name == "" {
		return false
	}
	for _, ch := range name {
		if (ch < 'A' || ch > 'Z') && (ch < '0' || ch > '9') && ch != '_' {
			return false
		}
	}
	return true
}

// Eval assembles the display string for this text against the given
// bindings. On an unresolved variable it blanks that segment and returns
// the assembled string together with an *UnboundVariableError, so callers
// may either surface the error or use the degraded result.
func (t Text) Eval(bindings Bindings) (string, error) {
	var sb strings.Builder
	var firstErr error
	for _, seg := range t {
		switch s := seg.(type) {
		case Literal:
			sb.WriteString(s.Value)
		case Variable:
			value, ok := bindings[s.Name]
			if !ok {
				if firstErr == nil {
					firstErr = &UnboundVariableError{Name: s.Name}
				}
				continue
			}
			sb.WriteString(value)
		}
	}
	return sb.String(), firstErr
}

// String reconstructs the authored form, variable markers intact. It is
// the inverse of ParseText and is used to serialize history entries.
func (t Text) String() string {
	var sb strings.Builder
	for _, seg := range t {
		switch s := seg.(type) {
		case Literal:
			sb.WriteString(s.Value)
		case Variable:
			sb.WriteString("[_" + s.Name + "_]")
		}
	}
	return sb.String()
}

// ResolveSpeaker resolves a speaker identifier, which may itself be a
// variable marker such as [_PLAYERNAME_], against the binding context.
func ResolveSpeaker(speaker string, bindings Bindings) (string, error) {
	if !strings.Contains(speaker, "[_") {
		return speaker, nil
	}
	return ParseText(speaker).Eval(bindings)
}
