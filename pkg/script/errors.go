package script

import "fmt"

// SyntaxError reports malformed script text with its source location.
// It is fatal to loading the script that produced it.
type SyntaxError struct {
	Line     int
	Column   int
	Expected string
	Found    Token
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at line %d, column %d: expected %s, found %s",
		e.Line, e.Column, e.Expected, e.Found)
}

func syntaxError(expected string, found Token) *SyntaxError {
	return &SyntaxError{
		Line:     found.Line,
		Column:   found.Column,
		Expected: expected,
		Found:    found,
	}
}
