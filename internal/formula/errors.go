package formula

import (
	"errors"
	"fmt"
	"strings"
)

// ErrDivisionByZero reports an integer division by zero during evaluation.
var ErrDivisionByZero = errors.New("division by zero")

// SyntaxError represents a malformed formula: a bad character,
// unbalanced parentheses or trailing tokens.
type SyntaxError struct {
	Expr string // the offending formula
	Pos  int    // byte offset of the problem
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("formula %q: %s at position %d", e.Expr, e.Msg, e.Pos)
}

// UnknownIdentifierError represents a name the scope does not define.
// Available lists the names that were in scope, sorted.
type UnknownIdentifierError struct {
	Name      string
	Available []string
}

func (e *UnknownIdentifierError) Error() string {
	if len(e.Available) == 0 {
		return fmt.Sprintf("unknown identifier %q (scope is empty)", e.Name)
	}
	return fmt.Sprintf("unknown identifier %q (available: %s)", e.Name, strings.Join(e.Available, ", "))
}
