package formula

import "fmt"

// SyntaxError reports an expression the sandboxed grammar refuses: a character
// outside the arithmetic whitelist, unbalanced parentheses, or a malformed
// construct.
type SyntaxError struct {
	Expr   string
	Pos    int
	Reason string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("formula syntax error at position %d: %s", e.Pos, e.Reason)
}

// ResultError reports an expression that parsed but did not produce a finite
// number (division by zero, overflow).
type ResultError struct {
	Expr  string
	Value float64
}

func (e *ResultError) Error() string {
	return fmt.Sprintf("formula result is not a finite number: %q", e.Expr)
}
