package types

import "fmt"

// ParseError reports a malformed type expression.
type ParseError struct {
	Input  string // The full text being parsed
	Pos    int    // Byte offset of the offending token
	Reason string // Human-readable reason for failure
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("type %q at offset %d: %s", e.Input, e.Pos, e.Reason)
}
