package core

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound signals that a requested identity is absent from its table.
// Callers can use it to tell "no such user" apart from "user has no posts".
var ErrNotFound = errors.New("record not found")

// ParseError reports a line whose shape does not match the entity's
// expected arity. It aborts the read of the whole file: a malformed line
// means corruption or a schema mismatch, and skipping it would lose data.
type ParseError struct {
	Kind   string // entity kind, e.g. "users"
	Want   int    // expected field count
	Fields []string
}

// NewParseError builds a ParseError for the given entity kind.
func NewParseError(kind string, want int, fields []string) *ParseError {
	return &ParseError{Kind: kind, Want: want, Fields: fields}
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("couldn't parse %s line, expected %d fields, got %d: %s",
		e.Kind, e.Want, len(e.Fields), strings.Join(e.Fields, ", "))
}
