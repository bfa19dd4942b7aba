package llm

import (
	"fmt"
	"strings"
)

// ParseError indicates that a model response contained no recoverable JSON.
// Snippet carries a bounded excerpt of the offending payload for diagnosis.
type ParseError struct {
	Reason  string
	Snippet string
}

func (e *ParseError) Error() string {
	if e.Snippet == "" {
		return fmt.Sprintf("parse failure: %s", e.Reason)
	}
	return fmt.Sprintf("parse failure: %s: %q", e.Reason, e.Snippet)
}

// ValidationError indicates that recovered JSON did not match the expected
// transaction shape. Fields enumerates each failed field and why.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failure"
	}
	return "validation failure: " + strings.Join(e.Fields, "; ")
}

// TransportError indicates the completion interface was unreachable or
// returned an error. The message is safe to log: it never includes
// credentials or raw request bodies.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport failure: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
