package event

import (
	"fmt"
	"strings"
)

// ValidationError reports every field that failed validation, keyed by field,
// with one user-facing message per field.
type ValidationError struct {
	Fields map[Field]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range fieldOrder {
		if msg, ok := e.Fields[f]; ok {
			parts = append(parts, fmt.Sprintf("%s (%s)", f, msg))
		}
	}
	return "event: invalid fields: " + strings.Join(parts, ", ")
}

// Message returns the message for field f, if it failed.
func (e *ValidationError) Message(f Field) (string, bool) {
	msg, ok := e.Fields[f]
	return msg, ok
}

// Failed returns the failing fields in form order.
func (e *ValidationError) Failed() []Field {
	var out []Field
	for _, f := range fieldOrder {
		if _, ok := e.Fields[f]; ok {
			out = append(out, f)
		}
	}
	return out
}
