// Package construct defines the error returned by generated Build methods.
package construct

import (
	"errors"
	"fmt"
)

// ErrIncomplete is matched by every construction error.
var ErrIncomplete = errors.New("builder is incomplete")

// Error reports that Build was called before a required field was set.
type Error struct {
	// Type is the name of the type being built.
	Type string
	// Field is the first field, in declaration order, that was never set.
	Field string
}

// Missing returns the error for an unset field of the named type.
func Missing(typeName, field string) error {
	return &Error{Type: typeName, Field: field}
}

// Error implements error.
func (e *Error) Error() string {
	return fmt.Sprintf("cannot build %s: field %s is not set", e.Type, e.Field)
}

// Is makes errors.Is(err, ErrIncomplete) hold for any *Error.
func (e *Error) Is(target error) bool {
	return target == ErrIncomplete
}
