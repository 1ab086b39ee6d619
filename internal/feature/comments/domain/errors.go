// Package domain defines domain-level errors for the comments feature.
package domain

import "fmt"

// MsgNewsNotFound is the message format of the validation error returned when
// a comment targets a news item that does not exist.
const MsgNewsNotFound = "news with id %q does not exist"

// ValidationError reports a comment request that violates a precondition.
// Field names the offending input; Err optionally carries the cause.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// StorageError reports that the comment store could not complete an operation.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
