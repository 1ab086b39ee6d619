// Package domain defines domain-level errors for the users feature.
package domain

import "errors"

// ErrUserNotFound is returned when no non-deleted user matches the lookup.
var ErrUserNotFound = errors.New("user not found")
