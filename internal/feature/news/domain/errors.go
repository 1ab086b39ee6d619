// Package domain defines domain-level errors for the news feature.
package domain

import "errors"

// ErrNewsNotFound indicates that no non-deleted news item matches the given id.
var ErrNewsNotFound = errors.New("news not found")
