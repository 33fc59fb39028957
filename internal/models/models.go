// Package models defines the portal's persistent records. The data was born
// in a document store, so primary keys are string document ids (uuid) and a
// few date fields are ISO-8601 strings that may be absent.
package models

import "github.com/google/uuid"

// NewID returns a fresh document id.
func NewID() string { return uuid.NewString() }
