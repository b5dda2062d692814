// Package common defines shared constants and sentinel errors used across
// the CodeBuddy client, its storage layer and the development backend.
// Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Session errors.
	ErrNoSession       = errors.New("no active session")
	ErrInvalidSession  = errors.New("invalid session")
	ErrStaleResponse   = errors.New("stale response discarded")
	ErrMalformedRecord = errors.New("malformed stored record")

	// Credential errors reported by the backend.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAlreadyExists      = errors.New("already exists")
	ErrInvalidToken       = errors.New("invalid token")
	ErrorNotFound         = errors.New("not found")
)
