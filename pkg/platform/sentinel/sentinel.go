package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores and caches return these
// (optionally wrapped) and services pass them through to the HTTP layer,
// which maps them to status codes.
//
// These represent factual states about collaborators, not validation failures:
// - ErrNotFound: entity does not exist in store
// - ErrConflict: store rejected a write (uniqueness or referential constraint)
// - ErrUnavailable: backing store could not be reached or failed to answer
// - ErrInvalidState: entity in wrong state for requested operation
//
// For request-level errors (bad path params, malformed bodies), use
// pkg/domain-errors directly.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnavailable  = errors.New("unavailable")
	ErrInvalidState = errors.New("invalid state")
)
