package core

import "errors"

// Sentinel error kinds surfaced to the HTTP layer. Handlers map these to
// 404, 409 and 400; anything else becomes a 500.
var (
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrValidation = errors.New("validation failed")
)
