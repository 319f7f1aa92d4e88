package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrConflict indicates that a state transition was attempted against stale
// state, e.g. approving an obligation that is no longer pending approval.
// Callers must re-fetch the current state before retrying.
var ErrConflict = errors.New("conflicting state transition")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")
