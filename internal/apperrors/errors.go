package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that the operation conflicts with the current state of the
// resource (e.g. reviewing a change that is no longer pending, closing a closed year).
var ErrConflict = errors.New("conflict with current resource state")

// ErrForbidden indicates the actor is not allowed to perform the operation.
var ErrForbidden = errors.New("operation not permitted")

// ErrInternal indicates an unexpected internal failure that should surface as a
// generic 500 to the client.
var ErrInternal = errors.New("internal error")
