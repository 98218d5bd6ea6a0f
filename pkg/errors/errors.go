package errors

import "errors"

// ErrStorageUnavailable marks a connection-level database failure that
// survived the repository layer's retry. Callers may retry safely: every
// mutating operation is idempotent, keyed on the natural identity of the
// row it touches.
var ErrStorageUnavailable = errors.New("storage temporarily unavailable")
