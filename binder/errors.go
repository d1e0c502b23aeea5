package binder

import (
	"errors"
	"fmt"

	"github.com/dmitrymomot/crudkit"
)

// ErrInvalidTarget reports a misuse of the binder API (non-pointer or
// non-struct target). It carries no HTTP classification on purpose: it is a
// programmer error and should surface as a 500.
var ErrInvalidTarget = errors.New("bind target must be a non-nil pointer to struct")

// Malformed parameters are client errors, so the per-source sentinels wrap
// crudkit.ErrBadRequest. Callers get a 400 classification for free instead
// of each having to substitute its own HTTP error.
var (
	ErrInvalidQuery = fmt.Errorf("%w: invalid query parameter", crudkit.ErrBadRequest)
	ErrInvalidPath  = fmt.Errorf("%w: invalid path parameter", crudkit.ErrBadRequest)
)
