package search

import "errors"

var (
	// ErrInvalidFilterValue indicates a filter value with the wrong shape,
	// e.g. a features filter that is not an array of strings
	ErrInvalidFilterValue = errors.New("invalid filter value")

	// ErrInvalidFilterKey indicates a min/max range key whose unit-qualified
	// form has no column mapping (unrecognized prefix or unit suffix)
	ErrInvalidFilterKey = errors.New("invalid filter key")

	// ErrSearchExecution wraps any underlying query failure. The original
	// error is logged server-side; callers only see this generic error.
	ErrSearchExecution = errors.New("search execution failed")
)
