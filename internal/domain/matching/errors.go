package matching

import "errors"

var (
	// ErrInvalidInput marks caller mistakes: negative weights, out-of-range levels, nil ids.
	ErrInvalidInput = errors.New("invalid matching input")
	// ErrInconsistentData marks a snapshot that cannot be scored as given, e.g. a requirement
	// whose skill is missing from the catalog.
	ErrInconsistentData = errors.New("inconsistent matching data")
)
