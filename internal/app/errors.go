package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrMissingDependency = errors.New("missing service dependency")
)
