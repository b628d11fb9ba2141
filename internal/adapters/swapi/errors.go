package swapi

import "errors"

// Sentinel kinds for upstream errors. Callers use errors.Is to pick the
// HTTP status to surface.
var (
	// ErrUnreachable marks transport-level failures (DNS, refused,
	// timeouts) talking to the source.
	ErrUnreachable = errors.New("unable to reach SWAPI")

	// ErrBadStatus marks non-success HTTP responses from the source.
	ErrBadStatus = errors.New("SWAPI returned an error")

	// ErrMalformedPayload marks pages whose structure cannot be parsed.
	ErrMalformedPayload = errors.New("malformed SWAPI payload")
)
