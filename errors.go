package fbhost

import "errors"

// These are ordinary Go errors describing configuration/setup mistakes,
// distinct from the protocol-visible Error enum in errors_proto.go.
var (
	// ErrInvalidConfig is returned when the provided options result in an
	// invalid configuration.
	ErrInvalidConfig = errors.New("fbhost: invalid configuration")
)
