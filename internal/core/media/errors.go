package media

import (
	"errors"
	"fmt"
)

var (
	// ErrNilDependency is returned when a required dependency is nil
	ErrNilDependency = errors.New("required dependency is nil")

	// ErrMissingCredentials is returned when the media host cannot be configured
	ErrMissingCredentials = errors.New("media host credentials are missing")

	// ErrInvalidPublicID is returned for an empty or path-like public id
	ErrInvalidPublicID = errors.New("invalid media public id")

	// ErrUnsupportedType is returned when an upload is not an accepted image type
	ErrUnsupportedType = errors.New("unsupported image type")

	// ErrCircuitOpen is returned while the media host is considered unavailable
	ErrCircuitOpen = errors.New("media host temporarily unavailable")
)

// HostError carries a failure message reported by the media host itself
type HostError struct {
	Op      string
	Message string
}

func (e *HostError) Error() string {
	return fmt.Sprintf("media host %s failed: %s", e.Op, e.Message)
}
