package convert

import (
	"errors"
	"fmt"
)

// ErrRegistryFrozen is returned by Extend once a default registry has
// been built.
var ErrRegistryFrozen = errors.New("converter registry is frozen")

// NoSuchConverterError reports a lookup of a field name with no registered
// extractor. Callers are expected to check Has first, so this indicates a
// programming error.
type NoSuchConverterError struct {
	Name string
}

// Error implements the error interface.
func (e *NoSuchConverterError) Error() string {
	return fmt.Sprintf("no converter registered for %q", e.Name)
}

// IsNoSuchConverter returns true if err is, or wraps, a NoSuchConverterError.
func IsNoSuchConverter(err error) bool {
	var nsc *NoSuchConverterError
	return errors.As(err, &nsc)
}
