package content

import (
	"errors"
	"fmt"
)

// ErrNotFound marks a valid lookup with no matching record. It is rendered
// as an explicit not-found state, never as a failure.
var ErrNotFound = errors.New("record not found")

// StructuralError marks a backend schema mismatch: the queried relation or
// column does not exist. It is recovered locally by advancing the fallback
// chain to the legacy shape and is never surfaced to users. Anything that is
// neither structural nor ErrNotFound is treated as transient.
type StructuralError struct {
	Code    string
	Message string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("data service schema mismatch (%s): %s", e.Code, e.Message)
}

// IsStructural reports whether err wraps a StructuralError.
func IsStructural(err error) bool {
	var structural *StructuralError
	return errors.As(err, &structural)
}
