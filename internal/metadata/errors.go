// BYZRA ⸻ internal/metadata/errors.go
// error kinds shared by the pipeline stages

package metadata

import (
	"errors"
	"fmt"
)

var (
	// explicit value outside a field's fixed domain
	ErrInvalidDirective = errors.New("invalid directive")

	// value a perturbation step could not read
	ErrUnparseableValue = errors.New("unparseable value")

	// exiftool rejected a single file
	ErrExternalProcess = errors.New("external process failure")

	// exiftool could not be started for the batch
	ErrResourceUnavailable = errors.New("external process unavailable")
)

// error tied to one field
type FieldError struct {
	Field Field
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("%s: %v: %q", e.Field, e.Err, e.Value)
	}
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

// field of a *FieldError in err's chain, if any
func ErrorField(err error) (Field, bool) {
	var fe *FieldError
	if errors.As(err, &fe) {
		return fe.Field, true
	}
	return 0, false
}
