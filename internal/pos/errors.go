package pos

import (
	"errors"
	"fmt"
)

// ErrNotImplemented marks operations on vendors whose integration is not
// built yet, or on provider tags we don't know at all. Callers can tell it
// apart from transport failures with errors.Is.
var ErrNotImplemented = errors.New("pos integration not implemented")

// APIError is a non-2xx answer from a vendor REST API. Status carries the
// vendor's own status text verbatim.
type APIError struct {
	Provider   Provider
	StatusCode int
	Status     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s API error: %s", e.Provider, e.Status)
}
