package shiprocket

import "fmt"

// Relay operation names used in errors and metrics labels.
const (
	OpCreateOrder    = "create_order"
	OpServiceability = "serviceability"
)

// UpstreamError reports a relay operation the provider rejected or that
// failed in transport after a valid token was obtained.
type UpstreamError struct {
	Op      string
	Status  int    // provider HTTP status, 0 on transport failure
	Details string // provider error body when available
	Err     error  // transport error when no provider response exists
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("shiprocket %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("shiprocket %s: provider returned %d", e.Op, e.Status)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// Detail returns the provider-supplied error body when present, otherwise
// the transport error message.
func (e *UpstreamError) Detail() string {
	if e.Details != "" {
		return e.Details
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return ""
}
