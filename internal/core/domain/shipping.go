package domain

import "errors"

// ErrShippingAuth marks a failed credential exchange with the courier
// provider. The relay surfaces it without retrying.
var ErrShippingAuth = errors.New("courier authentication failed")
