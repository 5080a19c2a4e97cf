package ports

import (
	"context"
	"encoding/json"
)

// RelayDeduper prevents the same internal order from being relayed to the
// courier twice within the dedup window.
type RelayDeduper interface {
	IsDuplicate(ctx context.Context, orderID string) (bool, error)
	Mark(ctx context.Context, orderID string) error
}

// ShippingService defines the relay use-cases exposed to the storefront.
type ShippingService interface {
	// Login forces a token check and returns the active bearer token.
	Login(ctx context.Context) (string, error)
	RelayOrder(ctx context.Context, input ShippingOrderInput) (json.RawMessage, error)
	CheckCourier(ctx context.Context, input ServiceabilityInput) (json.RawMessage, error)
}
