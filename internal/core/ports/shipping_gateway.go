package ports

import (
	"context"
	"encoding/json"
	"time"
)

// ShippingRecipientInput holds the single billing/shipping recipient of a
// courier order.
type ShippingRecipientInput struct {
	Name       string
	Line1      string
	Line2      string
	City       string
	State      string
	PostalCode string
	Country    string
	Phone      string
	Email      string
}

// ShippingItemInput is one order line forwarded to the courier.
type ShippingItemInput struct {
	Name  string
	SKU   string
	Units int
	Price float64
}

// ShippingOrderInput carries all data needed to create a courier order.
type ShippingOrderInput struct {
	OrderID        string
	OrderDate      time.Time
	Recipient      ShippingRecipientInput
	Items          []ShippingItemInput
	SubTotal       float64
	CashOnDelivery bool
}

// ServiceabilityInput carries the parameters of a courier serviceability check.
// Zero dimensions are defaulted by the gateway.
type ServiceabilityInput struct {
	PickupPostcode   string
	DeliveryPostcode string
	Weight           float64
	CashOnDelivery   bool
	// Amount is collected as COD when CashOnDelivery is set, otherwise
	// declared as the prepaid order value.
	Amount  float64
	Length  float64
	Breadth float64
	Height  float64
}

// ShippingGateway hides courier-provider authentication from callers. The
// provider's responses are passed through untouched.
type ShippingGateway interface {
	// EnsureToken returns a valid bearer token, exchanging credentials only
	// when the cached token is absent or within the refresh buffer of expiry.
	EnsureToken(ctx context.Context) (string, error)
	CreateOrder(ctx context.Context, input ShippingOrderInput) (json.RawMessage, error)
	CheckServiceability(ctx context.Context, input ServiceabilityInput) (json.RawMessage, error)
}
