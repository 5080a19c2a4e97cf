package domain

import (
	"errors"
	"time"
)

// OrderStatus represents the lifecycle state of a storefront order.
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

// validTransitions defines the allowed state machine transitions.
var validTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:    {OrderProcessing, OrderCancelled},
	OrderProcessing: {OrderShipped, OrderCancelled},
	OrderShipped:    {OrderDelivered},
}

var ErrInvalidTransition = errors.New("invalid status transition")
var ErrOrderNotFound = errors.New("order not found")
var ErrEmptyOrder = errors.New("order has no items")
var ErrDuplicateRelay = errors.New("order already relayed to courier")

// CanTransitionTo reports whether a transition from current status to next is valid.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Known reports whether s is one of the closed status set.
func (s OrderStatus) Known() bool {
	switch s {
	case OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// PaymentMethod distinguishes cash-on-delivery from prepaid orders.
type PaymentMethod string

const (
	PaymentCOD     PaymentMethod = "cod"
	PaymentPrepaid PaymentMethod = "prepaid"
)

// ShippingAddress is the single recipient address of an order. Billing and
// shipping are identical in this domain since there is one recipient.
type ShippingAddress struct {
	Name       string `json:"name" bson:"name"`
	Line1      string `json:"line1" bson:"line1"`
	Line2      string `json:"line2,omitempty" bson:"line2,omitempty"`
	City       string `json:"city" bson:"city"`
	State      string `json:"state" bson:"state"`
	PostalCode string `json:"postal_code" bson:"postal_code"`
	Country    string `json:"country" bson:"country"`
	Phone      string `json:"phone" bson:"phone"`
	Email      string `json:"email" bson:"email"`
}

// OrderItem is a single purchased line of an order.
type OrderItem struct {
	ProductID string  `json:"product_id" bson:"product_id"`
	Name      string  `json:"name" bson:"name"`
	SKU       string  `json:"sku" bson:"sku"`
	Quantity  int     `json:"quantity" bson:"quantity"`
	Price     float64 `json:"price" bson:"price"`
}

// Order is the core aggregate root.
type Order struct {
	ID            string          `json:"id" bson:"_id,omitempty"`
	CustomerID    string          `json:"customer_id" bson:"customer_id"`
	Status        OrderStatus     `json:"status" bson:"status"`
	PaymentMethod PaymentMethod   `json:"payment_method" bson:"payment_method"`
	Total         float64         `json:"total" bson:"total"`
	Items         []OrderItem     `json:"items" bson:"items"`
	Address       ShippingAddress `json:"address" bson:"address"`
	CreatedAt     time.Time       `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at" bson:"updated_at"`
}
