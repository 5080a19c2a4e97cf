package handler

import (
	"time"

	"github.com/aslamtailor/storefront-api/internal/core/ports"
)

// --- Request types for the legacy relay endpoints ---

type shippingRecipientRequest struct {
	Name       string `json:"name"        validate:"required"`
	Address    string `json:"address"     validate:"required"`
	Address2   string `json:"address_2"`
	City       string `json:"city"        validate:"required"`
	State      string `json:"state"       validate:"required"`
	PostalCode string `json:"postal_code" validate:"required"`
	Country    string `json:"country"`
	Phone      string `json:"phone"       validate:"required"`
	Email      string `json:"email"       validate:"required,email"`
}

type shippingItemRequest struct {
	Name     string  `json:"name"     validate:"required"`
	SKU      string  `json:"sku"      validate:"required"`
	Quantity int     `json:"quantity" validate:"required,gt=0"`
	Price    float64 `json:"price"    validate:"gt=0"`
}

type createShippingOrderRequest struct {
	OrderID        string                   `json:"order_id"   validate:"required"`
	OrderDate      time.Time                `json:"order_date" validate:"required"`
	Recipient      shippingRecipientRequest `json:"recipient"  validate:"required"`
	Items          []shippingItemRequest    `json:"items"      validate:"required,min=1,dive"`
	SubTotal       float64                  `json:"sub_total"  validate:"gt=0"`
	CashOnDelivery bool                     `json:"cod"`
}

type checkCourierRequest struct {
	PickupPostcode   string  `json:"pickup_postcode"   validate:"required"`
	DeliveryPostcode string  `json:"delivery_postcode" validate:"required"`
	Weight           float64 `json:"weight"            validate:"required,gt=0"`
	CashOnDelivery   bool    `json:"cod"`
	Amount           float64 `json:"amount"`
	Length           float64 `json:"length"`
	Breadth          float64 `json:"breadth"`
	Height           float64 `json:"height"`
}

// --- Mapping to service inputs ---

func toShippingOrderInput(req createShippingOrderRequest) ports.ShippingOrderInput {
	items := make([]ports.ShippingItemInput, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, ports.ShippingItemInput{
			Name:  it.Name,
			SKU:   it.SKU,
			Units: it.Quantity,
			Price: it.Price,
		})
	}

	return ports.ShippingOrderInput{
		OrderID:   req.OrderID,
		OrderDate: req.OrderDate,
		Recipient: ports.ShippingRecipientInput{
			Name:       req.Recipient.Name,
			Line1:      req.Recipient.Address,
			Line2:      req.Recipient.Address2,
			City:       req.Recipient.City,
			State:      req.Recipient.State,
			PostalCode: req.Recipient.PostalCode,
			Country:    req.Recipient.Country,
			Phone:      req.Recipient.Phone,
			Email:      req.Recipient.Email,
		},
		Items:          items,
		SubTotal:       req.SubTotal,
		CashOnDelivery: req.CashOnDelivery,
	}
}

func toServiceabilityInput(req checkCourierRequest) ports.ServiceabilityInput {
	return ports.ServiceabilityInput{
		PickupPostcode:   req.PickupPostcode,
		DeliveryPostcode: req.DeliveryPostcode,
		Weight:           req.Weight,
		CashOnDelivery:   req.CashOnDelivery,
		Amount:           req.Amount,
		Length:           req.Length,
		Breadth:          req.Breadth,
		Height:           req.Height,
	}
}
