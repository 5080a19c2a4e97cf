package handler

import (
	"github.com/aslamtailor/storefront-api/internal/core/domain"
	"github.com/aslamtailor/storefront-api/internal/core/ports"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request / Response types ---

type orderAddressRequest struct {
	Name       string `json:"name"        validate:"required"`
	Line1      string `json:"line1"       validate:"required"`
	Line2      string `json:"line2"`
	City       string `json:"city"        validate:"required"`
	State      string `json:"state"       validate:"required"`
	PostalCode string `json:"postal_code" validate:"required"`
	Country    string `json:"country"`
	Phone      string `json:"phone"       validate:"required"`
	Email      string `json:"email"       validate:"required,email"`
}

type orderItemRequest struct {
	ProductID string  `json:"product_id" validate:"required"`
	Name      string  `json:"name"       validate:"required"`
	SKU       string  `json:"sku"        validate:"required"`
	Quantity  int     `json:"quantity"   validate:"required,gt=0"`
	Price     float64 `json:"price"      validate:"gt=0"`
}

type createOrderRequest struct {
	CustomerID    string              `json:"customer_id"    validate:"required"`
	PaymentMethod string              `json:"payment_method" validate:"required,oneof=cod prepaid"`
	Items         []orderItemRequest  `json:"items"          validate:"required,min=1,dive"`
	Address       orderAddressRequest `json:"address"        validate:"required"`
}

type updateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type listOrdersResponse struct {
	Data  []domain.Order `json:"data"`
	Total int            `json:"total"`
}

func toCreateOrderInput(req createOrderRequest) ports.CreateOrderInput {
	items := make([]ports.OrderItemInput, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, ports.OrderItemInput{
			ProductID: it.ProductID,
			Name:      it.Name,
			SKU:       it.SKU,
			Quantity:  it.Quantity,
			Price:     it.Price,
		})
	}

	return ports.CreateOrderInput{
		CustomerID:    req.CustomerID,
		PaymentMethod: domain.PaymentMethod(req.PaymentMethod),
		Items:         items,
		Address: domain.ShippingAddress{
			Name:       req.Address.Name,
			Line1:      req.Address.Line1,
			Line2:      req.Address.Line2,
			City:       req.Address.City,
			State:      req.Address.State,
			PostalCode: req.Address.PostalCode,
			Country:    req.Address.Country,
			Phone:      req.Address.Phone,
			Email:      req.Address.Email,
		},
	}
}
