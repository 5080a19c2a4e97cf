package ports

import (
	"context"

	"github.com/aslamtailor/storefront-api/internal/core/domain"
)

// OrderItemInput is one purchased line in a checkout submission.
type OrderItemInput struct {
	ProductID string
	Name      string
	SKU       string
	Quantity  int
	Price     float64
}

// CreateOrderInput carries all data needed to record a storefront order.
type CreateOrderInput struct {
	CustomerID    string
	PaymentMethod domain.PaymentMethod
	Items         []OrderItemInput
	Address       domain.ShippingAddress
}

// OrderService defines order use-cases for checkout and the back office.
type OrderService interface {
	Create(ctx context.Context, input CreateOrderInput) (*domain.Order, error)
	Get(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error)
}

// CatalogService defines product and customer use-cases for the back office.
type CatalogService interface {
	CreateProduct(ctx context.Context, p domain.Product) (*domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
	CreateCustomer(ctx context.Context, c domain.Customer) (*domain.Customer, error)
	GetCustomer(ctx context.Context, id string) (*domain.Customer, error)
	ListCustomers(ctx context.Context) ([]domain.Customer, error)
}
