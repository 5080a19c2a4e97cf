package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/aslamtailor/storefront-api/internal/core/domain"
	"github.com/aslamtailor/storefront-api/internal/core/ports"
)

// CatalogService implements product and customer management for the back
// office.
type CatalogService struct {
	products  ports.ProductRepository
	customers ports.CustomerRepository
	logger    zerolog.Logger
}

func NewCatalogService(products ports.ProductRepository, customers ports.CustomerRepository, logger zerolog.Logger) *CatalogService {
	return &CatalogService{products: products, customers: customers, logger: logger}
}

func (s *CatalogService) CreateProduct(ctx context.Context, p domain.Product) (*domain.Product, error) {
	p.ID = uuid.NewString()
	p.Active = true
	p.CreatedAt = time.Now().UTC()

	if err := s.products.Create(ctx, &p); err != nil {
		s.logger.Error().Err(err).Msg("failed to create product")
		return nil, err
	}
	s.logger.Info().Str("product_id", p.ID).Str("name", p.Name).Msg("product created")
	return &p, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	return s.products.FindByID(ctx, id)
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.products.List(ctx)
}

func (s *CatalogService) CreateCustomer(ctx context.Context, c domain.Customer) (*domain.Customer, error) {
	c.ID = uuid.NewString()
	c.CreatedAt = time.Now().UTC()

	if err := s.customers.Create(ctx, &c); err != nil {
		s.logger.Error().Err(err).Msg("failed to create customer")
		return nil, err
	}
	return &c, nil
}

func (s *CatalogService) GetCustomer(ctx context.Context, id string) (*domain.Customer, error) {
	return s.customers.FindByID(ctx, id)
}

func (s *CatalogService) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	return s.customers.List(ctx)
}
