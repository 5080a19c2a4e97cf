package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/aslamtailor/storefront-api/internal/core/domain"
	"github.com/aslamtailor/storefront-api/internal/core/ports"
	"github.com/aslamtailor/storefront-api/internal/metrics"
)

// OrderService implements checkout order recording and back-office order
// management.
type OrderService struct {
	repo   ports.OrderRepository
	logger zerolog.Logger
}

func NewOrderService(repo ports.OrderRepository, logger zerolog.Logger) *OrderService {
	return &OrderService{repo: repo, logger: logger}
}

// Create records a new storefront order. The total is computed from the line
// items, never trusted from the client.
func (s *OrderService) Create(ctx context.Context, input ports.CreateOrderInput) (*domain.Order, error) {
	if len(input.Items) == 0 {
		return nil, domain.ErrEmptyOrder
	}

	now := time.Now().UTC()
	order := &domain.Order{
		ID:            uuid.NewString(),
		CustomerID:    input.CustomerID,
		Status:        domain.OrderPending,
		PaymentMethod: input.PaymentMethod,
		Address:       input.Address,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	order.Items = make([]domain.OrderItem, len(input.Items))
	for i, it := range input.Items {
		order.Items[i] = domain.OrderItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			SKU:       it.SKU,
			Quantity:  it.Quantity,
			Price:     it.Price,
		}
		order.Total += float64(it.Quantity) * it.Price
	}

	if err := s.repo.Create(ctx, order); err != nil {
		s.logger.Error().Err(err).Msg("failed to create order")
		return nil, err
	}

	metrics.OrdersCreatedTotal.WithLabelValues(string(order.PaymentMethod)).Inc()
	s.logger.Info().Str("order_id", order.ID).Str("customer_id", order.CustomerID).Msg("order created")
	return order, nil
}

func (s *OrderService) Get(ctx context.Context, id string) (*domain.Order, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *OrderService) List(ctx context.Context) ([]domain.Order, error) {
	return s.repo.List(ctx)
}

// UpdateStatus applies a status transition, enforcing the order state machine.
func (s *OrderService) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	if !status.Known() {
		return nil, domain.ErrInvalidTransition
	}

	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !order.Status.CanTransitionTo(status) {
		return nil, domain.ErrInvalidTransition
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	order.Status = status
	order.UpdatedAt = time.Now().UTC()
	s.logger.Info().Str("order_id", id).Str("status", string(status)).Msg("order status updated")
	return order, nil
}
