package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/aslamtailor/storefront-api/internal/core/domain"
	"github.com/aslamtailor/storefront-api/internal/core/ports"
	"github.com/aslamtailor/storefront-api/internal/metrics"
)

// Relay operation labels used on metrics.
const (
	opCreateOrder    = "create_order"
	opServiceability = "serviceability"
)

// ShippingService orchestrates the courier relay: dedup on create, token
// handling delegated to the gateway, provider responses passed through.
type ShippingService struct {
	gateway ports.ShippingGateway
	dedup   ports.RelayDeduper
	logger  zerolog.Logger
}

func NewShippingService(gateway ports.ShippingGateway, dedup ports.RelayDeduper, logger zerolog.Logger) *ShippingService {
	return &ShippingService{gateway: gateway, dedup: dedup, logger: logger}
}

// Login forces a token check against the provider and returns the active
// bearer token. Refresh metrics are recorded by the gateway, which knows
// whether a credential exchange actually took place.
func (s *ShippingService) Login(ctx context.Context) (string, error) {
	return s.gateway.EnsureToken(ctx)
}

// RelayOrder forwards a storefront order to the courier. A double-submitted
// order id is rejected before reaching the provider.
func (s *ShippingService) RelayOrder(ctx context.Context, input ports.ShippingOrderInput) (json.RawMessage, error) {
	if s.dedup != nil && input.OrderID != "" {
		dup, err := s.dedup.IsDuplicate(ctx, input.OrderID)
		if err != nil {
			// Dedup store unavailable: relay anyway rather than blocking checkout.
			s.logger.Warn().Err(err).Str("order_id", input.OrderID).Msg("relay dedup check failed")
		} else if dup {
			metrics.ShippingRelayTotal.WithLabelValues(opCreateOrder, "duplicate").Inc()
			return nil, domain.ErrDuplicateRelay
		}
	}

	started := time.Now()
	raw, err := s.gateway.CreateOrder(ctx, input)
	metrics.ShippingRelayDuration.WithLabelValues(opCreateOrder).Observe(time.Since(started).Seconds())
	if err != nil {
		metrics.ShippingRelayTotal.WithLabelValues(opCreateOrder, outcomeLabel(err)).Inc()
		s.logger.Error().Err(err).Str("order_id", input.OrderID).Msg("courier order relay failed")
		return nil, err
	}
	metrics.ShippingRelayTotal.WithLabelValues(opCreateOrder, "ok").Inc()

	if s.dedup != nil && input.OrderID != "" {
		if err := s.dedup.Mark(ctx, input.OrderID); err != nil {
			s.logger.Warn().Err(err).Str("order_id", input.OrderID).Msg("relay dedup mark failed")
		}
	}

	s.logger.Info().Str("order_id", input.OrderID).Msg("courier order relayed")
	return raw, nil
}

// CheckCourier forwards a serviceability check to the courier.
func (s *ShippingService) CheckCourier(ctx context.Context, input ports.ServiceabilityInput) (json.RawMessage, error) {
	started := time.Now()
	raw, err := s.gateway.CheckServiceability(ctx, input)
	metrics.ShippingRelayDuration.WithLabelValues(opServiceability).Observe(time.Since(started).Seconds())
	if err != nil {
		metrics.ShippingRelayTotal.WithLabelValues(opServiceability, outcomeLabel(err)).Inc()
		s.logger.Error().Err(err).Msg("courier serviceability check failed")
		return nil, err
	}
	metrics.ShippingRelayTotal.WithLabelValues(opServiceability, "ok").Inc()
	return raw, nil
}

func outcomeLabel(err error) string {
	if errors.Is(err, domain.ErrShippingAuth) {
		return "auth_error"
	}
	return "upstream_error"
}
