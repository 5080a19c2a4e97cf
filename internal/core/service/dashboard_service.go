package service

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"

	"github.com/aslamtailor/storefront-api/internal/core/domain"
	"github.com/aslamtailor/storefront-api/internal/core/ports"
	"github.com/aslamtailor/storefront-api/internal/metrics"
)

const reportCacheKey = "dashboard_report"

// DashboardService builds the admin dashboard report from the persisted
// lists. The computed report is memoised for a short TTL so a dashboard
// polling several widgets does not recompute on every request.
type DashboardService struct {
	orders    ports.OrderRepository
	products  ports.ProductRepository
	customers ports.CustomerRepository
	cache     *gocache.Cache
	logger    zerolog.Logger
	now       func() time.Time
}

func NewDashboardService(
	orders ports.OrderRepository,
	products ports.ProductRepository,
	customers ports.CustomerRepository,
	cacheTTL time.Duration,
	logger zerolog.Logger,
) *DashboardService {
	if cacheTTL <= 0 {
		cacheTTL = 30 * time.Second
	}
	return &DashboardService{
		orders:    orders,
		products:  products,
		customers: customers,
		cache:     gocache.New(cacheTTL, 2*cacheTTL),
		logger:    logger,
		now:       time.Now,
	}
}

// WithClock overrides the reference-instant source. Intended for tests.
func (s *DashboardService) WithClock(now func() time.Time) *DashboardService {
	s.now = now
	return s
}

// Report fetches orders, products, and customers and folds them into the
// dashboard report. A failed fetch degrades that list to empty rather than
// failing the whole dashboard; the fold itself has no error mode.
func (s *DashboardService) Report(ctx context.Context) (*ports.DashboardReport, error) {
	if cached, ok := s.cache.Get(reportCacheKey); ok {
		return cached.(*ports.DashboardReport), nil
	}

	orders, err := s.orders.List(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("dashboard: order fetch failed, degrading to empty")
		orders = []domain.Order{}
	}
	products, err := s.products.List(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("dashboard: product fetch failed, degrading to empty")
		products = []domain.Product{}
	}
	customers, err := s.customers.List(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("dashboard: customer fetch failed, degrading to empty")
		customers = []domain.Customer{}
	}

	started := time.Now()
	report := BuildReport(orders, products, customers, s.now())
	metrics.DashboardReportBuilds.Inc()
	metrics.DashboardReportDuration.Observe(time.Since(started).Seconds())

	s.cache.SetDefault(reportCacheKey, report)
	return report, nil
}
