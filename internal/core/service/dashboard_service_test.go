package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/aslamtailor/storefront-api/internal/core/domain"
)

type stubProductRepo struct {
	products []domain.Product
	err      error
}

func (r *stubProductRepo) Create(_ context.Context, p *domain.Product) error {
	r.products = append(r.products, *p)
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id string) (*domain.Product, error) {
	for _, p := range r.products {
		if p.ID == id {
			clone := p
			return &clone, nil
		}
	}
	return nil, domain.ErrProductNotFound
}

func (r *stubProductRepo) List(_ context.Context) ([]domain.Product, error) {
	return r.products, r.err
}

type stubCustomerRepo struct {
	customers []domain.Customer
	err       error
}

func (r *stubCustomerRepo) Create(_ context.Context, c *domain.Customer) error {
	r.customers = append(r.customers, *c)
	return nil
}

func (r *stubCustomerRepo) FindByID(_ context.Context, id string) (*domain.Customer, error) {
	for _, c := range r.customers {
		if c.ID == id {
			clone := c
			return &clone, nil
		}
	}
	return nil, domain.ErrCustomerNotFound
}

func (r *stubCustomerRepo) List(_ context.Context) ([]domain.Customer, error) {
	return r.customers, r.err
}

type listErrOrderRepo struct {
	*stubOrderRepo
	listErr error
}

func (r *listErrOrderRepo) List(ctx context.Context) ([]domain.Order, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	return r.stubOrderRepo.List(ctx)
}

func TestDashboardService_Report(t *testing.T) {
	orders := newStubOrderRepo()
	orders.byID["o1"] = &domain.Order{
		ID: "o1", CustomerID: "c1", Total: 750, Status: domain.OrderPending, CreatedAt: refNow,
		Items: []domain.OrderItem{{ProductID: "p1", Quantity: 3, Price: 250}},
	}
	products := &stubProductRepo{products: []domain.Product{{ID: "p1", Name: "Kurta"}}}
	customers := &stubCustomerRepo{customers: []domain.Customer{{ID: "c1", FirstName: "Rafi"}}}

	svc := NewDashboardService(orders, products, customers, time.Minute, zerolog.Nop()).
		WithClock(func() time.Time { return refNow })

	report, err := svc.Report(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Income.Daily != 750 {
		t.Errorf("income.daily: expected 750, got %v", report.Income.Daily)
	}
	if len(report.TopProducts) != 1 || report.TopProducts[0].Name != "Kurta" {
		t.Errorf("unexpected top products: %+v", report.TopProducts)
	}
}

func TestDashboardService_Report_Cached(t *testing.T) {
	orders := newStubOrderRepo()
	products := &stubProductRepo{}
	customers := &stubCustomerRepo{}

	svc := NewDashboardService(orders, products, customers, time.Minute, zerolog.Nop()).
		WithClock(func() time.Time { return refNow })

	first, err := svc.Report(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A later write is invisible until the cache TTL lapses.
	orders.byID["o1"] = &domain.Order{ID: "o1", CustomerID: "c1", Total: 100, Status: domain.OrderPending, CreatedAt: refNow}

	second, err := svc.Report(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second != first {
		t.Error("expected the cached report instance within the TTL")
	}
}

func TestDashboardService_Report_DegradesOnFetchFailure(t *testing.T) {
	orders := &listErrOrderRepo{stubOrderRepo: newStubOrderRepo(), listErr: errors.New("mongo down")}
	products := &stubProductRepo{err: errors.New("mongo down")}
	customers := &stubCustomerRepo{err: errors.New("mongo down")}

	svc := NewDashboardService(orders, products, customers, time.Minute, zerolog.Nop()).
		WithClock(func() time.Time { return refNow })

	report, err := svc.Report(context.Background())
	if err != nil {
		t.Fatalf("fetch failure must degrade, not fail: %v", err)
	}
	if report.Income.Daily != 0 || len(report.TopProducts) != 0 {
		t.Errorf("expected zeroed report, got %+v", report)
	}
}
