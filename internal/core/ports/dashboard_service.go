package ports

import (
	"context"

	"github.com/aslamtailor/storefront-api/internal/core/domain"
)

// PeriodTotals holds one monetary sum per reporting window, all anchored at
// the same reference instant.
type PeriodTotals struct {
	Daily   float64 `json:"daily"`
	Weekly  float64 `json:"weekly"`
	Monthly float64 `json:"monthly"`
	Yearly  float64 `json:"yearly"`
}

// PeriodCounts holds one order count per reporting window.
type PeriodCounts struct {
	Daily   int `json:"daily"`
	Weekly  int `json:"weekly"`
	Monthly int `json:"monthly"`
	Yearly  int `json:"yearly"`
}

// ProductSales is a ranked top-seller entry.
type ProductSales struct {
	ProductID    string  `json:"product_id"`
	Name         string  `json:"name"`
	ImageURL     string  `json:"image_url"`
	QuantitySold int     `json:"quantity_sold"`
	Revenue      float64 `json:"revenue"`
}

// CustomerSpend is a ranked top-customer entry.
type CustomerSpend struct {
	CustomerID  string  `json:"customer_id"`
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	TotalSpent  float64 `json:"total_spent"`
	TotalOrders int     `json:"total_orders"`
}

// DashboardReport is the full admin dashboard payload. The input lists are
// echoed back for bulk export by the admin UI.
type DashboardReport struct {
	Income       PeriodTotals      `json:"income"`
	Cancelled    PeriodCounts      `json:"cancelled"`
	TopProducts  []ProductSales    `json:"top_products"`
	TopCustomers []CustomerSpend   `json:"top_customers"`
	Orders       []domain.Order    `json:"orders"`
	Products     []domain.Product  `json:"products"`
	Customers    []domain.Customer `json:"customers"`
}

// DashboardService produces the admin dashboard report.
type DashboardService interface {
	Report(ctx context.Context) (*DashboardReport, error)
}
