package service

import (
	"sort"
	"time"

	"github.com/aslamtailor/storefront-api/internal/core/domain"
	"github.com/aslamtailor/storefront-api/internal/core/ports"
)

const topN = 5

// Placeholders used when a line item or order references an id that no
// longer resolves against the catalog or customer list.
const (
	unknownProductName  = "Unknown product"
	unknownProductImage = "/images/placeholder.png"
	unknownCustomerName = "Unknown customer"
)

// BuildReport folds the order, product, and customer lists into the admin
// dashboard report. It is pure: one `now` snapshot drives every period
// window, identical inputs produce identical output, and empty inputs yield
// a zeroed report. Cancelled orders count toward the cancellation buckets
// instead of income, but still contribute to customer lifetime totals.
func BuildReport(orders []domain.Order, products []domain.Product, customers []domain.Customer, now time.Time) *ports.DashboardReport {
	day := periodWindow{start: startOfDay(now)}
	day.end = day.start.AddDate(0, 0, 1)
	week := periodWindow{start: startOfWeek(now)}
	week.end = week.start.AddDate(0, 0, 7)
	month := periodWindow{start: time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())}
	month.end = month.start.AddDate(0, 1, 0)
	year := periodWindow{start: time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())}
	year.end = year.start.AddDate(1, 0, 0)

	report := &ports.DashboardReport{
		Orders:    orders,
		Products:  products,
		Customers: customers,
	}

	type productAcc struct {
		quantity int
		revenue  float64
	}
	type customerAcc struct {
		spent  float64
		orders int
	}
	byProduct := make(map[string]*productAcc)
	byCustomer := make(map[string]*customerAcc)

	for _, o := range orders {
		if o.Status == domain.OrderCancelled {
			addCount(&report.Cancelled.Daily, o.CreatedAt, day)
			addCount(&report.Cancelled.Weekly, o.CreatedAt, week)
			addCount(&report.Cancelled.Monthly, o.CreatedAt, month)
			addCount(&report.Cancelled.Yearly, o.CreatedAt, year)
		} else {
			addTotal(&report.Income.Daily, o.Total, o.CreatedAt, day)
			addTotal(&report.Income.Weekly, o.Total, o.CreatedAt, week)
			addTotal(&report.Income.Monthly, o.Total, o.CreatedAt, month)
			addTotal(&report.Income.Yearly, o.Total, o.CreatedAt, year)
		}

		for _, item := range o.Items {
			acc := byProduct[item.ProductID]
			if acc == nil {
				acc = &productAcc{}
				byProduct[item.ProductID] = acc
			}
			acc.quantity += item.Quantity
			acc.revenue += float64(item.Quantity) * item.Price
		}

		// Lifetime customer totals include cancelled orders.
		acc := byCustomer[o.CustomerID]
		if acc == nil {
			acc = &customerAcc{}
			byCustomer[o.CustomerID] = acc
		}
		acc.spent += o.Total
		acc.orders++
	}

	productNames := make(map[string]domain.Product, len(products))
	for _, p := range products {
		productNames[p.ID] = p
	}
	customerNames := make(map[string]domain.Customer, len(customers))
	for _, c := range customers {
		customerNames[c.ID] = c
	}

	report.TopProducts = make([]ports.ProductSales, 0, len(byProduct))
	for id, acc := range byProduct {
		entry := ports.ProductSales{
			ProductID:    id,
			Name:         unknownProductName,
			ImageURL:     unknownProductImage,
			QuantitySold: acc.quantity,
			Revenue:      acc.revenue,
		}
		if p, ok := productNames[id]; ok {
			entry.Name = p.Name
			entry.ImageURL = p.ImageURL
		}
		report.TopProducts = append(report.TopProducts, entry)
	}
	// Tie-break on id so identical inputs always rank identically.
	sort.Slice(report.TopProducts, func(i, j int) bool {
		a, b := report.TopProducts[i], report.TopProducts[j]
		if a.QuantitySold != b.QuantitySold {
			return a.QuantitySold > b.QuantitySold
		}
		return a.ProductID < b.ProductID
	})
	if len(report.TopProducts) > topN {
		report.TopProducts = report.TopProducts[:topN]
	}

	report.TopCustomers = make([]ports.CustomerSpend, 0, len(byCustomer))
	for id, acc := range byCustomer {
		entry := ports.CustomerSpend{
			CustomerID:  id,
			Name:        unknownCustomerName,
			TotalSpent:  acc.spent,
			TotalOrders: acc.orders,
		}
		if c, ok := customerNames[id]; ok {
			entry.Name = c.DisplayName()
			entry.Email = c.Email
		}
		report.TopCustomers = append(report.TopCustomers, entry)
	}
	sort.Slice(report.TopCustomers, func(i, j int) bool {
		a, b := report.TopCustomers[i], report.TopCustomers[j]
		if a.TotalSpent != b.TotalSpent {
			return a.TotalSpent > b.TotalSpent
		}
		return a.CustomerID < b.CustomerID
	})
	if len(report.TopCustomers) > topN {
		report.TopCustomers = report.TopCustomers[:topN]
	}

	return report
}

type periodWindow struct {
	start time.Time
	end   time.Time
}

// contains reports whether t falls in [start, end).
func (w periodWindow) contains(t time.Time) bool {
	return !t.Before(w.start) && t.Before(w.end)
}

func addTotal(sum *float64, amount float64, t time.Time, w periodWindow) {
	if w.contains(t) {
		*sum += amount
	}
}

func addCount(n *int, t time.Time, w periodWindow) {
	if w.contains(t) {
		*n++
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// startOfWeek returns midnight of the Monday of the week containing t.
func startOfWeek(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	return startOfDay(t).AddDate(0, 0, -offset)
}
