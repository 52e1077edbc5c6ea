package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStats summarises one business's orders.
type OrderStats struct {
	TotalOrders   int64           `json:"totalOrders"`
	TodayOrders   int64           `json:"todayOrders"`
	PendingOrders int64           `json:"pendingOrders"`
	TodayRevenue  decimal.Decimal `json:"todayRevenue"`
}

// PlatformStats aggregates across every tenant.
type PlatformStats struct {
	TotalBusinesses int64           `json:"totalBusinesses"`
	TotalOrders     int64           `json:"totalOrders"`
	TotalRevenue    decimal.Decimal `json:"totalRevenue"`
	TodayOrders     int64           `json:"todayOrders"`
}

// BusinessSummary is a business row with its non-cancelled order totals.
type BusinessSummary struct {
	Business
	OrderCount int64           `json:"order_count"`
	Revenue    decimal.Decimal `json:"revenue"`
	OwnerEmail string          `json:"owner_email"`
}

// DayBounds returns [start, end) of the UTC day containing t.
func DayBounds(t time.Time) (time.Time, time.Time) {
	t = t.UTC()
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.Add(24 * time.Hour)
}
