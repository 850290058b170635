// Package domain exposes the aggregate views behind the admin dashboard.
package domain

import (
	"context"
	"time"
)

type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type CurrencyRevenue struct {
	Currency string  `json:"currency"`
	Orders   int64   `json:"orders"`
	Amount   float64 `json:"amount"`
}

type OfferingCount struct {
	OfferingCode string `json:"offering_code"`
	Orders       int64  `json:"orders"`
}

type DailyCount struct {
	Day    time.Time `json:"day"`
	Orders int64     `json:"orders"`
}

type Summary struct {
	TotalOrders    int64             `json:"total_orders"`
	StatusCounts   []StatusCount     `json:"status_counts"`
	RevenueByCode  []CurrencyRevenue `json:"revenue_by_currency"`
	TopOfferings   []OfferingCount   `json:"top_offerings"`
	OrdersPerDay   []DailyCount      `json:"orders_per_day"`
	WindowStartsAt time.Time         `json:"window_starts_at"`
	GeneratedAt    time.Time         `json:"generated_at"`
}

type Service interface {
	Summary(ctx context.Context, days int) (*Summary, error)
}
