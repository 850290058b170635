package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	CountByStatus(ctx context.Context, db *gorm.DB, since time.Time) ([]StatusCount, error)
	RevenueByCurrency(ctx context.Context, db *gorm.DB, since time.Time) ([]CurrencyRevenue, error)
	TopOfferings(ctx context.Context, db *gorm.DB, since time.Time, limit int) ([]OfferingCount, error)
	CountPerDay(ctx context.Context, db *gorm.DB, since time.Time) ([]DailyCount, error)
}
