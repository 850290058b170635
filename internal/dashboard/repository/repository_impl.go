package repository

import (
	"context"
	"time"

	dashboarddomain "github.com/jawadsites/boostpanel/internal/dashboard/domain"
	orderdomain "github.com/jawadsites/boostpanel/internal/order/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() dashboarddomain.Repository {
	return &repo{}
}

func (r *repo) CountByStatus(ctx context.Context, db *gorm.DB, since time.Time) ([]dashboarddomain.StatusCount, error) {
	var rows []dashboarddomain.StatusCount
	err := db.WithContext(ctx).
		Model(&orderdomain.Order{}).
		Select("status, COUNT(*) AS count").
		Where("created_at >= ?", since).
		Group("status").
		Order("status ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repo) RevenueByCurrency(ctx context.Context, db *gorm.DB, since time.Time) ([]dashboarddomain.CurrencyRevenue, error) {
	var rows []dashboarddomain.CurrencyRevenue
	err := db.WithContext(ctx).
		Model(&orderdomain.Order{}).
		Select("currency, COUNT(*) AS orders, SUM(amount) AS amount").
		Where("created_at >= ?", since).
		Where("status <> ?", orderdomain.StatusCancelled).
		Group("currency").
		Order("currency ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repo) TopOfferings(ctx context.Context, db *gorm.DB, since time.Time, limit int) ([]dashboarddomain.OfferingCount, error) {
	var rows []dashboarddomain.OfferingCount
	err := db.WithContext(ctx).
		Model(&orderdomain.Order{}).
		Select("offering_code, COUNT(*) AS orders").
		Where("created_at >= ?", since).
		Group("offering_code").
		Order("orders DESC, offering_code ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// dailyRow keeps the day as text; DATE() comes back typed differently per
// dialect and a string scan works on all of them.
type dailyRow struct {
	Day    string
	Orders int64
}

func (r *repo) CountPerDay(ctx context.Context, db *gorm.DB, since time.Time) ([]dashboarddomain.DailyCount, error) {
	var rows []dailyRow
	err := db.WithContext(ctx).
		Model(&orderdomain.Order{}).
		Select("DATE(created_at) AS day, COUNT(*) AS orders").
		Where("created_at >= ?", since).
		Group("DATE(created_at)").
		Order("day ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]dashboarddomain.DailyCount, 0, len(rows))
	for _, row := range rows {
		day, err := parseDay(row.Day)
		if err != nil {
			return nil, err
		}
		out = append(out, dashboarddomain.DailyCount{Day: day, Orders: row.Orders})
	}
	return out, nil
}

func parseDay(value string) (time.Time, error) {
	if len(value) > 10 {
		value = value[:10]
	}
	return time.Parse("2006-01-02", value)
}
