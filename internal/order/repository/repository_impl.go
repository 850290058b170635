package repository

import (
	"context"
	"errors"

	orderdomain "github.com/jawadsites/boostpanel/internal/order/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() orderdomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, order *orderdomain.Order) error {
	return db.WithContext(ctx).Create(order).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, order *orderdomain.Order) error {
	return db.WithContext(ctx).Save(order).Error
}

func (r *repo) FindByReference(ctx context.Context, db *gorm.DB, reference string) (*orderdomain.Order, error) {
	var order orderdomain.Order
	err := db.WithContext(ctx).
		Where("reference = ?", reference).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter orderdomain.ListFilter) ([]orderdomain.Order, error) {
	q := db.WithContext(ctx).Model(&orderdomain.Order{})
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Platform != "" {
		q = q.Where("platform = ?", filter.Platform)
	}
	if filter.OfferingID != 0 {
		q = q.Where("offering_id = ?", filter.OfferingID)
	}
	if filter.AfterID != 0 {
		// ids are snowflakes, so descending id order is creation order.
		q = q.Where("id < ?", filter.AfterID)
	}

	var items []orderdomain.Order
	err := q.Order("id DESC").
		Limit(filter.Limit).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) Stream(ctx context.Context, db *gorm.DB, filter orderdomain.StreamFilter, fn func(*orderdomain.Order) error) error {
	q := db.WithContext(ctx).Model(&orderdomain.Order{})
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Platform != "" {
		q = q.Where("platform = ?", filter.Platform)
	}
	if filter.From != nil {
		q = q.Where("created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("created_at < ?", *filter.To)
	}

	rows, err := q.Order("id ASC").Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var order orderdomain.Order
		if err := db.ScanRows(rows, &order); err != nil {
			return err
		}
		if err := fn(&order); err != nil {
			return err
		}
	}
	return rows.Err()
}
