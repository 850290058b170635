package repository

import (
	"context"
	"errors"

	currencydomain "github.com/jawadsites/boostpanel/internal/currency/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() currencydomain.Repository {
	return &repo{}
}

func (r *repo) Save(ctx context.Context, db *gorm.DB, rate *currencydomain.CurrencyRate) error {
	return db.WithContext(ctx).Save(rate).Error
}

func (r *repo) FindByCode(ctx context.Context, db *gorm.DB, code string) (*currencydomain.CurrencyRate, error) {
	var rate currencydomain.CurrencyRate
	err := db.WithContext(ctx).
		Where("code = ?", code).
		First(&rate).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rate, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB) ([]currencydomain.CurrencyRate, error) {
	var items []currencydomain.CurrencyRate
	err := db.WithContext(ctx).
		Order("code ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
