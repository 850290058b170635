package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Save(ctx context.Context, db *gorm.DB, rate *CurrencyRate) error
	FindByCode(ctx context.Context, db *gorm.DB, code string) (*CurrencyRate, error)
	List(ctx context.Context, db *gorm.DB) ([]CurrencyRate, error)
}
