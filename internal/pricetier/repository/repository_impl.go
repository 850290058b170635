package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	pricetierdomain "github.com/jawadsites/boostpanel/internal/pricetier/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() pricetierdomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, tier *pricetierdomain.PriceTier) error {
	return db.WithContext(ctx).Create(tier).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, tier *pricetierdomain.PriceTier) error {
	return db.WithContext(ctx).Save(tier).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&pricetierdomain.PriceTier{}).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*pricetierdomain.PriceTier, error) {
	var tier pricetierdomain.PriceTier
	err := db.WithContext(ctx).
		Where("id = ?", id).
		First(&tier).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tier, nil
}

func (r *repo) ListByOffering(ctx context.Context, db *gorm.DB, offeringID snowflake.ID) ([]pricetierdomain.PriceTier, error) {
	var items []pricetierdomain.PriceTier
	err := db.WithContext(ctx).
		Where("offering_id = ?", offeringID).
		Order("position ASC, created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) ListByOfferingPlatform(ctx context.Context, db *gorm.DB, offeringID snowflake.ID, platform string) ([]pricetierdomain.PriceTier, error) {
	var items []pricetierdomain.PriceTier
	err := db.WithContext(ctx).
		Where("offering_id = ? AND platform = ?", offeringID, platform).
		Order("position ASC, created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
