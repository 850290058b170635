package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	offeringdomain "github.com/jawadsites/boostpanel/internal/offering/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() offeringdomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, offering *offeringdomain.Offering) error {
	return db.WithContext(ctx).Create(offering).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, offering *offeringdomain.Offering) error {
	return db.WithContext(ctx).Save(offering).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*offeringdomain.Offering, error) {
	var offering offeringdomain.Offering
	err := db.WithContext(ctx).
		Where("id = ?", id).
		First(&offering).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &offering, nil
}

func (r *repo) FindByCode(ctx context.Context, db *gorm.DB, code string) (*offeringdomain.Offering, error) {
	var offering offeringdomain.Offering
	err := db.WithContext(ctx).
		Where("code = ?", code).
		First(&offering).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &offering, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB) ([]offeringdomain.Offering, error) {
	var items []offeringdomain.Offering
	err := db.WithContext(ctx).
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) ListPlatforms(ctx context.Context, db *gorm.DB, offeringID snowflake.ID) ([]offeringdomain.OfferingPlatform, error) {
	var items []offeringdomain.OfferingPlatform
	err := db.WithContext(ctx).
		Where("offering_id = ?", offeringID).
		Order("platform ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) ReplacePlatforms(ctx context.Context, db *gorm.DB, offeringID snowflake.ID, platforms []offeringdomain.OfferingPlatform) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("offering_id = ?", offeringID).
			Delete(&offeringdomain.OfferingPlatform{}).Error; err != nil {
			return err
		}
		if len(platforms) == 0 {
			return nil
		}
		return tx.Create(&platforms).Error
	})
}
