package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, tier *PriceTier) error
	Update(ctx context.Context, db *gorm.DB, tier *PriceTier) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*PriceTier, error)
	ListByOffering(ctx context.Context, db *gorm.DB, offeringID snowflake.ID) ([]PriceTier, error)
	ListByOfferingPlatform(ctx context.Context, db *gorm.DB, offeringID snowflake.ID, platform string) ([]PriceTier, error)
}
