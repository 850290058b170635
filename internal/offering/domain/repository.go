package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, offering *Offering) error
	Update(ctx context.Context, db *gorm.DB, offering *Offering) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Offering, error)
	FindByCode(ctx context.Context, db *gorm.DB, code string) (*Offering, error)
	List(ctx context.Context, db *gorm.DB) ([]Offering, error)

	ListPlatforms(ctx context.Context, db *gorm.DB, offeringID snowflake.ID) ([]OfferingPlatform, error)
	ReplacePlatforms(ctx context.Context, db *gorm.DB, offeringID snowflake.ID, platforms []OfferingPlatform) error
}
