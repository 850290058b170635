package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Offering is one sellable engagement unit (followers, likes, views, ...).
// BasePricePerK is the reference-currency (USD) price per 1000 units.
type Offering struct {
	ID            snowflake.ID      `json:"id" gorm:"primaryKey"`
	Code          string            `json:"code" gorm:"type:text;not null;uniqueIndex"`
	Name          string            `json:"name" gorm:"type:text;not null"`
	Description   string            `json:"description,omitempty" gorm:"type:text"`
	BasePricePerK float64           `json:"base_price_per_k" gorm:"type:numeric;not null"`
	MinQuantity   int64             `json:"min_quantity" gorm:"not null;default:50"`
	MaxQuantity   int64             `json:"max_quantity" gorm:"not null;default:1000000"`
	Active        bool              `json:"active" gorm:"not null;default:true"`
	Metadata      datatypes.JSONMap `json:"metadata,omitempty" gorm:"type:jsonb"`
	CreatedAt     time.Time         `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt     time.Time         `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Offering) TableName() string { return "offerings" }

// OfferingPlatform binds an offering to a social platform. Factor scales the
// base price; FlatPricePerK, when set, takes precedence over the factor.
type OfferingPlatform struct {
	ID            snowflake.ID `json:"id" gorm:"primaryKey"`
	OfferingID    snowflake.ID `json:"offering_id" gorm:"column:offering_id;not null;uniqueIndex:idx_offering_platform"`
	Platform      string       `json:"platform" gorm:"type:text;not null;uniqueIndex:idx_offering_platform"`
	Factor        float64      `json:"factor" gorm:"type:numeric;not null;default:1"`
	FlatPricePerK *float64     `json:"flat_price_per_k,omitempty" gorm:"type:numeric"`
	CreatedAt     time.Time    `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt     time.Time    `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (OfferingPlatform) TableName() string { return "offering_platforms" }
