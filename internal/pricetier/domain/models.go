package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// PriceTier is one quantity range of an offering's custom pricing schedule.
// PricePerK is the reference-currency price per 1000 units; DiscountPct is
// display-only, the discount is already baked into PricePerK.
type PriceTier struct {
	ID          snowflake.ID `json:"id" gorm:"primaryKey"`
	OfferingID  snowflake.ID `json:"offering_id" gorm:"column:offering_id;not null;index:idx_tier_offering_platform"`
	Platform    string       `json:"platform" gorm:"type:text;not null;index:idx_tier_offering_platform"`
	MinQuantity int64        `json:"min_quantity" gorm:"not null"`
	MaxQuantity int64        `json:"max_quantity" gorm:"not null"`
	PricePerK   float64      `json:"price_per_k" gorm:"type:numeric;not null"`
	DiscountPct float64      `json:"discount_pct" gorm:"type:numeric;not null;default:0"`
	Active      bool         `json:"active" gorm:"not null;default:true"`
	Position    int          `json:"position" gorm:"not null;default:0"`
	CreatedAt   time.Time    `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt   time.Time    `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (PriceTier) TableName() string { return "price_tiers" }
