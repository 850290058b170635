// Package seed bootstraps the catalog so a fresh install can quote and take
// orders immediately.
package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	currencydomain "github.com/jawadsites/boostpanel/internal/currency/domain"
	offeringdomain "github.com/jawadsites/boostpanel/internal/offering/domain"
	"gorm.io/gorm"
)

type seedCurrency struct {
	Code   string
	Rate   float64
	Symbol string
}

type seedPlatform struct {
	Platform      string
	Factor        float64
	FlatPricePerK *float64
}

type seedOffering struct {
	Code          string
	Name          string
	Description   string
	BasePricePerK float64
	MinQuantity   int64
	MaxQuantity   int64
	Platforms     []seedPlatform
}

func flat(v float64) *float64 { return &v }

var defaultCurrencies = []seedCurrency{
	{Code: "USD", Rate: 1.0, Symbol: "$"},
	{Code: "SAR", Rate: 3.75, Symbol: "SAR"},
}

var defaultOfferings = []seedOffering{
	{
		Code:          "followers",
		Name:          "Followers",
		Description:   "Profile followers delivered gradually.",
		BasePricePerK: 4.0,
		MinQuantity:   50,
		MaxQuantity:   100000,
		Platforms: []seedPlatform{
			{Platform: "instagram", Factor: 1.0},
			{Platform: "tiktok", Factor: 0.9},
			{Platform: "youtube", Factor: 1.5},
			{Platform: "twitter", Factor: 1.2},
		},
	},
	{
		Code:          "likes",
		Name:          "Likes",
		Description:   "Post likes from real-looking accounts.",
		BasePricePerK: 1.5,
		MinQuantity:   50,
		MaxQuantity:   500000,
		Platforms: []seedPlatform{
			{Platform: "instagram", Factor: 1.0},
			{Platform: "tiktok", Factor: 0.8},
			{Platform: "facebook", Factor: 1.1},
		},
	},
	{
		Code:          "views",
		Name:          "Views",
		Description:   "Video views counted against platform metrics.",
		BasePricePerK: 0.5,
		MinQuantity:   100,
		MaxQuantity:   1000000,
		Platforms: []seedPlatform{
			{Platform: "instagram", Factor: 1.0},
			{Platform: "tiktok", FlatPricePerK: flat(0.3)},
			{Platform: "youtube", Factor: 2.0},
		},
	},
}

// EnsureDefaults seeds reference currencies and a starter catalog. Existing
// rows are left untouched so operator edits survive restarts.
func EnsureDefaults(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureCurrencies(ctx, tx, node); err != nil {
			return err
		}
		return ensureOfferings(ctx, tx, node)
	})
}

func ensureCurrencies(ctx context.Context, tx *gorm.DB, node *snowflake.Node) error {
	now := time.Now().UTC()
	for _, c := range defaultCurrencies {
		var count int64
		if err := tx.WithContext(ctx).
			Model(&currencydomain.CurrencyRate{}).
			Where("code = ?", c.Code).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		row := currencydomain.CurrencyRate{
			ID:        node.Generate(),
			Code:      c.Code,
			Rate:      c.Rate,
			Symbol:    c.Symbol,
			Active:    true,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := tx.WithContext(ctx).Create(&row).Error; err != nil {
			return err
		}
	}
	return nil
}

func ensureOfferings(ctx context.Context, tx *gorm.DB, node *snowflake.Node) error {
	now := time.Now().UTC()
	for _, o := range defaultOfferings {
		var count int64
		if err := tx.WithContext(ctx).
			Model(&offeringdomain.Offering{}).
			Where("code = ?", o.Code).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		row := offeringdomain.Offering{
			ID:            node.Generate(),
			Code:          o.Code,
			Name:          o.Name,
			Description:   o.Description,
			BasePricePerK: o.BasePricePerK,
			MinQuantity:   o.MinQuantity,
			MaxQuantity:   o.MaxQuantity,
			Active:        true,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := tx.WithContext(ctx).Create(&row).Error; err != nil {
			return err
		}

		for _, p := range o.Platforms {
			platformRow := offeringdomain.OfferingPlatform{
				ID:            node.Generate(),
				OfferingID:    row.ID,
				Platform:      p.Platform,
				Factor:        p.Factor,
				FlatPricePerK: p.FlatPricePerK,
				CreatedAt:     now,
				UpdatedAt:     now,
			}
			if platformRow.Factor == 0 {
				platformRow.Factor = 1
			}
			if err := tx.WithContext(ctx).Create(&platformRow).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
