package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/jawadsites/boostpanel/internal/config"
	currencydomain "github.com/jawadsites/boostpanel/internal/currency/domain"
	currencyrepo "github.com/jawadsites/boostpanel/internal/currency/repository"
	offeringdomain "github.com/jawadsites/boostpanel/internal/offering/domain"
	offeringrepo "github.com/jawadsites/boostpanel/internal/offering/repository"
	tierdomain "github.com/jawadsites/boostpanel/internal/pricetier/domain"
	tierrepo "github.com/jawadsites/boostpanel/internal/pricetier/repository"
	pricingdomain "github.com/jawadsites/boostpanel/internal/pricing/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func flat(v float64) *float64 { return &v }

type fixture struct {
	svc        pricingdomain.Service
	db         *gorm.DB
	node       *snowflake.Node
	offeringID snowflake.ID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&offeringdomain.Offering{},
		&offeringdomain.OfferingPlatform{},
		&tierdomain.PriceTier{},
		&currencydomain.CurrencyRate{},
	)
	require.NoError(t, err)

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	holder, err := config.NewPricingConfigHolder()
	require.NoError(t, err)

	svc := New(Params{
		DB:          db,
		Log:         zap.NewNop(),
		Offerings:   offeringrepo.Provide(),
		Tiers:       tierrepo.Provide(),
		Currencies:  currencyrepo.Provide(),
		PricingConf: holder,
	})

	f := &fixture{svc: svc, db: db, node: node}
	f.seed(t)
	return f
}

func (f *fixture) seed(t *testing.T) {
	t.Helper()
	now := time.Now().UTC()

	offering := offeringdomain.Offering{
		ID:            f.node.Generate(),
		Code:          "followers",
		Name:          "Followers",
		BasePricePerK: 4.0,
		MinQuantity:   50,
		MaxQuantity:   100000,
		Active:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	require.NoError(t, f.db.Create(&offering).Error)
	f.offeringID = offering.ID

	platforms := []offeringdomain.OfferingPlatform{
		{ID: f.node.Generate(), OfferingID: offering.ID, Platform: "instagram", Factor: 1.0, CreatedAt: now, UpdatedAt: now},
		{ID: f.node.Generate(), OfferingID: offering.ID, Platform: "tiktok", Factor: 0.9, CreatedAt: now, UpdatedAt: now},
		{ID: f.node.Generate(), OfferingID: offering.ID, Platform: "youtube", Factor: 1.5, FlatPricePerK: flat(6.0), CreatedAt: now, UpdatedAt: now},
	}
	require.NoError(t, f.db.Create(&platforms).Error)

	tiers := []tierdomain.PriceTier{
		{ID: f.node.Generate(), OfferingID: offering.ID, Platform: "instagram", MinQuantity: 100, MaxQuantity: 999, PricePerK: 3.5, Active: true, Position: 0, CreatedAt: now, UpdatedAt: now},
		{ID: f.node.Generate(), OfferingID: offering.ID, Platform: "instagram", MinQuantity: 1000, MaxQuantity: 4999, PricePerK: 3.0, DiscountPct: 25, Active: true, Position: 1, CreatedAt: now, UpdatedAt: now},
	}
	require.NoError(t, f.db.Create(&tiers).Error)

	currencies := []currencydomain.CurrencyRate{
		{ID: f.node.Generate(), Code: "USD", Rate: 1.0, Symbol: "$", Active: true, CreatedAt: now, UpdatedAt: now},
		{ID: f.node.Generate(), Code: "SAR", Rate: 3.75, Symbol: "SAR", Active: true, CreatedAt: now, UpdatedAt: now},
	}
	require.NoError(t, f.db.Create(&currencies).Error)
}

func TestQuote_TierPricing(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.Quote(context.Background(), pricingdomain.QuoteRequest{
		Offering: "followers",
		Platform: "instagram",
		Quantity: 500,
	})
	require.NoError(t, err)

	assert.Equal(t, pricingdomain.SourceTier, resp.Source)
	assert.Equal(t, "USD", resp.Currency)
	assert.Equal(t, "$", resp.Symbol)
	assert.NotNil(t, resp.Tier)
	assert.InDelta(t, 1.75, resp.Amount, 1e-9)
}

func TestQuote_ByOfferingID(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.Quote(context.Background(), pricingdomain.QuoteRequest{
		Offering: f.offeringID.String(),
		Platform: "instagram",
		Quantity: 500,
	})
	require.NoError(t, err)
	assert.Equal(t, "followers", resp.OfferingCode)
}

func TestQuote_FlatPlatformPrice(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.Quote(context.Background(), pricingdomain.QuoteRequest{
		Offering: "followers",
		Platform: "youtube",
		Quantity: 2000,
	})
	require.NoError(t, err)

	assert.Equal(t, pricingdomain.SourcePlatformPrice, resp.Source)
	assert.InDelta(t, 12.0, resp.Amount, 1e-9)
}

func TestQuote_BaseWithVolumeDiscount(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.Quote(context.Background(), pricingdomain.QuoteRequest{
		Offering: "followers",
		Platform: "tiktok",
		Quantity: 5000,
	})
	require.NoError(t, err)

	assert.Equal(t, pricingdomain.SourceBase, resp.Source)
	assert.InDelta(t, 0.9, resp.PlatformFactor, 1e-9)
	assert.InDelta(t, 0.8, resp.VolumeFactor, 1e-9)
	assert.InDelta(t, 14.4, resp.Amount, 1e-9)
}

func TestQuote_CurrencyConversion(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.Quote(context.Background(), pricingdomain.QuoteRequest{
		Offering: "followers",
		Platform: "instagram",
		Quantity: 500,
		Currency: "sar",
	})
	require.NoError(t, err)

	assert.Equal(t, "SAR", resp.Currency)
	assert.InDelta(t, 3.75, resp.Rate, 1e-9)
	assert.InDelta(t, 1.75, resp.ReferenceAmount, 1e-9)
	assert.InDelta(t, 6.56, resp.Amount, 1e-9)
}

func TestQuote_UnknownPlatformFallsBack(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.Quote(context.Background(), pricingdomain.QuoteRequest{
		Offering: "followers",
		Platform: "snapchat",
		Quantity: 500,
	})
	require.NoError(t, err)

	assert.Equal(t, "instagram", resp.Platform)
	assert.Equal(t, pricingdomain.SourceTier, resp.Source)
}

func TestQuote_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Quote(ctx, pricingdomain.QuoteRequest{Offering: "followers", Platform: "", Quantity: 100})
	assert.ErrorIs(t, err, pricingdomain.ErrInvalidPlatform)

	_, err = f.svc.Quote(ctx, pricingdomain.QuoteRequest{Offering: "followers", Platform: "instagram", Quantity: 0})
	assert.ErrorIs(t, err, pricingdomain.ErrInvalidQuantity)

	_, err = f.svc.Quote(ctx, pricingdomain.QuoteRequest{Offering: "followers", Platform: "instagram", Quantity: 10})
	assert.ErrorIs(t, err, pricingdomain.ErrInvalidQuantity)

	_, err = f.svc.Quote(ctx, pricingdomain.QuoteRequest{Offering: "followers", Platform: "instagram", Quantity: 200000})
	assert.ErrorIs(t, err, pricingdomain.ErrInvalidQuantity)

	_, err = f.svc.Quote(ctx, pricingdomain.QuoteRequest{Offering: "missing", Platform: "instagram", Quantity: 100})
	assert.ErrorIs(t, err, pricingdomain.ErrOfferingNotFound)

	_, err = f.svc.Quote(ctx, pricingdomain.QuoteRequest{Offering: "followers", Platform: "instagram", Quantity: 100, Currency: "EUR"})
	assert.ErrorIs(t, err, pricingdomain.ErrCurrencyNotFound)
}

func TestQuote_InactiveOffering(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.db.Model(&offeringdomain.Offering{}).
		Where("id = ?", f.offeringID).
		Update("active", false).Error)

	_, err := f.svc.Quote(context.Background(), pricingdomain.QuoteRequest{
		Offering: "followers",
		Platform: "instagram",
		Quantity: 500,
	})
	assert.ErrorIs(t, err, pricingdomain.ErrOfferingInactive)
}
