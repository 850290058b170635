package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	offeringdomain "github.com/jawadsites/boostpanel/internal/offering/domain"
	offeringrepo "github.com/jawadsites/boostpanel/internal/offering/repository"
	pricetierdomain "github.com/jawadsites/boostpanel/internal/pricetier/domain"
	"github.com/jawadsites/boostpanel/internal/pricetier/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newService(t *testing.T) (pricetierdomain.Service, string) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&offeringdomain.Offering{},
		&offeringdomain.OfferingPlatform{},
		&pricetierdomain.PriceTier{},
	)
	require.NoError(t, err)

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	now := time.Now().UTC()
	offering := offeringdomain.Offering{
		ID:            node.Generate(),
		Code:          "followers",
		Name:          "Followers",
		BasePricePerK: 4.0,
		MinQuantity:   50,
		MaxQuantity:   100000,
		Active:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	require.NoError(t, db.Create(&offering).Error)

	svc := New(Params{
		DB:           db,
		Log:          zap.NewNop(),
		GenID:        node,
		Repo:         repository.Provide(),
		OfferingRepo: offeringrepo.Provide(),
	})
	return svc, offering.ID.String()
}

func TestCreateTier(t *testing.T) {
	svc, offeringID := newService(t)

	resp, err := svc.Create(context.Background(), pricetierdomain.CreateRequest{
		OfferingID:  offeringID,
		Platform:    " Instagram ",
		MinQuantity: 100,
		MaxQuantity: 999,
		PricePerK:   3.5,
	})
	require.NoError(t, err)

	assert.Equal(t, "instagram", resp.Tier.Platform)
	assert.True(t, resp.Tier.Active)
	assert.Equal(t, 0, resp.Tier.Position)
	assert.True(t, resp.Warnings.Empty())
}

func TestCreateTier_Validation(t *testing.T) {
	svc, offeringID := newService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, pricetierdomain.CreateRequest{OfferingID: "nope", Platform: "instagram", MinQuantity: 1, MaxQuantity: 2, PricePerK: 1})
	assert.ErrorIs(t, err, pricetierdomain.ErrInvalidOffering)

	_, err = svc.Create(ctx, pricetierdomain.CreateRequest{OfferingID: offeringID, Platform: " ", MinQuantity: 1, MaxQuantity: 2, PricePerK: 1})
	assert.ErrorIs(t, err, pricetierdomain.ErrInvalidPlatform)

	_, err = svc.Create(ctx, pricetierdomain.CreateRequest{OfferingID: offeringID, Platform: "instagram", MinQuantity: 0, MaxQuantity: 2, PricePerK: 1})
	assert.ErrorIs(t, err, pricetierdomain.ErrInvalidMinQty)

	_, err = svc.Create(ctx, pricetierdomain.CreateRequest{OfferingID: offeringID, Platform: "instagram", MinQuantity: 10, MaxQuantity: 2, PricePerK: 1})
	assert.ErrorIs(t, err, pricetierdomain.ErrInvalidMaxQty)

	_, err = svc.Create(ctx, pricetierdomain.CreateRequest{OfferingID: offeringID, Platform: "instagram", MinQuantity: 1, MaxQuantity: 2, PricePerK: 0})
	assert.ErrorIs(t, err, pricetierdomain.ErrInvalidPricePerK)

	_, err = svc.Create(ctx, pricetierdomain.CreateRequest{OfferingID: offeringID, Platform: "instagram", MinQuantity: 1, MaxQuantity: 2, PricePerK: 1, DiscountPct: 100})
	assert.ErrorIs(t, err, pricetierdomain.ErrInvalidDiscountPct)

	missing := snowflake.ID(123456789).String()
	_, err = svc.Create(ctx, pricetierdomain.CreateRequest{OfferingID: missing, Platform: "instagram", MinQuantity: 1, MaxQuantity: 2, PricePerK: 1})
	assert.ErrorIs(t, err, pricetierdomain.ErrInvalidOffering)
}

func TestListTiers_WarningsAreAdvisory(t *testing.T) {
	svc, offeringID := newService(t)
	ctx := context.Background()

	// Overlapping ranges save fine; the defect only shows up as a warning.
	_, err := svc.Create(ctx, pricetierdomain.CreateRequest{
		OfferingID: offeringID, Platform: "instagram",
		MinQuantity: 100, MaxQuantity: 1500, PricePerK: 3.5,
	})
	require.NoError(t, err)
	_, err = svc.Create(ctx, pricetierdomain.CreateRequest{
		OfferingID: offeringID, Platform: "instagram",
		MinQuantity: 1000, MaxQuantity: 4999, PricePerK: 3.0,
	})
	require.NoError(t, err)

	resp, err := svc.List(ctx, offeringID, "instagram")
	require.NoError(t, err)
	assert.Len(t, resp.Tiers, 2)
	assert.Len(t, resp.Warnings.Overlaps, 1)
	assert.Empty(t, resp.Warnings.Gaps)
}

func TestMutationResponsesCarryWarnings(t *testing.T) {
	svc, offeringID := newService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, pricetierdomain.CreateRequest{
		OfferingID: offeringID, Platform: "instagram",
		MinQuantity: 100, MaxQuantity: 999, PricePerK: 3.5,
	})
	require.NoError(t, err)
	assert.True(t, first.Warnings.Empty())

	// Second tier overlaps the first; the save succeeds and the response
	// tells the operator about the overlap right away.
	second, err := svc.Create(ctx, pricetierdomain.CreateRequest{
		OfferingID: offeringID, Platform: "instagram",
		MinQuantity: 500, MaxQuantity: 4999, PricePerK: 3.0,
	})
	require.NoError(t, err)
	assert.Len(t, second.Warnings.Overlaps, 1)

	// Moving the second tier past the first clears the overlap but opens
	// a gap, which the update response reports.
	newMin := int64(2000)
	updated, err := svc.Update(ctx, second.Tier.ID, pricetierdomain.UpdateRequest{MinQuantity: &newMin})
	require.NoError(t, err)
	assert.Empty(t, updated.Warnings.Overlaps)
	assert.Len(t, updated.Warnings.Gaps, 1)
}

func TestUpdateAndDeleteTier(t *testing.T) {
	svc, offeringID := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, pricetierdomain.CreateRequest{
		OfferingID: offeringID, Platform: "instagram",
		MinQuantity: 100, MaxQuantity: 999, PricePerK: 3.5,
	})
	require.NoError(t, err)

	price := 2.9
	inactive := false
	updated, err := svc.Update(ctx, created.Tier.ID, pricetierdomain.UpdateRequest{
		PricePerK: &price,
		Active:    &inactive,
	})
	require.NoError(t, err)
	assert.InDelta(t, 2.9, updated.Tier.PricePerK, 1e-9)
	assert.False(t, updated.Tier.Active)

	require.NoError(t, svc.Delete(ctx, created.Tier.ID))

	_, err = svc.Get(ctx, created.Tier.ID)
	assert.ErrorIs(t, err, pricetierdomain.ErrNotFound)

	err = svc.Delete(ctx, created.Tier.ID)
	assert.ErrorIs(t, err, pricetierdomain.ErrNotFound)
}
