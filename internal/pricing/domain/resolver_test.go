package domain

import (
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/assert"
)

func flat(v float64) *float64 { return &v }

func testOffering() OfferingView {
	return OfferingView{
		ID:            snowflake.ID(1),
		Code:          "followers",
		Name:          "Followers",
		BasePricePerK: 4.0,
		MinQuantity:   50,
		MaxQuantity:   1000000,
		Active:        true,
		Platforms: map[string]Platform{
			"instagram": {Code: "instagram", Factor: 1.0},
			"tiktok":    {Code: "tiktok", Factor: 0.9},
			"youtube":   {Code: "youtube", Factor: 1.5, FlatPricePerK: flat(6.0)},
		},
		Tiers: map[string][]Tier{
			"instagram": {
				{ID: 10, MinQuantity: 100, MaxQuantity: 999, PricePerK: 3.5, Active: true},
				{ID: 11, MinQuantity: 1000, MaxQuantity: 4999, PricePerK: 3.0, DiscountPct: 25, Active: true},
				{ID: 12, MinQuantity: 5000, MaxQuantity: 50000, PricePerK: 2.5, Active: false},
			},
		},
	}
}

func TestResolve_TierMatch(t *testing.T) {
	q := Resolve(ResolveInput{
		Offering: testOffering(),
		Platform: "instagram",
		Quantity: 500,
		Rate:     1.0,
	})

	assert.Equal(t, SourceTier, q.Source)
	assert.NotNil(t, q.Tier)
	assert.Equal(t, int64(100), q.Tier.MinQuantity)
	assert.InDelta(t, 1.75, q.Amount, 1e-9)
	assert.InDelta(t, q.ReferenceAmount, q.Amount, 1e-9)
}

func TestResolve_TierFirstMatchWins(t *testing.T) {
	offering := testOffering()
	offering.Tiers["instagram"] = []Tier{
		{ID: 20, MinQuantity: 100, MaxQuantity: 2000, PricePerK: 3.2, Active: true},
		{ID: 21, MinQuantity: 500, MaxQuantity: 2000, PricePerK: 2.0, Active: true},
	}

	q := Resolve(ResolveInput{
		Offering: offering,
		Platform: "instagram",
		Quantity: 1000,
		Rate:     1.0,
	})

	assert.Equal(t, SourceTier, q.Source)
	assert.Equal(t, snowflake.ID(20), q.Tier.ID)
	assert.InDelta(t, 3.2, q.Amount, 1e-9)
}

func TestResolve_InactiveTierSkipped(t *testing.T) {
	q := Resolve(ResolveInput{
		Offering: testOffering(),
		Platform: "instagram",
		Quantity: 10000,
		Rate:     1.0,
	})

	// The only tier covering 10000 is inactive, so the base path applies
	// with the top volume discount.
	assert.Equal(t, SourceBase, q.Source)
	assert.Nil(t, q.Tier)
	assert.InDelta(t, 0.8, q.VolumeFactor, 1e-9)
	assert.InDelta(t, 4.0*10*0.8, q.Amount, 1e-9)
}

func TestResolve_PlatformFlatPrice(t *testing.T) {
	q := Resolve(ResolveInput{
		Offering: testOffering(),
		Platform: "youtube",
		Quantity: 2000,
		Rate:     1.0,
	})

	assert.Equal(t, SourcePlatformPrice, q.Source)
	// Flat per-1000 pricing ignores platform factor and volume discounts.
	assert.InDelta(t, 1.0, q.PlatformFactor, 1e-9)
	assert.InDelta(t, 1.0, q.VolumeFactor, 1e-9)
	assert.InDelta(t, 12.0, q.Amount, 1e-9)
}

func TestResolve_BasePrice(t *testing.T) {
	tests := []struct {
		name     string
		platform string
		quantity int64
		want     float64
		factor   float64
		volume   float64
	}{
		{name: "no discount", platform: "tiktok", quantity: 1000, want: 3.6, factor: 0.9, volume: 1.0},
		{name: "mid volume", platform: "tiktok", quantity: 2000, want: 4.0 * 2 * 0.9 * 0.9, factor: 0.9, volume: 0.9},
		{name: "top volume", platform: "tiktok", quantity: 5000, want: 4.0 * 5 * 0.9 * 0.8, factor: 0.9, volume: 0.8},
		{name: "below min step", platform: "tiktok", quantity: 100, want: 4.0 * 0.1 * 0.9, factor: 0.9, volume: 1.0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			q := Resolve(ResolveInput{
				Offering: testOffering(),
				Platform: tc.platform,
				Quantity: tc.quantity,
				Rate:     1.0,
			})

			assert.Equal(t, SourceBase, q.Source)
			assert.InDelta(t, tc.factor, q.PlatformFactor, 1e-9)
			assert.InDelta(t, tc.volume, q.VolumeFactor, 1e-9)
			assert.InDelta(t, tc.want, q.Amount, 1e-9)
		})
	}
}

func TestResolve_UnknownPlatformFallsBack(t *testing.T) {
	q := Resolve(ResolveInput{
		Offering: testOffering(),
		Platform: "snapchat",
		Quantity: 500,
		Rate:     1.0,
	})

	// Falls back to the first configured platform in code order.
	assert.Equal(t, "instagram", q.Platform)
	assert.Equal(t, SourceTier, q.Source)
	assert.InDelta(t, 1.75, q.Amount, 1e-9)
}

func TestResolve_CurrencyRate(t *testing.T) {
	q := Resolve(ResolveInput{
		Offering: testOffering(),
		Platform: "instagram",
		Quantity: 500,
		Rate:     3.75,
	})

	assert.InDelta(t, 1.75, q.ReferenceAmount, 1e-9)
	assert.InDelta(t, 1.75*3.75, q.Amount, 1e-9)
}

func TestResolve_CustomVolumeSteps(t *testing.T) {
	q := Resolve(ResolveInput{
		Offering: testOffering(),
		Platform: "tiktok",
		Quantity: 1500,
		Rate:     1.0,
		VolumeSteps: []VolumeStep{
			{MinQuantity: 1000, Factor: 0.5},
		},
	})

	assert.Equal(t, SourceBase, q.Source)
	assert.InDelta(t, 0.5, q.VolumeFactor, 1e-9)
	assert.InDelta(t, 4.0*1.5*0.9*0.5, q.Amount, 1e-9)
}

func TestResolve_NoPlatformsDegradesToBase(t *testing.T) {
	offering := testOffering()
	offering.Platforms = nil
	offering.Tiers = nil

	q := Resolve(ResolveInput{
		Offering: offering,
		Platform: "anything",
		Quantity: 1000,
		Rate:     1.0,
	})

	assert.Equal(t, SourceBase, q.Source)
	assert.InDelta(t, 1.0, q.PlatformFactor, 1e-9)
	assert.InDelta(t, 4.0, q.Amount, 1e-9)
}

func TestResolve_DeterministicAndPure(t *testing.T) {
	in := ResolveInput{
		Offering: testOffering(),
		Platform: "instagram",
		Quantity: 500,
		Rate:     3.75,
	}

	first := Resolve(in)
	second := Resolve(in)
	assert.Equal(t, first, second)

	// The caller-supplied view, maps included, must come back untouched.
	assert.Equal(t, testOffering(), in.Offering)

	// Mutating the returned tier copy must not leak into the schedule.
	first.Tier.PricePerK = 99
	assert.InDelta(t, 3.5, in.Offering.Tiers["instagram"][0].PricePerK, 1e-9)
}
