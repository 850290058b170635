// Package domain contains the pure price resolution core.
package domain

import "github.com/bwmarrin/snowflake"

// PriceSource identifies which rule produced a quote.
type PriceSource string

const (
	SourceTier          PriceSource = "tier"
	SourcePlatformPrice PriceSource = "platform_price"
	SourceBase          PriceSource = "base"
)

// Platform describes how one social platform prices against an offering.
// FlatPricePerK, when set, replaces the base-price computation entirely.
type Platform struct {
	Code          string
	Factor        float64
	FlatPricePerK *float64
}

// Tier is one quantity range of a custom pricing schedule.
// PricePerK is the reference-currency price per 1000 units inside the range.
type Tier struct {
	ID          snowflake.ID
	MinQuantity int64
	MaxQuantity int64
	PricePerK   float64
	DiscountPct float64
	Active      bool
}

// VolumeStep applies Factor once quantity reaches MinQuantity. Steps are
// expected sorted by MinQuantity descending; the first match wins.
type VolumeStep struct {
	MinQuantity int64
	Factor      float64
}

// OfferingView is the immutable catalog snapshot the resolver works on.
type OfferingView struct {
	ID            snowflake.ID
	Code          string
	Name          string
	BasePricePerK float64
	MinQuantity   int64
	MaxQuantity   int64
	Active        bool
	Platforms     map[string]Platform
	Tiers         map[string][]Tier
}

// ResolveInput is one pricing evaluation over caller-supplied data.
type ResolveInput struct {
	Offering OfferingView
	Platform string
	Quantity int64

	// Rate is units of target currency per 1 reference-currency unit (USD).
	Rate float64

	// VolumeSteps override the built-in volume discount schedule when non-nil.
	VolumeSteps []VolumeStep
}

// Quote is the resolved price plus the breakdown of how it was produced.
type Quote struct {
	Source   PriceSource
	Platform string

	Tier           *Tier
	PlatformFactor float64
	VolumeFactor   float64

	// ReferenceAmount is the price before currency conversion.
	ReferenceAmount float64
	Amount          float64
}
