package domain

import "sort"

// DefaultVolumeSteps is the built-in volume discount schedule for the
// base-price path, ordered by threshold descending.
var DefaultVolumeSteps = []VolumeStep{
	{MinQuantity: 5000, Factor: 0.8},
	{MinQuantity: 2000, Factor: 0.9},
}

// Resolve prices one order of Quantity units against the offering snapshot.
//
// Resolution order:
//  1. first active tier of the platform's schedule covering the quantity
//  2. the platform's flat per-1000 price
//  3. base price adjusted by platform factor and volume discount
//
// Tier lookup is first-match in list order; overlapping ranges are a
// schedule-authoring concern, not resolved here. The function is pure,
// never errors, and degrades to 0 when no rule yields a price.
func Resolve(in ResolveInput) Quote {
	platform := effectivePlatform(in.Offering, in.Platform)

	quote := Quote{
		Platform:       platform,
		PlatformFactor: 1.0,
		VolumeFactor:   1.0,
	}

	if tier := matchTier(in.Offering.Tiers[platform], in.Quantity); tier != nil {
		quote.Source = SourceTier
		quote.Tier = tier
		quote.ReferenceAmount = tier.PricePerK / 1000 * float64(in.Quantity)
		quote.Amount = quote.ReferenceAmount * in.Rate
		return quote
	}

	if p, ok := in.Offering.Platforms[platform]; ok && p.FlatPricePerK != nil {
		quote.Source = SourcePlatformPrice
		quote.ReferenceAmount = *p.FlatPricePerK / 1000 * float64(in.Quantity)
		quote.Amount = quote.ReferenceAmount * in.Rate
		return quote
	}

	if p, ok := in.Offering.Platforms[platform]; ok && p.Factor > 0 {
		quote.PlatformFactor = p.Factor
	}
	quote.Source = SourceBase
	quote.VolumeFactor = volumeFactor(in.VolumeSteps, in.Quantity)
	quote.ReferenceAmount = in.Offering.BasePricePerK * float64(in.Quantity) / 1000 *
		quote.PlatformFactor * quote.VolumeFactor
	quote.Amount = quote.ReferenceAmount * in.Rate
	return quote
}

// effectivePlatform keeps the requested platform when the offering knows it,
// otherwise falls back to the lexicographically first configured platform so
// the degraded result stays deterministic.
func effectivePlatform(offering OfferingView, requested string) string {
	if requested != "" {
		if _, ok := offering.Platforms[requested]; ok {
			return requested
		}
		if tiers, ok := offering.Tiers[requested]; ok && len(tiers) > 0 {
			return requested
		}
	}

	if len(offering.Platforms) == 0 {
		return requested
	}
	codes := make([]string, 0, len(offering.Platforms))
	for code := range offering.Platforms {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes[0]
}

func matchTier(tiers []Tier, quantity int64) *Tier {
	for i := range tiers {
		t := tiers[i]
		if !t.Active {
			continue
		}
		if quantity >= t.MinQuantity && quantity <= t.MaxQuantity {
			return &t
		}
	}
	return nil
}

func volumeFactor(steps []VolumeStep, quantity int64) float64 {
	if steps == nil {
		steps = DefaultVolumeSteps
	}
	for _, step := range steps {
		if quantity >= step.MinQuantity {
			return step.Factor
		}
	}
	return 1.0
}
