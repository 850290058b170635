package domain

import "sort"

// RangePair references two tiers by index in the min-quantity-sorted order.
type RangePair struct {
	First  int `json:"first"`
	Second int `json:"second"`
}

// Warnings lists schedule defects found by Validate.
type Warnings struct {
	Gaps     []RangePair `json:"gaps"`
	Overlaps []RangePair `json:"overlaps"`
}

// Empty reports whether the schedule validated clean.
func (w Warnings) Empty() bool {
	return len(w.Gaps) == 0 && len(w.Overlaps) == 0
}

// Validate inspects a schedule for gaps and overlapping ranges. Inactive
// tiers are skipped since resolution skips them too. The check is advisory:
// callers surface the warnings but never reject the schedule.
func Validate(tiers []PriceTier) Warnings {
	idx := make([]int, 0, len(tiers))
	for i := range tiers {
		if tiers[i].Active {
			idx = append(idx, i)
		}
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return tiers[idx[a]].MinQuantity < tiers[idx[b]].MinQuantity
	})

	var w Warnings
	for n := 1; n < len(idx); n++ {
		prev, cur := tiers[idx[n-1]], tiers[idx[n]]
		if cur.MinQuantity > prev.MaxQuantity+1 {
			w.Gaps = append(w.Gaps, RangePair{First: n - 1, Second: n})
		}
	}
	for a := 0; a < len(idx); a++ {
		for b := a + 1; b < len(idx); b++ {
			ta, tb := tiers[idx[a]], tiers[idx[b]]
			if ta.MinQuantity <= tb.MaxQuantity && tb.MinQuantity <= ta.MaxQuantity {
				w.Overlaps = append(w.Overlaps, RangePair{First: a, Second: b})
			}
		}
	}
	return w
}
