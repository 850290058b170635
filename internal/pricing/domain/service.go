package domain

import (
	"context"
	"errors"
)

type Service interface {
	Quote(ctx context.Context, req QuoteRequest) (*QuoteResponse, error)
}

// QuoteRequest prices an offering for the storefront. Offering accepts either
// the snowflake id or the catalog code.
type QuoteRequest struct {
	Offering string `json:"offering" form:"offering"`
	Platform string `json:"platform" form:"platform"`
	Quantity int64  `json:"quantity" form:"quantity"`
	Currency string `json:"currency" form:"currency"`
}

type QuoteTier struct {
	MinQuantity int64   `json:"min_quantity"`
	MaxQuantity int64   `json:"max_quantity"`
	PricePerK   float64 `json:"price_per_k"`
	DiscountPct float64 `json:"discount_pct,omitempty"`
}

type QuoteResponse struct {
	OfferingID   string `json:"offering_id"`
	OfferingCode string `json:"offering_code"`
	OfferingName string `json:"offering_name"`
	Platform     string `json:"platform"`
	Quantity     int64  `json:"quantity"`

	Currency string  `json:"currency"`
	Symbol   string  `json:"symbol"`
	Rate     float64 `json:"rate"`

	Source         PriceSource `json:"source"`
	Tier           *QuoteTier  `json:"tier,omitempty"`
	PlatformFactor float64     `json:"platform_factor"`
	VolumeFactor   float64     `json:"volume_factor"`

	ReferenceAmount float64 `json:"reference_amount"`
	Amount          float64 `json:"amount"`
}

var (
	ErrInvalidOffering  = errors.New("invalid_offering")
	ErrInvalidPlatform  = errors.New("invalid_platform")
	ErrInvalidQuantity  = errors.New("invalid_quantity")
	ErrInvalidCurrency  = errors.New("invalid_currency")
	ErrOfferingNotFound = errors.New("offering_not_found")
	ErrOfferingInactive = errors.New("offering_inactive")
	ErrCurrencyNotFound = errors.New("currency_not_found")
)
