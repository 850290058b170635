package domain

import (
	"context"
	"errors"
	"time"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*MutationResponse, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*MutationResponse, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*Response, error)
	List(ctx context.Context, offeringID, platform string) (*ListResponse, error)
}

type CreateRequest struct {
	OfferingID  string  `json:"offering_id"`
	Platform    string  `json:"platform"`
	MinQuantity int64   `json:"min_quantity"`
	MaxQuantity int64   `json:"max_quantity"`
	PricePerK   float64 `json:"price_per_k"`
	DiscountPct float64 `json:"discount_pct"`
	Active      *bool   `json:"active"`
	Position    *int    `json:"position"`
}

type UpdateRequest struct {
	MinQuantity *int64   `json:"min_quantity"`
	MaxQuantity *int64   `json:"max_quantity"`
	PricePerK   *float64 `json:"price_per_k"`
	DiscountPct *float64 `json:"discount_pct"`
	Active      *bool    `json:"active"`
	Position    *int     `json:"position"`
}

type Response struct {
	ID          string    `json:"id"`
	OfferingID  string    `json:"offering_id"`
	Platform    string    `json:"platform"`
	MinQuantity int64     `json:"min_quantity"`
	MaxQuantity int64     `json:"max_quantity"`
	PricePerK   float64   `json:"price_per_k"`
	DiscountPct float64   `json:"discount_pct"`
	Active      bool      `json:"active"`
	Position    int       `json:"position"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// MutationResponse returns the saved tier together with advisory range
// warnings for the schedule it belongs to. The save already happened;
// warnings never roll it back.
type MutationResponse struct {
	Tier     Response `json:"tier"`
	Warnings Warnings `json:"warnings"`
}

// ListResponse carries the schedule plus advisory range warnings. Warnings
// never block saving; the operator is trusted to clean the schedule up.
type ListResponse struct {
	Tiers    []Response `json:"tiers"`
	Warnings Warnings   `json:"warnings"`
}

var (
	ErrInvalidOffering    = errors.New("invalid_offering")
	ErrInvalidPlatform    = errors.New("invalid_platform")
	ErrInvalidMinQty      = errors.New("invalid_min_quantity")
	ErrInvalidMaxQty      = errors.New("invalid_max_quantity")
	ErrInvalidPricePerK   = errors.New("invalid_price_per_k")
	ErrInvalidDiscountPct = errors.New("invalid_discount_pct")
	ErrInvalidID          = errors.New("invalid_id")
	ErrNotFound           = errors.New("not_found")
)
