package domain

import (
	"context"
	"errors"
	"time"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Response, error)
	List(ctx context.Context) ([]Response, error)
	Get(ctx context.Context, id string) (*Response, error)
}

type PlatformInput struct {
	Platform      string   `json:"platform"`
	Factor        float64  `json:"factor"`
	FlatPricePerK *float64 `json:"flat_price_per_k"`
}

type CreateRequest struct {
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	BasePricePerK float64         `json:"base_price_per_k"`
	MinQuantity   int64           `json:"min_quantity"`
	MaxQuantity   int64           `json:"max_quantity"`
	Active        *bool           `json:"active"`
	Platforms     []PlatformInput `json:"platforms"`
	Metadata      map[string]any  `json:"metadata"`
}

type UpdateRequest struct {
	Name          *string         `json:"name"`
	Description   *string         `json:"description"`
	BasePricePerK *float64        `json:"base_price_per_k"`
	MinQuantity   *int64          `json:"min_quantity"`
	MaxQuantity   *int64          `json:"max_quantity"`
	Active        *bool           `json:"active"`
	Platforms     []PlatformInput `json:"platforms"`
}

type PlatformResponse struct {
	Platform      string   `json:"platform"`
	Factor        float64  `json:"factor"`
	FlatPricePerK *float64 `json:"flat_price_per_k,omitempty"`
}

type Response struct {
	ID            string             `json:"id"`
	Code          string             `json:"code"`
	Name          string             `json:"name"`
	Description   string             `json:"description,omitempty"`
	BasePricePerK float64            `json:"base_price_per_k"`
	MinQuantity   int64              `json:"min_quantity"`
	MaxQuantity   int64              `json:"max_quantity"`
	Active        bool               `json:"active"`
	Platforms     []PlatformResponse `json:"platforms"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

var (
	ErrInvalidName          = errors.New("invalid_name")
	ErrInvalidBasePrice     = errors.New("invalid_base_price")
	ErrInvalidQuantityRange = errors.New("invalid_quantity_range")
	ErrInvalidPlatform      = errors.New("invalid_platform")
	ErrInvalidFactor        = errors.New("invalid_factor")
	ErrInvalidFlatPrice     = errors.New("invalid_flat_price")
	ErrInvalidID            = errors.New("invalid_id")
	ErrCodeTaken            = errors.New("code_taken")
	ErrNotFound             = errors.New("not_found")
)
