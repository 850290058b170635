package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrInvalidCode = errors.New("invalid_currency_code")
	ErrInvalidRate = errors.New("invalid_currency_rate")
	ErrNotFound    = errors.New("currency_not_found")
)

type UpsertRequest struct {
	Code   string  `json:"code"`
	Rate   float64 `json:"rate"`
	Symbol string  `json:"symbol"`
	Active *bool   `json:"active,omitempty"`
}

type Response struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Rate      float64   `json:"rate"`
	Symbol    string    `json:"symbol"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Service interface {
	Upsert(ctx context.Context, req UpsertRequest) (*Response, error)
	Get(ctx context.Context, code string) (*Response, error)
	List(ctx context.Context) ([]Response, error)
}
