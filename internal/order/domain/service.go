package domain

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/jawadsites/boostpanel/pkg/db/pagination"
)

var (
	ErrInvalidTargetURL  = errors.New("invalid_target_url")
	ErrInvalidStatus     = errors.New("invalid_order_status")
	ErrInvalidTransition = errors.New("invalid_status_transition")
	ErrInvalidID         = errors.New("invalid_order_id")
	ErrNotFound          = errors.New("order_not_found")
	ErrRateLimited       = errors.New("order_rate_limited")
)

type CreateRequest struct {
	Offering  string                 `json:"offering"`
	Platform  string                 `json:"platform"`
	Quantity  int64                  `json:"quantity"`
	Currency  string                 `json:"currency"`
	TargetURL string                 `json:"target_url"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`

	// ClientIP feeds the submission rate limiter, not the stored order.
	ClientIP string `json:"-"`
}

type ListRequest struct {
	pagination.Pagination

	Status   string `form:"status"`
	Platform string `form:"platform"`
	Offering string `form:"offering"`
}

type UpdateStatusRequest struct {
	Status Status `json:"status"`
}

type Response struct {
	ID        string `json:"id"`
	Reference string `json:"reference"`

	OfferingID   string `json:"offering_id"`
	OfferingCode string `json:"offering_code"`
	Platform     string `json:"platform"`
	Quantity     int64  `json:"quantity"`
	TargetURL    string `json:"target_url,omitempty"`

	Currency        string  `json:"currency"`
	Rate            float64 `json:"rate"`
	PriceSource     string  `json:"price_source"`
	ReferenceAmount float64 `json:"reference_amount"`
	Amount          float64 `json:"amount"`

	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ListResponse struct {
	Orders   []Response          `json:"orders"`
	PageInfo pagination.PageInfo `json:"page_info"`
}

type ExportFilter struct {
	Status   string
	Platform string
	From     *time.Time
	To       *time.Time
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	List(ctx context.Context, req ListRequest) (*ListResponse, error)
	Get(ctx context.Context, reference string) (*Response, error)
	UpdateStatus(ctx context.Context, reference string, req UpdateStatusRequest) (*Response, error)
	ExportCSV(ctx context.Context, filter ExportFilter, w io.Writer) (int, error)
}
