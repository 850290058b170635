package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// transitions holds the allowed status moves. Completed and cancelled
// are terminal.
var transitions = map[Status][]Status{
	StatusPending:    {StatusProcessing, StatusCompleted, StatusCancelled},
	StatusProcessing: {StatusCompleted, StatusCancelled},
}

// CanTransition reports whether an order may move from one status to another.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusProcessing, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Order captures one priced submission. The quote breakdown is frozen at
// creation time so catalog edits never reprice past orders.
type Order struct {
	ID        snowflake.ID `json:"id,string" gorm:"primaryKey"`
	Reference string       `json:"reference" gorm:"uniqueIndex;size:32;not null"`

	OfferingID   snowflake.ID `json:"offering_id,string" gorm:"not null;index"`
	OfferingCode string       `json:"offering_code" gorm:"size:64;not null"`
	Platform     string       `json:"platform" gorm:"size:32;not null"`
	Quantity     int64        `json:"quantity" gorm:"not null"`
	TargetURL    string       `json:"target_url" gorm:"type:text"`

	Currency        string  `json:"currency" gorm:"size:8;not null"`
	Rate            float64 `json:"rate" gorm:"type:numeric;not null"`
	PriceSource     string  `json:"price_source" gorm:"size:16;not null"`
	ReferenceAmount float64 `json:"reference_amount" gorm:"type:numeric;not null"`
	Amount          float64 `json:"amount" gorm:"type:numeric;not null"`

	Status   Status            `json:"status" gorm:"size:16;not null;default:pending;index"`
	Metadata datatypes.JSONMap `json:"metadata,omitempty" gorm:"type:jsonb"`

	CreatedAt time.Time `json:"created_at" gorm:"index"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Order) TableName() string {
	return "orders"
}
