package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type ListFilter struct {
	Status     Status
	Platform   string
	OfferingID snowflake.ID

	// AfterID resumes a keyset scan past the given order id.
	AfterID snowflake.ID
	Limit   int
}

type StreamFilter struct {
	Status   Status
	Platform string
	From     *time.Time
	To       *time.Time
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, order *Order) error
	Update(ctx context.Context, db *gorm.DB, order *Order) error
	FindByReference(ctx context.Context, db *gorm.DB, reference string) (*Order, error)
	List(ctx context.Context, db *gorm.DB, filter ListFilter) ([]Order, error)
	Stream(ctx context.Context, db *gorm.DB, filter StreamFilter, fn func(*Order) error) error
}
