package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// CurrencyRate converts amounts from the reference currency (USD) into
// a display currency. Rate is expressed as target units per one USD.
type CurrencyRate struct {
	ID        snowflake.ID `json:"id,string" gorm:"primaryKey"`
	Code      string       `json:"code" gorm:"uniqueIndex;size:8;not null"`
	Rate      float64      `json:"rate" gorm:"type:numeric;not null"`
	Symbol    string       `json:"symbol" gorm:"size:8"`
	Active    bool         `json:"active" gorm:"default:true"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

func (CurrencyRate) TableName() string {
	return "currency_rates"
}
