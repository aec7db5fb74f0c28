package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// Well-known activity types. The set is open ended: any other value is
// treated as a free-text custom label.
const (
	ActivityTypeActivity = "activity"
	ActivityTypeFood     = "food"
	ActivityTypeLodging  = "lodging"
	ActivityTypeTravel   = "travel"
)

// Activity is a single planned item within a day. CostCurrency defaults to
// the owning trip's currency when absent.
type Activity struct {
	ID           string           `json:"id"`
	DayID        string           `json:"dayId"`
	Type         string           `json:"type"`
	Title        string           `json:"title"`
	Description  *string          `json:"description,omitempty"`
	StartTime    *time.Time       `json:"startTime,omitempty"`
	EndTime      *time.Time       `json:"endTime,omitempty"`
	Cost         *decimal.Decimal `json:"cost,omitempty"`
	CostCurrency *string          `json:"costCurrency,omitempty"`
	Location     *string          `json:"location,omitempty"`
	Images       []string         `json:"images,omitempty"`
	CreatedAt    time.Time        `json:"createdAt"`
	UpdatedAt    time.Time        `json:"updatedAt"`
}

// ActivityUpdate carries a partial activity update. Nil fields are left
// untouched.
type ActivityUpdate struct {
	DayID        *string          `json:"dayId,omitempty"`
	Type         *string          `json:"type,omitempty"`
	Title        *string          `json:"title,omitempty"`
	Description  *string          `json:"description,omitempty"`
	StartTime    *time.Time       `json:"startTime,omitempty"`
	EndTime      *time.Time       `json:"endTime,omitempty"`
	Cost         *decimal.Decimal `json:"cost,omitempty"`
	CostCurrency *string          `json:"costCurrency,omitempty"`
	Location     *string          `json:"location,omitempty"`
	Images       *[]string        `json:"images,omitempty"`
}
