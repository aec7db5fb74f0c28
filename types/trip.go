package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultCurrency is applied to trips created without an explicit currency.
const DefaultCurrency = "EUR"

// Trip is the top-level itinerary record spanning an inclusive date range.
// Every Day's date falls within [StartDate, EndDate] and days are unique per
// date within a trip.
type Trip struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Destination string           `json:"destination"`
	StartDate   time.Time        `json:"startDate"`
	EndDate     time.Time        `json:"endDate"`
	Budget      *decimal.Decimal `json:"budget,omitempty"`
	Currency    string           `json:"currency"`
	CoverImage  *string          `json:"coverImage,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
	Days        []*Day           `json:"days,omitempty"`
}

// TripUpdate carries a partial trip update. Nil fields are left untouched.
type TripUpdate struct {
	Title       *string          `json:"title,omitempty"`
	Destination *string          `json:"destination,omitempty"`
	StartDate   *time.Time       `json:"startDate,omitempty"`
	EndDate     *time.Time       `json:"endDate,omitempty"`
	Budget      *decimal.Decimal `json:"budget,omitempty"`
	Currency    *string          `json:"currency,omitempty"`
	CoverImage  *string          `json:"coverImage,omitempty"`
}

// Day is one calendar date within a trip's range. Index is the 0-based
// position within the trip, equal to days since the trip's start date.
type Day struct {
	ID         string      `json:"id"`
	TripID     string      `json:"tripId"`
	Date       time.Time   `json:"date"`
	Index      int         `json:"index"`
	Note       *string     `json:"note,omitempty"`
	Activities []*Activity `json:"activities,omitempty"`
}

// DayPlan is the outcome of reconciling a trip's day set against a new date
// range. The store applies the whole plan in a single transaction.
type DayPlan struct {
	Create  []*Day       // days for dates missing from the old set
	Reindex []DayReindex // surviving days with their new index
	Delete  []string     // IDs of days outside the new range (activities cascade)
}

// DayReindex assigns a surviving day its position in the new range.
type DayReindex struct {
	DayID string
	Index int
}

// Empty reports whether applying the plan would change nothing.
func (p DayPlan) Empty() bool {
	return len(p.Create) == 0 && len(p.Reindex) == 0 && len(p.Delete) == 0
}

// BudgetSummary reports spend against a trip's budget in the trip currency.
type BudgetSummary struct {
	Budget     decimal.Decimal `json:"budget"`
	Spent      decimal.Decimal `json:"spent"`
	Remaining  decimal.Decimal `json:"remaining"`
	Currency   string          `json:"currency"`
	Warning    bool            `json:"warning"`    // spent >= 80% of budget
	OverBudget bool            `json:"overBudget"` // remaining < 0
}
