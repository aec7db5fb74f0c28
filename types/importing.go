package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// TripImport is the partial trip structure reconstructed by an import parser.
// Parsers are best-effort: absent fields are zero-valued and listed in
// Missing so callers can distinguish "empty" from "could not determine".
// Either Days (date-grouped) or Activities (flat) is populated, not both.
type TripImport struct {
	Title       string           `json:"title"`
	Destination string           `json:"destination"`
	StartDate   *time.Time       `json:"startDate,omitempty"`
	EndDate     *time.Time       `json:"endDate,omitempty"`
	Budget      *decimal.Decimal `json:"budget,omitempty"`
	Currency    string           `json:"currency,omitempty"`
	Days        []DayImport      `json:"days,omitempty"`
	Activities  []ActivityImport `json:"activities,omitempty"`
	Missing     []string         `json:"missing,omitempty"`
}

// DayImport groups imported activities under one calendar date.
type DayImport struct {
	Date       *time.Time       `json:"date,omitempty"`
	Note       string           `json:"note,omitempty"`
	Activities []ActivityImport `json:"activities,omitempty"`
}

// ActivityImport is one best-guess activity record from an imported file.
type ActivityImport struct {
	Title        string           `json:"title"`
	Type         string           `json:"type,omitempty"`
	Description  string           `json:"description,omitempty"`
	Location     string           `json:"location,omitempty"`
	StartTime    *time.Time       `json:"startTime,omitempty"`
	Cost         *decimal.Decimal `json:"cost,omitempty"`
	CostCurrency string           `json:"costCurrency,omitempty"`
}

// AllActivities flattens the imported structure into a single activity list,
// preserving day grouping order.
func (t *TripImport) AllActivities() []ActivityImport {
	if len(t.Days) == 0 {
		return t.Activities
	}
	var out []ActivityImport
	for _, d := range t.Days {
		out = append(out, d.Activities...)
	}
	return out
}
