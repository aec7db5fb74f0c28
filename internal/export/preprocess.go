package export

import (
	"fmt"
	"net/url"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/wayplan/wayplan-backend/types"
)

// exportDays returns the trip's days that carry at least one activity, with
// each day's activities sorted ascending by start time. Activities without a
// start time sort last in their original order; ties keep original order.
// The trip's own slices are not mutated.
func exportDays(trip *types.Trip) []*types.Day {
	days := make([]*types.Day, 0, len(trip.Days))
	for _, day := range trip.Days {
		if len(day.Activities) == 0 {
			continue
		}
		d := *day
		d.Activities = sortedActivities(day.Activities)
		days = append(days, &d)
	}
	return days
}

func sortedActivities(activities []*types.Activity) []*types.Activity {
	out := make([]*types.Activity, len(activities))
	copy(out, activities)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].StartTime, out[j].StartTime
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		return a.Before(*b)
	})
	return out
}

// dayLabel renders the header label shared by the text, Markdown and XLSX
// formatters, e.g. "Day 1 - Monday, 04 Mar 2024".
func dayLabel(day *types.Day) string {
	return fmt.Sprintf("Day %d - %s", day.Index+1, day.Date.Format("Monday, 02 Jan 2006"))
}

// timeLabel is the activity's start time as HH:MM, or "" when untimed.
func timeLabel(act *types.Activity) string {
	if act.StartTime == nil {
		return ""
	}
	return act.StartTime.Format("15:04")
}

// costLabel renders an activity's cost with its currency code, falling back
// to the trip currency, e.g. "12.50 EUR". Empty when there is no cost.
func costLabel(act *types.Activity, tripCurrency string) string {
	if act.Cost == nil {
		return ""
	}
	currency := tripCurrency
	if act.CostCurrency != nil && *act.CostCurrency != "" {
		currency = *act.CostCurrency
	}
	return fmt.Sprintf("%s %s", act.Cost.StringFixed(2), currency)
}

// budgetLabel renders the trip budget with its currency, or "" when unset.
func budgetLabel(budget *decimal.Decimal, currency string) string {
	if budget == nil {
		return ""
	}
	return fmt.Sprintf("%s %s", budget.StringFixed(2), currency)
}

// mapSearchURL builds a map-search link for a free-text place name.
func mapSearchURL(location string) string {
	return "https://www.google.com/maps/search/?api=1&query=" + url.QueryEscape(location)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
