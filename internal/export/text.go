package export

import (
	"fmt"
	"strings"

	"github.com/wayplan/wayplan-backend/types"
)

const textRule = 50

// Text renders the trip as a plain-text itinerary. The layout is the exact
// dual of the text import parser: a banner header, "Day N - ..." sections,
// numbered time-prefixed activity lines and Location:/Note:/Cost: marker
// lines.
func Text(trip *types.Trip) ([]byte, error) {
	var b strings.Builder

	b.WriteString(strings.Repeat("=", textRule) + "\n")
	b.WriteString(trip.Title + "\n")
	if trip.Destination != "" {
		b.WriteString(trip.Destination + "\n")
	}
	fmt.Fprintf(&b, "%s - %s\n",
		trip.StartDate.Format("02 Jan 2006"), trip.EndDate.Format("02 Jan 2006"))
	if label := budgetLabel(trip.Budget, trip.Currency); label != "" {
		b.WriteString("Budget: " + label + "\n")
	}
	b.WriteString(strings.Repeat("=", textRule) + "\n")

	for _, day := range exportDays(trip) {
		b.WriteString("\n" + dayLabel(day) + "\n")
		b.WriteString(strings.Repeat("-", textRule) + "\n")
		if note := deref(day.Note); note != "" {
			b.WriteString("Note: " + note + "\n")
		}
		for i, act := range day.Activities {
			if t := timeLabel(act); t != "" {
				fmt.Fprintf(&b, "%d. [%s] %s (%s)\n", i+1, t, act.Title, act.Type)
			} else {
				fmt.Fprintf(&b, "%d. %s (%s)\n", i+1, act.Title, act.Type)
			}
			if loc := deref(act.Location); loc != "" {
				b.WriteString("   Location: " + loc + "\n")
				b.WriteString("   " + mapSearchURL(loc) + "\n")
			}
			if desc := deref(act.Description); desc != "" {
				b.WriteString("   Note: " + desc + "\n")
			}
			if cost := costLabel(act, trip.Currency); cost != "" {
				b.WriteString("   Cost: " + cost + "\n")
			}
		}
	}

	return []byte(b.String()), nil
}
