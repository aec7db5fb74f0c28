package export

import (
	"fmt"
	"strings"

	"github.com/wayplan/wayplan-backend/types"
)

// Markdown renders the trip as a Markdown itinerary with a heading per trip,
// a subheading per day and a titled block per activity. Locations become
// map-search hyperlinks.
func Markdown(trip *types.Trip) ([]byte, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", trip.Title)
	if trip.Destination != "" {
		fmt.Fprintf(&b, "**Destination:** %s\n\n", trip.Destination)
	}
	fmt.Fprintf(&b, "**Dates:** %s - %s\n\n",
		trip.StartDate.Format("02 Jan 2006"), trip.EndDate.Format("02 Jan 2006"))
	if label := budgetLabel(trip.Budget, trip.Currency); label != "" {
		fmt.Fprintf(&b, "**Budget:** %s\n\n", label)
	}

	for _, day := range exportDays(trip) {
		fmt.Fprintf(&b, "## %s\n\n", dayLabel(day))
		if note := deref(day.Note); note != "" {
			fmt.Fprintf(&b, "_%s_\n\n", note)
		}
		for _, act := range day.Activities {
			fmt.Fprintf(&b, "### %s\n\n", act.Title)
			fmt.Fprintf(&b, "- Type: %s\n", act.Type)
			if t := timeLabel(act); t != "" {
				fmt.Fprintf(&b, "- Time: %s\n", t)
			}
			if loc := deref(act.Location); loc != "" {
				fmt.Fprintf(&b, "- Location: [%s](%s)\n", loc, mapSearchURL(loc))
			}
			if cost := costLabel(act, trip.Currency); cost != "" {
				fmt.Fprintf(&b, "- Cost: %s\n", cost)
			}
			b.WriteString("\n")
			if desc := deref(act.Description); desc != "" {
				b.WriteString(desc + "\n\n")
			}
		}
	}

	return []byte(b.String()), nil
}
