package export

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	apperrors "github.com/wayplan/wayplan-backend/errors"
	"github.com/wayplan/wayplan-backend/types"
)

// MapsRouteURL builds a single directions URL over every located activity in
// time-sorted order: first location as origin, last as destination, the rest
// as waypoints. Errors when no activity has a location.
func MapsRouteURL(trip *types.Trip) (string, error) {
	var locations []string
	for _, day := range exportDays(trip) {
		for _, act := range day.Activities {
			if loc := deref(act.Location); loc != "" {
				locations = append(locations, loc)
			}
		}
	}
	if len(locations) == 0 {
		// user-facing notice, not a server fault
		return "", &apperrors.AppError{
			Type:       apperrors.ExportError,
			Message:    "no activity has a location",
			Detail:     "add a location to at least one activity to build a route",
			HTTPStatus: http.StatusBadRequest,
		}
	}
	if len(locations) == 1 {
		return mapSearchURL(locations[0]), nil
	}

	params := url.Values{}
	params.Set("api", "1")
	params.Set("origin", locations[0])
	params.Set("destination", locations[len(locations)-1])
	if middle := locations[1 : len(locations)-1]; len(middle) > 0 {
		params.Set("waypoints", strings.Join(middle, "|"))
	}
	return "https://www.google.com/maps/dir/?" + params.Encode(), nil
}

// GoogleCalendarURL builds an all-day-event template URL for the whole trip.
// The end date is exclusive per that target's convention, so it is the trip
// end plus one day.
func GoogleCalendarURL(trip *types.Trip) string {
	details := "Trip to " + trip.Destination
	if label := budgetLabel(trip.Budget, trip.Currency); label != "" {
		details += ". Budget: " + label
	}

	params := url.Values{}
	params.Set("action", "TEMPLATE")
	params.Set("text", trip.Title)
	params.Set("location", trip.Destination)
	params.Set("details", details)
	params.Set("dates", fmt.Sprintf("%s/%s",
		trip.StartDate.Format("20060102"),
		trip.EndDate.AddDate(0, 0, 1).Format("20060102")))
	return "https://calendar.google.com/calendar/render?" + params.Encode()
}
