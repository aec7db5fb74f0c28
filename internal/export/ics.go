package export

import (
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/wayplan/wayplan-backend/types"
)

// untimed activities get a default 09:00-10:00 slot on their day's date
const (
	defaultEventHour = 9
	eventDuration    = time.Hour
)

// ICS renders the trip as an iCalendar document with one VEVENT per
// activity. Timed activities run one hour from their start time; untimed
// ones default to 09:00-10:00 on their day's date. Location falls back to
// the trip destination.
func ICS(trip *types.Trip) ([]byte, error) {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//Wayplan//Wayplan Backend//EN")

	for _, day := range exportDays(trip) {
		for _, act := range day.Activities {
			start := eventStart(day, act)
			event := cal.AddEvent(act.ID + "@wayplan")
			event.SetDtStampTime(start)
			event.SetStartAt(start)
			event.SetEndAt(start.Add(eventDuration))
			// Serialize escapes TEXT values, so these stay raw here.
			event.SetSummary(act.Title)

			location := deref(act.Location)
			if location == "" {
				location = trip.Destination
			}
			if location != "" {
				event.SetLocation(location)
			}
			if desc := deref(act.Description); desc != "" {
				event.SetDescription(desc)
			}
		}
	}

	return []byte(cal.Serialize()), nil
}

func eventStart(day *types.Day, act *types.Activity) time.Time {
	if act.StartTime != nil {
		return *act.StartTime
	}
	d := day.Date
	return time.Date(d.Year(), d.Month(), d.Day(), defaultEventHour, 0, 0, 0, d.Location())
}
