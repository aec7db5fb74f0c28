package export

import (
	"bytes"
	"encoding/json"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/wayplan/wayplan-backend/types"
)

func strPtr(s string) *string { return &s }

func timePtr(t time.Time) *time.Time { return &t }

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

// fixtureTrip is a two-day trip with an empty third day, unsorted
// activities and one untimed activity.
func fixtureTrip() *types.Trip {
	budget := decimal.RequireFromString("1000")
	return &types.Trip{
		ID:          "trip-1",
		Title:       "Japan Spring",
		Destination: "Kyoto, Japan",
		StartDate:   time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC),
		Budget:      &budget,
		Currency:    "EUR",
		Days: []*types.Day{
			{
				ID: "day-1", Date: time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), Index: 0,
				Activities: []*types.Activity{
					{
						ID: "act-2", Title: "Temple walk", Type: "activity",
						StartTime:   timePtr(time.Date(2024, 3, 4, 14, 0, 0, 0, time.UTC)),
						Location:    strPtr("Fushimi Inari"),
						Description: strPtr("Climb to the summit"),
					},
					{
						ID: "act-1", Title: "Breakfast", Type: "food",
						StartTime:    timePtr(time.Date(2024, 3, 4, 8, 30, 0, 0, time.UTC)),
						Cost:         decPtr("12.5"),
						CostCurrency: strPtr("USD"),
					},
					{ID: "act-3", Title: "Pack bags", Type: "activity"},
				},
			},
			{
				ID: "day-2", Date: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), Index: 1,
				Note: strPtr("Early start"),
				Activities: []*types.Activity{
					{
						ID: "act-4", Title: "Ramen", Type: "food",
						Location: strPtr("Ichiran, Kyoto"),
						Cost:     decPtr("9"),
					},
				},
			},
			{ID: "day-3", Date: time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC), Index: 2},
		},
	}
}

func TestExportDays_FiltersAndSorts(t *testing.T) {
	trip := fixtureTrip()

	days := exportDays(trip)
	// The activity-less third day is dropped.
	require.Len(t, days, 2)

	titles := make([]string, 0, 3)
	for _, act := range days[0].Activities {
		titles = append(titles, act.Title)
	}
	// Sorted by start time, untimed last.
	assert.Equal(t, []string{"Breakfast", "Temple walk", "Pack bags"}, titles)

	// The trip's own slice order is untouched.
	assert.Equal(t, "Temple walk", trip.Days[0].Activities[0].Title)
}

func TestText_Layout(t *testing.T) {
	out, err := Text(fixtureTrip())
	require.NoError(t, err)
	text := string(out)

	assert.Contains(t, text, "Japan Spring\n")
	assert.Contains(t, text, "04 Mar 2024 - 06 Mar 2024")
	assert.Contains(t, text, "Budget: 1000.00 EUR")
	assert.Contains(t, text, "Day 1 - Monday, 04 Mar 2024")
	assert.Contains(t, text, "1. [08:30] Breakfast (food)")
	assert.Contains(t, text, "2. [14:00] Temple walk (activity)")
	assert.Contains(t, text, "3. Pack bags (activity)")
	assert.Contains(t, text, "   Location: Fushimi Inari")
	assert.Contains(t, text, "   Note: Climb to the summit")
	assert.Contains(t, text, "   Cost: 12.50 USD")
	// The day note precedes the numbered lines.
	assert.Contains(t, text, "Note: Early start")
	assert.NotContains(t, text, "Day 3")
}

func TestMarkdown_LocationsAreMapLinks(t *testing.T) {
	out, err := Markdown(fixtureTrip())
	require.NoError(t, err)
	md := string(out)

	assert.True(t, strings.HasPrefix(md, "# Japan Spring\n"))
	assert.Contains(t, md, "## Day 2 - Tuesday, 05 Mar 2024")
	assert.Contains(t, md, "[Fushimi Inari](https://www.google.com/maps/search/?api=1&query=Fushimi+Inari)")
	assert.Contains(t, md, "- Cost: 9.00 EUR")
}

func TestJSON_IsReimportableShape(t *testing.T) {
	out, err := JSON(fixtureTrip())
	require.NoError(t, err)

	var doc types.TripImport
	require.NoError(t, json.Unmarshal(out, &doc))

	assert.Equal(t, "Japan Spring", doc.Title)
	require.Len(t, doc.Days, 2)
	require.Len(t, doc.Days[0].Activities, 3)
	assert.Equal(t, "Breakfast", doc.Days[0].Activities[0].Title)
	assert.Equal(t, "USD", doc.Days[0].Activities[0].CostCurrency)
	assert.True(t, doc.Days[0].Activities[0].Cost.Equal(decimal.RequireFromString("12.5")))
}

func TestXLSX_RowPerActivity(t *testing.T) {
	out, err := XLSX(fixtureTrip())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(xlsxSheet)
	require.NoError(t, err)
	// Header plus four activity rows.
	require.Len(t, rows, 5)
	assert.Equal(t, xlsxHeaders, rows[0])
	assert.Equal(t, "2024-03-04", rows[1][0])
	assert.Equal(t, "08:30", rows[1][2])
	assert.Equal(t, "Breakfast", rows[1][4])
	assert.Equal(t, "12.50 USD", rows[1][8])
}

func TestPDF_Renders(t *testing.T) {
	out, err := PDF(fixtureTrip())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
	assert.Greater(t, len(out), 1000)
}

func TestICS_EventsAndDefaults(t *testing.T) {
	out, err := ICS(fixtureTrip())
	require.NoError(t, err)
	cal := string(out)

	assert.Contains(t, cal, "BEGIN:VEVENT")
	// Timed event starts at its own timestamp.
	assert.Contains(t, cal, "20240304T083000Z")
	// Untimed "Ramen" defaults to 09:00 on its day.
	assert.Contains(t, cal, "20240305T090000Z")
	// Commas in locations are escaped exactly once by Serialize.
	assert.Contains(t, cal, `LOCATION:Ichiran\, Kyoto`)
	assert.NotContains(t, cal, `Ichiran\\\, Kyoto`)
	// An activity without a location falls back to the trip destination.
	assert.Contains(t, cal, `Kyoto\, Japan`)
}

func TestMapsRouteURL_OriginWaypointsDestination(t *testing.T) {
	got, err := MapsRouteURL(fixtureTrip())
	require.NoError(t, err)

	u, err := url.Parse(got)
	require.NoError(t, err)
	q := u.Query()
	assert.Equal(t, "Fushimi Inari", q.Get("origin"))
	assert.Equal(t, "Ichiran, Kyoto", q.Get("destination"))
	assert.Equal(t, "", q.Get("waypoints"))

	// With a third located activity, the middle one becomes a waypoint.
	// Gion is timed, so it sorts before the untimed Ramen.
	trip := fixtureTrip()
	trip.Days[1].Activities = append(trip.Days[1].Activities, &types.Activity{
		ID: "act-5", Title: "Evening stroll", Type: "activity",
		StartTime: timePtr(time.Date(2024, 3, 5, 19, 0, 0, 0, time.UTC)),
		Location:  strPtr("Gion"),
	})
	got, err = MapsRouteURL(trip)
	require.NoError(t, err)
	u, err = url.Parse(got)
	require.NoError(t, err)
	q = u.Query()
	assert.Equal(t, "Gion", q.Get("waypoints"))
	assert.Equal(t, "Ichiran, Kyoto", q.Get("destination"))
}

func TestMapsRouteURL_NoLocations(t *testing.T) {
	trip := fixtureTrip()
	for _, day := range trip.Days {
		for _, act := range day.Activities {
			act.Location = nil
		}
	}
	_, err := MapsRouteURL(trip)
	assert.Error(t, err)
}

func TestGoogleCalendarURL_ExclusiveEndDate(t *testing.T) {
	got := GoogleCalendarURL(fixtureTrip())

	u, err := url.Parse(got)
	require.NoError(t, err)
	q := u.Query()
	assert.Equal(t, "Japan Spring", q.Get("text"))
	// End date is the day after the trip ends.
	assert.Equal(t, "20240304/20240307", q.Get("dates"))
	assert.Contains(t, q.Get("details"), "Budget: 1000.00 EUR")
}

func TestFilename_SanitizesTitle(t *testing.T) {
	trip := fixtureTrip()
	assert.Equal(t, "Japan_Spring.pdf", Filename(trip, "pdf"))

	trip.Title = "  ../../etc; rm -rf "
	name := Filename(trip, "json")
	assert.NotContains(t, name, "/")
	assert.NotContains(t, name, ";")

	trip.Title = "日本"
	assert.Equal(t, "trip.ics", Filename(trip, "ics"))
}
