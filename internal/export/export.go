// Package export renders a trip's day/activity graph into downloadable
// artifacts (JSON, Markdown, plain text, PDF, XLSX, ICS) and into external
// service URLs (maps directions, Google Calendar). All formatters share the
// same preprocessing: activity-less days are dropped and each day's
// activities are sorted by start time.
package export

import (
	"strings"

	"github.com/wayplan/wayplan-backend/types"
)

// Format describes one downloadable export format.
type Format struct {
	Extension   string
	ContentType string
	Render      func(*types.Trip) ([]byte, error)
}

var formats = map[string]Format{
	"json":     {Extension: "json", ContentType: "application/json", Render: JSON},
	"markdown": {Extension: "md", ContentType: "text/markdown; charset=utf-8", Render: Markdown},
	"text":     {Extension: "txt", ContentType: "text/plain; charset=utf-8", Render: Text},
	"pdf":      {Extension: "pdf", ContentType: "application/pdf", Render: PDF},
	"xlsx":     {Extension: "xlsx", ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", Render: XLSX},
	"ics":      {Extension: "ics", ContentType: "text/calendar; charset=utf-8", Render: ICS},
}

// Lookup returns the format registered under the given name.
func Lookup(name string) (Format, bool) {
	f, ok := formats[strings.ToLower(name)]
	return f, ok
}

// FormatNames lists the registered format names for error messages.
func FormatNames() []string {
	names := make([]string, 0, len(formats))
	for name := range formats {
		names = append(names, name)
	}
	return names
}

// Filename derives the download filename from the trip title, replacing
// characters that are unsafe in filenames or Content-Disposition headers.
func Filename(trip *types.Trip, extension string) string {
	title := strings.TrimSpace(trip.Title)
	if title == "" {
		title = "trip"
	}
	var b strings.Builder
	for _, r := range title {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('_')
		}
	}
	name := b.String()
	if name == "" {
		name = "trip"
	}
	return name + "." + extension
}
