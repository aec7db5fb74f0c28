package importer

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wayplan/wayplan-backend/types"
)

// TextParser reads the layout produced by the plain-text exporter: a banner
// header, "Day N - Weekday, 02 Jan 2006" sections, numbered time-prefixed
// activity lines and Location:/Note:/Cost: marker lines. It tolerates
// missing fields but not a reformatted layout.
type TextParser struct{}

func (TextParser) Parse(data []byte) (*types.TripImport, error) {
	return parseItineraryLines(strings.Split(string(data), "\n"), false), nil
}

const itineraryDateLayout = "02 Jan 2006"

var (
	dayHeaderRe = regexp.MustCompile(`^Day \d+ - [A-Za-z]+, (\d{2} [A-Za-z]{3} \d{4})$`)
	activityRe  = regexp.MustCompile(`^\d+\.\s+(?:\[(\d{1,2}:\d{2})\]\s+)?(.+?)(?:\s+\(([^)]+)\))?$`)
	// loose variant for extracted PDF text: the "N." prefix is optional when
	// a time is present
	looseActivityRe = regexp.MustCompile(`^\[?(\d{1,2}:\d{2})\]?\s+(.+?)(?:\s+\(([^)]+)\))?$`)
	dateRangeRe     = regexp.MustCompile(`^(\d{2} [A-Za-z]{3} \d{4}) - (\d{2} [A-Za-z]{3} \d{4})$`)
	locationRe      = regexp.MustCompile(`^Location:\s*(.+)$`)
	noteRe          = regexp.MustCompile(`^Note:\s*(.+)$`)
	costRe          = regexp.MustCompile(`^(?:Budget|Cost):\s*([0-9][0-9.,]*)(?:\s+([A-Za-z]{3}))?$`)
)

// parseItineraryLines is the line-pattern core shared by the text and PDF
// parsers. In loose mode the numbered-line requirement is relaxed.
func parseItineraryLines(lines []string, loose bool) *types.TripImport {
	imported := &types.TripImport{}
	var headerLines []string
	var days []*types.DayImport
	var flat []types.ActivityImport
	var curDay *types.DayImport
	var curAct *types.ActivityImport

	appendActivity := func(act types.ActivityImport) {
		if curDay != nil {
			curDay.Activities = append(curDay.Activities, act)
			curAct = &curDay.Activities[len(curDay.Activities)-1]
			return
		}
		flat = append(flat, act)
		curAct = &flat[len(flat)-1]
	}

	makeActivity := func(timeStr, title, typ string) types.ActivityImport {
		act := types.ActivityImport{Title: title, Type: typ}
		if act.Type == "" {
			act.Type = types.ActivityTypeActivity
		}
		if timeStr != "" && curDay != nil && curDay.Date != nil {
			if clock, err := time.Parse("15:04", timeStr); err == nil {
				d := *curDay.Date
				start := time.Date(d.Year(), d.Month(), d.Day(),
					clock.Hour(), clock.Minute(), 0, 0, d.Location())
				act.StartTime = &start
			}
		}
		return act
	}

	for _, raw := range lines {
		line := strings.TrimSpace(strings.TrimRight(raw, "\r"))
		switch {
		case line == "" || isRuleLine(line) || strings.HasPrefix(line, "http"):
			continue

		case dayHeaderRe.MatchString(line):
			m := dayHeaderRe.FindStringSubmatch(line)
			day := &types.DayImport{}
			if date, err := time.Parse(itineraryDateLayout, m[1]); err == nil {
				day.Date = &date
			}
			days = append(days, day)
			curDay = day
			curAct = nil

		case activityRe.MatchString(line):
			m := activityRe.FindStringSubmatch(line)
			appendActivity(makeActivity(m[1], m[2], m[3]))

		case loose && looseActivityRe.MatchString(line):
			m := looseActivityRe.FindStringSubmatch(line)
			appendActivity(makeActivity(m[1], m[2], m[3]))

		case locationRe.MatchString(line):
			if curAct != nil {
				curAct.Location = locationRe.FindStringSubmatch(line)[1]
			}

		case costRe.MatchString(line):
			m := costRe.FindStringSubmatch(line)
			amount, err := decimal.NewFromString(strings.ReplaceAll(m[1], ",", ""))
			if err != nil {
				continue
			}
			switch {
			case curAct != nil:
				curAct.Cost = &amount
				curAct.CostCurrency = m[2]
			case curDay == nil && strings.HasPrefix(line, "Budget:"):
				imported.Budget = &amount
				if m[2] != "" {
					imported.Currency = m[2]
				}
			}

		case noteRe.MatchString(line):
			note := noteRe.FindStringSubmatch(line)[1]
			switch {
			case curAct != nil:
				curAct.Description = note
			case curDay != nil:
				curDay.Note = note
			}

		case curDay == nil && dateRangeRe.MatchString(line):
			m := dateRangeRe.FindStringSubmatch(line)
			if start, err := time.Parse(itineraryDateLayout, m[1]); err == nil {
				imported.StartDate = &start
			}
			if end, err := time.Parse(itineraryDateLayout, m[2]); err == nil {
				imported.EndDate = &end
			}

		case curDay == nil:
			headerLines = append(headerLines, line)
		}
	}

	if len(headerLines) > 0 {
		imported.Title = headerLines[0]
	}
	if len(headerLines) > 1 {
		imported.Destination = headerLines[1]
	}
	for _, day := range days {
		imported.Days = append(imported.Days, *day)
	}
	imported.Activities = flat
	markMissing(imported)
	return imported
}

func isRuleLine(line string) bool {
	return line == strings.Repeat("=", len(line)) || line == strings.Repeat("-", len(line))
}
