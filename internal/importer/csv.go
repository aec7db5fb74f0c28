package importer

import (
	"bytes"
	"encoding/csv"
	"strings"
	"time"

	apperrors "github.com/wayplan/wayplan-backend/errors"
	"github.com/wayplan/wayplan-backend/types"
)

// CSVParser reads one activity per record. Columns are sniffed from the
// header row by case-insensitive substring match, so "Activity Title",
// "title" and "Activity" all map to the title column.
type CSVParser struct{}

// column sniffing order matters: the first header matching a concern wins
var csvColumns = []struct {
	field      string
	substrings []string
}{
	{"title", []string{"title", "activity", "name"}},
	{"date", []string{"date", "day"}},
	{"time", []string{"time"}},
	{"type", []string{"type", "category"}},
	{"description", []string{"description", "note"}},
	{"location", []string{"location", "place"}},
	{"cost", []string{"cost", "price", "amount"}},
	{"currency", []string{"currency"}},
}

func (CSVParser) Parse(data []byte) (*types.TripImport, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, apperrors.ImportFailed("file is not valid CSV", err.Error())
	}
	if len(records) < 2 {
		return nil, apperrors.ImportFailed("file has no data rows", "expected a header row and at least one activity")
	}

	columns := sniffColumns(records[0])
	if _, ok := columns["title"]; !ok {
		return nil, apperrors.ImportFailed("no title column found",
			"expected a header containing one of: title, activity, name")
	}

	imported := &types.TripImport{}
	for _, record := range records[1:] {
		if act, ok := parseRecord(record, columns); ok {
			imported.Activities = append(imported.Activities, act)
		}
	}
	markMissing(imported)
	return imported, nil
}

func sniffColumns(header []string) map[string]int {
	columns := make(map[string]int)
	for i, cell := range header {
		name := strings.ToLower(strings.TrimSpace(cell))
		for _, col := range csvColumns {
			if _, taken := columns[col.field]; taken {
				continue
			}
			for _, sub := range col.substrings {
				if strings.Contains(name, sub) {
					columns[col.field] = i
					break
				}
			}
		}
	}
	return columns
}

// parseRecord builds one activity from a data row. Rows without a title are
// skipped, not rejected.
func parseRecord(record []string, columns map[string]int) (types.ActivityImport, bool) {
	cell := func(field string) string {
		i, ok := columns[field]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	act := types.ActivityImport{
		Title:       cell("title"),
		Type:        cell("type"),
		Description: cell("description"),
		Location:    cell("location"),
	}
	if act.Title == "" {
		return types.ActivityImport{}, false
	}
	if act.Type == "" {
		act.Type = types.ActivityTypeActivity
	}

	if cost := cell("cost"); cost != "" {
		if amount, currency, ok := parseCostCell(cost); ok {
			act.Cost = &amount
			if act.CostCurrency = cell("currency"); act.CostCurrency == "" {
				act.CostCurrency = currency
			}
		}
	}

	if start, ok := parseDateTimeCells(cell("date"), cell("time")); ok {
		act.StartTime = &start
	}
	return act, true
}

// dateLayouts are tried in order for date cells.
var dateLayouts = []string{"2006-01-02", "02 Jan 2006", "02/01/2006", "2006-01-02T15:04:05Z07:00"}

func parseDateTimeCells(dateCell, timeCell string) (time.Time, bool) {
	if dateCell == "" {
		return time.Time{}, false
	}
	var date time.Time
	parsed := false
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, dateCell); err == nil {
			date = d
			parsed = true
			break
		}
	}
	if !parsed {
		return time.Time{}, false
	}
	if timeCell != "" {
		if clock, err := time.Parse("15:04", timeCell); err == nil {
			date = time.Date(date.Year(), date.Month(), date.Day(),
				clock.Hour(), clock.Minute(), 0, 0, date.Location())
		}
	}
	return date, true
}
