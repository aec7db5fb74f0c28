package export

import (
	"github.com/xuri/excelize/v2"

	apperrors "github.com/wayplan/wayplan-backend/errors"
	"github.com/wayplan/wayplan-backend/types"
)

const xlsxSheet = "Itinerary"

var xlsxHeaders = []string{
	"Date", "Day", "Time", "Type", "Activity",
	"Description", "Location", "Map URL", "Cost",
}

var xlsxWidths = []float64{12, 28, 8, 10, 28, 40, 24, 40, 14}

// XLSX renders the trip as a spreadsheet with one row per activity.
func XLSX(trip *types.Trip) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ExportError, "failed to build spreadsheet")
	}
	for i, width := range xlsxWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.ExportError, "failed to build spreadsheet")
		}
		if err := f.SetColWidth(xlsxSheet, col, col, width); err != nil {
			return nil, apperrors.Wrap(err, apperrors.ExportError, "failed to build spreadsheet")
		}
	}

	writeRow := func(row int, values []any) error {
		for i, v := range values {
			cell, err := excelize.CoordinatesToCellName(i+1, row)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(xlsxSheet, cell, v); err != nil {
				return err
			}
		}
		return nil
	}

	headers := make([]any, len(xlsxHeaders))
	for i, h := range xlsxHeaders {
		headers[i] = h
	}
	if err := writeRow(1, headers); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ExportError, "failed to build spreadsheet")
	}

	row := 2
	for _, day := range exportDays(trip) {
		for _, act := range day.Activities {
			mapURL := ""
			if loc := deref(act.Location); loc != "" {
				mapURL = mapSearchURL(loc)
			}
			values := []any{
				day.Date.Format("2006-01-02"),
				dayLabel(day),
				timeLabel(act),
				act.Type,
				act.Title,
				deref(act.Description),
				deref(act.Location),
				mapURL,
				costLabel(act, trip.Currency),
			}
			if err := writeRow(row, values); err != nil {
				return nil, apperrors.Wrap(err, apperrors.ExportError, "failed to build spreadsheet")
			}
			row++
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ExportError, "failed to build spreadsheet")
	}
	return buf.Bytes(), nil
}
