package importer

import (
	"bytes"

	"github.com/xuri/excelize/v2"

	apperrors "github.com/wayplan/wayplan-backend/errors"
	"github.com/wayplan/wayplan-backend/types"
)

// XLSXParser reads the first sheet as one activity per row. Headers are
// matched case-sensitively against the known variants older exports used,
// unlike the CSV parser's substring sniffing.
type XLSXParser struct{}

var xlsxHeaderVariants = map[string][]string{
	"title":       {"Activity", "Title", "Name"},
	"date":        {"Date", "Day Date"},
	"time":        {"Time", "Start Time"},
	"type":        {"Type", "Category"},
	"description": {"Description", "Notes"},
	"location":    {"Location", "Place"},
	"cost":        {"Cost", "Price"},
	"currency":    {"Currency"},
}

func (XLSXParser) Parse(data []byte) (*types.TripImport, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, apperrors.ImportFailed("file is not a readable spreadsheet", err.Error())
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperrors.ImportFailed("spreadsheet has no sheets", "")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, apperrors.ImportFailed("failed to read spreadsheet rows", err.Error())
	}
	if len(rows) < 2 {
		return nil, apperrors.ImportFailed("spreadsheet has no data rows",
			"expected a header row and at least one activity")
	}

	columns := matchHeaders(rows[0])
	if _, ok := columns["title"]; !ok {
		return nil, apperrors.ImportFailed("no title column found",
			"expected a header named Activity, Title or Name")
	}

	imported := &types.TripImport{}
	for _, row := range rows[1:] {
		if act, ok := parseRecord(row, columns); ok {
			imported.Activities = append(imported.Activities, act)
		}
	}
	markMissing(imported)
	return imported, nil
}

func matchHeaders(header []string) map[string]int {
	columns := make(map[string]int)
	for i, cell := range header {
		for field, variants := range xlsxHeaderVariants {
			if _, taken := columns[field]; taken {
				continue
			}
			for _, variant := range variants {
				if cell == variant {
					columns[field] = i
					break
				}
			}
		}
	}
	return columns
}
