// Package importer reconstructs partial trip records from uploaded files.
// Each format is an independent best-effort strategy: fields it cannot
// determine are zero-valued and listed in the result's Missing slice, rows
// it cannot make sense of are skipped individually. Only a missing trip
// title aborts the whole import.
package importer

import (
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/shopspring/decimal"

	apperrors "github.com/wayplan/wayplan-backend/errors"
	"github.com/wayplan/wayplan-backend/types"
)

// Parser is one format strategy.
type Parser interface {
	Parse(data []byte) (*types.TripImport, error)
}

// Parse sniffs the format from the file extension, parses the data and
// normalizes the result. Tabular formats carry no trip title of their own,
// so an undetermined title falls back to the filename stem.
func Parse(filename string, data []byte) (*types.TripImport, error) {
	parser, err := forFile(filename, data)
	if err != nil {
		return nil, err
	}

	imported, err := parser.Parse(data)
	if err != nil {
		return nil, err
	}

	if imported.Title == "" {
		imported.Title = titleFromFilename(filename)
		imported.Missing = append(imported.Missing, "title")
	}
	if imported.Title == "" {
		return nil, apperrors.ImportFailed(
			"could not determine a trip title", "the file does not name the trip")
	}
	return imported, nil
}

// forFile picks the parser by extension. Binary formats are cross-checked
// against the detected content type so a mislabeled upload fails fast
// instead of producing garbage.
func forFile(filename string, data []byte) (Parser, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	switch ext {
	case "json":
		return JSONParser{}, nil
	case "txt", "text":
		return TextParser{}, nil
	case "csv":
		return CSVParser{}, nil
	case "xlsx":
		if !mimetype.Detect(data).Is("application/vnd.openxmlformats-officedocument.spreadsheetml.sheet") {
			return nil, apperrors.ImportFailed("file is not a spreadsheet", filename)
		}
		return XLSXParser{}, nil
	case "pdf":
		if !mimetype.Detect(data).Is("application/pdf") {
			return nil, apperrors.ImportFailed("file is not a PDF", filename)
		}
		return PDFParser{}, nil
	default:
		return nil, apperrors.ImportFailed(
			"unsupported file type", "supported: json, txt, csv, xlsx, pdf")
	}
}

func titleFromFilename(filename string) string {
	stem := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	stem = strings.NewReplacer("_", " ", "-", " ").Replace(stem)
	return strings.TrimSpace(stem)
}

// parseCostCell reads a cost cell that is either a bare amount ("12.50") or
// an amount with a currency code ("12.50 EUR").
func parseCostCell(cell string) (decimal.Decimal, string, bool) {
	fields := strings.Fields(cell)
	if len(fields) == 0 {
		return decimal.Decimal{}, "", false
	}
	amount, err := decimal.NewFromString(strings.ReplaceAll(fields[0], ",", ""))
	if err != nil {
		return decimal.Decimal{}, "", false
	}
	currency := ""
	if len(fields) > 1 && len(fields[1]) == 3 {
		currency = strings.ToUpper(fields[1])
	}
	return amount, currency, true
}

// markMissing records the trip-level fields the parser could not determine.
func markMissing(t *types.TripImport) {
	if t.Destination == "" {
		t.Missing = append(t.Missing, "destination")
	}
	if t.StartDate == nil {
		t.Missing = append(t.Missing, "startDate")
	}
	if t.EndDate == nil {
		t.Missing = append(t.Missing, "endDate")
	}
	if t.Budget == nil {
		t.Missing = append(t.Missing, "budget")
	}
	if t.Currency == "" {
		t.Missing = append(t.Missing, "currency")
	}
}
