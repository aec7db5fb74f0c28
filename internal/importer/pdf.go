package importer

import (
	"bytes"
	"strings"

	"github.com/ledongthuc/pdf"

	apperrors "github.com/wayplan/wayplan-backend/errors"
	"github.com/wayplan/wayplan-backend/types"
)

// PDFParser extracts text per page and runs the itinerary line heuristics
// in loose mode, since extracted PDF text loses the exact exporter layout.
type PDFParser struct{}

func (PDFParser) Parse(data []byte) (*types.TripImport, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, apperrors.ImportFailed("file is not a readable PDF", err.Error())
	}

	var lines []string
	for pageIndex := 1; pageIndex <= reader.NumPage(); pageIndex++ {
		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			// a broken page is skipped, not fatal
			continue
		}
		for _, row := range rows {
			var b strings.Builder
			for _, text := range row.Content {
				b.WriteString(text.S)
			}
			lines = append(lines, b.String())
		}
	}
	if len(lines) == 0 {
		return nil, apperrors.ImportFailed("no text found in PDF",
			"the document may be image-only")
	}

	return parseItineraryLines(lines, true), nil
}
