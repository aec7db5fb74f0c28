package export

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	apperrors "github.com/wayplan/wayplan-backend/errors"
	"github.com/wayplan/wayplan-backend/types"
)

const (
	pdfPageWidth  = 210.0 // A4 portrait, mm
	pdfMargin     = 15.0
	pdfBreakAt    = 260.0 // vertical offset that forces a page break
	maxThumbnails = 4
)

// PDF renders the trip as a paginated PDF: a hero band with the trip
// summary, a colored header bar per day and a card per activity. Pages get
// a "Page x of y" footer.
func PDF(trip *types.Trip) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(120, 120, 120)
		pdf.CellFormat(0, 8, fmt.Sprintf("Page %d of {nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	heroBand(pdf, trip)

	contentWidth := pdfPageWidth - 2*pdfMargin
	for _, day := range exportDays(trip) {
		breakIfNeeded(pdf, 24)
		dayBar(pdf, day, contentWidth)
		for _, act := range day.Activities {
			activityCard(pdf, trip, act, contentWidth)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ExportError, "failed to render PDF")
	}
	return buf.Bytes(), nil
}

func heroBand(pdf *fpdf.Fpdf, trip *types.Trip) {
	pdf.SetFillColor(41, 76, 122)
	pdf.Rect(0, 0, pdfPageWidth, 48, "F")

	pdf.SetTextColor(255, 255, 255)
	pdf.SetXY(pdfMargin, 10)
	pdf.SetFont("Helvetica", "B", 22)
	pdf.CellFormat(0, 10, trip.Title, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.SetX(pdfMargin)
	if trip.Destination != "" {
		pdf.CellFormat(0, 7, trip.Destination, "", 1, "L", false, 0, "")
		pdf.SetX(pdfMargin)
	}
	dates := fmt.Sprintf("%s - %s",
		trip.StartDate.Format("02 Jan 2006"), trip.EndDate.Format("02 Jan 2006"))
	if label := budgetLabel(trip.Budget, trip.Currency); label != "" {
		dates += "   Budget: " + label
	}
	pdf.CellFormat(0, 7, dates, "", 1, "L", false, 0, "")

	pdf.SetY(56)
}

func dayBar(pdf *fpdf.Fpdf, day *types.Day, width float64) {
	pdf.SetX(pdfMargin)
	pdf.SetFillColor(225, 235, 245)
	pdf.SetTextColor(41, 76, 122)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(width, 9, dayLabel(day), "", 1, "L", true, 0, "")
	if note := deref(day.Note); note != "" {
		pdf.SetX(pdfMargin)
		pdf.SetTextColor(90, 90, 90)
		pdf.SetFont("Helvetica", "I", 9)
		pdf.CellFormat(width, 6, note, "", 1, "L", false, 0, "")
	}
	pdf.Ln(2)
}

func activityCard(pdf *fpdf.Fpdf, trip *types.Trip, act *types.Activity, width float64) {
	breakIfNeeded(pdf, 28)

	pdf.SetX(pdfMargin)
	if t := timeLabel(act); t != "" {
		pdf.SetFillColor(41, 76, 122)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(16, 7, t, "", 0, "C", true, 0, "")
		pdf.CellFormat(2, 7, "", "", 0, "L", false, 0, "")
	}

	pdf.SetTextColor(30, 30, 30)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(width-40, 7, act.Title, "", 0, "L", false, 0, "")

	pdf.SetFillColor(235, 235, 235)
	pdf.SetTextColor(90, 90, 90)
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(20, 7, act.Type, "", 1, "C", true, 0, "")

	if loc := deref(act.Location); loc != "" {
		pdf.SetX(pdfMargin)
		pdf.SetTextColor(41, 76, 200)
		pdf.SetFont("Helvetica", "U", 9)
		pdf.CellFormat(width, 6, loc, "", 1, "L", false, 0, mapSearchURL(loc))
	}
	if desc := deref(act.Description); desc != "" {
		pdf.SetX(pdfMargin)
		pdf.SetTextColor(60, 60, 60)
		pdf.SetFont("Helvetica", "", 9)
		pdf.MultiCell(width, 5, desc, "", "L", false)
	}
	if cost := costLabel(act, trip.Currency); cost != "" {
		pdf.SetX(pdfMargin)
		pdf.SetTextColor(30, 30, 30)
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(width, 6, "Cost: "+cost, "", 1, "L", false, 0, "")
	}
	if len(act.Images) > 0 {
		// Image fields hold references, not bytes, so they render as captions.
		refs := act.Images
		if len(refs) > maxThumbnails {
			refs = refs[:maxThumbnails]
		}
		pdf.SetX(pdfMargin)
		pdf.SetTextColor(120, 120, 120)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(width, 5, fmt.Sprintf("Images: %d attached", len(refs)), "", 1, "L", false, 0, "")
	}
	pdf.Ln(3)
}

func breakIfNeeded(pdf *fpdf.Fpdf, needed float64) {
	if pdf.GetY()+needed > pdfBreakAt {
		pdf.AddPage()
		pdf.SetY(pdfMargin)
	}
}
