package importer

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	apperrors "github.com/wayplan/wayplan-backend/errors"
)

func TestParse_UnsupportedExtension(t *testing.T) {
	_, err := Parse("itinerary.docx", []byte("whatever"))
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ImportParseError, appErr.Type)
}

func TestParse_TitleFallsBackToFilename(t *testing.T) {
	data := []byte("Activity,Cost\nBreakfast,12.50 EUR\n")

	imported, err := Parse("japan_spring.csv", data)
	require.NoError(t, err)
	assert.Equal(t, "japan spring", imported.Title)
	assert.Contains(t, imported.Missing, "title")
}

func TestParse_MislabeledBinaryRejected(t *testing.T) {
	_, err := Parse("itinerary.pdf", []byte("plain text, not a pdf"))
	assert.Error(t, err)

	_, err = Parse("itinerary.xlsx", []byte("plain text, not a spreadsheet"))
	assert.Error(t, err)
}

func TestJSONParser_DaysTree(t *testing.T) {
	data := []byte(`{
		"title": "Japan Spring",
		"destination": "Kyoto",
		"startDate": "2024-03-04T00:00:00Z",
		"endDate": "2024-03-06T00:00:00Z",
		"currency": "EUR",
		"days": [
			{"date": "2024-03-04T00:00:00Z", "activities": [
				{"title": "Breakfast", "type": "food", "cost": "12.5", "costCurrency": "USD"}
			]}
		]
	}`)

	imported, err := JSONParser{}.Parse(data)
	require.NoError(t, err)
	assert.Equal(t, "Japan Spring", imported.Title)
	require.Len(t, imported.Days, 1)
	require.Len(t, imported.Days[0].Activities, 1)
	assert.True(t, imported.Days[0].Activities[0].Cost.Equal(decimal.RequireFromString("12.5")))
	// Budget was not in the document.
	assert.Contains(t, imported.Missing, "budget")
	assert.NotContains(t, imported.Missing, "startDate")
}

func TestJSONParser_FlatActivities(t *testing.T) {
	data := []byte(`{"title": "Weekend", "activities": [{"title": "Hike"}, {"title": "Dinner", "type": "food"}]}`)

	imported, err := JSONParser{}.Parse(data)
	require.NoError(t, err)
	assert.Empty(t, imported.Days)
	require.Len(t, imported.Activities, 2)
	assert.Equal(t, "Hike", imported.AllActivities()[0].Title)
}

func TestJSONParser_InvalidJSON(t *testing.T) {
	_, err := JSONParser{}.Parse([]byte("{not json"))
	assert.Error(t, err)
}

func TestCSVParser_SniffsHeadersBySubstring(t *testing.T) {
	data := []byte(`Activity Title,Start Date,Start Time,Category,Place,Total Cost,Currency
Breakfast,2024-03-04,08:30,food,Cafe,12.50,USD
Temple walk,2024-03-04,14:00,,Fushimi Inari,,
,2024-03-04,,,,,
`)

	imported, err := CSVParser{}.Parse(data)
	require.NoError(t, err)
	// The titleless third row is skipped, not fatal.
	require.Len(t, imported.Activities, 2)

	first := imported.Activities[0]
	assert.Equal(t, "Breakfast", first.Title)
	assert.Equal(t, "food", first.Type)
	assert.Equal(t, "USD", first.CostCurrency)
	require.NotNil(t, first.StartTime)
	assert.Equal(t, 8, first.StartTime.Hour())
	assert.Equal(t, 30, first.StartTime.Minute())

	second := imported.Activities[1]
	assert.Equal(t, "activity", second.Type)
	assert.Nil(t, second.Cost)
}

func TestCSVParser_NoTitleColumn(t *testing.T) {
	_, err := CSVParser{}.Parse([]byte("Date,Cost\n2024-03-04,10\n"))
	assert.Error(t, err)
}

func TestXLSXParser_HistoricalHeaderVariants(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	headers := []string{"Name", "Day Date", "Start Time", "Category", "Notes", "Place", "Price"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		require.NoError(t, err)
		require.NoError(t, f.SetCellValue(sheet, cell, h))
	}
	row := []string{"Breakfast", "2024-03-04", "08:30", "food", "Quick one", "Cafe", "12.50 EUR"}
	for i, v := range row {
		cell, err := excelize.CoordinatesToCellName(i+1, 2)
		require.NoError(t, err)
		require.NoError(t, f.SetCellValue(sheet, cell, v))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	imported, err := XLSXParser{}.Parse(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, imported.Activities, 1)

	act := imported.Activities[0]
	assert.Equal(t, "Breakfast", act.Title)
	assert.Equal(t, "Quick one", act.Description)
	assert.Equal(t, "EUR", act.CostCurrency)
	require.NotNil(t, act.Cost)
	assert.True(t, act.Cost.Equal(decimal.RequireFromString("12.5")))
	require.NotNil(t, act.StartTime)
	assert.Equal(t, 8, act.StartTime.Hour())
}

func TestXLSXParser_LowercaseHeadersDoNotMatch(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetCellValue(sheet, "A1", "activity"))
	require.NoError(t, f.SetCellValue(sheet, "A2", "Breakfast"))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	// Header matching is case-sensitive for spreadsheets.
	_, err = XLSXParser{}.Parse(buf.Bytes())
	assert.Error(t, err)
}

func TestPDFParser_Garbage(t *testing.T) {
	_, err := PDFParser{}.Parse([]byte("not a pdf at all"))
	assert.Error(t, err)
}
