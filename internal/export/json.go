package export

import (
	"encoding/json"

	apperrors "github.com/wayplan/wayplan-backend/errors"
	"github.com/wayplan/wayplan-backend/types"
)

// JSON renders the trip as a re-importable document. The output shape is
// exactly what the JSON import parser accepts, so an export/import round
// trip reproduces the same days and activities.
func JSON(trip *types.Trip) ([]byte, error) {
	startDate := trip.StartDate
	endDate := trip.EndDate
	doc := types.TripImport{
		Title:       trip.Title,
		Destination: trip.Destination,
		StartDate:   &startDate,
		EndDate:     &endDate,
		Budget:      trip.Budget,
		Currency:    trip.Currency,
	}

	for _, day := range exportDays(trip) {
		date := day.Date
		imported := types.DayImport{
			Date: &date,
			Note: deref(day.Note),
		}
		for _, act := range day.Activities {
			imported.Activities = append(imported.Activities, types.ActivityImport{
				Title:        act.Title,
				Type:         act.Type,
				Description:  deref(act.Description),
				Location:     deref(act.Location),
				StartTime:    act.StartTime,
				Cost:         act.Cost,
				CostCurrency: deref(act.CostCurrency),
			})
		}
		doc.Days = append(doc.Days, imported)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ExportError, "failed to serialize trip")
	}
	return data, nil
}
