package handlers

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/wayplan/wayplan-backend/errors"
	"github.com/wayplan/wayplan-backend/internal/importer"
	"github.com/wayplan/wayplan-backend/logger"
	"github.com/wayplan/wayplan-backend/models/activity"
	"github.com/wayplan/wayplan-backend/models/trip"
	"github.com/wayplan/wayplan-backend/types"
)

const maxImportSize = 10 << 20 // 10 MiB

// ImportHandler turns an uploaded file into a persisted trip. Persistence
// goes through the ordinary trip and activity models, so day reconciliation
// and the day-assignment rule apply to imported data too.
type ImportHandler struct {
	tripModel     *trip.TripModel
	activityModel *activity.ActivityModel
}

func NewImportHandler(tripModel *trip.TripModel, activityModel *activity.ActivityModel) *ImportHandler {
	return &ImportHandler{tripModel: tripModel, activityModel: activityModel}
}

// ImportResult is the import response: the created trip, how many
// activities made it in, and the fields the parser could not determine.
type ImportResult struct {
	Trip     *types.Trip `json:"trip"`
	Imported int         `json:"imported"`
	Skipped  int         `json:"skipped"`
	Missing  []string    `json:"missing,omitempty"`
}

// ImportTrip handles POST /v1/trips/import. A parse failure aborts before
// anything is persisted; a failing activity row is skipped, not fatal.
func (h *ImportHandler) ImportTrip(c *gin.Context) {
	log := logger.GetLogger()

	fileHeader, err := c.FormFile("file")
	if err != nil {
		_ = c.Error(apperrors.ValidationFailed("missing file upload", `expected a multipart "file" field`))
		return
	}
	if fileHeader.Size > maxImportSize {
		_ = c.Error(apperrors.ValidationFailed("file too large", "imports are limited to 10 MiB"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		_ = c.Error(apperrors.Wrap(err, apperrors.ServerError, "failed to read upload"))
		return
	}
	defer file.Close()
	data, err := io.ReadAll(io.LimitReader(file, maxImportSize))
	if err != nil {
		_ = c.Error(apperrors.Wrap(err, apperrors.ServerError, "failed to read upload"))
		return
	}

	imported, err := importer.Parse(fileHeader.Filename, data)
	if err != nil {
		_ = c.Error(err)
		return
	}

	ctx := c.Request.Context()
	created, err := h.tripModel.CreateTrip(ctx, tripFromImport(imported))
	if err != nil {
		_ = c.Error(err)
		return
	}

	count, skipped := 0, 0
	for _, act := range activitiesWithDays(imported, created) {
		if _, err := h.activityModel.CreateActivity(ctx, act); err != nil {
			log.Warnw("Skipping imported activity",
				"trip", created.ID, "title", act.Title, "error", err)
			skipped++
			continue
		}
		count++
	}

	h.applyDayNotes(ctx, imported, created)

	final, err := h.tripModel.GetTrip(ctx, created.ID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, ImportResult{
		Trip:     final,
		Imported: count,
		Skipped:  skipped,
		Missing:  imported.Missing,
	})
}

// applyDayNotes carries imported day notes over to the created days. A note
// that cannot be placed is dropped with a warning, not an error.
func (h *ImportHandler) applyDayNotes(ctx context.Context, imported *types.TripImport, created *types.Trip) {
	log := logger.GetLogger()

	byDate := make(map[time.Time]string, len(created.Days))
	for _, day := range created.Days {
		byDate[trip.TruncateToDay(day.Date)] = day.ID
	}
	for _, day := range imported.Days {
		if day.Note == "" || day.Date == nil {
			continue
		}
		dayID, ok := byDate[trip.TruncateToDay(*day.Date)]
		if !ok {
			continue
		}
		note := day.Note
		if _, err := h.tripModel.SetDayNote(ctx, dayID, &note); err != nil {
			log.Warnw("Skipping imported day note", "trip", created.ID, "day", dayID, "error", err)
		}
	}
}

// tripFromImport builds the trip to create, inferring a date range from the
// imported days or activity times when the file did not state one. With no
// dates at all the trip defaults to a single day today.
func tripFromImport(imported *types.TripImport) *types.Trip {
	t := &types.Trip{
		Title:       imported.Title,
		Destination: imported.Destination,
		Budget:      imported.Budget,
		Currency:    imported.Currency,
	}

	start, end := imported.StartDate, imported.EndDate
	if start == nil || end == nil {
		if lo, hi, ok := dateBounds(imported); ok {
			if start == nil {
				start = &lo
			}
			if end == nil {
				end = &hi
			}
		}
	}
	if start == nil {
		today := trip.TruncateToDay(time.Now().UTC())
		start = &today
	}
	if end == nil || end.Before(*start) {
		end = start
	}
	t.StartDate, t.EndDate = *start, *end
	return t
}

func dateBounds(imported *types.TripImport) (time.Time, time.Time, bool) {
	var lo, hi time.Time
	add := func(ts time.Time) {
		d := trip.TruncateToDay(ts)
		if lo.IsZero() || d.Before(lo) {
			lo = d
		}
		if hi.IsZero() || d.After(hi) {
			hi = d
		}
	}
	for _, day := range imported.Days {
		if day.Date != nil {
			add(*day.Date)
		}
	}
	for _, act := range imported.AllActivities() {
		if act.StartTime != nil {
			add(*act.StartTime)
		}
	}
	return lo, hi, !lo.IsZero()
}

// activitiesWithDays maps every imported activity to a day of the created
// trip: its own day's date when grouped, its start time's date otherwise,
// falling back to the first day. The day-assignment rule still corrects
// timed activities on creation.
func activitiesWithDays(imported *types.TripImport, created *types.Trip) []*types.Activity {
	if len(created.Days) == 0 {
		return nil
	}
	byDate := make(map[time.Time]string, len(created.Days))
	for _, day := range created.Days {
		byDate[trip.TruncateToDay(day.Date)] = day.ID
	}
	fallback := created.Days[0].ID

	dayFor := func(date *time.Time) string {
		if date == nil {
			return fallback
		}
		if id, ok := byDate[trip.TruncateToDay(*date)]; ok {
			return id
		}
		return fallback
	}

	var out []*types.Activity
	appendActivity := func(imp types.ActivityImport, dayID string) {
		act := &types.Activity{
			DayID:     dayID,
			Title:     imp.Title,
			Type:      imp.Type,
			StartTime: imp.StartTime,
			Cost:      imp.Cost,
		}
		if imp.Description != "" {
			act.Description = &imp.Description
		}
		if imp.Location != "" {
			act.Location = &imp.Location
		}
		if imp.CostCurrency != "" {
			act.CostCurrency = &imp.CostCurrency
		}
		out = append(out, act)
	}

	if len(imported.Days) > 0 {
		for _, day := range imported.Days {
			dayID := dayFor(day.Date)
			for _, imp := range day.Activities {
				appendActivity(imp, dayID)
			}
		}
		return out
	}
	for _, imp := range imported.Activities {
		appendActivity(imp, dayFor(imp.StartTime))
	}
	return out
}
