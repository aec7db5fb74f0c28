// Package activity holds the activity coordinator, including the
// day-assignment rule that keeps activities on the day matching their own
// timestamp.
package activity

import (
	"context"
	"time"

	apperrors "github.com/wayplan/wayplan-backend/errors"
	"github.com/wayplan/wayplan-backend/internal/store"
	"github.com/wayplan/wayplan-backend/logger"
	tripmodel "github.com/wayplan/wayplan-backend/models/trip"
	"github.com/wayplan/wayplan-backend/types"
)

// ActivityModel coordinates activity operations against the store.
type ActivityModel struct {
	store store.Store
}

// NewActivityModel creates an activity coordinator.
func NewActivityModel(s store.Store) *ActivityModel {
	return &ActivityModel{store: s}
}

// CreateActivity validates and persists an activity. When a start time is
// present and its calendar date disagrees with the target day's date, the
// activity is redirected to the day in the same trip matching its date. If
// no day matches, the requested day is used unchanged.
func (m *ActivityModel) CreateActivity(ctx context.Context, activity *types.Activity) (*types.Activity, error) {
	if activity.DayID == "" {
		return nil, apperrors.ValidationFailed("dayId is required", "")
	}
	if activity.Title == "" {
		return nil, apperrors.ValidationFailed("title is required", "")
	}
	if activity.Cost != nil && activity.Cost.IsNegative() {
		return nil, apperrors.ValidationFailed("cost must not be negative", "")
	}
	if activity.Type == "" {
		activity.Type = types.ActivityTypeActivity
	}

	if activity.StartTime != nil {
		dayID, err := m.resolveDay(ctx, activity.DayID, *activity.StartTime)
		if err != nil {
			return nil, err
		}
		activity.DayID = dayID
	} else if _, err := m.store.Days().GetDay(ctx, activity.DayID); err != nil {
		return nil, err
	}

	id, err := m.store.Activities().CreateActivity(ctx, activity)
	if err != nil {
		return nil, err
	}
	return m.store.Activities().GetActivity(ctx, id)
}

// UpdateActivity applies a partial update. An update carrying a start time
// re-runs the assignment rule whether or not it names a day explicitly:
// the rule treats the explicit day (or, absent one, the activity's current
// day) as the target and redirects when the dates disagree.
func (m *ActivityModel) UpdateActivity(ctx context.Context, id string, update types.ActivityUpdate) (*types.Activity, error) {
	if update.Cost != nil && update.Cost.IsNegative() {
		return nil, apperrors.ValidationFailed("cost must not be negative", "")
	}

	if update.StartTime != nil {
		current, err := m.store.Activities().GetActivity(ctx, id)
		if err != nil {
			return nil, err
		}
		targetDayID := current.DayID
		if update.DayID != nil {
			targetDayID = *update.DayID
		}
		resolved, err := m.resolveDay(ctx, targetDayID, *update.StartTime)
		if err != nil {
			return nil, err
		}
		update.DayID = &resolved
	} else if update.DayID != nil {
		if _, err := m.store.Days().GetDay(ctx, *update.DayID); err != nil {
			return nil, err
		}
	}

	return m.store.Activities().UpdateActivity(ctx, id, update)
}

// DeleteActivity removes the activity.
func (m *ActivityModel) DeleteActivity(ctx context.Context, id string) error {
	return m.store.Activities().DeleteActivity(ctx, id)
}

// resolveDay applies the day-assignment rule: returns the ID of the day in
// the same trip whose date matches startTime's calendar date, or the
// requested day when none matches.
func (m *ActivityModel) resolveDay(ctx context.Context, dayID string, startTime time.Time) (string, error) {
	log := logger.GetLogger()

	day, err := m.store.Days().GetDay(ctx, dayID)
	if err != nil {
		return "", err
	}

	wantDate := tripmodel.TruncateToDay(startTime)
	if tripmodel.TruncateToDay(day.Date).Equal(wantDate) {
		return day.ID, nil
	}

	days, err := m.store.Days().ListDays(ctx, day.TripID)
	if err != nil {
		return "", err
	}
	for _, candidate := range days {
		if tripmodel.TruncateToDay(candidate.Date).Equal(wantDate) {
			log.Infow("Reassigning activity to day matching its start time",
				"requestedDay", dayID,
				"assignedDay", candidate.ID,
				"date", wantDate.Format("2006-01-02"),
			)
			return candidate.ID, nil
		}
	}

	// No day in the trip matches the activity's own date; keep the
	// requested day.
	return day.ID, nil
}
