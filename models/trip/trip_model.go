// Package trip holds the trip coordinator: trip CRUD orchestration, day
// generation and reconciliation, and budget tracking.
package trip

import (
	"context"

	"github.com/shopspring/decimal"

	apperrors "github.com/wayplan/wayplan-backend/errors"
	"github.com/wayplan/wayplan-backend/internal/store"
	"github.com/wayplan/wayplan-backend/logger"
	"github.com/wayplan/wayplan-backend/types"
)

// RateConverter is the slice of the currency service the trip model depends
// on for budget calculations.
type RateConverter interface {
	TotalInCurrency(ctx context.Context, activities []*types.Activity, target string) (decimal.Decimal, error)
}

// TripModel coordinates trip operations against the store. Day records are
// derived state: the model keeps them consistent with the trip's date range.
type TripModel struct {
	store     store.Store
	converter RateConverter
}

// NewTripModel creates a trip coordinator.
func NewTripModel(s store.Store, converter RateConverter) *TripModel {
	return &TripModel{store: s, converter: converter}
}

// CreateTrip validates the trip, generates one day per calendar date in its
// range, and persists trip and days in one step.
func (m *TripModel) CreateTrip(ctx context.Context, trip *types.Trip) (*types.Trip, error) {
	if trip.Title == "" {
		return nil, apperrors.ValidationFailed("title is required", "")
	}
	if trip.StartDate.IsZero() || trip.EndDate.IsZero() {
		return nil, apperrors.ValidationFailed("startDate and endDate are required", "")
	}
	if trip.Budget != nil && trip.Budget.IsNegative() {
		return nil, apperrors.ValidationFailed("budget must not be negative", "")
	}
	if trip.Currency == "" {
		trip.Currency = types.DefaultCurrency
	}

	days := GenerateDays(trip.StartDate, trip.EndDate)
	id, err := m.store.Trips().CreateTrip(ctx, trip, days)
	if err != nil {
		return nil, err
	}
	return m.GetTrip(ctx, id)
}

// GetTrip returns the trip with its days and activities. Activity cost
// currencies default to the trip currency.
func (m *TripModel) GetTrip(ctx context.Context, id string) (*types.Trip, error) {
	trip, err := m.store.Trips().GetTrip(ctx, id)
	if err != nil {
		return nil, err
	}
	defaultCostCurrencies(trip)
	return trip, nil
}

// ListTrips returns all trips without children, newest first.
func (m *TripModel) ListTrips(ctx context.Context) ([]*types.Trip, error) {
	return m.store.Trips().ListTrips(ctx)
}

// UpdateTrip applies a partial update. When the update actually changes the
// start or end date (compared by instant equality; re-sending the stored
// value does not count), the day set is reconciled against the new range in
// one transaction.
func (m *TripModel) UpdateTrip(ctx context.Context, id string, update types.TripUpdate) (*types.Trip, error) {
	log := logger.GetLogger()

	current, err := m.store.Trips().GetTrip(ctx, id)
	if err != nil {
		return nil, err
	}
	if update.Budget != nil && update.Budget.IsNegative() {
		return nil, apperrors.ValidationFailed("budget must not be negative", "")
	}

	newStart, newEnd := current.StartDate, current.EndDate
	datesChanged := false
	if update.StartDate != nil && !update.StartDate.Equal(current.StartDate) {
		newStart = *update.StartDate
		datesChanged = true
	}
	if update.EndDate != nil && !update.EndDate.Equal(current.EndDate) {
		newEnd = *update.EndDate
		datesChanged = true
	}

	if _, err := m.store.Trips().UpdateTrip(ctx, id, update); err != nil {
		return nil, err
	}

	if datesChanged {
		plan := PlanReconciliation(current.Days, newStart, newEnd)
		log.Infow("Reconciling trip days",
			"tripId", id,
			"newStart", newStart.Format("2006-01-02"),
			"newEnd", newEnd.Format("2006-01-02"),
			"create", len(plan.Create),
			"delete", len(plan.Delete),
		)
		if err := m.store.Trips().ApplyDayPlan(ctx, id, plan); err != nil {
			return nil, err
		}
	}

	return m.GetTrip(ctx, id)
}

// DeleteTrip removes the trip and cascades to its days and activities.
func (m *TripModel) DeleteTrip(ctx context.Context, id string) error {
	return m.store.Trips().DeleteTrip(ctx, id)
}

// SetDayNote attaches a free-text note to a day, or clears it when note is
// nil.
func (m *TripModel) SetDayNote(ctx context.Context, dayID string, note *string) (*types.Day, error) {
	if err := m.store.Days().UpdateDayNote(ctx, dayID, note); err != nil {
		return nil, err
	}
	return m.store.Days().GetDay(ctx, dayID)
}

func defaultCostCurrencies(trip *types.Trip) {
	for _, day := range trip.Days {
		for _, act := range day.Activities {
			if act.Cost != nil && act.CostCurrency == nil {
				currency := trip.Currency
				act.CostCurrency = &currency
			}
		}
	}
}
