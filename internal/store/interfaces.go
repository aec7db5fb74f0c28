// Package store defines the persistence interfaces consumed by the model
// layer. Cascade deletion of children is a contract of these interfaces, not
// a database feature: deleting a trip removes its days and activities, and
// deleting a day removes its activities, each inside a single transaction.
package store

import (
	"context"

	"github.com/wayplan/wayplan-backend/types"
)

// Store provides a unified handle on all data operations.
type Store interface {
	Trips() TripStore
	Days() DayStore
	Activities() ActivityStore
}

// TripStore handles trip-level data operations.
type TripStore interface {
	// CreateTrip inserts the trip together with its initial day set in one
	// transaction and returns the new trip ID.
	CreateTrip(ctx context.Context, trip *types.Trip, days []*types.Day) (string, error)
	// GetTrip returns the trip with its days and activities, days ordered by
	// date and activities by creation order.
	GetTrip(ctx context.Context, id string) (*types.Trip, error)
	// ListTrips returns all trips without their children, newest first.
	ListTrips(ctx context.Context) ([]*types.Trip, error)
	// UpdateTrip applies the non-nil fields of update and returns the
	// updated row.
	UpdateTrip(ctx context.Context, id string, update types.TripUpdate) (*types.Trip, error)
	// DeleteTrip removes the trip, its days and their activities in one
	// transaction.
	DeleteTrip(ctx context.Context, id string) error
	// ApplyDayPlan applies a reconciliation plan (creates, reindexes,
	// deletes with their activities) in one transaction.
	ApplyDayPlan(ctx context.Context, tripID string, plan types.DayPlan) error
}

// DayStore handles day-level data operations.
type DayStore interface {
	GetDay(ctx context.Context, id string) (*types.Day, error)
	// ListDays returns the trip's days ordered by date, without activities.
	ListDays(ctx context.Context, tripID string) ([]*types.Day, error)
	UpdateDayNote(ctx context.Context, id string, note *string) error
}

// ActivityStore handles activity-level data operations.
type ActivityStore interface {
	CreateActivity(ctx context.Context, activity *types.Activity) (string, error)
	GetActivity(ctx context.Context, id string) (*types.Activity, error)
	// ListTripActivities returns every activity belonging to the trip.
	ListTripActivities(ctx context.Context, tripID string) ([]*types.Activity, error)
	UpdateActivity(ctx context.Context, id string, update types.ActivityUpdate) (*types.Activity, error)
	DeleteActivity(ctx context.Context, id string) error
}
