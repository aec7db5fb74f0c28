package postgres

import (
	internal_store "github.com/wayplan/wayplan-backend/internal/store"
)

// pgStore bundles the individual stores behind the unified Store interface.
type pgStore struct {
	trips      internal_store.TripStore
	days       internal_store.DayStore
	activities internal_store.ActivityStore
}

var _ internal_store.Store = (*pgStore)(nil)

// NewStore creates a Store backed by the given connection pool.
func NewStore(db DB) internal_store.Store {
	return &pgStore{
		trips:      NewPgTripStore(db),
		days:       NewPgDayStore(db),
		activities: NewPgActivityStore(db),
	}
}

func (s *pgStore) Trips() internal_store.TripStore          { return s.trips }
func (s *pgStore) Days() internal_store.DayStore            { return s.days }
func (s *pgStore) Activities() internal_store.ActivityStore { return s.activities }
