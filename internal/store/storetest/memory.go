// Package storetest provides an in-memory Store implementation for tests.
// It honors the same cascade contract as the postgres stores.
package storetest

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	apperrors "github.com/wayplan/wayplan-backend/errors"
	"github.com/wayplan/wayplan-backend/internal/store"
	"github.com/wayplan/wayplan-backend/types"
)

// MemoryStore is a thread-safe in-memory implementation of store.Store.
type MemoryStore struct {
	mu         sync.Mutex
	trips      map[string]*types.Trip
	days       map[string]*types.Day
	activities map[string]*types.Activity
	seq        int
}

var _ store.Store = (*MemoryStore)(nil)
var _ store.TripStore = (*MemoryStore)(nil)
var _ store.DayStore = (*MemoryStore)(nil)
var _ store.ActivityStore = (*MemoryStore)(nil)

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		trips:      make(map[string]*types.Trip),
		days:       make(map[string]*types.Day),
		activities: make(map[string]*types.Activity),
	}
}

func (m *MemoryStore) Trips() store.TripStore          { return m }
func (m *MemoryStore) Days() store.DayStore            { return m }
func (m *MemoryStore) Activities() store.ActivityStore { return m }

// nextID produces deterministic IDs so tests can assert against them.
func (m *MemoryStore) nextID(prefix string) string {
	m.seq++
	return fmt.Sprintf("%s-%d", prefix, m.seq)
}

// stamp produces a strictly increasing timestamp to preserve insertion order.
func (m *MemoryStore) stamp() time.Time {
	m.seq++
	return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(m.seq) * time.Second)
}

func (m *MemoryStore) CreateTrip(_ context.Context, trip *types.Trip, days []*types.Day) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t := *trip
	t.ID = m.nextID("trip")
	t.CreatedAt = m.stamp()
	t.UpdatedAt = t.CreatedAt
	t.Days = nil
	m.trips[t.ID] = &t

	for _, day := range days {
		d := *day
		d.ID = m.nextID("day")
		d.TripID = t.ID
		d.Activities = nil
		m.days[d.ID] = &d
	}
	return t.ID, nil
}

func (m *MemoryStore) GetTrip(_ context.Context, id string) (*types.Trip, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	trip, ok := m.trips[id]
	if !ok {
		return nil, apperrors.NotFound("trip", id)
	}
	out := *trip
	out.Days = m.tripDaysLocked(id, true)
	return &out, nil
}

func (m *MemoryStore) ListTrips(_ context.Context) ([]*types.Trip, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	trips := []*types.Trip{}
	for _, t := range m.trips {
		out := *t
		trips = append(trips, &out)
	}
	sort.Slice(trips, func(i, j int) bool { return trips[i].CreatedAt.After(trips[j].CreatedAt) })
	return trips, nil
}

func (m *MemoryStore) UpdateTrip(_ context.Context, id string, update types.TripUpdate) (*types.Trip, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	trip, ok := m.trips[id]
	if !ok {
		return nil, apperrors.NotFound("trip", id)
	}
	if update.Title != nil {
		trip.Title = *update.Title
	}
	if update.Destination != nil {
		trip.Destination = *update.Destination
	}
	if update.StartDate != nil {
		trip.StartDate = *update.StartDate
	}
	if update.EndDate != nil {
		trip.EndDate = *update.EndDate
	}
	if update.Budget != nil {
		b := *update.Budget
		trip.Budget = &b
	}
	if update.Currency != nil {
		trip.Currency = *update.Currency
	}
	if update.CoverImage != nil {
		c := *update.CoverImage
		trip.CoverImage = &c
	}
	trip.UpdatedAt = m.stamp()
	out := *trip
	return &out, nil
}

func (m *MemoryStore) DeleteTrip(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.trips[id]; !ok {
		return apperrors.NotFound("trip", id)
	}
	for dayID, day := range m.days {
		if day.TripID != id {
			continue
		}
		for actID, act := range m.activities {
			if act.DayID == dayID {
				delete(m.activities, actID)
			}
		}
		delete(m.days, dayID)
	}
	delete(m.trips, id)
	return nil
}

func (m *MemoryStore) ApplyDayPlan(_ context.Context, tripID string, plan types.DayPlan) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, dayID := range plan.Delete {
		for actID, act := range m.activities {
			if act.DayID == dayID {
				delete(m.activities, actID)
			}
		}
		delete(m.days, dayID)
	}
	for _, r := range plan.Reindex {
		if day, ok := m.days[r.DayID]; ok {
			day.Index = r.Index
		}
	}
	for _, day := range plan.Create {
		d := *day
		d.ID = m.nextID("day")
		d.TripID = tripID
		m.days[d.ID] = &d
	}
	return nil
}

func (m *MemoryStore) GetDay(_ context.Context, id string) (*types.Day, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	day, ok := m.days[id]
	if !ok {
		return nil, apperrors.NotFound("day", id)
	}
	out := *day
	return &out, nil
}

func (m *MemoryStore) ListDays(_ context.Context, tripID string) ([]*types.Day, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tripDaysLocked(tripID, false), nil
}

func (m *MemoryStore) UpdateDayNote(_ context.Context, id string, note *string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	day, ok := m.days[id]
	if !ok {
		return apperrors.NotFound("day", id)
	}
	day.Note = note
	return nil
}

func (m *MemoryStore) CreateActivity(_ context.Context, activity *types.Activity) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.days[activity.DayID]; !ok {
		return "", apperrors.NotFound("day", activity.DayID)
	}
	a := *activity
	a.ID = m.nextID("act")
	a.CreatedAt = m.stamp()
	a.UpdatedAt = a.CreatedAt
	m.activities[a.ID] = &a
	return a.ID, nil
}

func (m *MemoryStore) GetActivity(_ context.Context, id string) (*types.Activity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	activity, ok := m.activities[id]
	if !ok {
		return nil, apperrors.NotFound("activity", id)
	}
	out := *activity
	return &out, nil
}

func (m *MemoryStore) ListTripActivities(_ context.Context, tripID string) ([]*types.Activity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	activities := []*types.Activity{}
	for _, act := range m.activities {
		if day, ok := m.days[act.DayID]; ok && day.TripID == tripID {
			out := *act
			activities = append(activities, &out)
		}
	}
	sort.Slice(activities, func(i, j int) bool {
		return activities[i].CreatedAt.Before(activities[j].CreatedAt)
	})
	return activities, nil
}

func (m *MemoryStore) UpdateActivity(_ context.Context, id string, update types.ActivityUpdate) (*types.Activity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	activity, ok := m.activities[id]
	if !ok {
		return nil, apperrors.NotFound("activity", id)
	}
	if update.DayID != nil {
		activity.DayID = *update.DayID
	}
	if update.Type != nil {
		activity.Type = *update.Type
	}
	if update.Title != nil {
		activity.Title = *update.Title
	}
	if update.Description != nil {
		d := *update.Description
		activity.Description = &d
	}
	if update.StartTime != nil {
		st := *update.StartTime
		activity.StartTime = &st
	}
	if update.EndTime != nil {
		et := *update.EndTime
		activity.EndTime = &et
	}
	if update.Cost != nil {
		c := *update.Cost
		activity.Cost = &c
	}
	if update.CostCurrency != nil {
		cc := *update.CostCurrency
		activity.CostCurrency = &cc
	}
	if update.Location != nil {
		l := *update.Location
		activity.Location = &l
	}
	if update.Images != nil {
		activity.Images = append([]string(nil), (*update.Images)...)
	}
	activity.UpdatedAt = m.stamp()
	out := *activity
	return &out, nil
}

func (m *MemoryStore) DeleteActivity(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.activities[id]; !ok {
		return apperrors.NotFound("activity", id)
	}
	delete(m.activities, id)
	return nil
}

// tripDaysLocked returns the trip's days sorted by date, optionally with
// activities attached in creation order. Callers must hold mu.
func (m *MemoryStore) tripDaysLocked(tripID string, withActivities bool) []*types.Day {
	days := []*types.Day{}
	for _, day := range m.days {
		if day.TripID != tripID {
			continue
		}
		out := *day
		out.Activities = nil
		days = append(days, &out)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date.Before(days[j].Date) })

	if withActivities {
		for _, day := range days {
			var acts []*types.Activity
			for _, act := range m.activities {
				if act.DayID == day.ID {
					a := *act
					acts = append(acts, &a)
				}
			}
			sort.Slice(acts, func(i, j int) bool { return acts[i].CreatedAt.Before(acts[j].CreatedAt) })
			day.Activities = acts
		}
	}
	return days
}
