package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/wayplan/wayplan-backend/errors"
	"github.com/wayplan/wayplan-backend/logger"
	"github.com/wayplan/wayplan-backend/types"
)

func init() {
	logger.IsTest = true
}

func strPtr(s string) *string { return &s }

func testDate(day int) time.Time {
	return time.Date(2024, 3, day, 0, 0, 0, 0, time.UTC)
}

func TestPgTripStore_CreateTrip(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := NewPgTripStore(mock)
	budget := decimal.NewFromInt(1000)
	trip := &types.Trip{
		Title:       "Sri Lanka",
		Destination: "Colombo",
		StartDate:   testDate(5),
		EndDate:     testDate(7),
		Budget:      &budget,
		Currency:    "EUR",
	}
	days := []*types.Day{
		{Date: testDate(5), Index: 0},
		{Date: testDate(6), Index: 1},
		{Date: testDate(7), Index: 2},
	}

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO trips").
		WithArgs(trip.Title, trip.Destination, trip.StartDate, trip.EndDate,
			nullDecimal(trip.Budget), trip.Currency, trip.CoverImage).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow("trip-1"))
	for _, d := range days {
		mock.ExpectExec("INSERT INTO days").
			WithArgs("trip-1", d.Date, d.Index, d.Note).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
	}
	mock.ExpectCommit()

	id, err := store.CreateTrip(context.Background(), trip, days)
	require.NoError(t, err)
	assert.Equal(t, "trip-1", id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgTripStore_GetTrip_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := NewPgTripStore(mock)

	mock.ExpectQuery("SELECT id, title, destination").
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	_, err = store.GetTrip(context.Background(), "missing")
	require.Error(t, err)
	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.NotFoundError, appErr.Type)
}

func TestPgTripStore_DeleteTrip(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := NewPgTripStore(mock)

	t.Run("cascades activities and days in one transaction", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM activities USING days").
			WithArgs("trip-1").
			WillReturnResult(pgxmock.NewResult("DELETE", 4))
		mock.ExpectExec("DELETE FROM days WHERE trip_id").
			WithArgs("trip-1").
			WillReturnResult(pgxmock.NewResult("DELETE", 3))
		mock.ExpectExec("DELETE FROM trips WHERE id").
			WithArgs("trip-1").
			WillReturnResult(pgxmock.NewResult("DELETE", 1))
		mock.ExpectCommit()

		require.NoError(t, store.DeleteTrip(context.Background(), "trip-1"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back and reports not found for unknown trip", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM activities USING days").
			WithArgs("missing").
			WillReturnResult(pgxmock.NewResult("DELETE", 0))
		mock.ExpectExec("DELETE FROM days WHERE trip_id").
			WithArgs("missing").
			WillReturnResult(pgxmock.NewResult("DELETE", 0))
		mock.ExpectExec("DELETE FROM trips WHERE id").
			WithArgs("missing").
			WillReturnResult(pgxmock.NewResult("DELETE", 0))
		mock.ExpectRollback()

		err := store.DeleteTrip(context.Background(), "missing")
		require.Error(t, err)
		appErr, ok := err.(*apperrors.AppError)
		require.True(t, ok)
		assert.Equal(t, apperrors.NotFoundError, appErr.Type)
	})
}

func TestPgTripStore_ApplyDayPlan(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := NewPgTripStore(mock)

	plan := types.DayPlan{
		Delete:  []string{"day-old"},
		Reindex: []types.DayReindex{{DayID: "day-keep", Index: 0}},
		Create:  []*types.Day{{Date: testDate(8), Index: 1}},
	}

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM activities WHERE day_id").
		WithArgs(plan.Delete).
		WillReturnResult(pgxmock.NewResult("DELETE", 2))
	mock.ExpectExec("DELETE FROM days WHERE id").
		WithArgs(plan.Delete).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec("UPDATE days SET idx").
		WithArgs(0, "day-keep").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec("INSERT INTO days").
		WithArgs("trip-1", testDate(8), 1, (*string)(nil)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	require.NoError(t, store.ApplyDayPlan(context.Background(), "trip-1", plan))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgTripStore_ApplyDayPlan_EmptyIsNoop(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := NewPgTripStore(mock)

	// No expectations registered: an empty plan must not touch the database.
	require.NoError(t, store.ApplyDayPlan(context.Background(), "trip-1", types.DayPlan{}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgTripStore_UpdateTrip(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := NewPgTripStore(mock)
	newTitle := "Renamed"

	cols := []string{"id", "title", "destination", "start_date", "end_date",
		"budget", "currency", "cover_image", "created_at", "updated_at"}
	now := time.Now()

	mock.ExpectQuery("UPDATE trips SET").
		WithArgs(newTitle, "trip-1").
		WillReturnRows(pgxmock.NewRows(cols).AddRow(
			"trip-1", newTitle, "Colombo", testDate(5), testDate(7),
			decimal.NullDecimal{}, "EUR", (*string)(nil), now, now,
		))

	trip, err := store.UpdateTrip(context.Background(), "trip-1", types.TripUpdate{Title: &newTitle})
	require.NoError(t, err)
	assert.Equal(t, newTitle, trip.Title)
	assert.Nil(t, trip.Budget)
	assert.NoError(t, mock.ExpectationsWereMet())
}
