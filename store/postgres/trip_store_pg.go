package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	apperrors "github.com/wayplan/wayplan-backend/errors"
	internal_store "github.com/wayplan/wayplan-backend/internal/store"
	"github.com/wayplan/wayplan-backend/logger"
	"github.com/wayplan/wayplan-backend/types"
)

var _ internal_store.TripStore = (*pgTripStore)(nil)

type pgTripStore struct {
	db DB
}

// NewPgTripStore creates a new PostgreSQL trip store.
func NewPgTripStore(db DB) internal_store.TripStore {
	return &pgTripStore{db: db}
}

// CreateTrip inserts a new trip record and its generated day set within a
// single transaction.
func (s *pgTripStore) CreateTrip(ctx context.Context, trip *types.Trip, days []*types.Day) (string, error) {
	log := logger.GetLogger()
	var tripID string

	err := WithTx(ctx, s.db, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
            INSERT INTO trips (title, destination, start_date, end_date, budget, currency, cover_image)
            VALUES ($1, $2, $3, $4, $5, $6, $7)
            RETURNING id`,
			trip.Title,
			trip.Destination,
			trip.StartDate,
			trip.EndDate,
			nullDecimal(trip.Budget),
			trip.Currency,
			trip.CoverImage,
		).Scan(&tripID)
		if err != nil {
			return fmt.Errorf("failed to insert trip: %w", err)
		}

		for _, day := range days {
			_, err = tx.Exec(ctx, `
                INSERT INTO days (trip_id, date, idx, note)
                VALUES ($1, $2, $3, $4)`,
				tripID, day.Date, day.Index, day.Note,
			)
			if err != nil {
				return fmt.Errorf("failed to insert day %s: %w", day.Date.Format("2006-01-02"), err)
			}
		}
		return nil
	})
	if err != nil {
		log.Errorw("CreateTrip transaction failed", "error", err)
		return "", err
	}

	log.Infow("Created trip", "tripId", tripID, "days", len(days))
	return tripID, nil
}

// GetTrip retrieves a single trip with its days and activities.
func (s *pgTripStore) GetTrip(ctx context.Context, id string) (*types.Trip, error) {
	log := logger.GetLogger()

	var trip types.Trip
	var budget decimal.NullDecimal
	err := s.db.QueryRow(ctx, `
        SELECT id, title, destination, start_date, end_date, budget, currency, cover_image, created_at, updated_at
        FROM trips WHERE id = $1`, id).Scan(
		&trip.ID,
		&trip.Title,
		&trip.Destination,
		&trip.StartDate,
		&trip.EndDate,
		&budget,
		&trip.Currency,
		&trip.CoverImage,
		&trip.CreatedAt,
		&trip.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("trip", id)
		}
		log.Errorw("Failed to get trip", "tripId", id, "error", err)
		return nil, fmt.Errorf("failed to execute GetTrip query: %w", err)
	}
	trip.Budget = decimalPtr(budget)

	days, err := scanDays(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	trip.Days = days

	if err := attachActivities(ctx, s.db, &trip); err != nil {
		return nil, err
	}
	return &trip, nil
}

// ListTrips returns all trips without children, newest first.
func (s *pgTripStore) ListTrips(ctx context.Context) ([]*types.Trip, error) {
	rows, err := s.db.Query(ctx, `
        SELECT id, title, destination, start_date, end_date, budget, currency, cover_image, created_at, updated_at
        FROM trips ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list trips: %w", err)
	}
	defer rows.Close()

	trips := []*types.Trip{}
	for rows.Next() {
		var trip types.Trip
		var budget decimal.NullDecimal
		if err := rows.Scan(
			&trip.ID, &trip.Title, &trip.Destination, &trip.StartDate, &trip.EndDate,
			&budget, &trip.Currency, &trip.CoverImage, &trip.CreatedAt, &trip.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan trip row: %w", err)
		}
		trip.Budget = decimalPtr(budget)
		trips = append(trips, &trip)
	}
	return trips, rows.Err()
}

// UpdateTrip applies the non-nil fields of update and returns the updated
// trip row (without children).
func (s *pgTripStore) UpdateTrip(ctx context.Context, id string, update types.TripUpdate) (*types.Trip, error) {
	setClauses := []string{"updated_at = now()"}
	args := []any{}
	argPos := 1

	addSet := func(column string, value any) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argPos))
		args = append(args, value)
		argPos++
	}

	if update.Title != nil {
		addSet("title", *update.Title)
	}
	if update.Destination != nil {
		addSet("destination", *update.Destination)
	}
	if update.StartDate != nil {
		addSet("start_date", *update.StartDate)
	}
	if update.EndDate != nil {
		addSet("end_date", *update.EndDate)
	}
	if update.Budget != nil {
		addSet("budget", nullDecimal(update.Budget))
	}
	if update.Currency != nil {
		addSet("currency", *update.Currency)
	}
	if update.CoverImage != nil {
		addSet("cover_image", *update.CoverImage)
	}

	query := fmt.Sprintf(`
        UPDATE trips SET %s WHERE id = $%d
        RETURNING id, title, destination, start_date, end_date, budget, currency, cover_image, created_at, updated_at`,
		strings.Join(setClauses, ", "), argPos)
	args = append(args, id)

	var trip types.Trip
	var budget decimal.NullDecimal
	err := s.db.QueryRow(ctx, query, args...).Scan(
		&trip.ID, &trip.Title, &trip.Destination, &trip.StartDate, &trip.EndDate,
		&budget, &trip.Currency, &trip.CoverImage, &trip.CreatedAt, &trip.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("trip", id)
		}
		return nil, fmt.Errorf("failed to update trip %s: %w", id, err)
	}
	trip.Budget = decimalPtr(budget)
	return &trip, nil
}

// DeleteTrip removes the trip, its days and their activities in one
// transaction. Children are deleted explicitly; the schema does not rely on
// ON DELETE CASCADE.
func (s *pgTripStore) DeleteTrip(ctx context.Context, id string) error {
	log := logger.GetLogger()

	return WithTx(ctx, s.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `
            DELETE FROM activities USING days
            WHERE activities.day_id = days.id AND days.trip_id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete trip activities: %w", err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM days WHERE trip_id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete trip days: %w", err)
		}
		tag, err := tx.Exec(ctx, `DELETE FROM trips WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to delete trip: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.NotFound("trip", id)
		}
		log.Infow("Deleted trip", "tripId", id)
		return nil
	})
}

// ApplyDayPlan applies a reconciliation plan in one transaction: activities
// of removed days go first, then the days themselves, then index updates for
// survivors, then inserts for new dates.
func (s *pgTripStore) ApplyDayPlan(ctx context.Context, tripID string, plan types.DayPlan) error {
	if plan.Empty() {
		return nil
	}
	log := logger.GetLogger()

	err := WithTx(ctx, s.db, func(tx pgx.Tx) error {
		if len(plan.Delete) > 0 {
			if _, err := tx.Exec(ctx, `DELETE FROM activities WHERE day_id = ANY($1)`, plan.Delete); err != nil {
				return fmt.Errorf("failed to delete activities of removed days: %w", err)
			}
			if _, err := tx.Exec(ctx, `DELETE FROM days WHERE id = ANY($1)`, plan.Delete); err != nil {
				return fmt.Errorf("failed to delete removed days: %w", err)
			}
		}
		for _, r := range plan.Reindex {
			if _, err := tx.Exec(ctx, `UPDATE days SET idx = $1 WHERE id = $2`, r.Index, r.DayID); err != nil {
				return fmt.Errorf("failed to reindex day %s: %w", r.DayID, err)
			}
		}
		for _, day := range plan.Create {
			if _, err := tx.Exec(ctx, `
                INSERT INTO days (trip_id, date, idx, note)
                VALUES ($1, $2, $3, $4)`,
				tripID, day.Date, day.Index, day.Note,
			); err != nil {
				return fmt.Errorf("failed to insert day %s: %w", day.Date.Format("2006-01-02"), err)
			}
		}
		return nil
	})
	if err != nil {
		log.Errorw("ApplyDayPlan transaction failed", "tripId", tripID, "error", err)
		return err
	}

	log.Infow("Applied day plan",
		"tripId", tripID,
		"created", len(plan.Create),
		"reindexed", len(plan.Reindex),
		"deleted", len(plan.Delete),
	)
	return nil
}

// scanDays loads a trip's days ordered by date, without activities.
func scanDays(ctx context.Context, db DB, tripID string) ([]*types.Day, error) {
	rows, err := db.Query(ctx, `
        SELECT id, trip_id, date, idx, note
        FROM days WHERE trip_id = $1 ORDER BY date`, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to list days: %w", err)
	}
	defer rows.Close()

	days := []*types.Day{}
	for rows.Next() {
		var day types.Day
		if err := rows.Scan(&day.ID, &day.TripID, &day.Date, &day.Index, &day.Note); err != nil {
			return nil, fmt.Errorf("failed to scan day row: %w", err)
		}
		days = append(days, &day)
	}
	return days, rows.Err()
}

// attachActivities loads all of the trip's activities and attaches them to
// the matching days in creation order.
func attachActivities(ctx context.Context, db DB, trip *types.Trip) error {
	rows, err := db.Query(ctx, `
        SELECT a.id, a.day_id, a.type, a.title, a.description, a.start_time, a.end_time,
               a.cost, a.cost_currency, a.location, a.images, a.created_at, a.updated_at
        FROM activities a
        JOIN days d ON d.id = a.day_id
        WHERE d.trip_id = $1
        ORDER BY a.created_at`, trip.ID)
	if err != nil {
		return fmt.Errorf("failed to list trip activities: %w", err)
	}
	defer rows.Close()

	byDay := make(map[string]*types.Day, len(trip.Days))
	for _, d := range trip.Days {
		byDay[d.ID] = d
	}

	for rows.Next() {
		activity, err := scanActivity(rows)
		if err != nil {
			return err
		}
		if day, ok := byDay[activity.DayID]; ok {
			day.Activities = append(day.Activities, activity)
		}
	}
	return rows.Err()
}
