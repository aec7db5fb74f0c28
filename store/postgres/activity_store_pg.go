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

var _ internal_store.ActivityStore = (*pgActivityStore)(nil)

type pgActivityStore struct {
	db DB
}

// NewPgActivityStore creates a new PostgreSQL activity store.
func NewPgActivityStore(db DB) internal_store.ActivityStore {
	return &pgActivityStore{db: db}
}

const activityColumns = `id, day_id, type, title, description, start_time, end_time,
               cost, cost_currency, location, images, created_at, updated_at`

func (s *pgActivityStore) CreateActivity(ctx context.Context, activity *types.Activity) (string, error) {
	log := logger.GetLogger()

	images := activity.Images
	if images == nil {
		images = []string{}
	}

	var id string
	err := s.db.QueryRow(ctx, `
        INSERT INTO activities (day_id, type, title, description, start_time, end_time, cost, cost_currency, location, images)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        RETURNING id`,
		activity.DayID,
		activity.Type,
		activity.Title,
		activity.Description,
		activity.StartTime,
		activity.EndTime,
		nullDecimal(activity.Cost),
		activity.CostCurrency,
		activity.Location,
		images,
	).Scan(&id)
	if err != nil {
		log.Errorw("Failed to create activity", "dayId", activity.DayID, "error", err)
		return "", fmt.Errorf("failed to insert activity: %w", err)
	}
	return id, nil
}

func (s *pgActivityStore) GetActivity(ctx context.Context, id string) (*types.Activity, error) {
	row := s.db.QueryRow(ctx, `
        SELECT `+activityColumns+`
        FROM activities WHERE id = $1`, id)

	activity, err := scanActivity(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("activity", id)
		}
		return nil, fmt.Errorf("failed to get activity %s: %w", id, err)
	}
	return activity, nil
}

func (s *pgActivityStore) ListTripActivities(ctx context.Context, tripID string) ([]*types.Activity, error) {
	rows, err := s.db.Query(ctx, `
        SELECT a.id, a.day_id, a.type, a.title, a.description, a.start_time, a.end_time,
               a.cost, a.cost_currency, a.location, a.images, a.created_at, a.updated_at
        FROM activities a
        JOIN days d ON d.id = a.day_id
        WHERE d.trip_id = $1
        ORDER BY a.created_at`, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to list trip activities: %w", err)
	}
	defer rows.Close()

	activities := []*types.Activity{}
	for rows.Next() {
		activity, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		activities = append(activities, activity)
	}
	return activities, rows.Err()
}

func (s *pgActivityStore) UpdateActivity(ctx context.Context, id string, update types.ActivityUpdate) (*types.Activity, error) {
	setClauses := []string{"updated_at = now()"}
	args := []any{}
	argPos := 1

	addSet := func(column string, value any) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argPos))
		args = append(args, value)
		argPos++
	}

	if update.DayID != nil {
		addSet("day_id", *update.DayID)
	}
	if update.Type != nil {
		addSet("type", *update.Type)
	}
	if update.Title != nil {
		addSet("title", *update.Title)
	}
	if update.Description != nil {
		addSet("description", *update.Description)
	}
	if update.StartTime != nil {
		addSet("start_time", *update.StartTime)
	}
	if update.EndTime != nil {
		addSet("end_time", *update.EndTime)
	}
	if update.Cost != nil {
		addSet("cost", nullDecimal(update.Cost))
	}
	if update.CostCurrency != nil {
		addSet("cost_currency", *update.CostCurrency)
	}
	if update.Location != nil {
		addSet("location", *update.Location)
	}
	if update.Images != nil {
		addSet("images", *update.Images)
	}

	query := fmt.Sprintf(`
        UPDATE activities SET %s WHERE id = $%d
        RETURNING `+activityColumns,
		strings.Join(setClauses, ", "), argPos)
	args = append(args, id)

	activity, err := scanActivity(s.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("activity", id)
		}
		return nil, fmt.Errorf("failed to update activity %s: %w", id, err)
	}
	return activity, nil
}

func (s *pgActivityStore) DeleteActivity(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM activities WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete activity %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("activity", id)
	}
	return nil
}

// scanActivity reads one activity row; works for both QueryRow and Rows.
func scanActivity(row pgx.Row) (*types.Activity, error) {
	var activity types.Activity
	var cost decimal.NullDecimal
	err := row.Scan(
		&activity.ID,
		&activity.DayID,
		&activity.Type,
		&activity.Title,
		&activity.Description,
		&activity.StartTime,
		&activity.EndTime,
		&cost,
		&activity.CostCurrency,
		&activity.Location,
		&activity.Images,
		&activity.CreatedAt,
		&activity.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	activity.Cost = decimalPtr(cost)
	return &activity, nil
}
