package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	apperrors "github.com/wayplan/wayplan-backend/errors"
	internal_store "github.com/wayplan/wayplan-backend/internal/store"
	"github.com/wayplan/wayplan-backend/types"
)

var _ internal_store.DayStore = (*pgDayStore)(nil)

type pgDayStore struct {
	db DB
}

// NewPgDayStore creates a new PostgreSQL day store.
func NewPgDayStore(db DB) internal_store.DayStore {
	return &pgDayStore{db: db}
}

func (s *pgDayStore) GetDay(ctx context.Context, id string) (*types.Day, error) {
	var day types.Day
	err := s.db.QueryRow(ctx, `
        SELECT id, trip_id, date, idx, note
        FROM days WHERE id = $1`, id).Scan(
		&day.ID, &day.TripID, &day.Date, &day.Index, &day.Note,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("day", id)
		}
		return nil, fmt.Errorf("failed to get day %s: %w", id, err)
	}
	return &day, nil
}

func (s *pgDayStore) ListDays(ctx context.Context, tripID string) ([]*types.Day, error) {
	return scanDays(ctx, s.db, tripID)
}

func (s *pgDayStore) UpdateDayNote(ctx context.Context, id string, note *string) error {
	tag, err := s.db.Exec(ctx, `UPDATE days SET note = $1 WHERE id = $2`, note, id)
	if err != nil {
		return fmt.Errorf("failed to update day note: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("day", id)
	}
	return nil
}
