package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/campushub/internal/app/models"
	"github.com/yigit/campushub/internal/db"
	"github.com/yigit/campushub/internal/pkg/apperrors"
	"github.com/yigit/campushub/internal/pkg/dberrors"
)

// ResultRepository handles database operations for event results
type ResultRepository struct {
	db *db.PostgresDB
}

// NewResultRepository creates a new ResultRepository
func NewResultRepository(database *db.PostgresDB) *ResultRepository {
	return &ResultRepository{db: database}
}

// ExistsForEvent reports whether the event already has a result
func (r *ResultRepository) ExistsForEvent(ctx context.Context, eventID int64) (bool, error) {
	ctx, cancel := r.db.WithTimeout(ctx)
	defer cancel()

	var exists bool
	err := r.db.Pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM results WHERE event_id = $1)`, eventID).Scan(&exists)
	if err != nil {
		return false, storeError("check result", err)
	}
	return exists, nil
}

// Create inserts the result of an event. The unique constraint on event_id
// rejects a second result even when two organizers race.
func (r *ResultRepository) Create(ctx context.Context, result *models.Result) error {
	ctx, cancel := r.db.WithTimeout(ctx)
	defer cancel()

	sql, args, err := squirrel.Insert("results").
		Columns("event_id", "winner_id", "runner_up_id", "certification_url").
		Values(result.EventID, result.WinnerID, result.RunnerUpID, result.CertificationURL).
		Suffix("RETURNING id, created_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if err := r.db.Pool.QueryRow(ctx, sql, args...).Scan(&result.ID, &result.CreatedAt); err != nil {
		switch {
		case dberrors.IsDuplicateConstraintError(err, "results_event_id_key"):
			return &apperrors.CustomError{
				Err:     apperrors.ErrConflict,
				Cause:   apperrors.ErrResultExists,
				Message: "Results for this event have already been posted",
			}
		case dberrors.IsForeignKeyViolation(err):
			return &apperrors.CustomError{
				Err:     apperrors.ErrValidationFailed,
				Cause:   apperrors.ErrUnknownParticipant,
				Message: "Winner or runner-up does not exist",
			}
		}
		return storeError("create result", err)
	}
	return nil
}
