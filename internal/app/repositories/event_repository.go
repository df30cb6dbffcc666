package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/campushub/internal/app/models"
	"github.com/yigit/campushub/internal/db"
	"github.com/yigit/campushub/internal/pkg/apperrors"
	"github.com/yigit/campushub/internal/pkg/dberrors"
)

// EventRepository handles database operations for events and their announcements
type EventRepository struct {
	db *db.PostgresDB
}

// NewEventRepository creates a new EventRepository
func NewEventRepository(database *db.PostgresDB) *EventRepository {
	return &EventRepository{db: database}
}

var eventColumns = []string{
	"id", "title", "description", "club_id", "created_by", "event_date",
	"registration_limit", "is_team_event", "min_team_size", "max_team_size", "price", "created_at",
}

func scanEvent(row pgx.Row) (*models.Event, error) {
	event := &models.Event{}
	err := row.Scan(
		&event.ID, &event.Title, &event.Description, &event.ClubID, &event.CreatedBy, &event.EventDate,
		&event.RegistrationLimit, &event.IsTeamEvent, &event.MinTeamSize, &event.MaxTeamSize,
		&event.Price, &event.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return event, nil
}

// Create inserts an event
func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	ctx, cancel := r.db.WithTimeout(ctx)
	defer cancel()

	sql, args, err := squirrel.Insert("events").
		Columns("title", "description", "club_id", "created_by", "event_date",
			"registration_limit", "is_team_event", "min_team_size", "max_team_size", "price").
		Values(event.Title, event.Description, event.ClubID, event.CreatedBy, event.EventDate,
			event.RegistrationLimit, event.IsTeamEvent, event.MinTeamSize, event.MaxTeamSize, event.Price).
		Suffix("RETURNING id, created_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if err := r.db.Pool.QueryRow(ctx, sql, args...).Scan(&event.ID, &event.CreatedAt); err != nil {
		switch {
		case dberrors.IsForeignKeyViolation(err):
			return apperrors.NewValidationError("Event creator or club does not exist")
		case dberrors.IsCheckViolation(err):
			return apperrors.NewValidationError("Invalid team size, capacity or price")
		}
		return storeError("create event", err)
	}
	return nil
}

// GetByID retrieves an event by ID
func (r *EventRepository) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	ctx, cancel := r.db.WithTimeout(ctx)
	defer cancel()

	sql, args, err := squirrel.Select(eventColumns...).
		From("events").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	event, err := scanEvent(r.db.Pool.QueryRow(ctx, sql, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.NewResourceNotFoundError("Event not found")
		}
		return nil, storeError("get event", err)
	}
	return event, nil
}

// List returns every event with its registration count, soonest first. Events
// without a date sort last.
func (r *EventRepository) List(ctx context.Context) ([]*models.EventSummary, error) {
	ctx, cancel := r.db.WithTimeout(ctx)
	defer cancel()

	columns := append(append([]string{}, eventColumns...),
		"(SELECT COUNT(*) FROM registrations r WHERE r.event_id = events.id)")
	sql, args, err := squirrel.Select(columns...).
		From("events").
		OrderBy("event_date ASC NULLS LAST", "id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, storeError("list events", err)
	}
	defer rows.Close()

	summaries := make([]*models.EventSummary, 0)
	for rows.Next() {
		event := &models.Event{}
		summary := &models.EventSummary{Event: event}
		err := rows.Scan(
			&event.ID, &event.Title, &event.Description, &event.ClubID, &event.CreatedBy, &event.EventDate,
			&event.RegistrationLimit, &event.IsTeamEvent, &event.MinTeamSize, &event.MaxTeamSize,
			&event.Price, &event.CreatedAt, &summary.RegistrationCount,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		summaries = append(summaries, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("list events", err)
	}
	return summaries, nil
}

// ClaimDueReminders marks every event starting in (from, until] whose reminder
// has not gone out yet and returns them. Each event is claimed exactly once,
// even with several instances sweeping concurrently.
func (r *EventRepository) ClaimDueReminders(ctx context.Context, from, until time.Time) ([]*models.Event, error) {
	ctx, cancel := r.db.WithTimeout(ctx)
	defer cancel()

	sql, args, err := squirrel.Update("events").
		Set("reminder_sent_at", squirrel.Expr("NOW()")).
		Where(squirrel.And{
			squirrel.Eq{"reminder_sent_at": nil},
			squirrel.Gt{"event_date": from},
			squirrel.LtOrEq{"event_date": until},
		}).
		Suffix("RETURNING " + strings.Join(eventColumns, ", ")).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, storeError("claim reminders", err)
	}
	defer rows.Close()

	events := make([]*models.Event, 0)
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("claim reminders", err)
	}
	return events, nil
}

// ListParticipantIDs returns every registered user of the event once, whether
// they registered individually or as part of a team.
func (r *EventRepository) ListParticipantIDs(ctx context.Context, eventID int64) ([]int64, error) {
	ctx, cancel := r.db.WithTimeout(ctx)
	defer cancel()

	sql, args, err := squirrel.Select("user_id").
		From("event_participants").
		Where(squirrel.Eq{"event_id": eventID}).
		OrderBy("user_id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, storeError("list participants", err)
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, storeError("list participants", err)
	}
	return ids, nil
}

// CreateAnnouncement inserts an announcement for an event
func (r *EventRepository) CreateAnnouncement(ctx context.Context, announcement *models.Announcement) error {
	ctx, cancel := r.db.WithTimeout(ctx)
	defer cancel()

	sql, args, err := squirrel.Insert("announcements").
		Columns("event_id", "title", "message", "created_by").
		Values(announcement.EventID, announcement.Title, announcement.Message, announcement.CreatedBy).
		Suffix("RETURNING id, created_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if err := r.db.Pool.QueryRow(ctx, sql, args...).Scan(&announcement.ID, &announcement.CreatedAt); err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.NewResourceNotFoundError("Event not found")
		}
		return storeError("create announcement", err)
	}
	return nil
}
