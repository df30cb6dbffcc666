package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/campushub/internal/app/models"
	"github.com/yigit/campushub/internal/db"
	"github.com/yigit/campushub/internal/pkg/apperrors"
	"github.com/yigit/campushub/internal/pkg/dberrors"
)

// RegistrationRepository owns the registration transactions. Every registered
// person also gets an event_participants row in the same transaction; its
// (event_id, user_id) primary key is what finally rejects a double registration.
type RegistrationRepository struct {
	db *db.PostgresDB
}

// NewRegistrationRepository creates a new RegistrationRepository
func NewRegistrationRepository(database *db.PostgresDB) *RegistrationRepository {
	return &RegistrationRepository{db: database}
}

// CountByEvent returns the number of registrations (individual or team) for an event
func (r *RegistrationRepository) CountByEvent(ctx context.Context, eventID int64) (int, error) {
	ctx, cancel := r.db.WithTimeout(ctx)
	defer cancel()

	count, err := countRegistrations(ctx, r.db.Pool, eventID)
	if err != nil {
		return 0, storeError("count registrations", err)
	}
	return count, nil
}

// FindRegisteredUsers returns which of userIDs already hold a registration for
// the event, as individuals or as members of a registered team.
func (r *RegistrationRepository) FindRegisteredUsers(ctx context.Context, eventID int64, userIDs []int64) ([]int64, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}

	ctx, cancel := r.db.WithTimeout(ctx)
	defer cancel()

	individual := squirrel.Select("r.user_id").
		From("registrations r").
		Where(squirrel.Eq{"r.event_id": eventID, "r.user_id": userIDs})
	viaTeam := squirrel.Select("tm.user_id").
		From("registrations r").
		Join("team_members tm ON tm.team_id = r.team_id").
		Where(squirrel.Eq{"r.event_id": eventID, "tm.user_id": userIDs})

	teamSQL, teamArgs, err := viaTeam.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	sql, args, err := individual.
		Suffix("UNION "+teamSQL, teamArgs...).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, storeError("find registered users", err)
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, storeError("find registered users", err)
	}
	return ids, nil
}

// CreateTeamRegistration creates the team, its members, the registration and the
// participant guard rows in one SERIALIZABLE transaction. The event row is locked
// and capacity is re-checked inside the transaction.
func (r *RegistrationRepository) CreateTeamRegistration(ctx context.Context, params models.TeamRegistrationParams) (*models.TeamRegistration, error) {
	var result *models.TeamRegistration

	err := r.db.WithSerializableTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := lockCapacity(ctx, tx, params.EventID); err != nil {
			return err
		}

		team := &models.Team{EventID: params.EventID, Name: params.TeamName}
		err := tx.QueryRow(ctx,
			`INSERT INTO teams (event_id, name) VALUES ($1, $2) RETURNING id, created_at`,
			params.EventID, params.TeamName).Scan(&team.ID, &team.CreatedAt)
		if err != nil {
			return err
		}

		members, err := insertTeamMembers(ctx, tx, team.ID, params.LeaderID, params.MemberIDs)
		if err != nil {
			return err
		}
		team.Members = members

		registration := &models.Registration{EventID: params.EventID, TeamID: &team.ID, PaymentStatus: params.PaymentStatus}
		if err := insertRegistration(ctx, tx, registration); err != nil {
			return err
		}

		if err := insertParticipants(ctx, tx, params.EventID, registration.ID, params.MemberIDs); err != nil {
			return err
		}

		result = &models.TeamRegistration{Team: team, Registration: registration}
		return nil
	})
	if err != nil {
		return nil, registrationError("create team registration", err)
	}
	return result, nil
}

// CreateIndividualRegistration registers a single user under the same guards as a team
func (r *RegistrationRepository) CreateIndividualRegistration(ctx context.Context, params models.IndividualRegistrationParams) (*models.Registration, error) {
	var registration *models.Registration

	err := r.db.WithSerializableTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := lockCapacity(ctx, tx, params.EventID); err != nil {
			return err
		}

		userID := params.UserID
		reg := &models.Registration{EventID: params.EventID, UserID: &userID, PaymentStatus: params.PaymentStatus}
		if err := insertRegistration(ctx, tx, reg); err != nil {
			return err
		}

		if err := insertParticipants(ctx, tx, params.EventID, reg.ID, []int64{params.UserID}); err != nil {
			return err
		}

		registration = reg
		return nil
	})
	if err != nil {
		return nil, registrationError("create registration", err)
	}
	return registration, nil
}

type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func countRegistrations(ctx context.Context, q querier, eventID int64) (int, error) {
	var count int
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM registrations WHERE event_id = $1`, eventID).Scan(&count)
	return count, err
}

// lockCapacity takes the event row lock, then fails with EventFull when the
// registration limit is already reached.
func lockCapacity(ctx context.Context, tx pgx.Tx, eventID int64) error {
	var limit *int
	err := tx.QueryRow(ctx, `SELECT registration_limit FROM events WHERE id = $1 FOR UPDATE`, eventID).Scan(&limit)
	if err != nil {
		if isNoRows(err) {
			return apperrors.NewResourceNotFoundError("Event not found")
		}
		return err
	}

	count, err := countRegistrations(ctx, tx, eventID)
	if err != nil {
		return err
	}

	event := models.Event{RegistrationLimit: limit}
	if event.IsFull(count) {
		return apperrors.NewEventFullError()
	}
	return nil
}

func insertTeamMembers(ctx context.Context, tx pgx.Tx, teamID, leaderID int64, memberIDs []int64) ([]*models.TeamMember, error) {
	insert := squirrel.Insert("team_members").
		Columns("team_id", "user_id", "is_leader").
		Suffix("RETURNING id, user_id, is_leader").
		PlaceholderFormat(squirrel.Dollar)
	for _, userID := range memberIDs {
		insert = insert.Values(teamID, userID, userID == leaderID)
	}

	sql, args, err := insert.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := tx.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := make([]*models.TeamMember, 0, len(memberIDs))
	for rows.Next() {
		member := &models.TeamMember{TeamID: teamID}
		if err := rows.Scan(&member.ID, &member.UserID, &member.IsLeader); err != nil {
			return nil, err
		}
		members = append(members, member)
	}
	return members, rows.Err()
}

func insertRegistration(ctx context.Context, tx pgx.Tx, registration *models.Registration) error {
	sql, args, err := squirrel.Insert("registrations").
		Columns("event_id", "user_id", "team_id", "payment_status").
		Values(registration.EventID, registration.UserID, registration.TeamID, registration.PaymentStatus).
		Suffix("RETURNING id, created_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}
	return tx.QueryRow(ctx, sql, args...).Scan(&registration.ID, &registration.CreatedAt)
}

func insertParticipants(ctx context.Context, tx pgx.Tx, eventID, registrationID int64, userIDs []int64) error {
	rows := make([][]any, 0, len(userIDs))
	for _, userID := range userIDs {
		rows = append(rows, []any{eventID, userID, registrationID})
	}

	_, err := tx.CopyFrom(ctx,
		pgx.Identifier{"event_participants"},
		[]string{"event_id", "user_id", "registration_id"},
		pgx.CopyFromRows(rows),
	)
	return err
}

// registrationError maps constraint violations raised at commit time onto the
// registration taxonomy. Application errors raised inside the transaction pass through.
func registrationError(op string, err error) error {
	switch {
	case apperrors.Is(err, apperrors.ErrConflict, apperrors.ErrResourceNotFound, apperrors.ErrValidationFailed):
		return err
	case dberrors.IsDuplicateConstraintError(err, "teams_event_id_name_key"):
		return &apperrors.CustomError{
			Err:     apperrors.ErrConflict,
			Cause:   apperrors.ErrTeamNameTaken,
			Message: "A team with this name is already registered for this event.",
			Code:    "TEAM_NAME_TAKEN",
		}
	case dberrors.IsUniqueViolation(err):
		return apperrors.NewDuplicateRegistrationError("")
	case dberrors.IsForeignKeyViolation(err):
		return &apperrors.CustomError{
			Err:     apperrors.ErrValidationFailed,
			Cause:   apperrors.ErrUnknownParticipant,
			Message: "One or more team members do not exist.",
		}
	}
	return storeError(op, err)
}
