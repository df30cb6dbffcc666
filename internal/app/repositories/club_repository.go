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

// ClubRepository handles database operations for clubs and their members
type ClubRepository struct {
	db *db.PostgresDB
}

// NewClubRepository creates a new ClubRepository
func NewClubRepository(database *db.PostgresDB) *ClubRepository {
	return &ClubRepository{db: database}
}

// clubSelect reads clubs together with their member and event counts
func clubSelect() squirrel.SelectBuilder {
	return squirrel.Select(
		"c.id", "c.name", "c.description", "c.organizer_id", "c.created_at",
		"(SELECT COUNT(*) FROM club_members m WHERE m.club_id = c.id)",
		"(SELECT COUNT(*) FROM events e WHERE e.club_id = c.id)",
	).From("clubs c").PlaceholderFormat(squirrel.Dollar)
}

func scanClub(row pgx.Row) (*models.Club, error) {
	club := &models.Club{}
	err := row.Scan(&club.ID, &club.Name, &club.Description, &club.OrganizerID, &club.CreatedAt,
		&club.MemberCount, &club.EventCount)
	if err != nil {
		return nil, err
	}
	return club, nil
}

// Create inserts a club and enrolls its organizer as the first member
func (r *ClubRepository) Create(ctx context.Context, club *models.Club) error {
	insertClub, args, err := squirrel.Insert("clubs").
		Columns("name", "description", "organizer_id").
		Values(club.Name, club.Description, club.OrganizerID).
		Suffix("RETURNING id, created_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	err = r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, insertClub, args...).Scan(&club.ID, &club.CreatedAt); err != nil {
			return err
		}
		_, err := tx.Exec(ctx,
			`INSERT INTO club_members (club_id, user_id) VALUES ($1, $2)`, club.ID, club.OrganizerID)
		return err
	})
	if err != nil {
		switch {
		case dberrors.IsDuplicateConstraintError(err, "clubs_name_key"):
			return apperrors.NewConflictError("A club with this name already exists")
		case dberrors.IsForeignKeyViolation(err):
			return apperrors.NewResourceNotFoundError("Organizer user not found")
		}
		return storeError("create club", err)
	}

	club.MemberCount = 1
	return nil
}

// GetByID retrieves a club with its counts
func (r *ClubRepository) GetByID(ctx context.Context, id int64) (*models.Club, error) {
	ctx, cancel := r.db.WithTimeout(ctx)
	defer cancel()

	sql, args, err := clubSelect().Where(squirrel.Eq{"c.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	club, err := scanClub(r.db.Pool.QueryRow(ctx, sql, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.NewResourceNotFoundError("Club not found")
		}
		return nil, storeError("get club", err)
	}
	return club, nil
}

// List returns every club ordered by name
func (r *ClubRepository) List(ctx context.Context) ([]*models.Club, error) {
	ctx, cancel := r.db.WithTimeout(ctx)
	defer cancel()

	sql, args, err := clubSelect().OrderBy("c.name ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, storeError("list clubs", err)
	}
	defer rows.Close()

	clubs := make([]*models.Club, 0)
	for rows.Next() {
		club, err := scanClub(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		clubs = append(clubs, club)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("list clubs", err)
	}
	return clubs, nil
}

// AddMember enrolls a user. The primary key rejects a second membership.
func (r *ClubRepository) AddMember(ctx context.Context, clubID, userID int64) error {
	ctx, cancel := r.db.WithTimeout(ctx)
	defer cancel()

	_, err := r.db.Pool.Exec(ctx, `INSERT INTO club_members (club_id, user_id) VALUES ($1, $2)`, clubID, userID)
	if err != nil {
		switch {
		case dberrors.IsDuplicateConstraintError(err, "club_members_pkey"):
			return apperrors.NewConflictError("User is already a member")
		case dberrors.IsForeignKeyViolation(err):
			return apperrors.NewResourceNotFoundError("Club not found")
		}
		return storeError("join club", err)
	}
	return nil
}

// RemoveMember deletes a membership and reports whether one existed
func (r *ClubRepository) RemoveMember(ctx context.Context, clubID, userID int64) (bool, error) {
	ctx, cancel := r.db.WithTimeout(ctx)
	defer cancel()

	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM club_members WHERE club_id = $1 AND user_id = $2`, clubID, userID)
	if err != nil {
		return false, storeError("leave club", err)
	}
	return tag.RowsAffected() > 0, nil
}

// MemberIDs returns the ids of every member of the club
func (r *ClubRepository) MemberIDs(ctx context.Context, clubID int64) ([]int64, error) {
	ctx, cancel := r.db.WithTimeout(ctx)
	defer cancel()

	rows, err := r.db.Pool.Query(ctx,
		`SELECT user_id FROM club_members WHERE club_id = $1 ORDER BY user_id`, clubID)
	if err != nil {
		return nil, storeError("list club members", err)
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, storeError("list club members", err)
	}
	return ids, nil
}
