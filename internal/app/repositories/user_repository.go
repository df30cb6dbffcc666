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

// UserRepository reads identities from the relational store. The document
// store joins against it by numeric user id.
type UserRepository struct {
	db *db.PostgresDB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(database *db.PostgresDB) *UserRepository {
	return &UserRepository{db: database}
}

var userColumns = []string{"id", "name", "email", "profile_photo", "role", "created_at", "updated_at"}

// Create inserts a user and fills in its generated fields
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	ctx, cancel := r.db.WithTimeout(ctx)
	defer cancel()

	query := squirrel.Insert("users").
		Columns("name", "email", "profile_photo", "role").
		Values(user.Name, user.Email, user.ProfilePhoto, user.Role).
		Suffix("RETURNING id, created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	err = r.db.Pool.QueryRow(ctx, sql, args...).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_email_key") {
			return apperrors.NewCustomError(apperrors.ErrResourceAlreadyExists, "Email already in use")
		}
		return storeError("create user", err)
	}
	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, squirrel.Eq{"email": email})
}

func (r *UserRepository) getOne(ctx context.Context, where squirrel.Eq) (*models.User, error) {
	ctx, cancel := r.db.WithTimeout(ctx)
	defer cancel()

	sql, args, err := squirrel.Select(userColumns...).
		From("users").
		Where(where).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	user := &models.User{}
	err = r.db.Pool.QueryRow(ctx, sql, args...).Scan(
		&user.ID, &user.Name, &user.Email, &user.ProfilePhoto, &user.Role, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.NewResourceNotFoundError("User not found")
		}
		return nil, storeError("get user", err)
	}
	return user, nil
}

// Exists reports whether a user row exists
func (r *UserRepository) Exists(ctx context.Context, id int64) (bool, error) {
	ctx, cancel := r.db.WithTimeout(ctx)
	defer cancel()

	var exists bool
	err := r.db.Pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, storeError("check user", err)
	}
	return exists, nil
}

// GetIdentities resolves a batch of user ids in one query. Ids without a row
// are simply absent from the result.
func (r *UserRepository) GetIdentities(ctx context.Context, ids []int64) (map[int64]*models.UserIdentity, error) {
	identities := make(map[int64]*models.UserIdentity, len(ids))
	if len(ids) == 0 {
		return identities, nil
	}

	ctx, cancel := r.db.WithTimeout(ctx)
	defer cancel()

	sql, args, err := squirrel.Select("id", "name", "profile_photo").
		From("users").
		Where(squirrel.Eq{"id": ids}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, storeError("lookup identities", err)
	}
	defer rows.Close()

	for rows.Next() {
		identity := &models.UserIdentity{}
		if err := rows.Scan(&identity.ID, &identity.Name, &identity.ProfilePhoto); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		identities[identity.ID] = identity
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("lookup identities", err)
	}

	return identities, nil
}
