package repositories

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/yigit/campushub/internal/db"
	"github.com/yigit/campushub/internal/pkg/apperrors"
	"github.com/yigit/campushub/internal/pkg/dberrors"
)

// Repositories holds all the relational repository instances
type Repositories struct {
	UserRepository         *UserRepository
	ClubRepository         *ClubRepository
	EventRepository        *EventRepository
	RegistrationRepository *RegistrationRepository
	ResultRepository       *ResultRepository
}

// NewRepositories initializes all repositories
func NewRepositories(database *db.PostgresDB) *Repositories {
	return &Repositories{
		UserRepository:         NewUserRepository(database),
		ClubRepository:         NewClubRepository(database),
		EventRepository:        NewEventRepository(database),
		RegistrationRepository: NewRegistrationRepository(database),
		ResultRepository:       NewResultRepository(database),
	}
}

// storeError classifies a driver error into the application taxonomy.
// Timeouts and serialization failures are retryable, everything else is a
// plain dependency failure.
func storeError(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case dberrors.IsSerializationFailure(err):
		return apperrors.NewRetryableError("concurrent update, please retry", err)
	case dberrors.IsTimeout(err):
		return apperrors.NewRetryableError(op+" timed out", err)
	default:
		return apperrors.NewDependencyError(op+" failed", fmt.Errorf("%s: %w", op, err))
	}
}

// isNoRows reports whether a single-row query found nothing
func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
