package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/go-accountant/internal/logger"
	"github.com/MKhiriev/go-accountant/models"
	"github.com/jackc/pgerrcode"
)

// userColumns is the column set every user Scan expects, password hash
// coalesced so password-less Firebase accounts scan into a plain string.
const userColumns = `id, email, COALESCE(password_hash, ''), auth_provider, firebase_uid, google_id, display_name, photo_url, email_verified, default_currency, onboarding_completed, subscription_tier, subscription_expires_at, is_active, last_login, created_at, updated_at`

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// It handles account creation, lookup and profile maintenance against the
// "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

func scanUser(row rowScanner) (models.User, error) {
	var user models.User

	err := row.Scan(
		&user.UserID,
		&user.Email,
		&user.PasswordHash,
		&user.AuthProvider,
		&user.FirebaseUID,
		&user.GoogleID,
		&user.DisplayName,
		&user.PhotoURL,
		&user.EmailVerified,
		&user.DefaultCurrency,
		&user.OnboardingCompleted,
		&user.SubscriptionTier,
		&user.SubscriptionExpiresAt,
		&user.IsActive,
		&user.LastLogin,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	return user, err
}

// CreateUser persists a new account row and returns the fully populated
// [models.User] with server-assigned fields (UserID, CreatedAt).
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrEmailAlreadyExists]
//     (covers both the email and the firebase_uid unique index).
//   - Any other driver-level error → wrapped in [ErrExecutingQuery].
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	log.Debug().
		Str("func", "*userRepository.CreateUser").
		Str("email", user.Email).
		Str("auth_provider", string(user.AuthProvider)).
		Msg("creating user")

	created, err := scanUser(r.db.QueryRowContext(ctx, createUser,
		user.Email,
		user.PasswordHash,
		user.AuthProvider,
		user.FirebaseUID,
		user.GoogleID,
		user.DisplayName,
		user.PhotoURL,
		user.EmailVerified,
		user.DefaultCurrency,
	))

	if err != nil {
		if postgresError(err) == pgerrcode.UniqueViolation {
			log.Warn().
				Str("func", "*userRepository.CreateUser").
				Str("email", user.Email).
				Msg("user already exists")
			return models.User{}, ErrEmailAlreadyExists
		}

		log.Err(err).
			Str("func", "*userRepository.CreateUser").
			Str("email", user.Email).
			Msg("error: failed to insert user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return created, nil
}

// FindUserByEmail retrieves the account registered under email.
func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	log := logger.FromContext(ctx)

	user, err := scanUser(r.db.QueryRowContext(ctx, findUserByEmail, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}

		log.Err(err).
			Str("func", "*userRepository.FindUserByEmail").
			Str("email", email).
			Msg("error: failed to find user by email")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return user, nil
}

// FindUserByFirebaseUID retrieves the account linked to a Firebase identity.
func (r *userRepository) FindUserByFirebaseUID(ctx context.Context, firebaseUID string) (models.User, error) {
	log := logger.FromContext(ctx)

	user, err := scanUser(r.db.QueryRowContext(ctx, findUserByFirebaseUID, firebaseUID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}

		log.Err(err).
			Str("func", "*userRepository.FindUserByFirebaseUID").
			Str("firebase_uid", firebaseUID).
			Msg("error: failed to find user by firebase uid")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return user, nil
}

// GetUserByID retrieves the account row by its internal identifier.
func (r *userRepository) GetUserByID(ctx context.Context, userID int64) (models.User, error) {
	log := logger.FromContext(ctx)

	user, err := scanUser(r.db.QueryRowContext(ctx, findUserByID, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}

		log.Err(err).
			Str("func", "*userRepository.GetUserByID").
			Int64("user_id", userID).
			Msg("error: failed to find user by id")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return user, nil
}

// UpdateProfile applies the provided profile fields and returns the updated
// account. Absent fields stay untouched; updated_at always advances.
func (r *userRepository) UpdateProfile(ctx context.Context, userID int64, update models.ProfileUpdateRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	qb := sq.Update("users").
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": userID})

	if update.DisplayName != nil {
		qb = qb.Set("display_name", *update.DisplayName)
	}
	if update.PhotoURL != nil {
		qb = qb.Set("photo_url", *update.PhotoURL)
	}
	if update.DefaultCurrency != nil {
		qb = qb.Set("default_currency", *update.DefaultCurrency)
	}
	if update.OnboardingCompleted != nil {
		qb = qb.Set("onboarding_completed", *update.OnboardingCompleted)
	}

	query, args, err := qb.
		Suffix("RETURNING " + userColumns).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		log.Err(err).
			Str("func", "*userRepository.UpdateProfile").
			Int64("user_id", userID).
			Msg("error: failed to build profile update query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	user, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}

		log.Err(err).
			Str("func", "*userRepository.UpdateProfile").
			Int64("user_id", userID).
			Msg("error: failed to update profile")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return user, nil
}

// UpdateSubscription sets the account's paid tier and expiry.
func (r *userRepository) UpdateSubscription(ctx context.Context, userID int64, tier models.SubscriptionTier, expiresAt *time.Time) error {
	log := logger.FromContext(ctx)

	log.Debug().
		Str("func", "*userRepository.UpdateSubscription").
		Int64("user_id", userID).
		Str("tier", string(tier)).
		Msg("updating subscription")

	result, err := r.db.ExecContext(ctx, updateUserSubscription, userID, tier, expiresAt)
	if err != nil {
		log.Err(err).
			Str("func", "*userRepository.UpdateSubscription").
			Int64("user_id", userID).
			Msg("error: failed to update subscription")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrUserNotFound
	}

	return nil
}

// LinkFirebase attaches a verified Firebase identity to an existing
// account, switching its auth provider, and returns the updated row.
// Used when a Firebase sign-in matches a known email that was registered
// with a password. An empty FirebaseUID stores NULL, which is how unlink
// clears the identity without tripping the unique index.
func (r *userRepository) LinkFirebase(ctx context.Context, userID int64, identity models.FirebaseLink) (models.User, error) {
	log := logger.FromContext(ctx)

	log.Debug().
		Str("func", "*userRepository.LinkFirebase").
		Int64("user_id", userID).
		Str("firebase_uid", identity.FirebaseUID).
		Msg("linking firebase identity")

	user, err := scanUser(r.db.QueryRowContext(ctx, linkFirebaseIdentity,
		userID,
		identity.FirebaseUID,
		identity.GoogleID,
		identity.AuthProvider,
		identity.EmailVerified,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}

		log.Err(err).
			Str("func", "*userRepository.LinkFirebase").
			Int64("user_id", userID).
			Msg("error: failed to link firebase identity")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return user, nil
}

// TouchLastLogin stamps the account's last successful authentication.
func (r *userRepository) TouchLastLogin(ctx context.Context, userID int64) error {
	log := logger.FromContext(ctx)

	_, err := r.db.ExecContext(ctx, touchUserLastLogin, userID)
	if err != nil {
		log.Err(err).
			Str("func", "*userRepository.TouchLastLogin").
			Int64("user_id", userID).
			Msg("error: failed to touch last login")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}
