package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-shop-guard/internal/crypto"
	"github.com/MKhiriev/go-shop-guard/internal/logger"
	"github.com/MKhiriev/go-shop-guard/models"
	"github.com/jackc/pgerrcode"
)

// userRepository is the SQL-backed implementation of [UserRepository].
//
// Phone, address and MFA secret never touch the database in plaintext: the
// repository seals them with the field codec on every write and opens them on
// every read. A failed open surfaces as [ErrStorageIntegrity] and no partial
// plaintext leaves the repository.
type userRepository struct {
	logger *logger.Logger
	db     *DB
	codec  *crypto.FieldCodec
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection, field codec and logger.
func NewUserRepository(db *DB, codec *crypto.FieldCodec, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		codec:  codec,
		logger: logger,
	}
}

// CreateUser seals the protected profile fields and persists a new user
// record, returning the input populated with server-assigned fields.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrEmailAlreadyExists].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) CreateUser(ctx context.Context, q Querier, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	phoneEnc, err := r.codec.SealOptional(user.Phone)
	if err != nil {
		return models.User{}, fmt.Errorf("sealing phone: %w", err)
	}
	addressEnc, err := r.codec.SealOptional(user.Address)
	if err != nil {
		return models.User{}, fmt.Errorf("sealing address: %w", err)
	}

	row := q.QueryRowContext(ctx, createUser,
		user.Email, user.Username, user.PasswordHash, user.FirstName, user.LastName,
		user.Role, user.Active, phoneEnc, addressEnc)

	if err := row.Scan(&user.UserID, &user.CreatedAt, &user.UpdatedAt); err != nil {
		if postgresError(err) == pgerrcode.UniqueViolation {
			return models.User{}, ErrEmailAlreadyExists
		}
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error: scanning error")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return user, nil
}

// FindUserByEmail retrieves the user record whose email matches, opening the
// sealed profile columns before returning.
//
// Error handling:
//   - No matching row → [ErrUserNotFound].
//   - Sealed column fails to open → [ErrStorageIntegrity].
func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	return r.scanUser(ctx, r.db.QueryRowContext(ctx, findUserByEmail, email))
}

// GetUserByID retrieves a user record by its primary key, opening the sealed
// profile columns before returning. Error handling matches [FindUserByEmail].
func (r *userRepository) GetUserByID(ctx context.Context, userID int64) (models.User, error) {
	return r.scanUser(ctx, r.db.QueryRowContext(ctx, getUserByID, userID))
}

// UpdateProfile seals the protected fields and rewrites the mutable profile
// columns. Email, password hash, role and MFA state are not touched here.
//
// Returns [ErrUserNotFound] when no row matches the user ID.
func (r *userRepository) UpdateProfile(ctx context.Context, q Querier, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	phoneEnc, err := r.codec.SealOptional(user.Phone)
	if err != nil {
		return models.User{}, fmt.Errorf("sealing phone: %w", err)
	}
	addressEnc, err := r.codec.SealOptional(user.Address)
	if err != nil {
		return models.User{}, fmt.Errorf("sealing address: %w", err)
	}

	result, err := q.ExecContext(ctx, updateUserProfile,
		user.Username, user.FirstName, user.LastName, phoneEnc, addressEnc, user.UserID)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdateProfile").Msg("error: executing update")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return models.User{}, ErrUserNotFound
	}

	return user, nil
}

// SetMFA stores the MFA state for a user. The secret is sealed before it is
// written; passing a nil secret clears the column (MFA disable).
func (r *userRepository) SetMFA(ctx context.Context, q Querier, userID int64, enabled bool, secret *string) error {
	log := logger.FromContext(ctx)

	secretEnc, err := r.codec.SealOptional(secret)
	if err != nil {
		return fmt.Errorf("sealing mfa secret: %w", err)
	}

	result, err := q.ExecContext(ctx, setUserMFA, enabled, secretEnc, userID)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.SetMFA").Msg("error: executing update")
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

// UpdatePassword replaces the stored password hash. The hash is already
// bcrypt output, so no sealing is involved.
//
// Returns [ErrUserNotFound] when no row matches the user ID.
func (r *userRepository) UpdatePassword(ctx context.Context, q Querier, userID int64, passwordHash string) error {
	log := logger.FromContext(ctx)

	result, err := q.ExecContext(ctx, updateUserPassword, passwordHash, userID)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdatePassword").Msg("error: executing update")
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

func (r *userRepository) scanUser(ctx context.Context, row *sql.Row) (models.User, error) {
	log := logger.FromContext(ctx)

	var (
		user       models.User
		phoneEnc   []byte
		addressEnc []byte
		secretEnc  []byte
	)

	err := row.Scan(&user.UserID, &user.Email, &user.Username, &user.PasswordHash,
		&user.FirstName, &user.LastName, &user.Role, &user.Active,
		&phoneEnc, &addressEnc, &user.MFAEnabled, &secretEnc,
		&user.CreatedAt, &user.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*userRepository.scanUser").Msg("error: scanning error")
		return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	if user.Phone, err = r.codec.OpenOptional(phoneEnc); err != nil {
		return models.User{}, fmt.Errorf("%w: phone for user %d", ErrStorageIntegrity, user.UserID)
	}
	if user.Address, err = r.codec.OpenOptional(addressEnc); err != nil {
		return models.User{}, fmt.Errorf("%w: address for user %d", ErrStorageIntegrity, user.UserID)
	}
	if user.MFASecret, err = r.codec.OpenOptional(secretEnc); err != nil {
		return models.User{}, fmt.Errorf("%w: mfa secret for user %d", ErrStorageIntegrity, user.UserID)
	}

	return user, nil
}
