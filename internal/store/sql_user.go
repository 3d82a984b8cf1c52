package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-user-service/internal/logger"
	"github.com/MKhiriev/go-user-service/models"
)

const usersTable = "users"

var (
	userColumns = []string{
		"id", "username", "email", "full_name", "password_hash",
		"avatar_url", "cover_image_url", "refresh_token", "created_at", "updated_at",
	}
	profileColumns = []string{
		"id", "username", "email", "full_name",
		"avatar_url", "cover_image_url", "created_at", "updated_at",
	}
)

// sqlUserRepository is the SQL implementation of [UserRepository] shared by
// the PostgreSQL and SQLite drivers. Queries are built with squirrel using
// the placeholder format of the connection.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type sqlUserRepository struct {
	db      *DB
	builder sq.StatementBuilderType
	logger  *logger.Logger
}

// NewSQLUserRepository constructs a [UserRepository] backed by db.
func NewSQLUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Str("dialect", db.dialect).Msg("creating sql user repository")
	return &sqlUserRepository{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(db.placeholder),
		logger:  logger,
	}
}

func (r *sqlUserRepository) FindByID(ctx context.Context, id string) (models.User, error) {
	query := r.builder.Select(userColumns...).From(usersTable).Where(sq.Eq{"id": id})
	return r.queryUser(ctx, "FindByID", query, scanUser)
}

func (r *sqlUserRepository) FindProfileByID(ctx context.Context, id string) (models.User, error) {
	query := r.builder.Select(profileColumns...).From(usersTable).Where(sq.Eq{"id": id})
	return r.queryUser(ctx, "FindProfileByID", query, scanProfile)
}

func (r *sqlUserRepository) FindByUsernameOrEmail(ctx context.Context, username, email string) (models.User, error) {
	or := sq.Or{}
	if username != "" {
		or = append(or, sq.Eq{"username": username})
	}
	if email != "" {
		or = append(or, sq.Eq{"email": email})
	}
	if len(or) == 0 {
		return models.User{}, ErrUserNotFound
	}

	query := r.builder.Select(userColumns...).From(usersTable).Where(or).Limit(1)
	return r.queryUser(ctx, "FindByUsernameOrEmail", query, scanUser)
}

// Create inserts user.
//
// Error handling:
//   - unique violation on username, email or id → [ErrUserAlreadyExists].
//   - any other driver-level error → wrapped [ErrExecutingQuery].
func (r *sqlUserRepository) Create(ctx context.Context, user models.User) error {
	log := logger.FromContext(ctx)

	query, args, err := r.builder.Insert(usersTable).
		Columns(userColumns...).
		Values(
			user.ID, user.Username, user.Email, user.FullName, user.PasswordHash,
			user.AvatarURL, user.CoverImageURL, nullString(user.RefreshToken), user.CreatedAt, user.UpdatedAt,
		).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*sqlUserRepository.Create").Msg("failed to build query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = r.db.withRetry(ctx, func() error {
		_, execErr := r.db.ExecContext(ctx, query, args...)
		return execErr
	})
	if err != nil {
		if r.db.errorClassificator.IsUniqueViolation(err) {
			return ErrUserAlreadyExists
		}
		log.Err(err).Str("func", "*sqlUserRepository.Create").Msg("failed to insert user")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

func (r *sqlUserRepository) SetRefreshToken(ctx context.Context, id, refreshToken string) error {
	query := r.builder.Update(usersTable).
		Set("refresh_token", refreshToken).
		Set("updated_at", now()).
		Where(sq.Eq{"id": id})

	return r.execUpdate(ctx, "SetRefreshToken", query, ErrUserNotFound)
}

// SwapRefreshToken is a compare-and-swap: the row is only updated when the
// stored token still equals expected.
func (r *sqlUserRepository) SwapRefreshToken(ctx context.Context, id, expected, refreshToken string) error {
	if expected == "" {
		return ErrRefreshTokenMismatch
	}

	query := r.builder.Update(usersTable).
		Set("refresh_token", refreshToken).
		Set("updated_at", now()).
		Where(sq.Eq{"id": id, "refresh_token": expected})

	return r.execUpdate(ctx, "SwapRefreshToken", query, ErrRefreshTokenMismatch)
}

func (r *sqlUserRepository) ClearRefreshToken(ctx context.Context, id string) (models.User, error) {
	query := r.builder.Update(usersTable).
		Set("refresh_token", nil).
		Set("updated_at", now()).
		Where(sq.Eq{"id": id}).
		Suffix(returningProfile())

	return r.queryUser(ctx, "ClearRefreshToken", query, scanProfile)
}

func (r *sqlUserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	query := r.builder.Update(usersTable).
		Set("password_hash", passwordHash).
		Set("updated_at", now()).
		Where(sq.Eq{"id": id})

	return r.execUpdate(ctx, "UpdatePassword", query, ErrUserNotFound)
}

func (r *sqlUserRepository) UpdateUser(ctx context.Context, id string, update models.UserUpdate) (models.User, error) {
	set := map[string]any{"updated_at": now()}
	if update.FullName != nil {
		set["full_name"] = *update.FullName
	}
	if update.Email != nil {
		set["email"] = *update.Email
	}
	if update.AvatarURL != nil {
		set["avatar_url"] = *update.AvatarURL
	}
	if update.CoverImageURL != nil {
		set["cover_image_url"] = *update.CoverImageURL
	}

	query := r.builder.Update(usersTable).
		SetMap(set).
		Where(sq.Eq{"id": id}).
		Suffix(returningProfile())

	return r.queryUser(ctx, "UpdateUser", query, scanProfile)
}

// queryUser runs a single-row query and scans it with scan.
//
// Error handling:
//   - [sql.ErrNoRows] → [ErrUserNotFound].
//   - unique violation → [ErrUserAlreadyExists] (UPDATE ... RETURNING).
//   - any other error → wrapped [ErrExecutingQuery] or [ErrScanningRow].
func (r *sqlUserRepository) queryUser(ctx context.Context, funcName string, query sq.Sqlizer, scan func(*sql.Row) (models.User, error)) (models.User, error) {
	log := logger.FromContext(ctx)

	q, args, err := query.ToSql()
	if err != nil {
		log.Err(err).Str("func", "*sqlUserRepository."+funcName).Msg("failed to build query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var user models.User
	err = r.db.withRetry(ctx, func() error {
		var scanErr error
		user, scanErr = scan(r.db.QueryRowContext(ctx, q, args...))
		return scanErr
	})
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.User{}, ErrUserNotFound
	case err != nil && r.db.errorClassificator.IsUniqueViolation(err):
		return models.User{}, ErrUserAlreadyExists
	case err != nil:
		log.Err(err).Str("func", "*sqlUserRepository."+funcName).Msg("failed to query user")
		return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return user, nil
}

// execUpdate runs an UPDATE and returns notFound when no row was affected.
func (r *sqlUserRepository) execUpdate(ctx context.Context, funcName string, query sq.UpdateBuilder, notFound error) error {
	log := logger.FromContext(ctx)

	q, args, err := query.ToSql()
	if err != nil {
		log.Err(err).Str("func", "*sqlUserRepository."+funcName).Msg("failed to build query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var res sql.Result
	err = r.db.withRetry(ctx, func() error {
		var execErr error
		res, execErr = r.db.ExecContext(ctx, q, args...)
		return execErr
	})
	if err != nil {
		log.Err(err).Str("func", "*sqlUserRepository."+funcName).Msg("failed to execute update")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return notFound
	}

	return nil
}

func returningProfile() string {
	return "RETURNING " + strings.Join(profileColumns, ", ")
}

func scanUser(row *sql.Row) (models.User, error) {
	var user models.User
	var refreshToken sql.NullString

	err := row.Scan(
		&user.ID, &user.Username, &user.Email, &user.FullName, &user.PasswordHash,
		&user.AvatarURL, &user.CoverImageURL, &refreshToken, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return models.User{}, err
	}

	user.RefreshToken = refreshToken.String
	return user, nil
}

func scanProfile(row *sql.Row) (models.User, error) {
	var user models.User

	err := row.Scan(
		&user.ID, &user.Username, &user.Email, &user.FullName,
		&user.AvatarURL, &user.CoverImageURL, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return models.User{}, err
	}

	return user, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
