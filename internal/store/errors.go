package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrUserAlreadyExists is returned when an insert or update violates the
	// uniqueness of username or email.
	ErrUserAlreadyExists = errors.New("user with this username or email already exists")

	// ErrUserNotFound is returned when a query expected to match a user
	// record produces an empty result set.
	ErrUserNotFound = errors.New("no user was found")

	// ErrRefreshTokenMismatch is returned by a compare-and-swap of the
	// refresh token when the stored token is not the expected one.
	ErrRefreshTokenMismatch = errors.New("stored refresh token does not match")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a driver-level operation fails before any domain
// logic can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a query or a document
	// operation against the database fails.
	ErrExecutingQuery = errors.New("error executing query")

	// ErrScanningRow is returned when scanning column values from a single
	// result row (or decoding a document) into a user fails.
	ErrScanningRow = errors.New("failed to scan user row")

	// ErrUnknownDriver is returned by NewStorages for an unsupported driver.
	ErrUnknownDriver = errors.New("unknown database driver")
)
