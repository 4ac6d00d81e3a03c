package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrEmailAlreadyExists is returned when an attempt to register a new user
	// fails because a user with the same email already exists in the database.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrUserNotFound is returned when a query expected to match exactly one
	// user record produces an empty result set.
	ErrUserNotFound = errors.New("user was not found")

	// ErrSessionNotFound is returned when a lookup or update targets a session
	// row that does not exist in the database.
	ErrSessionNotFound = errors.New("session was not found")

	// ErrOrderNotFound is returned when a query targets an order that does not
	// exist in the database.
	ErrOrderNotFound = errors.New("order was not found")

	// ErrStorageIntegrity is returned when a stored encrypted column cannot be
	// authenticated and decrypted on read. The row is present but its
	// protected content must be treated as corrupted or tampered with; no
	// partial plaintext is ever returned alongside this error.
	ErrStorageIntegrity = errors.New("stored encrypted data failed integrity check")

	// ErrAuditNotRecorded is returned when an INSERT into the audit log
	// completes without a driver error but affects zero rows. Callers run
	// audit appends inside the same transaction as the business write, so
	// this error aborts the whole action.
	ErrAuditNotRecorded = errors.New("audit entry was not recorded")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
