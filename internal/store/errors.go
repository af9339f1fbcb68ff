package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrEmailAlreadyExists is returned when an attempt to register a new user
	// fails because a user with the same email already exists in the database.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrUserNotFound is returned when a query expected to match at least one
	// user record produces an empty result set.
	ErrUserNotFound = errors.New("user was not found")

	// ErrRecordNotFound is returned when a query or update targets a sync
	// record (identified by user_id, kind and client_id, or by server_id)
	// that does not exist in the database.
	ErrRecordNotFound = errors.New("record was not found")

	// ErrRecordExists is returned when an INSERT of a sync record collides
	// with an existing (user_id, kind, client_id) row. Two devices pushing
	// the same fresh entity concurrently produce this; the caller re-reads
	// and takes the update path instead.
	ErrRecordExists = errors.New("record already exists")

	// ErrConcurrentUpdate is returned when a guarded UPDATE finds that the
	// record changed since it was read: the expected server_updated_at no
	// longer matches. The caller re-reads and re-resolves the conflict.
	ErrConcurrentUpdate = errors.New("record was concurrently updated")

	// ErrRecordNotSaved is returned when an INSERT completes without error
	// but the number of affected rows is zero, indicating that no data was
	// actually persisted.
	ErrRecordNotSaved = errors.New("record was not saved")

	// ErrRateNotFound is returned when no exchange rate row exists for the
	// requested currency pair.
	ErrRateNotFound = errors.New("exchange rate was not found")

	// ErrTitleNotFound is returned when no associated title row matches the
	// requested title or id.
	ErrTitleNotFound = errors.New("associated title was not found")

	// ErrPurchaseExists is returned when a purchase token has already been
	// verified and recorded. Restores match against it instead of inserting
	// a duplicate row.
	ErrPurchaseExists = errors.New("purchase already recorded")

	// ErrPurchaseNotFound is returned when no purchase row matches the
	// requested token hash.
	ErrPurchaseNotFound = errors.New("purchase was not found")
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

	// ErrPreparingStatement is returned when a SQL statement cannot be
	// prepared (e.g. syntax error or connection issue).
	ErrPreparingStatement = errors.New("failed to prepare statement")

	// ErrExecutingStatement is returned when executing a prepared DML
	// statement (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan record row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan record rows")
)
