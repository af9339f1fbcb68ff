package store

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

import (
	"context"
	"time"

	"github.com/MKhiriev/go-accountant/models"
	"github.com/shopspring/decimal"
)

// ErrorClassificator decides whether a failed database operation is worth
// retrying. Implementations inspect driver-level error codes.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// RecordChangeFunc inspects the currently stored record and returns the
// record to write in its place. The stored argument is nil when no record
// exists for the key; the row is locked for the duration of the call.
// Returning write=false leaves storage untouched. Returning an error aborts
// the change and rolls the transaction back.
type RecordChangeFunc func(stored *models.Record) (out models.Record, write bool, err error)

// RecordRepository persists the per-user envelope rows that back every
// syncable entity.
type RecordRepository interface {
	// ChangeRecord runs apply against the row identified by key inside a
	// single transaction, holding the row lock between the lookup and the
	// write. The stored row is returned as written. Insert races surface
	// as [ErrRecordExists], guarded update misses as
	// [ErrConcurrentUpdate]; both are retryable.
	ChangeRecord(ctx context.Context, userID int64, key models.ClientKey, apply RecordChangeFunc) (models.Record, error)

	FindByClientKey(ctx context.Context, userID int64, key models.ClientKey) (models.Record, error)
	GetByServerID(ctx context.Context, userID int64, serverID string) (models.Record, error)

	// ListChangedSince returns every record of the user whose
	// ServerUpdatedAt is strictly after since, tombstones included,
	// ordered by ServerUpdatedAt ascending.
	ListChangedSince(ctx context.Context, userID int64, since time.Time) ([]models.Record, error)

	// ListByKind returns the user's live records of one kind.
	ListByKind(ctx context.Context, userID int64, kind models.EntityKind) ([]models.Record, error)

	// ListTransactions returns the user's live transaction records
	// narrowed by the filter criteria.
	ListTransactions(ctx context.Context, userID int64, filter models.TransactionFilter) ([]models.Record, error)

	// CountsByKind returns per-kind record counts and the latest change
	// stamp, tombstones included in the totals.
	CountsByKind(ctx context.Context, userID int64) (map[models.EntityKind]models.KindCounts, error)

	// ListDueRecurring returns live, active recurring-transaction records
	// across all users whose next occurrence is at or before due.
	ListDueRecurring(ctx context.Context, due time.Time, limit int) ([]models.Record, error)
}

// UserRepository handles account rows.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	FindUserByFirebaseUID(ctx context.Context, firebaseUID string) (models.User, error)
	GetUserByID(ctx context.Context, userID int64) (models.User, error)
	UpdateProfile(ctx context.Context, userID int64, update models.ProfileUpdateRequest) (models.User, error)
	UpdateSubscription(ctx context.Context, userID int64, tier models.SubscriptionTier, expiresAt *time.Time) error

	// LinkFirebase attaches a verified Firebase identity to an existing
	// account and switches its auth provider.
	LinkFirebase(ctx context.Context, userID int64, identity models.FirebaseLink) (models.User, error)

	TouchLastLogin(ctx context.Context, userID int64) error
}

// RateRepository handles per-user exchange rate rows.
type RateRepository interface {
	// UpsertCustomRate stores a user-pinned rate for the pair, bumping the
	// row version. A nil rate clears the override while keeping the pair
	// registered for provider refreshes.
	UpsertCustomRate(ctx context.Context, userID int64, from, to string, rate *decimal.Decimal, useCustom bool) (models.ExchangeRate, error)

	// UpsertAPIRate stores a provider-fetched rate for the pair without
	// touching any custom override.
	UpsertAPIRate(ctx context.Context, userID int64, from, to string, rate decimal.Decimal, fetchedAt time.Time) (models.ExchangeRate, error)

	ListRates(ctx context.Context, userID int64) ([]models.ExchangeRate, error)
	FindRate(ctx context.Context, userID int64, from, to string) (models.ExchangeRate, error)
	DeleteRate(ctx context.Context, userID int64, rateID int64) error
}

// TitleRepository handles the title-to-category learning rows.
type TitleRepository interface {
	UpsertTitle(ctx context.Context, title models.AssociatedTitle) (models.AssociatedTitle, error)
	ListTitles(ctx context.Context, userID int64) ([]models.AssociatedTitle, error)
	DeleteTitle(ctx context.Context, userID int64, titleID int64) error

	// FindMatch resolves a transaction title to a learned category:
	// case-insensitive exact match first, then the longest stored
	// substring contained in the given title.
	FindMatch(ctx context.Context, userID int64, title string) (models.AssociatedTitle, error)
}

// PurchaseRepository records verified in-app purchases.
type PurchaseRepository interface {
	InsertPurchase(ctx context.Context, purchase models.Purchase) (models.Purchase, error)
	FindByTokenHash(ctx context.Context, tokenHash string) (models.Purchase, error)
	ListPurchasesByUser(ctx context.Context, userID int64) ([]models.Purchase, error)
}
