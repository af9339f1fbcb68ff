package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-accountant/models"
	"github.com/shopspring/decimal"
)

// AuthService handles account lifecycle and token issuing for both
// password and Firebase sign-in.
type AuthService interface {
	Register(ctx context.Context, req models.RegisterRequest) (models.AuthResponse, error)
	Login(ctx context.Context, req models.LoginRequest) (models.AuthResponse, error)

	// FirebaseSignIn verifies a Google-signed ID token and resolves it to
	// an account: by firebase uid first, then by email (which conflicts
	// with ErrAccountNotLinked), creating the account otherwise.
	FirebaseSignIn(ctx context.Context, req models.FirebaseSignInRequest) (models.AuthResponse, error)

	// LinkGoogle attaches a verified Firebase identity to the password
	// account owning the token's email. The password proves ownership, so
	// no bearer token is required.
	LinkGoogle(ctx context.Context, req models.LinkAccountRequest) (models.AuthResponse, error)

	// UnlinkGoogle detaches the Firebase identity, reverting the account
	// to password sign-in. Fails with ErrNoPasswordSet when the account
	// has no password to fall back on.
	UnlinkGoogle(ctx context.Context, userID int64) (models.User, error)

	Providers(ctx context.Context, userID int64) (models.AuthProvidersResponse, error)

	Profile(ctx context.Context, userID int64) (models.User, error)
	UpdateProfile(ctx context.Context, userID int64, req models.ProfileUpdateRequest) (models.User, error)

	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// SyncService reconciles device batches against the authoritative store.
type SyncService interface {
	// Reconcile applies every entity of the batch in order, resolving
	// conflicts last-writer-wins, and returns per-entity outcomes plus
	// the pull set of server-side changes the device has not seen.
	Reconcile(ctx context.Context, userID int64, batch models.SyncBatch) (models.SyncResult, error)

	// Status reports per-kind record counts and latest change stamps.
	Status(ctx context.Context, userID int64) (models.SyncStatus, error)
}

// RecordService is the REST CRUD surface over the synced envelope rows.
// Mutations write the same rows the sync reconciler does, so every REST
// change becomes pullable by the user's other devices.
type RecordService interface {
	Create(ctx context.Context, userID int64, kind models.EntityKind, payload []byte) (models.SyncEntity, error)
	Get(ctx context.Context, userID int64, kind models.EntityKind, serverID string) (models.SyncEntity, error)
	List(ctx context.Context, userID int64, kind models.EntityKind) ([]models.SyncEntity, error)
	Update(ctx context.Context, userID int64, kind models.EntityKind, serverID string, payload []byte) (models.SyncEntity, error)
	Delete(ctx context.Context, userID int64, kind models.EntityKind, serverID string) error

	// DefaultWallet returns the user's wallet marked is_default, falling
	// back to the first wallet when none is marked.
	DefaultWallet(ctx context.Context, userID int64) (models.SyncEntity, error)
}

// TransactionService layers wallet-balance maintenance and filtered
// listing over the plain record CRUD for the transaction kind.
type TransactionService interface {
	List(ctx context.Context, userID int64, filter models.TransactionFilter) ([]models.SyncEntity, error)
	Create(ctx context.Context, userID int64, payload []byte) (models.SyncEntity, error)
	Update(ctx context.Context, userID int64, serverID string, payload []byte) (models.SyncEntity, error)
	Delete(ctx context.Context, userID int64, serverID string) error

	// BulkCreate imports transactions one by one, reporting per-item
	// results; a failing item never aborts the rest.
	BulkCreate(ctx context.Context, userID int64, payloads [][]byte) (models.BulkCreateResponse, error)
}

// RateService manages per-user exchange rate pairs and conversions.
type RateService interface {
	List(ctx context.Context, userID int64) ([]models.ExchangeRate, error)
	Upsert(ctx context.Context, userID int64, req models.RateUpsertRequest) (models.ExchangeRate, error)
	Delete(ctx context.Context, userID int64, rateID int64) error

	// Convert resolves the effective rate: identity for equal currencies,
	// the direct pair, then a cross rate through the configured base
	// currency. No path yields ErrRateUnavailable.
	Convert(ctx context.Context, userID int64, from, to string, amount decimal.Decimal) (models.ConvertResponse, error)

	// Refresh fetches the provider's latest rates and updates the api
	// rate of every pair the user has registered.
	Refresh(ctx context.Context, userID int64) ([]models.ExchangeRate, error)
}

// IAPService verifies store purchases and maintains the subscription tier.
type IAPService interface {
	Verify(ctx context.Context, userID int64, req models.VerifyPurchaseRequest) (models.SubscriptionStatus, error)
	Restore(ctx context.Context, userID int64, req models.RestorePurchasesRequest) (models.RestoreResponse, error)
	Status(ctx context.Context, userID int64) (models.SubscriptionStatus, error)
}

// RecurringService materializes transaction instances from recurring
// schedules that have come due.
type RecurringService interface {
	// ProcessUser materializes every due schedule of one user and
	// returns how many instances were created.
	ProcessUser(ctx context.Context, userID int64) (int, error)

	// ProcessDue scans due schedules across all users, up to the batch
	// limit, and materializes them. Used by the background worker.
	ProcessDue(ctx context.Context, now time.Time) (int, error)
}

// TitleService manages the title-to-category learning table.
type TitleService interface {
	List(ctx context.Context, userID int64) ([]models.AssociatedTitle, error)
	Upsert(ctx context.Context, userID int64, req models.TitleUpsertRequest) (models.AssociatedTitle, error)
	Delete(ctx context.Context, userID int64, titleID int64) error
	Match(ctx context.Context, userID int64, title string) (models.TitleMatchResponse, error)
}

// AppInfoService exposes build metadata.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}

// Retrier re-runs an operation that failed transiently. Satisfied by
// store.Retrier; declared here so services stay mockable without the
// concrete backoff machinery.
type Retrier interface {
	Do(ctx context.Context, operation func() error) error
}
