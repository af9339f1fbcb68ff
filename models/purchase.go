package models

import "time"

// Platform is the app store a purchase originates from.
type Platform string

const (
	PlatformAndroid Platform = "android"
	PlatformIOS     Platform = "ios"
)

// Valid reports whether p is a recognized store platform.
func (p Platform) Valid() bool {
	return p == PlatformAndroid || p == PlatformIOS
}

// Purchase is the audit row of one verified in-app purchase.
// TokenHash deduplicates resubmissions of the same store token.
type Purchase struct {
	ID     int64 `json:"id"`
	UserID int64 `json:"-"`

	Platform  Platform `json:"platform"`
	ProductID string   `json:"product_id"`

	// TokenHash is the SHA-256 of the store purchase token. The raw
	// token is never persisted.
	TokenHash string `json:"-"`

	Tier      SubscriptionTier `json:"tier"`
	ExpiresAt *time.Time       `json:"expires_at,omitempty"`

	VerifiedAt time.Time `json:"verified_at"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the Purchase model.
func (p Purchase) TableName() string {
	return "purchases"
}

// SubscriptionStatus is the response shape of the IAP status endpoint.
type SubscriptionStatus struct {
	Tier      SubscriptionTier `json:"tier"`
	IsPremium bool             `json:"is_premium"`
	ExpiresAt *time.Time       `json:"expires_at,omitempty"`

	// DaysRemaining is floored to whole days and never negative;
	// nil for lifetime or free accounts.
	DaysRemaining *int `json:"days_remaining,omitempty"`
}

// RestoreResponse summarizes a purchase restore: how many store tokens
// verified and which subscription survived.
type RestoreResponse struct {
	RestoredCount      int              `json:"restored_count"`
	ActiveSubscription SubscriptionTier `json:"active_subscription,omitempty"`
	ExpiresAt          *time.Time       `json:"expires_at,omitempty"`
}
