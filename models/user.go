package models

import "time"

// AuthProvider identifies how an account authenticates.
type AuthProvider string

const (
	// ProviderPassword authenticates with email + bcrypt-hashed password.
	ProviderPassword AuthProvider = "password"

	// ProviderFirebase authenticates with a Google-signed Firebase ID token.
	ProviderFirebase AuthProvider = "firebase"

	// ProviderGoogle is a Firebase account backed by Google Sign-In.
	ProviderGoogle AuthProvider = "google"
)

// SubscriptionTier is the paid level of an account.
type SubscriptionTier string

const (
	TierFree            SubscriptionTier = "free"
	TierPremium         SubscriptionTier = "premium"
	TierPremiumLifetime SubscriptionTier = "premium_lifetime"
)

// User represents an account entity used for authentication, authorization
// and subscription checks. Sensitive fields never leave trusted boundaries.
type User struct {
	// UserID is the internal unique identifier of the user.
	// It is not exposed via JSON and is used only at the persistence layer.
	UserID int64 `json:"-"`

	// Email is the unique account identifier used during authentication.
	Email string `json:"email"`

	// PasswordHash stores the bcrypt hash of the account password.
	// Empty for accounts created through Firebase sign-in.
	PasswordHash string `json:"-"`

	AuthProvider AuthProvider `json:"auth_provider"`

	// FirebaseUID links the account to a Firebase identity.
	FirebaseUID *string `json:"-"`
	GoogleID    *string `json:"-"`

	DisplayName   *string `json:"display_name,omitempty"`
	PhotoURL      *string `json:"photo_url,omitempty"`
	EmailVerified bool    `json:"email_verified"`

	// DefaultCurrency is the ISO-4217 code used for new wallets
	// and report totals.
	DefaultCurrency     string `json:"default_currency"`
	OnboardingCompleted bool   `json:"onboarding_completed"`

	SubscriptionTier      SubscriptionTier `json:"subscription_tier"`
	SubscriptionExpiresAt *time.Time       `json:"subscription_expires_at,omitempty"`

	IsActive  bool       `json:"-"`
	LastLogin *time.Time `json:"last_login,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}

// FirebaseLink carries the verified identity fields attached to an
// existing account when a Firebase sign-in matches its email.
type FirebaseLink struct {
	FirebaseUID   string
	GoogleID      *string
	AuthProvider  AuthProvider
	EmailVerified bool
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// IsPremium reports whether the account currently has paid access:
// a paid tier that either never expires or has not expired yet.
func (u User) IsPremium(now time.Time) bool {
	switch u.SubscriptionTier {
	case TierPremiumLifetime:
		return true
	case TierPremium:
		return u.SubscriptionExpiresAt == nil || u.SubscriptionExpiresAt.After(now)
	}
	return false
}
