package models

import "github.com/shopspring/decimal"

// RegisterRequest is the body of the registration endpoint.
type RegisterRequest struct {
	Email       string  `json:"email"`
	Password    string  `json:"password"`
	DisplayName *string `json:"display_name,omitempty"`
}

// LoginRequest is the body of the password login endpoint.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// FirebaseSignInRequest carries a Google-signed Firebase ID token.
type FirebaseSignInRequest struct {
	IDToken string `json:"id_token"`
}

// LinkAccountRequest attaches a Firebase identity to an existing password
// account. The password proves ownership of the account being linked.
type LinkAccountRequest struct {
	IDToken  string `json:"id_token"`
	Password string `json:"password"`
}

// ProfileUpdateRequest is a partial update of the caller's profile.
// Only non-nil fields are applied.
type ProfileUpdateRequest struct {
	DisplayName         *string `json:"display_name,omitempty"`
	PhotoURL            *string `json:"photo_url,omitempty"`
	DefaultCurrency     *string `json:"default_currency,omitempty"`
	OnboardingCompleted *bool   `json:"onboarding_completed,omitempty"`
}

// RateUpsertRequest creates or updates one exchange-rate pair.
type RateUpsertRequest struct {
	FromCurrency string `json:"from_currency"`
	ToCurrency   string `json:"to_currency"`

	CustomRate    *decimal.Decimal `json:"custom_rate,omitempty"`
	UseCustomRate *bool            `json:"use_custom_rate,omitempty"`
}

// VerifyPurchaseRequest is the body of the IAP verification endpoint.
type VerifyPurchaseRequest struct {
	Platform      Platform `json:"platform"`
	ProductID     string   `json:"product_id"`
	PurchaseToken string   `json:"purchase_token"`
}

// RestorePurchasesRequest re-verifies previously made purchases, e.g. after
// a reinstall. Tokens the backend has already recorded restore without a
// store round-trip.
type RestorePurchasesRequest struct {
	Platform       Platform `json:"platform"`
	PurchaseTokens []string `json:"purchase_tokens"`
}

// TitleUpsertRequest creates or updates an associated title link.
type TitleUpsertRequest struct {
	Title            string `json:"title"`
	CategoryServerID string `json:"category_server_id"`
	IsExactMatch     bool   `json:"is_exact_match"`
}
