package models

import "github.com/shopspring/decimal"

// AuthResponse is returned by register, login and Firebase sign-in:
// a bearer token plus the profile it authenticates.
type AuthResponse struct {
	// AccessToken is the compact JWS the client presents in the
	// Authorization header of subsequent requests.
	AccessToken string `json:"access_token"`

	// TokenType is always "Bearer".
	TokenType string `json:"token_type"`

	User User `json:"user"`
}

// ConvertResponse is the result of a currency conversion.
type ConvertResponse struct {
	FromCurrency string `json:"from_currency"`
	ToCurrency   string `json:"to_currency"`

	Amount    decimal.Decimal `json:"amount"`
	Rate      decimal.Decimal `json:"rate"`
	Converted decimal.Decimal `json:"converted"`

	// Source names which rate was applied: "custom", "api"
	// or "identity" for same-currency conversions.
	Source string `json:"source"`
}

// BulkItemResult reports the outcome of one item in a bulk create.
type BulkItemResult struct {
	Index    int    `json:"index"`
	ServerID string `json:"server_id,omitempty"`
	Error    string `json:"error,omitempty"`
}

// BulkCreateResponse summarizes a bulk transaction import.
type BulkCreateResponse struct {
	Created int              `json:"created"`
	Failed  int              `json:"failed"`
	Items   []BulkItemResult `json:"items"`
}

// TitleMatchResponse is the best category match for a transaction title.
type TitleMatchResponse struct {
	CategoryServerID string `json:"category_server_id"`
	MatchedTitle     string `json:"matched_title"`
	Exact            bool   `json:"exact"`
}

// AuthProvidersResponse lists the sign-in methods usable on the account.
type AuthProvidersResponse struct {
	Providers   []string `json:"providers"`
	HasPassword bool     `json:"has_password"`
	HasGoogle   bool     `json:"has_google"`
}

// RecurringProcessResponse reports a manual materializer run.
type RecurringProcessResponse struct {
	InstancesCreated int `json:"instances_created"`
}
