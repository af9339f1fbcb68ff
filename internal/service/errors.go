package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrWrongCredentials covers both unknown email and wrong password so
	// login responses do not reveal which accounts exist.
	ErrWrongCredentials = errors.New("wrong email or password")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	// ErrFirebaseTokenInvalid is returned when the presented Firebase ID
	// token fails signature, audience, issuer or expiry checks.
	ErrFirebaseTokenInvalid = errors.New("firebase token is invalid")

	// ErrAccountNotLinked is returned on Firebase sign-in when an account
	// with the token's email exists but carries no Firebase identity.
	// The client resolves it by calling link-google with the password.
	ErrAccountNotLinked = errors.New("account exists but is not linked to this sign-in method")

	// ErrIdentityInUse is returned when the Firebase identity being linked
	// already belongs to a different account.
	ErrIdentityInUse = errors.New("this google account is already linked to another user")

	// ErrNoPasswordSet guards link and unlink: both require a password on
	// the account so it never ends up without a usable sign-in method.
	ErrNoPasswordSet = errors.New("account has no password set")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")

	// ErrUnknownWallet is returned when a transaction references a wallet
	// the user does not have.
	ErrUnknownWallet = errors.New("transaction references an unknown wallet")

	// ErrUnknownProduct is returned for product ids outside the catalog.
	ErrUnknownProduct = errors.New("unknown product id")

	// ErrVerificationFailed is returned when the store rejects a purchase
	// token. Mapped to 402 on the HTTP surface.
	ErrVerificationFailed = errors.New("purchase verification failed")

	// ErrRateUnavailable is returned when a conversion has no usable rate:
	// no direct pair and no cross path through the base currency.
	ErrRateUnavailable = errors.New("no exchange rate available for the pair")
)
