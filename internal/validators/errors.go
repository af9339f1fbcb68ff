package validators

import "errors"

// Envelope and payload rule violations. The error text doubles as the
// per-entity rejection reason on the sync surface and as the 400 message
// on the CRUD surface.
var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrUnknownKind            = errors.New("unknown entity kind")
	ErrEmptyClientID          = errors.New("client id is required")
	ErrZeroClientUpdatedAt    = errors.New("client updated at is required")
	ErrClientClockTooFar      = errors.New("client updated at is too far in the future")
	ErrEmptyPayload           = errors.New("payload is required")
	ErrMalformedPayload       = errors.New("payload is not valid json for the kind")
	ErrEmptyName              = errors.New("name is required")
	ErrEmptyTitle             = errors.New("title is required")
	ErrTitleTooLong           = errors.New("title exceeds 255 characters")
	ErrEmptyWalletID          = errors.New("wallet id is required")
	ErrNonPositiveAmount      = errors.New("amount must be positive")
	ErrZeroDate               = errors.New("date is required")
	ErrInvalidTransactionType = errors.New("invalid transaction type")
	ErrInvalidCurrency        = errors.New("currency must be an uppercase ISO-4217 code")
	ErrInvalidColor           = errors.New("color must be #RRGGBB")
	ErrInvalidPeriod          = errors.New("invalid budget period")
	ErrZeroStartDate          = errors.New("start date is required")
	ErrEndBeforeStart         = errors.New("end date must be after start date")
	ErrCustomPeriodNeedsEnd   = errors.New("custom period requires an end date")
	ErrInvalidObjectiveType   = errors.New("invalid objective type")
	ErrEmptyBaseTransaction   = errors.New("base transaction id is required")
	ErrInvalidReoccurrence    = errors.New("invalid reoccurrence")
	ErrInvalidPeriodLength    = errors.New("period length must be at least 1")
	ErrZeroNextOccurrence     = errors.New("next occurrence is required")
)

// Request DTO rule violations.
var (
	ErrEmptyEmail         = errors.New("email is required")
	ErrInvalidEmail       = errors.New("email is not valid")
	ErrEmptyPassword      = errors.New("password is required")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters")
	ErrNoFieldsToUpdate   = errors.New("no fields to update")
	ErrEmptyIDToken       = errors.New("id token is required")
	ErrInvalidPlatform    = errors.New("platform must be android or ios")
	ErrEmptyProductID     = errors.New("product id is required")
	ErrEmptyPurchaseToken = errors.New("purchase token is required")
	ErrEmptyCategoryID    = errors.New("category server id is required")
	ErrNonPositiveRate    = errors.New("custom rate must be positive")
	ErrSameCurrencyPair   = errors.New("from and to currencies must differ")
)
