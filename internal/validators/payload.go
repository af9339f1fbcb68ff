package validators

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/MKhiriev/go-accountant/models"
)

// Field name constants used to specify which fields should be validated.
// These constants are passed to Validate or internal validation methods
// to restrict validation to a subset of fields (field-level scoping).
const (
	// FieldKind targets the entity kind discriminator of a sync envelope.
	FieldKind = "kind"

	// FieldClientID targets the client-generated record identifier.
	FieldClientID = "client_id"

	// FieldClientUpdatedAt targets the client-supplied modification timestamp.
	FieldClientUpdatedAt = "client_updated_at"

	// FieldPayload targets the kind-specific payload document of an envelope.
	FieldPayload = "payload"

	// FieldName targets the display name of a wallet, category, budget,
	// objective or payment method payload.
	FieldName = "name"

	// FieldCurrency targets the ISO-4217 currency code of a wallet payload.
	FieldCurrency = "currency"

	// FieldColor targets the #RRGGBB accent color of a payload.
	FieldColor = "color"

	// FieldWalletID targets the owning-wallet reference of a transaction.
	FieldWalletID = "wallet_id"

	// FieldAmount targets the monetary amount of a transaction or budget.
	FieldAmount = "amount"

	// FieldTitle targets the title of a transaction or an associated title.
	FieldTitle = "title"

	// FieldDate targets the occurrence date of a transaction.
	FieldDate = "date"

	// FieldType targets the semantic type field (transaction or objective).
	FieldType = "type"

	// FieldPeriod targets the period unit of a budget payload.
	FieldPeriod = "period"

	// FieldStartDate targets the start date of a budget, objective or schedule.
	FieldStartDate = "start_date"

	// FieldEndDate targets the optional end date and its ordering
	// relative to the start date.
	FieldEndDate = "end_date"

	// FieldTargetAmount targets the target amount of an objective payload.
	FieldTargetAmount = "target_amount"

	// FieldBaseTransactionID targets the template-transaction reference
	// of a recurring schedule.
	FieldBaseTransactionID = "base_transaction_id"

	// FieldPeriodLength targets the schedule multiplier (every N units).
	FieldPeriodLength = "period_length"

	// FieldReoccurrence targets the calendar unit of a recurring schedule.
	FieldReoccurrence = "reoccurrence"

	// FieldNextOccurrence targets the next due date of a recurring schedule.
	FieldNextOccurrence = "next_occurrence"

	// FieldEmail targets the email address of an auth request.
	FieldEmail = "email"

	// FieldPassword targets the password of an auth request.
	FieldPassword = "password"

	// FieldIDToken targets the Firebase ID token of a federated sign-in.
	FieldIDToken = "id_token"

	// FieldDefaultCurrency targets the preferred currency of a profile update.
	FieldDefaultCurrency = "default_currency"

	// FieldCurrencyPair targets the from/to codes of a rate upsert.
	FieldCurrencyPair = "currency_pair"

	// FieldCustomRate targets the user-defined rate value of a rate upsert.
	FieldCustomRate = "custom_rate"

	// FieldPlatform targets the app store selector of a purchase request.
	FieldPlatform = "platform"

	// FieldProductID targets the store product identifier of a purchase.
	FieldProductID = "product_id"

	// FieldPurchaseToken targets the opaque store token of a purchase.
	FieldPurchaseToken = "purchase_token"

	// FieldPurchaseTokens targets the token list of a restore request.
	FieldPurchaseTokens = "purchase_tokens"

	// FieldCategoryServerID targets the category reference of a title link.
	FieldCategoryServerID = "category_server_id"
)

// clientClockTolerance bounds how far in the future a client-supplied
// ClientUpdatedAt may lie before the entity is rejected. Devices with
// mildly wrong clocks still sync; wildly wrong ones cannot plant
// timestamps that would win every future conflict.
const clientClockTolerance = time.Hour

// maxTitleLength is the upper bound on transaction and associated titles.
const maxTitleLength = 255

var (
	// colorPattern accepts #RRGGBB hex colors, case-insensitive digits.
	colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

	// currencyPattern accepts uppercase three-letter ISO-4217 codes.
	currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)

	// emailPattern is a light structural check; deliverability is not
	// the server's problem.
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// PayloadValidator implements the Validator interface for the sync
// envelope (SyncEntity), the seven kind-specific payload documents, and
// the request DTOs of the auth, rates, purchases and titles endpoints.
//
// It supports both value and pointer receivers for every model type
// and allows optional field-level scoping via variadic field name arguments.
// Error texts double as per-entity rejection reasons on the sync surface.
type PayloadValidator struct {
	// now is the clock used for the client-timestamp sanity check.
	now func() time.Time
}

// NewPayloadValidator constructs a new PayloadValidator
// and returns it as the Validator interface.
func NewPayloadValidator() Validator {
	return &PayloadValidator{now: time.Now}
}

// Validate dispatches validation to the appropriate type-specific method
// based on the dynamic type of obj. Both value and pointer forms of each
// supported model are accepted.
//
// Supported types:
//   - models.SyncEntity and the seven kind payload structs
//   - models.RegisterRequest / models.LoginRequest / models.FirebaseSignInRequest
//   - models.LinkAccountRequest
//   - models.ProfileUpdateRequest
//   - models.RateUpsertRequest
//   - models.VerifyPurchaseRequest / models.RestorePurchasesRequest
//   - models.TitleUpsertRequest
//
// Returns ErrUnsupportedType if obj does not match any known model.
// Optional fields restrict validation to the named subset; when omitted,
// a sensible default set of fields is validated.
func (v *PayloadValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.SyncEntity:
		return v.validateSyncEntity(ctx, value, fields...)
	case *models.SyncEntity:
		return v.validateSyncEntity(ctx, *value, fields...)

	case models.TransactionPayload:
		return v.validateTransactionPayload(ctx, value, fields...)
	case *models.TransactionPayload:
		return v.validateTransactionPayload(ctx, *value, fields...)

	case models.WalletPayload:
		return v.validateWalletPayload(ctx, value, fields...)
	case *models.WalletPayload:
		return v.validateWalletPayload(ctx, *value, fields...)

	case models.CategoryPayload:
		return v.validateCategoryPayload(ctx, value, fields...)
	case *models.CategoryPayload:
		return v.validateCategoryPayload(ctx, *value, fields...)

	case models.BudgetPayload:
		return v.validateBudgetPayload(ctx, value, fields...)
	case *models.BudgetPayload:
		return v.validateBudgetPayload(ctx, *value, fields...)

	case models.ObjectivePayload:
		return v.validateObjectivePayload(ctx, value, fields...)
	case *models.ObjectivePayload:
		return v.validateObjectivePayload(ctx, *value, fields...)

	case models.RecurringTransactionPayload:
		return v.validateRecurringTransactionPayload(ctx, value, fields...)
	case *models.RecurringTransactionPayload:
		return v.validateRecurringTransactionPayload(ctx, *value, fields...)

	case models.PaymentMethodPayload:
		return v.validatePaymentMethodPayload(ctx, value, fields...)
	case *models.PaymentMethodPayload:
		return v.validatePaymentMethodPayload(ctx, *value, fields...)

	case models.RegisterRequest:
		return v.validateRegisterRequest(ctx, value, fields...)
	case *models.RegisterRequest:
		return v.validateRegisterRequest(ctx, *value, fields...)

	case models.LoginRequest:
		return v.validateLoginRequest(ctx, value, fields...)
	case *models.LoginRequest:
		return v.validateLoginRequest(ctx, *value, fields...)

	case models.FirebaseSignInRequest:
		return v.validateFirebaseSignInRequest(ctx, value, fields...)
	case *models.FirebaseSignInRequest:
		return v.validateFirebaseSignInRequest(ctx, *value, fields...)

	case models.LinkAccountRequest:
		return v.validateLinkAccountRequest(ctx, value, fields...)
	case *models.LinkAccountRequest:
		return v.validateLinkAccountRequest(ctx, *value, fields...)

	case models.ProfileUpdateRequest:
		return v.validateProfileUpdateRequest(ctx, value, fields...)
	case *models.ProfileUpdateRequest:
		return v.validateProfileUpdateRequest(ctx, *value, fields...)

	case models.RateUpsertRequest:
		return v.validateRateUpsertRequest(ctx, value, fields...)
	case *models.RateUpsertRequest:
		return v.validateRateUpsertRequest(ctx, *value, fields...)

	case models.VerifyPurchaseRequest:
		return v.validateVerifyPurchaseRequest(ctx, value, fields...)
	case *models.VerifyPurchaseRequest:
		return v.validateVerifyPurchaseRequest(ctx, *value, fields...)

	case models.RestorePurchasesRequest:
		return v.validateRestorePurchasesRequest(ctx, value, fields...)
	case *models.RestorePurchasesRequest:
		return v.validateRestorePurchasesRequest(ctx, *value, fields...)

	case models.TitleUpsertRequest:
		return v.validateTitleUpsertRequest(ctx, value, fields...)
	case *models.TitleUpsertRequest:
		return v.validateTitleUpsertRequest(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

// validateSyncEntity validates one sync envelope.
//
// Default validated fields (when none specified):
// Kind, ClientID, ClientUpdatedAt, Payload.
//
// The payload document is parsed against the kind's schema and checked
// with the kind-specific rules. Tombstones skip the payload checks
// entirely: a deletion must never be blocked by the content of the
// state it is deleting.
//
// Returns the first encountered validation error or nil.
func (v *PayloadValidator) validateSyncEntity(ctx context.Context, entity models.SyncEntity, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldKind, FieldClientID, FieldClientUpdatedAt, FieldPayload}
	}

	for _, f := range fields {
		switch f {
		case FieldKind:
			if !entity.Kind.Valid() {
				return ErrUnknownKind
			}
		case FieldClientID:
			if entity.ClientID == "" {
				return ErrEmptyClientID
			}
		case FieldClientUpdatedAt:
			if entity.ClientUpdatedAt.IsZero() {
				return ErrZeroClientUpdatedAt
			}
			if entity.ClientUpdatedAt.After(v.now().Add(clientClockTolerance)) {
				return ErrClientClockTooFar
			}
		case FieldPayload:
			if entity.Deleted {
				continue
			}
			if err := v.validatePayload(ctx, entity.Kind, entity.Payload); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validatePayload parses a raw payload document against the kind's schema
// and applies the kind-specific field rules. Extra document fields are
// tolerated for forward compatibility; missing required ones are not.
func (v *PayloadValidator) validatePayload(ctx context.Context, kind models.EntityKind, payload json.RawMessage) error {
	if len(payload) == 0 {
		return ErrEmptyPayload
	}

	switch kind {
	case models.KindTransaction:
		var p models.TransactionPayload
		if err := json.Unmarshal(payload, &p); err != nil {
			return fmt.Errorf("%w: %w", ErrMalformedPayload, err)
		}
		return v.validateTransactionPayload(ctx, p)
	case models.KindWallet:
		var p models.WalletPayload
		if err := json.Unmarshal(payload, &p); err != nil {
			return fmt.Errorf("%w: %w", ErrMalformedPayload, err)
		}
		return v.validateWalletPayload(ctx, p)
	case models.KindCategory:
		var p models.CategoryPayload
		if err := json.Unmarshal(payload, &p); err != nil {
			return fmt.Errorf("%w: %w", ErrMalformedPayload, err)
		}
		return v.validateCategoryPayload(ctx, p)
	case models.KindBudget:
		var p models.BudgetPayload
		if err := json.Unmarshal(payload, &p); err != nil {
			return fmt.Errorf("%w: %w", ErrMalformedPayload, err)
		}
		return v.validateBudgetPayload(ctx, p)
	case models.KindObjective:
		var p models.ObjectivePayload
		if err := json.Unmarshal(payload, &p); err != nil {
			return fmt.Errorf("%w: %w", ErrMalformedPayload, err)
		}
		return v.validateObjectivePayload(ctx, p)
	case models.KindRecurringTransaction:
		var p models.RecurringTransactionPayload
		if err := json.Unmarshal(payload, &p); err != nil {
			return fmt.Errorf("%w: %w", ErrMalformedPayload, err)
		}
		return v.validateRecurringTransactionPayload(ctx, p)
	case models.KindPaymentMethod:
		var p models.PaymentMethodPayload
		if err := json.Unmarshal(payload, &p); err != nil {
			return fmt.Errorf("%w: %w", ErrMalformedPayload, err)
		}
		return v.validatePaymentMethodPayload(ctx, p)
	default:
		return ErrUnknownKind
	}
}

// validateTransactionPayload checks a transaction document.
//
// Default validated fields: WalletID, Amount, Title, Date, Type.
// Amount must be strictly positive; the income flag carries the sign.
func (v *PayloadValidator) validateTransactionPayload(ctx context.Context, payload models.TransactionPayload, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldWalletID, FieldAmount, FieldTitle, FieldDate, FieldType}
	}

	for _, f := range fields {
		switch f {
		case FieldWalletID:
			if payload.WalletID == "" {
				return ErrEmptyWalletID
			}
		case FieldAmount:
			if !payload.Amount.IsPositive() {
				return ErrNonPositiveAmount
			}
		case FieldTitle:
			if strings.TrimSpace(payload.Title) == "" {
				return ErrEmptyTitle
			}
			if utf8.RuneCountInString(payload.Title) > maxTitleLength {
				return ErrTitleTooLong
			}
		case FieldDate:
			if payload.Date.IsZero() {
				return ErrZeroDate
			}
		case FieldType:
			if payload.Type != "" && !payload.Type.Valid() {
				return ErrInvalidTransactionType
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateWalletPayload checks a wallet document.
//
// Default validated fields: Name, Currency, Color.
func (v *PayloadValidator) validateWalletPayload(ctx context.Context, payload models.WalletPayload, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldName, FieldCurrency, FieldColor}
	}

	for _, f := range fields {
		switch f {
		case FieldName:
			if strings.TrimSpace(payload.Name) == "" {
				return ErrEmptyName
			}
		case FieldCurrency:
			if !currencyPattern.MatchString(payload.Currency) {
				return ErrInvalidCurrency
			}
		case FieldColor:
			if payload.Color != "" && !colorPattern.MatchString(payload.Color) {
				return ErrInvalidColor
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateCategoryPayload checks a category document.
//
// Default validated fields: Name, Color.
func (v *PayloadValidator) validateCategoryPayload(ctx context.Context, payload models.CategoryPayload, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldName, FieldColor}
	}

	for _, f := range fields {
		switch f {
		case FieldName:
			if strings.TrimSpace(payload.Name) == "" {
				return ErrEmptyName
			}
		case FieldColor:
			if payload.Color != "" && !colorPattern.MatchString(payload.Color) {
				return ErrInvalidColor
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateBudgetPayload checks a budget document.
//
// Default validated fields: Name, Amount, Period, StartDate, EndDate.
//
// The custom period requires an explicit end date; any end date present
// must lie strictly after the start date.
func (v *PayloadValidator) validateBudgetPayload(ctx context.Context, payload models.BudgetPayload, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldName, FieldAmount, FieldPeriod, FieldStartDate, FieldEndDate}
	}

	for _, f := range fields {
		switch f {
		case FieldName:
			if strings.TrimSpace(payload.Name) == "" {
				return ErrEmptyName
			}
		case FieldAmount:
			if !payload.Amount.IsPositive() {
				return ErrNonPositiveAmount
			}
		case FieldPeriod:
			if !payload.Period.Valid() {
				return ErrInvalidPeriod
			}
		case FieldStartDate:
			if payload.StartDate.IsZero() {
				return ErrZeroStartDate
			}
		case FieldEndDate:
			if payload.Period == models.BudgetCustom && payload.EndDate == nil {
				return ErrCustomPeriodNeedsEnd
			}
			if payload.EndDate != nil && !payload.EndDate.After(payload.StartDate) {
				return ErrEndBeforeStart
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateObjectivePayload checks a goal/loan document.
//
// Default validated fields: Name, TargetAmount, Type, StartDate, EndDate, Color.
func (v *PayloadValidator) validateObjectivePayload(ctx context.Context, payload models.ObjectivePayload, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldName, FieldTargetAmount, FieldType, FieldStartDate, FieldEndDate, FieldColor}
	}

	for _, f := range fields {
		switch f {
		case FieldName:
			if strings.TrimSpace(payload.Name) == "" {
				return ErrEmptyName
			}
		case FieldTargetAmount:
			if !payload.TargetAmount.IsPositive() {
				return ErrNonPositiveAmount
			}
		case FieldType:
			if !payload.Type.Valid() {
				return ErrInvalidObjectiveType
			}
		case FieldStartDate:
			if payload.StartDate.IsZero() {
				return ErrZeroStartDate
			}
		case FieldEndDate:
			if payload.EndDate != nil && !payload.EndDate.After(payload.StartDate) {
				return ErrEndBeforeStart
			}
		case FieldColor:
			if payload.Color != "" && !colorPattern.MatchString(payload.Color) {
				return ErrInvalidColor
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateRecurringTransactionPayload checks a recurring schedule document.
//
// Default validated fields: BaseTransactionID, Reoccurrence, PeriodLength,
// StartDate, NextOccurrence, EndDate.
func (v *PayloadValidator) validateRecurringTransactionPayload(ctx context.Context, payload models.RecurringTransactionPayload, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldBaseTransactionID, FieldReoccurrence, FieldPeriodLength, FieldStartDate, FieldNextOccurrence, FieldEndDate}
	}

	for _, f := range fields {
		switch f {
		case FieldBaseTransactionID:
			if payload.BaseTransactionID == "" {
				return ErrEmptyBaseTransaction
			}
		case FieldReoccurrence:
			if !payload.Reoccurrence.Valid() {
				return ErrInvalidReoccurrence
			}
		case FieldPeriodLength:
			if payload.PeriodLength < 1 {
				return ErrInvalidPeriodLength
			}
		case FieldStartDate:
			if payload.StartDate.IsZero() {
				return ErrZeroStartDate
			}
		case FieldNextOccurrence:
			if payload.NextOccurrence.IsZero() {
				return ErrZeroNextOccurrence
			}
		case FieldEndDate:
			if payload.EndDate != nil && !payload.EndDate.After(payload.StartDate) {
				return ErrEndBeforeStart
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validatePaymentMethodPayload checks a payment method document.
//
// Default validated fields: Name.
func (v *PayloadValidator) validatePaymentMethodPayload(ctx context.Context, payload models.PaymentMethodPayload, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldName}
	}

	for _, f := range fields {
		switch f {
		case FieldName:
			if strings.TrimSpace(payload.Name) == "" {
				return ErrEmptyName
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateRegisterRequest checks an email+password registration body.
//
// Default validated fields: Email, Password.
func (v *PayloadValidator) validateRegisterRequest(ctx context.Context, request models.RegisterRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldEmail:
			if request.Email == "" {
				return ErrEmptyEmail
			}
			if !emailPattern.MatchString(request.Email) {
				return ErrInvalidEmail
			}
		case FieldPassword:
			if len(request.Password) < 8 {
				return ErrPasswordTooShort
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateLoginRequest checks a password login body.
//
// Default validated fields: Email, Password. The password is only
// required to be present; length rules apply at registration time.
func (v *PayloadValidator) validateLoginRequest(ctx context.Context, request models.LoginRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldEmail:
			if request.Email == "" {
				return ErrEmptyEmail
			}
		case FieldPassword:
			if request.Password == "" {
				return ErrEmptyPassword
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateFirebaseSignInRequest checks a federated sign-in body.
//
// Default validated fields: IDToken.
func (v *PayloadValidator) validateFirebaseSignInRequest(ctx context.Context, request models.FirebaseSignInRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldIDToken}
	}

	for _, f := range fields {
		switch f {
		case FieldIDToken:
			if request.IDToken == "" {
				return ErrEmptyIDToken
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateLinkAccountRequest checks an account-linking body: the ID token
// names the identity being attached, the password proves ownership.
//
// Default validated fields: IDToken, Password.
func (v *PayloadValidator) validateLinkAccountRequest(ctx context.Context, request models.LinkAccountRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldIDToken, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldIDToken:
			if request.IDToken == "" {
				return ErrEmptyIDToken
			}
		case FieldPassword:
			if request.Password == "" {
				return ErrEmptyPassword
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateProfileUpdateRequest checks a partial profile update.
//
// Default validated fields: DefaultCurrency.
//
// After field-level checks, an additional structural rule is enforced:
// at least one field of the request must be non-nil.
// Returns ErrNoFieldsToUpdate otherwise.
func (v *PayloadValidator) validateProfileUpdateRequest(ctx context.Context, request models.ProfileUpdateRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldDefaultCurrency}
	}

	for _, f := range fields {
		switch f {
		case FieldDefaultCurrency:
			if request.DefaultCurrency != nil && !currencyPattern.MatchString(*request.DefaultCurrency) {
				return ErrInvalidCurrency
			}
		default:
			return ErrUnknownField
		}
	}

	if request.DisplayName == nil && request.PhotoURL == nil && request.DefaultCurrency == nil && request.OnboardingCompleted == nil {
		return ErrNoFieldsToUpdate
	}

	return nil
}

// validateRateUpsertRequest checks a manual exchange-rate upsert.
//
// Default validated fields: CurrencyPair, CustomRate.
func (v *PayloadValidator) validateRateUpsertRequest(ctx context.Context, request models.RateUpsertRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldCurrencyPair, FieldCustomRate}
	}

	for _, f := range fields {
		switch f {
		case FieldCurrencyPair:
			if !currencyPattern.MatchString(request.FromCurrency) || !currencyPattern.MatchString(request.ToCurrency) {
				return ErrInvalidCurrency
			}
			if request.FromCurrency == request.ToCurrency {
				return ErrSameCurrencyPair
			}
		case FieldCustomRate:
			if request.CustomRate != nil && !request.CustomRate.IsPositive() {
				return ErrNonPositiveRate
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateVerifyPurchaseRequest checks an in-app purchase verification body.
//
// Default validated fields: Platform, ProductID, PurchaseToken.
func (v *PayloadValidator) validateVerifyPurchaseRequest(ctx context.Context, request models.VerifyPurchaseRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldPlatform, FieldProductID, FieldPurchaseToken}
	}

	for _, f := range fields {
		switch f {
		case FieldPlatform:
			if !request.Platform.Valid() {
				return ErrInvalidPlatform
			}
		case FieldProductID:
			if request.ProductID == "" {
				return ErrEmptyProductID
			}
		case FieldPurchaseToken:
			if request.PurchaseToken == "" {
				return ErrEmptyPurchaseToken
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateRestorePurchasesRequest checks a purchase-restore body.
//
// Default validated fields: Platform, PurchaseTokens. Every token of the
// list must be non-empty.
func (v *PayloadValidator) validateRestorePurchasesRequest(ctx context.Context, request models.RestorePurchasesRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldPlatform, FieldPurchaseTokens}
	}

	for _, f := range fields {
		switch f {
		case FieldPlatform:
			if !request.Platform.Valid() {
				return ErrInvalidPlatform
			}
		case FieldPurchaseTokens:
			if len(request.PurchaseTokens) == 0 {
				return ErrEmptyPurchaseToken
			}
			for _, token := range request.PurchaseTokens {
				if token == "" {
					return ErrEmptyPurchaseToken
				}
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateTitleUpsertRequest checks an associated-title upsert body.
//
// Default validated fields: Title, CategoryServerID.
func (v *PayloadValidator) validateTitleUpsertRequest(ctx context.Context, request models.TitleUpsertRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldTitle, FieldCategoryServerID}
	}

	for _, f := range fields {
		switch f {
		case FieldTitle:
			if strings.TrimSpace(request.Title) == "" {
				return ErrEmptyTitle
			}
			if utf8.RuneCountInString(request.Title) > maxTitleLength {
				return ErrTitleTooLong
			}
		case FieldCategoryServerID:
			if request.CategoryServerID == "" {
				return ErrEmptyCategoryID
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
