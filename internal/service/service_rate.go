package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-accountant/internal/adapter"
	"github.com/MKhiriev/go-accountant/internal/config"
	"github.com/MKhiriev/go-accountant/internal/logger"
	"github.com/MKhiriev/go-accountant/internal/store"
	"github.com/MKhiriev/go-accountant/internal/validators"
	"github.com/MKhiriev/go-accountant/models"
	"github.com/shopspring/decimal"
)

// Rate sources reported in conversion responses.
const (
	rateSourceIdentity = "identity"
	rateSourceCustom   = "custom"
	rateSourceAPI      = "api"
)

// rateService implements RateService over the per-user pair table and
// the external provider adapter.
type rateService struct {
	rates     store.RateRepository
	provider  adapter.RateProvider
	validator validators.Validator

	// base is the pivot currency for cross rates and provider fetches.
	base string

	now    func() time.Time
	logger *logger.Logger
}

// NewRateService constructs the exchange-rate service.
func NewRateService(rates store.RateRepository, provider adapter.RateProvider, validator validators.Validator, cfg config.Rates, logger *logger.Logger) RateService {
	base := strings.ToUpper(strings.TrimSpace(cfg.BaseCurrency))
	if base == "" {
		base = defaultCurrency
	}

	return &rateService{
		rates:     rates,
		provider:  provider,
		validator: validator,
		base:      base,
		now:       time.Now,
		logger:    logger,
	}
}

// List implements RateService.
func (s *rateService) List(ctx context.Context, userID int64) ([]models.ExchangeRate, error) {
	rates, err := s.rates.ListRates(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*rateService.List").
			Int64("user_id", userID).
			Msg("failed to list exchange rates")
		return nil, err
	}

	return rates, nil
}

// Upsert implements RateService. When the use flag is omitted, setting a
// custom rate implies using it and clearing one implies not.
func (s *rateService) Upsert(ctx context.Context, userID int64, req models.RateUpsertRequest) (models.ExchangeRate, error) {
	req.FromCurrency = strings.ToUpper(strings.TrimSpace(req.FromCurrency))
	req.ToCurrency = strings.ToUpper(strings.TrimSpace(req.ToCurrency))

	if err := s.validator.Validate(ctx, req); err != nil {
		return models.ExchangeRate{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	useCustom := req.CustomRate != nil
	if req.UseCustomRate != nil {
		useCustom = *req.UseCustomRate
	}

	rate, err := s.rates.UpsertCustomRate(ctx, userID, req.FromCurrency, req.ToCurrency, req.CustomRate, useCustom)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*rateService.Upsert").
			Int64("user_id", userID).
			Str("pair", req.FromCurrency+"/"+req.ToCurrency).
			Msg("failed to upsert exchange rate")
		return models.ExchangeRate{}, err
	}

	return rate, nil
}

// Delete implements RateService.
func (s *rateService) Delete(ctx context.Context, userID int64, rateID int64) error {
	if err := s.rates.DeleteRate(ctx, userID, rateID); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*rateService.Delete").
			Int64("user_id", userID).
			Int64("rate_id", rateID).
			Msg("failed to delete exchange rate")
		return err
	}

	return nil
}

// Convert implements RateService.
//
// Resolution order: identical currencies convert at 1; then the user's
// direct pair; then a cross rate through the base currency,
// rate(base→to) / rate(base→from), with a base leg counting as 1.
// No path at all yields ErrRateUnavailable.
func (s *rateService) Convert(ctx context.Context, userID int64, from, to string, amount decimal.Decimal) (models.ConvertResponse, error) {
	from = strings.ToUpper(strings.TrimSpace(from))
	to = strings.ToUpper(strings.TrimSpace(to))

	if from == to {
		return models.ConvertResponse{
			FromCurrency: from,
			ToCurrency:   to,
			Amount:       amount,
			Rate:         decimal.NewFromInt(1),
			Converted:    amount,
			Source:       rateSourceIdentity,
		}, nil
	}

	pair := models.RateUpsertRequest{FromCurrency: from, ToCurrency: to}
	if err := s.validator.Validate(ctx, pair, validators.FieldCurrencyPair); err != nil {
		return models.ConvertResponse{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	rate, source, err := s.effectiveRate(ctx, userID, from, to)
	if err != nil {
		return models.ConvertResponse{}, err
	}

	return models.ConvertResponse{
		FromCurrency: from,
		ToCurrency:   to,
		Amount:       amount,
		Rate:         rate,
		Converted:    amount.Mul(rate),
		Source:       source,
	}, nil
}

// effectiveRate resolves the rate for one ordered pair.
func (s *rateService) effectiveRate(ctx context.Context, userID int64, from, to string) (decimal.Decimal, string, error) {
	direct, err := s.rates.FindRate(ctx, userID, from, to)
	switch {
	case err == nil:
		if rate, ok := direct.EffectiveRate(); ok {
			return rate, rateSource(direct), nil
		}
		// The pair exists but carries no usable value; try the cross.
	case !errors.Is(err, store.ErrRateNotFound):
		return decimal.Decimal{}, "", err
	}

	return s.crossRate(ctx, userID, from, to)
}

// crossRate derives from→to through the base currency.
func (s *rateService) crossRate(ctx context.Context, userID int64, from, to string) (decimal.Decimal, string, error) {
	legFrom, fromCustom, okFrom, err := s.baseLeg(ctx, userID, from)
	if err != nil {
		return decimal.Decimal{}, "", err
	}
	legTo, toCustom, okTo, err := s.baseLeg(ctx, userID, to)
	if err != nil {
		return decimal.Decimal{}, "", err
	}

	if !okFrom || !okTo || legFrom.IsZero() {
		return decimal.Decimal{}, "", fmt.Errorf("%w: %s to %s", ErrRateUnavailable, from, to)
	}

	source := rateSourceAPI
	if fromCustom || toCustom {
		source = rateSourceCustom
	}

	return legTo.Div(legFrom), source, nil
}

// baseLeg returns rate(base→currency); the base itself counts as 1.
func (s *rateService) baseLeg(ctx context.Context, userID int64, currency string) (rate decimal.Decimal, custom, ok bool, err error) {
	if currency == s.base {
		return decimal.NewFromInt(1), false, true, nil
	}

	pair, err := s.rates.FindRate(ctx, userID, s.base, currency)
	if err != nil {
		if errors.Is(err, store.ErrRateNotFound) {
			return decimal.Decimal{}, false, false, nil
		}
		return decimal.Decimal{}, false, false, err
	}

	value, ok := pair.EffectiveRate()
	if !ok {
		return decimal.Decimal{}, false, false, nil
	}

	return value, rateSource(pair) == rateSourceCustom, true, nil
}

// Refresh implements RateService. Every pair of the user gets a fresh
// provider rate derived through the base currency; pairs involving a
// currency the provider does not quote keep their last value.
func (s *rateService) Refresh(ctx context.Context, userID int64) ([]models.ExchangeRate, error) {
	log := logger.FromContext(ctx)

	quotes, err := s.provider.FetchRates(ctx, s.base)
	if err != nil {
		log.Err(err).
			Str("func", "*rateService.Refresh").
			Int64("user_id", userID).
			Str("base", s.base).
			Msg("provider fetch failed")
		return nil, err
	}

	pairs, err := s.rates.ListRates(ctx, userID)
	if err != nil {
		return nil, err
	}

	fetchedAt := s.now().UTC()
	updated := 0

	for _, pair := range pairs {
		quoteFrom, okFrom := s.quote(quotes, pair.FromCurrency)
		quoteTo, okTo := s.quote(quotes, pair.ToCurrency)
		if !okFrom || !okTo || quoteFrom.IsZero() {
			continue
		}

		rate := quoteTo.Div(quoteFrom)
		if _, err := s.rates.UpsertAPIRate(ctx, userID, pair.FromCurrency, pair.ToCurrency, rate, fetchedAt); err != nil {
			log.Err(err).
				Str("func", "*rateService.Refresh").
				Int64("user_id", userID).
				Str("pair", pair.FromCurrency+"/"+pair.ToCurrency).
				Msg("failed to store refreshed rate")
			return nil, err
		}
		updated++
	}

	log.Info().
		Str("func", "*rateService.Refresh").
		Int64("user_id", userID).
		Int("updated", updated).
		Int("pairs", len(pairs)).
		Msg("refreshed exchange rates")

	return s.rates.ListRates(ctx, userID)
}

// quote reads the provider's base→currency quote; the base itself is 1.
func (s *rateService) quote(quotes map[string]decimal.Decimal, currency string) (decimal.Decimal, bool) {
	if currency == s.base {
		return decimal.NewFromInt(1), true
	}

	value, ok := quotes[currency]
	return value, ok
}

// rateSource names which stored value a pair's effective rate comes from.
func rateSource(rate models.ExchangeRate) string {
	if rate.UseCustomRate && rate.CustomRate != nil {
		return rateSourceCustom
	}

	return rateSourceAPI
}
