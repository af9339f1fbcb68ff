// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/MKhiriev/go-accountant/internal/config"
	"github.com/MKhiriev/go-accountant/internal/logger"
	"github.com/MKhiriev/go-accountant/internal/utils"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

// defaultRatesCacheTTL bounds cached provider responses when no TTL is
// configured.
const defaultRatesCacheTTL = 15 * time.Minute

// ratesCacheKey namespaces cached provider responses per base currency.
func ratesCacheKey(base string) string {
	return "rates:" + base
}

type ratesProvider struct {
	client      *utils.HTTPClient
	providerURL string
	apiKey      string

	// cache is optional; nil means every fetch hits the provider.
	cache    *redis.Client
	cacheTTL time.Duration

	logger *logger.Logger
}

// NewRatesProvider constructs a [RateProvider] backed by an HTTP rate API
// and an optional redis response cache. A nil cache client disables caching;
// a down redis degrades to direct fetches instead of failing.
func NewRatesProvider(cfg config.Rates, cache *redis.Client, cacheTTL time.Duration, logger *logger.Logger) (RateProvider, error) {
	providerURL, err := normalizeBaseURL(cfg.ProviderURL)
	if err != nil {
		return nil, fmt.Errorf("invalid rate provider url: %w", err)
	}

	if cacheTTL <= 0 {
		cacheTTL = defaultRatesCacheTTL
	}

	client := utils.NewHTTPClient(15 * time.Second)

	return &ratesProvider{
		client:      client,
		providerURL: providerURL,
		apiKey:      cfg.APIKey,
		cache:       cache,
		cacheTTL:    cacheTTL,
		logger:      logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// ratesResponse is the provider wire shape: rates keyed by counter currency,
// quoted against one base.
type ratesResponse struct {
	Base  string                     `json:"base"`
	Rates map[string]decimal.Decimal `json:"rates"`
}

// FetchRates implements [RateProvider]. Cached responses are served while
// their TTL holds; anything redis-related that fails is logged and treated
// as a cache miss.
func (p *ratesProvider) FetchRates(ctx context.Context, base string) (map[string]decimal.Decimal, error) {
	base = strings.ToUpper(strings.TrimSpace(base))

	if rates, ok := p.fromCache(ctx, base); ok {
		return rates, nil
	}

	rates, err := p.fetchDirect(ctx, base)
	if err != nil {
		return nil, err
	}

	p.storeCache(ctx, base, rates)
	return rates, nil
}

func (p *ratesProvider) fetchDirect(ctx context.Context, base string) (map[string]decimal.Decimal, error) {
	log := logger.FromContext(ctx)

	var payload ratesResponse
	req := p.client.R().
		SetContext(ctx).
		SetQueryParam("base", base).
		SetResult(&payload)
	if p.apiKey != "" {
		req.SetQueryParam("api_key", p.apiKey)
	}

	resp, err := req.Get(p.providerURL)
	if err != nil {
		log.Err(err).
			Str("func", "*ratesProvider.fetchDirect").
			Str("base", base).
			Msg("rate provider request failed")
		return nil, fmt.Errorf("%w: %w", ErrProviderRequest, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: http %d", ErrProviderRequest, resp.StatusCode())
	}
	if len(payload.Rates) == 0 {
		return nil, fmt.Errorf("%w: response carries no rates", ErrProviderRequest)
	}

	log.Debug().
		Str("func", "*ratesProvider.fetchDirect").
		Str("base", base).
		Int("rates", len(payload.Rates)).
		Msg("fetched rates from provider")

	return payload.Rates, nil
}

func (p *ratesProvider) fromCache(ctx context.Context, base string) (map[string]decimal.Decimal, bool) {
	if p.cache == nil {
		return nil, false
	}

	log := logger.FromContext(ctx)

	raw, err := p.cache.Get(ctx, ratesCacheKey(base)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Warn().
				Str("func", "*ratesProvider.fromCache").
				Err(err).
				Msg("rates cache unavailable, fetching directly")
		}
		return nil, false
	}

	var rates map[string]decimal.Decimal
	if err = json.Unmarshal(raw, &rates); err != nil {
		log.Warn().
			Str("func", "*ratesProvider.fromCache").
			Err(err).
			Msg("discarding corrupt cached rates")
		return nil, false
	}

	return rates, true
}

func (p *ratesProvider) storeCache(ctx context.Context, base string, rates map[string]decimal.Decimal) {
	if p.cache == nil {
		return
	}

	log := logger.FromContext(ctx)

	raw, err := json.Marshal(rates)
	if err != nil {
		return
	}

	if err = p.cache.Set(ctx, ratesCacheKey(base), raw, p.cacheTTL).Err(); err != nil {
		log.Warn().
			Str("func", "*ratesProvider.storeCache").
			Err(err).
			Msg("failed to cache rates")
	}
}
