// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-accountant/internal/adapter"
	"github.com/MKhiriev/go-accountant/internal/logger"
	"github.com/MKhiriev/go-accountant/internal/store"
	"github.com/MKhiriev/go-accountant/internal/utils"
	"github.com/MKhiriev/go-accountant/internal/validators"
	"github.com/MKhiriev/go-accountant/models"
)

// product maps a store product id onto a subscription tier and duration.
type product struct {
	tier models.SubscriptionTier

	// duration is zero for purchases that never expire.
	duration time.Duration
}

// productCatalog lists the sellable products. Keys are the product ids
// configured in both stores.
var productCatalog = map[string]product{
	"premium_monthly": {tier: models.TierPremium, duration: 30 * 24 * time.Hour},
	"premium_yearly":  {tier: models.TierPremium, duration: 365 * 24 * time.Hour},
	"premium_lifetime": {
		tier: models.TierPremiumLifetime,
	},
}

// iapService implements IAPService: store verification, restore and the
// subscription status read.
type iapService struct {
	users     store.UserRepository
	purchases store.PurchaseRepository
	verifier  adapter.PurchaseVerifier
	validator validators.Validator
	now       func() time.Time
	logger    *logger.Logger
}

// NewIAPService constructs the in-app purchase service.
func NewIAPService(users store.UserRepository, purchases store.PurchaseRepository, verifier adapter.PurchaseVerifier, validator validators.Validator, logger *logger.Logger) IAPService {
	return &iapService{
		users:     users,
		purchases: purchases,
		verifier:  verifier,
		validator: validator,
		now:       time.Now,
		logger:    logger,
	}
}

// Verify implements IAPService.
//
// The raw token never persists; its hash deduplicates resubmissions, so
// re-verifying an already recorded purchase is an idempotent success.
// A token recorded for a different account is a conflict.
func (s *iapService) Verify(ctx context.Context, userID int64, req models.VerifyPurchaseRequest) (models.SubscriptionStatus, error) {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, req); err != nil {
		return models.SubscriptionStatus{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	item, known := productCatalog[req.ProductID]
	if !known {
		return models.SubscriptionStatus{}, fmt.Errorf("%w: %s", ErrUnknownProduct, req.ProductID)
	}

	tokenHash := utils.TokenHash(req.PurchaseToken)

	recorded, err := s.purchases.FindByTokenHash(ctx, tokenHash)
	switch {
	case err == nil:
		if recorded.UserID == userID {
			return s.Status(ctx, userID)
		}
		return models.SubscriptionStatus{}, store.ErrPurchaseExists
	case !errors.Is(err, store.ErrPurchaseNotFound):
		return models.SubscriptionStatus{}, err
	}

	if _, err := s.verifier.VerifyPurchase(ctx, req.Platform, req.ProductID, req.PurchaseToken); err != nil {
		log.Warn().
			Err(err).
			Str("func", "*iapService.Verify").
			Int64("user_id", userID).
			Str("product_id", req.ProductID).
			Msg("store rejected the purchase")
		return models.SubscriptionStatus{}, fmt.Errorf("%w: %w", ErrVerificationFailed, err)
	}

	now := s.now().UTC()
	expiresAt := expiryFor(item, now)

	purchase := models.Purchase{
		UserID:     userID,
		Platform:   req.Platform,
		ProductID:  req.ProductID,
		TokenHash:  tokenHash,
		Tier:       item.tier,
		ExpiresAt:  expiresAt,
		VerifiedAt: now,
	}

	if _, err := s.purchases.InsertPurchase(ctx, purchase); err != nil {
		// A concurrent verify of the same token may have won the insert.
		if errors.Is(err, store.ErrPurchaseExists) {
			if racing, findErr := s.purchases.FindByTokenHash(ctx, tokenHash); findErr == nil && racing.UserID == userID {
				return s.Status(ctx, userID)
			}
		}
		log.Err(err).
			Str("func", "*iapService.Verify").
			Int64("user_id", userID).
			Str("product_id", req.ProductID).
			Msg("failed to record purchase")
		return models.SubscriptionStatus{}, err
	}

	if err := s.users.UpdateSubscription(ctx, userID, item.tier, expiresAt); err != nil {
		log.Err(err).
			Str("func", "*iapService.Verify").
			Int64("user_id", userID).
			Msg("failed to update subscription")
		return models.SubscriptionStatus{}, err
	}

	log.Info().
		Str("func", "*iapService.Verify").
		Int64("user_id", userID).
		Str("product_id", req.ProductID).
		Str("tier", string(item.tier)).
		Msg("purchase verified, subscription activated")

	return s.Status(ctx, userID)
}

// Restore implements IAPService.
//
// Tokens the backend already recorded restore without a store round trip;
// the rest are verified against the store. The best surviving purchase
// becomes the active subscription: lifetime beats timed, and among timed
// ones the latest expiry wins.
func (s *iapService) Restore(ctx context.Context, userID int64, req models.RestorePurchasesRequest) (models.RestoreResponse, error) {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, req); err != nil {
		return models.RestoreResponse{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	now := s.now().UTC()

	var response models.RestoreResponse
	var best *models.Purchase

	for _, token := range req.PurchaseTokens {
		purchase, ok := s.restoreToken(ctx, userID, req.Platform, token, now)
		if !ok {
			continue
		}
		response.RestoredCount++

		if !survives(purchase, now) {
			continue
		}
		if best == nil || betterPurchase(purchase, *best) {
			p := purchase
			best = &p
		}
	}

	if best != nil {
		if err := s.users.UpdateSubscription(ctx, userID, best.Tier, best.ExpiresAt); err != nil {
			log.Err(err).
				Str("func", "*iapService.Restore").
				Int64("user_id", userID).
				Msg("failed to apply restored subscription")
			return models.RestoreResponse{}, err
		}
		response.ActiveSubscription = best.Tier
		response.ExpiresAt = best.ExpiresAt
	}

	log.Info().
		Str("func", "*iapService.Restore").
		Int64("user_id", userID).
		Int("submitted", len(req.PurchaseTokens)).
		Int("restored", response.RestoredCount).
		Msg("purchase restore finished")

	return response, nil
}

// restoreToken resolves one submitted token to a verified purchase,
// recording fresh verifications. ok is false for tokens that belong to
// another account, fail store verification, or name unknown products.
func (s *iapService) restoreToken(ctx context.Context, userID int64, platform models.Platform, token string, now time.Time) (models.Purchase, bool) {
	log := logger.FromContext(ctx)

	tokenHash := utils.TokenHash(token)

	recorded, err := s.purchases.FindByTokenHash(ctx, tokenHash)
	switch {
	case err == nil:
		if recorded.UserID != userID {
			return models.Purchase{}, false
		}
		return recorded, true
	case !errors.Is(err, store.ErrPurchaseNotFound):
		log.Warn().
			Err(err).
			Str("func", "*iapService.restoreToken").
			Int64("user_id", userID).
			Msg("purchase lookup failed, skipping token")
		return models.Purchase{}, false
	}

	verification, err := s.verifier.VerifyPurchase(ctx, platform, "", token)
	if err != nil {
		return models.Purchase{}, false
	}

	item, known := productCatalog[verification.ProductID]
	if !known {
		log.Warn().
			Str("func", "*iapService.restoreToken").
			Int64("user_id", userID).
			Str("product_id", verification.ProductID).
			Msg("store verified a product outside the catalog, skipping")
		return models.Purchase{}, false
	}

	purchase := models.Purchase{
		UserID:     userID,
		Platform:   platform,
		ProductID:  verification.ProductID,
		TokenHash:  tokenHash,
		Tier:       item.tier,
		ExpiresAt:  expiryFor(item, now),
		VerifiedAt: now,
	}

	saved, err := s.purchases.InsertPurchase(ctx, purchase)
	if err != nil {
		if errors.Is(err, store.ErrPurchaseExists) {
			// Duplicate token within the same restore call.
			return purchase, true
		}
		log.Warn().
			Err(err).
			Str("func", "*iapService.restoreToken").
			Int64("user_id", userID).
			Msg("failed to record restored purchase")
		return models.Purchase{}, false
	}

	return saved, true
}

// Status implements IAPService.
func (s *iapService) Status(ctx context.Context, userID int64) (models.SubscriptionStatus, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*iapService.Status").
			Int64("user_id", userID).
			Msg("failed to load user")
		return models.SubscriptionStatus{}, err
	}

	now := s.now().UTC()

	status := models.SubscriptionStatus{
		Tier:      user.SubscriptionTier,
		IsPremium: user.IsPremium(now),
		ExpiresAt: user.SubscriptionExpiresAt,
	}
	if status.Tier == "" {
		status.Tier = models.TierFree
	}

	if user.SubscriptionExpiresAt != nil {
		days := int(user.SubscriptionExpiresAt.Sub(now).Hours() / 24)
		if days < 0 {
			days = 0
		}
		status.DaysRemaining = &days
	}

	return status, nil
}

// expiryFor computes when a product bought now stops working; nil means
// it never does.
func expiryFor(item product, now time.Time) *time.Time {
	if item.duration == 0 {
		return nil
	}

	expiry := now.Add(item.duration)
	return &expiry
}

// survives reports whether a purchase still grants access at now.
func survives(p models.Purchase, now time.Time) bool {
	return p.ExpiresAt == nil || p.ExpiresAt.After(now)
}

// betterPurchase reports whether a beats b as the subscription to apply:
// lifetime outranks timed, later expiry outranks earlier.
func betterPurchase(a, b models.Purchase) bool {
	aLifetime := a.ExpiresAt == nil
	bLifetime := b.ExpiresAt == nil

	if aLifetime != bLifetime {
		return aLifetime
	}
	if aLifetime {
		return false
	}

	return a.ExpiresAt.After(*b.ExpiresAt)
}
