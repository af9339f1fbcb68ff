// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/go-accountant/internal/config"
	"github.com/MKhiriev/go-accountant/internal/logger"
	"github.com/MKhiriev/go-accountant/internal/utils"
	"github.com/MKhiriev/go-accountant/models"
)

// defaultAppleVerifyURL is Apple's production receipt endpoint; Google has
// no usable default because its URL embeds the application package name.
const defaultAppleVerifyURL = "https://buy.itunes.apple.com/verifyReceipt"

type storeVerifier struct {
	client    *utils.HTTPClient
	googleURL string
	appleURL  string

	logger *logger.Logger
}

// NewStoreVerifier constructs a [PurchaseVerifier] speaking to the Google
// Play purchases API and Apple's verifyReceipt endpoint.
func NewStoreVerifier(cfg config.IAP, logger *logger.Logger) PurchaseVerifier {
	appleURL := strings.TrimSpace(cfg.AppleVerifyURL)
	if appleURL == "" {
		appleURL = defaultAppleVerifyURL
	}

	client := utils.NewHTTPClient(20 * time.Second)

	return &storeVerifier{
		client:    client,
		googleURL: strings.TrimRight(strings.TrimSpace(cfg.GoogleVerifyURL), "/"),
		appleURL:  appleURL,
		logger:    logger,
	}
}

// VerifyPurchase implements [PurchaseVerifier].
func (s *storeVerifier) VerifyPurchase(ctx context.Context, platform models.Platform, productID, purchaseToken string) (PurchaseVerification, error) {
	switch platform {
	case models.PlatformAndroid:
		return s.verifyGooglePlay(ctx, productID, purchaseToken)
	case models.PlatformIOS:
		return s.verifyAppStore(ctx, productID, purchaseToken)
	default:
		return PurchaseVerification{}, fmt.Errorf("unsupported platform %q", platform)
	}
}

// googlePurchaseResponse is the subset of the Play Developer API purchase
// resource the verifier inspects. purchaseState 0 means purchased.
type googlePurchaseResponse struct {
	PurchaseState   *int   `json:"purchaseState"`
	PaymentState    *int   `json:"paymentState"`
	StartTimeMillis string `json:"startTimeMillis"`
	OrderID         string `json:"orderId"`
}

func (s *storeVerifier) verifyGooglePlay(ctx context.Context, productID, purchaseToken string) (PurchaseVerification, error) {
	log := logger.FromContext(ctx)

	if s.googleURL == "" {
		return PurchaseVerification{}, fmt.Errorf("google play verification is not configured")
	}
	if productID == "" {
		// The Play API addresses purchases by product, so a bare token
		// cannot be checked.
		return PurchaseVerification{}, fmt.Errorf("%w: product id required for google play", ErrPurchaseRejected)
	}

	var payload googlePurchaseResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetResult(&payload).
		Get(s.googleURL + "/" + productID + "/tokens/" + purchaseToken)
	if err != nil {
		return PurchaseVerification{}, fmt.Errorf("google play request: %w", err)
	}
	if resp.IsError() {
		log.Warn().
			Str("func", "*storeVerifier.verifyGooglePlay").
			Str("product_id", productID).
			Int("status", resp.StatusCode()).
			Msg("google play rejected the purchase")
		return PurchaseVerification{}, fmt.Errorf("%w: google play http %d", ErrPurchaseRejected, resp.StatusCode())
	}
	if payload.PurchaseState != nil && *payload.PurchaseState != 0 {
		return PurchaseVerification{}, fmt.Errorf("%w: purchase state %d", ErrPurchaseRejected, *payload.PurchaseState)
	}

	verification := PurchaseVerification{ProductID: productID}
	if millis, parseErr := strconv.ParseInt(payload.StartTimeMillis, 10, 64); parseErr == nil {
		verification.PurchasedAt = time.UnixMilli(millis)
	}

	return verification, nil
}

// appleReceiptResponse is the subset of Apple's verifyReceipt response the
// verifier inspects. Status 0 means the receipt is valid.
type appleReceiptResponse struct {
	Status  int `json:"status"`
	Receipt struct {
		InApp []struct {
			ProductID      string `json:"product_id"`
			PurchaseDateMS string `json:"purchase_date_ms"`
		} `json:"in_app"`
	} `json:"receipt"`
}

func (s *storeVerifier) verifyAppStore(ctx context.Context, productID, purchaseToken string) (PurchaseVerification, error) {
	log := logger.FromContext(ctx)

	var payload appleReceiptResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"receipt-data": purchaseToken}).
		SetResult(&payload).
		Post(s.appleURL)
	if err != nil {
		return PurchaseVerification{}, fmt.Errorf("app store request: %w", err)
	}
	if resp.IsError() {
		return PurchaseVerification{}, fmt.Errorf("%w: app store http %d", ErrPurchaseRejected, resp.StatusCode())
	}
	if payload.Status != 0 {
		log.Warn().
			Str("func", "*storeVerifier.verifyAppStore").
			Int("status", payload.Status).
			Msg("app store rejected the receipt")
		return PurchaseVerification{}, fmt.Errorf("%w: receipt status %d", ErrPurchaseRejected, payload.Status)
	}

	items := payload.Receipt.InApp
	if len(items) == 0 {
		return PurchaseVerification{}, fmt.Errorf("%w: receipt carries no purchases", ErrPurchaseRejected)
	}

	// Receipts from restores may carry several line items; the claimed
	// product must be among them.
	matched := items[0]
	if productID != "" {
		found := false
		for _, item := range items {
			if item.ProductID == productID {
				matched = item
				found = true
				break
			}
		}
		if !found {
			return PurchaseVerification{}, fmt.Errorf("%w: product %s not in receipt", ErrPurchaseRejected, productID)
		}
	}

	verification := PurchaseVerification{ProductID: matched.ProductID}
	if millis, parseErr := strconv.ParseInt(matched.PurchaseDateMS, 10, 64); parseErr == nil {
		verification.PurchasedAt = time.UnixMilli(millis)
	}

	return verification, nil
}
