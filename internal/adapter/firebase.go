// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-accountant/internal/config"
	"github.com/MKhiriev/go-accountant/internal/logger"
	"github.com/MKhiriev/go-accountant/internal/utils"
	"github.com/golang-jwt/jwt/v5"
)

const (
	// googleCertsURL serves the rotating X.509 certificates Firebase ID
	// tokens are signed with, as a JSON object keyed by kid.
	googleCertsURL = "https://www.googleapis.com/robot/v1/metadata/x509/securetoken@system.gserviceaccount.com"

	// defaultCertsTTL applies when the certs response carries no usable
	// Cache-Control max-age.
	defaultCertsTTL = time.Hour

	firebaseIssuerPrefix = "https://securetoken.google.com/"

	signInProviderGoogle = "google.com"
)

type firebaseVerifier struct {
	client    *utils.HTTPClient
	certsURL  string
	projectID string
	issuer    string

	mu        sync.RWMutex
	keys      map[string]*rsa.PublicKey
	refreshAt time.Time

	now    func() time.Time
	logger *logger.Logger
}

// NewFirebaseVerifier constructs a [FirebaseTokenVerifier] that validates
// RS256 Firebase ID tokens against Google's published signing certificates.
// Certificates are fetched lazily and cached for the Cache-Control max-age
// of the response.
func NewFirebaseVerifier(cfg config.Firebase, logger *logger.Logger) (FirebaseTokenVerifier, error) {
	projectID := strings.TrimSpace(cfg.ProjectID)
	if projectID == "" {
		return nil, fmt.Errorf("firebase project id is not configured")
	}

	certsURL := strings.TrimSpace(cfg.CertsURL)
	if certsURL == "" {
		certsURL = googleCertsURL
	}

	client := utils.NewHTTPClient(10 * time.Second)

	return &firebaseVerifier{
		client:    client,
		certsURL:  certsURL,
		projectID: projectID,
		issuer:    firebaseIssuerPrefix + projectID,
		keys:      map[string]*rsa.PublicKey{},
		now:       time.Now,
		logger:    logger,
	}, nil
}

// firebaseClaims is the claim set of a Firebase ID token. Registered claims
// carry subject (the Firebase UID), audience and issuer; the nested firebase
// object names the upstream identity provider.
type firebaseClaims struct {
	jwt.RegisteredClaims

	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`

	Firebase struct {
		SignInProvider string `json:"sign_in_provider"`
	} `json:"firebase"`
}

// VerifyIDToken implements [FirebaseTokenVerifier]. It resolves the signing
// key by the token's kid header, verifies the RS256 signature and checks
// issuer, audience and expiry. For Google sign-ins the token subject doubles
// as the Google account id.
func (v *firebaseVerifier) VerifyIDToken(ctx context.Context, idToken string) (FirebaseIdentity, error) {
	log := logger.FromContext(ctx)

	kid, err := tokenKeyID(idToken)
	if err != nil {
		return FirebaseIdentity{}, fmt.Errorf("%w: %w", ErrTokenVerification, err)
	}

	key, err := v.signingKey(ctx, kid)
	if err != nil {
		return FirebaseIdentity{}, fmt.Errorf("%w: %w", ErrTokenVerification, err)
	}

	claims := &firebaseClaims{}
	_, err = jwt.ParseWithClaims(idToken, claims,
		func(*jwt.Token) (any, error) { return key, nil },
		jwt.WithValidMethods([]string{"RS256"}),
		jwt.WithIssuer(v.issuer),
		jwt.WithAudience(v.projectID),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		log.Warn().
			Str("func", "*firebaseVerifier.VerifyIDToken").
			Err(err).
			Msg("rejected firebase token")
		return FirebaseIdentity{}, fmt.Errorf("%w: %w", ErrTokenVerification, err)
	}

	if claims.Subject == "" {
		return FirebaseIdentity{}, fmt.Errorf("%w: token has no subject", ErrTokenVerification)
	}

	identity := FirebaseIdentity{
		UID:            claims.Subject,
		Email:          claims.Email,
		EmailVerified:  claims.EmailVerified,
		Name:           claims.Name,
		Picture:        claims.Picture,
		SignInProvider: claims.Firebase.SignInProvider,
	}
	if identity.SignInProvider == signInProviderGoogle {
		googleID := claims.Subject
		identity.GoogleID = &googleID
	}

	return identity, nil
}

// tokenKeyID extracts the kid header without trusting the signature; the
// value only selects which published certificate to verify against.
func tokenKeyID(idToken string) (string, error) {
	token, _, err := jwt.NewParser().ParseUnverified(idToken, jwt.MapClaims{})
	if err != nil {
		return "", err
	}

	kid, _ := token.Header["kid"].(string)
	if kid == "" {
		return "", fmt.Errorf("token header has no kid")
	}

	return kid, nil
}

func (v *firebaseVerifier) signingKey(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	v.mu.RLock()
	key, known := v.keys[kid]
	fresh := v.now().Before(v.refreshAt)
	v.mu.RUnlock()

	if known && fresh {
		return key, nil
	}

	if err := v.refreshKeys(ctx); err != nil {
		// A stale key still verifies real tokens; failing outright is
		// only right when the kid was never seen.
		if known {
			return key, nil
		}
		return nil, err
	}

	v.mu.RLock()
	key, known = v.keys[kid]
	v.mu.RUnlock()

	if !known {
		return nil, ErrUnknownKeyID
	}
	return key, nil
}

func (v *firebaseVerifier) refreshKeys(ctx context.Context) error {
	log := logger.FromContext(ctx)

	var payload map[string]string
	resp, err := v.client.R().
		SetContext(ctx).
		SetResult(&payload).
		Get(v.certsURL)
	if err != nil {
		return fmt.Errorf("fetch signing certs: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("fetch signing certs: http %d", resp.StatusCode())
	}

	keys := make(map[string]*rsa.PublicKey, len(payload))
	for kid, certPEM := range payload {
		parsed, parseErr := parseCertKey(certPEM)
		if parseErr != nil {
			log.Err(parseErr).
				Str("func", "*firebaseVerifier.refreshKeys").
				Str("kid", kid).
				Msg("skipping unparsable signing cert")
			continue
		}
		keys[kid] = parsed
	}
	if len(keys) == 0 {
		return fmt.Errorf("no usable signing certs in response")
	}

	ttl := certsTTL(resp.Header().Get("Cache-Control"))

	v.mu.Lock()
	v.keys = keys
	v.refreshAt = v.now().Add(ttl)
	v.mu.Unlock()

	log.Debug().
		Str("func", "*firebaseVerifier.refreshKeys").
		Int("keys", len(keys)).
		Dur("ttl", ttl).
		Msg("refreshed firebase signing certs")

	return nil
}

func parseCertKey(certPEM string) (*rsa.PublicKey, error) {
	block, _ := pem.Decode([]byte(certPEM))
	if block == nil {
		return nil, fmt.Errorf("no PEM block in certificate")
	}

	cert, err := x509.ParseCertificate(block.Bytes)
	if err != nil {
		return nil, err
	}

	key, ok := cert.PublicKey.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("certificate key is %T, want RSA", cert.PublicKey)
	}

	return key, nil
}

// certsTTL pulls max-age out of a Cache-Control header. Google serves the
// cert endpoint with max-age set to the rotation window.
func certsTTL(cacheControl string) time.Duration {
	for _, directive := range strings.Split(cacheControl, ",") {
		rest, found := strings.CutPrefix(strings.TrimSpace(directive), "max-age=")
		if !found {
			continue
		}
		if secs, err := strconv.Atoi(rest); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
	}

	return defaultCertsTTL
}
