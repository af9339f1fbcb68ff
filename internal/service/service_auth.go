// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

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
	"github.com/MKhiriev/go-accountant/internal/utils"
	"github.com/MKhiriev/go-accountant/internal/validators"
	"github.com/MKhiriev/go-accountant/models"
	"golang.org/x/crypto/bcrypt"
)

// defaultCurrency is assigned to accounts that register without one.
const defaultCurrency = "USD"

// authService is the concrete implementation of AuthService.
// It handles registration, password and Firebase sign-in, identity
// linking, and the JWT token lifecycle, using bcrypt for password
// storage and a FirebaseTokenVerifier for federated sign-in.
type authService struct {
	userRepository store.UserRepository

	// firebase verifies Google-signed ID tokens. A disabled
	// implementation is injected when no Firebase project is configured.
	firebase adapter.FirebaseTokenVerifier

	validator validators.Validator

	// bcryptCost is the work factor applied when hashing passwords.
	bcryptCost int

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	logger *logger.Logger
}

// NewAuthService constructs an AuthService wired to the given repository,
// Firebase verifier and validator, with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(userRepository store.UserRepository, firebase adapter.FirebaseTokenVerifier, validator validators.Validator, cfg config.App, logger *logger.Logger) AuthService {
	cost := cfg.BcryptCost
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}

	return &authService{
		userRepository: userRepository,
		firebase:       firebase,
		validator:      validator,
		bcryptCost:     cost,
		tokenSignKey:   cfg.TokenSignKey,
		tokenIssuer:    cfg.TokenIssuer,
		tokenDuration:  cfg.TokenDuration,
		logger:         logger,
	}
}

// Register creates a password account and signs it in.
//
// Returns the token + profile pair or:
//   - a validator error for malformed email or short password;
//   - store.ErrEmailAlreadyExists when the email is taken.
func (a *authService) Register(ctx context.Context, req models.RegisterRequest) (models.AuthResponse, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, req); err != nil {
		return models.AuthResponse{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), a.bcryptCost)
	if err != nil {
		log.Err(err).Str("func", "*authService.Register").Msg("error: password hashing failed")
		return models.AuthResponse{}, fmt.Errorf("password hashing failed: %w", err)
	}

	user, err := a.userRepository.CreateUser(ctx, models.User{
		Email:           normalizeEmail(req.Email),
		PasswordHash:    string(hash),
		AuthProvider:    models.ProviderPassword,
		DisplayName:     req.DisplayName,
		DefaultCurrency: defaultCurrency,
		IsActive:        true,
	})
	if err != nil {
		log.Err(err).Str("func", "*authService.Register").Str("email", req.Email).Msg("user creation ended with error")
		return models.AuthResponse{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return a.signIn(ctx, user)
}

// Login authenticates a password account.
//
// Unknown email and wrong password both yield ErrWrongCredentials so the
// response does not reveal which accounts exist.
func (a *authService) Login(ctx context.Context, req models.LoginRequest) (models.AuthResponse, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, req); err != nil {
		return models.AuthResponse{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	user, err := a.userRepository.FindUserByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return models.AuthResponse{}, ErrWrongCredentials
		}
		log.Err(err).Str("func", "*authService.Login").Str("email", req.Email).Msg("user search by email failed")
		return models.AuthResponse{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if !comparePassword(user.PasswordHash, req.Password) {
		log.Warn().Str("func", "*authService.Login").Int64("user_id", user.UserID).Msg("wrong password")
		return models.AuthResponse{}, ErrWrongCredentials
	}

	return a.signIn(ctx, user)
}

// FirebaseSignIn resolves a verified ID token to an account.
//
// Lookup order:
//  1. by firebase uid → sign in;
//  2. by the token's email → ErrAccountNotLinked (the account exists but
//     carries no Firebase identity; the client must prove ownership via
//     LinkGoogle);
//  3. otherwise a fresh account is created from the token claims.
func (a *authService) FirebaseSignIn(ctx context.Context, req models.FirebaseSignInRequest) (models.AuthResponse, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, req); err != nil {
		return models.AuthResponse{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	identity, err := a.firebase.VerifyIDToken(ctx, req.IDToken)
	if err != nil {
		log.Warn().Err(err).Str("func", "*authService.FirebaseSignIn").Msg("firebase token rejected")
		return models.AuthResponse{}, fmt.Errorf("%w: %w", ErrFirebaseTokenInvalid, err)
	}

	user, err := a.userRepository.FindUserByFirebaseUID(ctx, identity.UID)
	if err == nil {
		return a.signIn(ctx, user)
	}
	if !errors.Is(err, store.ErrUserNotFound) {
		log.Err(err).Str("func", "*authService.FirebaseSignIn").Msg("user search by firebase uid failed")
		return models.AuthResponse{}, fmt.Errorf("user search by firebase uid failed: %w", err)
	}

	if identity.Email != "" {
		if _, err = a.userRepository.FindUserByEmail(ctx, normalizeEmail(identity.Email)); err == nil {
			// The email belongs to an account without this Firebase
			// identity. Auto-linking would let anyone with a matching
			// Google account take it over.
			return models.AuthResponse{}, ErrAccountNotLinked
		}
		if !errors.Is(err, store.ErrUserNotFound) {
			log.Err(err).Str("func", "*authService.FirebaseSignIn").Msg("user search by email failed")
			return models.AuthResponse{}, fmt.Errorf("user search by email failed: %w", err)
		}
	}

	user, err = a.userRepository.CreateUser(ctx, newFirebaseUser(identity))
	if err != nil {
		log.Err(err).Str("func", "*authService.FirebaseSignIn").Str("firebase_uid", identity.UID).Msg("user creation ended with error")
		return models.AuthResponse{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	log.Info().Str("func", "*authService.FirebaseSignIn").Int64("user_id", user.UserID).Str("provider", string(user.AuthProvider)).Msg("created user from firebase sign-in")

	return a.signIn(ctx, user)
}

// LinkGoogle attaches a Firebase identity to the password account owning
// the token's email.
//
// The caller proves ownership with the account password, so the endpoint
// needs no bearer token. Returns:
//   - ErrFirebaseTokenInvalid when the ID token fails verification;
//   - store.ErrUserNotFound when no account owns the token's email;
//   - ErrNoPasswordSet / ErrWrongCredentials on password failures;
//   - ErrIdentityInUse when the identity is linked to another account.
func (a *authService) LinkGoogle(ctx context.Context, req models.LinkAccountRequest) (models.AuthResponse, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, req); err != nil {
		return models.AuthResponse{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	identity, err := a.firebase.VerifyIDToken(ctx, req.IDToken)
	if err != nil {
		return models.AuthResponse{}, fmt.Errorf("%w: %w", ErrFirebaseTokenInvalid, err)
	}

	user, err := a.userRepository.FindUserByEmail(ctx, normalizeEmail(identity.Email))
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return models.AuthResponse{}, fmt.Errorf("%w: no account with this email", err)
		}
		return models.AuthResponse{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if user.PasswordHash == "" {
		return models.AuthResponse{}, ErrNoPasswordSet
	}
	if !comparePassword(user.PasswordHash, req.Password) {
		log.Warn().Str("func", "*authService.LinkGoogle").Int64("user_id", user.UserID).Msg("wrong password")
		return models.AuthResponse{}, ErrWrongCredentials
	}

	// The identity may already be linked elsewhere.
	if other, findErr := a.userRepository.FindUserByFirebaseUID(ctx, identity.UID); findErr == nil && other.UserID != user.UserID {
		return models.AuthResponse{}, ErrIdentityInUse
	} else if findErr != nil && !errors.Is(findErr, store.ErrUserNotFound) {
		return models.AuthResponse{}, fmt.Errorf("user search by firebase uid failed: %w", findErr)
	}

	linked, err := a.userRepository.LinkFirebase(ctx, user.UserID, models.FirebaseLink{
		FirebaseUID:   identity.UID,
		GoogleID:      identity.GoogleID,
		AuthProvider:  models.ProviderGoogle,
		EmailVerified: identity.EmailVerified,
	})
	if err != nil {
		log.Err(err).Str("func", "*authService.LinkGoogle").Int64("user_id", user.UserID).Msg("linking firebase identity failed")
		return models.AuthResponse{}, fmt.Errorf("linking firebase identity failed: %w", err)
	}

	// Backfill profile fields the password account never had.
	backfill := models.ProfileUpdateRequest{}
	if linked.DisplayName == nil && identity.Name != "" {
		name := identity.Name
		backfill.DisplayName = &name
	}
	if linked.PhotoURL == nil && identity.Picture != "" {
		picture := identity.Picture
		backfill.PhotoURL = &picture
	}
	if backfill.DisplayName != nil || backfill.PhotoURL != nil {
		if linked, err = a.userRepository.UpdateProfile(ctx, linked.UserID, backfill); err != nil {
			log.Warn().Err(err).Str("func", "*authService.LinkGoogle").Int64("user_id", user.UserID).Msg("profile backfill failed")
			linked, _ = a.userRepository.GetUserByID(ctx, user.UserID)
		}
	}

	log.Info().Str("func", "*authService.LinkGoogle").Int64("user_id", user.UserID).Msg("linked google identity")

	return a.signIn(ctx, linked)
}

// UnlinkGoogle detaches the Firebase identity and reverts the account to
// password sign-in. Rejected with ErrNoPasswordSet when the account has
// no password, because that would leave it without any sign-in method.
func (a *authService) UnlinkGoogle(ctx context.Context, userID int64) (models.User, error) {
	log := logger.FromContext(ctx)

	user, err := a.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		return models.User{}, fmt.Errorf("user lookup failed: %w", err)
	}

	if user.PasswordHash == "" {
		return models.User{}, ErrNoPasswordSet
	}

	// An empty uid clears the linked identity columns.
	unlinked, err := a.userRepository.LinkFirebase(ctx, userID, models.FirebaseLink{
		AuthProvider:  models.ProviderPassword,
		EmailVerified: user.EmailVerified,
	})
	if err != nil {
		log.Err(err).Str("func", "*authService.UnlinkGoogle").Int64("user_id", userID).Msg("unlinking firebase identity failed")
		return models.User{}, fmt.Errorf("unlinking firebase identity failed: %w", err)
	}

	return unlinked, nil
}

// Providers lists the sign-in methods usable on the account.
func (a *authService) Providers(ctx context.Context, userID int64) (models.AuthProvidersResponse, error) {
	user, err := a.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		return models.AuthProvidersResponse{}, fmt.Errorf("user lookup failed: %w", err)
	}

	resp := models.AuthProvidersResponse{
		Providers:   []string{},
		HasPassword: user.PasswordHash != "",
		HasGoogle:   user.FirebaseUID != nil,
	}
	if resp.HasPassword {
		resp.Providers = append(resp.Providers, string(models.ProviderPassword))
	}
	if resp.HasGoogle {
		resp.Providers = append(resp.Providers, string(models.ProviderGoogle))
	}

	return resp, nil
}

// Profile returns the caller's account.
func (a *authService) Profile(ctx context.Context, userID int64) (models.User, error) {
	user, err := a.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		return models.User{}, fmt.Errorf("user lookup failed: %w", err)
	}

	return user, nil
}

// UpdateProfile applies the non-nil fields of req to the caller's account.
func (a *authService) UpdateProfile(ctx context.Context, userID int64, req models.ProfileUpdateRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, req); err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	user, err := a.userRepository.UpdateProfile(ctx, userID, req)
	if err != nil {
		log.Err(err).Str("func", "*authService.UpdateProfile").Int64("user_id", userID).Msg("profile update failed")
		return models.User{}, fmt.Errorf("profile update failed: %w", err)
	}

	return user, nil
}

// ParseToken validates and parses a raw JWT string.
//
// Any validation failure (expired, wrong issuer, malformed) is normalised
// to ErrTokenIsExpiredOrInvalid so that callers do not need to inspect
// low-level JWT errors.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}

// signIn stamps last_login and issues the token + profile response.
func (a *authService) signIn(ctx context.Context, user models.User) (models.AuthResponse, error) {
	log := logger.FromContext(ctx)

	if err := a.userRepository.TouchLastLogin(ctx, user.UserID); err != nil {
		// Sign-in still succeeds; the stamp is informational.
		log.Warn().Err(err).Str("func", "*authService.signIn").Int64("user_id", user.UserID).Msg("last login update failed")
	}

	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.UserID, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.AuthResponse{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return models.AuthResponse{
		AccessToken: token.String(),
		TokenType:   "Bearer",
		User:        user,
	}, nil
}

// newFirebaseUser builds the account row created on first Firebase
// sign-in. Google-backed identities get the google provider and keep the
// subject as google id.
func newFirebaseUser(identity adapter.FirebaseIdentity) models.User {
	provider := models.ProviderFirebase
	if identity.SignInProvider == "google.com" {
		provider = models.ProviderGoogle
	}

	uid := identity.UID
	user := models.User{
		Email:           normalizeEmail(identity.Email),
		AuthProvider:    provider,
		FirebaseUID:     &uid,
		GoogleID:        identity.GoogleID,
		EmailVerified:   identity.EmailVerified,
		DefaultCurrency: defaultCurrency,
		IsActive:        true,
	}
	if identity.Name != "" {
		name := identity.Name
		user.DisplayName = &name
	}
	if identity.Picture != "" {
		picture := identity.Picture
		user.PhotoURL = &picture
	}

	return user
}

// comparePassword reports whether password matches the stored bcrypt
// hash. Accounts without a password (Firebase-only) never match.
func comparePassword(hash, password string) bool {
	if hash == "" {
		return false
	}

	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
