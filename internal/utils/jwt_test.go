package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	testIssuer  = "go-accountant"
	testSignKey = "secret-key"
)

func TestGenerateJWTToken_Success(t *testing.T) {
	token, err := GenerateJWTToken(testIssuer, 123, time.Hour, testSignKey)

	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if token.SignedString == "" {
		t.Error("expected non-empty SignedString")
	}
	if token.Token == nil {
		t.Fatal("expected non-nil jwt.Token object")
	}

	claims, ok := token.Token.Claims.(*jwt.RegisteredClaims)
	if !ok {
		t.Fatal("could not cast claims to RegisteredClaims")
	}
	if claims.Issuer != testIssuer {
		t.Errorf("expected issuer %s, got %s", testIssuer, claims.Issuer)
	}
	if claims.Subject != "123" {
		t.Errorf("expected subject '123', got %s", claims.Subject)
	}
}

func TestGenerateJWTToken_InvalidParams(t *testing.T) {
	tests := []struct {
		name     string
		issuer   string
		duration time.Duration
		key      string
	}{
		{"empty issuer", "", time.Hour, "key"},
		{"zero duration", "iss", 0, "key"},
		{"empty key", "iss", time.Hour, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateJWTToken(tt.issuer, 1, tt.duration, tt.key)
			if err == nil {
				t.Error("expected error for invalid parameters, got nil")
			}
		})
	}
}

func TestValidateAndParseJWTToken_RoundTrip(t *testing.T) {
	genToken, err := GenerateJWTToken(testIssuer, 456, 5*time.Minute, testSignKey)
	if err != nil {
		t.Fatalf("generating token: %v", err)
	}

	parsedToken, err := ValidateAndParseJWTToken(genToken.SignedString, testSignKey, testIssuer)

	if err != nil {
		t.Fatalf("expected token to be valid, got error: %v", err)
	}
	if parsedToken.UserID != 456 {
		t.Errorf("expected userID 456, got %d", parsedToken.UserID)
	}
}

func TestValidateAndParseJWTToken_Rejections(t *testing.T) {
	sign := func(userID int64, duration time.Duration, issuer string) string {
		t.Helper()
		genToken, err := GenerateJWTToken(issuer, userID, duration, testSignKey)
		if err != nil {
			t.Fatalf("generating token: %v", err)
		}
		return genToken.SignedString
	}

	tests := []struct {
		name        string
		tokenString string
		key         string
		issuer      string
	}{
		{
			name:        "signature from a different key",
			tokenString: sign(1, time.Hour, testIssuer),
			key:         "wrong-key",
			issuer:      testIssuer,
		},
		{
			name:        "foreign issuer",
			tokenString: sign(1, time.Hour, "someone-else"),
			key:         testSignKey,
			issuer:      testIssuer,
		},
		{
			name:        "malformed token string",
			tokenString: "not.a.token",
			key:         testSignKey,
			issuer:      testIssuer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ValidateAndParseJWTToken(tt.tokenString, tt.key, tt.issuer); err == nil {
				t.Error("expected the token to be rejected, got nil error")
			}
		})
	}
}

func TestValidateAndParseJWTToken_Expired(t *testing.T) {
	// negative duration backdates exp
	genToken, err := GenerateJWTToken(testIssuer, 1, -time.Second, testSignKey)
	if err != nil {
		t.Fatalf("generating token: %v", err)
	}

	_, err = ValidateAndParseJWTToken(genToken.SignedString, testSignKey, testIssuer)
	if err == nil {
		t.Fatal("expected error for expired token, got nil")
	}
	if !errors.Is(err, jwt.ErrTokenExpired) {
		t.Errorf("expected the wrap chain to carry jwt.ErrTokenExpired, got: %v", err)
	}
}
