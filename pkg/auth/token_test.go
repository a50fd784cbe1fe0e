package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/jordanvasquez/threadline-backend/pkg/config"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "unit-test-secret",
		Issuer:            "threadline-test",
		ExpirationMinutes: 60,
	}
}

func TestMintAndParseRoundTrip(t *testing.T) {
	cfg := testJWTConfig()
	userID := uuid.New()

	token, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{
		UserID: userID,
		Email:  "shopper@example.com",
	})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	claims, err := ParseAccessToken(cfg, token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != userID {
		t.Fatalf("expected user id %s, got %s", userID, claims.UserID)
	}
	if claims.Email != "shopper@example.com" {
		t.Fatalf("unexpected email %q", claims.Email)
	}
	if strings.TrimSpace(claims.ID) == "" {
		t.Fatalf("expected generated jti")
	}
}

func TestMintRequiresUserID(t *testing.T) {
	if _, err := MintAccessToken(testJWTConfig(), time.Now(), AccessTokenPayload{}); err == nil {
		t.Fatalf("expected error for nil user id")
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	cfg := testJWTConfig()
	token, err := MintAccessToken(cfg, time.Now().Add(-2*time.Hour), AccessTokenPayload{
		UserID: uuid.New(),
	})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	if _, err := ParseAccessToken(cfg, token); err == nil {
		t.Fatalf("expected expired token to be rejected")
	}
}

func TestParseRejectsWrongIssuer(t *testing.T) {
	cfg := testJWTConfig()
	token, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{UserID: uuid.New()})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	other := cfg
	other.Issuer = "someone-else"
	if _, err := ParseAccessToken(other, token); err == nil {
		t.Fatalf("expected issuer mismatch to be rejected")
	}
}

func TestParseRejectsTamperedSecret(t *testing.T) {
	cfg := testJWTConfig()
	token, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{UserID: uuid.New()})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	other := cfg
	other.Secret = "different-secret"
	if _, err := ParseAccessToken(other, token); err == nil {
		t.Fatalf("expected signature mismatch to be rejected")
	}
}
