package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/salestrack/salestrack-backend/pkg/config"
	pkgerrors "github.com/salestrack/salestrack-backend/pkg/errors"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:         "test-secret",
		Issuer:         "salestrack",
		ExpirationDays: 30,
	}
}

func TestMintAndParseToken(t *testing.T) {
	cfg := testJWTConfig()
	userID := uuid.New()

	token, err := MintToken(cfg, time.Now().UTC(), userID)
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	claims, err := ParseToken(cfg, token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.UserID != userID {
		t.Fatalf("expected user id %s, got %s", userID, claims.UserID)
	}
	if claims.Issuer != cfg.Issuer {
		t.Fatalf("expected issuer %s, got %s", cfg.Issuer, claims.Issuer)
	}
}

func TestParseTokenExpired(t *testing.T) {
	cfg := testJWTConfig()
	issued := time.Now().UTC().Add(-31 * 24 * time.Hour)

	token, err := MintToken(cfg, issued, uuid.New())
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	_, err = ParseToken(cfg, token)
	if !pkgerrors.HasCode(err, pkgerrors.CodeTokenExpired) {
		t.Fatalf("expected TOKEN_EXPIRED, got %v", err)
	}
}

func TestParseTokenWrongSecret(t *testing.T) {
	cfg := testJWTConfig()

	token, err := MintToken(cfg, time.Now().UTC(), uuid.New())
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	other := cfg
	other.Secret = "another-secret"
	_, err = ParseToken(other, token)
	if !pkgerrors.HasCode(err, pkgerrors.CodeUnauthorized) {
		t.Fatalf("expected UNAUTHORIZED, got %v", err)
	}
}

func TestMintTokenRequiresUserID(t *testing.T) {
	if _, err := MintToken(testJWTConfig(), time.Now().UTC(), uuid.Nil); err == nil {
		t.Fatal("expected error for nil user id")
	}
}
