package token_test

import (
	"errors"
	"testing"
	"time"

	"servilink/pkg/token"

	"github.com/google/uuid"
)

func TestGenerateVerifyRoundTrip(t *testing.T) {
	svc := token.NewService("test-secret", time.Hour)
	userID := uuid.New()

	signed, expiresAt, err := svc.Generate(userID, "client")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if time.Until(expiresAt) < 59*time.Minute {
		t.Errorf("expiry %v too close, want ~1h out", expiresAt)
	}

	claims, err := svc.Verify(signed)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("user id = %s, want %s", claims.UserID, userID)
	}
	if claims.Role != "client" {
		t.Errorf("role = %q, want client", claims.Role)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	issuer := token.NewService("secret-a", time.Hour)
	verifier := token.NewService("secret-b", time.Hour)

	signed, _, err := issuer.Generate(uuid.New(), "client")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if _, err := verifier.Verify(signed); !errors.Is(err, token.ErrInvalidToken) {
		t.Errorf("wrong secret: got %v, want ErrInvalidToken", err)
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	svc := token.NewService("test-secret", -time.Minute)

	signed, _, err := svc.Generate(uuid.New(), "client")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if _, err := svc.Verify(signed); !errors.Is(err, token.ErrExpiredToken) {
		t.Errorf("expired token: got %v, want ErrExpiredToken", err)
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	svc := token.NewService("test-secret", time.Hour)

	if _, err := svc.Verify("not-a-token"); !errors.Is(err, token.ErrInvalidToken) {
		t.Errorf("garbage token: got %v, want ErrInvalidToken", err)
	}
}
