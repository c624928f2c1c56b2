package models_test

import (
	"strings"
	"testing"

	"contentfield/models"
)

const testJWTSecret = "test-secret-for-field-tokens-0123456789"

func TestFieldTokenRoundTrip(t *testing.T) {
	if err := models.InitJWT(testJWTSecret); err != nil {
		t.Fatalf("InitJWT failed: %v", err)
	}

	token, err := models.GenerateFieldToken("entry-123", "contentType")
	if err != nil {
		t.Fatalf("GenerateFieldToken failed: %v", err)
	}

	claims, err := models.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if claims.EntryID != "entry-123" {
		t.Errorf("expected entry id entry-123, got %q", claims.EntryID)
	}
	if claims.FieldID != "contentType" {
		t.Errorf("expected field id contentType, got %q", claims.FieldID)
	}
	if claims.Issuer != models.TokenIssuer {
		t.Errorf("expected issuer %q, got %q", models.TokenIssuer, claims.Issuer)
	}
}

func TestValidateTokenRejectsTampering(t *testing.T) {
	if err := models.InitJWT(testJWTSecret); err != nil {
		t.Fatalf("InitJWT failed: %v", err)
	}
	token, err := models.GenerateFieldToken("entry-123", "contentType")
	if err != nil {
		t.Fatalf("GenerateFieldToken failed: %v", err)
	}

	// A different key must not accept the token
	if err := models.InitJWT(strings.Repeat("x", models.MinSecretLength)); err != nil {
		t.Fatalf("InitJWT failed: %v", err)
	}
	if _, err := models.ValidateToken(token); err == nil {
		t.Error("expected token signed with another key to be rejected")
	}

	if _, err := models.ValidateToken("not.a.token"); err == nil {
		t.Error("expected malformed token to be rejected")
	}
}

func TestInitJWTSecretLength(t *testing.T) {
	if err := models.InitJWT("short"); err == nil {
		t.Error("expected short secret to be rejected")
	}
	if err := models.InitJWT(""); err != nil {
		t.Errorf("empty secret should fall back to the development key: %v", err)
	}
	if _, err := models.GenerateFieldToken("", "contentType"); err == nil {
		t.Error("expected empty entry id to be rejected")
	}
}
