package auth

import (
	"testing"
	"time"
)

func TestJWTManager_GenerateAndParse(t *testing.T) {
	manager := NewJWTManager("secret", time.Hour)
	token, err := manager.GenerateToken("seller-1", "Ana Souza", "admin")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims, err := manager.ParseToken(token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.Subject != "seller-1" || claims.Name != "Ana Souza" || claims.Role != "admin" {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	if _, err := manager.ParseToken(token + "tampered"); err == nil {
		t.Fatalf("expected parse error for tampered token")
	}

	other := NewJWTManager("another-secret", time.Hour)
	if _, err := other.ParseToken(token); err == nil {
		t.Fatalf("expected parse error for foreign secret")
	}
}

func TestJWTManager_Validation(t *testing.T) {
	if _, err := NewJWTManager("", time.Hour).GenerateToken("seller", "", "seller"); err == nil {
		t.Fatalf("expected error when secret is empty")
	}
	if _, err := NewJWTManager("secret", time.Hour).GenerateToken("", "", "seller"); err == nil {
		t.Fatalf("expected error when subject is empty")
	}
	if ttl := NewJWTManager("secret", 0).TTL(); ttl != 24*time.Hour {
		t.Fatalf("expected default ttl, got %s", ttl)
	}
}

func TestJWTManager_Expired(t *testing.T) {
	manager := NewJWTManager("secret", time.Nanosecond)
	token, err := manager.GenerateToken("seller-1", "", "seller")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	time.Sleep(1100 * time.Millisecond)
	if _, err := manager.ParseToken(token); err == nil {
		t.Fatalf("expected expired token to be rejected")
	}
}
