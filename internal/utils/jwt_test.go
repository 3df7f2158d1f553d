package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestTokenRoundTrip(t *testing.T) {
	accountID := uuid.New()

	token, err := GenerateToken("secret", accountID, "middleman", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	parsedID, role, err := ParseToken("secret", token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if parsedID != accountID {
		t.Errorf("expected account %s, got %s", accountID, parsedID)
	}
	if role != "middleman" {
		t.Errorf("expected role 'middleman', got %q", role)
	}
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken("secret", uuid.New(), "user", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if _, _, err := ParseToken("other", token); err == nil {
		t.Error("expected token signed with a different secret to fail")
	}
}

func TestParseTokenExpired(t *testing.T) {
	token, err := GenerateToken("secret", uuid.New(), "user", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if _, _, err := ParseToken("secret", token); err == nil {
		t.Error("expected expired token to fail")
	}
}
