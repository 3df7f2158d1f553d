package models

import "testing"

func TestParseAccountKind(t *testing.T) {
	for _, role := range []string{"user", "middleman", "company"} {
		kind, ok := ParseAccountKind(role)
		if !ok {
			t.Errorf("expected %q to be a valid role", role)
		}
		if string(kind) != role {
			t.Errorf("expected kind %q, got %q", role, kind)
		}
	}

	for _, role := range []string{"admin", "User", ""} {
		if _, ok := ParseAccountKind(role); ok {
			t.Errorf("expected %q to be rejected", role)
		}
	}
}

func TestAccountKinds(t *testing.T) {
	if (User{}).Kind() != KindUser {
		t.Error("User should report the user kind")
	}
	if (Middleman{}).Kind() != KindMiddleman {
		t.Error("Middleman should report the middleman kind")
	}
	if (Company{}).Kind() != KindCompany {
		t.Error("Company should report the company kind")
	}
}
