package handlers_test

import (
	"net/http"
	"testing"
)

func TestSignupAndLogin(t *testing.T) {
	app, _ := newTestApp(t)

	id, token := signupAccount(t, app, "user", "700100", "Anita")
	if id == "" || token == "" {
		t.Fatal("expected non-empty account id and token")
	}

	status, body := doJSON(t, app, http.MethodPost, "/api/login", map[string]interface{}{
		"phone":    "700100",
		"password": "secret123",
	})
	if status != http.StatusOK {
		t.Fatalf("login: expected 200, got %d", status)
	}

	account := body["account"].(map[string]interface{})
	if account["id"].(string) != id {
		t.Errorf("login returned account %v, registered %v", account["id"], id)
	}
	if account["role"].(string) != "user" {
		t.Errorf("expected role 'user', got %v", account["role"])
	}
	if body["token"].(string) == "" {
		t.Error("expected a token on login")
	}
}

func TestSignupDuplicatePhone(t *testing.T) {
	app, _ := newTestApp(t)

	signupAccount(t, app, "user", "700200", "First")

	status, _ := doJSON(t, app, http.MethodPost, "/api/signup", map[string]interface{}{
		"phone":         "700200",
		"name":          "Second",
		"role":          "user",
		"password":      "other456",
		"walletAddress": "0xdef",
	})
	if status != http.StatusBadRequest {
		t.Fatalf("duplicate signup: expected 400, got %d", status)
	}
}

func TestSignupSamePhoneDifferentPartition(t *testing.T) {
	app, _ := newTestApp(t)

	// Phone uniqueness holds within a partition, not across partitions.
	signupAccount(t, app, "user", "700300", "Client")
	signupAccount(t, app, "middleman", "700300", "Partner")
}

func TestLoginMiddlemanPartition(t *testing.T) {
	app, _ := newTestApp(t)

	id, _ := signupAccount(t, app, "middleman", "700400", "Partner")

	status, body := doJSON(t, app, http.MethodPost, "/api/login", map[string]interface{}{
		"phone":    "700400",
		"password": "secret123",
	})
	if status != http.StatusOK {
		t.Fatalf("middleman login: expected 200, got %d", status)
	}

	account := body["account"].(map[string]interface{})
	if account["role"].(string) != "middleman" {
		t.Errorf("expected role 'middleman', got %v", account["role"])
	}
	if account["id"].(string) != id {
		t.Errorf("login returned account %v, registered %v", account["id"], id)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	app, _ := newTestApp(t)

	signupAccount(t, app, "user", "700500", "Anita")

	status, _ := doJSON(t, app, http.MethodPost, "/api/login", map[string]interface{}{
		"phone":    "700500",
		"password": "wrong",
	})
	if status != http.StatusUnauthorized {
		t.Fatalf("wrong password: expected 401, got %d", status)
	}
}

func TestLoginUnknownPhone(t *testing.T) {
	app, _ := newTestApp(t)

	status, _ := doJSON(t, app, http.MethodPost, "/api/login", map[string]interface{}{
		"phone":    "999999",
		"password": "secret123",
	})
	if status != http.StatusNotFound {
		t.Fatalf("unknown phone: expected 404, got %d", status)
	}
}

func TestSignupMissingFields(t *testing.T) {
	app, _ := newTestApp(t)

	status, _ := doJSON(t, app, http.MethodPost, "/api/signup", map[string]interface{}{
		"phone": "700600",
		"role":  "user",
	})
	if status != http.StatusBadRequest {
		t.Fatalf("missing fields: expected 400, got %d", status)
	}
}

func TestSignupInvalidRole(t *testing.T) {
	app, _ := newTestApp(t)

	for _, role := range []string{"admin", "company", ""} {
		status, _ := doJSON(t, app, http.MethodPost, "/api/signup", map[string]interface{}{
			"phone":         "700700",
			"name":          "Nobody",
			"role":          role,
			"password":      "secret123",
			"walletAddress": "0xabc",
		})
		if status != http.StatusBadRequest {
			t.Errorf("role %q: expected 400, got %d", role, status)
		}
	}
}
