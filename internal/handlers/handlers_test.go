package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/recyclehub/internal/config"
	"github.com/example/recyclehub/internal/database"
	"github.com/example/recyclehub/internal/routes"
)

// newTestApp builds a fiber app with all routes registered against a fresh
// in-memory database.
func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db := database.NewTestDB(t)
	cfg := &config.Config{
		JWTSecret:    "test-secret",
		TokenExpires: time.Hour,
	}

	app := fiber.New()
	routes.Register(app, db, cfg)

	return app, db
}

// doJSON issues a request with an optional JSON body and decodes a JSON
// object response. Error responses from fiber's default handler are plain
// text, so callers should only inspect the body on success.
func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	resp := doRaw(t, app, method, path, body, "")
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading response body: %v", err)
	}

	var parsed map[string]interface{}
	if len(data) > 0 {
		_ = json.Unmarshal(data, &parsed)
	}

	return resp.StatusCode, parsed
}

// doJSONList is doJSON for endpoints that respond with a top-level array.
func doJSONList(t *testing.T, app *fiber.App, method, path string) (int, []interface{}) {
	t.Helper()

	resp := doRaw(t, app, method, path, nil, "")
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading response body: %v", err)
	}

	var parsed []interface{}
	if len(data) > 0 {
		_ = json.Unmarshal(data, &parsed)
	}

	return resp.StatusCode, parsed
}

func doRaw(t *testing.T, app *fiber.App, method, path string, body interface{}, bearer string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshaling request body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}

	return resp
}

// signupAccount registers a user or middleman through the API and returns the
// account ID and token.
func signupAccount(t *testing.T, app *fiber.App, role, phone, name string) (string, string) {
	t.Helper()

	status, body := doJSON(t, app, http.MethodPost, "/api/signup", map[string]interface{}{
		"phone":         phone,
		"name":          name,
		"role":          role,
		"password":      "secret123",
		"walletAddress": "0xabc" + phone,
	})
	if status != http.StatusCreated {
		t.Fatalf("signup %s/%s: expected 201, got %d", role, phone, status)
	}

	account := body["account"].(map[string]interface{})
	return account["id"].(string), body["token"].(string)
}

// registerCompany registers a company through the API and returns its ID.
func registerCompany(t *testing.T, app *fiber.App, email, wallet string) string {
	t.Helper()

	status, body := doJSON(t, app, http.MethodPost, "/api/company/register", map[string]interface{}{
		"walletAddress": wallet,
		"name":          "GreenCycle",
		"email":         email,
		"phone":         "600100",
		"password":      "secret123",
		"companyType":   "Recycling Plant",
		"location": map[string]interface{}{
			"address": "12 Harbor Rd",
			"city":    "Kochi",
			"country": "India",
			"lat":     9.9312,
			"long":    76.2673,
		},
	})
	if status != http.StatusCreated {
		t.Fatalf("company register %s: expected 201, got %d", email, status)
	}

	account := body["account"].(map[string]interface{})
	return account["id"].(string)
}

// submitItem creates a pickup request through the API and returns the item ID.
func submitItem(t *testing.T, app *fiber.App, userID, material string, quantity float64) string {
	t.Helper()

	status, body := doJSON(t, app, http.MethodPost, "/api/user/add-item", map[string]interface{}{
		"userId":        userID,
		"type":          material,
		"quantity":      quantity,
		"scheduledDate": "2026-09-15",
		"lat":           9.9312,
		"long":          76.2673,
	})
	if status != http.StatusOK {
		t.Fatalf("add-item: expected 200, got %d", status)
	}

	item := body["item"].(map[string]interface{})
	return item["id"].(string)
}
