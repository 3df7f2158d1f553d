package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func paginationFor(t *testing.T, target string) Pagination {
	t.Helper()

	var pg Pagination
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		pg = ParsePagination(c)
		return nil
	})

	resp, err := app.Test(httptest.NewRequest("GET", target, nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	resp.Body.Close()

	return pg
}

func TestParsePaginationDefaults(t *testing.T) {
	pg := paginationFor(t, "/")
	if pg.Page != 1 || pg.Limit != 20 || pg.Offset != 0 {
		t.Errorf("unexpected defaults: %+v", pg)
	}
}

func TestParsePagination(t *testing.T) {
	pg := paginationFor(t, "/?page=3&limit=10")
	if pg.Page != 3 || pg.Limit != 10 || pg.Offset != 20 {
		t.Errorf("unexpected pagination: %+v", pg)
	}
}

func TestParsePaginationInvalid(t *testing.T) {
	pg := paginationFor(t, "/?page=-1&limit=abc")
	if pg.Page != 1 || pg.Limit != 20 {
		t.Errorf("expected fallbacks for invalid params, got %+v", pg)
	}
}
