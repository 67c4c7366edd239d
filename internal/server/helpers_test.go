package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

// paginationFor runs the given parser against a request with the query string.
func paginationFor(t *testing.T, query string, parse func(*fiber.Ctx) Pagination) Pagination {
	t.Helper()

	var got Pagination
	app := fiber.New()
	app.Get("/x", func(c *fiber.Ctx) error {
		got = parse(c)
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/x"+query, nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	_ = resp.Body.Close()
	return got
}

func TestParsePagination(t *testing.T) {
	t.Parallel()
	parse := func(c *fiber.Ctx) Pagination { return parsePagination(c, 20) }

	tests := []struct {
		name  string
		query string
		want  Pagination
	}{
		{"defaults", "", Pagination{Limit: 20, Offset: 0}},
		{"explicit", "?limit=5&offset=30", Pagination{Limit: 5, Offset: 30}},
		{"limit capped", "?limit=5000", Pagination{Limit: 100, Offset: 0}},
		{"zero limit falls back", "?limit=0", Pagination{Limit: 20, Offset: 0}},
		{"negative offset clamped", "?offset=-5", Pagination{Limit: 20, Offset: 0}},
		{"garbage ignored", "?limit=abc&offset=xyz", Pagination{Limit: 20, Offset: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := paginationFor(t, tt.query, parse); got != tt.want {
				t.Fatalf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParsePageParams(t *testing.T) {
	t.Parallel()
	parse := func(c *fiber.Ctx) Pagination { return parsePageParams(c, 10) }

	tests := []struct {
		name  string
		query string
		want  Pagination
	}{
		{"defaults", "", Pagination{Limit: 10, Offset: 0}},
		{"second page", "?page=2", Pagination{Limit: 10, Offset: 10}},
		{"custom size", "?page=3&page_size=25", Pagination{Limit: 25, Offset: 50}},
		{"size capped", "?page_size=5000", Pagination{Limit: 100, Offset: 0}},
		{"page below one clamped", "?page=0", Pagination{Limit: 10, Offset: 0}},
		{"zero size falls back", "?page_size=0&page=2", Pagination{Limit: 10, Offset: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := paginationFor(t, tt.query, parse); got != tt.want {
				t.Fatalf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestHumanizeParam(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"id":        "ID",
		"targetId":  "target ID",
		"commentId": "comment ID",
		"slot":      "slot",
	}
	for in, want := range tests {
		if got := humanizeParam(in); got != want {
			t.Fatalf("humanizeParam(%q) = %q, want %q", in, got, want)
		}
	}
}
