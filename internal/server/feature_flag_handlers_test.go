package server

import (
	"net/http"
	"testing"
)

func TestGetFeatureFlags(t *testing.T) {
	t.Parallel()
	app, s, db := setupTestServer(t)
	_, token := createTestUser(t, s, db, "flagcheck")

	t.Run("requires auth", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodGet, "/api/users/me/feature-flags", nil, "")
		expectStatus(t, resp, http.StatusUnauthorized)
	})

	t.Run("evaluates flags for the caller", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodGet, "/api/users/me/feature-flags", nil, token)
		expectStatus(t, resp, http.StatusOK)

		var body struct {
			Raw       map[string]string `json:"raw"`
			Evaluated map[string]bool   `json:"evaluated"`
		}
		decodeBody(t, resp, &body)

		if body.Raw["team_sharing"] != "on" {
			t.Fatalf("expected team_sharing=on in raw flags, got %#v", body.Raw)
		}
		if !body.Evaluated["team_sharing"] {
			t.Fatal("expected team_sharing to evaluate true")
		}
		if body.Evaluated["damage_calc"] {
			t.Fatal("expected a zero-percent rollout to evaluate false")
		}
	})
}
