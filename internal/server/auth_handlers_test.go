package server

import (
	"net/http"
	"testing"

	"teamdex/internal/models"
)

func TestSignup(t *testing.T) {
	t.Parallel()
	app, _, db := setupTestServer(t)

	signup := func(username, email, password string) *http.Response {
		return doRequest(t, app, http.MethodPost, "/api/auth/signup", map[string]string{
			"username": username,
			"email":    email,
			"password": password,
		}, "")
	}

	t.Run("success", func(t *testing.T) {
		resp := signup("red", "red@example.com", "SuperSecret123!")
		expectStatus(t, resp, http.StatusCreated)

		var body struct {
			Token string      `json:"token"`
			User  models.User `json:"user"`
		}
		decodeBody(t, resp, &body)
		if body.Token == "" {
			t.Fatal("expected a token in the signup response")
		}
		if body.User.Username != "red" {
			t.Fatalf("expected username red, got %q", body.User.Username)
		}

		var stored models.User
		if err := db.Where("email = ?", "red@example.com").First(&stored).Error; err != nil {
			t.Fatalf("user not persisted: %v", err)
		}
		if stored.Password == "SuperSecret123!" {
			t.Fatal("password must be stored hashed")
		}
	})

	t.Run("missing fields", func(t *testing.T) {
		resp := signup("", "", "")
		expectStatus(t, resp, http.StatusBadRequest)
	})

	t.Run("weak password", func(t *testing.T) {
		resp := signup("blue", "blue@example.com", "short")
		expectStatus(t, resp, http.StatusBadRequest)
	})

	t.Run("invalid email", func(t *testing.T) {
		resp := signup("blue", "not-an-email", "SuperSecret123!")
		expectStatus(t, resp, http.StatusBadRequest)
	})

	t.Run("invalid username", func(t *testing.T) {
		resp := signup("x", "blue@example.com", "SuperSecret123!")
		expectStatus(t, resp, http.StatusBadRequest)
	})

	t.Run("duplicate email", func(t *testing.T) {
		resp := signup("green", "red@example.com", "SuperSecret123!")
		expectStatus(t, resp, http.StatusConflict)
	})
}

func TestLogin(t *testing.T) {
	t.Parallel()
	app, s, db := setupTestServer(t)
	createTestUser(t, s, db, "misty")

	login := func(email, password string) *http.Response {
		return doRequest(t, app, http.MethodPost, "/api/auth/login", map[string]string{
			"email":    email,
			"password": password,
		}, "")
	}

	t.Run("success", func(t *testing.T) {
		resp := login("misty@example.com", "password123")
		expectStatus(t, resp, http.StatusOK)

		var body struct {
			Token string `json:"token"`
		}
		decodeBody(t, resp, &body)
		if body.Token == "" {
			t.Fatal("expected a token in the login response")
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		resp := login("misty@example.com", "wrong-password")
		expectStatus(t, resp, http.StatusUnauthorized)
	})

	t.Run("unknown email", func(t *testing.T) {
		resp := login("ghost@example.com", "password123")
		expectStatus(t, resp, http.StatusUnauthorized)
	})
}

func TestAuthRequired(t *testing.T) {
	t.Parallel()
	app, s, db := setupTestServer(t)
	_, token := createTestUser(t, s, db, "brock")

	t.Run("missing token", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodGet, "/api/users/me", nil, "")
		expectStatus(t, resp, http.StatusUnauthorized)
	})

	t.Run("garbage token", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodGet, "/api/users/me", nil, "Bearer not.a.jwt")
		expectStatus(t, resp, http.StatusUnauthorized)
	})

	t.Run("valid token", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodGet, "/api/users/me", nil, token)
		expectStatus(t, resp, http.StatusOK)
	})
}
