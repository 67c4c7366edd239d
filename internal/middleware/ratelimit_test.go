package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// withEnv sets APP_ENV for the duration of the test.
func withEnv(t *testing.T, env string) {
	t.Helper()
	prev := os.Getenv("APP_ENV")
	os.Setenv("APP_ENV", env)
	t.Cleanup(func() { os.Setenv("APP_ENV", prev) })
}

func TestCheckRateLimit(t *testing.T) {
	ctx := context.Background()

	t.Run("disabled in test env", func(t *testing.T) {
		withEnv(t, "test")
		allowed, err := CheckRateLimit(ctx, nil, "signup", "ip:1.2.3.4", 1, time.Minute)
		if err != nil || !allowed {
			t.Fatalf("expected bypass in test env, got allowed=%v err=%v", allowed, err)
		}
	})

	t.Run("counts and blocks over the limit", func(t *testing.T) {
		withEnv(t, "production")
		mr := miniredis.RunT(t)
		rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

		for i := 0; i < 3; i++ {
			allowed, err := CheckRateLimit(ctx, rdb, "login", "user:7", 3, time.Minute)
			if err != nil {
				t.Fatalf("check %d: %v", i, err)
			}
			if !allowed {
				t.Fatalf("request %d should be within the limit", i+1)
			}
		}

		allowed, err := CheckRateLimit(ctx, rdb, "login", "user:7", 3, time.Minute)
		if err != nil {
			t.Fatalf("check over limit: %v", err)
		}
		if allowed {
			t.Fatal("fourth request should exceed a limit of 3")
		}

		// A different identity has its own counter.
		allowed, err = CheckRateLimit(ctx, rdb, "login", "user:8", 3, time.Minute)
		if err != nil || !allowed {
			t.Fatalf("other user must not share the counter, got allowed=%v err=%v", allowed, err)
		}
	})

	t.Run("window expiry resets the counter", func(t *testing.T) {
		withEnv(t, "production")
		mr := miniredis.RunT(t)
		rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

		if _, err := CheckRateLimit(ctx, rdb, "signup", "ip:9.9.9.9", 1, time.Minute); err != nil {
			t.Fatalf("first check: %v", err)
		}
		allowed, _ := CheckRateLimit(ctx, rdb, "signup", "ip:9.9.9.9", 1, time.Minute)
		if allowed {
			t.Fatal("second request should be blocked")
		}

		mr.FastForward(2 * time.Minute)

		allowed, err := CheckRateLimit(ctx, rdb, "signup", "ip:9.9.9.9", 1, time.Minute)
		if err != nil || !allowed {
			t.Fatalf("counter should reset after the window, got allowed=%v err=%v", allowed, err)
		}
	})

	t.Run("nil client errors outside dev", func(t *testing.T) {
		withEnv(t, "production")
		if _, err := CheckRateLimit(ctx, nil, "login", "ip:1.1.1.1", 1, time.Minute); err == nil {
			t.Fatal("expected an error with a nil client in production")
		}
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	withEnv(t, "production")
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	app := fiber.New()
	app.Get("/limited", RateLimit(rdb, 2, time.Minute, "limited"), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	do := func() int {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/limited", nil))
		if err != nil {
			t.Fatalf("app.Test: %v", err)
		}
		_ = resp.Body.Close()
		return resp.StatusCode
	}

	if got := do(); got != http.StatusOK {
		t.Fatalf("first request: got %d", got)
	}
	if got := do(); got != http.StatusOK {
		t.Fatalf("second request: got %d", got)
	}
	if got := do(); got != http.StatusTooManyRequests {
		t.Fatalf("third request should be limited, got %d", got)
	}
}

func TestRateLimitFailPolicies(t *testing.T) {
	withEnv(t, "production")

	app := fiber.New()
	app.Get("/open", RateLimitWithPolicy(nil, 1, time.Minute, FailOpen, "open"), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	app.Get("/closed", RateLimitWithPolicy(nil, 1, time.Minute, FailClosed, "closed"), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/open", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("fail-open should serve the request without Redis, got %d", resp.StatusCode)
	}

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/closed", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("fail-closed should return 503 without Redis, got %d", resp.StatusCode)
	}
}
