package middleware

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

const testSecret = "test-secret"

func signed(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return tok
}

func identityApp() *fiber.App {
	app := fiber.New()
	app.Get("/whoami", Identity(testSecret), func(c *fiber.Ctx) error {
		id, err := IdentityFromCtx(c)
		if err != nil {
			return c.SendStatus(fiber.StatusUnauthorized)
		}
		return c.SendString(id.ExternalID + "|" + id.Email + "|" + id.FirstName)
	})
	return app
}

func call(t *testing.T, app *fiber.App, token string) (int, string) {
	t.Helper()
	req := httptest.NewRequest("GET", "/whoami", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	res, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	b, _ := io.ReadAll(res.Body)
	return res.StatusCode, string(b)
}

func TestIdentity_ValidToken(t *testing.T) {
	token := signed(t, testSecret, jwt.MapClaims{
		"sub":        "user_2abc",
		"email":      "owner@example.com",
		"given_name": "Ada",
		"exp":        time.Now().Add(time.Hour).Unix(),
	})

	status, body := call(t, identityApp(), token)
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d: %s", status, body)
	}
	if body != "user_2abc|owner@example.com|Ada" {
		t.Fatalf("unexpected identity %q", body)
	}
}

func TestIdentity_UserIDFallback(t *testing.T) {
	token := signed(t, testSecret, jwt.MapClaims{"user_id": float64(42)})

	status, body := call(t, identityApp(), token)
	if status != fiber.StatusOK || !strings.HasPrefix(body, "42|") {
		t.Fatalf("expected user_id fallback, got %d %q", status, body)
	}
}

func TestIdentity_Rejected(t *testing.T) {
	cases := map[string]string{
		"missing":   "",
		"garbage":   "not-a-jwt",
		"wrong key": signed(t, "other-secret", jwt.MapClaims{"sub": "user_2abc"}),
		"expired":   signed(t, testSecret, jwt.MapClaims{"sub": "user_2abc", "exp": time.Now().Add(-time.Hour).Unix()}),
	}
	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			status, body := call(t, identityApp(), token)
			if status != fiber.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", status)
			}
			if !strings.Contains(body, "unauthorized") {
				t.Fatalf("expected unauthorized message, got %q", body)
			}
		})
	}
}

func TestIdentity_NoSubject(t *testing.T) {
	token := signed(t, testSecret, jwt.MapClaims{"email": "owner@example.com"})

	status, _ := call(t, identityApp(), token)
	if status != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 without subject, got %d", status)
	}
}
