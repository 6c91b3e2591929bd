package middleware

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v2"
	"github.com/golang-jwt/jwt/v4"

	"github.com/wichananm65/merchant-backoffice/internal/domain/entity"
	"github.com/wichananm65/merchant-backoffice/internal/pkg/apperr"
)

// TokenKey is where the verified *jwt.Token is stored in c.Locals.
const TokenKey = "user"

// Identity verifies the HS256 bearer token and stores it under TokenKey.
// Requests without a valid token get a 401 JSON body.
func Identity(secret string) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:    []byte(secret),
		SigningMethod: "HS256",
		ContextKey:    TokenKey,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
		},
	})
}

// ExternalID returns the identity provider's subject for the caller: the
// "sub" claim, or "user_id" for tokens that carry it instead.
func ExternalID(c *fiber.Ctx) (string, error) {
	claims, err := claimsFromCtx(c)
	if err != nil {
		return "", err
	}
	for _, key := range []string{"sub", "user_id"} {
		if id := claimString(claims, key); id != "" {
			return id, nil
		}
	}
	return "", apperr.ErrUnauthenticated
}

// IdentityFromCtx returns the caller's identity with the optional profile claims.
func IdentityFromCtx(c *fiber.Ctx) (entity.Identity, error) {
	id, err := ExternalID(c)
	if err != nil {
		return entity.Identity{}, err
	}
	claims, _ := claimsFromCtx(c)
	return entity.Identity{
		ExternalID: id,
		Email:      claimString(claims, "email"),
		FirstName:  claimString(claims, "given_name"),
		LastName:   claimString(claims, "family_name"),
	}, nil
}

func claimsFromCtx(c *fiber.Ctx) (jwt.MapClaims, error) {
	tok, ok := c.Locals(TokenKey).(*jwt.Token)
	if !ok || tok == nil {
		return nil, apperr.ErrUnauthenticated
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, apperr.ErrUnauthenticated
	}
	return claims, nil
}

func claimString(claims jwt.MapClaims, key string) string {
	switch v := claims[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		return ""
	}
}
