package userdir

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// ContextKey is where middleware stores the resolved identity in the
// request locals.
const ContextKey = "identity"

// TokenRequired builds the authentication gate. It extracts the raw
// token from the Authorization header (an optional "Bearer " scheme is
// tolerated), validates it, re-fetches the user the claim points at,
// and attaches it to the request. Missing header, invalid or expired
// token, and unknown user all short-circuit with 401.
func TokenRequired(tokens TokenService, provider IdentityProvider, logger Logger) fiber.Handler {
	if logger == nil {
		logger = defLogger{}
	}

	return func(c *fiber.Ctx) error {
		raw := rawTokenFromHeader(c.Get(fiber.HeaderAuthorization))
		if raw == "" {
			return unauthenticated(c)
		}

		claims, err := tokens.Validate(raw)
		if err != nil {
			logger.Info("rejected token", "error", err)
			return unauthenticated(c)
		}

		identity, err := provider.FindIdentityByID(c.UserContext(), claims.UserID())
		if err != nil {
			// an unknown id gets the same answer as a bad token,
			// nothing about account existence leaks
			if !IsNotFound(err) {
				logger.Error("identity lookup failed", "error", err, "user_id", claims.UserID())
			}
			return unauthenticated(c)
		}

		c.Locals(ContextKey, identity)
		c.SetUserContext(WithContext(c.UserContext(), identity))

		return c.Next()
	}
}

// AccountTypeRequired gates a route on the caller's tier. The tier is
// read from the identity the authentication gate resolved from
// storage, never from the token itself.
func AccountTypeRequired(required AccountType, logger Logger) fiber.Handler {
	if logger == nil {
		logger = defLogger{}
	}

	return func(c *fiber.Ctx) error {
		identity, ok := IdentityFromLocals(c)
		if !ok {
			return unauthenticated(c)
		}

		if identity.AccountType() != required {
			logger.Info("insufficient account type",
				"required", required,
				"actual", identity.AccountType(),
				"user_id", identity.ID(),
			)
			// existing clients expect 401 here, not 403
			return unauthenticated(c)
		}

		return c.Next()
	}
}

// IdentityFromLocals extracts the resolved identity from the request
func IdentityFromLocals(c *fiber.Ctx) (Identity, bool) {
	identity, ok := c.Locals(ContextKey).(Identity)
	return identity, ok
}

func rawTokenFromHeader(header string) string {
	raw := strings.TrimSpace(header)
	raw = strings.TrimPrefix(raw, "Bearer ")
	return strings.TrimSpace(raw)
}

func unauthenticated(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": "unauthorized",
	})
}
