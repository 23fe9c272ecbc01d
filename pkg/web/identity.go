package web

import (
	"github.com/gofiber/fiber/v3"
	"github.com/maintops/maintops/pkg/models"
	"github.com/maintops/maintops/pkg/services"
)

// Caller identity headers set by the authenticating proxy in front of the
// API. Authentication mechanics live outside this core; only the resolved
// identity is consumed.
const (
	HeaderCallerEmail = "X-Caller-Email"
	HeaderCallerName  = "X-Caller-Name"
	HeaderCallerRole  = "X-Caller-Role"
)

const callerLocal = "caller"

// IdentityMiddleware resolves the caller identity from headers. Requests
// without an email header proceed unauthenticated; handlers decide whether
// that means scheduler context or a 401.
func IdentityMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		email := c.Get(HeaderCallerEmail)
		if email != "" {
			c.Locals(callerLocal, &services.Caller{
				Email:    email,
				FullName: c.Get(HeaderCallerName),
				Role:     models.Role(c.Get(HeaderCallerRole)),
			})
		}

		return c.Next()
	}
}

// callerFrom returns the resolved caller, if any.
func callerFrom(c fiber.Ctx) (*services.Caller, bool) {
	caller, ok := c.Locals(callerLocal).(*services.Caller)

	return caller, ok && caller != nil
}
