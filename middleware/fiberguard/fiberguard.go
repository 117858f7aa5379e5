// Package fiberguard adapts the route guard to Fiber applications.
package fiberguard

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/gradekeep/go-gradeauth"
)

// Config holds fiberguard options
type Config struct {
	// Session is the authentication state to consult. Required.
	Session *gradeauth.SessionState
	// LoginRoute is where denied navigations are redirected. Defaults to /login.
	LoginRoute string
	// RejectedRouteKey names the cookie remembering the denied route.
	RejectedRouteKey string
	// Next skips the guard when it returns true.
	Next func(c *fiber.Ctx) bool
}

// New returns a Fiber middleware that lets authenticated sessions through
// and redirects everything else to the login route, remembering the
// rejected route in a cookie.
func New(cfg Config) fiber.Handler {
	if cfg.Session == nil {
		panic("fiberguard: Config.Session is required")
	}
	if cfg.LoginRoute == "" {
		cfg.LoginRoute = "/login"
	}
	if cfg.RejectedRouteKey == "" {
		cfg.RejectedRouteKey = "rejected-route"
	}

	return func(c *fiber.Ctx) error {
		if cfg.Next != nil && cfg.Next(c) {
			return c.Next()
		}

		if cfg.Session.IsAuthenticated() {
			return c.Next()
		}

		c.Cookie(&fiber.Cookie{
			Name:     cfg.RejectedRouteKey,
			Value:    c.OriginalURL(),
			Expires:  time.Now().Add(time.Minute * 5),
			HTTPOnly: true,
			Secure:   true,
			SameSite: "Lax",
		})

		status := fiber.StatusSeeOther
		if c.Method() == fiber.MethodGet {
			status = fiber.StatusFound
		}
		return c.Redirect(cfg.LoginRoute, status)
	}
}
