package gradeauth

import (
	"net/http"
	"time"

	"github.com/goliatone/go-router"
)

// RouteGuard permits or denies navigation based on SessionState. A denied
// navigation remembers the rejected route in a cookie and redirects to the
// login route; a permitted one has no side effect.
type RouteGuard struct {
	session *SessionState
	cfg     Config
	Logger  Logger
}

// NewRouteGuard returns a new RouteGuard
func NewRouteGuard(session *SessionState, cfg Config) *RouteGuard {
	return &RouteGuard{
		session: session,
		cfg:     cfg,
		Logger:  defLogger{},
	}
}

// CanEnter reports whether the current session may enter the route. On
// denial the redirect to the login route has already been issued.
func (g *RouteGuard) CanEnter(c router.Context) bool {
	if g.session.IsAuthenticated() {
		return true
	}

	g.SetRedirect(c)

	statusCode := http.StatusSeeOther
	if c.Method() == string(router.GET) {
		statusCode = http.StatusFound
	}

	if err := c.Redirect(g.cfg.GetLoginRoute(), statusCode); err != nil {
		g.Logger.Error("guard redirect failed: %v", err)
	}
	return false
}

// Protected wraps a handler so only authenticated sessions reach it.
func (g *RouteGuard) Protected() router.MiddlewareFunc {
	return func(next router.HandlerFunc) router.HandlerFunc {
		return func(c router.Context) error {
			if !g.CanEnter(c) {
				return nil
			}
			return next(c)
		}
	}
}

// SetRedirect stores the rejected route so a later login can resume there.
func (g *RouteGuard) SetRedirect(c router.Context) {
	rejectedRoute := g.cfg.GetRejectedRouteKey()

	g.Logger.Info("Setting redirect cookie", "key", rejectedRoute, "path", c.OriginalURL())

	c.Cookie(&router.Cookie{
		Name:     rejectedRoute,
		Value:    c.OriginalURL(),
		Expires:  time.Now().Add(time.Minute * 5),
		HTTPOnly: true,
		Secure:   true,
		SameSite: "Lax",
	})
}

// GetRedirect consumes the rejected-route cookie, falling back to def.
func (g *RouteGuard) GetRedirect(c router.Context, def ...string) string {
	rejectedRoute := g.cfg.GetRejectedRouteKey()
	r := c.Cookies(rejectedRoute)
	if r == "" {
		if len(def) > 0 {
			return def[0]
		}
		return "/"
	}
	g.cookieDel(c, rejectedRoute)
	return r
}

func (g *RouteGuard) cookieDel(c router.Context, name string) {
	c.Cookie(&router.Cookie{
		Name:     name,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour * (24 * 365)),
		HTTPOnly: true,
		Secure:   true,
		SameSite: "Lax",
	})
}
