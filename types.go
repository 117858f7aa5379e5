package gradeauth

import (
	"fmt"
	"time"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Error(format string, args ...any)
}

// Storage is a single-key value store bound to one persistence scope.
// Get returns an empty string and a nil error when the key is absent.
type Storage interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
}

// Config holds client options
type Config interface {
	GetBaseURL() string
	GetLoginPath() string
	GetRegisterPath(role Role) string
	GetRequestTimeout() time.Duration
	GetTokenKey() string
	GetLoginRoute() string
	GetRejectedRouteKey() string
	GetDebug() bool
}

// Authenticator is the surface the UI layer talks to.
type Authenticator interface {
	IsAuthenticated() bool
	Username() (string, bool)
	HasRole(role Role) bool
	Logout()
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] GRADEAUTH "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] GRADEAUTH "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] GRADEAUTH "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
