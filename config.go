package gradeauth

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

var _ Config = (*EnvConfig)(nil)

// EnvConfig is the concrete Config used outside DI containers. Zero values
// fall back to the platform defaults from DefaultConfig.
type EnvConfig struct {
	BaseURL             string
	LoginPath           string
	StudentRegisterPath string
	TeacherRegisterPath string
	RequestTimeout      time.Duration
	TokenKey            string
	LoginRoute          string
	RejectedRouteKey    string
	Debug               bool
}

// DefaultConfig returns the stock platform endpoints.
func DefaultConfig() *EnvConfig {
	return &EnvConfig{
		BaseURL:             "http://localhost:8080",
		LoginPath:           "/api/login",
		StudentRegisterPath: "/api/students",
		TeacherRegisterPath: "/api/teachers",
		RequestTimeout:      30 * time.Second,
		TokenKey:            DefaultTokenKey,
		LoginRoute:          "/login",
		RejectedRouteKey:    "rejected-route",
	}
}

// LoadConfig reads configuration from the environment, loading a .env file
// first when one is present.
func LoadConfig() *EnvConfig {
	_ = godotenv.Load()

	cfg := DefaultConfig()
	cfg.BaseURL = getEnv("GRADEAUTH_BASE_URL", cfg.BaseURL)
	cfg.LoginPath = getEnv("GRADEAUTH_LOGIN_PATH", cfg.LoginPath)
	cfg.StudentRegisterPath = getEnv("GRADEAUTH_STUDENT_REGISTER_PATH", cfg.StudentRegisterPath)
	cfg.TeacherRegisterPath = getEnv("GRADEAUTH_TEACHER_REGISTER_PATH", cfg.TeacherRegisterPath)
	cfg.TokenKey = getEnv("GRADEAUTH_TOKEN_KEY", cfg.TokenKey)
	cfg.LoginRoute = getEnv("GRADEAUTH_LOGIN_ROUTE", cfg.LoginRoute)
	cfg.RejectedRouteKey = getEnv("GRADEAUTH_REJECTED_ROUTE_KEY", cfg.RejectedRouteKey)

	if timeout, err := time.ParseDuration(getEnv("GRADEAUTH_REQUEST_TIMEOUT", "")); err == nil && timeout > 0 {
		cfg.RequestTimeout = timeout
	}

	if debug, err := strconv.ParseBool(getEnv("GRADEAUTH_DEBUG", "false")); err == nil {
		cfg.Debug = debug
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func (c *EnvConfig) GetBaseURL() string { return c.BaseURL }

func (c *EnvConfig) GetLoginPath() string { return c.LoginPath }

// GetRegisterPath maps a role to its create-account endpoint. Unknown roles
// return an empty path so the caller applies the student fallback.
func (c *EnvConfig) GetRegisterPath(role Role) string {
	switch role {
	case RoleStudent:
		return c.StudentRegisterPath
	case RoleTeacher:
		return c.TeacherRegisterPath
	default:
		return ""
	}
}

func (c *EnvConfig) GetRequestTimeout() time.Duration {
	if c.RequestTimeout <= 0 {
		return 30 * time.Second
	}
	return c.RequestTimeout
}

func (c *EnvConfig) GetTokenKey() string {
	if c.TokenKey == "" {
		return DefaultTokenKey
	}
	return c.TokenKey
}

func (c *EnvConfig) GetLoginRoute() string {
	if c.LoginRoute == "" {
		return "/login"
	}
	return c.LoginRoute
}

func (c *EnvConfig) GetRejectedRouteKey() string {
	if c.RejectedRouteKey == "" {
		return "rejected-route"
	}
	return c.RejectedRouteKey
}

func (c *EnvConfig) GetDebug() bool { return c.Debug }
