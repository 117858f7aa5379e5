package gradeauth

import (
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

const (
	TextCodeTokenMalformed     = "TOKEN_MALFORMED"
	TextCodeTokenExpired       = "TOKEN_EXPIRED"
	TextCodeNoToken            = "NO_TOKEN"
	TextCodeLoginRejected      = "LOGIN_REJECTED"
	TextCodeRegistrationFailed = "REGISTRATION_FAILED"
	TextCodeRequestInFlight    = "REQUEST_IN_FLIGHT"
)

// Static user-facing messages. Every transport or server failure during
// login collapses to LoginFailedMessage so server error detail never leaks
// into the UI; registration mirrors that with its own message.
const (
	LoginFailedMessage     = "Invalid Username or Password"
	LoginSuccessMessage    = "Login successful"
	RegisterFailedMessage  = "Registration failed. Please try again"
	RegisterSuccessMessage = "Registration successful"
)

// ErrTokenMalformed is returned when a raw token does not split into three segments or its payload cannot be decoded.
var ErrTokenMalformed = goerrors.New("token is malformed", goerrors.CategoryAuth).
	WithTextCode(TextCodeTokenMalformed).
	WithCode(goerrors.CodeUnauthorized)

// ErrTokenExpired is returned when a decoded token is at or past its expiration instant.
var ErrTokenExpired = goerrors.New("token is expired", goerrors.CategoryAuth).
	WithTextCode(TextCodeTokenExpired).
	WithCode(goerrors.CodeUnauthorized)

// ErrNoToken is returned by TokenStore.Load when neither scope holds a well-formed token.
var ErrNoToken = goerrors.New("no token in storage", goerrors.CategoryNotFound).
	WithTextCode(TextCodeNoToken)

// ErrLoginRejected carries the fixed message shown for any failed login,
// whether the server said 401 or the request never left the machine.
var ErrLoginRejected = goerrors.New(LoginFailedMessage, goerrors.CategoryAuth).
	WithTextCode(TextCodeLoginRejected).
	WithCode(goerrors.CodeUnauthorized)

// ErrRegistrationRejected carries the fixed message for any failed registration.
var ErrRegistrationRejected = goerrors.New(RegisterFailedMessage, goerrors.CategoryOperation).
	WithTextCode(TextCodeRegistrationFailed)

// ErrRequestInFlight is returned when a login or registration is submitted
// while a previous one is still pending.
var ErrRequestInFlight = goerrors.New("a request is already in flight", goerrors.CategoryConflict).
	WithTextCode(TextCodeRequestInFlight).
	WithCode(goerrors.CodeConflict)

// IsTokenExpiredError will check for expired tokens
func IsTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) && richErr.TextCode == TextCodeTokenExpired {
		return true
	}
	return strings.Contains(err.Error(), "token is expired")
}

// IsMalformedError will check for error message
func IsMalformedError(err error) bool {
	if err == nil {
		return false
	}
	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) && richErr.TextCode == TextCodeTokenMalformed {
		return true
	}
	return strings.Contains(err.Error(), "token is malformed") ||
		strings.Contains(err.Error(), "missing or malformed JWT")
}
