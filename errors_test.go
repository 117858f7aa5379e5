package gradeauth_test

import (
	"errors"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"

	"github.com/gradekeep/go-gradeauth"
)

func TestErrorValues(t *testing.T) {
	t.Run("ErrTokenExpired", func(t *testing.T) {
		assert.Equal(t, goerrors.CategoryAuth, gradeauth.ErrTokenExpired.Category)
		assert.Equal(t, gradeauth.TextCodeTokenExpired, gradeauth.ErrTokenExpired.TextCode)
	})

	t.Run("ErrTokenMalformed", func(t *testing.T) {
		assert.Equal(t, goerrors.CategoryAuth, gradeauth.ErrTokenMalformed.Category)
		assert.Equal(t, gradeauth.TextCodeTokenMalformed, gradeauth.ErrTokenMalformed.TextCode)
	})

	t.Run("ErrNoToken", func(t *testing.T) {
		assert.Equal(t, goerrors.CategoryNotFound, gradeauth.ErrNoToken.Category)
	})

	t.Run("ErrLoginRejected carries the fixed message", func(t *testing.T) {
		assert.Equal(t, gradeauth.LoginFailedMessage, gradeauth.ErrLoginRejected.Message)
		assert.Equal(t, goerrors.CategoryAuth, gradeauth.ErrLoginRejected.Category)
	})

	t.Run("ErrRegistrationRejected carries the fixed message", func(t *testing.T) {
		assert.Equal(t, gradeauth.RegisterFailedMessage, gradeauth.ErrRegistrationRejected.Message)
	})
}

func TestIsTokenExpiredError(t *testing.T) {
	assert.True(t, gradeauth.IsTokenExpiredError(gradeauth.ErrTokenExpired))
	assert.True(t, gradeauth.IsTokenExpiredError(errors.New("token is expired by 3m")))
	assert.False(t, gradeauth.IsTokenExpiredError(gradeauth.ErrTokenMalformed))
	assert.False(t, gradeauth.IsTokenExpiredError(nil))
}

func TestIsMalformedError(t *testing.T) {
	assert.True(t, gradeauth.IsMalformedError(gradeauth.ErrTokenMalformed))
	assert.True(t, gradeauth.IsMalformedError(errors.New("missing or malformed JWT")))
	assert.False(t, gradeauth.IsMalformedError(gradeauth.ErrTokenExpired))
	assert.False(t, gradeauth.IsMalformedError(nil))
}
