package gradeauth

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	goerrors "github.com/goliatone/go-errors"
)

// TokenCodec decodes platform tokens without verifying their signature.
// Signature checks belong to the issuing server; the client only needs the
// claims and the expiration instant. Decoding is pure: session state is
// updated by SessionState, never here.
type TokenCodec struct {
	leeway time.Duration
	parser *jwt.Parser
	logger Logger
}

type CodecOption func(*TokenCodec)

// WithLeeway treats tokens as expired the given duration before their
// expiration instant. Zero keeps the strict boundary rule.
func WithLeeway(leeway time.Duration) CodecOption {
	return func(c *TokenCodec) {
		c.leeway = leeway
	}
}

// WithCodecLogger sets the codec logger
func WithCodecLogger(logger Logger) CodecOption {
	return func(c *TokenCodec) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewTokenCodec returns a new TokenCodec
func NewTokenCodec(opts ...CodecOption) *TokenCodec {
	c := &TokenCodec{
		parser: jwt.NewParser(),
		logger: defLogger{},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// IsWellFormed reports whether raw is non-empty and splits into exactly
// three dot-separated segments. Anything else is never handed to Decode.
func (c *TokenCodec) IsWellFormed(raw string) bool {
	if raw == "" {
		return false
	}
	return strings.Count(raw, ".") == 2
}

// Decode parses the payload segment of a well-formed token into claims.
// Callers are expected to have checked IsWellFormed first; malformed input
// fails with ErrTokenMalformed.
func (c *TokenCodec) Decode(raw string) (*TokenClaims, error) {
	if !c.IsWellFormed(raw) {
		return nil, ErrTokenMalformed
	}

	token, _, err := c.parser.ParseUnverified(raw, &TokenClaims{})
	if err != nil {
		c.logger.Debug("token decode failed: %v", err)
		return nil, goerrors.Wrap(err, ErrTokenMalformed.Category, ErrTokenMalformed.Message).
			WithTextCode(ErrTokenMalformed.TextCode)
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok {
		return nil, ErrTokenMalformed
	}

	return claims, nil
}

// IsExpired reports whether the claims are expired at the given instant.
// The boundary instant counts as expired, and a token without an exp claim
// is always expired.
func (c *TokenCodec) IsExpired(claims *TokenClaims, now time.Time) bool {
	if claims == nil {
		return true
	}

	expiresAt := claims.Expires()
	if expiresAt.IsZero() {
		return true
	}

	return !now.Add(c.leeway).Before(expiresAt)
}
