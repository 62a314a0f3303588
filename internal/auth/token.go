package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/mitchellh/mapstructure"
)

// ErrInvalidToken is the single reject reason surfaced by Verify. Callers must
// not distinguish signature failures from expiry in responses; the concrete
// cause is carried in the wrapped error for internal logging only.
var ErrInvalidToken = errors.New("invalid token")

// TokenClaims is the verified content of an accepted token.
type TokenClaims struct {
	Subject string
	Roles   []Role
}

// TokenCodec mints and verifies compact HS256-signed bearer tokens.
//
// The codec holds a single active signing key loaded at startup. It is
// immutable after construction and safe for concurrent use. Swapping the key
// invalidates all outstanding tokens.
type TokenCodec struct {
	key      []byte
	lifetime time.Duration
}

// NewTokenCodec validates the signing material and builds a codec.
// The key must be at least 256 bits for HMAC-SHA256 and the lifetime positive;
// anything less is a startup configuration error.
func NewTokenCodec(key []byte, lifetime time.Duration) (*TokenCodec, error) {
	if len(key) < 32 {
		return nil, fmt.Errorf("signing key must be at least 32 bytes for HMAC-SHA256, got %d", len(key))
	}
	if lifetime <= 0 {
		return nil, fmt.Errorf("token lifetime must be positive, got %s", lifetime)
	}
	return &TokenCodec{key: key, lifetime: lifetime}, nil
}

// Lifetime returns the configured token lifetime.
func (c *TokenCodec) Lifetime() time.Duration {
	return c.lifetime
}

// Mint issues a signed token for the subject with the canonicalized role set.
// Claims are sub, roles, iat, exp (= iat + lifetime, integer seconds) and a
// jti so individual tokens are identifiable in logs.
func (c *TokenCodec) Mint(subject string, roles []string, now time.Time) (string, error) {
	canonical, err := CanonicalizeRoles(roles)
	if err != nil {
		return "", fmt.Errorf("mint token: %w", err)
	}
	if len(canonical) == 0 {
		return "", fmt.Errorf("mint token: empty role set")
	}

	claims := jwt.MapClaims{
		"sub":   subject,
		"roles": RoleStrings(canonical),
		"iat":   now.Unix(),
		"exp":   now.Add(c.lifetime).Unix(),
		"jti":   uuid.NewString(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.key)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks a compact token and returns its claims, or ErrInvalidToken.
//
// Order of checks: segment count, algorithm allow-list (HS256 only, never
// "none"), signature (constant-time HMAC comparison inside golang-jwt), claim
// decoding, strict expiry (exp must be strictly greater than now, zero skew
// tolerance). Every failure wraps the same opaque sentinel.
func (c *TokenCodec) Verify(ctx context.Context, tokenString string, now time.Time) (*TokenClaims, error) {
	if err := ctx.Err(); err != nil {
		return nil, reject("context done: %v", err)
	}

	if strings.Count(tokenString, ".") != 2 {
		return nil, reject("token is not a three-segment compact serialization")
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithExpirationRequired(),
	)

	claims := jwt.MapClaims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %s", t.Method.Alg())
		}
		return c.key, nil
	})
	if err != nil {
		return nil, reject("parse token: %v", err)
	}
	if !token.Valid {
		return nil, reject("token failed validation")
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, reject("token missing exp claim")
	}
	if !now.Before(exp.Time) {
		return nil, reject("token expired at %s", exp.Time)
	}

	subject, _ := claims["sub"].(string)
	if subject == "" {
		return nil, reject("token missing sub claim")
	}

	var rawRoles []string
	if err := mapstructure.Decode(claims["roles"], &rawRoles); err != nil {
		return nil, reject("token roles claim malformed: %v", err)
	}
	roles, err := CanonicalizeRoles(rawRoles)
	if err != nil {
		return nil, reject("token roles claim invalid: %v", err)
	}
	if len(roles) == 0 {
		return nil, reject("token roles claim is empty")
	}

	return &TokenClaims{Subject: subject, Roles: roles}, nil
}

// reject builds an error that unwraps to ErrInvalidToken while keeping the
// concrete cause available for internal logs.
func reject(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidToken}, args...)...)
}
