// Package token issues and verifies the signed session tokens that carry all
// authentication state. There is no server-side session and no revocation:
// a token is honored until its expiry regardless of later account changes.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/barangay-bis/records-system/internal/core/domain"
)

// DefaultTTL is the fixed session lifetime measured from issuance.
const DefaultTTL = 24 * time.Hour

// Verification failures stay distinguishable for callers even though the
// HTTP layer may collapse them into a single status.
var (
	ErrMalformed        = errors.New("token malformed")
	ErrSignatureInvalid = errors.New("token signature invalid")
	ErrExpired          = errors.New("token expired")
)

// sessionClaims is the wire shape of the token payload.
type sessionClaims struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Authenticator signs and verifies HS256 session tokens with a single
// symmetric key injected at construction.
type Authenticator struct {
	secret []byte
	ttl    time.Duration
}

// NewAuthenticator builds an Authenticator. If ttl <= 0, DefaultTTL is used.
func NewAuthenticator(secret string, ttl time.Duration) *Authenticator {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Authenticator{secret: []byte(secret), ttl: ttl}
}

// Issue serializes the account identity plus issued-at/expires-at timestamps
// into a signed, transport-safe token string.
func (a *Authenticator) Issue(accountID int64, username string, role domain.Role) (string, error) {
	now := time.Now().UTC()
	claims := sessionClaims{
		UserID:   accountID,
		Username: username,
		Role:     string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify decodes the token, checks signature integrity, then expiry, and
// reconstructs the session claims. Failures map to ErrMalformed,
// ErrSignatureInvalid or ErrExpired.
func (a *Authenticator) Verify(raw string) (domain.Claims, error) {
	var claims sessionClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return domain.Claims{}, ErrMalformed
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return domain.Claims{}, ErrSignatureInvalid
		case errors.Is(err, jwt.ErrTokenExpired):
			return domain.Claims{}, ErrExpired
		default:
			return domain.Claims{}, fmt.Errorf("parse token: %w", err)
		}
	}

	role, roleErr := domain.ParseRole(claims.Role)
	if roleErr != nil || claims.UserID == 0 || claims.ExpiresAt == nil {
		return domain.Claims{}, ErrMalformed
	}

	out := domain.Claims{
		AccountID: claims.UserID,
		Username:  claims.Username,
		Role:      role,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	return out, nil
}
