// Package token issues and verifies the short-lived signed bearer tokens
// that carry an authenticated principal's identity between requests.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/pitstop-labs/pitstop/internal/identity"
)

// ErrInvalidToken is returned for any token that cannot be accepted:
// malformed, forged, or expired. Callers get no finer distinction so the
// failure mode leaks no structural detail.
var ErrInvalidToken = errors.New("invalid or expired token")

const issuer = "pitstop"

// Claims is the JWT payload for a session token.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Service signs and verifies session tokens. It is stateless and safe for
// concurrent use.
type Service struct {
	secret []byte
	ttl    time.Duration
}

// NewService creates a token Service signing with the given secret. Tokens
// expire ttl after issuance.
func NewService(secret string, ttl time.Duration) *Service {
	return &Service{secret: []byte(secret), ttl: ttl}
}

// Issue produces a signed token encoding the principal's subject id, email
// and role.
func (s *Service) Issue(p identity.Principal) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.SubjectID,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		Email: p.Email,
		Role:  string(p.Role),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token string and returns the principal it
// encodes. Every failure collapses to ErrInvalidToken.
func (s *Service) Verify(tokenStr string) (*identity.Principal, error) {
	var claims Claims
	tok, err := jwt.ParseWithClaims(tokenStr, &claims, func(_ *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !tok.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	return &identity.Principal{
		SubjectID: claims.Subject,
		Email:     claims.Email,
		Role:      identity.ParseRole(claims.Role),
	}, nil
}
