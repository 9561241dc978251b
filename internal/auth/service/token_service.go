package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	authDomain "github.com/farmrakshaa/farm-guardian/internal/auth/domain"
	apperrors "github.com/farmrakshaa/farm-guardian/internal/errors"
)

// DefaultTokenLifetime matches the 30 day session cookie.
const DefaultTokenLifetime = 30 * 24 * time.Hour

// claims carries the user id in the registered "sub" claim.
type claims struct {
	jwt.RegisteredClaims
}

// jwtTokenService implements TokenService with HS256 JWTs.
type jwtTokenService struct {
	secret   []byte
	lifetime time.Duration
	now      func() time.Time
}

// NewTokenService creates a TokenService. An empty secret returns ErrMissingSigningSecret;
// a non-positive lifetime falls back to DefaultTokenLifetime.
func NewTokenService(secret string, lifetime time.Duration) (TokenService, error) {
	if secret == "" {
		return nil, authDomain.ErrMissingSigningSecret
	}
	if lifetime <= 0 {
		lifetime = DefaultTokenLifetime
	}
	return &jwtTokenService{
		secret:   []byte(secret),
		lifetime: lifetime,
		now:      time.Now,
	}, nil
}

// Issue signs a token with sub, iat, exp and a time-ordered jti.
func (s *jwtTokenService) Issue(userID uuid.UUID) (*authDomain.IssuedToken, error) {
	now := s.now().UTC()
	expiresAt := now.Add(s.lifetime)
	tokenID := uuid.Must(uuid.NewV7())

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ID:        tokenID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to sign token")
	}

	return &authDomain.IssuedToken{
		Token:     signed,
		ID:        tokenID,
		UserID:    userID,
		ExpiresAt: expiresAt,
	}, nil
}

// Verify parses the token and returns the user id from its subject.
func (s *jwtTokenService) Verify(tokenString string) (uuid.UUID, error) {
	var c claims
	_, err := jwt.ParseWithClaims(
		tokenString,
		&c,
		func(t *jwt.Token) (interface{}, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return uuid.Nil, authDomain.ErrTokenExpired
		}
		return uuid.Nil, authDomain.ErrInvalidToken
	}

	userID, err := uuid.Parse(c.Subject)
	if err != nil {
		return uuid.Nil, authDomain.ErrInvalidToken
	}
	return userID, nil
}
