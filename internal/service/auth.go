package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/pageza/nutriplan/backend/internal/types"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrMissingKey   = errors.New("token signing key is not configured")
)

// TokenService validates access tokens issued by the identity provider.
// Accounts and sessions live with the provider; this service only checks
// the HS256 signature and extracts the user id from the subject.
type TokenService struct {
	secret []byte
}

func NewTokenService(secret string) *TokenService {
	return &TokenService{secret: []byte(secret)}
}

// ValidateToken parses and verifies tokenString
func (s *TokenService) ValidateToken(tokenString string) (*types.TokenClaims, error) {
	if len(s.secret) == 0 {
		return nil, ErrMissingKey
	}

	claims := &types.TokenClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("%w: subject is not a user id", ErrInvalidToken)
	}
	claims.UserID = userID

	return claims, nil
}

// IssueToken signs a token the way the identity provider does. It backs
// local tooling and tests; production tokens come from the provider.
func (s *TokenService) IssueToken(userID uuid.UUID, email string, ttl time.Duration) (string, error) {
	if len(s.secret) == 0 {
		return "", ErrMissingKey
	}
	now := time.Now()
	claims := types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Email: email,
		Role:  "authenticated",
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}
