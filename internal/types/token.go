package types

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenClaims are the claims of an access token issued by the identity
// provider. The subject carries the user id.
type TokenClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`

	// UserID is parsed from the subject during validation
	UserID uuid.UUID `json:"-"`
}
