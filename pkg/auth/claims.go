package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the typed JWT issued to clients. It deliberately carries no
// role or account-state data: both are re-read from the credential store on
// every request so revocation takes effect without reissuing tokens.
type Claims struct {
	UserID uuid.UUID `json:"user_id"`
	jwt.RegisteredClaims
}
