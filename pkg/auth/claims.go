package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	JTI string
}

// AccessTokenClaims represents the typed JWT issued to the admin client.
// There is a single admin account, so the claims carry no subject beyond
// the session identifier.
type AccessTokenClaims struct {
	jwt.RegisteredClaims
}
