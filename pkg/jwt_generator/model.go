package jwt_generator

import (
	"errors"

	"github.com/golang-jwt/jwt/v4"
)

const IssuerDefault = "academy-api"

var (
	// ErrTokenExpired means the signature checked out but the token is past
	// its expiry; callers may attempt a silent refresh.
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenMalformed covers tampered, unparsable or otherwise invalid
	// tokens; callers should prompt a re-login.
	ErrTokenMalformed = errors.New("malformed token")
)

type Claims struct {
	Email  string `json:"email"`
	Role   string `json:"role"`
	Status string `json:"status"`
	jwt.RegisteredClaims
}

type Tokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}
