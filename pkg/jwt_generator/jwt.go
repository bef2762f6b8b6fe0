package jwt_generator

import (
	"crypto/ecdsa"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"academy-api/pkg/config"
)

type JwtGenerator interface {
	GenerateAccessToken(expirationTime time.Time, email, role, status, userId string) (string, error)
	GenerateRefreshToken(expirationTime time.Time, userId string) (string, error)
	VerifyToken(rawJwtToken string) (*Claims, error)
}

type jwtGenerator struct {
	privateKey *ecdsa.PrivateKey
	publicKey  *ecdsa.PublicKey
}

func NewJwtGenerator(jwtConfig config.JwtConfig) (JwtGenerator, error) {
	parsedEC256PrivateKey, err := jwt.ParseECPrivateKeyFromPEM(jwtConfig.PrivateKey)
	if err != nil {
		return nil, err
	}

	parsedEC256PublicKey, err := jwt.ParseECPublicKeyFromPEM(jwtConfig.PublicKey)
	if err != nil {
		return nil, err
	}

	return &jwtGenerator{
		privateKey: parsedEC256PrivateKey,
		publicKey:  parsedEC256PublicKey,
	}, nil
}

func (jwtGenerator *jwtGenerator) GenerateAccessToken(
	expirationTime time.Time,
	email, role, status, userId string,
) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		Email:  email,
		Role:   role,
		Status: status,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   userId,
			Issuer:    IssuerDefault,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expirationTime),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodES256, claims)

	signedToken, err := token.SignedString(jwtGenerator.privateKey)
	if err != nil {
		return "", err
	}

	return signedToken, nil
}

func (jwtGenerator *jwtGenerator) GenerateRefreshToken(expirationTime time.Time, userId string) (string, error) {
	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		ID:        uuid.New().String(),
		Issuer:    IssuerDefault,
		Subject:   userId,
		ExpiresAt: jwt.NewNumericDate(expirationTime),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodES256, claims)

	signedToken, err := token.SignedString(jwtGenerator.privateKey)
	if err != nil {
		return "", err
	}

	return signedToken, nil
}

// VerifyToken checks signature integrity and expiry. An expired-but-authentic
// token fails with ErrTokenExpired so callers can tell it apart from tampering.
func (jwtGenerator *jwtGenerator) VerifyToken(rawJwtToken string) (*Claims, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(rawJwtToken, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodECDSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		return jwtGenerator.publicKey, nil
	}, jwt.WithoutClaimsValidation())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenMalformed, err)
	}

	isValidIssuer := claims.VerifyIssuer(IssuerDefault, true)
	if !isValidIssuer {
		return nil, fmt.Errorf("%w: ambiguous issuer", ErrTokenMalformed)
	}

	now := time.Now().UTC()
	isNotExpired := claims.VerifyExpiresAt(now, true)
	if !isNotExpired {
		return nil, ErrTokenExpired
	}

	isTokenStarted := claims.VerifyNotBefore(now, false)
	if !isTokenStarted {
		return nil, fmt.Errorf("%w: token is not started", ErrTokenMalformed)
	}

	return &claims, nil
}
