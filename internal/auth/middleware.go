package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"academy-api/pkg/cerror"
	"academy-api/pkg/jwt_generator"
)

const (
	CookieAccessToken  = "access-token"
	CookieRefreshToken = "refresh-token"

	ContextClaimsKey = "sessionClaims"
)

type Middleware struct {
	jwtGenerator jwt_generator.JwtGenerator
}

func NewMiddleware(jwtGenerator jwt_generator.JwtGenerator) *Middleware {
	return &Middleware{
		jwtGenerator: jwtGenerator,
	}
}

// RequireSession reads the access-token cookie, verifies it and stores the
// claims in the request locals for downstream handlers.
func (m *Middleware) RequireSession(ctx *fiber.Ctx) error {
	rawAccessToken := ctx.Cookies(CookieAccessToken)
	if rawAccessToken == "" {
		return cerror.ErrorUnauthorized
	}

	claims, err := m.jwtGenerator.VerifyToken(rawAccessToken)
	if err != nil {
		if errors.Is(err, jwt_generator.ErrTokenExpired) {
			return cerror.NewError(
				fiber.StatusUnauthorized,
				"token expired",
			).SetSeverity(zapcore.WarnLevel)
		}

		return cerror.NewError(
			fiber.StatusUnauthorized,
			"invalid token",
			zap.Error(err),
		).SetSeverity(zapcore.WarnLevel)
	}

	ctx.Locals(ContextClaimsKey, claims)
	return ctx.Next()
}

// RequireRole must run after RequireSession.
func (m *Middleware) RequireRole(roles ...string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		claims := ClaimsFromContext(ctx)
		if claims == nil {
			return cerror.ErrorUnauthorized
		}

		for _, role := range roles {
			if claims.Role == role {
				return ctx.Next()
			}
		}

		return cerror.ErrorForbidden
	}
}

func ClaimsFromContext(ctx *fiber.Ctx) *jwt_generator.Claims {
	claims, isOk := ctx.Locals(ContextClaimsKey).(*jwt_generator.Claims)
	if !isOk {
		return nil
	}

	return claims
}
