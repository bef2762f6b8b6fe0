package cerror

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap/zapcore"
)

var (
	ErrorUnauthorized = &CustomError{
		HttpStatusCode: fiber.StatusUnauthorized,
		LogMessage:     "unauthorized",
		LogSeverity:    zapcore.WarnLevel,
	}

	ErrorInvalidToken = &CustomError{
		HttpStatusCode: fiber.StatusUnauthorized,
		LogMessage:     "invalid token",
		LogSeverity:    zapcore.WarnLevel,
	}

	ErrorForbidden = &CustomError{
		HttpStatusCode: fiber.StatusForbidden,
		LogMessage:     "forbidden",
		LogSeverity:    zapcore.WarnLevel,
	}
)
