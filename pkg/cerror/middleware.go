package cerror

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"academy-api/pkg/logger"
)

// Middleware is the Fiber error handler. Business errors carry their own
// status and severity; anything else is logged and collapsed to a generic 500.
func Middleware(ctx *fiber.Ctx, err error) error {
	log := logger.FromContext(ctx.Context())

	var cerr *CustomError
	if !errors.As(err, &cerr) {
		log.Desugar().Error("unhandled error", zap.Error(err))
		return ctx.
			Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{
				"error": "internal server error",
			})
	}

	logWithFields := log.Desugar()
	for _, field := range cerr.LogFields {
		logWithFields = logWithFields.With(field)
	}
	logWithFields.Log(cerr.LogSeverity, cerr.LogMessage)

	return ctx.
		Status(cerr.HttpStatusCode).
		JSON(cerr)
}
