package checkout

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"academy-api/internal/auth"
	"academy-api/pkg/cerror"
	"academy-api/pkg/config"
	"academy-api/pkg/logger"
	"academy-api/pkg/server"
)

type handler struct {
	checkoutService   Service
	sessionMiddleware *auth.Middleware
	processorConfig   config.ProcessorConfig
	validate          *validator.Validate
}

func NewHandler(
	checkoutService Service,
	sessionMiddleware *auth.Middleware,
	processorConfig config.ProcessorConfig,
) server.Handler {
	return &handler{
		checkoutService:   checkoutService,
		sessionMiddleware: sessionMiddleware,
		processorConfig:   processorConfig,
		validate:          validator.New(),
	}
}

func (h *handler) RegisterRoutes(app *fiber.App) {
	api := app.Group("/api")
	api.Post("/checkout", h.sessionMiddleware.RequireSession, h.CreateCheckoutSession)
	api.Post("/stripe/confirm-transaction", h.ConfirmTransaction)
}

func (h *handler) CreateCheckoutSession(ctx *fiber.Ctx) error {
	log := logger.FromContext(ctx.Context()).
		With(zap.String("eventName", "createCheckoutSession"))
	serviceCtx := logger.InjectContext(ctx.Context(), log)

	claims := auth.ClaimsFromContext(ctx)
	if claims == nil {
		return cerror.ErrorUnauthorized
	}

	var payload CheckoutPayload
	err := ctx.BodyParser(&payload)
	if err != nil {
		return cerror.NewError(
			fiber.StatusBadRequest,
			"malformed request body",
			zap.Error(err),
		).SetSeverity(zapcore.WarnLevel)
	}

	err = h.validate.Struct(&payload)
	if err != nil {
		return cerror.NewValidationError(err)
	}

	session, err := h.checkoutService.CreateCheckoutSession(serviceCtx, claims, &payload)
	if err != nil {
		return err
	}

	log.Info(logger.EventFinishedSuccessfully)
	return ctx.
		Status(fiber.StatusOK).
		JSON(session)
}

func (h *handler) ConfirmTransaction(ctx *fiber.Ctx) error {
	log := logger.FromContext(ctx.Context()).
		With(zap.String("eventName", "confirmTransaction"))
	serviceCtx := logger.InjectContext(ctx.Context(), log)

	bearerToken := strings.TrimPrefix(ctx.Get(fiber.HeaderAuthorization), "Bearer ")
	if bearerToken == "" || bearerToken != h.processorConfig.Key {
		return cerror.ErrorUnauthorized
	}

	var payload ConfirmTransactionPayload
	err := ctx.BodyParser(&payload)
	if err != nil {
		return cerror.NewError(
			fiber.StatusBadRequest,
			"malformed request body",
			zap.Error(err),
		).SetSeverity(zapcore.WarnLevel)
	}

	err = h.validate.Struct(&payload)
	if err != nil {
		return cerror.NewValidationError(err)
	}

	transaction, err := h.checkoutService.ConfirmTransaction(serviceCtx, &payload)
	if err != nil {
		return err
	}

	log.Info(logger.EventFinishedSuccessfully)
	return ctx.
		Status(fiber.StatusCreated).
		JSON(fiber.Map{
			"transactionId": transaction.Id,
		})
}
