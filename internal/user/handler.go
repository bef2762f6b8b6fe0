package user

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"academy-api/internal/auth"
	"academy-api/pkg/cerror"
	"academy-api/pkg/config"
	"academy-api/pkg/jwt_generator"
	"academy-api/pkg/logger"
	"academy-api/pkg/server"
)

const (
	genericVerificationMessage  = "if the email exists, a verification link has been sent"
	genericPasswordResetMessage = "if the email exists, a password reset link has been sent"
)

type handler struct {
	userService       Service
	sessionMiddleware *auth.Middleware
	cookieConfig      config.CookieConfig
	validate          *validator.Validate
}

func NewHandler(
	userService Service,
	sessionMiddleware *auth.Middleware,
	cookieConfig config.CookieConfig,
) server.Handler {
	return &handler{
		userService:       userService,
		sessionMiddleware: sessionMiddleware,
		cookieConfig:      cookieConfig,
		validate:          validator.New(),
	}
}

func (h *handler) RegisterRoutes(app *fiber.App) {
	api := app.Group("/api")
	api.Patch("/users", h.VerifyEmail)

	authGroup := api.Group("/auth")
	authGroup.Post("/users", h.Register)
	authGroup.Post("/login", h.Login)
	authGroup.Post("/logout", h.Logout)
	authGroup.Post("/refresh", h.RefreshAccessToken)
	authGroup.Get("/me", h.sessionMiddleware.RequireSession, h.Me)
	authGroup.Post("/resend-verification", h.ResendVerification)
	authGroup.Post("/forgot-password", h.ForgotPassword)
	authGroup.Post("/reset-password", h.ResetPassword)
	authGroup.Patch(
		"/users/bulk",
		h.sessionMiddleware.RequireSession,
		h.sessionMiddleware.RequireRole(RoleAdmin),
		h.BulkUpdate,
	)
}

func (h *handler) Register(ctx *fiber.Ctx) error {
	log := logger.FromContext(ctx.Context()).
		With(zap.String("eventName", "register"))
	serviceCtx := logger.InjectContext(ctx.Context(), log)

	var payload RegisterPayload
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

	createdUser, err := h.userService.Register(serviceCtx, &payload)
	if err != nil {
		return err
	}

	log.Info(logger.EventFinishedSuccessfully)
	return ctx.
		Status(fiber.StatusCreated).
		JSON(createdUser)
}

func (h *handler) Login(ctx *fiber.Ctx) error {
	log := logger.FromContext(ctx.Context()).
		With(zap.String("eventName", "login"))
	serviceCtx := logger.InjectContext(ctx.Context(), log)

	var payload LoginPayload
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

	loggedInUser, tokens, err := h.userService.Login(serviceCtx, &payload)
	if err != nil {
		return err
	}

	h.setSessionCookies(ctx, tokens)

	log.Info(logger.EventFinishedSuccessfully)
	return ctx.
		Status(fiber.StatusOK).
		JSON(loggedInUser)
}

func (h *handler) Logout(ctx *fiber.Ctx) error {
	log := logger.FromContext(ctx.Context()).
		With(zap.String("eventName", "logout"))

	h.clearSessionCookies(ctx)

	log.Info(logger.EventFinishedSuccessfully)
	return ctx.
		Status(fiber.StatusOK).
		JSON(fiber.Map{
			"message": "logged out",
		})
}

func (h *handler) RefreshAccessToken(ctx *fiber.Ctx) error {
	log := logger.FromContext(ctx.Context()).
		With(zap.String("eventName", "refreshAccessToken"))
	serviceCtx := logger.InjectContext(ctx.Context(), log)

	rawRefreshToken := ctx.Cookies(auth.CookieRefreshToken)
	if rawRefreshToken == "" {
		return cerror.ErrorUnauthorized
	}

	accessToken, err := h.userService.RefreshAccessToken(serviceCtx, rawRefreshToken)
	if err != nil {
		return err
	}

	h.setCookie(ctx, auth.CookieAccessToken, accessToken, time.Now().Add(accessTokenTTL))

	log.Info(logger.EventFinishedSuccessfully)
	return ctx.
		Status(fiber.StatusOK).
		JSON(fiber.Map{
			"accessToken": accessToken,
		})
}

func (h *handler) Me(ctx *fiber.Ctx) error {
	log := logger.FromContext(ctx.Context()).
		With(zap.String("eventName", "me"))
	serviceCtx := logger.InjectContext(ctx.Context(), log)

	claims := auth.ClaimsFromContext(ctx)
	if claims == nil {
		return cerror.ErrorUnauthorized
	}

	currentUser, err := h.userService.GetUserById(serviceCtx, claims.Subject)
	if err != nil {
		return err
	}

	log.Info(logger.EventFinishedSuccessfully)
	return ctx.
		Status(fiber.StatusOK).
		JSON(currentUser)
}

func (h *handler) VerifyEmail(ctx *fiber.Ctx) error {
	log := logger.FromContext(ctx.Context()).
		With(zap.String("eventName", "verifyEmail"))
	serviceCtx := logger.InjectContext(ctx.Context(), log)

	var payload VerifyEmailPayload
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

	err = h.userService.VerifyEmail(serviceCtx, payload.Token)
	if err != nil {
		return err
	}

	log.Info(logger.EventFinishedSuccessfully)
	return ctx.
		Status(fiber.StatusOK).
		JSON(fiber.Map{
			"message": "email verified successfully",
		})
}

func (h *handler) ResendVerification(ctx *fiber.Ctx) error {
	log := logger.FromContext(ctx.Context()).
		With(zap.String("eventName", "resendVerification"))
	serviceCtx := logger.InjectContext(ctx.Context(), log)

	var payload ResendVerificationPayload
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

	err = h.userService.ResendVerification(serviceCtx, payload.Email)
	if err != nil {
		return err
	}

	log.Info(logger.EventFinishedSuccessfully)
	return ctx.
		Status(fiber.StatusOK).
		JSON(fiber.Map{
			"message": genericVerificationMessage,
		})
}

func (h *handler) ForgotPassword(ctx *fiber.Ctx) error {
	log := logger.FromContext(ctx.Context()).
		With(zap.String("eventName", "forgotPassword"))
	serviceCtx := logger.InjectContext(ctx.Context(), log)

	var payload ForgotPasswordPayload
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

	err = h.userService.ForgotPassword(serviceCtx, payload.Email)
	if err != nil {
		return err
	}

	log.Info(logger.EventFinishedSuccessfully)
	return ctx.
		Status(fiber.StatusOK).
		JSON(fiber.Map{
			"message": genericPasswordResetMessage,
		})
}

func (h *handler) ResetPassword(ctx *fiber.Ctx) error {
	log := logger.FromContext(ctx.Context()).
		With(zap.String("eventName", "resetPassword"))
	serviceCtx := logger.InjectContext(ctx.Context(), log)

	var payload ResetPasswordPayload
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

	err = h.userService.ResetPassword(serviceCtx, &payload)
	if err != nil {
		return err
	}

	log.Info(logger.EventFinishedSuccessfully)
	return ctx.
		Status(fiber.StatusOK).
		JSON(fiber.Map{
			"message": "password has been reset",
		})
}

func (h *handler) BulkUpdate(ctx *fiber.Ctx) error {
	log := logger.FromContext(ctx.Context()).
		With(zap.String("eventName", "bulkUpdate"))
	serviceCtx := logger.InjectContext(ctx.Context(), log)

	claims := auth.ClaimsFromContext(ctx)
	if claims == nil {
		return cerror.ErrorUnauthorized
	}

	var payload BulkUpdatePayload
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

	result, err := h.userService.BulkUpdate(serviceCtx, claims.Subject, &payload)
	if err != nil {
		return err
	}

	log.Info(logger.EventFinishedSuccessfully)
	return ctx.
		Status(fiber.StatusOK).
		JSON(result)
}

func (h *handler) setSessionCookies(ctx *fiber.Ctx, tokens *jwt_generator.Tokens) {
	h.setCookie(ctx, auth.CookieAccessToken, tokens.AccessToken, time.Now().Add(accessTokenTTL))
	h.setCookie(ctx, auth.CookieRefreshToken, tokens.RefreshToken, time.Now().Add(refreshTokenTTL))
}

func (h *handler) clearSessionCookies(ctx *fiber.Ctx) {
	expiredAt := time.Now().Add(-time.Hour)
	h.setCookie(ctx, auth.CookieAccessToken, "", expiredAt)
	h.setCookie(ctx, auth.CookieRefreshToken, "", expiredAt)
}

func (h *handler) setCookie(ctx *fiber.Ctx, name, value string, expiresAt time.Time) {
	ctx.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    value,
		Expires:  expiresAt,
		Domain:   h.cookieConfig.Domain,
		Secure:   h.cookieConfig.Secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
}
