package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"academy-api/pkg/cerror"
	"academy-api/pkg/crypt"
	"academy-api/pkg/jwt_generator"
	"academy-api/pkg/logger"
	"academy-api/pkg/mailer"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 168 * time.Hour

	verificationTokenTTL = 24 * time.Hour
	resetTokenTTL        = time.Hour

	resendVerificationWindow = 5 * time.Minute
	forgotPasswordWindow     = 15 * time.Minute
)

type Service interface {
	Register(ctx context.Context, payload *RegisterPayload) (*UserProjection, error)
	Login(ctx context.Context, payload *LoginPayload) (*UserProjection, *jwt_generator.Tokens, error)
	RefreshAccessToken(ctx context.Context, rawRefreshToken string) (string, error)
	GetUserById(ctx context.Context, userId string) (*UserProjection, error)
	VerifyEmail(ctx context.Context, token string) error
	ResendVerification(ctx context.Context, email string) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, payload *ResetPasswordPayload) error
	BulkUpdate(ctx context.Context, callerId string, payload *BulkUpdatePayload) (*BulkUpdateResult, error)
}

type service struct {
	userRepository Repository
	jwtGenerator   jwt_generator.JwtGenerator
	mailer         mailer.Mailer
}

func NewService(
	userRepository Repository,
	jwtGenerator jwt_generator.JwtGenerator,
	mailer mailer.Mailer,
) Service {
	return &service{
		userRepository: userRepository,
		jwtGenerator:   jwtGenerator,
		mailer:         mailer,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *service) Register(ctx context.Context, payload *RegisterPayload) (*UserProjection, error) {
	hashedPassword, err := crypt.HashPassword(payload.Password)
	if err != nil {
		return nil, cerror.NewError(
			fiber.StatusInternalServerError,
			"error occurred while generate hash from password",
			zap.Error(err),
		)
	}

	verificationToken, err := crypt.GenerateOpaqueToken()
	if err != nil {
		return nil, cerror.NewError(
			fiber.StatusInternalServerError,
			"error occurred while generate verification token",
			zap.Error(err),
		)
	}

	now := time.Now().UTC()
	user := &UserDocument{
		Id:                       uuid.New().String(),
		FirstName:                payload.FirstName,
		LastName:                 payload.LastName,
		Email:                    normalizeEmail(payload.Email),
		Password:                 hashedPassword,
		Role:                     RoleStudent,
		Status:                   StatusPending,
		EmailVerified:            false,
		EmailVerificationToken:   verificationToken,
		EmailVerificationExpires: now.Add(verificationTokenTTL),
		JoinDate:                 now,
		CreatedAt:                now,
		UpdatedAt:                now,
	}

	_, err = s.userRepository.InsertUser(ctx, user)
	if err != nil {
		return nil, err
	}

	// Mail dispatch failure does not roll back user creation; the account
	// stays pending and the resend-verification path covers delivery retries.
	err = s.mailer.SendVerificationEmail(user.Email, user.FirstName, verificationToken)
	if err != nil {
		logger.FromContext(ctx).Warnw(
			"failed to send verification email",
			zap.String("userId", user.Id),
			zap.Error(err),
		)
	}

	return user.Projection(), nil
}

func (s *service) Login(
	ctx context.Context,
	payload *LoginPayload,
) (*UserProjection, *jwt_generator.Tokens, error) {
	user, err := s.userRepository.FindUserWithEmail(ctx, normalizeEmail(payload.Email))
	if err != nil {
		var cerr *cerror.CustomError
		if errors.As(err, &cerr) && cerr.HttpStatusCode == fiber.StatusNotFound {
			return nil, nil, invalidCredentialsError()
		}

		return nil, nil, err
	}

	passwordMatches := crypt.CheckPassword(payload.Password, user.Password)
	if !passwordMatches {
		return nil, nil, invalidCredentialsError()
	}

	if user.Status == StatusBanned {
		return nil, nil, cerror.NewError(
			fiber.StatusForbidden,
			"account is banned",
		).SetSeverity(zapcore.WarnLevel)
	}

	tokens, err := s.generateTokens(user)
	if err != nil {
		return nil, nil, err
	}

	err = s.userRepository.UpdateLastLogin(ctx, user.Id)
	if err != nil {
		return nil, nil, err
	}

	return user.Projection(), tokens, nil
}

// invalidCredentialsError deliberately collapses unknown-email and
// wrong-password into one response body.
func invalidCredentialsError() *cerror.CustomError {
	return cerror.NewError(
		fiber.StatusUnauthorized,
		"invalid email or password",
	).SetSeverity(zapcore.WarnLevel)
}

func (s *service) generateTokens(user *UserDocument) (*jwt_generator.Tokens, error) {
	accessTokenExpiresAt := time.Now().UTC().Add(accessTokenTTL)
	accessToken, err := s.jwtGenerator.GenerateAccessToken(
		accessTokenExpiresAt,
		user.Email,
		user.Role,
		user.Status,
		user.Id,
	)
	if err != nil {
		return nil, cerror.NewError(
			fiber.StatusInternalServerError,
			"error occurred while generate access token",
			zap.Error(err),
		)
	}

	refreshTokenExpiresAt := time.Now().UTC().Add(refreshTokenTTL)
	refreshToken, err := s.jwtGenerator.GenerateRefreshToken(refreshTokenExpiresAt, user.Id)
	if err != nil {
		return nil, cerror.NewError(
			fiber.StatusInternalServerError,
			"error occurred while generate refresh token",
			zap.Error(err),
		)
	}

	return &jwt_generator.Tokens{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (s *service) RefreshAccessToken(ctx context.Context, rawRefreshToken string) (string, error) {
	claims, err := s.jwtGenerator.VerifyToken(rawRefreshToken)
	if err != nil {
		if errors.Is(err, jwt_generator.ErrTokenExpired) {
			return "", cerror.NewError(
				fiber.StatusUnauthorized,
				"refresh token expired",
			).SetSeverity(zapcore.WarnLevel)
		}

		return "", cerror.NewError(
			fiber.StatusUnauthorized,
			"invalid token",
			zap.Error(err),
		).SetSeverity(zapcore.WarnLevel)
	}

	user, err := s.userRepository.FindUserWithId(ctx, claims.Subject)
	if err != nil {
		var cerr *cerror.CustomError
		if errors.As(err, &cerr) && cerr.HttpStatusCode == fiber.StatusNotFound {
			return "", cerror.NewError(
				fiber.StatusUnauthorized,
				"invalid token",
			).SetSeverity(zapcore.WarnLevel)
		}

		return "", err
	}

	accessTokenExpiresAt := time.Now().UTC().Add(accessTokenTTL)
	accessToken, err := s.jwtGenerator.GenerateAccessToken(
		accessTokenExpiresAt,
		user.Email,
		user.Role,
		user.Status,
		user.Id,
	)
	if err != nil {
		return "", cerror.NewError(
			fiber.StatusInternalServerError,
			"error occurred while generate access token",
			zap.Error(err),
		)
	}

	return accessToken, nil
}

func (s *service) GetUserById(ctx context.Context, userId string) (*UserProjection, error) {
	user, err := s.userRepository.FindUserWithId(ctx, userId)
	if err != nil {
		return nil, err
	}

	return user.Projection(), nil
}

func (s *service) VerifyEmail(ctx context.Context, token string) error {
	user, err := s.userRepository.FindUserWithVerificationToken(ctx, token)
	if err != nil {
		var cerr *cerror.CustomError
		if errors.As(err, &cerr) && cerr.HttpStatusCode == fiber.StatusNotFound {
			return invalidVerificationTokenError()
		}

		return err
	}

	if tokenExpired(user.EmailVerificationExpires, time.Now().UTC()) {
		return invalidVerificationTokenError()
	}

	return s.userRepository.MarkEmailVerified(ctx, user.Id)
}

func invalidVerificationTokenError() *cerror.CustomError {
	return cerror.NewError(
		fiber.StatusBadRequest,
		"invalid or expired verification token",
	).SetSeverity(zapcore.WarnLevel)
}

func (s *service) ResendVerification(ctx context.Context, email string) error {
	user, err := s.userRepository.FindUserWithEmail(ctx, normalizeEmail(email))
	if err != nil {
		var cerr *cerror.CustomError
		if errors.As(err, &cerr) && cerr.HttpStatusCode == fiber.StatusNotFound {
			// Unknown addresses get the generic success message to avoid
			// account enumeration.
			return nil
		}

		return err
	}

	if user.EmailVerified {
		return cerror.NewError(
			fiber.StatusBadRequest,
			"email is already verified",
		).SetSeverity(zapcore.WarnLevel)
	}

	if withinRateWindow(user.UpdatedAt, resendVerificationWindow, time.Now().UTC()) {
		return rateLimitedError()
	}

	verificationToken, err := crypt.GenerateOpaqueToken()
	if err != nil {
		return cerror.NewError(
			fiber.StatusInternalServerError,
			"error occurred while generate verification token",
			zap.Error(err),
		)
	}

	err = s.userRepository.SetVerificationToken(
		ctx,
		user.Id,
		verificationToken,
		time.Now().UTC().Add(verificationTokenTTL),
	)
	if err != nil {
		return err
	}

	err = s.mailer.SendVerificationEmail(user.Email, user.FirstName, verificationToken)
	if err != nil {
		return cerror.NewError(
			fiber.StatusInternalServerError,
			"error occurred while send verification email",
			zap.Error(err),
		)
	}

	return nil
}

func rateLimitedError() *cerror.CustomError {
	return cerror.NewError(
		fiber.StatusTooManyRequests,
		"too many requests, try again later",
	).SetSeverity(zapcore.WarnLevel)
}

func (s *service) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.userRepository.FindUserWithEmail(ctx, normalizeEmail(email))
	if err != nil {
		var cerr *cerror.CustomError
		if errors.As(err, &cerr) && cerr.HttpStatusCode == fiber.StatusNotFound {
			return nil
		}

		return err
	}

	if !user.EmailVerified {
		return cerror.NewError(
			fiber.StatusBadRequest,
			"email is not verified",
		).SetSeverity(zapcore.WarnLevel)
	}

	hasPendingReset := user.PasswordResetToken != "" &&
		withinRateWindow(user.UpdatedAt, forgotPasswordWindow, time.Now().UTC())
	if hasPendingReset {
		return rateLimitedError()
	}

	resetToken, err := crypt.GenerateOpaqueToken()
	if err != nil {
		return cerror.NewError(
			fiber.StatusInternalServerError,
			"error occurred while generate reset token",
			zap.Error(err),
		)
	}

	err = s.userRepository.SetResetToken(
		ctx,
		user.Id,
		resetToken,
		time.Now().UTC().Add(resetTokenTTL),
	)
	if err != nil {
		return err
	}

	err = s.mailer.SendPasswordResetEmail(user.Email, user.FirstName, resetToken)
	if err != nil {
		return cerror.NewError(
			fiber.StatusInternalServerError,
			"error occurred while send password reset email",
			zap.Error(err),
		)
	}

	return nil
}

func (s *service) ResetPassword(ctx context.Context, payload *ResetPasswordPayload) error {
	user, err := s.userRepository.FindUserWithResetToken(ctx, payload.Token)
	if err != nil {
		var cerr *cerror.CustomError
		if errors.As(err, &cerr) && cerr.HttpStatusCode == fiber.StatusNotFound {
			return invalidResetTokenError()
		}

		return err
	}

	if tokenExpired(user.PasswordResetExpires, time.Now().UTC()) {
		return invalidResetTokenError()
	}

	hashedPassword, err := crypt.HashPassword(payload.NewPassword)
	if err != nil {
		return cerror.NewError(
			fiber.StatusInternalServerError,
			"error occurred while generate hash from password",
			zap.Error(err),
		)
	}

	return s.userRepository.UpdatePassword(ctx, user.Id, hashedPassword)
}

func invalidResetTokenError() *cerror.CustomError {
	return cerror.NewError(
		fiber.StatusBadRequest,
		"invalid or expired reset token",
	).SetSeverity(zapcore.WarnLevel)
}

func (s *service) BulkUpdate(
	ctx context.Context,
	callerId string,
	payload *BulkUpdatePayload,
) (*BulkUpdateResult, error) {
	for _, userId := range payload.UserIds {
		if userId == callerId {
			return nil, cerror.NewError(
				fiber.StatusForbidden,
				"cannot modify your own account",
			).SetSeverity(zapcore.WarnLevel)
		}
	}

	var fields bson.M
	switch payload.Action {
	case BulkActionChangeRole:
		if !IsValidRole(payload.NewRole) {
			return nil, cerror.NewError(
				fiber.StatusBadRequest,
				"invalid role",
			).SetSeverity(zapcore.WarnLevel)
		}
		fields = bson.M{"role": payload.NewRole}
	case BulkActionChangeStatus:
		if !IsValidStatus(payload.NewStatus) {
			return nil, cerror.NewError(
				fiber.StatusBadRequest,
				"invalid status",
			).SetSeverity(zapcore.WarnLevel)
		}
		fields = bson.M{"status": payload.NewStatus}
	default:
		return nil, cerror.NewError(
			fiber.StatusBadRequest,
			"invalid bulk action",
		).SetSeverity(zapcore.WarnLevel)
	}

	result, err := s.userRepository.UpdateManyUsers(ctx, payload.UserIds, fields)
	if err != nil {
		return nil, err
	}

	if result.MatchedCount == 0 {
		return nil, cerror.NewError(
			fiber.StatusNotFound,
			"no users matched",
		).SetSeverity(zapcore.WarnLevel)
	}

	return result, nil
}
