//go:build unit

package checkout

import (
	"context"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"academy-api/internal/user"
	"academy-api/pkg/cerror"
	"academy-api/pkg/jwt_generator"
)

const (
	TestItemId    = "course-1"
	TestSessionId = "cs_test_123"
	TestUserEmail = "ada@example.com"
)

var TestUserId = uuid.New().String()

func newTestClaims() *jwt_generator.Claims {
	return &jwt_generator.Claims{
		Email:  TestUserEmail,
		Role:   "student",
		Status: "active",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: TestUserId,
		},
	}
}

func newTestCheckoutPayload() *CheckoutPayload {
	return &CheckoutPayload{
		ItemId:     TestItemId,
		ItemType:   ItemTypeCourse,
		Amount:     4900,
		Currency:   "usd",
		SuccessUrl: "https://academy.example.com/success",
		CancelUrl:  "https://academy.example.com/cancel",
	}
}

func newTestConfirmPayload(status string) *ConfirmTransactionPayload {
	return &ConfirmTransactionPayload{
		SessionId: TestSessionId,
		UserId:    TestUserId,
		ItemId:    TestItemId,
		ItemType:  ItemTypeCourse,
		Amount:    4900,
		Currency:  "usd",
		Status:    status,
	}
}

func TestNewService(t *testing.T) {
	checkoutService := NewService(nil, nil, nil)

	assert.Implements(t, (*Service)(nil), checkoutService)
}

func TestService_CreateCheckoutSession(t *testing.T) {
	mockController := gomock.NewController(t)
	defer mockController.Finish()

	t.Run("happy path should attach customer from session claims", func(t *testing.T) {
		ctx := context.Background()

		mockProcessorClient := NewMockProcessorClient(mockController)
		mockProcessorClient.
			EXPECT().
			CreateCheckoutSession(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, request *checkoutRequest) (*CheckoutSession, error) {
				assert.Equal(t, TestUserId, request.CustomerId)
				assert.Equal(t, TestUserEmail, request.CustomerEmail)
				assert.Equal(t, TestItemId, request.ItemId)

				return &CheckoutSession{
					SessionId: TestSessionId,
					Url:       "https://processor.example.com/pay/" + TestSessionId,
				}, nil
			})

		checkoutService := NewService(nil, nil, mockProcessorClient)
		session, err := checkoutService.CreateCheckoutSession(ctx, newTestClaims(), newTestCheckoutPayload())

		assert.NoError(t, err)
		assert.Equal(t, TestSessionId, session.SessionId)
		assert.NotEmpty(t, session.Url)
	})

	t.Run("when processor is unreachable should pass bad gateway through", func(t *testing.T) {
		ctx := context.Background()

		mockProcessorClient := NewMockProcessorClient(mockController)
		mockProcessorClient.
			EXPECT().
			CreateCheckoutSession(ctx, gomock.Any()).
			Return(nil, cerror.NewError(fiber.StatusBadGateway, "payment processor is unreachable"))

		checkoutService := NewService(nil, nil, mockProcessorClient)
		session, err := checkoutService.CreateCheckoutSession(ctx, newTestClaims(), newTestCheckoutPayload())

		assert.Nil(t, session)
		var cerr *cerror.CustomError
		require.ErrorAs(t, err, &cerr)
		assert.Equal(t, fiber.StatusBadGateway, cerr.HttpStatusCode)
	})
}

func TestService_ConfirmTransaction(t *testing.T) {
	mockController := gomock.NewController(t)
	defer mockController.Finish()

	t.Run("happy path succeeded transaction should grant the item", func(t *testing.T) {
		ctx := context.Background()

		mockTransactionRepository := NewMockRepository(mockController)
		mockTransactionRepository.
			EXPECT().
			InsertTransaction(ctx, gomock.Any()).
			Return(nil)

		mockUserRepository := user.NewMockRepository(mockController)
		mockUserRepository.
			EXPECT().
			AddPurchasedItem(ctx, TestUserId, "purchasedCourses", TestItemId).
			Return(nil)

		checkoutService := NewService(mockTransactionRepository, mockUserRepository, nil)
		transaction, err := checkoutService.ConfirmTransaction(ctx, newTestConfirmPayload(TransactionStatusSucceeded))

		assert.NoError(t, err)
		assert.NotEmpty(t, transaction.Id)
		assert.Equal(t, TransactionStatusSucceeded, transaction.Status)
	})

	t.Run("service purchases should land in the services field", func(t *testing.T) {
		ctx := context.Background()

		mockTransactionRepository := NewMockRepository(mockController)
		mockTransactionRepository.
			EXPECT().
			InsertTransaction(ctx, gomock.Any()).
			Return(nil)

		mockUserRepository := user.NewMockRepository(mockController)
		mockUserRepository.
			EXPECT().
			AddPurchasedItem(ctx, TestUserId, "purchasedServices", "mentoring-1").
			Return(nil)

		payload := newTestConfirmPayload(TransactionStatusSucceeded)
		payload.ItemId = "mentoring-1"
		payload.ItemType = ItemTypeService

		checkoutService := NewService(mockTransactionRepository, mockUserRepository, nil)
		_, err := checkoutService.ConfirmTransaction(ctx, payload)

		assert.NoError(t, err)
	})

	t.Run("failed transaction should be recorded without granting the item", func(t *testing.T) {
		ctx := context.Background()

		mockTransactionRepository := NewMockRepository(mockController)
		mockTransactionRepository.
			EXPECT().
			InsertTransaction(ctx, gomock.Any()).
			Return(nil)

		checkoutService := NewService(mockTransactionRepository, user.NewMockRepository(mockController), nil)
		transaction, err := checkoutService.ConfirmTransaction(ctx, newTestConfirmPayload(TransactionStatusFailed))

		assert.NoError(t, err)
		assert.Equal(t, TransactionStatusFailed, transaction.Status)
	})

	t.Run("when transaction insert fails item should not be granted", func(t *testing.T) {
		ctx := context.Background()

		mockTransactionRepository := NewMockRepository(mockController)
		mockTransactionRepository.
			EXPECT().
			InsertTransaction(ctx, gomock.Any()).
			Return(cerror.NewError(fiber.StatusInternalServerError, "error occurred while insert transaction"))

		checkoutService := NewService(mockTransactionRepository, user.NewMockRepository(mockController), nil)
		transaction, err := checkoutService.ConfirmTransaction(ctx, newTestConfirmPayload(TransactionStatusSucceeded))

		assert.Nil(t, transaction)
		assert.Error(t, err)
	})
}
