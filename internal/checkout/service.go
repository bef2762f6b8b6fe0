package checkout

import (
	"context"
	"time"

	"github.com/google/uuid"

	"academy-api/internal/user"
	"academy-api/pkg/jwt_generator"
)

type Service interface {
	CreateCheckoutSession(
		ctx context.Context,
		claims *jwt_generator.Claims,
		payload *CheckoutPayload,
	) (*CheckoutSession, error)
	ConfirmTransaction(ctx context.Context, payload *ConfirmTransactionPayload) (*TransactionDocument, error)
}

type service struct {
	transactionRepository Repository
	userRepository        user.Repository
	processorClient       ProcessorClient
}

func NewService(
	transactionRepository Repository,
	userRepository user.Repository,
	processorClient ProcessorClient,
) Service {
	return &service{
		transactionRepository: transactionRepository,
		userRepository:        userRepository,
		processorClient:       processorClient,
	}
}

func (s *service) CreateCheckoutSession(
	ctx context.Context,
	claims *jwt_generator.Claims,
	payload *CheckoutPayload,
) (*CheckoutSession, error) {
	return s.processorClient.CreateCheckoutSession(ctx, &checkoutRequest{
		ItemId:        payload.ItemId,
		ItemType:      payload.ItemType,
		Amount:        payload.Amount,
		Currency:      payload.Currency,
		SuccessUrl:    payload.SuccessUrl,
		CancelUrl:     payload.CancelUrl,
		CustomerId:    claims.Subject,
		CustomerEmail: claims.Email,
	})
}

// ConfirmTransaction records the transaction and grants the purchased item.
// The two writes are independent single-document updates; a failure between
// them leaves a recorded transaction without a granted item, which the
// processor's retry of the callback repairs.
func (s *service) ConfirmTransaction(
	ctx context.Context,
	payload *ConfirmTransactionPayload,
) (*TransactionDocument, error) {
	transaction := &TransactionDocument{
		Id:        uuid.New().String(),
		SessionId: payload.SessionId,
		UserId:    payload.UserId,
		ItemId:    payload.ItemId,
		ItemType:  payload.ItemType,
		Amount:    payload.Amount,
		Currency:  payload.Currency,
		Status:    payload.Status,
		CreatedAt: time.Now().UTC(),
	}

	err := s.transactionRepository.InsertTransaction(ctx, transaction)
	if err != nil {
		return nil, err
	}

	if payload.Status == TransactionStatusSucceeded {
		err = s.userRepository.AddPurchasedItem(
			ctx,
			payload.UserId,
			purchasedFieldForItemType(payload.ItemType),
			payload.ItemId,
		)
		if err != nil {
			return nil, err
		}
	}

	return transaction, nil
}

func purchasedFieldForItemType(itemType string) string {
	if itemType == ItemTypeService {
		return "purchasedServices"
	}

	return "purchasedCourses"
}
