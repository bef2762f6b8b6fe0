package checkout

import "time"

const (
	ItemTypeCourse   = "course"
	ItemTypeBootcamp = "bootcamp"
	ItemTypeEbook    = "ebook"
	ItemTypeService  = "service"

	TransactionStatusSucceeded = "succeeded"
	TransactionStatusFailed    = "failed"
)

type CheckoutPayload struct {
	ItemId     string `json:"itemId" validate:"required"`
	ItemType   string `json:"itemType" validate:"required,oneof=course bootcamp ebook service"`
	Amount     int64  `json:"amount" validate:"required,gt=0"`
	Currency   string `json:"currency" validate:"required,len=3"`
	SuccessUrl string `json:"successUrl" validate:"required,url"`
	CancelUrl  string `json:"cancelUrl" validate:"required,url"`
}

// checkoutRequest is the payload forwarded to the payment processor; the
// customer fields come from the verified session, never from the client.
type checkoutRequest struct {
	ItemId        string `json:"itemId"`
	ItemType      string `json:"itemType"`
	Amount        int64  `json:"amount"`
	Currency      string `json:"currency"`
	SuccessUrl    string `json:"successUrl"`
	CancelUrl     string `json:"cancelUrl"`
	CustomerId    string `json:"customerId"`
	CustomerEmail string `json:"customerEmail"`
}

type CheckoutSession struct {
	SessionId string `json:"sessionId"`
	Url       string `json:"url"`
}

type ConfirmTransactionPayload struct {
	SessionId string `json:"sessionId" validate:"required"`
	UserId    string `json:"userId" validate:"required"`
	ItemId    string `json:"itemId" validate:"required"`
	ItemType  string `json:"itemType" validate:"required,oneof=course bootcamp ebook service"`
	Amount    int64  `json:"amount" validate:"required,gt=0"`
	Currency  string `json:"currency" validate:"required,len=3"`
	Status    string `json:"status" validate:"required,oneof=succeeded failed"`
}

type TransactionDocument struct {
	Id        string    `bson:"_id"`
	SessionId string    `bson:"sessionId"`
	UserId    string    `bson:"userId"`
	ItemId    string    `bson:"itemId"`
	ItemType  string    `bson:"itemType"`
	Amount    int64     `bson:"amount"`
	Currency  string    `bson:"currency"`
	Status    string    `bson:"status"`
	CreatedAt time.Time `bson:"createdAt"`
}
