package payment

import (
	"math"
	"time"
)

type Payment struct {
	ID            string    `json:"id" db:"payment_id"`
	Email         string    `json:"email" db:"email"`
	ClassID       string    `json:"classId" db:"class_id"`
	Amount        float64   `json:"amount" db:"amount"`
	TransactionID string    `json:"transactionId" db:"transaction_id"`
	Date          time.Time `json:"date" db:"date"`
}

type PaymentNew struct {
	Email         string  `json:"email" validate:"required,email"`
	ClassID       string  `json:"classId" validate:"required,uuid4"`
	Amount        float64 `json:"amount" validate:"required,gte=0"`
	TransactionID string  `json:"transactionId"`
}

type IntentNew struct {
	Price float64 `json:"price" validate:"required,gt=0"`
}

type Intent struct {
	ClientSecret string `json:"clientSecret"`
}

// Receipt summarizes what the reconciliation did. CartCleared is false when
// the user paid without a matching cart entry, which is allowed.
type Receipt struct {
	PaymentID     string `json:"paymentId"`
	SeatsReserved bool   `json:"seatsReserved"`
	CartCleared   bool   `json:"cartCleared"`
}

// cents converts a dollar price to the integer amount the payment provider
// expects, rounding to the nearest cent.
func cents(price float64) int64 {
	return int64(math.Round(price * 100))
}
