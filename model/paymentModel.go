// model/paymentModel.go
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "Pending"
	PaymentCompleted PaymentStatus = "Completed"
	PaymentFailed    PaymentStatus = "Failed"
)

type Payment struct {
	ID            int64           `json:"payment_id"`
	RentalID      int64           `json:"rental_id"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentStatus PaymentStatus   `json:"payment_status"`
	TransactionID *string         `json:"transaction_id,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}
