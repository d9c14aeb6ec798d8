package gateway

import "github.com/shopspring/decimal"

type ChargeReq struct {
	ExternalID  string
	Amount      decimal.Decimal
	Description string
}

type ChargeResp struct {
	TransactionID string
	Status        string // Completed | Failed
}

// Repo captures a payment. The core never talks to a real processor; the
// default implementation is the local simulator, the HTTP variant exists
// for environments that point PAYMENT_GATEWAY_URL at a mock server.
type Repo interface {
	Charge(req ChargeReq) (*ChargeResp, error)
}
