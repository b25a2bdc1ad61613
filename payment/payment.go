package payment

import (
	"context"
	"errors"
)

// Result is the gateway's answer to an authorization attempt.
type Result struct {
	Status    string `json:"status"`
	Reference string `json:"reference"`
}

var (
	// ErrDeclined means the gateway processed the request and refused it.
	ErrDeclined = errors.New("payment declined")
	// ErrProvider means the gateway could not be reached or misbehaved.
	ErrProvider = errors.New("payment provider error")
)

// Adapter authorizes funds for an order total expressed in minor currency
// units. Retry and 3-D Secure flows are the provider's concern, not ours.
type Adapter interface {
	Authorize(ctx context.Context, amountMinorUnits int64, currency, methodRef string) (Result, error)
}
