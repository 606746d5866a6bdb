// Package payment wraps the card charge gateway behind a single-method
// interface so handlers (and tests) don't depend on the Omise SDK directly.
package payment

import (
	"github.com/omise/omise-go"
	"github.com/omise/omise-go/operations"
)

// Charge is the gateway-neutral outcome of a charge attempt.
type Charge struct {
	ID             string
	Amount         int64 // smallest currency unit
	Currency       string
	Paid           bool
	FailureCode    string
	FailureMessage string
}

// Gateway creates a card charge for an order. Amount is in the smallest
// currency unit (satang, cents).
type Gateway interface {
	Charge(amount int64, currency, cardToken, orderNumber string) (*Charge, error)
}

// OmiseGateway charges cards through the Omise API.
type OmiseGateway struct {
	client *omise.Client
}

func NewOmiseGateway(publicKey, secretKey string) (*OmiseGateway, error) {
	client, err := omise.NewClient(publicKey, secretKey)
	if err != nil {
		return nil, err
	}
	client.SetDebug(false)
	return &OmiseGateway{client: client}, nil
}

func (g *OmiseGateway) Charge(amount int64, currency, cardToken, orderNumber string) (*Charge, error) {
	ch := &omise.Charge{}
	req := &operations.CreateCharge{
		Amount:   amount,
		Currency: currency,
		Card:     cardToken,
		Metadata: map[string]any{"order_number": orderNumber},
	}
	if err := g.client.Do(ch, req); err != nil {
		return nil, err
	}

	out := &Charge{
		ID:       ch.ID,
		Amount:   ch.Amount,
		Currency: ch.Currency,
		Paid:     string(ch.Status) == "successful",
	}
	if ch.FailureCode != nil {
		out.FailureCode = *ch.FailureCode
	}
	if ch.FailureMessage != nil {
		out.FailureMessage = *ch.FailureMessage
	}
	return out, nil
}
