package payment

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Method is how the buyer settles the checkout.
type Method string

const (
	MethodTransfer Method = "transfer"
	MethodCOD      Method = "cod"
)

func (m Method) Valid() bool {
	return m == MethodTransfer || m == MethodCOD
}

// Outcome is the result of the local declared-vs-expected reconciliation.
type Outcome string

const (
	OutcomeUnverified Outcome = "unverified"
	OutcomeMatched    Outcome = "matched"
	OutcomeMismatched Outcome = "mismatched"
)

// Intent holds everything one payment needs to settle a whole checkout.
// One intent covers every order group of the checkout: the expected amount is
// the combined total, not a per-group figure.
type Intent struct {
	ID             uuid.UUID       `json:"id"`
	Method         Method          `json:"method"`
	ExpectedAmount decimal.Decimal `json:"expectedAmount"`
	DeclaredAmount decimal.Decimal `json:"declaredAmount"`
	Reference      string          `json:"reference,omitempty"`
	Fingerprint    string          `json:"fingerprint,omitempty"`
	Outcome        Outcome         `json:"outcome"`
}

// NewIntent builds the payment intent for a checkout. The declared amount
// defaults to the expected amount until the buyer overrides it. For bank
// transfers the QR reference is derived immediately.
func NewIntent(method Method, payoutID string, expected decimal.Decimal) *Intent {
	intent := &Intent{
		ID:             uuid.New(),
		Method:         method,
		ExpectedAmount: expected,
		DeclaredAmount: expected,
		Outcome:        OutcomeUnverified,
	}
	if method == MethodTransfer {
		intent.Reference = BuildReference(payoutID, expected)
	}
	return intent
}
