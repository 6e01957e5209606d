package payment

import (
	"github.com/shopspring/decimal"
)

// BuildReference builds the scannable payment reference for a bank transfer.
// The external QR renderer is addressed by "{payoutID}/{amount}"; the payment
// rail matches on the exact decimal string, so the amount always carries
// exactly two decimal places (500 becomes "500.00"). The reference is
// deterministic: the same payout id and amount always produce the same string.
func BuildReference(payoutID string, amount decimal.Decimal) string {
	return payoutID + "/" + amount.StringFixed(2)
}
