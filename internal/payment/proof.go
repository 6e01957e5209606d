package payment

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/shopspring/decimal"
)

// tolerance absorbs rounding artifacts from the payment rail.
var tolerance = decimal.New(1, -2) // 0.01

// Fingerprint returns the hex sha256 digest of the uploaded proof bytes.
// It is used for audit and dedup, not to verify payment authenticity.
func Fingerprint(file []byte) string {
	sum := sha256.Sum256(file)
	return hex.EncodeToString(sum[:])
}

// Attach records the content fingerprint of an uploaded proof-of-payment file
// on the intent and returns it.
func (i *Intent) Attach(file []byte) string {
	i.Fingerprint = Fingerprint(file)
	return i.Fingerprint
}

// Reconcile compares the buyer-declared amount against the expected amount.
// Matched iff |round(declared,2) - round(expected,2)| <= 0.01. This is a
// local, non-authoritative check; no bank is contacted.
func Reconcile(declared, expected decimal.Decimal) Outcome {
	diff := declared.Round(2).Sub(expected.Round(2)).Abs()
	if diff.LessThanOrEqual(tolerance) {
		return OutcomeMatched
	}
	return OutcomeMismatched
}

// Reconcile records the declared amount on the intent and stores the outcome.
func (i *Intent) Reconcile(declared decimal.Decimal) Outcome {
	i.DeclaredAmount = declared
	i.Outcome = Reconcile(declared, i.ExpectedAmount)
	return i.Outcome
}
