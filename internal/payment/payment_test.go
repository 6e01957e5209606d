package payment

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestBuildReference_TwoDecimals(t *testing.T) {
	cases := []struct {
		amount string
		want   string
	}{
		{"500", "0812345678/500.00"},
		{"415.5", "0812345678/415.50"},
		{"99.99", "0812345678/99.99"},
		{"0", "0812345678/0.00"},
	}
	for _, tc := range cases {
		amount, _ := decimal.NewFromString(tc.amount)
		got := BuildReference("0812345678", amount)
		if got != tc.want {
			t.Errorf("BuildReference(%s) = %q, want %q", tc.amount, got, tc.want)
		}
	}
}

func TestBuildReference_Deterministic(t *testing.T) {
	amount := decimal.NewFromInt(245).Add(decimal.NewFromInt(95)).Add(decimal.NewFromInt(75))
	first := BuildReference("merchant-01", amount)
	for i := 0; i < 5; i++ {
		if got := BuildReference("merchant-01", amount); got != first {
			t.Fatalf("reference changed between runs: %q vs %q", got, first)
		}
	}
}

func TestReconcile_ToleranceBoundary(t *testing.T) {
	expected := decimal.NewFromInt(415)

	if got := Reconcile(expected, expected); got != OutcomeMatched {
		t.Errorf("exact amount: got %s, want matched", got)
	}
	plusOne, _ := decimal.NewFromString("415.01")
	if got := Reconcile(plusOne, expected); got != OutcomeMatched {
		t.Errorf("+0.01: got %s, want matched", got)
	}
	minusOne, _ := decimal.NewFromString("414.99")
	if got := Reconcile(minusOne, expected); got != OutcomeMatched {
		t.Errorf("-0.01: got %s, want matched", got)
	}
	plusTwo, _ := decimal.NewFromString("415.02")
	if got := Reconcile(plusTwo, expected); got != OutcomeMismatched {
		t.Errorf("+0.02: got %s, want mismatched", got)
	}
}

func TestIntent_ReconcileRecordsOutcome(t *testing.T) {
	intent := NewIntent(MethodTransfer, "0812345678", decimal.NewFromInt(500))

	if intent.Outcome != OutcomeUnverified {
		t.Fatalf("new intent outcome = %s, want unverified", intent.Outcome)
	}
	if !intent.DeclaredAmount.Equal(intent.ExpectedAmount) {
		t.Fatalf("declared amount should default to expected")
	}
	if intent.Reference != "0812345678/500.00" {
		t.Fatalf("unexpected reference %q", intent.Reference)
	}

	declared, _ := decimal.NewFromString("499.99")
	if got := intent.Reconcile(declared); got != OutcomeMatched {
		t.Errorf("reconcile within tolerance: got %s", got)
	}
	if !intent.DeclaredAmount.Equal(declared) {
		t.Errorf("declared amount not recorded")
	}
}

func TestIntent_CODHasNoReference(t *testing.T) {
	intent := NewIntent(MethodCOD, "0812345678", decimal.NewFromInt(130))
	if intent.Reference != "" {
		t.Errorf("cod intent should not carry a transfer reference, got %q", intent.Reference)
	}
}

func TestFingerprint(t *testing.T) {
	slip := []byte("slip bytes")

	fp := Fingerprint(slip)
	if len(fp) != 64 {
		t.Fatalf("fingerprint length = %d, want 64 hex chars", len(fp))
	}
	if Fingerprint(slip) != fp {
		t.Errorf("fingerprint not stable for identical bytes")
	}
	if Fingerprint([]byte("other bytes")) == fp {
		t.Errorf("different content produced the same fingerprint")
	}

	intent := NewIntent(MethodTransfer, "m", decimal.NewFromInt(1))
	if got := intent.Attach(slip); got != fp || intent.Fingerprint != fp {
		t.Errorf("Attach did not record the fingerprint")
	}
}
