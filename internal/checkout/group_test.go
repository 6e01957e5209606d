package checkout

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/wichananm65/marketplace-backend/internal/cart"
	"github.com/wichananm65/marketplace-backend/internal/payment"
)

func strPtr(s string) *string { return &s }

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func transferOpts(rate string) PartitionOptions {
	return PartitionOptions{ShipRate: dec(rate), CODFee: dec("30"), Method: payment.MethodTransfer}
}

func TestPartition_EmptyCart(t *testing.T) {
	groups := Partition(nil, transferOpts("45"))
	if len(groups) != 0 {
		t.Fatalf("empty cart should produce no groups, got %d", len(groups))
	}
}

func TestPartition_TwoSellersPlusUnassigned(t *testing.T) {
	items := []cart.LineItem{
		{ProductID: 1, SellerID: strPtr("A"), UnitPrice: dec("100"), Quantity: 2},
		{ProductID: 2, SellerID: strPtr("B"), UnitPrice: dec("50"), Quantity: 1},
		{ProductID: 3, UnitPrice: dec("30"), Quantity: 1},
	}

	groups := Partition(items, transferOpts("45"))
	if len(groups) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(groups))
	}

	if groups[0].SellerID == nil || *groups[0].SellerID != "A" {
		t.Errorf("group 0 should belong to seller A")
	}
	if groups[1].SellerID == nil || *groups[1].SellerID != "B" {
		t.Errorf("group 1 should belong to seller B")
	}
	if groups[2].SellerID != nil {
		t.Errorf("unassigned group must come last with nil seller")
	}

	wantTotals := []string{"245", "95", "75"}
	for i, want := range wantTotals {
		if !groups[i].Amounts.Total.Equal(dec(want)) {
			t.Errorf("group %d total = %s, want %s", i, groups[i].Amounts.Total, want)
		}
	}
	if !CombinedTotal(groups).Equal(dec("415")) {
		t.Errorf("combined total = %s, want 415", CombinedTotal(groups))
	}
}

func TestPartition_FirstSeenOrder(t *testing.T) {
	items := []cart.LineItem{
		{ProductID: 1, SellerID: strPtr("B"), UnitPrice: dec("10"), Quantity: 1},
		{ProductID: 2, SellerID: strPtr("A"), UnitPrice: dec("10"), Quantity: 1},
		{ProductID: 3, SellerID: strPtr("B"), UnitPrice: dec("10"), Quantity: 3},
	}

	groups := Partition(items, transferOpts("45"))
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if *groups[0].SellerID != "B" || *groups[1].SellerID != "A" {
		t.Errorf("groups must keep first-encountered seller order, got %s then %s",
			*groups[0].SellerID, *groups[1].SellerID)
	}
	if len(groups[0].Items) != 2 {
		t.Errorf("seller B should hold 2 items, got %d", len(groups[0].Items))
	}
}

func TestPartition_SubtotalConservation(t *testing.T) {
	items := []cart.LineItem{
		{ProductID: 1, SellerID: strPtr("A"), UnitPrice: dec("19.99"), Quantity: 3},
		{ProductID: 2, SellerID: strPtr("B"), UnitPrice: dec("0.10"), Quantity: 7},
		{ProductID: 3, SellerID: strPtr("A"), UnitPrice: dec("123.45"), Quantity: 1},
		{ProductID: 4, UnitPrice: dec("5.55"), Quantity: 2},
		{ProductID: 5, SellerID: strPtr("C"), UnitPrice: dec("1000"), Quantity: 1},
	}

	groups := Partition(items, transferOpts("45"))

	sum := decimal.Zero
	itemCount := 0
	for _, g := range groups {
		sum = sum.Add(g.Amounts.Subtotal)
		itemCount += len(g.Items)
	}
	if !sum.Equal(cart.Subtotal(items)) {
		t.Errorf("group subtotals sum to %s, cart subtotal is %s", sum, cart.Subtotal(items))
	}
	if itemCount != len(items) {
		t.Errorf("every item must land in exactly one group: %d vs %d", itemCount, len(items))
	}
}

func TestPartition_ShipCostPerGroupNotProrated(t *testing.T) {
	items := []cart.LineItem{
		{ProductID: 1, SellerID: strPtr("A"), UnitPrice: dec("10"), Quantity: 1},
		{ProductID: 2, SellerID: strPtr("B"), UnitPrice: dec("10"), Quantity: 1},
	}

	groups := Partition(items, transferOpts("45"))
	for i, g := range groups {
		if !g.Amounts.ShipCost.Equal(dec("45")) {
			t.Errorf("group %d shipCost = %s, want full flat 45", i, g.Amounts.ShipCost)
		}
	}
}

func TestPartition_CODFeePerGroup(t *testing.T) {
	items := []cart.LineItem{
		{ProductID: 1, SellerID: strPtr("A"), UnitPrice: dec("100"), Quantity: 1},
		{ProductID: 2, SellerID: strPtr("B"), UnitPrice: dec("200"), Quantity: 1},
	}

	cod := Partition(items, PartitionOptions{ShipRate: dec("45"), CODFee: dec("30"), Method: payment.MethodCOD})
	for i, g := range cod {
		if !g.Amounts.CODFee.Equal(dec("30")) {
			t.Errorf("cod group %d fee = %s, want 30", i, g.Amounts.CODFee)
		}
	}
	if !cod[0].Amounts.Total.Equal(dec("175")) {
		t.Errorf("cod group 0 total = %s, want 175", cod[0].Amounts.Total)
	}

	transfer := Partition(items, transferOpts("45"))
	for i, g := range transfer {
		if !g.Amounts.CODFee.IsZero() {
			t.Errorf("transfer group %d should carry no cod fee, got %s", i, g.Amounts.CODFee)
		}
	}
}
