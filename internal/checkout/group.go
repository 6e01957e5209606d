package checkout

import (
	"github.com/shopspring/decimal"
	"github.com/wichananm65/marketplace-backend/internal/cart"
	"github.com/wichananm65/marketplace-backend/internal/order"
	"github.com/wichananm65/marketplace-backend/internal/payment"
)

// DeliveryTier selects the flat shipping rate applied to every group.
type DeliveryTier string

const (
	DeliveryStandard DeliveryTier = "standard"
	DeliveryExpress  DeliveryTier = "express"
)

func (t DeliveryTier) Valid() bool {
	return t == DeliveryStandard || t == DeliveryExpress
}

// OrderGroup is the per-seller slice of one checkout. It exists only between
// partitioning and submission and is never persisted directly; each group
// produces exactly one order-creation call. A nil SellerID means the items
// are sold directly by the platform.
type OrderGroup struct {
	SellerID *string         `json:"sellerID,omitempty"`
	Items    []cart.LineItem `json:"items"`
	Amounts  order.Amounts   `json:"amounts"`
}

// PartitionOptions carries the platform rates the aggregation needs.
type PartitionOptions struct {
	ShipRate decimal.Decimal // flat rate of the selected delivery tier
	CODFee   decimal.Decimal // flat per-group fee, applied only for COD
	Method   payment.Method
}

// Partition splits a flat cart into seller-keyed order groups. Groups are
// emitted in the order their seller was first encountered while scanning the
// cart; items without a seller form one extra group appended last. The flat
// shipping rate is charged once per group, never prorated. An empty cart
// yields an empty slice, which callers must treat as "checkout not permitted".
// Pure function, no side effects.
func Partition(items []cart.LineItem, opts PartitionOptions) []OrderGroup {
	groups := make([]OrderGroup, 0)
	index := map[string]int{}
	unassigned := []cart.LineItem{}

	for _, it := range items {
		if it.SellerID == nil || *it.SellerID == "" {
			unassigned = append(unassigned, it)
			continue
		}
		i, ok := index[*it.SellerID]
		if !ok {
			i = len(groups)
			index[*it.SellerID] = i
			sid := *it.SellerID
			groups = append(groups, OrderGroup{SellerID: &sid, Items: []cart.LineItem{}})
		}
		groups[i].Items = append(groups[i].Items, it)
	}

	if len(unassigned) > 0 {
		groups = append(groups, OrderGroup{Items: unassigned})
	}

	for i := range groups {
		groups[i].Amounts = computeAmounts(groups[i].Items, opts)
	}
	return groups
}

func computeAmounts(items []cart.LineItem, opts PartitionOptions) order.Amounts {
	a := order.Amounts{
		Subtotal: cart.Subtotal(items),
		ShipCost: opts.ShipRate,
		CODFee:   decimal.Zero,
	}
	if opts.Method == payment.MethodCOD {
		a.CODFee = opts.CODFee
	}
	a.Total = a.Subtotal.Add(a.ShipCost).Add(a.CODFee)
	return a
}

// CombinedTotal is the single amount one payment settles: the sum of every
// group's total, computed once for the whole checkout.
func CombinedTotal(groups []OrderGroup) decimal.Decimal {
	total := decimal.Zero
	for _, g := range groups {
		total = total.Add(g.Amounts.Total)
	}
	return total
}
