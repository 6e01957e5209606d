package cart

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound    = errors.New("user not found")
	ErrInvalidItem = errors.New("invalid cart item")
)

// LineItem is one cart entry. UnitPrice is already option/discount adjusted;
// DiscountPercent is kept for display only. SellerID is nil for items sold
// directly by the platform.
type LineItem struct {
	ProductID       int               `json:"productID"`
	Name            string            `json:"productName"`
	UnitPrice       decimal.Decimal   `json:"unitPrice"`
	Quantity        int               `json:"quantity"`
	SellerID        *string           `json:"sellerID,omitempty"`
	Options         map[string]string `json:"options,omitempty"`
	DiscountPercent float64           `json:"discountPercent,omitempty"`
}

// LineTotal returns unit price times quantity.
func (it LineItem) LineTotal() decimal.Decimal {
	return it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity)))
}

// Validate rejects items a checkout could never accept.
func (it LineItem) Validate() error {
	if it.ProductID <= 0 {
		return ErrInvalidItem
	}
	if it.Quantity < 1 {
		return ErrInvalidItem
	}
	if it.UnitPrice.IsNegative() {
		return ErrInvalidItem
	}
	return nil
}

// Subtotal sums the line totals of all items.
func Subtotal(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.LineTotal())
	}
	return total
}
