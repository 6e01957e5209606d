package order

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/wichananm65/marketplace-backend/internal/cart"
)

// Status is the fulfillment state of one order.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusPaid       Status = "paid"
	StatusShipped    Status = "shipped"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusPaid, StatusShipped, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transition should leave this state.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// forward is the regular pending -> processing -> paid -> shipped -> completed
// chain; cancelled is reachable from any non-terminal state.
var forward = map[Status]Status{
	StatusPending:    StatusProcessing,
	StatusProcessing: StatusPaid,
	StatusPaid:       StatusShipped,
	StatusShipped:    StatusCompleted,
}

// ValidTransition reports whether moving from one status to the next follows
// the regular lifecycle. The update path currently accepts any known status
// regardless; irregular moves are only surfaced as warnings.
func ValidTransition(from, to Status) bool {
	if !from.Valid() || !to.Valid() {
		return false
	}
	if from.Terminal() {
		return false
	}
	if to == StatusCancelled {
		return true
	}
	return forward[from] == to
}

// Amounts is the per-order money breakdown. ShipCost is a flat per-order fee,
// CODFee is present only for cash-on-delivery orders.
type Amounts struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	ShipCost decimal.Decimal `json:"shipCost"`
	CODFee   decimal.Decimal `json:"codFee"`
	Total    decimal.Decimal `json:"total"`
}

// PaymentProof is the slip artifact a bank-transfer checkout attaches to the
// first order it creates.
type PaymentProof struct {
	Reference      string          `json:"reference"`
	DeclaredAmount decimal.Decimal `json:"declaredAmount"`
	Fingerprint    string          `json:"fingerprint"`
}

// SellerMeta is payout routing info resolved at submission time.
type SellerMeta struct {
	ShopName    string `json:"shopName,omitempty"`
	PayoutID    string `json:"payoutID,omitempty"`
	BankName    string `json:"bankName,omitempty"`
	AccountName string `json:"accountName,omitempty"`
}

// Order is one persisted per-seller order. Items are a denormalized copy of
// the cart lines; after creation only status and shipping number change.
type Order struct {
	OrderID        int             `json:"orderID"`
	OrderNumber    string          `json:"orderNumber"`
	UserID         int             `json:"userID"`
	SellerID       *string         `json:"sellerID,omitempty"`
	BuyerName      string          `json:"buyerName"`
	BuyerPhone     string          `json:"buyerPhone"`
	BuyerAddress   string          `json:"buyerAddress"`
	Items          []cart.LineItem `json:"items"`
	Amounts        Amounts         `json:"amounts"`
	PaymentMethod  string          `json:"paymentMethod"`
	Proof          *PaymentProof   `json:"proof,omitempty"`
	SellerMeta     *SellerMeta     `json:"sellerMeta,omitempty"`
	Status         Status          `json:"status"`
	ShippingNumber *string         `json:"shippingNumber,omitempty"`
	CreatedAt      string          `json:"createdAt"`
	UpdatedAt      string          `json:"updatedAt"`
}

// CreateRequest is the payload one order-creation call carries.
type CreateRequest struct {
	UserID        int
	SellerID      *string
	BuyerName     string
	BuyerPhone    string
	BuyerAddress  string
	Items         []cart.LineItem
	Amounts       Amounts
	PaymentMethod string
	Proof         *PaymentProof
	SellerMeta    *SellerMeta
}

// UpdateRequest applies whichever fields are present.
type UpdateRequest struct {
	Status         *Status `json:"status,omitempty"`
	ShippingNumber *string `json:"shippingNumber,omitempty"`
}

// Filter narrows List results. Nil fields are ignored.
type Filter struct {
	IDs        []int
	SellerID   *string
	UserID     *int
	BuyerPhone *string
}

// FormatOrderNumber derives the normalized order number echoed to clients.
func FormatOrderNumber(orderID int) string {
	return fmt.Sprintf("MP-%06d", orderID)
}
