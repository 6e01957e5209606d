package checkout

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/wichananm65/marketplace-backend/internal/order"
	"github.com/wichananm65/marketplace-backend/internal/payment"
	"github.com/wichananm65/marketplace-backend/internal/seller"
)

var (
	ErrSubmissionInFlight = errors.New("a checkout submission is already in progress")
	ErrIncompleteBuyer    = errors.New("buyer name, phone and address are required")
	ErrEmptyCheckout      = errors.New("no order groups to submit")
	ErrProofRequired      = errors.New("payment proof is required for bank transfer")
	ErrProofMismatch      = errors.New("declared amount does not match the expected total")
	ErrAllGroupsFailed    = errors.New("no orders could be created")
)

// OrderCreator is the order backend's create operation.
type OrderCreator interface {
	Create(req order.CreateRequest) (order.Order, error)
}

// PayoutLookup resolves seller payout metadata for bank-transfer orders.
type PayoutLookup interface {
	GetPayout(sellerID string) (seller.Payout, error)
}

// CartClearer empties the buyer's cart after a submission that created at
// least one order.
type CartClearer interface {
	Clear(userID int) error
}

// BuyerInfo is the contact snapshot copied onto every created order.
type BuyerInfo struct {
	UserID  int    `json:"-"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

func (b BuyerInfo) incomplete() bool {
	return strings.TrimSpace(b.Name) == "" ||
		strings.TrimSpace(b.Phone) == "" ||
		strings.TrimSpace(b.Address) == ""
}

// SubmissionResult collects the outcome of every group's creation attempt.
type SubmissionResult struct {
	Created     []order.Order `json:"created"`
	Failed      int           `json:"failed"`
	CartCleared bool          `json:"cartCleared"`
	Errors      []error       `json:"-"`
}

// Orchestrator drives one checkout submission: sequential order creation per
// group, payment proof on the first group only, cart cleared iff at least one
// group succeeded. At most one submission may be in flight at a time.
type Orchestrator struct {
	orders  OrderCreator
	sellers PayoutLookup
	carts   CartClearer

	mu       sync.Mutex
	inFlight bool
}

func NewOrchestrator(orders OrderCreator, sellers PayoutLookup, carts CartClearer) *Orchestrator {
	return &Orchestrator{orders: orders, sellers: sellers, carts: carts}
}

// Submit validates locally, then issues one order-creation call per group in
// the fixed order Partition produced. A failure on one group never prevents
// attempting the rest; strict atomicity is deliberately traded for maximal
// partial progress, and already-created orders are never rolled back.
func (o *Orchestrator) Submit(groups []OrderGroup, intent *payment.Intent, buyer BuyerInfo) (SubmissionResult, error) {
	o.mu.Lock()
	if o.inFlight {
		o.mu.Unlock()
		return SubmissionResult{}, ErrSubmissionInFlight
	}
	o.inFlight = true
	o.mu.Unlock()
	defer func() {
		o.mu.Lock()
		o.inFlight = false
		o.mu.Unlock()
	}()

	// local validation; nothing below runs a backend call before this passes
	if buyer.incomplete() {
		return SubmissionResult{}, ErrIncompleteBuyer
	}
	if len(groups) == 0 {
		return SubmissionResult{}, ErrEmptyCheckout
	}
	if intent.Method == payment.MethodTransfer {
		if intent.Fingerprint == "" {
			return SubmissionResult{}, ErrProofRequired
		}
		if intent.Outcome != payment.OutcomeMatched {
			return SubmissionResult{}, ErrProofMismatch
		}
	}

	// resolve payout metadata per seller; a failed lookup is tolerated and
	// the order is created without that metadata attached
	meta := map[string]*order.SellerMeta{}
	if intent.Method == payment.MethodTransfer {
		for _, g := range groups {
			if g.SellerID == nil {
				continue
			}
			if _, done := meta[*g.SellerID]; done {
				continue
			}
			p, err := o.sellers.GetPayout(*g.SellerID)
			if err != nil {
				fmt.Printf("warning: payout lookup failed for seller %s: %v\n", *g.SellerID, err)
				meta[*g.SellerID] = nil
				continue
			}
			meta[*g.SellerID] = &order.SellerMeta{
				ShopName:    p.ShopName,
				PayoutID:    p.PayoutID,
				BankName:    p.BankName,
				AccountName: p.AccountName,
			}
		}
	}

	var res SubmissionResult
	for i, g := range groups {
		req := order.CreateRequest{
			UserID:        buyer.UserID,
			SellerID:      g.SellerID,
			BuyerName:     buyer.Name,
			BuyerPhone:    buyer.Phone,
			BuyerAddress:  buyer.Address,
			Items:         g.Items,
			Amounts:       g.Amounts,
			PaymentMethod: string(intent.Method),
		}
		// the proof artifact rides on the first group only, so sibling
		// orders don't carry duplicate copies
		if i == 0 && intent.Method == payment.MethodTransfer {
			req.Proof = &order.PaymentProof{
				Reference:      intent.Reference,
				DeclaredAmount: intent.DeclaredAmount,
				Fingerprint:    intent.Fingerprint,
			}
		}
		if g.SellerID != nil {
			req.SellerMeta = meta[*g.SellerID]
		}

		ord, err := o.orders.Create(req)
		if err != nil {
			res.Failed++
			res.Errors = append(res.Errors, fmt.Errorf("group %d: %w", i+1, err))
			continue
		}
		res.Created = append(res.Created, ord)
	}

	if len(res.Created) == 0 {
		// every group failed: the cart is preserved so the buyer can retry
		return res, ErrAllGroupsFailed
	}

	// at least one order exists; the cart is cleared in full, exactly once
	if err := o.carts.Clear(buyer.UserID); err != nil {
		fmt.Printf("warning: could not clear cart for user %d: %v\n", buyer.UserID, err)
	} else {
		res.CartCleared = true
	}
	return res, nil
}
