package order

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/wichananm65/marketplace-backend/internal/cart"
)

func TestValidTransition(t *testing.T) {
	cases := []struct {
		from, to Status
		want     bool
	}{
		{StatusPending, StatusProcessing, true},
		{StatusProcessing, StatusPaid, true},
		{StatusPaid, StatusShipped, true},
		{StatusShipped, StatusCompleted, true},
		{StatusPending, StatusPaid, false},
		{StatusPaid, StatusPending, false},
		{StatusPending, StatusCancelled, true},
		{StatusShipped, StatusCancelled, true},
		{StatusCompleted, StatusCancelled, false},
		{StatusCancelled, StatusPending, false},
		{Status("unknown"), StatusPaid, false},
	}
	for _, tc := range cases {
		if got := ValidTransition(tc.from, tc.to); got != tc.want {
			t.Errorf("ValidTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestSetStatus_RejectsUnknownStatus(t *testing.T) {
	repo := NewInMemoryRepository()
	svc := NewService(repo)

	if _, err := svc.SetStatus(1, Status("mystery")); err != ErrBadStatus {
		t.Fatalf("expected ErrBadStatus, got %v", err)
	}
}

func TestAttachShipping_RejectsBlankTracking(t *testing.T) {
	repo := NewInMemoryRepository()
	svc := NewService(repo)

	for _, tracking := range []string{"", "   ", "\t"} {
		if _, err := svc.AttachShipping(1, tracking); err != ErrEmptyTracking {
			t.Errorf("tracking %q: expected ErrEmptyTracking, got %v", tracking, err)
		}
	}
}

func TestAttachShipping_DoesNotChangeStatus(t *testing.T) {
	repo := NewInMemoryRepository()
	svc := NewService(repo)

	created, err := svc.Create(sampleCreateRequest())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	updated, err := svc.AttachShipping(created.OrderID, " TH123456789 ")
	if err != nil {
		t.Fatalf("attach failed: %v", err)
	}
	if updated.ShippingNumber == nil || *updated.ShippingNumber != "TH123456789" {
		t.Errorf("tracking number not trimmed and stored: %v", updated.ShippingNumber)
	}
	if updated.Status != StatusPending {
		t.Errorf("attaching shipping must not change status, got %s", updated.Status)
	}
}

// failingRepo simulates a transport failure on every update.
type failingRepo struct {
	*InMemoryRepository
}

func (r *failingRepo) Update(orderID int, upd UpdateRequest) (Order, error) {
	return Order{}, errors.New("connection reset")
}

func TestSetStatus_TransportFailureLeavesOrderUnchanged(t *testing.T) {
	inner := NewInMemoryRepository()
	svc := NewService(inner)
	created, err := svc.Create(sampleCreateRequest())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	failing := NewService(&failingRepo{inner})
	if _, err := failing.SetStatus(created.OrderID, StatusPaid); err == nil {
		t.Fatal("expected transport error")
	}

	// the stored order must still hold its previous status
	got, err := svc.GetByID(created.OrderID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Status != StatusPending {
		t.Errorf("status mutated despite failed update: %s", got.Status)
	}
}

func TestCreate_Validation(t *testing.T) {
	svc := NewService(NewInMemoryRepository())

	req := sampleCreateRequest()
	req.Items = nil
	if _, err := svc.Create(req); err == nil {
		t.Error("expected error for order without items")
	}

	req = sampleCreateRequest()
	req.Amounts.Total = decimal.NewFromInt(-1)
	if _, err := svc.Create(req); err == nil {
		t.Error("expected error for negative total")
	}
}

func sampleCreateRequest() CreateRequest {
	sid := "A"
	return CreateRequest{
		UserID:       7,
		SellerID:     &sid,
		BuyerName:    "Somchai",
		BuyerPhone:   "0891234567",
		BuyerAddress: "99 Rama IV Rd",
		Items: []cart.LineItem{
			{ProductID: 1, Name: "Cat food", UnitPrice: decimal.NewFromInt(100), Quantity: 2},
		},
		Amounts: Amounts{
			Subtotal: decimal.NewFromInt(200),
			ShipCost: decimal.NewFromInt(45),
			CODFee:   decimal.Zero,
			Total:    decimal.NewFromInt(245),
		},
		PaymentMethod: "transfer",
	}
}
