package order

import (
	"errors"
	"fmt"
	"strings"
)

// Service provides business logic for orders, including the admin-side
// lifecycle operations (status updates and shipping-number attachment).
type Service struct {
	repo Repository
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

func (s *Service) Create(req CreateRequest) (Order, error) {
	if req.UserID <= 0 {
		return Order{}, errors.New("invalid user")
	}
	if len(req.Items) == 0 {
		return Order{}, errors.New("order has no items")
	}
	if req.Amounts.Subtotal.IsNegative() || req.Amounts.ShipCost.IsNegative() ||
		req.Amounts.CODFee.IsNegative() || req.Amounts.Total.IsNegative() {
		return Order{}, errors.New("amounts must be non-negative")
	}
	return s.repo.Create(req)
}

// SetStatus moves an order to a new status. Any known status is accepted;
// ValidTransition is advisory and surfaced by the handler, not enforced here.
// A failed update leaves the order unchanged server-side.
func (s *Service) SetStatus(orderID int, st Status) (Order, error) {
	if !st.Valid() {
		return Order{}, ErrBadStatus
	}
	return s.repo.Update(orderID, UpdateRequest{Status: &st})
}

// AttachShipping sets or overwrites the courier tracking number. It does not
// change the order status; moving to shipped is a separate explicit update.
func (s *Service) AttachShipping(orderID int, tracking string) (Order, error) {
	tracking = strings.TrimSpace(tracking)
	if tracking == "" {
		return Order{}, ErrEmptyTracking
	}
	return s.repo.Update(orderID, UpdateRequest{ShippingNumber: &tracking})
}

// Update applies whichever of status / shipping number are present.
func (s *Service) Update(orderID int, upd UpdateRequest) (Order, error) {
	if upd.Status != nil && !upd.Status.Valid() {
		return Order{}, fmt.Errorf("%w: %q", ErrBadStatus, *upd.Status)
	}
	if upd.ShippingNumber != nil {
		trimmed := strings.TrimSpace(*upd.ShippingNumber)
		if trimmed == "" {
			return Order{}, ErrEmptyTracking
		}
		upd.ShippingNumber = &trimmed
	}
	return s.repo.Update(orderID, upd)
}

func (s *Service) GetByID(orderID int) (Order, error) {
	return s.repo.GetByID(orderID)
}

func (s *Service) List(f Filter) ([]Order, error) {
	return s.repo.List(f)
}

// Delete removes an order permanently. Irreversible.
func (s *Service) Delete(orderID int) error {
	return s.repo.Delete(orderID)
}
