package order

import (
	"errors"
	"sync"
)

var (
	ErrNotFound      = errors.New("order not found")
	ErrEmptyTracking = errors.New("tracking number cannot be empty")
	ErrBadStatus     = errors.New("unknown order status")
)

// Repository defines persistence operations for orders.
type Repository interface {
	Create(req CreateRequest) (Order, error)
	Update(orderID int, upd UpdateRequest) (Order, error)
	GetByID(orderID int) (Order, error)
	List(f Filter) ([]Order, error)
	Delete(orderID int) error
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu     sync.RWMutex
	orders []Order
	nextID int
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{nextID: 1}
}

func (r *InMemoryRepository) Create(req CreateRequest) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ord := Order{
		OrderID:       r.nextID,
		OrderNumber:   FormatOrderNumber(r.nextID),
		UserID:        req.UserID,
		SellerID:      req.SellerID,
		BuyerName:     req.BuyerName,
		BuyerPhone:    req.BuyerPhone,
		BuyerAddress:  req.BuyerAddress,
		Items:         req.Items,
		Amounts:       req.Amounts,
		PaymentMethod: req.PaymentMethod,
		Proof:         req.Proof,
		SellerMeta:    req.SellerMeta,
		Status:        StatusPending,
	}
	r.nextID++
	r.orders = append(r.orders, ord)
	return ord, nil
}

func (r *InMemoryRepository) Update(orderID int, upd UpdateRequest) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, ord := range r.orders {
		if ord.OrderID == orderID {
			if upd.Status != nil {
				ord.Status = *upd.Status
			}
			if upd.ShippingNumber != nil {
				ord.ShippingNumber = upd.ShippingNumber
			}
			r.orders[i] = ord
			return ord, nil
		}
	}
	return Order{}, ErrNotFound
}

func (r *InMemoryRepository) GetByID(orderID int) (Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, ord := range r.orders {
		if ord.OrderID == orderID {
			return ord, nil
		}
	}
	return Order{}, ErrNotFound
}

func (r *InMemoryRepository) List(f Filter) ([]Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Order, 0)
	for _, ord := range r.orders {
		if !matches(ord, f) {
			continue
		}
		out = append(out, ord)
	}
	return out, nil
}

func (r *InMemoryRepository) Delete(orderID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, ord := range r.orders {
		if ord.OrderID == orderID {
			r.orders = append(r.orders[:i], r.orders[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func matches(ord Order, f Filter) bool {
	if len(f.IDs) > 0 {
		found := false
		for _, id := range f.IDs {
			if ord.OrderID == id {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.SellerID != nil && (ord.SellerID == nil || *ord.SellerID != *f.SellerID) {
		return false
	}
	if f.UserID != nil && ord.UserID != *f.UserID {
		return false
	}
	if f.BuyerPhone != nil && ord.BuyerPhone != *f.BuyerPhone {
		return false
	}
	return true
}
