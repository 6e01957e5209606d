package cart

import "sync"

// Repository provides access to the persisted cart of a user.
// The cart is owned exclusively by the browsing session: checkout reads it
// once at submission start and clears it exactly once at the end.
type Repository interface {
	Get(userID int) ([]LineItem, error)
	Replace(userID int, items []LineItem) ([]LineItem, error)
	Clear(userID int) error
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu    sync.RWMutex
	carts map[int][]LineItem
}

func NewInMemoryRepository(seed map[int][]LineItem) *InMemoryRepository {
	r := &InMemoryRepository{carts: make(map[int][]LineItem, len(seed))}
	for id, items := range seed {
		r.carts[id] = append([]LineItem(nil), items...)
	}
	return r
}

func (r *InMemoryRepository) Get(userID int) ([]LineItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	items, ok := r.carts[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]LineItem(nil), items...), nil
}

func (r *InMemoryRepository) Replace(userID int, items []LineItem) ([]LineItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.carts[userID]; !ok {
		return nil, ErrNotFound
	}
	r.carts[userID] = append([]LineItem(nil), items...)
	return append([]LineItem(nil), items...), nil
}

func (r *InMemoryRepository) Clear(userID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.carts[userID]; !ok {
		return ErrNotFound
	}
	r.carts[userID] = []LineItem{}
	return nil
}
