package cart

import "sync"

// Service orchestrates cart operations and notifies watchers on change.
type Service struct {
	repo Repository

	mu       sync.RWMutex
	watchers []func(userID int, items []LineItem)
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Watch registers fn to be called after every successful Replace or Clear.
// Watchers run synchronously on the mutating goroutine.
func (s *Service) Watch(fn func(userID int, items []LineItem)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.watchers = append(s.watchers, fn)
}

func (s *Service) Get(userID int) ([]LineItem, error) {
	if userID <= 0 {
		return nil, ErrNotFound
	}
	return s.repo.Get(userID)
}

// Replace swaps the whole cart contents. Items are validated up front so a
// bad line never reaches storage.
func (s *Service) Replace(userID int, items []LineItem) ([]LineItem, error) {
	if userID <= 0 {
		return nil, ErrNotFound
	}
	for _, it := range items {
		if err := it.Validate(); err != nil {
			return nil, err
		}
	}

	stored, err := s.repo.Replace(userID, items)
	if err != nil {
		return nil, err
	}
	s.notify(userID, stored)
	return stored, nil
}

// Clear empties a user's cart.
func (s *Service) Clear(userID int) error {
	if userID <= 0 {
		return ErrNotFound
	}
	if err := s.repo.Clear(userID); err != nil {
		return err
	}
	s.notify(userID, []LineItem{})
	return nil
}

func (s *Service) notify(userID int, items []LineItem) {
	s.mu.RLock()
	watchers := append(([]func(int, []LineItem))(nil), s.watchers...)
	s.mu.RUnlock()
	for _, fn := range watchers {
		fn(userID, items)
	}
}
