package cart

import (
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"
)

// Store is one session's cart. All methods are safe for concurrent use; the
// mutex makes every mutation a single writer.
type Store struct {
	mu     sync.Mutex
	items  []CartItem
	locked bool
	newID  func() string
}

func NewStore() *Store {
	return &Store{newID: uuid.NewString}
}

// Add merges item into the line with the same event and ticket type, or
// appends it under a fresh id. There is no upper bound on quantity here.
func (s *Store) Add(item CartItem) (CartItem, error) {
	if item.Quantity < 1 {
		return CartItem{}, ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.locked {
		return CartItem{}, ErrCheckoutPending
	}

	key := item.key()
	for i := range s.items {
		if s.items[i].key() == key {
			s.items[i].Quantity += item.Quantity
			return s.items[i], nil
		}
	}

	item.ID = s.newID()
	s.items = append(s.items, item)
	return item, nil
}

// UpdateQuantity sets a line's quantity; quantity <= 0 removes the line.
func (s *Store) UpdateQuantity(id string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.locked {
		return ErrCheckoutPending
	}

	idx := s.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}
	if quantity <= 0 {
		s.items = slices.Delete(s.items, idx, idx+1)
		return nil
	}
	s.items[idx].Quantity = quantity
	return nil
}

func (s *Store) Remove(id string) error {
	return s.UpdateQuantity(id, 0)
}

func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.locked {
		return ErrCheckoutPending
	}
	s.items = nil
	return nil
}

func (s *Store) Items() []CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.items)
}

// Total is the sum of price*quantity over all lines.
func (s *Store) Total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return total(s.items)
}

// ItemsCount is the sum of quantities, not the number of lines.
func (s *Store) ItemsCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return count(s.items)
}

func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Locked reports whether a checkout is pending.
func (s *Store) Locked() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.locked
}

// BeginCheckout freezes the cart and returns what is being paid for. Until
// CompleteCheckout runs every mutation fails with ErrCheckoutPending.
func (s *Store) BeginCheckout() (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.locked {
		return Snapshot{}, ErrCheckoutPending
	}
	if len(s.items) == 0 {
		return Snapshot{}, ErrEmptyCart
	}
	s.locked = true
	return s.snapshotLocked(), nil
}

// CompleteCheckout unlocks the cart, emptying it when the payment succeeded.
func (s *Store) CompleteCheckout(success bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if success {
		s.items = nil
	}
	s.locked = false
}

func (s *Store) snapshotLocked() Snapshot {
	items := slices.Clone(s.items)
	if items == nil {
		items = []CartItem{}
	}
	return Snapshot{
		Items:      items,
		Total:      total(s.items),
		ItemsCount: count(s.items),
	}
}

func (s *Store) indexOf(id string) int {
	return slices.IndexFunc(s.items, func(it CartItem) bool { return it.ID == id })
}

func total(items []CartItem) int {
	sum := 0
	for _, it := range items {
		sum += it.LineTotal()
	}
	return sum
}

func count(items []CartItem) int {
	sum := 0
	for _, it := range items {
		sum += it.Quantity
	}
	return sum
}
