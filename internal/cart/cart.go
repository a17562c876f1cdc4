// Package cart holds the in-memory shopping cart. Items are unique by id and
// kept in insertion order; the total is always derived from the items.
package cart

import (
	"errors"
	"fmt"

	"github.com/papapumpkin/greenhouse/internal/money"
)

// ErrDuplicateItem indicates an add for an id already in the cart.
var ErrDuplicateItem = errors.New("item already in cart")

// DuplicateItemError carries the rejected item.
type DuplicateItemError struct {
	ID   string
	Name string
}

// Error returns a message naming the item.
func (e *DuplicateItemError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%s is already in your cart", e.Name)
	}
	return fmt.Sprintf("%s is already in your cart", e.ID)
}

// Unwrap returns ErrDuplicateItem.
func (e *DuplicateItemError) Unwrap() error { return ErrDuplicateItem }

// Item is one cart line.
type Item struct {
	ID    string
	Name  string
	Price money.Amount
}

// Store is an ordered set of items keyed by id. The zero value is ready to use.
type Store struct {
	items []Item
}

// New returns an empty store.
func New() *Store {
	return &Store{}
}

// Add appends item unless its id is already present, in which case the store
// is unchanged and a *DuplicateItemError is returned.
func (s *Store) Add(item Item) error {
	if s.indexOf(item.ID) >= 0 {
		return &DuplicateItemError{ID: item.ID, Name: item.Name}
	}
	if item.Price < 0 {
		item.Price = money.Zero
	}
	s.items = append(s.items, item)
	return nil
}

// Remove deletes the item with id. It reports whether anything was removed;
// removing an absent id is a no-op.
func (s *Store) Remove(id string) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	return true
}

// Contains reports whether id is in the cart.
func (s *Store) Contains(id string) bool {
	return s.indexOf(id) >= 0
}

// Total sums the prices of all items, saturating at money.Max.
func (s *Store) Total() money.Amount {
	var total money.Amount
	for _, it := range s.items {
		total = total.Add(it.Price)
	}
	return total
}

// Len returns the number of items.
func (s *Store) Len() int { return len(s.items) }

// IsEmpty reports whether the cart has no items.
func (s *Store) IsEmpty() bool { return len(s.items) == 0 }

// Items returns a copy of the items in insertion order.
func (s *Store) Items() []Item {
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) indexOf(id string) int {
	for i, it := range s.items {
		if it.ID == id {
			return i
		}
	}
	return -1
}
