package store

import (
	"sync"

	"pricecard/internal/models"
)

// SelectionStore owns one customer session's cart and active modifier set.
// Both start empty and are never persisted or shared.
type SelectionStore struct {
	mu     sync.Mutex
	cart   models.Cart
	active models.ModifierSet
}

// NewSelectionStore creates an empty selection
func NewSelectionStore() *SelectionStore {
	return &SelectionStore{
		cart:   make(models.Cart),
		active: make(models.ModifierSet),
	}
}

// SetQuantity adjusts one item's quantity. Toggle items flip between 0 and 1
// regardless of delta; counter items add delta with a floor of zero. An entry
// that lands on zero is removed, keeping "absence means zero" true.
func (s *SelectionStore) SetQuantity(itemID string, kind models.ItemKind, delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	qty := s.cart[itemID]
	if kind == models.ItemKindToggle {
		if qty != 0 {
			qty = 0
		} else {
			qty = 1
		}
	} else {
		qty += delta
		if qty < 0 {
			qty = 0
		}
	}

	if qty == 0 {
		delete(s.cart, itemID)
		return
	}
	s.cart[itemID] = qty
}

// ToggleModifier flips one modifier id in or out of the active set
func (s *SelectionStore) ToggleModifier(modID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active[modID] {
		delete(s.active, modID)
		return
	}
	s.active[modID] = true
}

// Cart returns a copy of the current quantities
func (s *SelectionStore) Cart() models.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Clone()
}

// ActiveModifiers returns a copy of the active modifier set
func (s *SelectionStore) ActiveModifiers() models.ModifierSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active.Clone()
}

// Clear resets the selection to its empty session-start state
func (s *SelectionStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = make(models.Cart)
	s.active = make(models.ModifierSet)
}
