package models

// Cart represents a customer's per-item quantities. An entry never holds a
// zero quantity; absence means zero. Ids unknown to the current AppData are
// inert and simply ignored by pricing.
type Cart map[string]int

// Quantity returns the selected quantity for an item, zero when absent
func (c Cart) Quantity(itemID string) int {
	return c[itemID]
}

// Clone returns an independent copy of the cart
func (c Cart) Clone() Cart {
	out := make(Cart, len(c))
	for id, qty := range c {
		out[id] = qty
	}
	return out
}

// ModifierSet represents the set of modifier ids a customer toggled on
type ModifierSet map[string]bool

// Has reports whether the modifier id is active
func (s ModifierSet) Has(modID string) bool {
	return s[modID]
}

// Clone returns an independent copy of the set
func (s ModifierSet) Clone() ModifierSet {
	out := make(ModifierSet, len(s))
	for id := range s {
		if s[id] {
			out[id] = true
		}
	}
	return out
}
