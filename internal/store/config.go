// Package store holds the two in-memory state containers: the operator-owned
// menu configuration and the customer-owned selection. The configuration
// follows an immutable-update discipline: every mutation builds a fresh
// snapshot, so pricing and receipt rendering always read a stable value.
package store

import (
	"strconv"
	"sync"

	"pricecard/internal/ident"
	"pricecard/internal/models"
)

// ConfigStore owns the authoritative AppData value. Mutations on absent ids
// are silent no-ops; no operation fails for valid-shaped input.
type ConfigStore struct {
	mu      sync.RWMutex
	current *models.AppData
	newID   func() string
}

// NewConfigStore creates a store seeded with the given configuration
func NewConfigStore(initial *models.AppData) *ConfigStore {
	if initial == nil {
		initial = models.DefaultAppData()
	}
	return &ConfigStore{current: initial.Clone(), newID: ident.New}
}

// Snapshot returns the current configuration. Callers must treat it as
// read-only; the store never mutates a snapshot it has handed out.
func (s *ConfigStore) Snapshot() *models.AppData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Replace swaps in an externally built configuration (bootstrap hydration)
func (s *ConfigStore) Replace(cfg *models.AppData) *models.AppData {
	if cfg == nil {
		cfg = models.DefaultAppData()
	}
	return s.swap(cfg.Clone())
}

// AddCategory appends an empty category with a generated id
func (s *ConfigStore) AddCategory() *models.AppData {
	return s.update(func(cfg *models.AppData) {
		cfg.Categories = append(cfg.Categories, models.Category{
			ID:    s.newID(),
			Title: "New category",
			Items: []models.MenuItem{},
		})
	})
}

// RemoveCategory drops a category and all its items. The operator
// confirmation guard lives in the serving layer, not here.
func (s *ConfigStore) RemoveCategory(catID string) *models.AppData {
	return s.update(func(cfg *models.AppData) {
		for i := range cfg.Categories {
			if cfg.Categories[i].ID == catID {
				cfg.Categories = append(cfg.Categories[:i], cfg.Categories[i+1:]...)
				return
			}
		}
	})
}

// RenameCategory replaces a category title; empty titles are permitted
func (s *ConfigStore) RenameCategory(catID, title string) *models.AppData {
	return s.update(func(cfg *models.AppData) {
		if cat, ok := cfg.FindCategory(catID); ok {
			cat.Title = title
		}
	})
}

// AddItem appends a placeholder toggle item to the named category
func (s *ConfigStore) AddItem(catID string) *models.AppData {
	return s.update(func(cfg *models.AppData) {
		if cat, ok := cfg.FindCategory(catID); ok {
			cat.Items = append(cat.Items, models.MenuItem{
				ID:    s.newID(),
				Name:  "New item",
				Price: 0,
				Kind:  models.ItemKindToggle,
			})
		}
	})
}

// RemoveItem drops one item from one category
func (s *ConfigStore) RemoveItem(catID, itemID string) *models.AppData {
	return s.update(func(cfg *models.AppData) {
		cat, ok := cfg.FindCategory(catID)
		if !ok {
			return
		}
		for i := range cat.Items {
			if cat.Items[i].ID == itemID {
				cat.Items = append(cat.Items[:i], cat.Items[i+1:]...)
				return
			}
		}
	})
}

// SetItemName replaces an item's display name
func (s *ConfigStore) SetItemName(catID, itemID, name string) *models.AppData {
	return s.updateItem(catID, itemID, func(item *models.MenuItem) {
		item.Name = name
	})
}

// SetItemPrice replaces an item's price, floored at zero
func (s *ConfigStore) SetItemPrice(catID, itemID string, price int) *models.AppData {
	if price < 0 {
		price = 0
	}
	return s.updateItem(catID, itemID, func(item *models.MenuItem) {
		item.Price = price
	})
}

// SetItemKind replaces an item's counting kind
func (s *ConfigStore) SetItemKind(catID, itemID string, kind models.ItemKind) *models.AppData {
	return s.updateItem(catID, itemID, func(item *models.MenuItem) {
		item.Kind = kind
	})
}

// AddModifier appends a placeholder modifier with a generated id
func (s *ConfigStore) AddModifier() *models.AppData {
	return s.update(func(cfg *models.AppData) {
		cfg.Modifiers = append(cfg.Modifiers, models.Modifier{
			ID:      s.newID(),
			Name:    "New modifier",
			Percent: 0,
		})
	})
}

// SetModifierName replaces a modifier's display name
func (s *ConfigStore) SetModifierName(modID, name string) *models.AppData {
	return s.update(func(cfg *models.AppData) {
		if mod, ok := cfg.FindModifier(modID); ok {
			mod.Name = name
		}
	})
}

// SetModifierPercent replaces a modifier's signed percentage
func (s *ConfigStore) SetModifierPercent(modID string, percent int) *models.AppData {
	return s.update(func(cfg *models.AppData) {
		if mod, ok := cfg.FindModifier(modID); ok {
			mod.Percent = percent
		}
	})
}

// RemoveModifier drops a modifier from the sequence
func (s *ConfigStore) RemoveModifier(modID string) *models.AppData {
	return s.update(func(cfg *models.AppData) {
		for i := range cfg.Modifiers {
			if cfg.Modifiers[i].ID == modID {
				cfg.Modifiers = append(cfg.Modifiers[:i], cfg.Modifiers[i+1:]...)
				return
			}
		}
	})
}

// ParsePrice coerces free-form price text to a non-negative integer. Decimal
// input is truncated; unparseable input coerces to 0. There is no rejection
// path here: the surrounding input layer is expected to constrain entry, and
// the store stays total over whatever arrives.
func ParsePrice(value string) int {
	if n, err := strconv.Atoi(value); err == nil {
		if n < 0 {
			return 0
		}
		return n
	}
	if f, err := strconv.ParseFloat(value, 64); err == nil {
		if f < 0 {
			return 0
		}
		return int(f)
	}
	return 0
}

// ParsePercent coerces free-form percent text to a signed integer, 0 when
// the input does not parse at all.
func ParsePercent(value string) int {
	if n, err := strconv.Atoi(value); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return int(f)
	}
	return 0
}

func (s *ConfigStore) update(edit func(*models.AppData)) *models.AppData {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.current.Clone()
	edit(next)
	s.current = next
	return next
}

func (s *ConfigStore) updateItem(catID, itemID string, edit func(*models.MenuItem)) *models.AppData {
	return s.update(func(cfg *models.AppData) {
		if cat, ok := cfg.FindCategory(catID); ok {
			if item, ok := cat.FindItem(itemID); ok {
				edit(item)
			}
		}
	})
}

func (s *ConfigStore) swap(next *models.AppData) *models.AppData {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = next
	return next
}
