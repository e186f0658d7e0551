package store

import (
	"testing"

	"pricecard/internal/models"
)

func TestToggleItemFlips(t *testing.T) {
	s := NewSelectionStore()

	s.SetQuantity("i1", models.ItemKindToggle, 1)
	if got := s.Cart().Quantity("i1"); got != 1 {
		t.Fatalf("first toggle quantity = %d, want 1", got)
	}

	// Delta magnitude is irrelevant for toggles.
	s.SetQuantity("i1", models.ItemKindToggle, 5)
	if got := s.Cart().Quantity("i1"); got != 0 {
		t.Errorf("second toggle quantity = %d, want 0", got)
	}
	if _, exists := s.Cart()["i1"]; exists {
		t.Error("zero-quantity entry was kept in the cart")
	}
}

func TestToggleIdempotence(t *testing.T) {
	s := NewSelectionStore()

	s.SetQuantity("i1", models.ItemKindToggle, 1)
	s.SetQuantity("i1", models.ItemKindToggle, 1)

	if len(s.Cart()) != 0 {
		t.Errorf("double toggle left cart %+v, want empty", s.Cart())
	}
}

func TestCounterAccumulates(t *testing.T) {
	s := NewSelectionStore()

	s.SetQuantity("i2", models.ItemKindCounter, 1)
	s.SetQuantity("i2", models.ItemKindCounter, 1)
	s.SetQuantity("i2", models.ItemKindCounter, 3)

	if got := s.Cart().Quantity("i2"); got != 5 {
		t.Errorf("counter quantity = %d, want 5", got)
	}
}

func TestCounterFloor(t *testing.T) {
	s := NewSelectionStore()

	s.SetQuantity("i2", models.ItemKindCounter, 2)
	for i := 0; i < 5; i++ {
		s.SetQuantity("i2", models.ItemKindCounter, -1)
	}

	cart := s.Cart()
	if got := cart.Quantity("i2"); got != 0 {
		t.Errorf("counter quantity after repeated decrement = %d, want 0", got)
	}
	if _, exists := cart["i2"]; exists {
		t.Error("entry at quantity 0 was not removed")
	}
}

func TestToggleModifier(t *testing.T) {
	s := NewSelectionStore()

	s.ToggleModifier("m1")
	if !s.ActiveModifiers().Has("m1") {
		t.Fatal("first toggle did not activate the modifier")
	}

	s.ToggleModifier("m1")
	if s.ActiveModifiers().Has("m1") {
		t.Error("second toggle did not deactivate the modifier")
	}
	if len(s.ActiveModifiers()) != 0 {
		t.Errorf("active set = %+v, want empty", s.ActiveModifiers())
	}
}

func TestClear(t *testing.T) {
	s := NewSelectionStore()
	s.SetQuantity("i1", models.ItemKindToggle, 1)
	s.ToggleModifier("m1")

	s.Clear()

	if len(s.Cart()) != 0 || len(s.ActiveModifiers()) != 0 {
		t.Error("Clear() did not empty the selection")
	}
}

func TestCartCopyIsIndependent(t *testing.T) {
	s := NewSelectionStore()
	s.SetQuantity("i2", models.ItemKindCounter, 2)

	cart := s.Cart()
	cart["i2"] = 99

	if got := s.Cart().Quantity("i2"); got != 2 {
		t.Errorf("external edit leaked into store: quantity = %d, want 2", got)
	}
}
