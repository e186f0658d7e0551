package ident

import (
	"strings"
	"testing"
)

func TestNewLength(t *testing.T) {
	id := New()
	if len(id) != idLength {
		t.Errorf("New() length = %d, want %d", len(id), idLength)
	}
}

func TestNewAlphabet(t *testing.T) {
	for i := 0; i < 50; i++ {
		id := New()
		for _, r := range id {
			if !strings.ContainsRune(alphabet, r) {
				t.Fatalf("New() = %q contains %q outside the alphabet", id, r)
			}
		}
	}
}

func TestNewCollisions(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := New()
		if seen[id] {
			t.Fatalf("New() produced duplicate id %q after %d draws", id, i)
		}
		seen[id] = true
	}
}
