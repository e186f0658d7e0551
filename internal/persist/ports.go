// Package persist defines the environment ports the core talks through —
// local cache, address-bar fragment, clipboard — and their local
// implementations. Every port is best-effort: callers log failures and move
// on, they never block on one.
package persist

import "pricecard/internal/models"

// ConfigCache reads and writes the single cached configuration
type ConfigCache interface {
	// Load returns the cached configuration, (nil, nil) when none exists,
	// or an error when the cached data is unreadable.
	Load() (*models.AppData, error)
	// Store overwrites the cached configuration.
	Store(cfg *models.AppData) error
}

// FragmentStore abstracts the shareable URL fragment
type FragmentStore interface {
	// Read returns the current fragment token, empty when absent.
	Read() string
	// Write replaces the fragment token.
	Write(token string) error
	// Supported reports whether the environment allows history updates at
	// all; when false the sharing surface is disabled with a warning.
	Supported() bool
}

// Clipboard copies text out to the customer's clipboard
type Clipboard interface {
	Copy(text string) error
}
