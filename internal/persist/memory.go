package persist

import (
	"sync"

	"pricecard/internal/models"
)

// MemoryCache is an in-process ConfigCache, used in tests and as the
// fallback when no cache database is configured
type MemoryCache struct {
	mu  sync.Mutex
	cfg *models.AppData
}

// NewMemoryCache creates an empty in-process cache
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{}
}

// Load returns the cached configuration, (nil, nil) when empty
func (m *MemoryCache) Load() (*models.AppData, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cfg == nil {
		return nil, nil
	}
	return m.cfg.Clone(), nil
}

// Store overwrites the cached configuration
func (m *MemoryCache) Store(cfg *models.AppData) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cfg = cfg.Clone()
	return nil
}

// MemoryFragment holds the share token the way a browser address bar would.
// The serving layer reads it back out when building share links.
type MemoryFragment struct {
	mu        sync.Mutex
	token     string
	supported bool
}

// NewMemoryFragment creates a fragment store; supported=false models an
// environment where history updates are unavailable
func NewMemoryFragment(supported bool) *MemoryFragment {
	return &MemoryFragment{supported: supported}
}

// Read returns the current token
func (f *MemoryFragment) Read() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token
}

// Write replaces the current token
func (f *MemoryFragment) Write(token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = token
	return nil
}

// Supported reports whether fragment updates are available
func (f *MemoryFragment) Supported() bool {
	return f.supported
}

// Seed sets the token present before bootstrap, as if the process were
// started from a shared link
func (f *MemoryFragment) Seed(token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = token
}

// RecordingClipboard keeps the last copied text; stands in for a real
// clipboard integration
type RecordingClipboard struct {
	mu   sync.Mutex
	last string
}

// NewRecordingClipboard creates an empty clipboard
func NewRecordingClipboard() *RecordingClipboard {
	return &RecordingClipboard{}
}

// Copy records the text
func (cb *RecordingClipboard) Copy(text string) error {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.last = text
	return nil
}

// Last returns the most recently copied text
func (cb *RecordingClipboard) Last() string {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.last
}
