package bootstrap

import (
	"sync"
	"time"
)

// ackWindow is how long the "copied" acknowledgment stays visible
const ackWindow = 2 * time.Second

// CopyFlag is the transient acknowledgment shown after a clipboard copy.
// It carries a monotonic deadline instead of an ambient timer; callers poll
// Active and the flag expires on its own. A later copy restarts the window.
type CopyFlag struct {
	mu       sync.Mutex
	deadline time.Time
	now      func() time.Time
}

// NewCopyFlag creates an inactive flag
func NewCopyFlag() *CopyFlag {
	return &CopyFlag{now: time.Now}
}

// Mark records a successful copy, (re)starting the acknowledgment window
func (f *CopyFlag) Mark() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deadline = f.now().Add(ackWindow)
}

// Active reports whether the acknowledgment should still be shown
func (f *CopyFlag) Active() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now().Before(f.deadline)
}
