// Package taskbar tracks restoration affordances for minimized windows.
//
// The window manager adds an entry when a window is minimized and
// removes it on restore or close; clicking an entry goes back through
// the window manager's Restore. This package never mutates window
// state itself.
package taskbar

import (
	"sort"
	"sync"

	"github.com/glasspane/webtop/internal/shared/types"
)

// Bar is the taskbar affordance store.
type Bar struct {
	mu      sync.RWMutex
	entries map[string]types.Affordance // protected by mu
}

// New creates an empty taskbar.
func New() *Bar {
	return &Bar{entries: make(map[string]types.Affordance)}
}

// Add creates or refreshes the affordance for a window.
func (b *Bar) Add(a types.Affordance) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries[a.WindowID] = a
}

// Remove deletes the affordance for a window, if any.
func (b *Bar) Remove(windowID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.entries, windowID)
}

// Has reports whether an affordance exists for the window.
func (b *Bar) Has(windowID string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.entries[windowID]
	return ok
}

// List returns all affordances ordered by minimize time, oldest first.
func (b *Bar) List() []types.Affordance {
	b.mu.RLock()
	out := make([]types.Affordance, 0, len(b.entries))
	for _, a := range b.entries {
		out = append(out, a)
	}
	b.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].MinimizedAt.Equal(out[j].MinimizedAt) {
			return out[i].WindowID < out[j].WindowID
		}
		return out[i].MinimizedAt.Before(out[j].MinimizedAt)
	})
	return out
}
