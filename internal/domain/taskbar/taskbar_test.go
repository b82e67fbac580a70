package taskbar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glasspane/webtop/internal/shared/types"
)

func TestAddRemove(t *testing.T) {
	b := New()
	b.Add(types.Affordance{WindowID: "win_a", Title: "A", MinimizedAt: time.Now()})

	assert.True(t, b.Has("win_a"))
	b.Remove("win_a")
	assert.False(t, b.Has("win_a"))
}

func TestAddRefreshesExisting(t *testing.T) {
	b := New()
	b.Add(types.Affordance{WindowID: "win_a", Title: "A"})
	b.Add(types.Affordance{WindowID: "win_a", Title: "A renamed"})

	entries := b.List()
	require.Len(t, entries, 1)
	assert.Equal(t, "A renamed", entries[0].Title)
}

func TestListOrderedByMinimizeTime(t *testing.T) {
	b := New()
	base := time.Now()
	b.Add(types.Affordance{WindowID: "win_b", Title: "B", MinimizedAt: base.Add(time.Second)})
	b.Add(types.Affordance{WindowID: "win_a", Title: "A", MinimizedAt: base})
	b.Add(types.Affordance{WindowID: "win_c", Title: "C", MinimizedAt: base.Add(2 * time.Second)})

	entries := b.List()
	require.Len(t, entries, 3)
	assert.Equal(t, "win_a", entries[0].WindowID)
	assert.Equal(t, "win_b", entries[1].WindowID)
	assert.Equal(t, "win_c", entries[2].WindowID)
}

func TestRemoveMissingIsHarmless(t *testing.T) {
	b := New()
	b.Remove("win_nope")
	assert.Empty(t, b.List())
}
