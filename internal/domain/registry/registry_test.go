package registry

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glasspane/webtop/internal/domain/wm"
	"github.com/glasspane/webtop/internal/shared/types"
)

func newTestPair() (*wm.Manager, *Registry) {
	manager := wm.NewManager(types.Viewport{Width: 1024, Height: 768}, wm.DefaultConfig())
	return manager, New(manager, nil)
}

func launchOn(m *wm.Manager, title string) types.LaunchFunc {
	return func() (*types.Window, error) {
		return m.Create(title, nil, 320, 240), nil
	}
}

func TestRegisterValidation(t *testing.T) {
	_, r := newTestPair()

	tests := []struct {
		name string
		reg  *types.Registration
	}{
		{"nil", nil},
		{"missing id", &types.Registration{Name: "X", Launch: func() (*types.Window, error) { return nil, nil }}},
		{"missing name", &types.Registration{ID: "x", Launch: func() (*types.Window, error) { return nil, nil }}},
		{"missing launch", &types.Registration{ID: "x", Name: "X"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, r.Register(tt.reg), ErrInvalidRegistration)
		})
	}

	assert.Equal(t, 0, r.Stats().TotalApps)
}

func TestRegisterOverwritesLastWriterWins(t *testing.T) {
	m, r := newTestPair()

	require.NoError(t, r.Register(&types.Registration{ID: "x", Name: "First", Launch: launchOn(m, "First")}))
	require.NoError(t, r.Register(&types.Registration{ID: "x", Name: "Second", Launch: launchOn(m, "Second")}))

	reg, ok := r.Get("x")
	require.True(t, ok)
	assert.Equal(t, "Second", reg.Name)
	assert.Equal(t, 1, r.Stats().TotalApps)
}

func TestOpenUnregistered(t *testing.T) {
	_, r := newTestPair()

	win, refocused, err := r.Open("ghost")
	assert.Nil(t, win)
	assert.False(t, refocused)
	assert.ErrorIs(t, err, ErrNotRegistered)
}

func TestOpenSingleInstanceRefocuses(t *testing.T) {
	m, r := newTestPair()
	require.NoError(t, r.Register(&types.Registration{
		ID: "calc", Name: "Calculator", SingleInstance: true, Launch: launchOn(m, "Calculator"),
	}))

	first, refocused, err := r.Open("calc")
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.False(t, refocused)
	assert.True(t, r.IsRunning("calc"))

	second, refocused, err := r.Open("calc")
	require.NoError(t, err)
	assert.True(t, refocused)
	assert.Equal(t, first.ID, second.ID)

	// Still exactly one tracked instance and one live window.
	assert.Equal(t, 1, r.Stats().RunningInstances)
	assert.Len(t, m.List(), 1)
}

func TestOpenRefocusRestoresMinimized(t *testing.T) {
	m, r := newTestPair()
	require.NoError(t, r.Register(&types.Registration{
		ID: "calc", Name: "Calculator", SingleInstance: true, Launch: launchOn(m, "Calculator"),
	}))

	first, _, err := r.Open("calc")
	require.NoError(t, err)
	require.NoError(t, m.Minimize(first.ID))

	second, refocused, err := r.Open("calc")
	require.NoError(t, err)
	assert.True(t, refocused)
	assert.False(t, second.Minimized)
}

func TestOpenMultiInstanceNeverTracked(t *testing.T) {
	m, r := newTestPair()
	require.NoError(t, r.Register(&types.Registration{
		ID: "media", Name: "Media Player", Launch: launchOn(m, "Media Player"),
	}))

	first, _, err := r.Open("media")
	require.NoError(t, err)
	second, refocused, err := r.Open("media")
	require.NoError(t, err)

	assert.False(t, refocused)
	assert.NotEqual(t, first.ID, second.ID)
	assert.False(t, r.IsRunning("media"))
	assert.Len(t, m.List(), 2)
}

func TestCloseClearsRunningInstance(t *testing.T) {
	m, r := newTestPair()
	require.NoError(t, r.Register(&types.Registration{
		ID: "calc", Name: "Calculator", SingleInstance: true, Launch: launchOn(m, "Calculator"),
	}))

	first, _, err := r.Open("calc")
	require.NoError(t, err)
	require.NoError(t, m.Close(first.ID))

	assert.False(t, r.IsRunning("calc"))

	// Reopening launches fresh rather than refocusing the dead handle.
	second, refocused, err := r.Open("calc")
	require.NoError(t, err)
	assert.False(t, refocused)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestOpenLaunchErrorLeavesStateUnchanged(t *testing.T) {
	_, r := newTestPair()
	require.NoError(t, r.Register(&types.Registration{
		ID: "bad", Name: "Bad", SingleInstance: true,
		Launch: func() (*types.Window, error) { return nil, errors.New("no backend") },
	}))

	win, _, err := r.Open("bad")
	assert.Nil(t, win)
	assert.ErrorIs(t, err, ErrLaunchFailed)
	assert.False(t, r.IsRunning("bad"))
	assert.Equal(t, 1, r.Stats().LaunchFailures)
}

func TestOpenLaunchPanicContained(t *testing.T) {
	_, r := newTestPair()
	require.NoError(t, r.Register(&types.Registration{
		ID: "explode", Name: "Explode", SingleInstance: true,
		Launch: func() (*types.Window, error) { panic("kaboom") },
	}))

	win, _, err := r.Open("explode")
	assert.Nil(t, win)
	assert.ErrorIs(t, err, ErrLaunchFailed)
	assert.False(t, r.IsRunning("explode"))
}

func TestRunningInstanceQuery(t *testing.T) {
	m, r := newTestPair()
	require.NoError(t, r.Register(&types.Registration{
		ID: "calc", Name: "Calculator", SingleInstance: true, Launch: launchOn(m, "Calculator"),
	}))

	_, ok := r.RunningInstance("calc")
	assert.False(t, ok)

	win, _, err := r.Open("calc")
	require.NoError(t, err)

	got, ok := r.RunningInstance("calc")
	require.True(t, ok)
	assert.Equal(t, win.ID, got)
}

func TestListSortedWithRunningFlag(t *testing.T) {
	m, r := newTestPair()
	require.NoError(t, r.Register(&types.Registration{ID: "b", Name: "Beta", Launch: launchOn(m, "Beta")}))
	require.NoError(t, r.Register(&types.Registration{
		ID: "a", Name: "Alpha", SingleInstance: true, Launch: launchOn(m, "Alpha"),
	}))
	_, _, err := r.Open("a")
	require.NoError(t, err)

	apps := r.List()
	require.Len(t, apps, 2)
	assert.Equal(t, "Alpha", apps[0].Name)
	assert.True(t, apps[0].Running)
	assert.Equal(t, "Beta", apps[1].Name)
	assert.False(t, apps[1].Running)
}
