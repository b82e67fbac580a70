package wm

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/glasspane/webtop/internal/infrastructure/monitoring"
	"github.com/glasspane/webtop/internal/shared/id"
	"github.com/glasspane/webtop/internal/shared/types"
)

var (
	// ErrWindowNotFound reports an operation on an unknown window ID.
	// Unknown IDs are contract violations, never silent no-ops.
	ErrWindowNotFound = errors.New("window not found")
	// ErrWindowMaximized reports a drag or resize on a maximized window.
	ErrWindowMaximized = errors.New("window is maximized")
	// ErrWindowMinimized reports a maximize toggle on a hidden window.
	ErrWindowMinimized = errors.New("window is minimized")
)

// Taskbar receives minimized-window affordances. Implemented by the
// taskbar collaborator; the manager only knows this narrow interface.
type Taskbar interface {
	Add(a types.Affordance)
	Remove(windowID string)
}

// Emitter pushes shell events to connected frontends.
type Emitter interface {
	Emit(e types.Event)
}

// record pairs a window with state the manager keeps to itself.
type record struct {
	win *types.Window
	// restoreMaximized remembers that the window was maximized when it
	// was minimized, so Restore can return it to that state. Keeping it
	// here lets Minimized and Maximized never be true simultaneously.
	restoreMaximized bool
}

// Manager owns the window record store and is the only mutator of
// window geometry, stacking order, and visibility state.
type Manager struct {
	mu       sync.RWMutex
	windows  map[string]*record // protected by mu
	viewport types.Viewport     // protected by mu
	cfg      Config
	created  int // cascade counter, monotonic

	taskbar   Taskbar
	emitter   Emitter
	metrics   *monitoring.Metrics
	closeSubs []func(windowID string)
}

// NewManager creates a window manager for the given viewport.
func NewManager(vp types.Viewport, cfg Config) *Manager {
	return &Manager{
		windows:  make(map[string]*record),
		viewport: vp,
		cfg:      cfg,
	}
}

// WithTaskbar attaches the taskbar collaborator.
func (m *Manager) WithTaskbar(tb Taskbar) *Manager {
	m.taskbar = tb
	return m
}

// WithEmitter attaches the shell event emitter.
func (m *Manager) WithEmitter(e Emitter) *Manager {
	m.emitter = e
	return m
}

// WithMetrics adds metrics tracking to the manager.
func (m *Manager) WithMetrics(metrics *monitoring.Metrics) *Manager {
	m.metrics = metrics
	return m
}

// OnClose registers a callback fired synchronously after a window is
// closed. The registry uses this to purge running-instance tracking.
func (m *Manager) OnClose(fn func(windowID string)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closeSubs = append(m.closeSubs, fn)
}

// Create makes a new window. It always succeeds: sizes are clamped to
// the viewport, positions cascade and wrap before running off-screen.
func (m *Manager) Create(title string, content map[string]interface{}, width, height int) *types.Window {
	m.mu.Lock()

	w, h := m.cfg.clampSize(m.viewport, width, height)
	left, top := m.cfg.cascadeOrigin(m.viewport, m.created, w, h)
	m.created++

	win := &types.Window{
		ID:        id.NewWindowID().String(),
		Title:     title,
		Geometry:  types.Geometry{Left: left, Top: top, Width: w, Height: h},
		Z:         m.topZ() + 1,
		Content:   content,
		CreatedAt: time.Now(),
	}
	m.windows[win.ID] = &record{win: win}

	if m.metrics != nil {
		m.metrics.WindowsCreated.Inc()
		m.metrics.WindowsActive.Set(float64(len(m.windows)))
	}

	out := cloneWindow(win)
	m.mu.Unlock()

	m.emit(types.EventWindowCreated, out, nil)
	return out
}

// Minimize hides a window and emits a taskbar affordance for it.
// Idempotent: a second call only re-creates the affordance.
func (m *Manager) Minimize(windowID string) error {
	m.mu.Lock()
	rec, ok := m.windows[windowID]
	if !ok {
		m.mu.Unlock()
		return ErrWindowNotFound
	}

	already := rec.win.Minimized
	if !already {
		rec.restoreMaximized = rec.win.Maximized
		rec.win.Maximized = false
		rec.win.Minimized = true
	}
	affordance := types.Affordance{
		WindowID:    rec.win.ID,
		Title:       rec.win.Title,
		MinimizedAt: time.Now(),
	}
	m.setMinimizedGauge()

	out := cloneWindow(rec.win)
	m.mu.Unlock()

	if m.taskbar != nil {
		m.taskbar.Add(affordance)
	}
	if !already {
		m.emit(types.EventWindowMinimized, out, nil)
	}
	return nil
}

// Restore shows a minimized window again, returning it to its prior
// normal or maximized state, and brings it to front. Restoring a
// visible window just raises it.
func (m *Manager) Restore(windowID string) error {
	m.mu.Lock()
	rec, ok := m.windows[windowID]
	if !ok {
		m.mu.Unlock()
		return ErrWindowNotFound
	}

	wasMinimized := rec.win.Minimized
	if wasMinimized {
		rec.win.Minimized = false
		if rec.restoreMaximized {
			rec.win.Maximized = true
			rec.win.Geometry = m.cfg.maximizedGeometry(m.viewport)
			rec.restoreMaximized = false
		}
	}
	rec.win.Z = m.topZ() + 1
	m.setMinimizedGauge()

	out := cloneWindow(rec.win)
	m.mu.Unlock()

	if wasMinimized && m.taskbar != nil {
		m.taskbar.Remove(windowID)
	}
	if wasMinimized {
		m.emit(types.EventWindowRestored, out, nil)
	}
	m.emit(types.EventWindowFocused, out, nil)
	return nil
}

// ToggleMaximize switches a visible window between its normal geometry
// and filling the viewport minus the taskbar reservation. Both
// directions bring the window to front.
func (m *Manager) ToggleMaximize(windowID string) error {
	m.mu.Lock()
	rec, ok := m.windows[windowID]
	if !ok {
		m.mu.Unlock()
		return ErrWindowNotFound
	}
	if rec.win.Minimized {
		m.mu.Unlock()
		return ErrWindowMinimized
	}

	var event types.EventType
	if rec.win.Maximized {
		if rec.win.OriginalGeometry != nil {
			rec.win.Geometry = *rec.win.OriginalGeometry
		}
		rec.win.Maximized = false
		event = types.EventWindowUnmaximized
	} else {
		snapshot := rec.win.Geometry
		rec.win.OriginalGeometry = &snapshot
		rec.win.Geometry = m.cfg.maximizedGeometry(m.viewport)
		rec.win.Maximized = true
		event = types.EventWindowMaximized
	}
	rec.win.Z = m.topZ() + 1

	out := cloneWindow(rec.win)
	m.mu.Unlock()

	m.emit(event, out, nil)
	return nil
}

// Drag moves a window by a pointer delta. Rejected while maximized;
// the result is clamped so a minimum visible strip stays on-screen.
func (m *Manager) Drag(windowID string, dx, dy int) error {
	m.mu.Lock()
	rec, ok := m.windows[windowID]
	if !ok {
		m.mu.Unlock()
		return ErrWindowNotFound
	}
	if rec.win.Maximized {
		m.mu.Unlock()
		return ErrWindowMaximized
	}

	proposed := rec.win.Geometry
	proposed.Left += dx
	proposed.Top += dy

	clamped, adjusted := m.cfg.clampDrag(m.viewport, proposed)
	rec.win.Geometry = clamped
	if adjusted && m.metrics != nil {
		m.metrics.DragClamps.Inc()
	}

	out := cloneWindow(rec.win)
	m.mu.Unlock()

	m.emit(types.EventWindowMoved, out, map[string]interface{}{"clamped": adjusted})
	return nil
}

// Resize sets a new window size, clamped like creation, and nudges the
// window back on-screen if the new size would leave it outside.
func (m *Manager) Resize(windowID string, width, height int) error {
	m.mu.Lock()
	rec, ok := m.windows[windowID]
	if !ok {
		m.mu.Unlock()
		return ErrWindowNotFound
	}
	if rec.win.Maximized {
		m.mu.Unlock()
		return ErrWindowMaximized
	}

	w, h := m.cfg.clampSize(m.viewport, width, height)
	rec.win.Geometry.Width = w
	rec.win.Geometry.Height = h
	rec.win.Geometry, _ = m.cfg.clampDrag(m.viewport, rec.win.Geometry)

	out := cloneWindow(rec.win)
	m.mu.Unlock()

	m.emit(types.EventWindowResized, out, nil)
	return nil
}

// BringToFront assigns the window a stacking value one above the
// current maximum. The scan is O(window count), fine at tens of windows.
func (m *Manager) BringToFront(windowID string) error {
	m.mu.Lock()
	rec, ok := m.windows[windowID]
	if !ok {
		m.mu.Unlock()
		return ErrWindowNotFound
	}

	rec.win.Z = m.topZ() + 1

	out := cloneWindow(rec.win)
	m.mu.Unlock()

	m.emit(types.EventWindowFocused, out, nil)
	return nil
}

// Close removes the window and its taskbar affordance, then fires the
// close subscribers. Irreversible; record and render state part together.
func (m *Manager) Close(windowID string) error {
	m.mu.Lock()
	rec, ok := m.windows[windowID]
	if !ok {
		m.mu.Unlock()
		return ErrWindowNotFound
	}

	delete(m.windows, windowID)
	if m.metrics != nil {
		m.metrics.WindowsClosed.Inc()
		m.metrics.WindowsActive.Set(float64(len(m.windows)))
	}
	m.setMinimizedGauge()

	out := cloneWindow(rec.win)
	subs := make([]func(string), len(m.closeSubs))
	copy(subs, m.closeSubs)
	m.mu.Unlock()

	if m.taskbar != nil {
		m.taskbar.Remove(windowID)
	}
	for _, fn := range subs {
		fn(windowID)
	}
	m.emit(types.EventWindowClosed, out, nil)
	return nil
}

// MinimizeAll minimizes every visible window, maximized ones included;
// leaving those up would defeat show-desktop. Returns the number minimized.
func (m *Manager) MinimizeAll() int {
	m.mu.Lock()
	var outs []*types.Window
	var affordances []types.Affordance
	now := time.Now()

	for _, rec := range m.windows {
		if rec.win.Minimized {
			continue
		}
		rec.restoreMaximized = rec.win.Maximized
		rec.win.Maximized = false
		rec.win.Minimized = true
		affordances = append(affordances, types.Affordance{
			WindowID:    rec.win.ID,
			Title:       rec.win.Title,
			MinimizedAt: now,
		})
		outs = append(outs, cloneWindow(rec.win))
	}
	m.setMinimizedGauge()
	m.mu.Unlock()

	for _, a := range affordances {
		if m.taskbar != nil {
			m.taskbar.Add(a)
		}
	}
	for _, out := range outs {
		m.emit(types.EventWindowMinimized, out, nil)
	}
	return len(outs)
}

// SetViewport records new hosting-environment dimensions and refits
// every live window: maximized windows track the new viewport, normal
// ones are clamped back inside it.
func (m *Manager) SetViewport(width, height int) {
	m.mu.Lock()
	m.viewport = types.Viewport{Width: width, Height: height}

	var changed []*types.Window
	for _, rec := range m.windows {
		before := rec.win.Geometry
		if rec.win.Maximized {
			rec.win.Geometry = m.cfg.maximizedGeometry(m.viewport)
		} else {
			w, h := m.cfg.clampSize(m.viewport, rec.win.Geometry.Width, rec.win.Geometry.Height)
			rec.win.Geometry.Width = w
			rec.win.Geometry.Height = h
			rec.win.Geometry, _ = m.cfg.clampDrag(m.viewport, rec.win.Geometry)
		}
		if rec.win.Geometry != before {
			changed = append(changed, cloneWindow(rec.win))
		}
	}
	m.mu.Unlock()

	for _, out := range changed {
		m.emit(types.EventWindowResized, out, nil)
	}
}

// Get retrieves a window by ID. Returns a copy.
func (m *Manager) Get(windowID string) (*types.Window, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.windows[windowID]
	if !ok {
		return nil, ErrWindowNotFound
	}
	return cloneWindow(rec.win), nil
}

// List returns copies of all live windows in stacking order, bottom first.
func (m *Manager) List() []*types.Window {
	m.mu.RLock()
	wins := make([]*types.Window, 0, len(m.windows))
	for _, rec := range m.windows {
		wins = append(wins, cloneWindow(rec.win))
	}
	m.mu.RUnlock()

	sort.Slice(wins, func(i, j int) bool { return wins[i].Z < wins[j].Z })
	return wins
}

// Viewport returns the current viewport dimensions.
func (m *Manager) Viewport() types.Viewport {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.viewport
}

// Stats returns window manager statistics.
func (m *Manager) Stats() types.WindowStats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stats := types.WindowStats{TotalWindows: len(m.windows)}
	var top *types.Window
	for _, rec := range m.windows {
		if rec.win.Minimized {
			stats.Minimized++
		}
		if rec.win.Maximized {
			stats.Maximized++
		}
		if !rec.win.Minimized && (top == nil || rec.win.Z > top.Z) {
			top = rec.win
		}
	}
	if top != nil {
		topID := top.ID
		stats.TopWindowID = &topID
	}
	return stats
}

// topZ must be called with the lock held.
func (m *Manager) topZ() int {
	top := 0
	for _, rec := range m.windows {
		if rec.win.Z > top {
			top = rec.win.Z
		}
	}
	return top
}

// setMinimizedGauge must be called with the lock held.
func (m *Manager) setMinimizedGauge() {
	if m.metrics == nil {
		return
	}
	count := 0
	for _, rec := range m.windows {
		if rec.win.Minimized {
			count++
		}
	}
	m.metrics.WindowsMinimized.Set(float64(count))
}

func (m *Manager) emit(t types.EventType, win *types.Window, payload map[string]interface{}) {
	if m.emitter == nil {
		return
	}
	if payload == nil {
		payload = map[string]interface{}{}
	}
	payload["geometry"] = win.Geometry
	payload["z"] = win.Z
	payload["title"] = win.Title

	m.emitter.Emit(types.Event{
		ID:        id.NewEventID().String(),
		Type:      t,
		WindowID:  win.ID,
		Payload:   payload,
		Timestamp: time.Now(),
	})
}

// cloneWindow copies a window so callers cannot mutate manager state.
func cloneWindow(w *types.Window) *types.Window {
	out := *w
	if w.OriginalGeometry != nil {
		g := *w.OriginalGeometry
		out.OriginalGeometry = &g
	}
	return &out
}
