package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/glasspane/webtop/internal/infrastructure/logging"
	"github.com/glasspane/webtop/internal/infrastructure/monitoring"
	"github.com/glasspane/webtop/internal/shared/id"
	"github.com/glasspane/webtop/internal/shared/types"
)

var (
	// ErrNotRegistered reports an open request for an unknown app ID.
	ErrNotRegistered = errors.New("app not registered")
	// ErrLaunchFailed reports a launch callback that returned an error
	// or panicked. Registry state is unchanged when this is returned.
	ErrLaunchFailed = errors.New("app launch failed")
	// ErrInvalidRegistration reports a registration missing required fields.
	ErrInvalidRegistration = errors.New("invalid registration")
)

// WindowManager is the slice of the window manager the registry needs
// to arbitrate refocus-vs-launch and to observe window closures.
type WindowManager interface {
	Restore(windowID string) error
	BringToFront(windowID string) error
	Get(windowID string) (*types.Window, error)
	OnClose(fn func(windowID string))
}

// Emitter pushes app-level events to connected shells.
type Emitter interface {
	Emit(e types.Event)
}

// Registry is the single arbitration point for "open this application".
// It owns the registration table and the running-instance table for
// single-instance apps; nothing else mutates either.
type Registry struct {
	mu        sync.RWMutex
	apps      map[string]*types.Registration // protected by mu
	running   map[string]string              // app ID → window ID, single-instance only
	windowApp map[string]string              // window ID → app ID, reverse of running
	failures  int                            // protected by mu

	// openMu serializes open requests so the instance check and the
	// launch it decides on cannot interleave with another open.
	openMu sync.Mutex

	wm      WindowManager
	logger  *logging.Logger
	emitter Emitter
	metrics *monitoring.Metrics
}

// New creates a registry bound to a window manager. The registry
// subscribes to window closures to purge instance tracking.
func New(wm WindowManager, logger *logging.Logger) *Registry {
	if logger == nil {
		logger = logging.NewNop()
	}
	r := &Registry{
		apps:      make(map[string]*types.Registration),
		running:   make(map[string]string),
		windowApp: make(map[string]string),
		wm:        wm,
		logger:    logger,
	}
	wm.OnClose(r.handleWindowClosed)
	return r
}

// WithEmitter attaches the shell event emitter.
func (r *Registry) WithEmitter(e Emitter) *Registry {
	r.emitter = e
	return r
}

// WithMetrics adds metrics tracking to the registry.
func (r *Registry) WithMetrics(metrics *monitoring.Metrics) *Registry {
	r.metrics = metrics
	return r
}

// Register installs an application. ID, name, and launch callback are
// required; a registration with the same ID overwrites the previous
// one, last writer wins. Callers log and drop the error; a bad
// registration never takes the process down.
func (r *Registry) Register(reg *types.Registration) error {
	if reg == nil || reg.ID == "" || reg.Name == "" || reg.Launch == nil {
		return fmt.Errorf("%w: id, name, and launch are required", ErrInvalidRegistration)
	}

	r.mu.Lock()
	if _, exists := r.apps[reg.ID]; exists {
		r.logger.Info("Overwriting app registration", zap.String("app_id", reg.ID))
	}
	regCopy := *reg
	r.apps[reg.ID] = &regCopy
	count := len(r.apps)
	r.mu.Unlock()

	if r.metrics != nil {
		r.metrics.RegisteredApps.Set(float64(count))
	}
	return nil
}

// Open launches the application or refocuses its existing instance.
// For a single-instance app with a live window, the window is restored
// if minimized and raised, and the existing handle is returned with
// refocused=true. Otherwise the launch callback runs; its window is
// tracked when the app is single-instance. A launch error or panic is
// contained: it is logged, counted, and leaves registry state unchanged.
func (r *Registry) Open(appID string) (*types.Window, bool, error) {
	r.openMu.Lock()
	defer r.openMu.Unlock()

	r.mu.RLock()
	reg, ok := r.apps[appID]
	winID := r.running[appID]
	r.mu.RUnlock()

	if !ok {
		if r.metrics != nil {
			r.metrics.RecordAppLaunch(appID, "not_found")
		}
		return nil, false, fmt.Errorf("%w: %s", ErrNotRegistered, appID)
	}

	if reg.SingleInstance && winID != "" {
		if err := r.wm.Restore(winID); err == nil {
			win, err := r.wm.Get(winID)
			if err == nil {
				if r.metrics != nil {
					r.metrics.RecordAppLaunch(appID, "refocused")
				}
				r.emitApp(types.EventAppFocused, appID, win.ID)
				return win, true, nil
			}
		}
		// The tracked window is gone without a close signal; drop the
		// stale entry and fall through to a fresh launch.
		r.logger.Warn("Stale running instance purged",
			zap.String("app_id", appID),
			zap.String("window_id", winID),
		)
		r.purge(appID, winID)
	}

	win, err := r.safeLaunch(reg)
	if err != nil {
		r.mu.Lock()
		r.failures++
		r.mu.Unlock()
		if r.metrics != nil {
			r.metrics.RecordAppLaunch(appID, "failed")
		}
		r.logger.Error("App launch failed",
			zap.String("app_id", appID),
			zap.Error(err),
		)
		return nil, false, fmt.Errorf("%w: %s: %v", ErrLaunchFailed, appID, err)
	}

	if reg.SingleInstance && win != nil {
		r.mu.Lock()
		r.running[appID] = win.ID
		r.windowApp[win.ID] = appID
		r.mu.Unlock()
	}

	if r.metrics != nil {
		r.metrics.RecordAppLaunch(appID, "created")
	}
	if win != nil {
		r.emitApp(types.EventAppOpened, appID, win.ID)
	}
	return win, false, nil
}

// IsRunning reports whether a single-instance app has a live window.
func (r *Registry) IsRunning(appID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.running[appID]
	return ok
}

// RunningInstance returns the tracked window ID for a single-instance app.
func (r *Registry) RunningInstance(appID string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	winID, ok := r.running[appID]
	return winID, ok
}

// Get returns the registration for an app ID.
func (r *Registry) Get(appID string) (*types.Registration, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reg, ok := r.apps[appID]
	if !ok {
		return nil, false
	}
	regCopy := *reg
	return &regCopy, true
}

// List returns the externally visible view of all registrations,
// sorted by name.
func (r *Registry) List() []types.AppInfo {
	r.mu.RLock()
	out := make([]types.AppInfo, 0, len(r.apps))
	for _, reg := range r.apps {
		_, running := r.running[reg.ID]
		out = append(out, types.AppInfo{
			ID:             reg.ID,
			Name:           reg.Name,
			Icon:           reg.Icon,
			Category:       reg.Category,
			SingleInstance: reg.SingleInstance,
			Running:        running,
		})
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Stats returns registry statistics.
func (r *Registry) Stats() types.RegistryStats {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return types.RegistryStats{
		TotalApps:        len(r.apps),
		RunningInstances: len(r.running),
		LaunchFailures:   r.failures,
	}
}

// safeLaunch invokes the launch callback, containing panics.
func (r *Registry) safeLaunch(reg *types.Registration) (win *types.Window, err error) {
	defer func() {
		if p := recover(); p != nil {
			win = nil
			err = fmt.Errorf("launch panicked: %v", p)
		}
	}()
	return reg.Launch()
}

// handleWindowClosed is the close subscriber wired into the window
// manager; it drops the running-instance record for the closed window.
func (r *Registry) handleWindowClosed(windowID string) {
	r.mu.Lock()
	appID, ok := r.windowApp[windowID]
	if ok {
		delete(r.windowApp, windowID)
		delete(r.running, appID)
	}
	r.mu.Unlock()
}

func (r *Registry) purge(appID, windowID string) {
	r.mu.Lock()
	delete(r.running, appID)
	delete(r.windowApp, windowID)
	r.mu.Unlock()
}

func (r *Registry) emitApp(t types.EventType, appID, windowID string) {
	if r.emitter == nil {
		return
	}
	r.emitter.Emit(types.Event{
		ID:        id.NewEventID().String(),
		Type:      t,
		AppID:     appID,
		WindowID:  windowID,
		Timestamp: time.Now(),
	})
}
