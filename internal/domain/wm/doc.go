// Package wm implements the window manager: the authoritative owner of
// window records, geometry, stacking order, and visibility.
//
// State machine per window:
//
//	created → {normal ⇄ maximized} → minimized (from either)
//	        → restored (back to prior normal/maximized)
//	        → closed (terminal, from any state)
//
// The manager is the only component that mutates window state. The
// taskbar and the event stream are narrow outbound interfaces; the
// registry observes closures through OnClose. Operations on unknown
// window IDs fail with ErrWindowNotFound rather than silently doing
// nothing, so callers and tests see contract violations.
package wm
