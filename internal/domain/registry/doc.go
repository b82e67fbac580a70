// Package registry implements the application registry: the single
// arbitration point for "open this application".
//
// A registration carries display metadata, a single-instance flag, and
// a launch callback that produces a window. Open enforces
// single-instance semantics: with a live instance it restores and
// raises the existing window instead of launching a second one. The
// running-instance table is purged through the window manager's
// synchronous close signal, never by polling.
//
// Registrations live for the process lifetime; there is no unregister.
package registry
