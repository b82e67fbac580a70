// Package server assembles the desktop service: window manager, app
// registry, taskbar, bundled applications, cloud storage, and the
// HTTP/WebSocket surface that exposes them.
package server
