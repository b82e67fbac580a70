// Package types provides shared data structures for the webtop backend.
//
// This package defines the core types used across all backend components,
// ensuring type safety and consistent data structures.
//
// Core Types:
//   - Window: Authoritative state for one live window
//   - Geometry: Numeric window geometry in viewport pixels
//   - Registration: Metadata and launch callback for an installed app
//   - Affordance: Taskbar entry for a minimized window
//   - Event: Notification pushed to connected shells
//
// State Management:
//   - Viewport: Hosting environment dimensions
//   - WindowStats, RegistryStats: Subsystem statistics
//
// Example Usage:
//
//	win := &types.Window{
//	    ID:       string(id.NewWindowID()),
//	    Title:    "Calculator",
//	    Geometry: types.Geometry{Left: 60, Top: 60, Width: 320, Height: 400},
//	}
package types
