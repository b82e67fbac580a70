package types

import "time"

// Geometry describes window placement in viewport pixels.
type Geometry struct {
	Left   int `json:"left"`
	Top    int `json:"top"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Viewport holds the hosting environment dimensions.
type Viewport struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Window represents the authoritative state for one live window.
//
// Geometry is owned by the window manager; the rendering layer observes
// it and reconciles visual state, never the other way around.
type Window struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Geometry  Geometry  `json:"geometry"`
	Minimized bool      `json:"minimized"`
	Maximized bool      `json:"maximized"`
	Z         int       `json:"z"`
	CreatedAt time.Time `json:"created_at"`

	// OriginalGeometry is the snapshot taken immediately before the first
	// maximize transition. Nil until then.
	OriginalGeometry *Geometry `json:"original_geometry,omitempty"`

	// Content is the caller's UI payload. The window manager never
	// interprets it.
	Content map[string]interface{} `json:"content,omitempty"`
}

// Affordance is a taskbar entry pointing at a minimized window.
type Affordance struct {
	WindowID    string    `json:"window_id"`
	Title       string    `json:"title"`
	MinimizedAt time.Time `json:"minimized_at"`
}

// WindowStats contains window manager statistics.
type WindowStats struct {
	TotalWindows int     `json:"total_windows"`
	Minimized    int     `json:"minimized"`
	Maximized    int     `json:"maximized"`
	TopWindowID  *string `json:"top_window_id,omitempty"`
}
