package wm

import "github.com/glasspane/webtop/internal/shared/types"

// Config holds the layout tunables for the window manager. All values
// are viewport pixels.
type Config struct {
	// Margin is the strip kept free around newly created windows.
	Margin int
	// TaskbarHeight is reserved at the bottom of the viewport.
	TaskbarHeight int
	// MinWidth and MinHeight bound the smallest usable window.
	MinWidth  int
	MinHeight int
	// MinVisible is the strip of a window that must stay on-screen
	// during drag, on every edge.
	MinVisible int
	// Cascade placement for new windows.
	CascadeBaseX int
	CascadeBaseY int
	CascadeStep  int
	// Size applied when the caller does not request one.
	DefaultWidth  int
	DefaultHeight int
}

// DefaultConfig returns the stock desktop layout.
func DefaultConfig() Config {
	return Config{
		Margin:        20,
		TaskbarHeight: 40,
		MinWidth:      200,
		MinHeight:     150,
		MinVisible:    40,
		CascadeBaseX:  60,
		CascadeBaseY:  60,
		CascadeStep:   30,
		DefaultWidth:  640,
		DefaultHeight: 480,
	}
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// usableHeight is the viewport height minus the taskbar reservation.
func (c Config) usableHeight(vp types.Viewport) int {
	return vp.Height - c.TaskbarHeight
}

// clampSize fits a requested size into the viewport, never below the
// minimum usable size. Zero or negative requests take the defaults.
func (c Config) clampSize(vp types.Viewport, width, height int) (int, int) {
	if width <= 0 {
		width = c.DefaultWidth
	}
	if height <= 0 {
		height = c.DefaultHeight
	}

	maxW := vp.Width - 2*c.Margin
	maxH := c.usableHeight(vp) - 2*c.Margin
	width = clamp(width, c.MinWidth, maxW)
	height = clamp(height, c.MinHeight, maxH)
	return width, height
}

// cascadeOrigin computes the initial position for the n-th created
// window. The offset wraps before the window would cascade off-screen.
func (c Config) cascadeOrigin(vp types.Viewport, n, width, height int) (int, int) {
	maxLeft := vp.Width - width - c.Margin
	maxTop := c.usableHeight(vp) - height - c.Margin

	left := c.CascadeBaseX
	top := c.CascadeBaseY
	if span := maxLeft - c.CascadeBaseX; span > 0 {
		left += (n * c.CascadeStep) % (span + 1)
	}
	if span := maxTop - c.CascadeBaseY; span > 0 {
		top += (n * c.CascadeStep) % (span + 1)
	}

	return clamp(left, c.Margin, maxLeft), clamp(top, c.Margin, maxTop)
}

// clampDrag bounds a dragged position so a MinVisible strip of the
// window stays on-screen: never above the top edge, never further left
// or right than leaves the strip visible, never below the taskbar line.
// The second return reports whether the requested position was adjusted.
func (c Config) clampDrag(vp types.Viewport, g types.Geometry) (types.Geometry, bool) {
	minLeft := c.MinVisible - g.Width
	maxLeft := vp.Width - c.MinVisible
	maxTop := c.usableHeight(vp) - c.MinVisible

	clamped := g
	clamped.Left = clamp(g.Left, minLeft, maxLeft)
	clamped.Top = clamp(g.Top, 0, maxTop)
	return clamped, clamped != g
}

// maximizedGeometry fills the viewport minus the taskbar reservation.
func (c Config) maximizedGeometry(vp types.Viewport) types.Geometry {
	return types.Geometry{
		Left:   0,
		Top:    0,
		Width:  vp.Width,
		Height: c.usableHeight(vp),
	}
}
