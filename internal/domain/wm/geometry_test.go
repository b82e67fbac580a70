package wm

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/glasspane/webtop/internal/shared/types"
)

var testViewport = types.Viewport{Width: 1024, Height: 768}

func TestClampSize(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name  string
		w, h  int
		wantW int
		wantH int
	}{
		{"requested fits", 320, 400, 320, 400},
		{"zero takes defaults", 0, 0, 640, 480},
		{"negative takes defaults", -1, -1, 640, 480},
		{"oversize clamps to viewport minus margins", 2000, 2000, 984, 688},
		{"undersize clamps to minimum", 50, 50, 200, 150},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := cfg.clampSize(testViewport, tt.w, tt.h)
			assert.Equal(t, tt.wantW, w)
			assert.Equal(t, tt.wantH, h)
		})
	}
}

func TestCascadeOriginWraps(t *testing.T) {
	cfg := DefaultConfig()

	maxLeft := testViewport.Width - 400 - cfg.Margin
	maxTop := testViewport.Height - cfg.TaskbarHeight - 300 - cfg.Margin

	for n := 0; n < 200; n++ {
		left, top := cfg.cascadeOrigin(testViewport, n, 400, 300)
		assert.GreaterOrEqual(t, left, cfg.Margin)
		assert.LessOrEqual(t, left, maxLeft)
		assert.GreaterOrEqual(t, top, cfg.Margin)
		assert.LessOrEqual(t, top, maxTop)
	}
}

func TestCascadeOriginHugeWindow(t *testing.T) {
	cfg := DefaultConfig()

	// A window as wide as the viewport leaves no cascade span; position
	// pins to the margin instead of going negative.
	left, top := cfg.cascadeOrigin(testViewport, 5, 1024, 728)
	assert.Equal(t, cfg.Margin, left)
	assert.Equal(t, cfg.Margin, top)
}

func TestClampDrag(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name     string
		in       types.Geometry
		want     types.Geometry
		adjusted bool
	}{
		{
			"inside untouched",
			types.Geometry{Left: 100, Top: 100, Width: 300, Height: 200},
			types.Geometry{Left: 100, Top: 100, Width: 300, Height: 200},
			false,
		},
		{
			"above top pinned",
			types.Geometry{Left: 100, Top: -50, Width: 300, Height: 200},
			types.Geometry{Left: 100, Top: 0, Width: 300, Height: 200},
			true,
		},
		{
			"off left keeps strip",
			types.Geometry{Left: -5000, Top: 100, Width: 300, Height: 200},
			types.Geometry{Left: 40 - 300, Top: 100, Width: 300, Height: 200},
			true,
		},
		{
			"off right keeps strip",
			types.Geometry{Left: 5000, Top: 100, Width: 300, Height: 200},
			types.Geometry{Left: 1024 - 40, Top: 100, Width: 300, Height: 200},
			true,
		},
		{
			"below taskbar keeps strip",
			types.Geometry{Left: 100, Top: 5000, Width: 300, Height: 200},
			types.Geometry{Left: 100, Top: 768 - 40 - 40, Width: 300, Height: 200},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, adjusted := cfg.clampDrag(testViewport, tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.adjusted, adjusted)
		})
	}
}

func TestMaximizedGeometry(t *testing.T) {
	cfg := DefaultConfig()
	got := cfg.maximizedGeometry(testViewport)
	assert.Equal(t, types.Geometry{Left: 0, Top: 0, Width: 1024, Height: 728}, got)
}
