package calculator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glasspane/webtop/internal/domain/registry"
	"github.com/glasspane/webtop/internal/domain/wm"
	"github.com/glasspane/webtop/internal/shared/types"
)

func TestEval(t *testing.T) {
	s := NewService()

	tests := []struct {
		expr string
		want float64
	}{
		{"2 + 2", 4},
		{"(3 + 4) * 2", 14},
		{"10 / 4", 2.5},
		{"Math.sqrt(144)", 12},
		{"Math.pow(2, 10)", 1024},
	}
	for _, tt := range tests {
		got, err := s.Eval(context.Background(), tt.expr)
		require.NoError(t, err, tt.expr)
		assert.InDelta(t, tt.want, got, 1e-9, tt.expr)
	}
}

func TestEvalErrors(t *testing.T) {
	s := NewService()

	_, err := s.Eval(context.Background(), "")
	assert.ErrorIs(t, err, ErrEmptyExpression)

	_, err = s.Eval(context.Background(), "2 +")
	assert.Error(t, err)

	_, err = s.Eval(context.Background(), `"not a number"`)
	assert.Error(t, err)
}

func TestEvalTimeout(t *testing.T) {
	s := NewService()

	_, err := s.Eval(context.Background(), "while(true){}")
	assert.Error(t, err)

	// VM stays usable after an interrupt.
	got, err := s.Eval(context.Background(), "1 + 1")
	require.NoError(t, err)
	assert.Equal(t, 2.0, got)
}

func TestStats(t *testing.T) {
	s := NewService()

	summary, err := s.Stats([]float64{4, 1, 3, 2, 5})
	require.NoError(t, err)
	assert.Equal(t, 5, summary.Count)
	assert.Equal(t, 15.0, summary.Sum)
	assert.Equal(t, 1.0, summary.Min)
	assert.Equal(t, 5.0, summary.Max)
	assert.InDelta(t, 3.0, summary.Mean, 1e-9)
	assert.InDelta(t, 3.0, summary.Median, 1e-9)
	assert.InDelta(t, 1.5811, summary.Stdev, 1e-4)

	_, err = s.Stats(nil)
	assert.ErrorIs(t, err, ErrEmptyDataset)
}

func TestRegisterSingleInstance(t *testing.T) {
	m := wm.NewManager(types.Viewport{Width: 1024, Height: 768}, wm.DefaultConfig())
	reg := registry.New(m, nil)
	require.NoError(t, Register(reg, m))

	win, refocused, err := reg.Open(AppID)
	require.NoError(t, err)
	assert.False(t, refocused)
	assert.Equal(t, "Calculator", win.Title)
	assert.Equal(t, AppID, win.Content["app"])

	_, refocused, err = reg.Open(AppID)
	require.NoError(t, err)
	assert.True(t, refocused)
}
