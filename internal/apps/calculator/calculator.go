// Package calculator provides the desktop calculator application:
// sandboxed expression evaluation plus list statistics.
package calculator

import (
	"context"
	"errors"
	"fmt"
	gomath "math"
	"sort"
	"sync"
	"time"

	"github.com/dop251/goja"
	"gonum.org/v1/gonum/stat"

	"github.com/glasspane/webtop/internal/domain/registry"
	"github.com/glasspane/webtop/internal/shared/types"
)

// AppID is the calculator's registry identifier.
const AppID = "calculator"

// DefaultTimeout bounds a single expression evaluation.
const DefaultTimeout = 100 * time.Millisecond

var (
	// ErrEmptyExpression is returned for blank input.
	ErrEmptyExpression = errors.New("expression is empty")
	// ErrEmptyDataset is returned when a stats request carries no numbers.
	ErrEmptyDataset = errors.New("dataset is empty")
)

// Service evaluates arithmetic expressions in a sandboxed VM and
// computes statistics over number lists.
type Service struct {
	mu      sync.Mutex
	vm      *goja.Runtime
	timeout time.Duration
}

// NewService creates a calculator service with a fresh VM.
func NewService() *Service {
	s := &Service{
		vm:      goja.New(),
		timeout: DefaultTimeout,
	}
	s.setupGlobals()
	return s
}

// setupGlobals strips everything but Math from the VM so expressions
// cannot reach host facilities.
func (s *Service) setupGlobals() {
	for _, name := range []string{"eval", "Function", "globalThis"} {
		_ = s.vm.Set(name, goja.Undefined())
	}
}

// Eval runs an arithmetic expression with a hard timeout and returns
// its numeric result.
func (s *Service) Eval(ctx context.Context, expression string) (float64, error) {
	if expression == "" {
		return 0, ErrEmptyExpression
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	timer := time.NewTimer(s.timeout)
	defer timer.Stop()
	done := make(chan struct{})
	go func() {
		select {
		case <-timer.C:
			s.vm.Interrupt("evaluation timeout exceeded")
		case <-ctx.Done():
			s.vm.Interrupt("context cancelled")
		case <-done:
		}
	}()

	val, err := s.vm.RunString(expression)
	close(done)
	s.vm.ClearInterrupt()
	if err != nil {
		return 0, fmt.Errorf("evaluate expression: %w", err)
	}

	result := val.ToFloat()
	if gomath.IsNaN(result) {
		return 0, fmt.Errorf("expression %q did not produce a number", expression)
	}
	return result, nil
}

// Summary holds descriptive statistics for a dataset.
type Summary struct {
	Count  int     `json:"count"`
	Sum    float64 `json:"sum"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Stdev  float64 `json:"stdev"`
}

// Stats computes descriptive statistics over a number list.
func (s *Service) Stats(numbers []float64) (*Summary, error) {
	if len(numbers) == 0 {
		return nil, ErrEmptyDataset
	}

	sorted := append([]float64(nil), numbers...)
	sort.Float64s(sorted)

	sum := 0.0
	for _, n := range sorted {
		sum += n
	}

	summary := &Summary{
		Count:  len(sorted),
		Sum:    sum,
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		Mean:   stat.Mean(sorted, nil),
		Median: stat.Quantile(0.5, stat.Empirical, sorted, nil),
	}
	if len(sorted) > 1 {
		summary.Stdev = gomath.Sqrt(stat.Variance(sorted, nil))
	}
	return summary, nil
}

// Register adds the calculator to the app registry as a
// single-instance application.
func Register(reg *registry.Registry, windows registry.WindowCreator) error {
	return reg.Register(&types.Registration{
		ID:             AppID,
		Name:           "Calculator",
		Icon:           "calculator.png",
		Category:       "utilities",
		SingleInstance: true,
		Launch: func() (*types.Window, error) {
			content := map[string]interface{}{
				"app":     AppID,
				"display": "0",
			}
			return windows.Create("Calculator", content, 320, 480), nil
		},
	})
}
