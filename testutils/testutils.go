// Package testutils creates helper functions for tests
package testutils

import (
	"context"
	"sync"
	"testing"

	"go.viam.com/rdk/components/board"
	"go.viam.com/rdk/resource"
	"go.viam.com/rdk/testutils/inject"
)

// PinStates records the last level driven on each pin of the fake board.
type PinStates struct {
	mu     sync.Mutex
	levels map[string]bool
}

// Level returns the last level set on a pin and whether it was ever set.
func (ps *PinStates) Level(name string) (bool, bool) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	level, ok := ps.levels[name]
	return level, ok
}

// SetCount returns how many distinct pins have been driven.
func (ps *PinStates) SetCount() int {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	return len(ps.levels)
}

// NewBoardTestEnv creates mock board dependencies for testing the filter
// switch, recording every GPIO level set through it.
func NewBoardTestEnv(t *testing.T, boardName string) (resource.Dependencies, *PinStates) {
	t.Helper()
	t.Setenv("VIAM_MODULE_DATA", t.TempDir())

	states := &PinStates{levels: make(map[string]bool)}

	b := &inject.Board{}
	b.GPIOPinByNameFunc = func(name string) (board.GPIOPin, error) {
		pin := &inject.GPIOPin{}
		pin.SetFunc = func(ctx context.Context, high bool, extra map[string]interface{}) error {
			states.mu.Lock()
			defer states.mu.Unlock()
			states.levels[name] = high
			return nil
		}
		return pin, nil
	}

	deps := make(resource.Dependencies)
	deps[board.Named(boardName)] = b
	return deps, states
}
