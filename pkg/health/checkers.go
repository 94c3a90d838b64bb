package health

import (
	"context"
	"runtime"

	"github.com/go-faster/errors"
)

// GoroutineCountCheck returns a CheckFunc that fails when the number of
// goroutines exceeds threshold. Useful as a liveness check for leaks.
func GoroutineCountCheck(threshold int) CheckFunc {
	return func(_ context.Context) error {
		if count := runtime.NumGoroutine(); count > threshold {
			return errors.Errorf("goroutine count %d exceeds threshold %d", count, threshold)
		}
		return nil
	}
}

// InvariantCheck adapts a state-invariant scan (such as the store's stock
// bound check) into a readiness CheckFunc.
func InvariantCheck(scan func() error) CheckFunc {
	return func(_ context.Context) error {
		return scan()
	}
}
