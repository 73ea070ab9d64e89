package shared

import (
	"context"
	"sync"

	"github.com/spf13/pflag"
)

// HasFlags reports whether any flag in the set was explicitly set.
func HasFlags(flags *pflag.FlagSet) bool {
	return flags.NFlag() > 0
}

// IsInList reports whether value is one of list.
func IsInList(value string, list []string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}

func ForEveryWithBoundedGoroutines[T any](limit int, values []T, f func(i int, value T)) {
	if limit < 1 {
		limit = 1
	}
	guard := make(chan struct{}, limit)
	var wg sync.WaitGroup
	for i, value := range values {
		guard <- struct{}{} // would block if guard channel is already filled
		wg.Add(1)
		go func(i int, value T) {
			defer wg.Done()
			f(i, value)
			<-guard
		}(i, value)
	}
	wg.Wait()
}

// ForEveryWithBoundedGoroutinesCtx is the cancellable variant: once ctx is
// done it stops dispatching new values, waits for in-flight calls to finish,
// and returns how many values were dispatched. Dispatch happens in slice
// order, so the dispatched values are always a prefix of the input.
func ForEveryWithBoundedGoroutinesCtx[T any](ctx context.Context, limit int, values []T, f func(i int, value T)) int {
	if limit < 1 {
		limit = 1
	}
	guard := make(chan struct{}, limit)
	var wg sync.WaitGroup
	dispatched := 0
	for i, value := range values {
		if ctx.Err() != nil {
			break
		}
		guard <- struct{}{}
		wg.Add(1)
		dispatched++
		go func(i int, value T) {
			defer wg.Done()
			f(i, value)
			<-guard
		}(i, value)
	}
	wg.Wait()
	return dispatched
}
