// Package workers is the bounded, panic-recovering goroutine pool backing
// pkg/actor.Scheduler's background worker loops, built on ants.Pool rather
// than raw go func() calls.
package workers

import (
	"sync/atomic"

	"github.com/panjf2000/ants/v2"
)

const poolSize = 5000

var (
	running    atomic.Int64
	panicCount atomic.Uint64
	pool       *ants.Pool
)

func init() {
	pool, _ = ants.NewPool(poolSize)
}

// Submit runs fn on the shared pool. If fn panics, recoverFn is called with
// the recovered value instead of crashing the pool worker.
func Submit(fn func(), recoverFn func(err interface{})) {
	_ = pool.Submit(func() {
		running.Add(1)
		defer running.Add(-1)
		Try(fn, recoverFn)
	})
}

// Try runs fn, recovering a panic into reFn if it escapes.
func Try(fn func(), reFn func(err interface{})) {
	defer func() {
		if err := recover(); err != nil {
			panicCount.Add(1)
			if reFn != nil {
				reFn(err)
			}
		}
	}()
	fn()
}
