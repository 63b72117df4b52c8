package actor

import (
	"math/rand"
	"sync"

	"golang.org/x/exp/slices"
)

// group is the type-erased face of a typeGroup[M], so a Scheduler can hold
// one heterogeneous map keyed by message type without Go generics on the
// Scheduler itself (Go has no generic methods on non-generic receivers).
type group interface {
	receiveAny(msg interface{}) error
	tryProcessOne(ctx *Context) bool
	hasMessages() bool
	hasActors() bool
	mainLane() bool
}

// typeGroup is a TypeGroup: the collection of every live actor of one
// concrete message type M inside a single scheduler.
type typeGroup[M any] struct {
	mu             sync.Mutex
	actors         []*actorHandle[M]
	mainThreadOnly bool
}

func newTypeGroup[M any](mainThreadOnly bool) *typeGroup[M] {
	return &typeGroup[M]{mainThreadOnly: mainThreadOnly}
}

var _ group = (*typeGroup[int])(nil)

func (g *typeGroup[M]) spawn(h Handler[M], onStop func(ctx *Context) error) *actorHandle[M] {
	a := newActorHandle(h, onStop)
	g.mu.Lock()
	g.actors = append(g.actors, a)
	g.mu.Unlock()
	return a
}

// receive routes msg to one live actor. Selection starts at a uniform random
// index and scans forward, so a message is delivered to the first accepting
// actor encountered rather than failing outright if the randomly chosen slot
// happens to be draining.
func (g *typeGroup[M]) receive(msg M) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	n := len(g.actors)
	if n == 0 {
		return ErrNoReceiver
	}
	start := rand.Intn(n)
	for i := 0; i < n; i++ {
		a := g.actors[(start+i)%n]
		if err := a.receive(msg); err == nil {
			return nil
		}
	}
	return ErrNoReceiver
}

func (g *typeGroup[M]) receiveAny(msg interface{}) error {
	m, ok := msg.(M)
	if !ok {
		return errMessageTypeMismatch
	}
	return g.receive(m)
}

// tryProcessOne iterates actors in insertion order (lowest index wins),
// handling at most one message for the first actor able to provide one.
// Draining actors are never handled here; they are instead offered to
// drainLocked, which finalizes them once no handler is in flight, and are
// then dropped from the group by removeIfAbsent.
func (g *typeGroup[M]) tryProcessOne(ctx *Context) bool {
	snapshot := g.snapshot()
	for _, a := range snapshot {
		if a.draining.Load() {
			if a.drainLocked(ctx, g) {
				g.removeIfAbsent(a)
			}
			continue
		}
		if a.tryProcessOne(ctx) {
			return true
		}
	}
	return false
}

func (g *typeGroup[M]) snapshot() []*actorHandle[M] {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]*actorHandle[M], len(g.actors))
	copy(out, g.actors)
	return out
}

// removeIfAbsent drops a from the live list. Safe to call repeatedly: a
// second caller racing the same drained actor simply finds it already gone.
func (g *typeGroup[M]) removeIfAbsent(a *actorHandle[M]) {
	g.mu.Lock()
	defer g.mu.Unlock()
	idx := slices.IndexFunc(g.actors, func(x *actorHandle[M]) bool { return x == a })
	if idx < 0 {
		return
	}
	g.actors = slices.Delete(g.actors, idx, idx+1)
}

// hasMessages reports whether any actor has queued messages or holds its
// processing flag (a handler or a drain is still in flight).
func (g *typeGroup[M]) hasMessages() bool {
	for _, a := range g.snapshot() {
		if a.hasMessages() || a.processing.Load() {
			return true
		}
	}
	return false
}

func (g *typeGroup[M]) hasActors() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.actors) > 0
}

func (g *typeGroup[M]) mainLane() bool { return g.mainThreadOnly }
