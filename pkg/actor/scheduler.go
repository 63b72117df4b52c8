// Package actor is a typed actor scheduler: messages of arbitrary
// user-defined types are dispatched to registered actor instances and
// processed concurrently across a bounded worker pool, with a named
// registry of independent schedulers actors use to route work between
// concurrency domains.
package actor

import (
	"reflect"
	"runtime"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/Je06jm/CrowFramework/pkg/glog"
	"github.com/Je06jm/CrowFramework/pkg/utils/workers"
)

// Scheduler owns a keyed map of TypeGroups, a bounded worker pool, and a
// running flag. One Scheduler is bound to exactly one Attribute for its
// lifetime, tracked in a Registry.
type Scheduler struct {
	attribute Attribute
	registry  *Registry
	ctx       *Context

	groupsMu sync.RWMutex
	groups   map[reflect.Type]group
	order    []reflect.Type

	workerCount int
	hasPool     bool
	running     atomic.Bool
	wg          sync.WaitGroup
}

// NewScheduler registers attr in r and starts workerCount-1 background
// workers (the caller's own thread is always counted as the last worker,
// co-opted only when it calls Run). Fails with
// ErrAttributeTaken if attr is already bound.
func NewScheduler(r *Registry, attr Attribute, workerCount int) (*Scheduler, error) {
	if workerCount < 1 {
		workerCount = 1
	}
	s := &Scheduler{
		attribute:   attr,
		registry:    r,
		groups:      make(map[reflect.Type]group),
		workerCount: workerCount,
	}
	s.ctx = &Context{scheduler: s, registry: r}
	s.running.Store(true)

	if err := r.register(attr, s); err != nil {
		return nil, err
	}

	if background := workerCount - 1; background > 0 {
		s.hasPool = true
		for i := 0; i < background; i++ {
			s.wg.Add(1)
			workers.Submit(s.workerLoop, func(err interface{}) {
				glog.Error("actor: background worker panicked", zap.Any("panic", err))
			})
		}
	}
	return s, nil
}

// Attribute returns the Attribute this scheduler is bound to.
func (s *Scheduler) Attribute() Attribute { return s.attribute }

func (s *Scheduler) typeKey(t reflect.Type) (group, bool) {
	s.groupsMu.RLock()
	defer s.groupsMu.RUnlock()
	g, ok := s.groups[t]
	return g, ok
}

func (s *Scheduler) getOrCreateGroup(t reflect.Type, factory func() group) group {
	if g, ok := s.typeKey(t); ok {
		return g
	}
	s.groupsMu.Lock()
	defer s.groupsMu.Unlock()
	if g, ok := s.groups[t]; ok {
		return g
	}
	g := factory()
	s.groups[t] = g
	s.order = append(s.order, t)
	return g
}

func (s *Scheduler) orderedGroups() []group {
	s.groupsMu.RLock()
	defer s.groupsMu.RUnlock()
	out := make([]group, len(s.order))
	for i, t := range s.order {
		out[i] = s.groups[t]
	}
	return out
}

func (s *Scheduler) workerLoop() {
	defer s.wg.Done()
	for s.running.Load() {
		if s.processOnePass(false) {
			continue
		}
		runtime.Gosched()
	}
}

// processOnePass attempts one message across all eligible groups, in
// insertion order. When includeMainLane is false, main-lane groups are
// skipped entirely (background workers never touch them).
func (s *Scheduler) processOnePass(includeMainLane bool) bool {
	groups := s.orderedGroups()
	if includeMainLane {
		for _, g := range groups {
			if g.mainLane() && g.tryProcessOne(s.ctx) {
				return true
			}
		}
	}
	for _, g := range groups {
		if g.mainLane() {
			continue
		}
		if g.tryProcessOne(s.ctx) {
			return true
		}
	}
	return false
}

// Run co-opts the calling goroutine as a worker. It tries main-lane groups
// first, then general-lane groups. If untilEmpty, it returns the first time
// a full pass finds no work; otherwise it loops, yielding when idle, until
// Stop is called.
func (s *Scheduler) Run(untilEmpty bool) {
	for s.running.Load() {
		if s.processOnePass(true) {
			continue
		}
		if untilEmpty {
			return
		}
		runtime.Gosched()
	}
}

// BlockUntilEmpty spins, yielding, while any group reports pending
// messages or a handler still running. It does not itself process work — it relies on background
// workers (or a concurrent Run caller) draining the scheduler. Returns once
// idle or stopped; this scheduler's idleness is local and does not observe
// messages a handler forwarded into a sibling scheduler.
func (s *Scheduler) BlockUntilEmpty() {
	for s.running.Load() {
		empty := true
		for _, g := range s.orderedGroups() {
			if g.hasMessages() {
				empty = false
				break
			}
		}
		if empty {
			return
		}
		runtime.Gosched()
	}
}

// Stop sets running to false, removes the scheduler from its Registry, then
// joins every background worker. No new TypeGroups are created once this
// has begun.
func (s *Scheduler) Stop() {
	if !s.running.CompareAndSwap(true, false) {
		return
	}
	s.registry.unregister(s.attribute)
	if s.hasPool {
		s.wg.Wait()
	}
}

func (s *Scheduler) checkRunning() error {
	if !s.running.Load() {
		return ErrSchedulerStopped
	}
	return nil
}

// messageType returns the reflect.Type token identifying M, stable across
// calls for a given M regardless of the value passed.
func messageType[M any]() reflect.Type {
	return reflect.TypeOf((*M)(nil)).Elem()
}

// Spawn creates a new actor of message type M on s, running handler for
// every message routed to it. opts configure lane placement and lifecycle
// hooks.
func Spawn[M any](s *Scheduler, handler Handler[M], opts ...ActorOption) (*ActorRef[M], error) {
	if err := s.checkRunning(); err != nil {
		return nil, err
	}
	o := buildActorOptions(opts)
	t := messageType[M]()
	g := s.getOrCreateGroup(t, func() group { return newTypeGroup[M](o.mainThreadOnly) })
	tg, ok := g.(*typeGroup[M])
	if !ok {
		return nil, errMessageTypeMismatch
	}
	h := tg.spawn(handler, o.onStop)
	if o.onInit != nil {
		if err := o.onInit(s.ctx); err != nil {
			return nil, err
		}
	}
	return &ActorRef[M]{h: h}, nil
}

// Send routes msg to one live actor of type M on s. Returns ErrNoHandler if
// no actor of that type was ever spawned on s, ErrNoReceiver if every such
// actor is currently draining or the group has none left.
func Send[M any](s *Scheduler, msg M) error {
	if err := s.checkRunning(); err != nil {
		return err
	}
	t := messageType[M]()
	g, ok := s.typeKey(t)
	if !ok {
		return ErrNoHandler
	}
	return g.receiveAny(msg)
}
