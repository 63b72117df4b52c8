package actor

import (
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/Je06jm/CrowFramework/pkg/glog"
)

// Handler is the user-supplied capability bound to one actor. It is invoked
// with exactly one message at a time, never concurrently with itself.
type Handler[M any] func(ctx *Context, msg M) error

// actorHandle is an Actor<M>: a handler plus its owned mailbox. Two
// independent primitives guard it — mailboxMu for the queue slice itself,
// and processing (a CAS flag) serializing pop-then-handle sequences. They
// are deliberately not the same lock: a handler's self-send needs mailboxMu
// while its own tryProcessOne still holds processing.
type actorHandle[M any] struct {
	handler Handler[M]
	onStop  func(ctx *Context) error

	mailboxMu sync.Mutex
	queue     []M

	draining   atomic.Bool
	processing atomic.Bool
}

func newActorHandle[M any](h Handler[M], onStop func(ctx *Context) error) *actorHandle[M] {
	return &actorHandle[M]{handler: h, onStop: onStop}
}

// receive enqueues msg, refusing once draining has been observed. The
// draining check and the append happen under the same mailboxMu critical
// section that drainLocked uses to swap the queue out — not as two separate
// steps — so a receive can never land in a mailbox that drainLocked has
// already swapped out and finalized. Whichever of the two wins mailboxMu
// first is authoritative: a receive that gets there first is guaranteed to
// be included in drainLocked's swap, and a receive that arrives after
// drainLocked's swap is guaranteed to observe draining==true (queueFree
// always runs before drainLocked is ever invoked for this actor) and is
// rejected instead of being silently stranded.
func (a *actorHandle[M]) receive(msg M) error {
	a.mailboxMu.Lock()
	defer a.mailboxMu.Unlock()
	if a.draining.Load() {
		return errActorDraining
	}
	a.queue = append(a.queue, msg)
	return nil
}

func (a *actorHandle[M]) pop() (M, bool) {
	a.mailboxMu.Lock()
	defer a.mailboxMu.Unlock()
	var zero M
	if len(a.queue) == 0 {
		return zero, false
	}
	m := a.queue[0]
	a.queue = a.queue[1:]
	return m, true
}

func (a *actorHandle[M]) hasMessages() bool {
	a.mailboxMu.Lock()
	defer a.mailboxMu.Unlock()
	return len(a.queue) > 0
}

// queueFree sets draining. Idempotent.
func (a *actorHandle[M]) queueFree() {
	a.draining.Store(true)
}

// tryProcessOne pops and handles at most one message. Returns false without
// popping if the actor is draining, already mid-handler, or empty.
func (a *actorHandle[M]) tryProcessOne(ctx *Context) bool {
	if a.draining.Load() {
		return false
	}
	if !a.processing.CompareAndSwap(false, true) {
		return false
	}
	defer a.processing.Store(false)

	msg, ok := a.pop()
	if !ok {
		return false
	}
	a.invoke(ctx, msg)
	return true
}

func (a *actorHandle[M]) invoke(ctx *Context, msg M) {
	defer func() {
		if r := recover(); r != nil {
			glog.Error("actor handler panic", zap.Any("panic", r), zap.Stack("stack"))
		}
	}()
	if err := a.handler(ctx, msg); err != nil {
		glog.Error("actor handler returned error", zap.Error(err))
	}
}

// drainLocked takes the CAS flag exclusively and, on success, drains the
// remaining queue into dst and leaves processing permanently true — the
// actor is now dead. Returns false if a handler is currently in flight (or
// the actor is already dead); the caller should retry on a later pass.
func (a *actorHandle[M]) drainLocked(ctx *Context, dst *typeGroup[M]) bool {
	if !a.processing.CompareAndSwap(false, true) {
		return false
	}

	a.mailboxMu.Lock()
	pending := a.queue
	a.queue = nil
	a.mailboxMu.Unlock()

	dropped := 0
	for _, msg := range pending {
		if err := dst.receive(msg); err != nil {
			dropped++
		}
	}
	if dropped > 0 {
		glog.Warn("actor redistribution dropped messages", zap.Int("count", dropped))
	}
	if a.onStop != nil {
		a.runOnStop(ctx)
	}
	return true
}

func (a *actorHandle[M]) runOnStop(ctx *Context) {
	defer func() {
		if r := recover(); r != nil {
			glog.Error("actor OnStop panic", zap.Any("panic", r), zap.Stack("stack"))
		}
	}()
	if err := a.onStop(ctx); err != nil {
		glog.Error("actor OnStop returned error", zap.Error(err))
	}
}

// ActorRef is the external handle returned by Spawn. It lets the caller — or
// a handler closure capturing its own ref — request that the actor drain
// and free itself.
type ActorRef[M any] struct {
	h *actorHandle[M]
}

// QueueFree marks the actor draining: it stops accepting new messages and,
// once no handler call is in flight, its residual mailbox is redistributed
// to sibling actors of the same type.
func (r *ActorRef[M]) QueueFree() { r.h.queueFree() }

// HasMessages reports whether the actor's mailbox is currently non-empty.
func (r *ActorRef[M]) HasMessages() bool { return r.h.hasMessages() }
