package actor_test

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Je06jm/CrowFramework/pkg/actor"
)

// TestSingleTypeEcho: a scheduler with two workers and one
// actor on type int must observe sends in FIFO order.
func TestSingleTypeEcho(t *testing.T) {
	reg := actor.NewRegistry()
	s, err := actor.NewScheduler(reg, actor.NewAttribute("s1"), 2)
	if err != nil {
		t.Fatalf("NewScheduler: %v", err)
	}
	defer s.Stop()

	var mu sync.Mutex
	var observed []int

	_, err = actor.Spawn(s, func(ctx *actor.Context, msg int) error {
		mu.Lock()
		observed = append(observed, msg)
		mu.Unlock()
		return nil
	})
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}

	for _, v := range []int{1, 2, 3} {
		if err := actor.Send(s, v); err != nil {
			t.Fatalf("Send(%d): %v", v, err)
		}
	}
	s.BlockUntilEmpty()

	mu.Lock()
	defer mu.Unlock()
	if len(observed) != 3 || observed[0] != 1 || observed[1] != 2 || observed[2] != 3 {
		t.Fatalf("expected [1 2 3], got %v", observed)
	}
}

// TestCrossSchedulerHop: a handler on scheduler a converts its
// message and forwards it into scheduler b, looked up through the shared
// Registry from inside the handler's Context.
func TestCrossSchedulerHop(t *testing.T) {
	reg := actor.NewRegistry()
	a, err := actor.NewScheduler(reg, actor.NewAttribute("a"), 2)
	if err != nil {
		t.Fatalf("NewScheduler(a): %v", err)
	}
	defer a.Stop()
	b, err := actor.NewScheduler(reg, actor.NewAttribute("b"), 2)
	if err != nil {
		t.Fatalf("NewScheduler(b): %v", err)
	}
	defer b.Stop()

	var observed atomic.Value // float64

	if _, err := actor.Spawn(b, func(ctx *actor.Context, msg float64) error {
		observed.Store(msg)
		return nil
	}); err != nil {
		t.Fatalf("Spawn(b): %v", err)
	}

	if _, err := actor.Spawn(a, func(ctx *actor.Context, msg int) error {
		sibling, ok := ctx.Lookup(b.Attribute())
		if !ok {
			t.Errorf("lookup of sibling scheduler failed")
			return nil
		}
		return actor.Send(sibling, float64(msg))
	}); err != nil {
		t.Fatalf("Spawn(a): %v", err)
	}

	if err := actor.Send(a, 7); err != nil {
		t.Fatalf("Send: %v", err)
	}
	a.BlockUntilEmpty()
	b.BlockUntilEmpty()

	got, ok := observed.Load().(float64)
	if !ok || got != 7.0 {
		t.Fatalf("expected 7.0, got %v (ok=%v)", got, ok)
	}
}

// DemoTick is the message type used by the main-thread lane tests.
type DemoTick struct{}

// TestMainThreadLane: a main-thread-only actor is never
// touched by background workers, only by the goroutine that calls Run.
func TestMainThreadLane(t *testing.T) {
	reg := actor.NewRegistry()
	s, err := actor.NewScheduler(reg, actor.NewAttribute("s3"), 4)
	if err != nil {
		t.Fatalf("NewScheduler: %v", err)
	}
	defer s.Stop()

	var count atomic.Int32
	if _, err := actor.Spawn(s, func(ctx *actor.Context, msg DemoTick) error {
		count.Add(1)
		return nil
	}, actor.MainThreadOnly()); err != nil {
		t.Fatalf("Spawn: %v", err)
	}

	for i := 0; i < 5; i++ {
		if err := actor.Send(s, DemoTick{}); err != nil {
			t.Fatalf("Send: %v", err)
		}
	}

	// Background workers exist (3 of them) but must never drain a
	// main-lane group: give them a window to (wrongly) do so before the
	// caller ever invokes Run.
	time.Sleep(20 * time.Millisecond)
	if got := count.Load(); got != 0 {
		t.Fatalf("background workers touched main lane: count=%d before Run", got)
	}

	s.Run(true)

	if got := count.Load(); got != 5 {
		t.Fatalf("expected exactly 5 handler calls, got %d", got)
	}
}

// DemoMessage is the shared message type for the drain/redistribute test.
type DemoMessage struct{ N int }

// TestDrainRedistribute: after one of two actors of the same
// type is asked to free itself, every message ends up delivered exactly
// once, split between the two actors with no duplication and no loss.
func TestDrainRedistribute(t *testing.T) {
	reg := actor.NewRegistry()
	s, err := actor.NewScheduler(reg, actor.NewAttribute("s4"), 4)
	if err != nil {
		t.Fatalf("NewScheduler: %v", err)
	}
	defer s.Stop()

	var countA1, countA2 atomic.Int32

	a1, err := actor.Spawn(s, func(ctx *actor.Context, msg DemoMessage) error {
		countA1.Add(1)
		return nil
	})
	if err != nil {
		t.Fatalf("Spawn(a1): %v", err)
	}
	if _, err := actor.Spawn(s, func(ctx *actor.Context, msg DemoMessage) error {
		countA2.Add(1)
		return nil
	}); err != nil {
		t.Fatalf("Spawn(a2): %v", err)
	}

	const total = 100
	for i := 0; i < total; i++ {
		if err := actor.Send(s, DemoMessage{N: i}); err != nil {
			t.Fatalf("Send(%d): %v", i, err)
		}
	}
	a1.QueueFree()
	s.BlockUntilEmpty()

	sum := countA1.Load() + countA2.Load()
	if sum != total {
		t.Fatalf("expected %d total deliveries, got %d (a1=%d a2=%d)", total, sum, countA1.Load(), countA2.Load())
	}
}

// DemoRaceMessage is the message type used to stress the receive/drain race.
type DemoRaceMessage struct{}

// TestDrainRaceNoMessageLoss hammers QueueFree concurrently with Send across
// many rounds, trying to land a sender's append exactly inside the window
// drainLocked clears and finalizes a mailbox. Every send must still be
// accounted for by one of the two actors; none may vanish without appearing
// in either count.
func TestDrainRaceNoMessageLoss(t *testing.T) {
	const rounds = 200
	const perRound = 50

	for round := 0; round < rounds; round++ {
		reg := actor.NewRegistry()
		s, err := actor.NewScheduler(reg, actor.NewAttribute("race"), 4)
		if err != nil {
			t.Fatalf("NewScheduler: %v", err)
		}

		var countA1, countA2 atomic.Int32
		a1, err := actor.Spawn(s, func(ctx *actor.Context, msg DemoRaceMessage) error {
			countA1.Add(1)
			return nil
		})
		if err != nil {
			t.Fatalf("Spawn(a1): %v", err)
		}
		if _, err := actor.Spawn(s, func(ctx *actor.Context, msg DemoRaceMessage) error {
			countA2.Add(1)
			return nil
		}); err != nil {
			t.Fatalf("Spawn(a2): %v", err)
		}

		var wg sync.WaitGroup
		var sent atomic.Int32
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perRound; i++ {
				if err := actor.Send(s, DemoRaceMessage{}); err == nil {
					sent.Add(1)
				}
			}
		}()
		// QueueFree races against the sender above, aiming squarely at the
		// window between a.draining.Load() and the mailbox append.
		a1.QueueFree()
		wg.Wait()

		s.BlockUntilEmpty()
		s.Stop()

		got := countA1.Load() + countA2.Load()
		if want := sent.Load(); got != want {
			t.Fatalf("round %d: sent %d messages but only %d were delivered (a1=%d a2=%d)", round, want, got, countA1.Load(), countA2.Load())
		}
	}
}

// TestEmptyReceiver: sending a message type with no
// registered actor fails explicitly instead of silently dropping.
func TestEmptyReceiver(t *testing.T) {
	reg := actor.NewRegistry()
	s, err := actor.NewScheduler(reg, actor.NewAttribute("s5"), 1)
	if err != nil {
		t.Fatalf("NewScheduler: %v", err)
	}
	defer s.Stop()

	type Unhandled struct{}
	if err := actor.Send(s, Unhandled{}); err != actor.ErrNoHandler {
		t.Fatalf("expected ErrNoHandler, got %v", err)
	}
}

// TestStopMidRun: Stop returns promptly and in-flight
// handlers are allowed to complete, but queued work beyond that is dropped.
func TestStopMidRun(t *testing.T) {
	reg := actor.NewRegistry()
	s, err := actor.NewScheduler(reg, actor.NewAttribute("s6"), 4)
	if err != nil {
		t.Fatalf("NewScheduler: %v", err)
	}

	var handled atomic.Int32
	if _, err := actor.Spawn(s, func(ctx *actor.Context, msg int) error {
		handled.Add(1)
		time.Sleep(time.Millisecond)
		return nil
	}); err != nil {
		t.Fatalf("Spawn: %v", err)
	}

	for i := 0; i < 1000; i++ {
		_ = actor.Send(s, i)
	}

	time.Sleep(10 * time.Millisecond)

	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Stop did not return within the bounded delay")
	}

	if handled.Load() == 0 {
		t.Fatal("expected at least some messages to have been handled before stop")
	}
	if handled.Load() > 1000 {
		t.Fatalf("handled more messages than were sent: %d", handled.Load())
	}
}

// TestPerActorFIFOStress sends a long run of sequenced messages at a single
// actor under four workers. The actor must still observe them strictly in
// send order.
func TestPerActorFIFOStress(t *testing.T) {
	reg := actor.NewRegistry()
	s, err := actor.NewScheduler(reg, actor.NewAttribute("fifo"), 4)
	if err != nil {
		t.Fatalf("NewScheduler: %v", err)
	}
	defer s.Stop()

	var mu sync.Mutex
	var observed []int

	if _, err := actor.Spawn(s, func(ctx *actor.Context, msg int) error {
		mu.Lock()
		observed = append(observed, msg)
		mu.Unlock()
		return nil
	}); err != nil {
		t.Fatalf("Spawn: %v", err)
	}

	const total = 500
	for i := 0; i < total; i++ {
		if err := actor.Send(s, i); err != nil {
			t.Fatalf("Send(%d): %v", i, err)
		}
	}
	s.BlockUntilEmpty()

	deadline := time.Now().Add(5 * time.Second)
	for {
		mu.Lock()
		n := len(observed)
		mu.Unlock()
		if n == total {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("only %d of %d messages handled", n, total)
		}
		time.Sleep(time.Millisecond)
	}

	mu.Lock()
	defer mu.Unlock()
	for i, v := range observed {
		if v != i {
			t.Fatalf("out-of-order delivery at index %d: got %d", i, v)
		}
	}
}

// TestNoHandlerConcurrencyPerActor: the handler
// of a single actor never runs concurrently with itself, even with several
// workers competing for its mailbox.
func TestNoHandlerConcurrencyPerActor(t *testing.T) {
	reg := actor.NewRegistry()
	s, err := actor.NewScheduler(reg, actor.NewAttribute("serial"), 4)
	if err != nil {
		t.Fatalf("NewScheduler: %v", err)
	}
	defer s.Stop()

	var active, maxActive, handled atomic.Int32

	if _, err := actor.Spawn(s, func(ctx *actor.Context, msg int) error {
		cur := active.Add(1)
		for {
			seen := maxActive.Load()
			if cur <= seen || maxActive.CompareAndSwap(seen, cur) {
				break
			}
		}
		time.Sleep(100 * time.Microsecond)
		active.Add(-1)
		handled.Add(1)
		return nil
	}); err != nil {
		t.Fatalf("Spawn: %v", err)
	}

	const total = 200
	for i := 0; i < total; i++ {
		if err := actor.Send(s, i); err != nil {
			t.Fatalf("Send(%d): %v", i, err)
		}
	}

	deadline := time.Now().Add(5 * time.Second)
	for handled.Load() != total {
		if time.Now().After(deadline) {
			t.Fatalf("only %d of %d messages handled", handled.Load(), total)
		}
		time.Sleep(time.Millisecond)
	}
	if got := maxActive.Load(); got != 1 {
		t.Fatalf("observed %d concurrent handler invocations for one actor", got)
	}
}

// TestSelfSendReentrancy: a handler enqueueing to its own mailbox
// must neither deadlock nor lose the message.
func TestSelfSendReentrancy(t *testing.T) {
	reg := actor.NewRegistry()
	s, err := actor.NewScheduler(reg, actor.NewAttribute("selfsend"), 2)
	if err != nil {
		t.Fatalf("NewScheduler: %v", err)
	}
	defer s.Stop()

	const last = 50
	done := make(chan struct{})
	var mu sync.Mutex
	var observed []int

	if _, err := actor.Spawn(s, func(ctx *actor.Context, msg int) error {
		mu.Lock()
		observed = append(observed, msg)
		mu.Unlock()
		if msg < last {
			return actor.Send(ctx.Scheduler(), msg+1)
		}
		close(done)
		return nil
	}); err != nil {
		t.Fatalf("Spawn: %v", err)
	}

	if err := actor.Send(s, 0); err != nil {
		t.Fatalf("Send: %v", err)
	}

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("self-send chain did not complete; likely deadlocked")
	}

	mu.Lock()
	defer mu.Unlock()
	if len(observed) != last+1 {
		t.Fatalf("expected %d handled messages, got %d", last+1, len(observed))
	}
	for i, v := range observed {
		if v != i {
			t.Fatalf("out-of-order self-send at index %d: got %d", i, v)
		}
	}
}

// DemoSpawned is the message type for the actor created from inside a
// running handler.
type DemoSpawned struct{ N int }

// TestSpawnFromHandler: a handler may
// spawn a new actor on its own scheduler and send to it, all mid-message.
func TestSpawnFromHandler(t *testing.T) {
	reg := actor.NewRegistry()
	s, err := actor.NewScheduler(reg, actor.NewAttribute("respawn"), 2)
	if err != nil {
		t.Fatalf("NewScheduler: %v", err)
	}
	defer s.Stop()

	got := make(chan int, 1)

	if _, err := actor.Spawn(s, func(ctx *actor.Context, msg int) error {
		if _, err := actor.Spawn(ctx.Scheduler(), func(ctx *actor.Context, m DemoSpawned) error {
			got <- m.N
			return nil
		}); err != nil {
			return err
		}
		return actor.Send(ctx.Scheduler(), DemoSpawned{N: msg * 2})
	}); err != nil {
		t.Fatalf("Spawn: %v", err)
	}

	if err := actor.Send(s, 21); err != nil {
		t.Fatalf("Send: %v", err)
	}

	select {
	case n := <-got:
		if n != 42 {
			t.Fatalf("spawned actor observed %d, want 42", n)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("spawned actor never received its message")
	}
}

// TestNoReceiverAfterDrain: once the only actor of a type is draining, Send
// must fail with ErrNoReceiver rather than stranding the message.
func TestNoReceiverAfterDrain(t *testing.T) {
	reg := actor.NewRegistry()
	s, err := actor.NewScheduler(reg, actor.NewAttribute("drained"), 2)
	if err != nil {
		t.Fatalf("NewScheduler: %v", err)
	}
	defer s.Stop()

	ref, err := actor.Spawn(s, func(ctx *actor.Context, msg int) error { return nil })
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	ref.QueueFree()

	if err := actor.Send(s, 1); !errors.Is(err, actor.ErrNoReceiver) {
		t.Fatalf("expected ErrNoReceiver, got %v", err)
	}
}

// TestOnStopHook: the WithOnStop hook runs exactly once, after the drained
// actor's residual mailbox has been dealt with.
func TestOnStopHook(t *testing.T) {
	reg := actor.NewRegistry()
	s, err := actor.NewScheduler(reg, actor.NewAttribute("onstop"), 2)
	if err != nil {
		t.Fatalf("NewScheduler: %v", err)
	}
	defer s.Stop()

	var stops atomic.Int32
	ref, err := actor.Spawn(s, func(ctx *actor.Context, msg int) error { return nil },
		actor.WithOnStop(func(ctx *actor.Context) error {
			stops.Add(1)
			return nil
		}))
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}

	for i := 0; i < 10; i++ {
		_ = actor.Send(s, i)
	}
	ref.QueueFree()
	ref.QueueFree() // idempotent

	deadline := time.Now().Add(5 * time.Second)
	for stops.Load() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("OnStop hook never ran")
		}
		time.Sleep(time.Millisecond)
	}
	time.Sleep(20 * time.Millisecond)
	if got := stops.Load(); got != 1 {
		t.Fatalf("OnStop ran %d times, want exactly once", got)
	}
	if ref.HasMessages() {
		t.Fatal("drained actor retained mailbox messages")
	}
}

// TestRegistryUniqueness: at most one scheduler may be
// bound to a given Attribute at a time.
func TestRegistryUniqueness(t *testing.T) {
	reg := actor.NewRegistry()
	attr := actor.NewAttribute("dup")

	s1, err := actor.NewScheduler(reg, attr, 1)
	if err != nil {
		t.Fatalf("NewScheduler(s1): %v", err)
	}
	defer s1.Stop()

	if _, err := actor.NewScheduler(reg, attr, 1); !errors.Is(err, actor.ErrAttributeTaken) {
		t.Fatalf("expected ErrAttributeTaken, got %v", err)
	}

	if got, ok := reg.Lookup(attr); !ok || got != s1 {
		t.Fatalf("Lookup(%v) = (%v, %v), want (s1, true)", attr, got, ok)
	}
}

// TestAttributeIdentity: two Attributes
// minted with the same name still compare unequal.
func TestAttributeIdentity(t *testing.T) {
	a := actor.NewAttribute("same-name")
	b := actor.NewAttribute("same-name")
	if a == b {
		t.Fatalf("two distinct NewAttribute calls produced equal Attributes: %v", a)
	}
	if a.Name() != b.Name() {
		t.Fatalf("expected equal names, got %q and %q", a.Name(), b.Name())
	}
}
