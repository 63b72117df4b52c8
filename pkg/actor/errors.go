package actor

import "errors"

// Public error kinds. Send/Spawn/NewScheduler return these (NewScheduler
// wraps ErrAttributeTaken with context) so callers can compare with
// errors.Is.
var (
	// ErrNoHandler is returned by Send when no actor type was ever spawned
	// for the message's type in the target scheduler.
	ErrNoHandler = errors.New("actor: no handler registered for message type")
	// ErrNoReceiver is returned by Send when a TypeGroup exists for the
	// message type but currently has zero live, accepting actors.
	ErrNoReceiver = errors.New("actor: type group has no live receiver")
	// ErrAttributeTaken is returned by NewScheduler when attr is already
	// bound to another scheduler in the Registry. Fatal to construction.
	ErrAttributeTaken = errors.New("actor: attribute already registered")
	// ErrSchedulerStopped is returned by Send/Spawn once Stop has been called.
	ErrSchedulerStopped = errors.New("actor: scheduler is stopped")

	// errActorDraining is internal: an actor that has been asked to free
	// itself rejects further enqueues. TypeGroup.receive treats it as a
	// signal to try the next live actor, never surfacing it to callers.
	errActorDraining = errors.New("actor: actor is draining")
	// errMessageTypeMismatch indicates a type-erased group's receiveAny was
	// handed a value of the wrong concrete type — a programmer error, since
	// the scheduler only ever looks a group up by the type it was created
	// with.
	errMessageTypeMismatch = errors.New("actor: message type mismatch")
)
