package actor

// ActorOption configures a single Spawn call.
type ActorOption func(*actorOptions)

type actorOptions struct {
	mainThreadOnly bool
	onInit         func(ctx *Context) error
	onStop         func(ctx *Context) error
}

func buildActorOptions(opts []ActorOption) actorOptions {
	var o actorOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// MainThreadOnly places the spawned actor's TypeGroup in the main lane: only
// the goroutine calling Scheduler.Run ever processes its messages, never a
// background worker. The lane is fixed by the first Spawn for a message type;
// on a later Spawn into an existing TypeGroup this option has no effect.
func MainThreadOnly() ActorOption {
	return func(o *actorOptions) { o.mainThreadOnly = true }
}

// WithOnInit registers a hook run once, synchronously, right after Spawn
// constructs the actor.
func WithOnInit(fn func(ctx *Context) error) ActorOption {
	return func(o *actorOptions) { o.onInit = fn }
}

// WithOnStop registers a hook run once the actor has fully drained, after
// QueueFree and before it is removed from its TypeGroup.
func WithOnStop(fn func(ctx *Context) error) ActorOption {
	return func(o *actorOptions) { o.onStop = fn }
}
