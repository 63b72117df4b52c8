package actor

// Context is handed to every Handler invocation. It carries back-references
// to the owning Scheduler and the process Registry, so a handler can look up
// a sibling scheduler and Send into it without the scheduler or actor types
// themselves needing a pointer back to their caller — breaking the cyclic
// reference that a naive "actor points at its scheduler, scheduler points at
// its actors" design would otherwise require.
type Context struct {
	scheduler *Scheduler
	registry  *Registry
}

// Scheduler returns the scheduler this handler invocation is running on.
func (c *Context) Scheduler() *Scheduler { return c.scheduler }

// Registry returns the process-wide scheduler directory.
func (c *Context) Registry() *Registry { return c.registry }

// Lookup is a convenience wrapper for c.Registry().Lookup(attr).
func (c *Context) Lookup(attr Attribute) (*Scheduler, bool) {
	return c.registry.Lookup(attr)
}
