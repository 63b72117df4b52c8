package actor

import (
	"github.com/duke-git/lancet/v2/maputil"

	"github.com/Je06jm/CrowFramework/internal/errs"
)

// Registry is the process-wide directory of live Schedulers, keyed by their
// Attribute. It is the outermost lock tier: a Scheduler never calls into the
// Registry while holding its own groupsMu.
type Registry struct {
	schedulers *maputil.ConcurrentMap[Attribute, *Scheduler]
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{schedulers: maputil.NewConcurrentMap[Attribute, *Scheduler](8)}
}

// register binds attr to s, failing with ErrAttributeTaken if attr is
// already bound to a different scheduler. GetOrSet makes the bind atomic, so
// two schedulers racing on the same Attribute cannot both win.
func (r *Registry) register(attr Attribute, s *Scheduler) error {
	if _, taken := r.schedulers.GetOrSet(attr, s); taken {
		return errs.ErrRegisterScheduler(attr, ErrAttributeTaken)
	}
	return nil
}

func (r *Registry) unregister(attr Attribute) {
	r.schedulers.Delete(attr)
}

// Lookup returns the scheduler bound to attr, if any.
func (r *Registry) Lookup(attr Attribute) (*Scheduler, bool) {
	return r.schedulers.Get(attr)
}

// Count returns the number of schedulers currently registered.
func (r *Registry) Count() int {
	n := 0
	r.schedulers.Range(func(_ Attribute, _ *Scheduler) bool {
		n++
		return true
	})
	return n
}
