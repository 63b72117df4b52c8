package actor

import (
	"fmt"
	"sync/atomic"
)

var nextAttributeID atomic.Uint32

// Attribute is a process-wide unique tag used to label Schedulers and to
// classify actor lanes. Two Attributes minted with the same name still
// compare unequal; the name is for diagnostics only.
type Attribute struct {
	id   uint32
	name string
}

// NewAttribute reserves the next id and binds it to name.
func NewAttribute(name string) Attribute {
	return Attribute{id: nextAttributeID.Add(1), name: name}
}

func (a Attribute) ID() uint32     { return a.id }
func (a Attribute) Name() string   { return a.name }
func (a Attribute) String() string { return fmt.Sprintf("%s#%d", a.name, a.id) }

// Well-known Attributes predefined by the runtime.
var (
	SchedulerRegular     = NewAttribute("SCHEDULER_REGULAR")
	SchedulerRendering   = NewAttribute("SCHEDULER_RENDERING")
	SchedulerNonCritical = NewAttribute("SCHEDULER_NON_CRITICAL")
)
