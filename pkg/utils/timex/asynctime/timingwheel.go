// Package asynctime exposes a single shared timing wheel for scheduling
// delayed callbacks, so a component that needs to schedule many delayed
// sends (e.g. pkg/actor.AfterSend) doesn't pay for one time.Timer each.
package asynctime

import (
	"time"

	"github.com/RussellLuo/timingwheel"
)

// tickInterval bounds delayed-send precision to 10ms, which is well under
// the scheduling granularity of anything built on top of pkg/actor.
const tickInterval = 10 * time.Millisecond

const wheelSize = 3600

var wheel = timingwheel.NewTimingWheel(tickInterval, wheelSize)

func init() {
	wheel.Start()
}

// AfterFunc schedules f to run after d elapses. The returned Timer can be
// stopped before it fires.
func AfterFunc(d time.Duration, f func()) *timingwheel.Timer {
	return wheel.AfterFunc(d, f)
}
