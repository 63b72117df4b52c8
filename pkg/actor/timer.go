package actor

import (
	"time"

	"github.com/RussellLuo/timingwheel"

	"github.com/Je06jm/CrowFramework/pkg/utils/timex/asynctime"
)

// AfterSend schedules msg to be routed to s's TypeGroup for M after d
// elapses, using the shared timing wheel rather than one timer.Timer per
// pending send. The returned Timer can be used to cancel delivery before it
// fires.
func AfterSend[M any](s *Scheduler, d time.Duration, msg M) *timingwheel.Timer {
	return asynctime.AfterFunc(d, func() {
		_ = Send(s, msg)
	})
}
