package metrics

import "time"

// Transition names a session state change for counters.
type Transition string

const (
	TransitionStart   Transition = "start"
	TransitionStop    Transition = "stop"
	TransitionDenied  Transition = "denied"
	TransitionExpired Transition = "expired"
	TransitionHealed  Transition = "healed"
)

// Recorder receives session observations. Implementations may forward to
// Prometheus; NoopRecorder is the default when metrics are not configured.
type Recorder interface {
	IncTransition(t Transition)
	SetSession(active bool, remaining time.Duration)
	SetBlockedSites(n int)
	IncHookFailure(hook string)
}

type NoopRecorder struct{}

func (NoopRecorder) IncTransition(Transition) {}
func (NoopRecorder) SetSession(bool, time.Duration) {}
func (NoopRecorder) SetBlockedSites(int) {}
func (NoopRecorder) IncHookFailure(string) {}
