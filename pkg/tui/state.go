// ABOUTME: Run state of an App: Idle, Running, Stopping, Stopped
// ABOUTME: Transitions only move forward; Stopped is terminal

package tui

// State is the lifecycle position of an App.
type State int32

const (
	StateIdle     State = iota // constructed, Run not called
	StateRunning               // loop active
	StateStopping              // stop requested; the current iteration finishes
	StateStopped               // loop exited or App closed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateStopping:
		return "stopping"
	case StateStopped:
		return "stopped"
	}
	return "unknown"
}
