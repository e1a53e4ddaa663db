package env

import "github.com/felixgeelhaar/statekit"

const (
	stateRunning    statekit.StateID = "running"
	stateTerminated statekit.StateID = "terminated"

	eventTerminate statekit.EventType = "TERMINATE"
)

// newEpisodeMachine builds the two-state episode chart. Terminated is final.
func newEpisodeMachine() (*statekit.MachineConfig[*Engine], error) {
	return statekit.NewMachine[*Engine]("episode").
		WithInitial(stateRunning).
		WithContext(&Engine{}).
		WithAction("recordTermination", recordTermination).
		State(stateRunning).
		On(eventTerminate).Target(stateTerminated).Do("recordTermination").
		Done().
		State(stateTerminated).
		Final().
		Done().
		Build()
}

// recordTermination stores the terminal reason carried by the event
func recordTermination(ctx **Engine, event statekit.Event) {
	if ctx == nil || *ctx == nil {
		return
	}
	e := *ctx

	reason, ok := event.Payload.(TerminalReason)
	if !ok {
		reason = ReasonUnknown
	}
	e.reason = reason
	e.info["reason"] = reason.String()
}
