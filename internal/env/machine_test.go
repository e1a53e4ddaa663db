package env

import (
	"testing"

	"github.com/felixgeelhaar/statekit"
)

func TestNewEpisodeMachine(t *testing.T) {
	t.Parallel()

	machine, err := newEpisodeMachine()
	if err != nil {
		t.Fatalf("newEpisodeMachine() error = %v", err)
	}
	if machine == nil {
		t.Fatal("newEpisodeMachine() returned nil machine")
	}
}

func TestRecordTermination(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		payload any
		want    TerminalReason
	}{
		{"wall", ReasonWall, ReasonWall},
		{"board full", ReasonBoardFull, ReasonBoardFull},
		{"missing payload", nil, ReasonUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e := &Engine{info: make(map[string]string)}
			recordTermination(&e, statekit.Event{Type: eventTerminate, Payload: tt.payload})

			if e.reason != tt.want {
				t.Errorf("reason = %s, want %s", e.reason, tt.want)
			}
			if e.info["reason"] != tt.want.String() {
				t.Errorf("info[reason] = %q, want %q", e.info["reason"], tt.want.String())
			}
		})
	}
}

func TestRecordTerminationNilContext(t *testing.T) {
	t.Parallel()

	recordTermination(nil, statekit.Event{Type: eventTerminate})
	var e *Engine
	recordTermination(&e, statekit.Event{Type: eventTerminate})
}

func TestMachineDrivesDone(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, DefaultOptions())
	if !e.interp.Matches(stateRunning) {
		t.Fatal("fresh episode is not running")
	}
	e.terminate(ReasonStepCap)
	if !e.Done() || !e.interp.Matches(stateTerminated) {
		t.Fatal("terminate did not reach the final state")
	}
	if e.Reason() != ReasonStepCap {
		t.Errorf("Reason() = %s, want step_cap", e.Reason())
	}
}
