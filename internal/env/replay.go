package env

import "fmt"

// Replay stores a deterministic action trace for playback.
// Traces live in memory only.
type Replay struct {
	Options    Options
	Actions    []Action
	FinalStats EpisodeStats
}

// NewReplay creates a recorder for an episode started with opts
func NewReplay(opts Options) *Replay {
	return &Replay{
		Options: opts,
		Actions: make([]Action, 0, 256),
	}
}

// Record adds an action to the replay
func (r *Replay) Record(action Action) {
	r.Actions = append(r.Actions, action)
}

// SetFinalStats sets the final episode statistics
func (r *Replay) SetFinalStats(stats EpisodeStats) {
	r.FinalStats = stats
}

// Playback recreates the engine the replay was recorded on
func (r *Replay) Playback() (*Engine, error) {
	return NewEngine(r.Options)
}

// PlaybackStep replays the first step actions onto e, stopping early if the
// episode ends.
func (r *Replay) PlaybackStep(e *Engine, step int) error {
	if step > len(r.Actions) {
		step = len(r.Actions)
	}
	for i := 0; i < step && !e.Done(); i++ {
		if _, err := e.Step(r.Actions[i]); err != nil {
			return fmt.Errorf("replay step %d: %w", i, err)
		}
	}
	return nil
}
