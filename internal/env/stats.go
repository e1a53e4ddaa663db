package env

import "math"

// TerminalReason indicates how an episode ended
type TerminalReason int

const (
	ReasonNone      TerminalReason = iota
	ReasonWall                     // head entered a wall
	ReasonTail                     // head entered the body
	ReasonBoardFull                // no empty cell left for an apple
	ReasonStepCap                  // step limit reached
	ReasonUnknown
)

func (r TerminalReason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonWall:
		return "wall"
	case ReasonTail:
		return "tail"
	case ReasonBoardFull:
		return "board_full"
	case ReasonStepCap:
		return "step_cap"
	default:
		return "unknown"
	}
}

// EpisodeStats captures the outcome of a single episode
type EpisodeStats struct {
	ID     string         // episode id
	Seed   int64          // seed the engine was created with
	Steps  int            // accepted steps
	Reward int            // apples eaten
	Length int            // final body length
	Reason TerminalReason // how the episode ended
}

// AggregatedStats holds statistics across multiple episodes
type AggregatedStats struct {
	RewardMean   float64
	RewardStd    float64
	RewardMax    int
	StepsMean    float64
	LengthMean   float64
	ReasonCounts map[TerminalReason]int
	NumEpisodes  int
}

// Aggregate computes statistics from multiple episode stats
func Aggregate(episodes []EpisodeStats) AggregatedStats {
	n := len(episodes)
	if n == 0 {
		return AggregatedStats{ReasonCounts: make(map[TerminalReason]int)}
	}

	agg := AggregatedStats{
		ReasonCounts: make(map[TerminalReason]int),
		NumEpisodes:  n,
	}

	var rewardSum, stepsSum, lengthSum float64
	for _, ep := range episodes {
		rewardSum += float64(ep.Reward)
		stepsSum += float64(ep.Steps)
		lengthSum += float64(ep.Length)
		if ep.Reward > agg.RewardMax {
			agg.RewardMax = ep.Reward
		}
		agg.ReasonCounts[ep.Reason]++
	}

	nf := float64(n)
	agg.RewardMean = rewardSum / nf
	agg.StepsMean = stepsSum / nf
	agg.LengthMean = lengthSum / nf

	var variance float64
	for _, ep := range episodes {
		diff := float64(ep.Reward) - agg.RewardMean
		variance += diff * diff
	}
	agg.RewardStd = math.Sqrt(variance / nf)

	return agg
}

// RobustnessScore computes mean - lambda * std of the reward
func (a AggregatedStats) RobustnessScore(lambda float64) float64 {
	return a.RewardMean - lambda*a.RewardStd
}
