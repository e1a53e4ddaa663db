// Package eval runs policies over many seeded episodes.
package eval

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/felixgeelhaar/bolt/v3"

	"snakegym/internal/config"
	"snakegym/internal/env"
	"snakegym/internal/logging"
	"snakegym/internal/policy"
)

// hardStepLimit bounds episodes whose config leaves max_steps unlimited,
// since scripted policies can circle forever.
const hardStepLimit = 100000

// Evaluator handles episode evaluation across seeds
type Evaluator struct {
	cfg     *config.Config
	log     *bolt.Logger
	workers int
}

// NewEvaluator creates a new evaluator
func NewEvaluator(cfg *config.Config, log *bolt.Logger) *Evaluator {
	workers := cfg.Run.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if log == nil {
		log = logging.Get()
	}

	return &Evaluator{
		cfg:     cfg,
		log:     log,
		workers: workers,
	}
}

// RunEpisode plays one episode of the configured policy with the given seed
func (e *Evaluator) RunEpisode(ctx context.Context, seed int64) (env.EpisodeStats, error) {
	replay, err := e.RunWithReplay(ctx, seed)
	if err != nil {
		return env.EpisodeStats{}, err
	}
	return replay.FinalStats, nil
}

// RunWithReplay plays one episode and records its actions
func (e *Evaluator) RunWithReplay(ctx context.Context, seed int64) (*env.Replay, error) {
	opts := e.cfg.EnvOptions(seed)
	if opts.MaxSteps == 0 {
		opts.MaxSteps = hardStepLimit
	}

	engine, err := env.NewEngine(opts)
	if err != nil {
		return nil, fmt.Errorf("seed %d: %w", seed, err)
	}
	p, err := policy.ByName(e.cfg.Run.Policy, seed)
	if err != nil {
		return nil, err
	}

	replay := env.NewReplay(opts)
	for !engine.Done() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		action := p.Act(engine)
		replay.Record(action)
		if _, err := engine.Step(action); err != nil {
			return nil, fmt.Errorf("seed %d step %d: %w", seed, engine.Steps(), err)
		}
	}

	stats := engine.Stats()
	replay.SetFinalStats(stats)

	logging.NewEvent(e.log.Debug()).
		Add(logging.Component("eval"), logging.Policy(p.Name()), logging.Stats(stats)).
		Msg("episode finished")

	return replay, nil
}

// RunSeeds evaluates the policy on every seed using the worker pool.
// Results are returned in seed order. Cancelling ctx stops new episodes
// from starting.
func (e *Evaluator) RunSeeds(ctx context.Context, seeds []int64) ([]env.EpisodeStats, error) {
	episodes := make([]env.EpisodeStats, len(seeds))
	errs := make([]error, len(seeds))

	var wg sync.WaitGroup
	sem := make(chan struct{}, e.workers)

	for i, seed := range seeds {
		if err := ctx.Err(); err != nil {
			wg.Wait()
			return nil, err
		}
		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
			wg.Wait()
			return nil, ctx.Err()
		}

		wg.Add(1)
		go func(i int, seed int64) {
			defer wg.Done()
			defer func() { <-sem }()
			episodes[i], errs[i] = e.RunEpisode(ctx, seed)
			if errs[i] != nil {
				logging.NewEvent(e.log.Error()).
					Add(logging.Component("eval"), logging.Seed(seed), logging.ErrorField(errs[i])).
					Msg("episode failed")
			}
		}(i, seed)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return episodes, nil
}

// Benchmark runs n episodes on consecutive seeds from the config seed and
// logs the aggregate
func (e *Evaluator) Benchmark(ctx context.Context, n int) (env.AggregatedStats, error) {
	seeds := make([]int64, n)
	for i := range seeds {
		seeds[i] = e.cfg.Seed + int64(i)
	}

	episodes, err := e.RunSeeds(ctx, seeds)
	if err != nil {
		return env.AggregatedStats{}, err
	}
	agg := env.Aggregate(episodes)

	logging.NewEvent(e.log.Info()).
		Add(
			logging.Component("eval"),
			logging.Policy(e.cfg.Run.Policy),
			logging.Count("episodes", agg.NumEpisodes),
			logging.Mean("reward_mean", agg.RewardMean),
			logging.Mean("reward_std", agg.RewardStd),
			logging.Count("reward_max", agg.RewardMax),
			logging.Mean("steps_mean", agg.StepsMean),
			logging.Count("wall", agg.ReasonCounts[env.ReasonWall]),
			logging.Count("tail", agg.ReasonCounts[env.ReasonTail]),
			logging.Count("board_full", agg.ReasonCounts[env.ReasonBoardFull]),
			logging.Count("step_cap", agg.ReasonCounts[env.ReasonStepCap]),
		).
		Msg("benchmark complete")

	return agg, nil
}
