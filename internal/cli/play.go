package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"snakegym/internal/config"
	"snakegym/internal/env"
	"snakegym/internal/logging"
	"snakegym/internal/policy"
	"snakegym/internal/render"
)

type playOptions struct {
	seed      int64
	policy    string
	delay     time.Duration
	noDisplay bool
	codes     bool
}

func (a *App) newPlayCmd() *cobra.Command {
	opts := &playOptions{}

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play one episode with a scripted policy and draw every frame",
		Long: `Play one episode with a scripted policy.

Examples:
  # Watch the greedy policy on the default 12x12 board
  snakegym play --policy greedy

  # Print raw cell codes without delay
  snakegym play --codes --delay 0`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg
			if !cmd.Flags().Changed("seed") {
				opts.seed = cfg.Seed
			}
			if opts.policy == "" {
				opts.policy = cfg.Run.Policy
			}
			if !cmd.Flags().Changed("delay") {
				opts.delay = time.Duration(cfg.Run.DelayMS) * time.Millisecond
			}
			return a.play(cmd.Context(), cfg, opts)
		},
	}

	cmd.Flags().Int64Var(&opts.seed, "seed", 0, "Random seed for apple placement (overrides config)")
	cmd.Flags().StringVar(&opts.policy, "policy", "", fmt.Sprintf("Policy to play, one of %v", policy.Names()))
	cmd.Flags().DurationVar(&opts.delay, "delay", 0, "Delay between frames (overrides config)")
	cmd.Flags().BoolVar(&opts.noDisplay, "no-display", false, "Only print the final summary")
	cmd.Flags().BoolVar(&opts.codes, "codes", false, "Draw integer cell codes instead of glyphs")

	return cmd
}

func (a *App) play(ctx context.Context, cfg *config.Config, opts *playOptions) error {
	log := a.logger(cfg)

	p, err := policy.ByName(opts.policy, opts.seed)
	if err != nil {
		return err
	}
	engine, err := env.NewEngine(cfg.EnvOptions(opts.seed))
	if err != nil {
		return fmt.Errorf("failed to create engine: %w", err)
	}

	glyphs := render.DefaultGlyphs
	if opts.codes {
		glyphs = render.CodeGlyphs
	}
	screen := render.NewText(a.stdout, glyphs)

	draw := func(action string) error {
		if opts.noDisplay {
			return nil
		}
		if !opts.codes {
			if err := screen.Clear(); err != nil {
				return err
			}
		}
		status := fmt.Sprintf("step %d | reward %d | length %d | action %s",
			engine.Steps(), engine.Reward(), len(engine.Body()), action)
		return screen.Render(engine.Observation(), status)
	}

	logging.NewEvent(log.Info()).
		Add(logging.Component("play"), logging.Policy(p.Name()), logging.Episode(engine.ID().String()), logging.Seed(opts.seed)).
		Msg("episode started")

	if err := draw("---"); err != nil {
		return err
	}
	for !engine.Done() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(opts.delay):
		}

		action := p.Act(engine)
		res, err := engine.Step(action)
		if err != nil {
			return err
		}
		if err := draw(action.String()); err != nil {
			return err
		}
		logging.NewEvent(log.Trace()).
			Add(logging.Steps(engine.Steps()), logging.Reward(res.Reward)).
			Msg("step")
	}

	stats := engine.Stats()
	logging.NewEvent(log.Info()).
		Add(logging.Component("play"), logging.Policy(p.Name()), logging.Stats(stats)).
		Msg("episode finished")

	_, _ = fmt.Fprintf(a.stdout, "Game over: %s after %d steps, reward %d, length %d\n",
		stats.Reason, stats.Steps, stats.Reward, stats.Length)
	return nil
}
