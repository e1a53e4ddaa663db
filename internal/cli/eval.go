package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"snakegym/internal/env"
	"snakegym/internal/eval"
)

type evalOptions struct {
	episodes   int
	policy     string
	workers    int
	lambda     float64
	jsonOutput bool
}

// evalSummary is the JSON shape printed by eval --json
type evalSummary struct {
	Policy       string         `json:"policy"`
	Episodes     int            `json:"episodes"`
	RewardMean   float64        `json:"reward_mean"`
	RewardStd    float64        `json:"reward_std"`
	RewardMax    int            `json:"reward_max"`
	StepsMean    float64        `json:"steps_mean"`
	LengthMean   float64        `json:"length_mean"`
	RobustScore  float64        `json:"robust_score"`
	ReasonCounts map[string]int `json:"reason_counts"`
}

func (a *App) newEvalCmd() *cobra.Command {
	opts := &evalOptions{}

	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Run a policy over consecutive seeds and report aggregate results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg
			if opts.episodes > 0 {
				cfg.Run.Episodes = opts.episodes
			}
			if opts.policy != "" {
				cfg.Run.Policy = opts.policy
			}
			if opts.workers > 0 {
				cfg.Run.Workers = opts.workers
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			evaluator := eval.NewEvaluator(cfg, a.logger(cfg))
			agg, err := evaluator.Benchmark(cmd.Context(), cfg.Run.Episodes)
			if err != nil {
				return fmt.Errorf("evaluation failed: %w", err)
			}

			summary := evalSummary{
				Policy:       cfg.Run.Policy,
				Episodes:     agg.NumEpisodes,
				RewardMean:   agg.RewardMean,
				RewardStd:    agg.RewardStd,
				RewardMax:    agg.RewardMax,
				StepsMean:    agg.StepsMean,
				LengthMean:   agg.LengthMean,
				RobustScore:  agg.RobustnessScore(opts.lambda),
				ReasonCounts: make(map[string]int),
			}
			for reason, n := range agg.ReasonCounts {
				summary.ReasonCounts[reason.String()] = n
			}

			if opts.jsonOutput {
				enc := json.NewEncoder(a.stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(summary)
			}

			_, _ = fmt.Fprintf(a.stdout, "Policy %s over %d episodes\n", summary.Policy, summary.Episodes)
			_, _ = fmt.Fprintf(a.stdout, "  Reward: mean %.2f, std %.2f, max %d\n", summary.RewardMean, summary.RewardStd, summary.RewardMax)
			_, _ = fmt.Fprintf(a.stdout, "  Steps:  mean %.1f, length mean %.1f\n", summary.StepsMean, summary.LengthMean)
			_, _ = fmt.Fprintf(a.stdout, "  Robust: %.2f (lambda %.2f)\n", summary.RobustScore, opts.lambda)
			_, _ = fmt.Fprintf(a.stdout, "  Ends:   wall=%d tail=%d board_full=%d step_cap=%d\n",
				agg.ReasonCounts[env.ReasonWall], agg.ReasonCounts[env.ReasonTail],
				agg.ReasonCounts[env.ReasonBoardFull], agg.ReasonCounts[env.ReasonStepCap])
			return nil
		},
	}

	cmd.Flags().IntVarP(&opts.episodes, "episodes", "n", 0, "Number of episodes (overrides config)")
	cmd.Flags().StringVar(&opts.policy, "policy", "", "Policy to evaluate (overrides config)")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "Concurrent episodes (overrides config)")
	cmd.Flags().Float64Var(&opts.lambda, "lambda", 1, "Reward std penalty for the robustness score")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output results as JSON")

	return cmd
}
