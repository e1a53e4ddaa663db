package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"snakegym/internal/logging"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	err := New().WithOutput(stdout, stderr).ExecuteWithArgs(context.Background(), args)
	return stdout.String(), stderr.String(), err
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	out, _, err := run(t, "version")
	if err != nil {
		t.Fatalf("version error = %v", err)
	}
	if !strings.Contains(out, "snakegym version "+Version) {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestPlayStraightHitsWall(t *testing.T) {
	t.Parallel()

	out, _, err := run(t, "play", "--policy", "straight", "--no-display", "--delay", "0", "--log-level", "error")
	if err != nil {
		t.Fatalf("play error = %v", err)
	}
	if !strings.HasPrefix(out, "Game over: wall after 5 steps") {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestPlayDrawsFrames(t *testing.T) {
	t.Parallel()

	out, _, err := run(t, "play", "--policy", "straight", "--codes", "--delay", "0", "--log-level", "error")
	if err != nil {
		t.Fatalf("play error = %v", err)
	}
	// initial frame plus one per step
	if got := strings.Count(out, "step "); got != 6 {
		t.Errorf("drew %d frames, want 6:\n%s", got, out)
	}
	if !strings.Contains(out, " 2 2 2 2 2 2 2 2 2 2 2 2\n") {
		t.Errorf("missing wall row:\n%s", out)
	}
}

func TestEvalJSON(t *testing.T) {
	t.Parallel()

	out, _, err := run(t, "eval", "--json", "-n", "3", "--policy", "straight", "--log-level", "error")
	if err != nil {
		t.Fatalf("eval error = %v", err)
	}

	var summary evalSummary
	if err := json.Unmarshal([]byte(out), &summary); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if summary.Episodes != 3 || summary.Policy != "straight" {
		t.Errorf("summary = %+v", summary)
	}
	if summary.ReasonCounts["wall"] != 3 {
		t.Errorf("reason counts = %v, want 3 wall", summary.ReasonCounts)
	}
	if summary.StepsMean != 5 {
		t.Errorf("steps mean = %v, want 5", summary.StepsMean)
	}
	if want := summary.RewardMean - summary.RewardStd; summary.RobustScore != want {
		t.Errorf("robust score = %v, want mean - std = %v", summary.RobustScore, want)
	}
}

func TestEvalLambda(t *testing.T) {
	t.Parallel()

	out, _, err := run(t, "eval", "--json", "-n", "4", "--policy", "greedy", "--lambda", "0", "--log-level", "error")
	if err != nil {
		t.Fatalf("eval error = %v", err)
	}

	var summary evalSummary
	if err := json.Unmarshal([]byte(out), &summary); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if summary.RobustScore != summary.RewardMean {
		t.Errorf("robust score with lambda 0 = %v, want reward mean %v", summary.RobustScore, summary.RewardMean)
	}
}

func TestEvalText(t *testing.T) {
	t.Parallel()

	out, _, err := run(t, "eval", "-n", "2", "--policy", "wall_avoid", "--log-level", "error")
	if err != nil {
		t.Fatalf("eval error = %v", err)
	}
	if !strings.HasPrefix(out, "Policy wall_avoid over 2 episodes") {
		t.Errorf("unexpected output: %q", out)
	}
	if !strings.Contains(out, "(lambda 1.00)") {
		t.Errorf("robust score line missing: %q", out)
	}
}

func TestEvalLogsToStderr(t *testing.T) {
	t.Parallel()

	_, errOut, err := run(t, "eval", "-n", "1", "--policy", "straight", "--log-level", "info")
	if err != nil {
		t.Fatalf("eval error = %v", err)
	}
	if !strings.Contains(errOut, "benchmark complete") {
		t.Errorf("expected benchmark log on stderr, got %q", errOut)
	}
}

func TestUnknownPolicy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
	}{
		{name: "play", args: []string{"play", "--policy", "teleport", "--no-display"}},
		{name: "eval", args: []string{"eval", "--policy", "teleport"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, _, err := run(t, tt.args...); err == nil {
				t.Error("expected error for unknown policy")
			}
		})
	}
}

func TestConfigFlag(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "snake.yaml")
	data := []byte("env:\n  rows: 7\n  cols: 7\nrun:\n  policy: straight\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	// center (3,3) facing right reaches the wall at column 6 on the third move
	out, _, err := run(t, "--config", path, "play", "--no-display", "--delay", "0", "--log-level", "error")
	if err != nil {
		t.Fatalf("play error = %v", err)
	}
	if !strings.HasPrefix(out, "Game over: wall after 3 steps") {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestPreRunLoadsConfig(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "snake.yaml")
	data := []byte("seed: 42\nlogging:\n  level: warn\n  format: json\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	app := New().WithOutput(&bytes.Buffer{}, &bytes.Buffer{})
	if err := app.ExecuteWithArgs(context.Background(), []string{"--config", path, "version"}); err != nil {
		t.Fatalf("version error = %v", err)
	}
	if app.cfg == nil || app.cfg.Seed != 42 {
		t.Fatalf("cfg = %+v, want seed 42", app.cfg)
	}

	app.logLevel = "debug"
	lc := app.logConfig(app.cfg)
	if lc.Level != "debug" || lc.Format != "json" {
		t.Errorf("logConfig() = %+v, want debug json", lc)
	}
	if logging.Get() == nil {
		t.Error("default logger not initialized")
	}
}

func TestMissingConfig(t *testing.T) {
	t.Parallel()

	_, _, err := run(t, "--config", filepath.Join(t.TempDir(), "absent.yaml"), "eval")
	if err == nil {
		t.Fatal("expected error for missing config file")
	}
}
