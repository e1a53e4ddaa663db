// Package policy holds scripted agents that drive an engine.
package policy

import (
	"fmt"
	"math/rand"
	"sort"

	"snakegym/internal/env"
)

// View is the part of the engine a policy may look at
type View interface {
	Peek(action env.Action) (env.Cell, error)
	Head() env.Point
	Orientation() env.Orientation
	Apple() (env.Point, bool)
}

// Policy picks the next action for the current state
type Policy interface {
	Name() string
	Act(v View) env.Action
}

// Names of the built-in policies
const (
	NameStraight  = "straight"
	NameWallAvoid = "wall_avoid"
	NameRandom    = "random"
	NameGreedy    = "greedy"
)

type factory func(seed int64) Policy

var registry = map[string]factory{
	NameStraight:  func(int64) Policy { return Straight{} },
	NameWallAvoid: func(int64) Policy { return WallAvoid{} },
	NameRandom:    func(seed int64) Policy { return NewRandom(seed) },
	NameGreedy:    func(int64) Policy { return Greedy{} },
}

// ByName returns the named policy. seed is used by stochastic policies.
func ByName(name string, seed int64) (Policy, error) {
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown policy %q", name)
	}
	return f(seed), nil
}

// Names returns all registered policy names, sorted
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Straight never turns
type Straight struct{}

func (Straight) Name() string { return NameStraight }

func (Straight) Act(View) env.Action { return env.ActionNoTurn }

// WallAvoid goes straight and turns right, then left, when the way ahead is blocked
type WallAvoid struct{}

func (WallAvoid) Name() string { return NameWallAvoid }

func (WallAvoid) Act(v View) env.Action {
	if !IsDanger(v, env.ActionNoTurn) {
		return env.ActionNoTurn
	}
	if !IsDanger(v, env.ActionTurnRight) {
		return env.ActionTurnRight
	}
	if !IsDanger(v, env.ActionTurnLeft) {
		return env.ActionTurnLeft
	}
	return env.ActionNoTurn
}

// Random picks uniformly among the three actions
type Random struct {
	rng *rand.Rand
}

// NewRandom creates a random policy with its own source
func NewRandom(seed int64) *Random {
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

func (r *Random) Name() string { return NameRandom }

func (r *Random) Act(View) env.Action {
	return env.Actions[r.rng.Intn(len(env.Actions))]
}

// Greedy steps toward the apple along a safe move, preferring straight on ties
type Greedy struct{}

func (Greedy) Name() string { return NameGreedy }

func (Greedy) Act(v View) env.Action {
	apple, ok := v.Apple()
	if !ok {
		return WallAvoid{}.Act(v)
	}

	best := env.ActionNoTurn
	bestDist := -1
	for _, a := range []env.Action{env.ActionNoTurn, env.ActionTurnLeft, env.ActionTurnRight} {
		if IsDanger(v, a) {
			continue
		}
		next := v.Head().Add(v.Orientation().Turn(a.Delta()).Vector())
		d := manhattan(next, apple)
		if bestDist < 0 || d < bestDist {
			best, bestDist = a, d
		}
	}
	return best
}

// IsDanger reports whether action would end the episode on the next move
func IsDanger(v View, action env.Action) bool {
	cell, err := v.Peek(action)
	if err != nil {
		return true
	}
	return cell == env.CellWall || cell == env.CellTail || cell == env.CellHead
}

func manhattan(a, b env.Point) int {
	dr := a.Row - b.Row
	dc := a.Col - b.Col
	if dr < 0 {
		dr = -dr
	}
	if dc < 0 {
		dc = -dc
	}
	return dr + dc
}
