package logging

import (
	"strconv"

	"github.com/felixgeelhaar/bolt/v3"

	"snakegym/internal/env"
)

// Field is a function that applies structured data to a log event.
type Field func(*bolt.Event) *bolt.Event

// Episode adds an episode id field.
func Episode(id string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("episode", id)
	}
}

// Seed adds a seed field.
func Seed(seed int64) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int64("seed", seed)
	}
}

// Steps adds a step count field.
func Steps(n int) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int("steps", n)
	}
}

// Reward adds a reward field.
func Reward(r int) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int("reward", r)
	}
}

// Length adds a snake length field.
func Length(n int) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int("length", n)
	}
}

// Reason adds a terminal reason field.
func Reason(r env.TerminalReason) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("reason", r.String())
	}
}

// Policy adds a policy name field.
func Policy(name string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("policy", name)
	}
}

// Mean adds a fixed-precision mean field under key.
func Mean(key string, v float64) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str(key, strconv.FormatFloat(v, 'f', 2, 64))
	}
}

// Count adds an integer field under key.
func Count(key string, n int) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int(key, n)
	}
}

// Component adds a component field for categorization.
func Component(name string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("component", name)
	}
}

// ErrorField adds an error field.
func ErrorField(err error) Field {
	return func(e *bolt.Event) *bolt.Event {
		if err == nil {
			return e
		}
		return e.Err(err)
	}
}

// Stats adds every field of an episode summary.
func Stats(s env.EpisodeStats) Field {
	return func(e *bolt.Event) *bolt.Event {
		for _, f := range []Field{Episode(s.ID), Seed(s.Seed), Steps(s.Steps), Reward(s.Reward), Length(s.Length), Reason(s.Reason)} {
			e = f(e)
		}
		return e
	}
}
