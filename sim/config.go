package sim

import (
	"fmt"
	"time"

	"github.com/ayaelnakeb/uno-ai-model/engine/agent"
)

// Algorithm selects the learning algorithm for the tracked player.
type Algorithm string

const (
	AlgorithmQLearning  Algorithm = "q-learning"
	AlgorithmMonteCarlo Algorithm = "monte-carlo"
)

// Opponent selects the baseline policy filling the non-learner seats.
type Opponent string

const (
	OpponentRandom Opponent = "random"
	OpponentGreedy Opponent = "greedy"
)

// InvalidConfigError reports a configuration field that failed validation.
type InvalidConfigError struct {
	Field  string
	Reason string
}

func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %s: %s", e.Field, e.Reason)
}

// Config holds the tournament parameters.
type Config struct {
	// Iterations is the number of games to play.
	Iterations int
	// Algorithm picks the learner seated at player 0.
	Algorithm Algorithm
	// LearningRate is the Q-Learning step size alpha. Ignored by Monte Carlo.
	LearningRate float64
	// DiscountFactor is gamma, applied to future returns.
	DiscountFactor float64
	// Epsilon is the initial exploration rate.
	Epsilon float64
	// EpsilonDecay is the per-episode multiplicative decay. Values
	// outside (0,1) disable decay.
	EpsilonDecay float64
	// EpsilonMin is the exploration floor.
	EpsilonMin float64
	// NumPlayers is the table size, learner plus opponents.
	NumPlayers int
	// Opponent is the baseline policy in the non-learner seats.
	Opponent Opponent
	// MaxTurns caps a single game before it is declared a draw.
	MaxTurns int
	// Seed drives every random stream in the tournament. Only honored
	// when Seeded is true; otherwise a time-based seed is taken.
	Seed   uint64
	Seeded bool
}

// DefaultConfig returns the parameters used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		Iterations:     100,
		Algorithm:      AlgorithmQLearning,
		LearningRate:   0.1,
		DiscountFactor: 0.9,
		Epsilon:        0.2,
		EpsilonDecay:   0.995,
		EpsilonMin:     0.01,
		NumPlayers:     2,
		Opponent:       OpponentRandom,
		MaxTurns:       500,
	}
}

// Validate checks every field and returns an *InvalidConfigError for the
// first violation found.
func (c Config) Validate() error {
	if c.Iterations <= 0 {
		return &InvalidConfigError{Field: "iterations", Reason: "must be positive"}
	}
	switch c.Algorithm {
	case AlgorithmQLearning, AlgorithmMonteCarlo:
	default:
		return &InvalidConfigError{Field: "algorithm", Reason: fmt.Sprintf("unknown algorithm %q", c.Algorithm)}
	}
	if c.Algorithm == AlgorithmQLearning && (c.LearningRate <= 0 || c.LearningRate > 1) {
		return &InvalidConfigError{Field: "learningRate", Reason: "must be in (0, 1]"}
	}
	if c.DiscountFactor < 0 || c.DiscountFactor > 1 {
		return &InvalidConfigError{Field: "discountFactor", Reason: "must be in [0, 1]"}
	}
	if c.Epsilon < 0 || c.Epsilon > 1 {
		return &InvalidConfigError{Field: "epsilon", Reason: "must be in [0, 1]"}
	}
	if c.EpsilonMin < 0 || c.EpsilonMin > c.Epsilon {
		return &InvalidConfigError{Field: "epsilonMin", Reason: "must be in [0, epsilon]"}
	}
	if c.NumPlayers < 2 || c.NumPlayers > 4 {
		return &InvalidConfigError{Field: "numPlayers", Reason: "must be between 2 and 4"}
	}
	switch c.Opponent {
	case OpponentRandom, OpponentGreedy:
	default:
		return &InvalidConfigError{Field: "opponent", Reason: fmt.Sprintf("unknown opponent %q", c.Opponent)}
	}
	if c.MaxTurns <= 0 {
		return &InvalidConfigError{Field: "maxTurns", Reason: "must be positive"}
	}
	return nil
}

// resolveSeed fills in a time-based seed when none was given, so that
// every component derived from the config shares one seed.
func (c Config) resolveSeed() Config {
	if !c.Seeded {
		c.Seed = uint64(time.Now().UnixNano())
		c.Seeded = true
	}
	return c
}

// Seed offsets keep the learner, the opponents and the engine on
// distinct random streams derived from the single master seed.
const (
	seedOffsetLearner  = 0x9e3779b97f4a7c15
	seedOffsetOpponent = 0xbf58476d1ce4e5b9
)

// BuildAgents constructs the table for the config: the learner at seat 0
// and random opponents filling the remaining seats.
func BuildAgents(c Config) ([]agent.Agent, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	c = c.resolveSeed()

	var learner agent.Agent
	switch c.Algorithm {
	case AlgorithmQLearning:
		learner = agent.NewQLearning(agent.QConfig{
			Alpha:        c.LearningRate,
			Gamma:        c.DiscountFactor,
			Epsilon:      c.Epsilon,
			EpsilonDecay: c.EpsilonDecay,
			EpsilonMin:   c.EpsilonMin,
			Seed:         c.Seed ^ seedOffsetLearner,
		})
	case AlgorithmMonteCarlo:
		learner = agent.NewMonteCarlo(agent.MCConfig{
			Gamma:        c.DiscountFactor,
			Epsilon:      c.Epsilon,
			EpsilonDecay: c.EpsilonDecay,
			EpsilonMin:   c.EpsilonMin,
			Seed:         c.Seed ^ seedOffsetLearner,
		})
	}

	agents := []agent.Agent{learner}
	for i := 1; i < c.NumPlayers; i++ {
		switch c.Opponent {
		case OpponentGreedy:
			agents = append(agents, agent.NewGreedy())
		default:
			agents = append(agents, agent.NewRandom(c.Seed^seedOffsetOpponent^uint64(i)))
		}
	}
	return agents, nil
}
