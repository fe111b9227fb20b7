package sim

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}

func TestConfigValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"zero iterations", func(c *Config) { c.Iterations = 0 }, "iterations"},
		{"negative iterations", func(c *Config) { c.Iterations = -5 }, "iterations"},
		{"unknown algorithm", func(c *Config) { c.Algorithm = "sarsa" }, "algorithm"},
		{"zero learning rate", func(c *Config) { c.LearningRate = 0 }, "learningRate"},
		{"learning rate above one", func(c *Config) { c.LearningRate = 1.5 }, "learningRate"},
		{"negative discount", func(c *Config) { c.DiscountFactor = -0.1 }, "discountFactor"},
		{"discount above one", func(c *Config) { c.DiscountFactor = 1.1 }, "discountFactor"},
		{"epsilon above one", func(c *Config) { c.Epsilon = 2 }, "epsilon"},
		{"epsilon min above epsilon", func(c *Config) { c.Epsilon = 0.1; c.EpsilonMin = 0.2 }, "epsilonMin"},
		{"one player", func(c *Config) { c.NumPlayers = 1 }, "numPlayers"},
		{"five players", func(c *Config) { c.NumPlayers = 5 }, "numPlayers"},
		{"unknown opponent", func(c *Config) { c.Opponent = "mcts" }, "opponent"},
		{"zero max turns", func(c *Config) { c.MaxTurns = 0 }, "maxTurns"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			var ice *InvalidConfigError
			require.True(t, errors.As(err, &ice))
			assert.Equal(t, tc.field, ice.Field)
		})
	}
}

func TestLearningRateIgnoredForMonteCarlo(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Algorithm = AlgorithmMonteCarlo
	cfg.LearningRate = 0
	assert.NoError(t, cfg.Validate())
}

func TestBuildAgents(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NumPlayers = 3
	cfg.Seed = 7
	cfg.Seeded = true

	agents, err := BuildAgents(cfg)
	require.NoError(t, err)
	require.Len(t, agents, 3)
	assert.Equal(t, "q-learning", agents[0].Name())
	assert.Equal(t, "random", agents[1].Name())
	assert.Equal(t, "random", agents[2].Name())

	cfg.Algorithm = AlgorithmMonteCarlo
	agents, err = BuildAgents(cfg)
	require.NoError(t, err)
	assert.Equal(t, "monte-carlo", agents[0].Name())

	cfg.Opponent = OpponentGreedy
	agents, err = BuildAgents(cfg)
	require.NoError(t, err)
	assert.Equal(t, "greedy", agents[1].Name())
}

func TestBuildAgentsRejectsBadConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Iterations = 0
	_, err := BuildAgents(cfg)
	var ice *InvalidConfigError
	require.True(t, errors.As(err, &ice))
}
