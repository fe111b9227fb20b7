package sim

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayaelnakeb/uno-ai-model/engine"
)

func testConfig(iterations int, seed uint64) Config {
	cfg := DefaultConfig()
	cfg.Iterations = iterations
	cfg.Seed = seed
	cfg.Seeded = true
	return cfg
}

func newTestDriver(t *testing.T, cfg Config, opts ...Option) *Driver {
	t.Helper()
	agents, err := BuildAgents(cfg)
	require.NoError(t, err)
	d, err := NewDriver(cfg, agents, opts...)
	require.NoError(t, err)
	return d
}

func TestNewDriverRejectsAgentCountMismatch(t *testing.T) {
	cfg := testConfig(10, 1)
	agents, err := BuildAgents(cfg)
	require.NoError(t, err)

	_, err = NewDriver(cfg, agents[:1])
	var ice *InvalidConfigError
	require.ErrorAs(t, err, &ice)
	assert.Equal(t, "numPlayers", ice.Field)
}

func TestRunIterationCompletesGame(t *testing.T) {
	d := newTestDriver(t, testConfig(1, 42))

	out, err := d.RunIteration()
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, out.GameID)
	assert.Equal(t, 0, out.Iteration)
	assert.False(t, out.Aborted)
	assert.GreaterOrEqual(t, out.Winner, -1)
	assert.Less(t, out.Winner, 2)
	assert.Greater(t, out.TurnCount, 0)

	require.Equal(t, 1, d.Series().Len())
	last, _ := d.Series().Last()
	assert.Equal(t, 1, last.Iteration)
}

func TestTournamentSeriesShape(t *testing.T) {
	d := newTestDriver(t, testConfig(30, 42))

	series, err := d.RunTournament(context.Background())
	require.NoError(t, err)

	pts := series.Points()
	require.Len(t, pts, 30)
	for i, p := range pts {
		assert.Equal(t, i+1, p.Iteration)
		assert.GreaterOrEqual(t, p.WinRate, 0.0)
		assert.LessOrEqual(t, p.WinRate, 1.0)
	}

	sum := d.Summary()
	last := pts[len(pts)-1]
	assert.InDelta(t, float64(sum.WinCounts[0])/float64(sum.TotalGames), last.WinRate, 1e-12)
}

func TestTournamentReproducible(t *testing.T) {
	run := func() []Point {
		d := newTestDriver(t, testConfig(50, 42))
		series, err := d.RunTournament(context.Background())
		require.NoError(t, err)
		return series.Points()
	}

	first := run()
	second := run()
	require.Equal(t, first, second)
}

func TestTournamentSeedsDiffer(t *testing.T) {
	run := func(seed uint64) Summary {
		d := newTestDriver(t, testConfig(60, seed))
		_, err := d.RunTournament(context.Background())
		require.NoError(t, err)
		return d.Summary()
	}

	// Different seeds shuffle and deal differently; sixty games landing
	// on identical average lengths would mean the seed is ignored.
	a := run(1)
	b := run(999999937)
	assert.NotEqual(t, a.AvgTurnCount, b.AvgTurnCount)
}

func TestTournamentMonteCarloRuns(t *testing.T) {
	cfg := testConfig(20, 7)
	cfg.Algorithm = AlgorithmMonteCarlo
	d := newTestDriver(t, cfg)

	series, err := d.RunTournament(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 20, series.Len())
}

func TestTournamentAgainstGreedyOpponent(t *testing.T) {
	cfg := testConfig(10, 5)
	cfg.Opponent = OpponentGreedy
	d := newTestDriver(t, cfg)

	_, err := d.RunTournament(context.Background())
	require.NoError(t, err)

	sum := d.Summary()
	assert.Equal(t, []string{"q-learning", "greedy"}, sum.AgentNames)
	assert.Zero(t, sum.Aborted)
}

func TestTournamentCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	cfg := testConfig(1000, 42)
	var seen int
	d := newTestDriver(t, cfg, WithIterationHook(func(Point) {
		seen++
		if seen == 5 {
			cancel()
		}
	}))

	series, err := d.RunTournament(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 5, series.Len())

	sum := d.Summary()
	assert.Equal(t, 5, sum.TotalGames)
}

func TestSummaryTotalsAddUp(t *testing.T) {
	d := newTestDriver(t, testConfig(40, 3))
	_, err := d.RunTournament(context.Background())
	require.NoError(t, err)

	sum := d.Summary()
	assert.Equal(t, 40, sum.TotalGames)
	require.Len(t, sum.WinCounts, 2)
	assert.Equal(t, []string{"q-learning", "random"}, sum.AgentNames)

	total := sum.Draws + sum.Aborted
	for _, w := range sum.WinCounts {
		total += w
	}
	assert.Equal(t, sum.TotalGames, total)
	assert.Greater(t, sum.AvgTurnCount, 0.0)
	assert.Zero(t, sum.Aborted)

	outcomes := d.Outcomes()
	require.Len(t, outcomes, 40)
	for i, out := range outcomes {
		assert.Equal(t, i, out.Iteration)
	}
}

func TestFourPlayerTournament(t *testing.T) {
	cfg := testConfig(15, 11)
	cfg.NumPlayers = 4
	d := newTestDriver(t, cfg)

	_, err := d.RunTournament(context.Background())
	require.NoError(t, err)

	sum := d.Summary()
	require.Len(t, sum.WinCounts, 4)
	assert.Equal(t, 15, sum.TotalGames)
}

func TestEventSinkReceivesGameTrace(t *testing.T) {
	type tagged struct {
		id uuid.UUID
		it int
		ev engine.Event
	}
	var events []tagged

	d := newTestDriver(t, testConfig(2, 42), WithEventSink(func(id uuid.UUID, it int, ev engine.Event) {
		events = append(events, tagged{id, it, ev})
	}))

	_, err := d.RunTournament(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, events)

	ids := map[int]uuid.UUID{}
	wins := 0
	for _, e := range events {
		if prev, ok := ids[e.it]; ok {
			assert.Equal(t, prev, e.id)
		} else {
			ids[e.it] = e.id
		}
		if e.ev.Type == engine.EventRoundWon {
			wins++
		}
	}
	require.Len(t, ids, 2)
	assert.NotEqual(t, ids[0], ids[1])
	assert.LessOrEqual(t, wins, 2)
}

func TestLearnerBeatsRandomEventually(t *testing.T) {
	if testing.Short() {
		t.Skip("training run")
	}
	cfg := testConfig(400, 42)
	d := newTestDriver(t, cfg)
	_, err := d.RunTournament(context.Background())
	require.NoError(t, err)

	last, ok := d.Series().Last()
	require.True(t, ok)
	// Against a uniform random opponent the learner should at least hold
	// its own over a long run.
	assert.Greater(t, last.WinRate, 0.40)
}
