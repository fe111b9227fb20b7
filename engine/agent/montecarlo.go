package agent

// returns accumulates observed returns for one (state, action) pair.
type returns struct {
	Sum float64
	N   uint64
}

// ReturnsTable maps stateKey -> actionKey -> running return average
// inputs. Lazy-create, update-in-place, no-delete, same lifecycle as
// the QTable.
type ReturnsTable map[string]map[string]*returns

func (rt ReturnsTable) at(state, action string) *returns {
	row, ok := rt[state]
	if !ok {
		row = make(map[string]*returns)
		rt[state] = row
	}
	r, ok := row[action]
	if !ok {
		r = &returns{}
		row[action] = r
	}
	return r
}

// value returns the running-average estimate, 0 when unvisited.
func (rt ReturnsTable) value(state, action string) float64 {
	r, ok := rt[state][action]
	if !ok || r.N == 0 {
		return 0
	}
	return r.Sum / float64(r.N)
}

// MCConfig holds the Monte Carlo control hyperparameters. Gamma = 1
// gives the undiscounted return.
type MCConfig struct {
	Gamma        float64
	Epsilon      float64
	EpsilonDecay float64
	EpsilonMin   float64
	Seed         uint64
}

// MonteCarloAgent defers all learning to episode end: for each (state,
// action) pair the return is the (optionally discounted) sum of
// rewards from that step onward, folded into a running average. Only
// the first visit of a pair within an episode contributes.
type MonteCarloAgent struct {
	cfg     MCConfig
	table   ReturnsTable
	epsilon float64
	rng     rng
}

// NewMonteCarlo creates a first-visit Monte Carlo control agent with an
// empty returns table.
func NewMonteCarlo(cfg MCConfig) *MonteCarloAgent {
	return &MonteCarloAgent{
		cfg:     cfg,
		table:   make(ReturnsTable),
		epsilon: cfg.Epsilon,
		rng:     newRNG(cfg.Seed),
	}
}

func (a *MonteCarloAgent) Name() string { return "monte-carlo" }

// Epsilon returns the current exploration rate.
func (a *MonteCarloAgent) Epsilon() float64 { return a.epsilon }

func (a *MonteCarloAgent) SelectAction(obs Observation, legal []uint16) uint16 {
	return selectEpsilonGreedy(&a.rng, a.epsilon, obs, legal, a.table.value)
}

// OnStep is a no-op: Monte Carlo control learns only from complete
// episodes.
func (a *MonteCarloAgent) OnStep(Observation, uint16, float64, Observation, bool) {}

// OnEpisodeEnd walks the trajectory backward accumulating the return
// G ← r + γ·G, then applies first-visit updates in forward order:
//
//	V[s,a] += (G − V[s,a]) / N[s,a]
//
// The trajectory's final step already carries the terminal reward; the
// scalar argument is informational.
func (a *MonteCarloAgent) OnEpisodeEnd(trajectory []Step, terminalReward float64) {
	_ = terminalReward
	if len(trajectory) > 0 {
		G := 0.0
		gains := make([]float64, len(trajectory))
		for i := len(trajectory) - 1; i >= 0; i-- {
			G = trajectory[i].Reward + a.cfg.Gamma*G
			gains[i] = G
		}

		type pair struct{ s, act string }
		seen := make(map[pair]bool, len(trajectory))
		for i, step := range trajectory {
			p := pair{StateKey(step.Obs), ActionKey(step.Obs, step.Action)}
			if seen[p] {
				continue
			}
			seen[p] = true
			r := a.table.at(p.s, p.act)
			r.Sum += gains[i]
			r.N++
		}
	}

	a.epsilon = decayEpsilon(a.epsilon, a.cfg.EpsilonDecay, a.cfg.EpsilonMin)
}

func (a *MonteCarloAgent) Reset() {}

// TableSnapshot returns the learned running averages sorted for
// deterministic export.
func (a *MonteCarloAgent) TableSnapshot() []TableEntry {
	return snapshotTable(func(yield func(state, action string, value float64, visits uint64)) {
		for s, row := range a.table {
			for act, r := range row {
				yield(s, act, r.Sum/float64(r.N), r.N)
			}
		}
	})
}
