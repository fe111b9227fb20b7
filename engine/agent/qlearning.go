package agent

// QTable maps stateKey -> actionKey -> value estimate. Entries are
// created lazily on first visit, updated in place, and never deleted.
type QTable map[string]map[string]float64

func (q QTable) get(state, action string) float64 {
	return q[state][action]
}

func (q QTable) set(state, action string, v float64) {
	row, ok := q[state]
	if !ok {
		row = make(map[string]float64)
		q[state] = row
	}
	row[action] = v
}

// maxValue returns max over the known actions of a state, or 0 for an
// unvisited state.
func (q QTable) maxValue(state string) float64 {
	row, ok := q[state]
	if !ok || len(row) == 0 {
		return 0
	}
	first := true
	var best float64
	for _, v := range row {
		if first || v > best {
			best = v
			first = false
		}
	}
	return best
}

// QConfig holds the Q-Learning hyperparameters. Alpha and Gamma are
// fixed for a run; Epsilon may decay per episode (monotone
// non-increasing) down to EpsilonMin when EpsilonDecay is in (0, 1).
type QConfig struct {
	Alpha        float64 // learning rate
	Gamma        float64 // discount factor
	Epsilon      float64 // exploration rate
	EpsilonDecay float64 // per-episode multiplier; 0 or 1 disables decay
	EpsilonMin   float64
	Seed         uint64
}

// QLearningAgent learns online with the Bellman update
//
//	Q[s,a] += α·(r + γ·max_a' Q[s',a'] − Q[s,a])
//
// applied after every observed step; the terminal step drops the
// bootstrap term.
type QLearningAgent struct {
	cfg     QConfig
	table   QTable
	epsilon float64
	rng     rng
}

// NewQLearning creates a Q-Learning agent with an empty table.
func NewQLearning(cfg QConfig) *QLearningAgent {
	return &QLearningAgent{
		cfg:     cfg,
		table:   make(QTable),
		epsilon: cfg.Epsilon,
		rng:     newRNG(cfg.Seed),
	}
}

func (a *QLearningAgent) Name() string { return "q-learning" }

// Epsilon returns the current exploration rate.
func (a *QLearningAgent) Epsilon() float64 { return a.epsilon }

func (a *QLearningAgent) SelectAction(obs Observation, legal []uint16) uint16 {
	return selectEpsilonGreedy(&a.rng, a.epsilon, obs, legal, a.table.get)
}

func (a *QLearningAgent) OnStep(obs Observation, action uint16, reward float64, next Observation, terminal bool) {
	state := StateKey(obs)
	actKey := ActionKey(obs, action)

	target := reward
	if !terminal {
		target += a.cfg.Gamma * a.table.maxValue(StateKey(next))
	}
	old := a.table.get(state, actKey)
	a.table.set(state, actKey, old+a.cfg.Alpha*(target-old))
}

// OnEpisodeEnd only advances the exploration schedule; all value
// updates already happened step by step.
func (a *QLearningAgent) OnEpisodeEnd(_ []Step, _ float64) {
	a.epsilon = decayEpsilon(a.epsilon, a.cfg.EpsilonDecay, a.cfg.EpsilonMin)
}

func (a *QLearningAgent) Reset() {}

// TableSnapshot returns the learned entries sorted for deterministic
// export.
func (a *QLearningAgent) TableSnapshot() []TableEntry {
	return snapshotTable(func(yield func(state, action string, value float64, visits uint64)) {
		for s, row := range a.table {
			for act, v := range row {
				yield(s, act, v, 0)
			}
		}
	})
}
