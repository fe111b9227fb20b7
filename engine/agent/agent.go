package agent

// Step is one (observation, action, reward) entry of an episode
// trajectory, keyed for table lookups by the driver at episode end.
type Step struct {
	Obs    Observation
	Action uint16
	Reward float64
}

// Agent is the capability contract every policy implements. The driver
// calls SelectAction on the agent's turn, OnStep when the outcome of a
// previous action becomes observable, and OnEpisodeEnd once per game
// with the agent's full trajectory and terminal reward (+1 win,
// -1 loss, 0 draw or aborted episode).
//
// Learning agents mutate their tables in place; ordering is the
// driver's responsibility and all calls are single-threaded.
type Agent interface {
	Name() string

	// SelectAction picks one of the legal action indices. legal is
	// non-empty and sorted ascending.
	SelectAction(obs Observation, legal []uint16) uint16

	// OnStep delivers the transition (obs, action) -> next with its
	// immediate reward. terminal marks the episode's final transition.
	OnStep(obs Observation, action uint16, reward float64, next Observation, terminal bool)

	// OnEpisodeEnd delivers the full trajectory and terminal reward.
	// The trajectory's final step carries the terminal reward in its
	// Reward field; the scalar repeats it for convenience.
	OnEpisodeEnd(trajectory []Step, terminalReward float64)

	// Reset prepares the agent for a new episode. Learned tables persist.
	Reset()
}

// ---------------------------------------------------------------------------
// xorshift64 RNG, the same generator the engine uses, kept per-agent
// so exploration is reproducible under a fixed tournament seed.
// ---------------------------------------------------------------------------

type rng struct{ state uint64 }

func newRNG(seed uint64) rng {
	if seed == 0 {
		seed = 1
	}
	return rng{state: seed}
}

func (r *rng) next() uint64 {
	x := r.state
	x ^= x << 13
	x ^= x >> 7
	x ^= x << 17
	r.state = x
	return x
}

// float64 returns a uniform value in [0, 1).
func (r *rng) float64() float64 {
	return float64(r.next()>>11) / (1 << 53)
}

// intn returns a uniform value in [0, n).
func (r *rng) intn(n int) int {
	return int(r.next() % uint64(n))
}

// ---------------------------------------------------------------------------
// ε-greedy selection shared by the learning agents
// ---------------------------------------------------------------------------

// selectEpsilonGreedy explores uniformly with probability epsilon and
// otherwise exploits the greedy action. Ties break toward the first
// encountered legal action so greedy play is deterministic.
func selectEpsilonGreedy(r *rng, epsilon float64, obs Observation, legal []uint16,
	value func(stateKey, actionKey string) float64) uint16 {

	if epsilon > 0 && r.float64() < epsilon {
		return legal[r.intn(len(legal))]
	}

	state := StateKey(obs)
	best := legal[0]
	bestVal := value(state, ActionKey(obs, legal[0]))
	for _, a := range legal[1:] {
		if v := value(state, ActionKey(obs, a)); v > bestVal {
			best, bestVal = a, v
		}
	}
	return best
}

// decayEpsilon applies one step of a monotone multiplicative schedule.
func decayEpsilon(epsilon, decay, floor float64) float64 {
	if decay <= 0 || decay >= 1 {
		return epsilon
	}
	e := epsilon * decay
	if e < floor {
		return floor
	}
	return e
}
