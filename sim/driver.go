// Package sim runs training tournaments: it wires agents into the game
// engine, plays games one at a time, delivers rewards, and tracks the
// learner's cumulative win rate.
package sim

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ayaelnakeb/uno-ai-model/engine"
	"github.com/ayaelnakeb/uno-ai-model/engine/agent"
)

// trackedPlayer is the seat whose win rate the series follows. The
// learner is always seated there.
const trackedPlayer = 0

// Outcome describes a single finished game.
type Outcome struct {
	GameID    uuid.UUID
	Iteration int
	Winner    int // player index, or -1 for a draw or aborted game
	TurnCount int
	Aborted   bool
}

// Summary aggregates a tournament after it finishes.
type Summary struct {
	TotalGames   int
	AgentNames   []string
	WinCounts    []int // indexed by seat
	Draws        int
	Aborted      int
	AvgTurnCount float64
}

// EventSink receives every engine event together with the game it
// belongs to. Used for structured logging of game traces.
type EventSink func(gameID uuid.UUID, iteration int, ev engine.Event)

// IterationHook is called after each recorded iteration with the
// freshly appended series point. Used to push live progress to the
// visualization server.
type IterationHook func(Point)

// Option configures a Driver.
type Option func(*Driver)

// WithEventSink forwards engine events from every game to sink.
func WithEventSink(sink EventSink) Option {
	return func(d *Driver) { d.sink = sink }
}

// WithIterationHook invokes hook after every iteration.
func WithIterationHook(hook IterationHook) Option {
	return func(d *Driver) { d.hook = hook }
}

// Driver plays games sequentially, one engine instance per iteration,
// and feeds each agent its own observations, actions and rewards.
type Driver struct {
	cfg    Config
	agents []agent.Agent
	series *WinRateSeries
	sink   EventSink
	hook   IterationHook

	seedState  uint64
	iteration  int
	outcomes   []Outcome
	wins       []int
	draws      int
	aborted    int
	turnsTotal int
}

// NewDriver validates the config and builds a driver over the given
// agents. The learner is expected at seat 0; len(agents) must match
// cfg.NumPlayers.
func NewDriver(cfg Config, agents []agent.Agent, opts ...Option) (*Driver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(agents) != cfg.NumPlayers {
		return nil, &InvalidConfigError{
			Field:  "numPlayers",
			Reason: fmt.Sprintf("config wants %d players but %d agents given", cfg.NumPlayers, len(agents)),
		}
	}
	cfg = cfg.resolveSeed()
	d := &Driver{
		cfg:       cfg,
		agents:    agents,
		series:    NewWinRateSeries(),
		seedState: cfg.Seed,
		wins:      make([]int, len(agents)),
	}
	if d.seedState == 0 {
		d.seedState = 1
	}
	for _, o := range opts {
		o(d)
	}
	return d, nil
}

// Series returns the live win-rate series. Safe to read while the
// tournament runs.
func (d *Driver) Series() *WinRateSeries { return d.series }

// Outcomes returns a copy of every recorded game outcome, in play
// order.
func (d *Driver) Outcomes() []Outcome {
	out := make([]Outcome, len(d.outcomes))
	copy(out, d.outcomes)
	return out
}

// nextSeed advances the driver's xorshift stream, giving each game its
// own deterministic engine seed.
func (d *Driver) nextSeed() uint64 {
	x := d.seedState
	x ^= x << 13
	x ^= x >> 7
	x ^= x << 17
	d.seedState = x
	return x
}

// pendingStep holds an agent's last (state, action) pair until the game
// comes back around to that agent, at which point the transition can be
// completed with the next observation.
type pendingStep struct {
	obs    agent.Observation
	action uint16
	valid  bool
}

// RunIteration plays one full game. Each agent observes only its own
// hand plus public state. Intermediate rewards are zero; the terminal
// reward is +1 for the winner, -1 for losers, and 0 for everyone when
// the game ends in a draw or is aborted.
//
// An illegal action from an agent is a bug in the agent, not a
// recoverable condition: the episode is aborted with zero rewards and
// the error is returned.
func (d *Driver) RunIteration() (Outcome, error) {
	it := d.iteration
	gameID := uuid.New()

	opts := engine.DefaultOptions()
	opts.NumPlayers = uint8(d.cfg.NumPlayers)
	opts.MaxTurns = uint16(d.cfg.MaxTurns)
	opts.StartPlayer = uint8(it % d.cfg.NumPlayers)

	g := engine.NewGame(d.nextSeed(), opts)
	if d.sink != nil {
		g.SetEventSink(func(ev engine.Event) { d.sink(gameID, it, ev) })
	}

	var stepErr error

	for i := range d.agents {
		d.agents[i].Reset()
	}

	pending := make([]pendingStep, len(d.agents))
	traj := make([][]agent.Step, len(d.agents))

	if err := g.Deal(); err != nil {
		stepErr = err
	}

	for stepErr == nil && !g.IsTerminal() {
		p := g.CurrentPlayer
		obs := agent.Observe(&g, p)

		// The previous action by this player has now resolved into a
		// new observable state; deliver the transition.
		if pending[p].valid {
			d.agents[p].OnStep(pending[p].obs, pending[p].action, 0, obs, false)
			pending[p].valid = false
		}

		a := d.agents[p].SelectAction(obs, g.LegalActionsList())
		if err := g.Apply(a); err != nil {
			if errors.Is(err, engine.ErrEmptyPiles) {
				// Both piles ran dry: the engine already ended the round
				// as a draw. The action itself was legal.
				traj[p] = append(traj[p], agent.Step{Obs: obs, Action: a})
				pending[p] = pendingStep{obs: obs, action: a, valid: true}
				break
			}
			stepErr = fmt.Errorf("iteration %d, %s: %w", it, d.agents[p].Name(), err)
			break
		}
		traj[p] = append(traj[p], agent.Step{Obs: obs, Action: a})
		pending[p] = pendingStep{obs: obs, action: a, valid: true}
	}

	aborted := stepErr != nil
	winner := int(g.Winner)
	if aborted {
		winner = int(engine.NoWinner)
	}

	for i := range d.agents {
		reward := 0.0
		if winner >= 0 {
			if i == winner {
				reward = 1
			} else {
				reward = -1
			}
		}
		if pending[i].valid {
			next := agent.Observe(&g, uint8(i))
			d.agents[i].OnStep(pending[i].obs, pending[i].action, reward, next, true)
		}
		if n := len(traj[i]); n > 0 {
			traj[i][n-1].Reward = reward
		}
		d.agents[i].OnEpisodeEnd(traj[i], reward)
	}

	out := Outcome{
		GameID:    gameID,
		Iteration: it,
		Winner:    winner,
		TurnCount: int(g.TurnNumber),
		Aborted:   aborted,
	}
	d.record(out)
	return out, stepErr
}

// record folds the outcome into the running totals and appends the
// tracked player's cumulative win rate.
func (d *Driver) record(out Outcome) {
	d.iteration++
	d.outcomes = append(d.outcomes, out)
	d.turnsTotal += out.TurnCount
	switch {
	case out.Aborted:
		d.aborted++
	case out.Winner < 0:
		d.draws++
	default:
		d.wins[out.Winner]++
	}
	p := Point{
		Iteration: d.iteration,
		WinRate:   float64(d.wins[trackedPlayer]) / float64(d.iteration),
	}
	d.series.append(p)
	if d.hook != nil {
		d.hook(p)
	}
}

// RunTournament plays cfg.Iterations games. Cancellation is honored at
// iteration boundaries: a game in progress always finishes, and the
// series built so far is returned alongside ctx.Err().
//
// Aborted episodes are counted and skipped over; they do not stop the
// tournament.
func (d *Driver) RunTournament(ctx context.Context) (*WinRateSeries, error) {
	var abortErrs []error
	for d.iteration < d.cfg.Iterations {
		if err := ctx.Err(); err != nil {
			return d.series, err
		}
		if _, err := d.RunIteration(); err != nil {
			abortErrs = append(abortErrs, err)
		}
	}
	return d.series, errors.Join(abortErrs...)
}

// Summary reports the totals accumulated so far.
func (d *Driver) Summary() Summary {
	names := make([]string, len(d.agents))
	for i, a := range d.agents {
		names[i] = a.Name()
	}
	wins := make([]int, len(d.wins))
	copy(wins, d.wins)
	s := Summary{
		TotalGames: d.iteration,
		AgentNames: names,
		WinCounts:  wins,
		Draws:      d.draws,
		Aborted:    d.aborted,
	}
	if d.iteration > 0 {
		s.AvgTurnCount = float64(d.turnsTotal) / float64(d.iteration)
	}
	return s
}
