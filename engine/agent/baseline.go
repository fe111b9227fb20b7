package agent

import (
	engine "github.com/ayaelnakeb/uno-ai-model/engine"
)

// RandomAgent picks uniformly among legal actions and never learns.
// It is the standard tournament opponent.
type RandomAgent struct {
	rng rng
}

// NewRandom creates a random baseline agent.
func NewRandom(seed uint64) *RandomAgent {
	return &RandomAgent{rng: newRNG(seed)}
}

func (a *RandomAgent) Name() string { return "random" }

func (a *RandomAgent) SelectAction(_ Observation, legal []uint16) uint16 {
	return legal[a.rng.intn(len(legal))]
}

func (a *RandomAgent) OnStep(Observation, uint16, float64, Observation, bool) {}
func (a *RandomAgent) OnEpisodeEnd([]Step, float64)                           {}
func (a *RandomAgent) Reset()                                                 {}

// GreedyAgent is a fixed rule-based baseline: prefer a number card
// matching the current color, then any matching special, and save
// wilds for last. Color choices favor the color it holds most of.
type GreedyAgent struct{}

// NewGreedy creates the rule-based baseline agent.
func NewGreedy() *GreedyAgent { return &GreedyAgent{} }

func (a *GreedyAgent) Name() string { return "greedy" }

func (a *GreedyAgent) SelectAction(obs Observation, legal []uint16) uint16 {
	if _, ok := engine.ActionIsChooseColor(legal[0]); ok {
		return engine.EncodeChooseColor(a.dominantColor(obs))
	}

	best := legal[0]
	bestScore := -1
	for _, act := range legal {
		handIdx, ok := engine.ActionIsPlay(act)
		if !ok {
			continue
		}
		c := obs.Hand[handIdx]
		score := 0
		switch {
		case c.IsNumber() && c.Color() == obs.CurrentColor:
			score = 3
		case c.IsNumber():
			score = 2
		case !c.IsWild():
			score = 1
		}
		if score > bestScore {
			best, bestScore = act, score
		}
	}
	return best
}

// dominantColor returns the color the agent holds the most of,
// defaulting to red for an all-wild hand.
func (a *GreedyAgent) dominantColor(obs Observation) uint8 {
	var counts [engine.NumColors]uint8
	for _, c := range obs.Hand {
		if !c.IsWild() {
			counts[c.Color()]++
		}
	}
	best := uint8(0)
	for color := uint8(1); color < engine.NumColors; color++ {
		if counts[color] > counts[best] {
			best = color
		}
	}
	return best
}

func (a *GreedyAgent) OnStep(Observation, uint16, float64, Observation, bool) {}
func (a *GreedyAgent) OnEpisodeEnd([]Step, float64)                           {}
func (a *GreedyAgent) Reset()                                                 {}
