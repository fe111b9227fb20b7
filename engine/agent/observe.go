// Package agent implements the policy agents that consume the engine:
// tabular Q-Learning and first-visit Monte Carlo control, plus simple
// baselines. All agents share the same capability contract and the
// same canonical state-key encoding, so value tables generalize across
// hands that differ only in card order.
package agent

import (
	engine "github.com/ayaelnakeb/uno-ai-model/engine"
)

// Observation is the read-only projection of the game state visible to
// one player: their own hand, the public piles, and opponent hand
// sizes, never opponent cards.
type Observation struct {
	Player         uint8
	Hand           []engine.Card
	HandSizes      [engine.MaxPlayers]uint8
	NumPlayers     uint8
	DiscardTop     engine.Card
	CurrentColor   uint8
	Direction      int8
	PendingPenalty uint8
	Phase          engine.Phase
	Terminal       bool
}

// Observe builds the observable projection for the given player. The
// returned hand is a copy; mutating it never touches engine state.
func Observe(g *engine.GameState, player uint8) Observation {
	obs := Observation{
		Player:         player,
		NumPlayers:     g.NumActivePlayers(),
		DiscardTop:     g.DiscardTop(),
		CurrentColor:   g.CurrentColor,
		Direction:      g.Direction,
		PendingPenalty: g.PendingDraw,
		Phase:          g.Phase,
		Terminal:       g.IsTerminal(),
	}

	hand := &g.Players[player]
	obs.Hand = make([]engine.Card, hand.HandLen)
	copy(obs.Hand, hand.Hand[:hand.HandLen])

	for p := uint8(0); p < obs.NumPlayers; p++ {
		obs.HandSizes[p] = g.Players[p].HandLen
	}
	return obs
}
