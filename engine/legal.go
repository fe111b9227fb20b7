package engine

// Playable reports whether the card may be played on the current
// discard top: color match, rank match, or any wild-family card.
func (g *GameState) Playable(c Card) bool {
	if c.IsWild() {
		return true
	}
	return c.Color() == g.CurrentColor || c.Rank() == g.DiscardTop().Rank()
}

// hasLegalPlay reports whether the player holds at least one playable card.
func (g *GameState) hasLegalPlay(player uint8) bool {
	hand := &g.Players[player]
	for i := uint8(0); i < hand.HandLen; i++ {
		if g.Playable(hand.Hand[i]) {
			return true
		}
	}
	return false
}

// setBit sets bit idx in the bitmask.
func setBit(mask *[2]uint64, idx uint16) {
	mask[idx/64] |= 1 << (idx % 64)
}

// hasBit reports whether bit idx is set.
func hasBit(mask *[2]uint64, idx uint16) bool {
	return mask[idx/64]>>(idx%64)&1 == 1
}

// LegalActions returns a bitmask of legal action indices.
// Bit i of result[i/64] is set if action i is legal.
// Zero heap allocation.
func (g *GameState) LegalActions() [2]uint64 {
	var mask [2]uint64

	switch g.Phase {
	case PhaseAwaitPlay:
		// Every playable hand card. beginTurn guarantees at least one.
		hand := &g.Players[g.CurrentPlayer]
		for i := uint8(0); i < hand.HandLen; i++ {
			if g.Playable(hand.Hand[i]) {
				setBit(&mask, EncodePlay(i))
			}
		}

	case PhaseAwaitColor:
		for c := uint8(0); c < NumColors; c++ {
			setBit(&mask, EncodeChooseColor(c))
		}

	case PhaseAwaitDrawDecision:
		// The drawn card is playable by construction; passing is always allowed.
		setBit(&mask, EncodePlay(g.DrawnIdx))
		setBit(&mask, ActionPass)

	case PhaseRoundOver:
		// No legal actions.
	}

	return mask
}

// LegalActionsList returns legal actions as a slice in ascending index
// order (allocates).
func (g *GameState) LegalActionsList() []uint16 {
	mask := g.LegalActions()
	var actions []uint16
	for i := uint16(0); i < NumActions; i++ {
		if hasBit(&mask, i) {
			actions = append(actions, i)
		}
	}
	return actions
}
