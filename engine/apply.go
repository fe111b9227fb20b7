package engine

// Apply applies an action by index. Illegal actions fail with
// *IllegalActionError and leave the state untouched. The only other
// failure is ErrEmptyPiles from a forced draw, which ends the round as
// a draw after reporting.
func (g *GameState) Apply(actionIdx uint16) error {
	mask := g.LegalActions()
	if actionIdx >= NumActions || !hasBit(&mask, actionIdx) {
		return &IllegalActionError{
			Player: g.CurrentPlayer,
			Phase:  g.Phase,
			Action: actionIdx,
			State:  g.stateSummary(),
		}
	}

	switch {
	case actionIdx == ActionPass:
		return g.passDrawn()
	default:
		if color, ok := ActionIsChooseColor(actionIdx); ok {
			return g.chooseColor(color)
		}
		handIdx, _ := ActionIsPlay(actionIdx)
		return g.playCard(handIdx)
	}
}

// playCard moves hand[handIdx] to the discard pile and applies its effect.
func (g *GameState) playCard(handIdx uint8) error {
	player := g.CurrentPlayer
	hand := &g.Players[player]
	card := hand.Hand[handIdx]

	// Swap-remove: hands are multisets, order is irrelevant.
	hand.HandLen--
	hand.Hand[handIdx] = hand.Hand[hand.HandLen]
	hand.Hand[hand.HandLen] = EmptyCard

	g.DiscardPile[g.DiscardLen] = card
	g.DiscardLen++
	g.CurrentColor = card.Color()

	g.emit(Event{Type: EventPlayedCard, Player: player, Card: card})

	// The round ends the instant a hand empties, even mid-wild: no
	// color choice or penalty resolution follows a winning play.
	if hand.HandLen == 0 {
		g.Winner = int8(player)
		g.Phase = PhaseRoundOver
		g.emit(Event{Type: EventRoundWon, Player: player})
		return nil
	}

	switch card.Rank() {
	case RankWild, RankWildDrawFour:
		g.PendingFour = card.Rank() == RankWildDrawFour
		g.Phase = PhaseAwaitColor
		return nil

	case RankSkip:
		g.emit(Event{Type: EventSkippedTurn, Player: g.NextPlayer()})
		return g.endTurn(2)

	case RankReverse:
		g.Direction = -g.Direction
		g.emit(Event{Type: EventDirectionReversed, Player: player})
		if g.Opts.numPlayers() == 2 {
			// Two-player Reverse acts as Skip: the same player goes again.
			g.emit(Event{Type: EventSkippedTurn, Player: g.NextPlayer()})
			return g.endTurn(2)
		}
		return g.endTurn(1)

	case RankDrawTwo:
		g.PendingDraw = 2
		return g.endTurn(1)

	default: // number card
		return g.endTurn(1)
	}
}

// chooseColor resolves a pending wild and advances the turn.
func (g *GameState) chooseColor(color uint8) error {
	g.CurrentColor = color
	g.emit(Event{Type: EventColorChosen, Player: g.CurrentPlayer, Color: color})
	if g.PendingFour {
		g.PendingDraw = 4
		g.PendingFour = false
	}
	return g.endTurn(1)
}

// passDrawn declines to play the auto-drawn card and ends the turn.
func (g *GameState) passDrawn() error {
	return g.endTurn(1)
}

// endTurn moves the current player `positions` seats along the
// direction of play and starts the next turn.
func (g *GameState) endTurn(positions int8) error {
	g.TurnNumber++
	g.CurrentPlayer = g.playerAt(positions)
	return g.beginTurn()
}

// beginTurn resolves everything that happens before a player gets a
// decision: pending draw penalties (applied atomically, never stacked),
// and the auto-draw for players with no legal play. Turns with no
// decision cascade to the following player.
func (g *GameState) beginTurn() error {
	for {
		if g.Phase == PhaseRoundOver {
			return nil
		}
		if g.Opts.MaxTurns > 0 && g.TurnNumber >= g.Opts.MaxTurns {
			g.Winner = NoWinner
			g.Phase = PhaseRoundOver
			return nil
		}

		if g.PendingDraw > 0 {
			count := g.PendingDraw
			g.PendingDraw = 0
			for i := uint8(0); i < count; i++ {
				if _, err := g.drawOne(g.CurrentPlayer); err != nil {
					return g.abortRound(err)
				}
			}
			g.emit(Event{Type: EventDrewCards, Player: g.CurrentPlayer, Count: count, Penalty: true})
			g.emit(Event{Type: EventSkippedTurn, Player: g.CurrentPlayer})
			g.TurnNumber++
			g.CurrentPlayer = g.playerAt(1)
			continue
		}

		if g.hasLegalPlay(g.CurrentPlayer) {
			g.Phase = PhaseAwaitPlay
			return nil
		}

		// No legal play: auto-draw one card.
		drawn, err := g.drawOne(g.CurrentPlayer)
		if err != nil {
			return g.abortRound(err)
		}
		g.emit(Event{Type: EventDrewCards, Player: g.CurrentPlayer, Count: 1})
		if g.Playable(drawn) {
			g.DrawnIdx = g.Players[g.CurrentPlayer].HandLen - 1
			g.Phase = PhaseAwaitDrawDecision
			return nil
		}
		g.TurnNumber++
		g.CurrentPlayer = g.playerAt(1)
	}
}

// abortRound ends the round as a draw after an unrecoverable engine
// failure (exhausted piles) and surfaces the error.
func (g *GameState) abortRound(err error) error {
	g.Winner = NoWinner
	g.Phase = PhaseRoundOver
	return err
}

// drawOne moves the top draw-pile card into the player's hand,
// reshuffling the discard pile first if needed.
func (g *GameState) drawOne(player uint8) (Card, error) {
	if g.DrawLen == 0 {
		g.reshuffleFromDiscard()
	}
	if g.DrawLen == 0 {
		return EmptyCard, ErrEmptyPiles
	}
	g.DrawLen--
	card := g.DrawPile[g.DrawLen]
	hand := &g.Players[player]
	hand.Hand[hand.HandLen] = card
	hand.HandLen++
	return card, nil
}

// reshuffleFromDiscard moves all discard cards except the top back into
// the draw pile and shuffles. This is the only deck-refill path.
func (g *GameState) reshuffleFromDiscard() {
	if g.DiscardLen <= 1 {
		return
	}

	top := g.DiscardPile[g.DiscardLen-1]
	count := g.DiscardLen - 1
	for i := uint8(0); i < count; i++ {
		g.DrawPile[i] = g.DiscardPile[i]
	}
	g.DrawLen = count

	g.DiscardPile[0] = top
	g.DiscardLen = 1

	g.shuffleDrawPile()
	g.emit(Event{Type: EventReshuffled, Count: count})
}
