package engine

import (
	"errors"
	"fmt"
)

// ErrEmptyPiles is returned when a draw is required but both the draw
// pile and the reshufflable part of the discard pile are exhausted.
// Given the fixed 108-card invariant this is guarded against rather
// than expected; the round ends as a draw when it occurs.
var ErrEmptyPiles = errors.New("draw pile and discard pile are both exhausted")

// IllegalActionError reports an action outside the legal set. The
// engine guarantees no state mutation happened. The Driver treats this
// as an agent-implementation bug and aborts the episode.
type IllegalActionError struct {
	Player uint8
	Phase  Phase
	Action uint16
	State  string // compact state summary for reproducing the transition
}

func (e *IllegalActionError) Error() string {
	return fmt.Sprintf("illegal action %d by player %d in phase %s (%s)",
		e.Action, e.Player, e.Phase, e.State)
}

// stateSummary renders enough context to reproduce a failing transition.
func (g *GameState) stateSummary() string {
	return fmt.Sprintf("turn=%d top=%s color=%s dir=%d pending=%d hand=%d",
		g.TurnNumber, g.DiscardTop(), ColorName(g.CurrentColor),
		g.Direction, g.PendingDraw, g.Players[g.CurrentPlayer].HandLen)
}
