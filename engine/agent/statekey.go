package agent

import (
	"strings"

	engine "github.com/ayaelnakeb/uno-ai-model/engine"
)

// Hand-feature caps. Counts saturate so the state space stays tabular:
// holding five red number cards and holding two steer play identically.
const (
	capNumber  = 2 // per-color number-card count
	capSpecial = 1 // per-rank Skip/Reverse/DrawTwo count
	capWild    = 1 // per-rank wild count
)

// handFeatures is the order-independent summary of a hand.
type handFeatures struct {
	number    [engine.NumColors]uint8 // number cards per color, capped
	skip      uint8
	reverse   uint8
	drawTwo   uint8
	wild      uint8
	wildFour  uint8
	playNum   [engine.NumColors]uint8 // playable number card per color, 0/1
	playSkip  uint8
	playRev   uint8
	playDraw2 uint8
}

func cap8(v, limit uint8) uint8 {
	if v > limit {
		return limit
	}
	return v
}

// features folds a hand into its canonical bucket counts. playable is
// evaluated against the observation's current color and discard top,
// matching the engine's legality rule.
func features(obs Observation) handFeatures {
	var f handFeatures
	topRank := obs.DiscardTop.Rank()

	for _, c := range obs.Hand {
		playable := c.IsWild() || c.Color() == obs.CurrentColor || c.Rank() == topRank

		switch {
		case c.IsNumber():
			f.number[c.Color()]++
			if playable {
				f.playNum[c.Color()] = 1
			}
		case c.Rank() == engine.RankSkip:
			f.skip++
			if playable {
				f.playSkip = 1
			}
		case c.Rank() == engine.RankReverse:
			f.reverse++
			if playable {
				f.playRev = 1
			}
		case c.Rank() == engine.RankDrawTwo:
			f.drawTwo++
			if playable {
				f.playDraw2 = 1
			}
		case c.Rank() == engine.RankWild:
			f.wild++
		case c.Rank() == engine.RankWildDrawFour:
			f.wildFour++
		}
	}

	for i := range f.number {
		f.number[i] = cap8(f.number[i], capNumber)
	}
	f.skip = cap8(f.skip, capSpecial)
	f.reverse = cap8(f.reverse, capSpecial)
	f.drawTwo = cap8(f.drawTwo, capSpecial)
	f.wild = cap8(f.wild, capWild)
	f.wildFour = cap8(f.wildFour, capWild)
	return f
}

var colorLetters = [5]byte{'R', 'Y', 'G', 'B', 'W'}

// rankClass collapses a rank to a single state-key character.
func rankClass(rank uint8) byte {
	switch {
	case rank <= engine.RankNine:
		return 'n'
	case rank == engine.RankSkip:
		return 's'
	case rank == engine.RankReverse:
		return 'r'
	case rank == engine.RankDrawTwo:
		return 'd'
	case rank == engine.RankWild:
		return 'w'
	default:
		return 'f'
	}
}

// StateKey derives the canonical, hand-order-independent key for an
// observation: current color, discard-top class, capped hand bucket
// counts, playable flags, pending-penalty flag, and direction. Two
// hands holding the same multiset of cards always produce the same key.
func StateKey(obs Observation) string {
	f := features(obs)

	var b strings.Builder
	b.Grow(32)

	b.WriteByte(colorLetters[obs.CurrentColor])
	b.WriteByte(rankClass(obs.DiscardTop.Rank()))
	b.WriteByte('|')
	for _, n := range f.number {
		b.WriteByte('0' + n)
	}
	b.WriteByte('|')
	b.WriteByte('0' + f.skip)
	b.WriteByte('0' + f.reverse)
	b.WriteByte('0' + f.drawTwo)
	b.WriteByte('0' + f.wild)
	b.WriteByte('0' + f.wildFour)
	b.WriteByte('|')
	for _, n := range f.playNum {
		b.WriteByte('0' + n)
	}
	b.WriteByte('0' + f.playSkip)
	b.WriteByte('0' + f.playRev)
	b.WriteByte('0' + f.playDraw2)
	b.WriteByte('|')
	if obs.PendingPenalty > 0 {
		b.WriteByte('p')
	} else {
		b.WriteByte('-')
	}
	if obs.Direction == engine.DirClockwise {
		b.WriteByte('>')
	} else {
		b.WriteByte('<')
	}
	return b.String()
}

// ActionKey collapses an engine action index into the coarse bucket
// value tables are indexed by: the color of a played number card, the
// rank of a played action card, a chosen color, or pass.
func ActionKey(obs Observation, actionIdx uint16) string {
	if actionIdx == engine.ActionPass {
		return "pass"
	}
	if color, ok := engine.ActionIsChooseColor(actionIdx); ok {
		return "choose:" + string(colorLetters[color])
	}
	handIdx, ok := engine.ActionIsPlay(actionIdx)
	if !ok || int(handIdx) >= len(obs.Hand) {
		return "invalid"
	}

	c := obs.Hand[handIdx]
	switch {
	case c.IsNumber():
		return "play:" + string(colorLetters[c.Color()])
	case c.Rank() == engine.RankSkip:
		return "play:skip"
	case c.Rank() == engine.RankReverse:
		return "play:reverse"
	case c.Rank() == engine.RankDrawTwo:
		return "play:draw2"
	case c.Rank() == engine.RankWild:
		return "play:wild"
	default:
		return "play:wild4"
	}
}
