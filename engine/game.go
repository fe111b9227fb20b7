// Package engine implements the UNO rules state machine.
//
// The engine is a flat value-type state machine suitable for
// high-throughput self-play: no heap allocation on the hot path, a
// seedable xorshift64 RNG for reproducible tournaments, and typed
// events delivered through a caller-supplied sink. The engine itself
// performs no logging or I/O.
package engine

const (
	MaxPlayers = 4
	DeckSize   = 108
)

// Direction of play.
const (
	DirClockwise        int8 = 1
	DirCounterClockwise int8 = -1
)

// NoWinner marks a round that ended without a winner (turn-cap draw or
// exhausted piles).
const NoWinner int8 = -1

// Phase identifies what the state machine is waiting for.
type Phase uint8

const (
	PhaseAwaitPlay         Phase = iota // current player must play a card
	PhaseAwaitColor                     // current player must choose a color after a wild
	PhaseAwaitDrawDecision              // current player drew and may play the card or pass
	PhaseRoundOver                      // terminal
)

func (p Phase) String() string {
	switch p {
	case PhaseAwaitPlay:
		return "await_play"
	case PhaseAwaitColor:
		return "await_color"
	case PhaseAwaitDrawDecision:
		return "await_draw_decision"
	case PhaseRoundOver:
		return "round_over"
	}
	return "unknown"
}

// Options holds configurable game settings.
type Options struct {
	NumPlayers  uint8  // 2–4; 0 treated as 2
	HandSize    uint8  // cards dealt per player
	StartPlayer uint8  // player who takes the first turn
	MaxTurns    uint16 // 0 = unlimited; exceeding ends the round as a draw
}

// DefaultOptions returns the standard two-player setup.
func DefaultOptions() Options {
	return Options{
		NumPlayers: 2,
		HandSize:   7,
		MaxTurns:   500,
	}
}

// numPlayers returns the effective number of players, treating 0 as 2.
func (o *Options) numPlayers() uint8 {
	if o.NumPlayers == 0 {
		return 2
	}
	return o.NumPlayers
}

// PlayerState holds one player's hand. Hands are multisets: order is
// irrelevant and removal is swap-remove.
type PlayerState struct {
	Hand    [DeckSize]Card
	HandLen uint8
}

// GameState holds the complete, self-contained state of an UNO round.
// It is a flat value type (no pointers, no slices) so snapshots are
// plain struct copies.
type GameState struct {
	Players       [MaxPlayers]PlayerState
	DrawPile      [DeckSize]Card
	DrawLen       uint8
	DiscardPile   [DeckSize]Card
	DiscardLen    uint8
	CurrentPlayer uint8
	CurrentColor  uint8 // resolves wild ambiguity; ColorWild while a color choice is pending
	Direction     int8
	Phase         Phase
	PendingDraw   uint8 // penalty applied at the start of the penalized player's turn
	PendingFour   bool  // the wild awaiting a color choice was a WildDrawFour
	DrawnIdx      uint8 // hand index of the auto-drawn card in PhaseAwaitDrawDecision
	Winner        int8  // NoWinner until a player wins
	TurnNumber    uint16
	RNG           uint64
	Opts          Options

	sink EventSink
}

// ---------------------------------------------------------------------------
// xorshift64 RNG, inline, no interface
// ---------------------------------------------------------------------------

func (g *GameState) nextRand() uint64 {
	x := g.RNG
	x ^= x << 13
	x ^= x >> 7
	x ^= x << 17
	g.RNG = x
	return x
}

// randN returns a random number in [0, n).
func (g *GameState) randN(n uint64) uint64 {
	return g.nextRand() % n
}

// ---------------------------------------------------------------------------
// NewGame and Deal
// ---------------------------------------------------------------------------

// NewGame initializes a GameState with the given seed and options.
// The 108-card deck is built but not yet shuffled or dealt.
//
// Composition per color: one 0, two each of 1–9, two each of
// Skip/Reverse/DrawTwo (25 × 4 = 100), plus four Wild and four
// WildDrawFour.
func NewGame(seed uint64, opts Options) GameState {
	var g GameState
	g.RNG = seed
	if g.RNG == 0 {
		g.RNG = 1 // xorshift can't start at 0
	}
	g.Opts = opts
	g.Direction = DirClockwise
	g.CurrentPlayer = opts.StartPlayer % opts.numPlayers()
	g.Winner = NoWinner

	idx := 0
	for color := uint8(0); color < NumColors; color++ {
		g.DrawPile[idx] = NewCard(color, RankZero)
		idx++
		for copies := 0; copies < 2; copies++ {
			for rank := uint8(1); rank <= RankDrawTwo; rank++ {
				g.DrawPile[idx] = NewCard(color, rank)
				idx++
			}
		}
	}
	for i := 0; i < 4; i++ {
		g.DrawPile[idx] = NewCard(ColorWild, RankWild)
		idx++
		g.DrawPile[idx] = NewCard(ColorWild, RankWildDrawFour)
		idx++
	}
	g.DrawLen = uint8(idx) // 108

	return g
}

// SetEventSink installs the sink that receives engine events. A nil
// sink discards them.
func (g *GameState) SetEventSink(sink EventSink) { g.sink = sink }

// Deal shuffles the deck, deals each player their opening hand, and
// flips the first discard. The flip puts action cards back under the
// pile until a number card turns up, so the opening state always has
// an unambiguous color. Deal ends by starting the first turn, which
// may auto-draw for a player holding no legal play.
func (g *GameState) Deal() error {
	g.shuffleDrawPile()

	n := g.Opts.numPlayers()
	for c := uint8(0); c < g.Opts.HandSize; c++ {
		for p := uint8(0); p < n; p++ {
			g.DrawLen--
			g.Players[p].Hand[g.Players[p].HandLen] = g.DrawPile[g.DrawLen]
			g.Players[p].HandLen++
		}
	}

	for {
		g.DrawLen--
		top := g.DrawPile[g.DrawLen]
		if top.IsNumber() {
			g.DiscardPile[0] = top
			g.DiscardLen = 1
			g.CurrentColor = top.Color()
			break
		}
		// Slide the pile up one slot and tuck the action card underneath.
		copy(g.DrawPile[1:g.DrawLen+1], g.DrawPile[:g.DrawLen])
		g.DrawPile[0] = top
		g.DrawLen++
	}

	return g.beginTurn()
}

// shuffleDrawPile performs a Fisher-Yates shuffle over the draw pile.
func (g *GameState) shuffleDrawPile() {
	for i := int(g.DrawLen) - 1; i > 0; i-- {
		j := int(g.randN(uint64(i + 1)))
		g.DrawPile[i], g.DrawPile[j] = g.DrawPile[j], g.DrawPile[i]
	}
}

// ---------------------------------------------------------------------------
// Query methods
// ---------------------------------------------------------------------------

// IsTerminal returns true once the round is over.
func (g *GameState) IsTerminal() bool { return g.Phase == PhaseRoundOver }

// DiscardTop returns the top card of the discard pile, or EmptyCard if empty.
func (g *GameState) DiscardTop() Card {
	if g.DiscardLen == 0 {
		return EmptyCard
	}
	return g.DiscardPile[g.DiscardLen-1]
}

// NumActivePlayers returns the number of players in this round.
func (g *GameState) NumActivePlayers() uint8 { return g.Opts.numPlayers() }

// playerAt returns the player `offset` seats from the current player in
// the direction of play.
func (g *GameState) playerAt(offset int8) uint8 {
	n := int8(g.Opts.numPlayers())
	p := (int8(g.CurrentPlayer) + offset*g.Direction) % n
	if p < 0 {
		p += n
	}
	return uint8(p)
}

// NextPlayer returns the player who acts after the current one.
func (g *GameState) NextPlayer() uint8 { return g.playerAt(1) }

// TotalCards returns the card count across draw pile, discard pile, and
// all hands. It equals DeckSize at every reachable state.
func (g *GameState) TotalCards() int {
	total := int(g.DrawLen) + int(g.DiscardLen)
	for p := uint8(0); p < g.Opts.numPlayers(); p++ {
		total += int(g.Players[p].HandLen)
	}
	return total
}

// ---------------------------------------------------------------------------
// Snapshot (Save / Restore)
// ---------------------------------------------------------------------------

// Snapshot is a complete value-copy of GameState.
// No heap allocation, saving and restoring are plain struct copies.
type Snapshot GameState

// Save returns a snapshot of the current game state.
func (g *GameState) Save() Snapshot { return Snapshot(*g) }

// Restore replaces the game state with the given snapshot.
func (g *GameState) Restore(s Snapshot) { *g = GameState(s) }
