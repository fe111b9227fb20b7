package engine

// EventType identifies the kind of a game event.
type EventType uint8

const (
	EventPlayedCard        EventType = iota // Player played Card
	EventDrewCards                          // Player drew Count cards; Penalty marks forced draws
	EventSkippedTurn                        // Player lost their turn
	EventDirectionReversed                  // direction of play flipped
	EventColorChosen                        // Player chose Color after a wild
	EventReshuffled                         // discard pile (minus top) reshuffled into the draw pile
	EventRoundWon                           // Player emptied their hand
)

func (t EventType) String() string {
	switch t {
	case EventPlayedCard:
		return "played_card"
	case EventDrewCards:
		return "drew_cards"
	case EventSkippedTurn:
		return "skipped_turn"
	case EventDirectionReversed:
		return "direction_reversed"
	case EventColorChosen:
		return "color_chosen"
	case EventReshuffled:
		return "reshuffled"
	case EventRoundWon:
		return "round_won"
	}
	return "unknown"
}

// Event is a typed notification of a state transition. Events carry no
// hidden information: they describe only what a spectator would see.
type Event struct {
	Type    EventType
	Turn    uint16
	Player  uint8
	Card    Card  // EventPlayedCard
	Count   uint8 // EventDrewCards
	Penalty bool  // EventDrewCards caused by DrawTwo/WildDrawFour
	Color   uint8 // EventColorChosen
}

// EventSink receives engine events as they are emitted. Sinks must not
// call back into the engine.
type EventSink func(Event)

func (g *GameState) emit(ev Event) {
	if g.sink == nil {
		return
	}
	ev.Turn = g.TurnNumber
	g.sink(ev)
}
