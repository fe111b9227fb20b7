package engine

import "testing"

// buildState crafts a mid-game state for transition tests. The draw
// pile keeps the full 108-card build from NewGame; tests that assert
// the card-count invariant construct states via Deal instead.
func buildState(numPlayers uint8, hands [][]Card, top Card) GameState {
	opts := DefaultOptions()
	opts.NumPlayers = numPlayers
	g := NewGame(99, opts)

	for p, hand := range hands {
		for i, c := range hand {
			g.Players[p].Hand[i] = c
		}
		g.Players[p].HandLen = uint8(len(hand))
	}
	g.DiscardPile[0] = top
	g.DiscardLen = 1
	g.CurrentColor = top.Color()
	g.Phase = PhaseAwaitPlay
	return g
}

func TestPlayable(t *testing.T) {
	g := buildState(2, [][]Card{{}, {}}, NewCard(ColorRed, 3))

	cases := []struct {
		name string
		card Card
		want bool
	}{
		{"color match", NewCard(ColorRed, 7), true},
		{"rank match", NewCard(ColorBlue, 3), true},
		{"wild always", NewCard(ColorWild, RankWild), true},
		{"wild draw four always", NewCard(ColorWild, RankWildDrawFour), true},
		{"no match", NewCard(ColorGreen, 8), false},
		{"special rank match", NewCard(ColorRed, RankSkip), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := g.Playable(tc.card); got != tc.want {
				t.Errorf("Playable(%s) = %v, want %v", tc.card, got, tc.want)
			}
		})
	}
}

// TestPlayableAfterWildColorChoice verifies legality follows the chosen
// color, not the wild card sitting on the discard pile.
func TestPlayableAfterWildColorChoice(t *testing.T) {
	g := buildState(2, [][]Card{{}, {}}, NewCard(ColorRed, 3))
	g.DiscardPile[1] = NewCard(ColorWild, RankWild)
	g.DiscardLen = 2
	g.CurrentColor = ColorGreen

	if !g.Playable(NewCard(ColorGreen, 9)) {
		t.Error("card matching chosen color should be playable")
	}
	if g.Playable(NewCard(ColorRed, 9)) {
		t.Error("card matching neither chosen color nor top rank should not be playable")
	}
}

func TestLegalActionsAwaitPlay(t *testing.T) {
	hand := []Card{
		NewCard(ColorRed, 5),              // playable: color
		NewCard(ColorGreen, 8),            // not playable
		NewCard(ColorBlue, 3),             // playable: rank
		NewCard(ColorWild, RankWild),      // playable: wild
	}
	g := buildState(2, [][]Card{hand, {NewCard(ColorRed, 1)}}, NewCard(ColorRed, 3))

	got := g.LegalActionsList()
	want := []uint16{EncodePlay(0), EncodePlay(2), EncodePlay(3)}
	if len(got) != len(want) {
		t.Fatalf("legal actions = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("legal[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestLegalActionsAwaitColor(t *testing.T) {
	g := buildState(2, [][]Card{{NewCard(ColorWild, RankWild), NewCard(ColorRed, 5)}, {NewCard(ColorRed, 1)}}, NewCard(ColorRed, 3))
	if err := g.Apply(EncodePlay(0)); err != nil {
		t.Fatalf("Apply wild: %v", err)
	}
	if g.Phase != PhaseAwaitColor {
		t.Fatalf("Phase = %s, want %s", g.Phase, PhaseAwaitColor)
	}

	got := g.LegalActionsList()
	if len(got) != int(NumColors) {
		t.Fatalf("legal actions = %v, want all %d color choices", got, NumColors)
	}
	for c := uint8(0); c < NumColors; c++ {
		if got[c] != EncodeChooseColor(c) {
			t.Errorf("legal[%d] = %d, want %d", c, got[c], EncodeChooseColor(c))
		}
	}
}

func TestLegalActionsRoundOver(t *testing.T) {
	g := buildState(2, [][]Card{{NewCard(ColorRed, 5)}, {NewCard(ColorRed, 1)}}, NewCard(ColorRed, 3))
	if err := g.Apply(EncodePlay(0)); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if g.Phase != PhaseRoundOver {
		t.Fatalf("Phase = %s, want %s", g.Phase, PhaseRoundOver)
	}
	if legal := g.LegalActionsList(); len(legal) != 0 {
		t.Errorf("legal actions in terminal state = %v, want none", legal)
	}
}
