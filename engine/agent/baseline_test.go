package agent

import (
	"testing"

	engine "github.com/ayaelnakeb/uno-ai-model/engine"
)

func TestRandomAgentStaysLegal(t *testing.T) {
	a := NewRandom(3)
	obs := obsWithHand([]engine.Card{
		engine.NewCard(engine.ColorRed, 5),
		engine.NewCard(engine.ColorRed, 7),
		engine.NewCard(engine.ColorWild, engine.RankWild),
	})
	legal := []uint16{engine.EncodePlay(0), engine.EncodePlay(1), engine.EncodePlay(2)}

	seen := make(map[uint16]bool)
	for i := 0; i < 300; i++ {
		pick := a.SelectAction(obs, legal)
		ok := false
		for _, l := range legal {
			if l == pick {
				ok = true
			}
		}
		if !ok {
			t.Fatalf("pick %d not in legal set", pick)
		}
		seen[pick] = true
	}
	if len(seen) != len(legal) {
		t.Errorf("uniform selection visited %d of %d actions", len(seen), len(legal))
	}
}

func TestRandomAgentReproducible(t *testing.T) {
	obs := obsWithHand([]engine.Card{
		engine.NewCard(engine.ColorRed, 5),
		engine.NewCard(engine.ColorRed, 7),
	})
	legal := []uint16{engine.EncodePlay(0), engine.EncodePlay(1)}

	a := NewRandom(42)
	b := NewRandom(42)
	for i := 0; i < 50; i++ {
		if a.SelectAction(obs, legal) != b.SelectAction(obs, legal) {
			t.Fatalf("seeded agents diverged at step %d", i)
		}
	}
}

func TestGreedyPrefersColorMatch(t *testing.T) {
	obs := obsWithHand([]engine.Card{
		engine.NewCard(engine.ColorWild, engine.RankWild), // playable, saved for last
		engine.NewCard(engine.ColorBlue, 3),               // rank match
		engine.NewCard(engine.ColorRed, 9),                // color match: preferred
	})
	legal := []uint16{engine.EncodePlay(0), engine.EncodePlay(1), engine.EncodePlay(2)}

	a := NewGreedy()
	if got := a.SelectAction(obs, legal); got != engine.EncodePlay(2) {
		t.Errorf("pick = %d, want color-matching number card %d", got, engine.EncodePlay(2))
	}
}

func TestGreedyChoosesDominantColor(t *testing.T) {
	obs := obsWithHand([]engine.Card{
		engine.NewCard(engine.ColorGreen, 2),
		engine.NewCard(engine.ColorGreen, 8),
		engine.NewCard(engine.ColorRed, 4),
	})
	obs.Phase = engine.PhaseAwaitColor
	legal := []uint16{
		engine.EncodeChooseColor(engine.ColorRed),
		engine.EncodeChooseColor(engine.ColorYellow),
		engine.EncodeChooseColor(engine.ColorGreen),
		engine.EncodeChooseColor(engine.ColorBlue),
	}

	a := NewGreedy()
	if got := a.SelectAction(obs, legal); got != engine.EncodeChooseColor(engine.ColorGreen) {
		t.Errorf("pick = %d, want green (dominant color)", got)
	}
}
