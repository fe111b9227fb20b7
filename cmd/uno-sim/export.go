package main

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/ayaelnakeb/uno-ai-model/engine/agent"
	"github.com/ayaelnakeb/uno-ai-model/sim"
)

// writeResultsCSV exports one row per played game: its outcome and the
// cumulative win rate after it. outcomes and points run in lockstep,
// one entry per iteration.
func writeResultsCSV(path string, outcomes []sim.Outcome, points []sim.Point) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"iteration", "game_id", "winner", "turns", "win_rate"}); err != nil {
		return err
	}
	for i, p := range points {
		row := []string{
			strconv.Itoa(p.Iteration),
			outcomes[i].GameID.String(),
			strconv.Itoa(outcomes[i].Winner),
			strconv.Itoa(outcomes[i].TurnCount),
			strconv.FormatFloat(p.WinRate, 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}

// writeTableCSV exports the learned value table sorted by state then
// action, so runs with the same seed diff cleanly.
func writeTableCSV(path string, entries []agent.TableEntry) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"state", "action", "value", "visits"}); err != nil {
		return err
	}
	for _, e := range entries {
		row := []string{
			e.State,
			e.Action,
			strconv.FormatFloat(e.Value, 'f', 6, 64),
			strconv.FormatUint(e.Visits, 10),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}
