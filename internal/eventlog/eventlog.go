// Package eventlog turns engine events into structured log entries.
package eventlog

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ayaelnakeb/uno-ai-model/engine"
	"github.com/ayaelnakeb/uno-ai-model/sim"
)

// Logger wraps a logrus logger and exposes the hooks the driver and the
// command layer feed.
type Logger struct {
	log *logrus.Logger
}

// New wraps log. A nil log gets the logrus standard logger.
func New(log *logrus.Logger) *Logger {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Logger{log: log}
}

// GameSink returns a driver event sink that logs every engine event at
// debug level with the game it belongs to.
func (l *Logger) GameSink() sim.EventSink {
	return func(gameID uuid.UUID, iteration int, ev engine.Event) {
		fields := logrus.Fields{
			"game":      gameID,
			"iteration": iteration,
			"turn":      ev.Turn,
			"player":    ev.Player,
			"event":     ev.Type.String(),
		}
		switch ev.Type {
		case engine.EventPlayedCard:
			fields["card"] = ev.Card.String()
		case engine.EventDrewCards:
			fields["count"] = ev.Count
			fields["penalty"] = ev.Penalty
		case engine.EventColorChosen:
			fields["color"] = engine.ColorName(ev.Color)
		case engine.EventRoundWon:
			fields["winner"] = ev.Player
		}
		l.log.WithFields(fields).Debug("game event")
	}
}

// IterationHook returns a driver hook that logs the cumulative win rate
// after each game.
func (l *Logger) IterationHook() sim.IterationHook {
	return func(p sim.Point) {
		l.log.WithFields(logrus.Fields{
			"iteration": p.Iteration,
			"win_rate":  p.WinRate,
		}).Info("iteration complete")
	}
}

// Summary logs the tournament totals once at the end of a run.
func (l *Logger) Summary(s sim.Summary) {
	fields := logrus.Fields{
		"games":     s.TotalGames,
		"draws":     s.Draws,
		"aborted":   s.Aborted,
		"avg_turns": s.AvgTurnCount,
	}
	for i, name := range s.AgentNames {
		fields[name] = s.WinCounts[i]
	}
	l.log.WithFields(fields).Info("tournament finished")
}
