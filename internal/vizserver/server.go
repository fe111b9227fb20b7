// Package vizserver serves live training progress over HTTP: a JSON
// snapshot of the win-rate series and a websocket stream of new points.
package vizserver

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/sirupsen/logrus"

	"github.com/ayaelnakeb/uno-ai-model/sim"
)

// SummaryFunc supplies the current tournament totals for /api/summary.
type SummaryFunc func() sim.Summary

// Server exposes a running tournament's progress. The driver pushes
// points in via Publish; HTTP clients poll or subscribe.
type Server struct {
	series  *sim.WinRateSeries
	summary SummaryFunc
	log     *logrus.Logger

	mu   sync.Mutex
	subs map[chan sim.Point]struct{}
}

// New builds a server over the given series. summary may be nil, in
// which case /api/summary serves 404.
func New(series *sim.WinRateSeries, summary SummaryFunc, log *logrus.Logger) *Server {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Server{
		series:  series,
		summary: summary,
		log:     log,
		subs:    make(map[chan sim.Point]struct{}),
	}
}

// Publish fans a new point out to all websocket subscribers. Slow
// subscribers miss points rather than stalling the tournament.
func (s *Server) Publish(p sim.Point) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for ch := range s.subs {
		select {
		case ch <- p:
		default:
		}
	}
}

func (s *Server) subscribe() chan sim.Point {
	ch := make(chan sim.Point, 64)
	s.mu.Lock()
	s.subs[ch] = struct{}{}
	s.mu.Unlock()
	return ch
}

func (s *Server) unsubscribe(ch chan sim.Point) {
	s.mu.Lock()
	delete(s.subs, ch)
	s.mu.Unlock()
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/series", s.handleSeries)
	mux.HandleFunc("/api/summary", s.handleSummary)
	mux.HandleFunc("/ws", s.handleWS)
	return mux
}

func (s *Server) handleSeries(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.series.Points()); err != nil {
		s.log.WithError(err).Warn("encode series")
	}
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if s.summary == nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.summary()); err != nil {
		s.log.WithError(err).Warn("encode summary")
	}
}

// handleWS streams the existing series, then every point published
// afterwards, as JSON messages until the client goes away.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		s.log.WithError(err).Warn("websocket accept")
		return
	}
	defer conn.Close(websocket.StatusNormalClosure, "")

	ch := s.subscribe()
	defer s.unsubscribe(ch)

	ctx := r.Context()
	for _, p := range s.series.Points() {
		if err := wsjson.Write(ctx, conn, p); err != nil {
			return
		}
	}
	for {
		select {
		case <-ctx.Done():
			return
		case p := <-ch:
			if err := wsjson.Write(ctx, conn, p); err != nil {
				return
			}
		}
	}
}
