package sim

import "sync"

// Point is one entry of the win-rate series: the cumulative win rate of
// the tracked player after iteration Iteration (1-based count).
type Point struct {
	Iteration int     `json:"iteration"`
	WinRate   float64 `json:"win_rate"`
}

// WinRateSeries is the append-only series of cumulative win rates the
// driver builds during a tournament. The driver appends from its own
// goroutine; visualization collaborators may read concurrently, so all
// access is synchronized and readers get snapshots.
type WinRateSeries struct {
	mu     sync.RWMutex
	points []Point
}

// NewWinRateSeries returns an empty series.
func NewWinRateSeries() *WinRateSeries {
	return &WinRateSeries{}
}

func (s *WinRateSeries) append(p Point) {
	s.mu.Lock()
	s.points = append(s.points, p)
	s.mu.Unlock()
}

// Len returns the number of recorded points.
func (s *WinRateSeries) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.points)
}

// Points returns a snapshot copy of the series.
func (s *WinRateSeries) Points() []Point {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Point, len(s.points))
	copy(out, s.points)
	return out
}

// Last returns the most recent point, if any.
func (s *WinRateSeries) Last() (Point, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.points) == 0 {
		return Point{}, false
	}
	return s.points[len(s.points)-1], true
}
