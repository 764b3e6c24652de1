// Package observability tracks per-method call statistics for the tablet
// client and server and exports them in Prometheus text format.
package observability

import (
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/VictoriaMetrics/metrics"
)

// Outcome classifies a finished call.
type Outcome string

const (
	OutcomeOK       Outcome = "ok"
	OutcomeRejected Outcome = "rejected"
	OutcomeTimeout  Outcome = "timeout"
	OutcomeError    Outcome = "error"
)

// CallStats tracks call frequency and outcomes per method. Side labels the
// exported metrics ("client" or "server").
type CallStats struct {
	mu      sync.RWMutex
	methods map[string]*MethodStats
	window  time.Duration
	side    string
	set     *metrics.Set
}

// MethodStats holds statistics for one method.
type MethodStats struct {
	Method   string
	Calls    int64
	LastSeen time.Time
	Outcomes map[Outcome]int64
}

// NewCallStats creates a tracker. window bounds how long an idle method is
// kept by Prune.
func NewCallStats(side string, window time.Duration) *CallStats {
	return &CallStats{
		methods: make(map[string]*MethodStats),
		window:  window,
		side:    side,
		set:     metrics.NewSet(),
	}
}

// Record records one finished call. Safe for concurrent use.
func (c *CallStats) Record(method string, outcome Outcome, took time.Duration) {
	c.mu.Lock()
	stats, exists := c.methods[method]
	if !exists {
		stats = &MethodStats{
			Method:   method,
			Outcomes: make(map[Outcome]int64),
		}
		c.methods[method] = stats
	}
	stats.Calls++
	stats.LastSeen = time.Now()
	stats.Outcomes[outcome]++
	c.mu.Unlock()

	c.set.GetOrCreateCounter(fmt.Sprintf(`tabletkv_calls_total{side=%q,method=%q,outcome=%q}`, c.side, method, outcome)).Inc()
	c.set.GetOrCreateHistogram(fmt.Sprintf(`tabletkv_call_duration_seconds{side=%q,method=%q}`, c.side, method)).Update(took.Seconds())
}

// Get returns a copy of the stats for one method.
func (c *CallStats) Get(method string) (MethodStats, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s, ok := c.methods[method]
	if !ok {
		return MethodStats{}, false
	}
	return s.copy(), true
}

// Top returns the n most called methods, most frequent first.
func (c *CallStats) Top(n int) []MethodStats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if n <= 0 || len(c.methods) == 0 {
		return []MethodStats{}
	}

	stats := make([]MethodStats, 0, len(c.methods))
	for _, s := range c.methods {
		stats = append(stats, s.copy())
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Calls != stats[j].Calls {
			return stats[i].Calls > stats[j].Calls
		}
		return stats[i].Method < stats[j].Method
	})

	if n > len(stats) {
		n = len(stats)
	}
	return stats[:n]
}

// Prune drops methods not seen within the window.
func (c *CallStats) Prune() {
	c.mu.Lock()
	defer c.mu.Unlock()

	threshold := time.Now().Add(-c.window)
	for method, stats := range c.methods {
		if stats.LastSeen.Before(threshold) {
			delete(c.methods, method)
		}
	}
}

// WritePrometheus writes the exported counters and histograms to w.
func (c *CallStats) WritePrometheus(w io.Writer) {
	c.set.WritePrometheus(w)
}

func (s *MethodStats) copy() MethodStats {
	out := MethodStats{
		Method:   s.Method,
		Calls:    s.Calls,
		LastSeen: s.LastSeen,
		Outcomes: make(map[Outcome]int64, len(s.Outcomes)),
	}
	for k, v := range s.Outcomes {
		out.Outcomes[k] = v
	}
	return out
}
