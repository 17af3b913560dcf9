package util

import (
	"time"

	"go.uber.org/zap"
)

// OperationStats aggregates the run times of one named operation.
type OperationStats struct {
	Name  string
	Last  time.Duration
	Total time.Duration
	Min   time.Duration
	Max   time.Duration
	Count int64
}

func (s *OperationStats) Average() time.Duration {
	if s.Count == 0 {
		return 0
	}
	return s.Total / time.Duration(s.Count)
}

func (s *OperationStats) record(d time.Duration) {
	s.Last = d
	s.Total += d
	if s.Count == 0 || d < s.Min {
		s.Min = d
	}
	if d > s.Max {
		s.Max = d
	}
	s.Count++
}

// Timer measures editing operations by name, in first use order.
// It is not safe for concurrent use.
type Timer struct {
	stats map[string]*OperationStats
	names []string
	now   func() time.Time
}

func NewTimer() *Timer {
	return &Timer{stats: make(map[string]*OperationStats), now: time.Now}
}

func (t *Timer) Get(name string) (OperationStats, bool) {
	s, ok := t.stats[name]
	if !ok {
		return OperationStats{}, false
	}
	return *s, true
}

// Start begins a measurement. The returned func stops it and returns the
// elapsed time.
func (t *Timer) Start(name string) func() time.Duration {
	s, ok := t.stats[name]
	if !ok {
		s = &OperationStats{Name: name}
		t.stats[name] = s
		t.names = append(t.names, name)
	}
	start := t.now()
	return func() time.Duration {
		d := t.now().Sub(start)
		s.record(d)
		return d
	}
}

// LogSummary writes one io info line per operation.
func (t *Timer) LogSummary() {
	for _, name := range t.names {
		s := t.stats[name]
		LogIOInfo("timing",
			zap.String("operation", name),
			zap.Int64("count", s.Count),
			zap.Duration("last", s.Last),
			zap.Duration("avg", s.Average()),
			zap.Duration("min", s.Min),
			zap.Duration("max", s.Max))
	}
}
