package query

import (
	"context"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"
)

// StubExecutor simulates a database: after a fixed latency it returns a
// randomly sized set of mock rows. The query text is not interpreted.
type StubExecutor struct {
	latency time.Duration
	minRows int
	rowSpan int

	rngMu sync.Mutex
	rng   *rand.Rand

	calls atomic.Int64
}

// NewStubExecutor creates a stub executor. Non-positive row bounds fall back
// to the defaults; a zero latency resolves on the next scheduler turn.
func NewStubExecutor(cfg StubConfig) *StubExecutor {
	if cfg.MinRows <= 0 {
		cfg.MinRows = DefaultMinRows
	}
	if cfg.RowSpan <= 0 {
		cfg.RowSpan = DefaultRowSpan
	}
	if cfg.Latency < 0 {
		cfg.Latency = 0
	}
	return &StubExecutor{
		latency: cfg.Latency,
		minRows: cfg.MinRows,
		rowSpan: cfg.RowSpan,
		rng:     newRand(cfg.Seed),
	}
}

// Execute waits for the configured latency and returns generated rows.
// A done context ends the wait with a timeout or canceled QueryError.
func (s *StubExecutor) Execute(ctx context.Context, text string) (RowSequence, error) {
	s.calls.Add(1)

	timer := time.NewTimer(s.latency)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return nil, FromContext(text, ctx.Err())
	case <-timer.C:
	}

	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	n := s.minRows + s.rng.IntN(s.rowSpan)
	return GenerateRows(s.rng, n), nil
}

// Calls returns how many times Execute has been invoked
func (s *StubExecutor) Calls() int64 {
	return s.calls.Load()
}

// RowBounds returns the half-open range [min, max) of generated row counts
func (s *StubExecutor) RowBounds() (int, int) {
	return s.minRows, s.minRows + s.rowSpan
}
