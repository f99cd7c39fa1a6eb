package query

import (
	"context"
	"time"

	"queryexplorer/app/interfaces"
)

// Type aliases to interfaces package to avoid duplication
type Row = interfaces.Row
type RowSequence = interfaces.RowSequence
type SortSpec = interfaces.SortSpec
type SortKey = interfaces.SortKey

// Executor maps a query text to a row sequence.
// Implementations must return promptly once ctx is done.
type Executor interface {
	Execute(ctx context.Context, text string) (RowSequence, error)
}

// ExecutorFunc adapts a function to the Executor interface
type ExecutorFunc func(ctx context.Context, text string) (RowSequence, error)

// Execute calls f(ctx, text)
func (f ExecutorFunc) Execute(ctx context.Context, text string) (RowSequence, error) {
	return f(ctx, text)
}

const (
	// DefaultLatency is the simulated execution time of the stub
	DefaultLatency = 500 * time.Millisecond

	// DefaultMinRows is the smallest row count the stub produces
	DefaultMinRows = 100

	// DefaultRowSpan is the width of the random row count range,
	// so counts fall in [DefaultMinRows, DefaultMinRows+DefaultRowSpan)
	DefaultRowSpan = 5000
)

// StubConfig controls the simulated executor
type StubConfig struct {
	Latency time.Duration
	MinRows int
	RowSpan int
	Seed    uint64 // 0 picks a random seed
}

// DefaultStubConfig returns the reference timings and row bounds
func DefaultStubConfig() StubConfig {
	return StubConfig{
		Latency: DefaultLatency,
		MinRows: DefaultMinRows,
		RowSpan: DefaultRowSpan,
	}
}
