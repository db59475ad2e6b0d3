package domain

import "time"

// LoadOutcome labels the result of one snapshot store read attempt.
type LoadOutcome string

const (
	LoadOutcomeSuccess LoadOutcome = "success"
	LoadOutcomeFailure LoadOutcome = "failure"
)

// Metrics receives cache observations. Implemented by telemetry; the nop
// implementation keeps tests and minimal setups free of a registry.
type Metrics interface {
	ObserveSnapshotLoad(category Category, outcome LoadOutcome, duration time.Duration)
	ObserveStaleServed(category Category)
	ObserveInvalidation(category Category)
	SetSnapshotItems(category Category, count int)
}

type nopMetrics struct{}

func (nopMetrics) ObserveSnapshotLoad(Category, LoadOutcome, time.Duration) {}
func (nopMetrics) ObserveStaleServed(Category)                             {}
func (nopMetrics) ObserveInvalidation(Category)                            {}
func (nopMetrics) SetSnapshotItems(Category, int)                          {}

// NopMetrics returns a Metrics implementation that discards everything.
func NopMetrics() Metrics { return nopMetrics{} }
