package domain

import "time"

const (
	// DefaultFreshnessWindow is how long a loaded snapshot is served without
	// rereading the snapshot store. At or past the window the entry is only
	// flagged for reload on next access, never evicted.
	DefaultFreshnessWindow = 24 * time.Hour

	DefaultDataDir  = "data"
	DefaultLogLevel = "info"

	DefaultWatchDataDir = true

	DefaultObservabilityListenAddress = "127.0.0.1:9090"
	DefaultObservabilityMetrics       = true
	DefaultObservabilityHealthz       = true
)
