package domain

import "time"

// Snapshot is the fully decoded contents of one category file at a point in
// time. Items holds the typed record slice for the category ([]Event,
// []RaidBoss, ...). A snapshot is replaced wholesale on refresh and never
// mutated in place.
type Snapshot struct {
	Category Category
	Items    any
	Count    int
}

// CategoryStatus describes one cache entry for diagnostics. Age is measured
// from the last successful load, so it keeps growing while reloads fail and
// stale data is being served.
type CategoryStatus struct {
	Category Category      `json:"category"`
	Loaded   bool          `json:"loaded"`
	Count    int           `json:"count"`
	LoadedAt time.Time     `json:"loadedAt,omitzero"`
	Age      time.Duration `json:"age"`
}
