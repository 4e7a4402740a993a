package domain

import "time"

// Snapshot is the complete artifact set produced by one pipeline run. The
// four artifacts are always derived together and published together; a
// snapshot is immutable once built.
type Snapshot struct {
	Interactions      *InteractionMatrix
	ProductSimilarity *SimilarityMatrix[string]
	UserSimilarity    *SimilarityMatrix[int64]
	Forecast          []ForecastPoint
	ProcessedAt       time.Time
	RecordCount       int
}

// SnapshotStore publishes pipeline results. Replace must be atomic with
// respect to Current: a reader sees either the previous snapshot or the new
// one, never a mix.
type SnapshotStore interface {
	Replace(snapshot *Snapshot)
	Current() (*Snapshot, error)
}
