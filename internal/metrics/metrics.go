// Package metrics provides lightweight hooks for instrumentation.
package metrics

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// Auth events
	IncRegistration(status string) // status: "success", "duplicate", "failed"
	IncLogin(status string)        // status: "success", "rejected", "failed"
	IncTokenRejected(reason string)

	// Article events
	IncArticleCreated()
	IncArticleDeleted()
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
