package metrics

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// IncRegistration is a no-op.
func (n *NoopRecorder) IncRegistration(status string) {}

// IncLogin is a no-op.
func (n *NoopRecorder) IncLogin(status string) {}

// IncTokenRejected is a no-op.
func (n *NoopRecorder) IncTokenRejected(reason string) {}

// IncArticleCreated is a no-op.
func (n *NoopRecorder) IncArticleCreated() {}

// IncArticleDeleted is a no-op.
func (n *NoopRecorder) IncArticleDeleted() {}
