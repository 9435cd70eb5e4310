package metrics

import "sync/atomic"

// Snapshot captures current in-memory counters.
type Snapshot struct {
	RegistrationsSucceeded uint64
	RegistrationsDuplicate uint64
	RegistrationsFailed    uint64
	LoginsSucceeded        uint64
	LoginsRejected         uint64
	LoginsFailed           uint64
	TokensRejected         uint64
	ArticlesCreated        uint64
	ArticlesDeleted        uint64
}

// InMemoryRecorder stores metrics in memory, mainly for tests.
type InMemoryRecorder struct {
	registrationsSucceeded uint64
	registrationsDuplicate uint64
	registrationsFailed    uint64
	loginsSucceeded        uint64
	loginsRejected         uint64
	loginsFailed           uint64
	tokensRejected         uint64
	articlesCreated        uint64
	articlesDeleted        uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		RegistrationsSucceeded: atomic.LoadUint64(&m.registrationsSucceeded),
		RegistrationsDuplicate: atomic.LoadUint64(&m.registrationsDuplicate),
		RegistrationsFailed:    atomic.LoadUint64(&m.registrationsFailed),
		LoginsSucceeded:        atomic.LoadUint64(&m.loginsSucceeded),
		LoginsRejected:         atomic.LoadUint64(&m.loginsRejected),
		LoginsFailed:           atomic.LoadUint64(&m.loginsFailed),
		TokensRejected:         atomic.LoadUint64(&m.tokensRejected),
		ArticlesCreated:        atomic.LoadUint64(&m.articlesCreated),
		ArticlesDeleted:        atomic.LoadUint64(&m.articlesDeleted),
	}
}

// IncRegistration increments the registration counter for status.
func (m *InMemoryRecorder) IncRegistration(status string) {
	switch status {
	case "success":
		atomic.AddUint64(&m.registrationsSucceeded, 1)
	case "duplicate":
		atomic.AddUint64(&m.registrationsDuplicate, 1)
	default:
		atomic.AddUint64(&m.registrationsFailed, 1)
	}
}

// IncLogin increments the login counter for status.
func (m *InMemoryRecorder) IncLogin(status string) {
	switch status {
	case "success":
		atomic.AddUint64(&m.loginsSucceeded, 1)
	case "rejected":
		atomic.AddUint64(&m.loginsRejected, 1)
	default:
		atomic.AddUint64(&m.loginsFailed, 1)
	}
}

// IncTokenRejected increments the rejected-token counter.
func (m *InMemoryRecorder) IncTokenRejected(reason string) {
	atomic.AddUint64(&m.tokensRejected, 1)
}

// IncArticleCreated increments the article created counter.
func (m *InMemoryRecorder) IncArticleCreated() {
	atomic.AddUint64(&m.articlesCreated, 1)
}

// IncArticleDeleted increments the article deleted counter.
func (m *InMemoryRecorder) IncArticleDeleted() {
	atomic.AddUint64(&m.articlesDeleted, 1)
}
