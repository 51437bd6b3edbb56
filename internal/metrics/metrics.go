package metrics

import (
	"sync"
	"time"
)

// Metrics collects in-process counters for the monitoring endpoints.
type Metrics struct {
	mu sync.RWMutex

	// Counters
	FeedsFetched      int64
	FeedsFailed       int64
	ItemsSeen         int64
	CandidatesKept    int64
	DuplicatesFolded  int64
	PostsWritten      int64
	CandidatesQueued  int64
	BreakingNewsFound int64

	// Timings
	LastRunDuration    time.Duration
	TotalRunDuration   time.Duration
	RunCount           int64
	AverageRunDuration time.Duration

	// Status
	LastRunTime   time.Time
	LastErrorTime time.Time
	LastError     string
	IsHealthy     bool
}

var Global = &Metrics{IsHealthy: true}

func (m *Metrics) AddFeedsFetched(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FeedsFetched += int64(n)
}

func (m *Metrics) AddFeedsFailed(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FeedsFailed += int64(n)
}

func (m *Metrics) AddItemsSeen(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ItemsSeen += int64(n)
}

func (m *Metrics) AddCandidates(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CandidatesKept += int64(n)
}

func (m *Metrics) AddDuplicatesFolded(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DuplicatesFolded += int64(n)
}

func (m *Metrics) AddPostsWritten(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PostsWritten += int64(n)
}

func (m *Metrics) AddQueued(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CandidatesQueued += int64(n)
}

func (m *Metrics) AddBreaking(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.BreakingNewsFound += int64(n)
}

func (m *Metrics) RecordRun(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.LastRunDuration = duration
	m.TotalRunDuration += duration
	m.RunCount++
	m.AverageRunDuration = m.TotalRunDuration / time.Duration(m.RunCount)
	m.LastRunTime = time.Now()
	m.IsHealthy = true
}

func (m *Metrics) SetError(err string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastError = err
	m.LastErrorTime = time.Now()
	m.IsHealthy = false
}

func (m *Metrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"feeds_fetched":        m.FeedsFetched,
		"feeds_failed":         m.FeedsFailed,
		"items_seen":           m.ItemsSeen,
		"candidates_kept":      m.CandidatesKept,
		"duplicates_folded":    m.DuplicatesFolded,
		"posts_written":        m.PostsWritten,
		"candidates_queued":    m.CandidatesQueued,
		"breaking_news_found":  m.BreakingNewsFound,
		"last_run_duration_ms": m.LastRunDuration.Milliseconds(),
		"avg_run_duration_ms":  m.AverageRunDuration.Milliseconds(),
		"last_run_time":        m.LastRunTime.Format(time.RFC3339),
		"last_error_time":      m.LastErrorTime.Format(time.RFC3339),
		"last_error":           m.LastError,
		"is_healthy":           m.IsHealthy,
	}
}
