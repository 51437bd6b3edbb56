package storage

import "time"

const HealthFile = "source_health.json"

// maxSeenTitles bounds the rolling title window kept per source.
const maxSeenTitles = 20

// SourceHealth tracks fetch outcomes for one feed across runs.
type SourceHealth struct {
	LastSuccessAt       time.Time `json:"last_success_at"`
	LastFetchAt         time.Time `json:"last_fetch_at"`
	ConsecutiveFailures int       `json:"consecutive_failures"`
	LastSeenTitles      []string  `json:"last_seen_titles,omitempty"`
}

// HealthMap is the persisted per-source health state, keyed by source name.
type HealthMap map[string]*SourceHealth

func (h HealthMap) get(name string) *SourceHealth {
	sh, ok := h[name]
	if !ok {
		sh = &SourceHealth{}
		h[name] = sh
	}
	return sh
}

// RecordSuccess resets the failure counter and remembers the latest titles.
func (h HealthMap) RecordSuccess(name string, titles []string, now time.Time) {
	sh := h.get(name)
	sh.LastSuccessAt = now
	sh.LastFetchAt = now
	sh.ConsecutiveFailures = 0
	if len(titles) > maxSeenTitles {
		titles = titles[:maxSeenTitles]
	}
	sh.LastSeenTitles = titles
}

// RecordFailure bumps the consecutive failure counter.
func (h HealthMap) RecordFailure(name string, now time.Time) {
	sh := h.get(name)
	sh.LastFetchAt = now
	sh.ConsecutiveFailures++
}

// Failures returns the consecutive failure count for a source.
func (h HealthMap) Failures(name string) int {
	if sh, ok := h[name]; ok {
		return sh.ConsecutiveFailures
	}
	return 0
}

// DueAt reports whether the source may be fetched again, given its refresh
// interval. Unknown sources are always due.
func (h HealthMap) DueAt(name string, interval time.Duration, now time.Time) bool {
	sh, ok := h[name]
	if !ok || sh.LastFetchAt.IsZero() {
		return true
	}
	return !now.Before(sh.LastFetchAt.Add(interval))
}

// LoadHealth reads the source health file, falling back to an empty map.
func LoadHealth(st *Store) (HealthMap, error) {
	h := make(HealthMap)
	if err := st.Load(HealthFile, &h); err != nil {
		return nil, err
	}
	if h == nil {
		h = make(HealthMap)
	}
	return h, nil
}

// SaveHealth persists the health map.
func SaveHealth(st *Store, h HealthMap) error {
	return st.Save(HealthFile, h)
}
