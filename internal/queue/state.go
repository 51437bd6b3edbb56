// Package queue holds the persisted queue state and the daily admission
// controller: which scored candidates get posted today, which wait in the
// pending backlog, and which are discarded.
package queue

import (
	"time"

	"ainews/internal/storage"
)

const StateFile = "news_queue.json"

// Config is the tunable admission policy, persisted inside the queue state
// so deployments can adjust limits without a rebuild.
type Config struct {
	DailyPostLimit       int `json:"daily_post_limit"`
	MinScoreToPost       int `json:"min_score_to_post"`
	PerCompanyDailyLimit int `json:"per_company_daily_limit"`
	MaxPendingAgeDays    int `json:"max_pending_age_days"`
	QueueMinScore        int `json:"queue_min_score"`
	MaxQueuedPerRun      int `json:"max_queued_per_run"`
}

func DefaultConfig() Config {
	return Config{
		DailyPostLimit:       5,
		MinScoreToPost:       50,
		PerCompanyDailyLimit: 2,
		MaxPendingAgeDays:    14,
		QueueMinScore:        40,
		MaxQueuedPerRun:      10,
	}
}

// withDefaults fills zero-valued fields, so a hand-edited state file only
// needs to name the limits it changes.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.DailyPostLimit <= 0 {
		c.DailyPostLimit = def.DailyPostLimit
	}
	if c.MinScoreToPost <= 0 {
		c.MinScoreToPost = def.MinScoreToPost
	}
	if c.PerCompanyDailyLimit <= 0 {
		c.PerCompanyDailyLimit = def.PerCompanyDailyLimit
	}
	if c.MaxPendingAgeDays <= 0 {
		c.MaxPendingAgeDays = def.MaxPendingAgeDays
	}
	if c.QueueMinScore <= 0 {
		c.QueueMinScore = def.QueueMinScore
	}
	if c.MaxQueuedPerRun <= 0 {
		c.MaxQueuedPerRun = def.MaxQueuedPerRun
	}
	return c
}

// PendingItem is a scored-but-not-yet-posted candidate carried across runs.
type PendingItem struct {
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	Summary   string    `json:"summary,omitempty"`
	Source    string    `json:"source,omitempty"`
	Companies []string  `json:"companies,omitempty"`
	Topics    []string  `json:"topics,omitempty"`
	Score     int       `json:"score"`
	AddedAt   time.Time `json:"added_at"`
}

// PostedItem records an admitted candidate and the file it was written to.
type PostedItem struct {
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	Companies []string  `json:"companies,omitempty"`
	Topics    []string  `json:"topics,omitempty"`
	Score     int       `json:"score"`
	PostedAt  time.Time `json:"posted_at"`
	File      string    `json:"file"`
}

// DayUsage tracks one calendar day's quota consumption.
type DayUsage struct {
	Posts           int            `json:"posts"`
	EstimatedTokens int            `json:"estimated_tokens"`
	Companies       map[string]int `json:"companies,omitempty"`
}

// State is the single persisted queue record. Loaded once at run start,
// mutated in memory, saved once at run end. An item's URL/title lives in at
// most one of Pending/Posted at any time.
type State struct {
	Pending    []PendingItem       `json:"pending"`
	Posted     []PostedItem        `json:"posted"`
	DailyUsage map[string]DayUsage `json:"daily_usage"`
	Config     Config              `json:"config"`
}

// Load reads the queue state, falling back to an empty default when the file
// is missing or corrupted.
func Load(st *storage.Store) (*State, error) {
	s := &State{}
	if err := st.Load(StateFile, s); err != nil {
		return nil, err
	}
	if s.DailyUsage == nil {
		s.DailyUsage = make(map[string]DayUsage)
	}
	s.Config = s.Config.withDefaults()
	return s, nil
}

// Save atomically persists the state.
func (s *State) Save(st *storage.Store) error {
	return st.Save(StateFile, s)
}

// HasPosted reports whether an item with the same URL or the same title was
// already admitted. This is the idempotent re-run guard.
func (s *State) HasPosted(url, title string) bool {
	for _, p := range s.Posted {
		if p.URL == url || p.Title == title {
			return true
		}
	}
	return false
}

// IsPending reports whether an item with the same URL or title is queued.
func (s *State) IsPending(url, title string) bool {
	for _, p := range s.Pending {
		if p.URL == url || p.Title == title {
			return true
		}
	}
	return false
}

func (s *State) removePending(url, title string) {
	kept := s.Pending[:0]
	for _, p := range s.Pending {
		if p.URL == url || p.Title == title {
			continue
		}
		kept = append(kept, p)
	}
	s.Pending = kept
}

// PurgePending drops pending items older than the configured max age.
// Called before every save. Returns the number of purged items.
func (s *State) PurgePending(now time.Time) int {
	return s.purgeOlderThan(s.Config.MaxPendingAgeDays, now)
}

// ClearOldPending purges with an explicit age, leaving the configured max
// age untouched. Used by the queue inspector.
func (s *State) ClearOldPending(days int, now time.Time) int {
	return s.purgeOlderThan(days, now)
}

func (s *State) purgeOlderThan(days int, now time.Time) int {
	cutoff := now.AddDate(0, 0, -days)
	kept := s.Pending[:0]
	purged := 0
	for _, p := range s.Pending {
		if p.AddedAt.Before(cutoff) {
			purged++
			continue
		}
		kept = append(kept, p)
	}
	s.Pending = kept
	return purged
}
