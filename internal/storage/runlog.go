package storage

import "time"

const RunLogFile = "run_log.json"

// RunCounts summarizes one pipeline execution.
type RunCounts struct {
	Fetched    int `json:"fetched"`
	Candidates int `json:"candidates"`
	Deduped    int `json:"deduped"`
	Posted     int `json:"posted"`
	Queued     int `json:"queued"`
}

// RunLogEntry is one record in the append-only run log.
type RunLogEntry struct {
	Timestamp           time.Time      `json:"timestamp"`
	Trigger             string         `json:"trigger_source"`
	Counts              RunCounts      `json:"counts"`
	FeedFailures        map[string]int `json:"per_feed_failures,omitempty"`
	BreakingNews        []string       `json:"breaking_news,omitempty"`
	PrimaryFeedsFailing bool           `json:"primary_feeds_failing,omitempty"`
	AdmittedTitles      []string       `json:"admitted_titles,omitempty"`
}

// AppendRunLog appends entry to the run log, keeping only the most recent
// maxEntries records.
func AppendRunLog(st *Store, entry RunLogEntry, maxEntries int) error {
	var log []RunLogEntry
	if err := st.Load(RunLogFile, &log); err != nil {
		return err
	}
	log = append(log, entry)
	if maxEntries > 0 && len(log) > maxEntries {
		log = log[len(log)-maxEntries:]
	}
	return st.Save(RunLogFile, log)
}

// ReadRunLog returns the persisted run log, oldest first.
func ReadRunLog(st *Store) ([]RunLogEntry, error) {
	var log []RunLogEntry
	if err := st.Load(RunLogFile, &log); err != nil {
		return nil, err
	}
	return log, nil
}
