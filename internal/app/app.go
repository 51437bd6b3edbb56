// Package app wires the fetch -> normalize -> score -> dedup -> admit
// pipeline together and runs it to completion.
package app

import (
	"context"
	"fmt"
	"time"

	"ainews/internal/config"
	"ainews/internal/keywords"
	"ainews/internal/logger"
	"ainews/internal/metrics"
	"ainews/internal/news"
	"ainews/internal/posts"
	"ainews/internal/queue"
	"ainews/internal/retry"
	"ainews/internal/rss"
	"ainews/internal/storage"
)

// degradedMaxScoreAgeDays widens the scoring age cutoff for a single run
// when every primary feed is failing, so the pipeline does not starve.
const (
	degradedMaxScoreAgeDays = 14
	primaryFailureThreshold = 3
)

// Run executes one pipeline pass. It returns an error only for unrecoverable
// configuration or state problems; "nothing to admit today" is a normal exit.
func Run() error {
	start := time.Now()
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	store := storage.New(cfg.DataDir)
	state, err := queue.Load(store)
	if err != nil {
		return fmt.Errorf("load queue state: %w", err)
	}
	health, err := storage.LoadHealth(store)
	if err != nil {
		return fmt.Errorf("load source health: %w", err)
	}

	sources := loadSources(cfg)
	now := time.Now()

	due := dueSources(cfg, sources, health, now)
	logger.Info("starting run", "sources", len(sources), "due", len(due), "trigger", cfg.TriggerSource)

	fetcher := &rss.Fetcher{
		Timeout: cfg.RequestTimeout,
		Retry: retry.Config{
			MaxAttempts: cfg.RetryAttempts,
			Delay:       cfg.RetryDelay,
			Backoff:     true,
		},
		UserAgent: "ainews/1.0 (+https://github.com/ainews)",
		PerFeed:   cfg.PerFeedLimit,
	}
	results := fetcher.FetchAll(ctx, due)

	fetched := 0
	feedFailures := map[string]int{}
	for _, r := range results {
		if r.Err != nil {
			health.RecordFailure(r.Source.Name, now)
			feedFailures[r.Source.Name] = health.Failures(r.Source.Name)
			metrics.Global.AddFeedsFailed(1)
			continue
		}
		health.RecordSuccess(r.Source.Name, itemTitles(r), now)
		fetched += len(r.Items)
		metrics.Global.AddFeedsFetched(1)
	}
	metrics.Global.AddItemsSeen(fetched)

	// Degraded-source policy: when every configured primary feed is failing,
	// widen the scoring age window for this run only. The widened value is
	// never persisted.
	maxAge := news.DefaultMaxScoreAgeDays
	primaryFailing := allPrimaryFailing(sources, health)
	if primaryFailing {
		maxAge = degradedMaxScoreAgeDays
		logger.Warn("all primary feeds failing, widening score age window",
			"max_age_days", maxAge)
	}

	matcher := keywords.NewMatcher(keywords.DefaultTables())
	normalizer := news.NewNormalizer(matcher, now)
	scorer := news.NewScorer(matcher, maxAge, now)
	known := knownTitles(state)

	var candidates []news.Candidate
	seenURLs := map[string]bool{}
	for _, r := range results {
		for _, item := range r.Items {
			c, ok := normalizer.Normalize(item, r.Source)
			if !ok {
				continue
			}
			if seenURLs[c.URL] {
				continue
			}
			seenURLs[c.URL] = true
			if len(c.Companies) == 0 && len(c.Topics) == 0 {
				continue
			}
			c.Score = scorer.Score(&c, known)
			if c.Score == 0 {
				continue
			}
			candidates = append(candidates, c)
		}
	}
	metrics.Global.AddCandidates(len(candidates))

	deduped := news.Deduplicate(candidates)
	metrics.Global.AddDuplicatesFolded(len(candidates) - len(deduped))

	breaking := news.BreakingTitles(deduped)
	if len(breaking) > 0 {
		metrics.Global.AddBreaking(len(breaking))
		for _, title := range breaking {
			logger.Warn("breaking news", "title", title)
		}
	}

	controller := &queue.Controller{
		State:  state,
		Writer: posts.NewWriter(cfg.PostsDir),
		Now:    now,
	}
	result := controller.Admit(deduped)
	metrics.Global.AddPostsWritten(len(result.Admitted))
	metrics.Global.AddQueued(result.Queued)

	if err := state.Save(store); err != nil {
		return fmt.Errorf("save queue state: %w", err)
	}
	if err := storage.SaveHealth(store, health); err != nil {
		logger.Error("save source health failed", "error", err)
	}

	entry := storage.RunLogEntry{
		Timestamp: now,
		Trigger:   cfg.TriggerSource,
		Counts: storage.RunCounts{
			Fetched:    fetched,
			Candidates: len(candidates),
			Deduped:    len(deduped),
			Posted:     len(result.Admitted),
			Queued:     len(state.Pending),
		},
		FeedFailures:        feedFailures,
		BreakingNews:        breaking,
		PrimaryFeedsFailing: primaryFailing,
		AdmittedTitles:      admittedTitles(result.Admitted),
	}
	if err := storage.AppendRunLog(store, entry, cfg.RunLogMax); err != nil {
		logger.Error("append run log failed", "error", err)
	}

	metrics.Global.RecordRun(time.Since(start))
	logger.Info("run finished",
		"fetched", fetched,
		"candidates", len(candidates),
		"deduped", len(deduped),
		"admitted", len(result.Admitted),
		"queued_total", len(state.Pending),
		"skipped_capped", result.SkippedCapped,
		"duration", time.Since(start).Round(time.Millisecond))
	return nil
}

func loadSources(cfg *config.Config) []rss.Source {
	sources, err := rss.LoadSources(cfg.SourcesPath)
	if err != nil {
		logger.Info("using built-in source list", "reason", err)
		return rss.DefaultSources()
	}
	return sources
}

// dueSources filters the list down to sources whose refresh interval has
// elapsed. Skipped sources count as neither success nor failure.
func dueSources(cfg *config.Config, sources []rss.Source, health storage.HealthMap, now time.Time) []rss.Source {
	if cfg.ForceFetch {
		return sources
	}
	due := make([]rss.Source, 0, len(sources))
	for _, s := range sources {
		if health.DueAt(s.Name, s.RefreshInterval(), now) {
			due = append(due, s)
		} else {
			logger.Debug("source not due yet", "source", s.Name, "tier", s.Tier)
		}
	}
	return due
}

// allPrimaryFailing checks the configured primary feeds, not just the ones
// fetched this run.
func allPrimaryFailing(sources []rss.Source, health storage.HealthMap) bool {
	primaries := 0
	for _, s := range sources {
		if !s.Primary {
			continue
		}
		primaries++
		if health.Failures(s.Name) < primaryFailureThreshold {
			return false
		}
	}
	return primaries > 0
}

// knownTitles collects everything already posted or pending, for the novelty
// check.
func knownTitles(state *queue.State) []news.KnownTitle {
	known := make([]news.KnownTitle, 0, len(state.Posted)+len(state.Pending))
	for _, p := range state.Posted {
		known = append(known, news.KnownTitle{Title: p.Title, Companies: p.Companies, Topics: p.Topics})
	}
	for _, p := range state.Pending {
		known = append(known, news.KnownTitle{Title: p.Title, Companies: p.Companies, Topics: p.Topics})
	}
	return known
}

func itemTitles(r rss.FetchResult) []string {
	titles := make([]string, 0, len(r.Items))
	for _, item := range r.Items {
		titles = append(titles, item.Title)
	}
	return titles
}

func admittedTitles(admitted []news.Candidate) []string {
	titles := make([]string, 0, len(admitted))
	for _, c := range admitted {
		titles = append(titles, c.Title)
	}
	return titles
}
