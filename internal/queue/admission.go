package queue

import (
	"sort"
	"time"

	"ainews/internal/logger"
	"ainews/internal/news"
)

// PostWriter is the output collaborator that materializes an admitted
// candidate. It returns the written (or already-existing) file name; an
// existing file means the item was posted by an interrupted earlier run and
// must not be written twice.
type PostWriter interface {
	Write(c news.Candidate, now time.Time) (string, error)
}

// Controller runs the admission procedure over the persisted state.
type Controller struct {
	State  *State
	Writer PostWriter
	Now    time.Time
}

// Result summarizes one admission pass.
type Result struct {
	Admitted      []news.Candidate
	AdmittedFiles []string
	Queued        int
	SkippedCapped int
}

// ranked is one admission candidate: either a fresh deduplicated candidate
// or a pending item carried over from an earlier run.
type ranked struct {
	cand        news.Candidate
	fromPending bool
}

// Admit runs the daily admission procedure: fresh candidates are unioned
// with the pending backlog, ranked by score, and admitted until the daily
// quota, the score cutoff, or the per-company caps stop them. Leftover
// candidates above the queueing threshold are appended to pending.
func (ctl *Controller) Admit(candidates []news.Candidate) Result {
	s := ctl.State
	s.TouchDay(ctl.Now)
	day := DayKey(ctl.Now)

	entries := ctl.union(candidates)
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i].cand, entries[j].cand
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if !a.PublishedAt.Equal(b.PublishedAt) {
			return a.PublishedAt.After(b.PublishedAt)
		}
		return a.URL < b.URL
	})

	var res Result
	remaining := s.RemainingPosts(ctl.Now)
	var leftovers []ranked

	for i, e := range entries {
		if len(res.Admitted) >= remaining {
			leftovers = append(leftovers, entries[i:]...)
			break
		}
		// Entries are sorted, so the first score under the floor ends the
		// admission pass for everything behind it.
		if e.cand.Score < s.Config.MinScoreToPost {
			leftovers = append(leftovers, entries[i:]...)
			break
		}
		if s.HasPosted(e.cand.URL, e.cand.Title) {
			continue
		}
		if ctl.allCompaniesCapped(day, e.cand.Companies) {
			logger.Debug("company cap reached, keeping for later",
				"title", e.cand.Title, "companies", e.cand.Companies)
			res.SkippedCapped++
			leftovers = append(leftovers, e)
			continue
		}

		file, err := ctl.Writer.Write(e.cand, ctl.Now)
		if err != nil {
			logger.Error("post write failed", "title", e.cand.Title, "error", err)
			continue
		}

		s.Posted = append(s.Posted, PostedItem{
			Title:     e.cand.Title,
			URL:       e.cand.URL,
			Companies: e.cand.Companies,
			Topics:    e.cand.Topics,
			Score:     e.cand.Score,
			PostedAt:  ctl.Now,
			File:      file,
		})
		s.removePending(e.cand.URL, e.cand.Title)
		s.recordPost(ctl.Now, e.cand.Companies, estimateTokens(e.cand))

		res.Admitted = append(res.Admitted, e.cand)
		res.AdmittedFiles = append(res.AdmittedFiles, file)
		logger.Info("admitted", "title", e.cand.Title, "score", e.cand.Score, "file", file)
	}

	res.Queued = ctl.queueLeftovers(leftovers)
	s.PurgePending(ctl.Now)
	return res
}

// union merges fresh candidates with the pending backlog. A pending copy of
// a story that reappeared in this batch is superseded by the fresh candidate
// (which carries a current score).
func (ctl *Controller) union(candidates []news.Candidate) []ranked {
	entries := make([]ranked, 0, len(candidates)+len(ctl.State.Pending))
	inBatch := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		entries = append(entries, ranked{cand: c})
		inBatch[c.URL] = true
		inBatch[c.Title] = true
	}
	for _, p := range ctl.State.Pending {
		if inBatch[p.URL] || inBatch[p.Title] {
			continue
		}
		entries = append(entries, ranked{
			cand: news.Candidate{
				Title:      p.Title,
				URL:        p.URL,
				Summary:    p.Summary,
				SourceName: p.Source,
				// Pending items keep their admission eligibility ordering by
				// original score; recency already shaped that score.
				PublishedAt: p.AddedAt,
				Companies:   p.Companies,
				Topics:      p.Topics,
				Score:       p.Score,
			},
			fromPending: true,
		})
	}
	return entries
}

// allCompaniesCapped is true only when every mentioned company hit its daily
// limit. Multi-company stories pass while any one company is under cap, and
// stories mentioning no company are never capped.
func (ctl *Controller) allCompaniesCapped(day string, companies []string) bool {
	if len(companies) == 0 {
		return false
	}
	for _, c := range companies {
		if !ctl.State.companyCapped(day, c) {
			return false
		}
	}
	return true
}

// queueLeftovers appends the best not-admitted candidates to pending.
func (ctl *Controller) queueLeftovers(leftovers []ranked) int {
	s := ctl.State
	queued := 0
	for _, e := range leftovers {
		if queued >= s.Config.MaxQueuedPerRun {
			break
		}
		if e.fromPending || e.cand.Score < s.Config.QueueMinScore {
			continue
		}
		if s.HasPosted(e.cand.URL, e.cand.Title) || s.IsPending(e.cand.URL, e.cand.Title) {
			continue
		}
		s.Pending = append(s.Pending, PendingItem{
			Title:     e.cand.Title,
			URL:       e.cand.URL,
			Summary:   e.cand.Summary,
			Source:    e.cand.SourceName,
			Companies: e.cand.Companies,
			Topics:    e.cand.Topics,
			Score:     e.cand.Score,
			AddedAt:   ctl.Now,
		})
		queued++
	}
	return queued
}

// estimateTokens is the rough cost bookkeeping carried in daily usage.
func estimateTokens(c news.Candidate) int {
	return (len(c.Title) + len(c.Summary)) / 4
}
