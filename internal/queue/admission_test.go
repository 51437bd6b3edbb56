package queue

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ainews/internal/news"
)

var admitNow = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

type fakeWriter struct {
	written  []string
	existing map[string]bool
	fail     bool
}

func (w *fakeWriter) Write(c news.Candidate, now time.Time) (string, error) {
	if w.fail {
		return "", fmt.Errorf("disk full")
	}
	name := now.Format("2006-01-02") + "-" + c.Title + ".md"
	if w.existing[name] {
		return name, nil
	}
	w.written = append(w.written, name)
	return name, nil
}

func testState() *State {
	return &State{
		DailyUsage: make(map[string]DayUsage),
		Config:     DefaultConfig(),
	}
}

func testController(s *State, w PostWriter) *Controller {
	return &Controller{State: s, Writer: w, Now: admitNow}
}

func batch(scores ...int) []news.Candidate {
	out := make([]news.Candidate, 0, len(scores))
	for i, score := range scores {
		out = append(out, news.Candidate{
			Title:       fmt.Sprintf("Story number %d", i),
			URL:         fmt.Sprintf("https://example.com/%d", i),
			PublishedAt: admitNow.Add(-time.Duration(i) * time.Hour),
			Score:       score,
		})
	}
	return out
}

func TestAdmitStopsAtDailyQuota(t *testing.T) {
	s := testState()
	w := &fakeWriter{}
	res := testController(s, w).Admit(batch(90, 85, 80, 75, 70, 65, 60, 55))

	assert.Len(t, res.Admitted, 5)
	assert.Len(t, w.written, 5)
	assert.Equal(t, 3, res.Queued, "leftovers above the queueing threshold wait in pending")
	assert.Len(t, s.Pending, 3)
	assert.Equal(t, 5, s.UsageFor(DayKey(admitNow)).Posts)
}

func TestAdmitScoreCutoffIsHard(t *testing.T) {
	s := testState()
	res := testController(s, &fakeWriter{}).Admit(batch(80, 49, 45))

	require.Len(t, res.Admitted, 1)
	assert.Equal(t, "Story number 0", res.Admitted[0].Title)
	// Sub-cutoff items are never admitted, but the 49 and 45 still queue.
	assert.Equal(t, 2, res.Queued)
}

func TestAdmitPerCompanyCap(t *testing.T) {
	s := testState()
	candidates := batch(90, 85, 80, 75)
	for i := range candidates {
		candidates[i].Companies = []string{"openai"}
	}

	res := testController(s, &fakeWriter{}).Admit(candidates)

	assert.Len(t, res.Admitted, 2, "per-company daily limit is 2")
	assert.Equal(t, 2, res.SkippedCapped)
	assert.Equal(t, 2, res.Queued, "capped stories wait in pending, not discarded")
}

func TestAdmitMultiCompanyPassesWhileAnyUnderCap(t *testing.T) {
	s := testState()
	day := DayKey(admitNow)
	s.DailyUsage[day] = DayUsage{
		Posts:     2,
		Companies: map[string]int{"openai": 2},
	}

	both := news.Candidate{
		Title: "OpenAI and Anthropic publish joint eval",
		URL:   "https://example.com/joint", Score: 80,
		Companies: []string{"anthropic", "openai"},
	}
	res := testController(s, &fakeWriter{}).Admit([]news.Candidate{both})

	assert.Len(t, res.Admitted, 1)
}

func TestAdmitNoCompanyNeverCapped(t *testing.T) {
	s := testState()
	s.Config.PerCompanyDailyLimit = 1

	res := testController(s, &fakeWriter{}).Admit(batch(80, 75, 70))
	assert.Len(t, res.Admitted, 3)
	assert.Zero(t, res.SkippedCapped)
}

func TestAdmitRerunIsIdempotent(t *testing.T) {
	s := testState()
	w := &fakeWriter{}
	candidates := batch(90, 85, 80, 75, 70, 65, 60)

	first := testController(s, w).Admit(candidates)
	require.Len(t, first.Admitted, 5)
	require.Len(t, s.Pending, 2)

	second := testController(s, w).Admit(candidates)
	assert.Empty(t, second.Admitted, "re-running the same batch admits nothing")
	assert.Zero(t, second.Queued, "already-pending items are not queued twice")
	assert.Len(t, w.written, 5)
	assert.Len(t, s.Pending, 2)
}

func TestAdmitExistingFileCountsAsPosted(t *testing.T) {
	s := testState()
	name := admitNow.Format("2006-01-02") + "-Story number 0.md"
	w := &fakeWriter{existing: map[string]bool{name: true}}

	res := testController(s, w).Admit(batch(80))

	require.Len(t, res.Admitted, 1)
	assert.Equal(t, []string{name}, res.AdmittedFiles)
	assert.Empty(t, w.written, "an interrupted earlier run already wrote the file")
	assert.True(t, s.HasPosted("https://example.com/0", "Story number 0"))
}

func TestAdmitWriteFailureSkipsWithoutCharge(t *testing.T) {
	s := testState()
	res := testController(s, &fakeWriter{fail: true}).Admit(batch(80))

	assert.Empty(t, res.Admitted)
	assert.Zero(t, s.UsageFor(DayKey(admitNow)).Posts)
	assert.Empty(t, s.Posted)
}

func TestAdmitPromotesPendingOnLaterDay(t *testing.T) {
	s := testState()
	s.Pending = append(s.Pending, PendingItem{
		Title:   "Anthropic funding round closes",
		URL:     "https://example.com/funding",
		Score:   72,
		AddedAt: admitNow.AddDate(0, 0, -1),
	})

	res := testController(s, &fakeWriter{}).Admit(nil)

	require.Len(t, res.Admitted, 1)
	assert.Equal(t, "Anthropic funding round closes", res.Admitted[0].Title)
	assert.Empty(t, s.Pending, "admitted items leave the pending backlog")
	assert.True(t, s.HasPosted("https://example.com/funding", ""))
}

func TestAdmitFreshCandidateSupersedesPendingCopy(t *testing.T) {
	s := testState()
	s.Pending = append(s.Pending, PendingItem{
		Title:   "Story number 0",
		URL:     "https://example.com/0",
		Score:   45,
		AddedAt: admitNow.AddDate(0, 0, -2),
	})

	res := testController(s, &fakeWriter{}).Admit(batch(88))

	require.Len(t, res.Admitted, 1)
	assert.Equal(t, 88, res.Admitted[0].Score, "the fresh rescored copy wins")
	assert.Empty(t, s.Pending)
}

func TestAdmitPurgesStalePending(t *testing.T) {
	s := testState()
	s.Pending = append(s.Pending,
		PendingItem{Title: "Stale story", URL: "https://example.com/stale",
			Score: 30, AddedAt: admitNow.AddDate(0, 0, -20)},
		PendingItem{Title: "Fresh story", URL: "https://example.com/fresh",
			Score: 30, AddedAt: admitNow.AddDate(0, 0, -2)},
	)

	testController(s, &fakeWriter{}).Admit(nil)

	require.Len(t, s.Pending, 1)
	assert.Equal(t, "Fresh story", s.Pending[0].Title)
}

func TestAdmitQueueCapPerRun(t *testing.T) {
	s := testState()
	s.Config.DailyPostLimit = 1
	scores := make([]int, 15)
	for i := range scores {
		scores[i] = 60
	}

	res := testController(s, &fakeWriter{}).Admit(batch(scores...))

	assert.Len(t, res.Admitted, 1)
	assert.Equal(t, 10, res.Queued, "at most 10 leftovers queue per run")
}

func TestAdmitTouchesDayEvenWhenEmpty(t *testing.T) {
	s := testState()
	testController(s, &fakeWriter{}).Admit(nil)

	_, ok := s.DailyUsage[DayKey(admitNow)]
	assert.True(t, ok, "a run that admits nothing still records the day")
}
