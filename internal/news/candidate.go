// Package news holds the scoring, deduplication and breaking-news logic that
// turns raw feed entries into a ranked, non-duplicated candidate set.
package news

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/araddon/dateparse"

	"ainews/internal/keywords"
	"ainews/internal/rss"

	"github.com/mmcdole/gofeed"
)

// summaryMaxRunes is the character budget for stored summaries.
const summaryMaxRunes = 500

// Candidate is a normalized news item eligible for scoring.
type Candidate struct {
	Title         string    `json:"title"`
	URL           string    `json:"url"`
	Summary       string    `json:"summary"`
	SourceName    string    `json:"source"`
	SourcePrimary bool      `json:"source_primary,omitempty"`
	PublishedAt   time.Time `json:"published_at"`
	Companies     []string  `json:"companies,omitempty"`
	Topics        []string  `json:"topics,omitempty"`
	Score         int       `json:"score"`
	CoverageCount int       `json:"coverage_count,omitempty"`
	Sources       []string  `json:"sources,omitempty"`
	SourceURLs    []string  `json:"source_urls,omitempty"`
}

// SearchText is the text companies/topics are detected in.
func (c *Candidate) SearchText() string {
	return c.Title + " " + c.Summary
}

// Normalizer converts raw feed entries into Candidates.
type Normalizer struct {
	matcher *keywords.Matcher
	now     time.Time
}

func NewNormalizer(m *keywords.Matcher, now time.Time) *Normalizer {
	return &Normalizer{matcher: m, now: now}
}

// Normalize builds a Candidate from one feed entry. Entries missing a title
// or link are rejected. Entries without a parseable publish date are treated
// as just-published rather than dropped, so untimestamped items are not
// penalized out of contention.
func (n *Normalizer) Normalize(item *gofeed.Item, src rss.Source) (Candidate, bool) {
	title := strings.TrimSpace(item.Title)
	link := strings.TrimSpace(item.Link)
	if title == "" || link == "" {
		return Candidate{}, false
	}

	published := n.publishedAt(item)

	summary := item.Description
	if summary == "" {
		summary = item.Content
	}
	summary = truncateRunes(stripMarkup(summary), summaryMaxRunes)

	c := Candidate{
		Title:         title,
		URL:           link,
		Summary:       summary,
		SourceName:    src.Name,
		SourcePrimary: src.Primary,
		PublishedAt:   published,
		Sources:       []string{src.Name},
		SourceURLs:    []string{link},
	}
	c.Companies = n.matcher.DetectCompanies(c.SearchText())
	c.Topics = n.matcher.DetectTopics(c.SearchText())
	return c, true
}

// publishedAt picks the entry timestamp: gofeed's parsed fields first (they
// cover RFC-822 and ISO-8601), then a lenient dateparse pass over the raw
// strings, then "now" as the deliberate fallback.
func (n *Normalizer) publishedAt(item *gofeed.Item) time.Time {
	if item.PublishedParsed != nil {
		return *item.PublishedParsed
	}
	if item.UpdatedParsed != nil {
		return *item.UpdatedParsed
	}
	for _, raw := range []string{item.Published, item.Updated} {
		if raw == "" {
			continue
		}
		if t, err := dateparse.ParseAny(raw); err == nil {
			return t
		}
	}
	return n.now
}

// stripMarkup removes HTML tags from feed summaries and collapses whitespace.
func stripMarkup(s string) string {
	if s == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return strings.Join(strings.Fields(s), " ")
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}

// truncateRunes cuts s to at most max runes, never mid-character.
func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
