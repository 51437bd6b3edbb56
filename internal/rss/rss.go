// Package rss loads the configured source list and fetches all feeds.
package rss

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/mmcdole/gofeed"
	"gopkg.in/yaml.v3"

	"ainews/internal/logger"
	"ainews/internal/retry"
)

// Source describes one configured feed.
type Source struct {
	Name    string `yaml:"name"`
	URL     string `yaml:"url"`
	Primary bool   `yaml:"primary"`
	Tier    string `yaml:"tier"` // high | medium | low
}

// RefreshInterval is how long to wait between fetches of this source.
// Tiers follow the publishing cadence of each source class.
func (s Source) RefreshInterval() time.Duration {
	switch s.Tier {
	case "high":
		return 30 * time.Minute
	case "low":
		return 6 * time.Hour
	default:
		return 2 * time.Hour
	}
}

// SourcesConfig is the YAML config structure:
//
// sources:
//   - name: TechCrunch AI
//     url: https://...
//     primary: true
//     tier: high
type SourcesConfig struct {
	Sources []Source `yaml:"sources"`
}

// LoadSources reads the feed list from a YAML file.
func LoadSources(path string) ([]Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg SourcesConfig
	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parse sources config: %w", err)
	}
	if len(cfg.Sources) == 0 {
		return nil, fmt.Errorf("sources config %s has no sources", path)
	}
	return cfg.Sources, nil
}

// DefaultSources is the compiled-in feed list, used when no config file is
// present.
func DefaultSources() []Source {
	return []Source{
		{Name: "OpenAI Blog", URL: "https://openai.com/blog/rss/", Primary: true, Tier: "medium"},
		{Name: "Anthropic News", URL: "https://www.anthropic.com/news/rss.xml", Primary: true, Tier: "medium"},
		{Name: "Google AI Blog", URL: "http://feeds.feedburner.com/blogspot/gJZg", Primary: true, Tier: "medium"},
		{Name: "DeepMind Blog", URL: "https://deepmind.google/blog/rss/", Primary: true, Tier: "medium"},
		{Name: "TechCrunch AI", URL: "https://techcrunch.com/category/artificial-intelligence/feed/", Tier: "high"},
		{Name: "VentureBeat AI", URL: "https://venturebeat.com/category/ai/feed/", Tier: "high"},
		{Name: "Wired AI", URL: "https://www.wired.com/feed/tag/ai/latest/rss", Tier: "high"},
		{Name: "Import AI", URL: "https://importai.substack.com/feed", Tier: "low"},
		{Name: "Latent Space", URL: "https://latent.space/feed", Tier: "low"},
		{Name: "Interconnects", URL: "https://www.interconnects.ai/feed", Tier: "low"},
	}
}

// FetchResult holds everything fetched from one source. Err is set when the
// fetch failed; a failed source contributes zero items and never aborts the
// run.
type FetchResult struct {
	Source Source
	Items  []*gofeed.Item
	Err    error
}

// Fetcher downloads feeds concurrently with a per-request timeout.
type Fetcher struct {
	Timeout   time.Duration
	Retry     retry.Config
	UserAgent string
	PerFeed   int // max items taken per feed, 0 = no cap
}

// FetchAll fetches every source in parallel and returns one result per
// source, in the input order. It blocks until all fetches finish or time out,
// so callers always see the complete batch.
func (f *Fetcher) FetchAll(ctx context.Context, sources []Source) []FetchResult {
	results := make([]FetchResult, len(sources))

	var wg sync.WaitGroup
	for i, src := range sources {
		wg.Add(1)
		go func(i int, src Source) {
			defer wg.Done()
			items, err := f.fetchOne(ctx, src)
			results[i] = FetchResult{Source: src, Items: items, Err: err}
		}(i, src)
	}
	wg.Wait()

	ok := 0
	for _, r := range results {
		if r.Err == nil {
			ok++
		}
	}
	logger.Info("fetched feeds", "ok", ok, "total", len(sources))
	return results
}

func (f *Fetcher) fetchOne(ctx context.Context, src Source) ([]*gofeed.Item, error) {
	timeout := f.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	parser := gofeed.NewParser()
	parser.Client = &http.Client{Timeout: timeout}
	if f.UserAgent != "" {
		parser.UserAgent = f.UserAgent
	}

	var feed *gofeed.Feed
	err := retry.Do(ctx, f.Retry, func() error {
		fetchCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		parsed, err := parser.ParseURLWithContext(src.URL, fetchCtx)
		if err != nil {
			return err
		}
		feed = parsed
		return nil
	})
	if err != nil {
		logger.Warn("feed fetch failed", "source", src.Name, "error", err)
		return nil, fmt.Errorf("fetch %s: %w", src.Name, err)
	}

	items := feed.Items
	if f.PerFeed > 0 && len(items) > f.PerFeed {
		items = items[:f.PerFeed]
	}
	logger.Debug("feed fetched", "source", src.Name, "items", len(items))
	return items, nil
}
