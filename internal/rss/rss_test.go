package rss

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ainews/internal/retry"
)

const feedXML = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Test Feed</title>
    <item>
      <title>OpenAI releases GPT-5</title>
      <link>https://example.com/gpt5</link>
      <pubDate>Tue, 10 Mar 2026 08:00:00 +0000</pubDate>
    </item>
    <item>
      <title>Anthropic publishes safety report</title>
      <link>https://example.com/safety</link>
      <pubDate>Tue, 10 Mar 2026 07:00:00 +0000</pubDate>
    </item>
    <item>
      <title>Nvidia ships new GPUs</title>
      <link>https://example.com/gpus</link>
      <pubDate>Tue, 10 Mar 2026 06:00:00 +0000</pubDate>
    </item>
  </channel>
</rss>`

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/feed.xml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(feedXML))
	})
	mux.HandleFunc("/broken", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusInternalServerError)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestLoadSources(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sources.yaml")
	yaml := `sources:
  - name: TechCrunch AI
    url: https://techcrunch.com/category/artificial-intelligence/feed/
    tier: high
  - name: OpenAI Blog
    url: https://openai.com/blog/rss/
    primary: true
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	sources, err := LoadSources(path)
	require.NoError(t, err)
	require.Len(t, sources, 2)
	assert.Equal(t, "TechCrunch AI", sources[0].Name)
	assert.Equal(t, "high", sources[0].Tier)
	assert.False(t, sources[0].Primary)
	assert.True(t, sources[1].Primary)
}

func TestLoadSourcesRejectsEmptyList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sources.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sources: []\n"), 0o644))

	_, err := LoadSources(path)
	assert.Error(t, err)
}

func TestRefreshIntervalByTier(t *testing.T) {
	assert.Equal(t, 30*time.Minute, Source{Tier: "high"}.RefreshInterval())
	assert.Equal(t, 2*time.Hour, Source{Tier: "medium"}.RefreshInterval())
	assert.Equal(t, 6*time.Hour, Source{Tier: "low"}.RefreshInterval())
	assert.Equal(t, 2*time.Hour, Source{}.RefreshInterval(), "unset tier behaves as medium")
}

func TestFetchAllCollectsEverySourceInOrder(t *testing.T) {
	srv := testServer(t)
	sources := []Source{
		{Name: "Good Feed", URL: srv.URL + "/feed.xml"},
		{Name: "Broken Feed", URL: srv.URL + "/broken"},
	}

	f := &Fetcher{Timeout: 5 * time.Second, Retry: retry.Config{MaxAttempts: 1}}
	results := f.FetchAll(context.Background(), sources)

	require.Len(t, results, 2)
	assert.Equal(t, "Good Feed", results[0].Source.Name)
	require.NoError(t, results[0].Err)
	assert.Len(t, results[0].Items, 3)
	assert.Equal(t, "OpenAI releases GPT-5", results[0].Items[0].Title)

	assert.Equal(t, "Broken Feed", results[1].Source.Name)
	assert.Error(t, results[1].Err, "one broken feed never aborts the batch")
	assert.Empty(t, results[1].Items)
}

func TestFetchAllPerFeedCap(t *testing.T) {
	srv := testServer(t)

	f := &Fetcher{Timeout: 5 * time.Second, Retry: retry.Config{MaxAttempts: 1}, PerFeed: 2}
	results := f.FetchAll(context.Background(), []Source{{Name: "Good Feed", URL: srv.URL + "/feed.xml"}})

	require.Len(t, results, 1)
	require.NoError(t, results[0].Err)
	assert.Len(t, results[0].Items, 2)
}

func TestFetchRetriesTransientFailure(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			http.Error(w, "try again", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(feedXML))
	}))
	defer srv.Close()

	f := &Fetcher{
		Timeout: 5 * time.Second,
		Retry:   retry.Config{MaxAttempts: 3, Delay: time.Millisecond},
	}
	results := f.FetchAll(context.Background(), []Source{{Name: "Flaky Feed", URL: srv.URL}})

	require.Len(t, results, 1)
	require.NoError(t, results[0].Err)
	assert.Equal(t, 2, attempts)
}
