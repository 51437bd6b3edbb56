// Package posts writes admitted candidates into the static-site content
// directory as Jekyll-style markdown files.
package posts

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"ainews/internal/logger"
	"ainews/internal/news"
)

const slugMaxLen = 60

// Writer emits one markdown file per admitted item.
type Writer struct {
	dir string
}

func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// Write renders the candidate to {dir}/{date}-{slug}.md. If the file already
// exists the item was posted by an earlier (possibly interrupted) run and the
// write is skipped; the existing file name is returned so the queue can still
// reference it.
func (w *Writer) Write(c news.Candidate, now time.Time) (string, error) {
	name := fmt.Sprintf("%s-%s.md", now.Format("2006-01-02"), Slugify(c.Title))
	path := filepath.Join(w.dir, name)

	if _, err := os.Stat(path); err == nil {
		logger.Debug("post file exists, skipping write", "file", name)
		return name, nil
	}

	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("create posts dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(render(c, now)), 0o644); err != nil {
		return "", fmt.Errorf("write post %s: %w", name, err)
	}
	return name, nil
}

func render(c news.Candidate, now time.Time) string {
	var b strings.Builder

	tags := append(append([]string{}, c.Companies...), c.Topics...)

	b.WriteString("---\n")
	b.WriteString("layout: post\n")
	fmt.Fprintf(&b, "title: %q\n", c.Title)
	fmt.Fprintf(&b, "date: %s\n", now.Format("2006-01-02 15:04:05 -0700"))
	b.WriteString("categories: ai-news\n")
	fmt.Fprintf(&b, "tags: [%s]\n", strings.Join(tags, ", "))
	fmt.Fprintf(&b, "score: %d\n", c.Score)
	fmt.Fprintf(&b, "link: %s\n", c.URL)
	fmt.Fprintf(&b, "source: %s\n", c.SourceName)
	fmt.Fprintf(&b, "original_date: %s\n", c.PublishedAt.Format("2006-01-02"))
	if c.CoverageCount > 1 {
		fmt.Fprintf(&b, "coverage: %d\n", c.CoverageCount)
	}
	b.WriteString("---\n\n")

	if c.Summary != "" {
		b.WriteString(c.Summary)
		b.WriteString("\n\n")
	}
	fmt.Fprintf(&b, "[Read the full story](%s) | via %s\n", c.URL, c.SourceName)

	return b.String()
}

// Slugify turns a title into a filesystem-safe lowercase slug.
func Slugify(title string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		case !lastDash:
			b.WriteByte('-')
			lastDash = true
		}
	}
	slug := strings.Trim(b.String(), "-")
	if len(slug) > slugMaxLen {
		slug = strings.Trim(slug[:slugMaxLen], "-")
	}
	if slug == "" {
		slug = "untitled"
	}
	return slug
}
