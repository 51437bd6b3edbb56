// Package keywords matches free text against curated company and topic
// keyword tables. Matching is case-insensitive and word-boundary safe, so
// "meta" does not fire inside "metadata".
package keywords

import (
	"regexp"
	"sort"
	"strings"
)

// RegexPrefix marks a keyword as an explicit regular expression instead of
// a literal phrase.
const RegexPrefix = "re:"

// Tables is the immutable keyword configuration injected into a Matcher.
// Company keys listed in Tier1 are the major labs; everything else in
// Companies is tier 2.
type Tables struct {
	Companies    map[string][]string
	Tier1        []string
	Topics       map[string][]string
	TopicWeights map[string]int
}

// Matcher holds compiled keyword patterns for company/topic detection.
// It is safe for concurrent use once built.
type Matcher struct {
	companies    map[string][]*regexp.Regexp
	topics       map[string][]*regexp.Regexp
	tier1        map[string]bool
	topicWeights map[string]int
}

// compile turns a keyword list into regexps. Literal phrases are escaped and
// wrapped with \b anchors; entries with the "re:" prefix are compiled as-is.
func compile(keywords []string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, 0, len(keywords))
	for _, k := range keywords {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		var expr string
		if strings.HasPrefix(k, RegexPrefix) {
			expr = strings.TrimPrefix(k, RegexPrefix)
		} else {
			expr = `\b` + regexp.QuoteMeta(strings.ToLower(k)) + `\b`
		}
		re, err := regexp.Compile(`(?i)` + expr)
		if err != nil {
			// A broken pattern in the static tables is a programming error;
			// skip it rather than poisoning the whole table.
			continue
		}
		patterns = append(patterns, re)
	}
	return patterns
}

// NewMatcher compiles the given tables into a Matcher.
func NewMatcher(t Tables) *Matcher {
	m := &Matcher{
		companies:    make(map[string][]*regexp.Regexp, len(t.Companies)),
		topics:       make(map[string][]*regexp.Regexp, len(t.Topics)),
		tier1:        make(map[string]bool, len(t.Tier1)),
		topicWeights: make(map[string]int, len(t.TopicWeights)),
	}
	for company, kws := range t.Companies {
		m.companies[company] = compile(kws)
	}
	for topic, kws := range t.Topics {
		m.topics[topic] = compile(kws)
	}
	for _, c := range t.Tier1 {
		m.tier1[c] = true
	}
	for topic, w := range t.TopicWeights {
		m.topicWeights[topic] = w
	}
	return m
}

// Match reports whether any keyword in the set matches the text.
// Empty text or an empty keyword set never matches.
func Match(text string, keywords []string) bool {
	if strings.TrimSpace(text) == "" || len(keywords) == 0 {
		return false
	}
	return matchCompiled(text, compile(keywords))
}

func matchCompiled(text string, patterns []*regexp.Regexp) bool {
	if text == "" {
		return false
	}
	for _, re := range patterns {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// DetectCompanies returns the sorted set of company keys whose keyword set
// matches the text.
func (m *Matcher) DetectCompanies(text string) []string {
	return detect(text, m.companies)
}

// DetectTopics returns the sorted set of topic keys whose keyword set
// matches the text.
func (m *Matcher) DetectTopics(text string) []string {
	return detect(text, m.topics)
}

func detect(text string, table map[string][]*regexp.Regexp) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	var found []string
	for key, patterns := range table {
		if matchCompiled(text, patterns) {
			found = append(found, key)
		}
	}
	sort.Strings(found)
	return found
}

// CompanyTier returns 1 for major labs, 2 for other known companies.
// Unknown keys report tier 0.
func (m *Matcher) CompanyTier(company string) int {
	if m.tier1[company] {
		return 1
	}
	if _, ok := m.companies[company]; ok {
		return 2
	}
	return 0
}

// TopicWeight returns the static scoring weight of a topic. Topics without
// an explicit weight default to 5; unknown topics report 0.
func (m *Matcher) TopicWeight(topic string) int {
	if w, ok := m.topicWeights[topic]; ok {
		return w
	}
	if _, ok := m.topics[topic]; ok {
		return 5
	}
	return 0
}
