package keywords

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchEmptyInputs(t *testing.T) {
	assert.False(t, Match("", []string{"openai"}))
	assert.False(t, Match("   ", []string{"openai"}))
	assert.False(t, Match("OpenAI ships a new model", nil))
	assert.False(t, Match("OpenAI ships a new model", []string{}))
}

func TestMatchIsCaseInsensitive(t *testing.T) {
	assert.True(t, Match("NVIDIA posts record earnings", []string{"nvidia"}))
	assert.True(t, Match("nvidia posts record earnings", []string{"NVIDIA"}))
}

func TestMatchPhrases(t *testing.T) {
	assert.True(t, Match("Sam Altman spoke at the summit", []string{"sam altman"}))
	assert.False(t, Match("Sam spoke at the summit", []string{"sam altman"}))
}

func TestWordBoundaryNoSubstringFalsePositive(t *testing.T) {
	m := NewMatcher(DefaultTables())

	companies := m.DetectCompanies("metadata analysis for large datasets")
	assert.NotContains(t, companies, "meta")

	companies = m.DetectCompanies("Meta releases Llama 4 weights")
	assert.Contains(t, companies, "meta")
}

func TestRegexPrefixKeyword(t *testing.T) {
	m := NewMatcher(Tables{
		Companies: map[string][]string{
			"acme": {`re:\bacme\b`},
		},
	})
	assert.Equal(t, []string{"acme"}, m.DetectCompanies("the acme launch"))
	assert.Empty(t, m.DetectCompanies("acmeware update"))
}

func TestDetectCompaniesReturnsAllMatches(t *testing.T) {
	m := NewMatcher(DefaultTables())

	got := m.DetectCompanies("OpenAI and Anthropic announce a joint safety benchmark with Nvidia hardware")
	assert.Contains(t, got, "openai")
	assert.Contains(t, got, "anthropic")
	assert.Contains(t, got, "nvidia")
	// Sorted, so output is deterministic.
	assert.Equal(t, []string{"anthropic", "nvidia", "openai"}, got)
}

func TestDetectTopics(t *testing.T) {
	m := NewMatcher(DefaultTables())

	got := m.DetectTopics("New AI safety standards proposed in the EU AI Act")
	assert.Contains(t, got, "safety")
	assert.Contains(t, got, "regulation")

	assert.Empty(t, m.DetectTopics("quarterly retail sales figures"))
}

func TestCompanyTier(t *testing.T) {
	m := NewMatcher(DefaultTables())

	assert.Equal(t, 1, m.CompanyTier("openai"))
	assert.Equal(t, 1, m.CompanyTier("nvidia"))
	assert.Equal(t, 2, m.CompanyTier("mistral"))
	assert.Equal(t, 2, m.CompanyTier("deepseek"))
	assert.Equal(t, 0, m.CompanyTier("unknown-co"))
}

func TestTopicWeight(t *testing.T) {
	m := NewMatcher(DefaultTables())
	assert.Equal(t, 30, m.TopicWeight("safety"))
	assert.Equal(t, 6, m.TopicWeight("benchmark"))
	assert.Equal(t, 0, m.TopicWeight("nonexistent"))

	// A topic without an explicit weight defaults to 5.
	custom := NewMatcher(Tables{
		Topics: map[string][]string{"niche": {"niche"}},
	})
	assert.Equal(t, 5, custom.TopicWeight("niche"))
}

func TestDefaultTablesTierOneCount(t *testing.T) {
	tables := DefaultTables()
	assert.GreaterOrEqual(t, len(tables.Tier1), 9)
	for _, c := range tables.Tier1 {
		assert.Contains(t, tables.Companies, c)
	}
}
