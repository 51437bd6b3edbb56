package news

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimilarTitlesExactAndEmpty(t *testing.T) {
	assert.True(t, SimilarTitles("OpenAI releases GPT-5", "openai releases gpt-5"))
	assert.False(t, SimilarTitles("", "OpenAI releases GPT-5"))
	assert.False(t, SimilarTitles("OpenAI releases GPT-5", ""))
}

func TestSimilarTitlesContainment(t *testing.T) {
	assert.True(t, SimilarTitles(
		"Anthropic announces Claude 4",
		"Anthropic announces Claude 4 with longer context windows"))

	// Short containment is not enough.
	assert.False(t, SimilarTitles("AI news", "AI news roundup of startups, chips and policy drama"))
}

func TestSimilarTitlesTokenOverlap(t *testing.T) {
	assert.True(t, SimilarTitles("OpenAI releases GPT-5 today", "OpenAI unveils GPT-5"))
	assert.True(t, SimilarTitles("OpenAI unveils GPT-5", "GPT-5 launched by OpenAI"))
	assert.True(t, SimilarTitles("OpenAI releases GPT-5 today", "GPT-5 launched by OpenAI"))
}

func TestDissimilarTitles(t *testing.T) {
	assert.False(t, SimilarTitles(
		"OpenAI releases GPT-5 today",
		"Nvidia ships Blackwell GPUs to cloud providers"))
	assert.False(t, SimilarTitles(
		"EU parliament votes on AI Act amendments",
		"Anthropic raises new funding round"))
}

func TestTitleTokensFilterStopWordsButKeepNumbers(t *testing.T) {
	tokens := titleTokens("the launch of gpt-5 in the eu")
	assert.Contains(t, tokens, "gpt")
	assert.Contains(t, tokens, "5")
	assert.Contains(t, tokens, "launch")
	assert.NotContains(t, tokens, "the")
	assert.NotContains(t, tokens, "of")
	assert.NotContains(t, tokens, "in")
}
