package news

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsBreakingRequiresPrimaryCompany(t *testing.T) {
	c := Candidate{Title: "Mistral unveils new flagship model", Companies: []string{"mistral"}, Score: 95}
	assert.False(t, IsBreaking(&c), "non-primary companies never trigger breaking news")
}

func TestIsBreakingOnTitleKeyword(t *testing.T) {
	c := Candidate{Title: "OpenAI launches GPT-5", Companies: []string{"openai"}, Score: 60}
	assert.True(t, IsBreaking(&c))

	quiet := Candidate{Title: "OpenAI quarterly retrospective", Companies: []string{"openai"}, Score: 60}
	assert.False(t, IsBreaking(&quiet))
}

func TestIsBreakingOnVeryHighScore(t *testing.T) {
	c := Candidate{Title: "Anthropic model quietly tops every eval", Companies: []string{"anthropic"}, Score: 90}
	assert.True(t, IsBreaking(&c))
}

func TestBreakingTitles(t *testing.T) {
	candidates := []Candidate{
		{Title: "OpenAI launches GPT-5", Companies: []string{"openai"}, Score: 60},
		{Title: "A slow news day story", Companies: nil, Score: 55},
	}
	assert.Equal(t, []string{"OpenAI launches GPT-5"}, BreakingTitles(candidates))
}
