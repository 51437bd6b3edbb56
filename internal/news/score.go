package news

import (
	"time"

	"ainews/internal/keywords"
)

// DefaultMaxScoreAgeDays is the hard age cutoff: anything older scores 0.
// Widened to 14 for a single run when all primary feeds are failing.
const DefaultMaxScoreAgeDays = 7

// KnownTitle is an already-posted or already-pending item the scorer checks
// novelty against.
type KnownTitle struct {
	Title     string
	Companies []string
	Topics    []string
}

// Scorer assigns a 0-100 relevance score from recency, company tier, topic
// weight and novelty. Scoring is a pure function of the candidate, the known
// titles and the run timestamp fixed at construction.
type Scorer struct {
	matcher    *keywords.Matcher
	maxAgeDays int
	now        time.Time
}

func NewScorer(m *keywords.Matcher, maxAgeDays int, now time.Time) *Scorer {
	if maxAgeDays <= 0 {
		maxAgeDays = DefaultMaxScoreAgeDays
	}
	return &Scorer{matcher: m, maxAgeDays: maxAgeDays, now: now}
}

// Score computes the candidate's relevance score. The four components are
// summed in a fixed order (recency, company tier, topic weight, novelty) and
// the age penalty is applied last, floored at 0 and capped at 100.
func (s *Scorer) Score(c *Candidate, known []KnownTitle) int {
	ageDays := s.ageDays(c.PublishedAt)
	if ageDays > s.maxAgeDays {
		return 0
	}

	score := recencyScore(ageDays)
	score += s.companyScore(c.Companies)
	score += s.topicScore(c.Topics)
	score += s.noveltyScore(c, known)

	// Beyond one day old the age counts against the item a second time, on
	// top of the recency bin. Same-day items keep the full sum.
	if ageDays > 1 {
		score -= ageDays * 2
	}

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func (s *Scorer) ageDays(published time.Time) int {
	age := s.now.Sub(published)
	if age <= 0 {
		return 0
	}
	return int(age.Hours() / 24)
}

// recencyScore bins age non-linearly: same-day items dominate.
func recencyScore(ageDays int) int {
	switch {
	case ageDays == 0:
		return 25
	case ageDays <= 2:
		return 18
	case ageDays <= 5:
		return 12
	case ageDays <= 7:
		return 6
	default:
		return 2
	}
}

// companyScore is the maximum tier weight across matched companies:
// tier-1 25, tier-2 18, anything else that matched 10.
func (s *Scorer) companyScore(companies []string) int {
	best := 0
	for _, company := range companies {
		w := 10
		switch s.matcher.CompanyTier(company) {
		case 1:
			w = 25
		case 2:
			w = 18
		}
		if w > best {
			best = w
		}
	}
	return best
}

// topicScore is the maximum static weight among matched topics.
func (s *Scorer) topicScore(topics []string) int {
	best := 0
	for _, topic := range topics {
		if w := s.matcher.TopicWeight(topic); w > best {
			best = w
		}
	}
	return best
}

// noveltyScore compares the candidate against everything already posted or
// pending: a near-duplicate title scores 0, a same-company-same-topic echo
// of an existing story scores 10, a genuinely new story scores 20.
func (s *Scorer) noveltyScore(c *Candidate, known []KnownTitle) int {
	overlap := false
	for _, k := range known {
		if SimilarTitles(c.Title, k.Title) {
			return 0
		}
		if !overlap && sharesAny(c.Companies, k.Companies) && sharesAny(c.Topics, k.Topics) {
			overlap = true
		}
	}
	if overlap {
		return 10
	}
	return 20
}

func sharesAny(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}
