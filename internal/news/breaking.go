package news

import "ainews/internal/keywords"

// breakingScoreFloor flags very high scoring stories even without a
// breaking-keyword hit in the title.
const breakingScoreFloor = 85

// IsBreaking reports whether a candidate qualifies as breaking news: it must
// involve a primary company and either carry a breaking phrase in its title
// or score unusually high.
func IsBreaking(c *Candidate) bool {
	primary := false
	for _, company := range c.Companies {
		for _, p := range keywords.PrimaryCompanies() {
			if company == p {
				primary = true
				break
			}
		}
		if primary {
			break
		}
	}
	if !primary {
		return false
	}

	if c.Score >= breakingScoreFloor {
		return true
	}
	return keywords.Match(c.Title, keywords.BreakingKeywords())
}

// BreakingTitles returns the titles of all breaking candidates, for the run
// log.
func BreakingTitles(candidates []Candidate) []string {
	var titles []string
	for i := range candidates {
		if IsBreaking(&candidates[i]) {
			titles = append(titles, candidates[i].Title)
		}
	}
	return titles
}
