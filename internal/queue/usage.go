package queue

import "time"

// Daily quota bookkeeping. The calendar date is the unit of quota reset:
// usage lives under a YYYY-MM-DD key, so a new day starts from zero without
// any explicit reset step.

// DayKey formats a timestamp as the daily_usage map key.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// UsageFor returns the usage entry for a day, zero-valued if absent.
func (s *State) UsageFor(day string) DayUsage {
	return s.DailyUsage[day]
}

// TouchDay makes sure the day has a usage entry, so a run that admits
// nothing still leaves a zero-post record behind.
func (s *State) TouchDay(now time.Time) {
	day := DayKey(now)
	if _, ok := s.DailyUsage[day]; !ok {
		s.DailyUsage[day] = DayUsage{}
	}
}

// RemainingPosts is today's unspent post quota.
func (s *State) RemainingPosts(now time.Time) int {
	left := s.Config.DailyPostLimit - s.DailyUsage[DayKey(now)].Posts
	if left < 0 {
		return 0
	}
	return left
}

// companyCapped reports whether a company already hit its per-day admission
// limit.
func (s *State) companyCapped(day, company string) bool {
	return s.DailyUsage[day].Companies[company] >= s.Config.PerCompanyDailyLimit
}

// recordPost charges one admission against today's quotas.
func (s *State) recordPost(now time.Time, companies []string, tokens int) {
	day := DayKey(now)
	usage := s.DailyUsage[day]
	usage.Posts++
	usage.EstimatedTokens += tokens
	if usage.Companies == nil {
		usage.Companies = make(map[string]int)
	}
	for _, c := range companies {
		usage.Companies[c]++
	}
	s.DailyUsage[day] = usage
}
