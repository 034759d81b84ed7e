package usecase

import (
	"sort"

	"github.com/willowfeed/matchcentre/internal/domain/match"
)

// selectCandidate picks the single relevant match for a team: an
// in-progress or finished match beats a future fixture, and among
// those the most recently started wins. Matches without any schedule
// always sort last. The sort is stable, so upstream order breaks ties.
func selectCandidate(matches []match.Match, teamID string) (match.Match, bool) {
	candidates := make([]match.Match, 0, len(matches))
	for _, m := range matches {
		if m.HasTeam(teamID) {
			candidates = append(candidates, m)
		}
	}
	if len(candidates) == 0 {
		return match.Match{}, false
	}

	started := make([]match.Match, 0, len(candidates))
	for _, m := range candidates {
		if !match.IsUpcoming(m.Status) {
			started = append(started, m)
		}
	}

	pool := candidates
	if len(started) > 0 {
		pool = started
	}

	sort.SliceStable(pool, func(i, j int) bool {
		return startsAfter(pool[i], pool[j])
	})

	return pool[0], true
}

// startsAfter orders by earliest scheduled start, descending. A match
// with no schedule never outranks a scheduled one.
func startsAfter(a, b match.Match) bool {
	aStart, aOK := a.EarliestStart()
	bStart, bOK := b.EarliestStart()
	if aOK != bOK {
		return aOK
	}
	if !aOK {
		return false
	}
	return aStart.After(bStart)
}
