package usecase

import (
	"testing"
	"time"

	"github.com/willowfeed/matchcentre/internal/domain/match"
)

func scheduledMatch(id, status, teamID string, starts ...time.Time) match.Match {
	slots := make([]match.ScheduleSlot, 0, len(starts))
	for _, start := range starts {
		slots = append(slots, match.ScheduleSlot{StartsAt: start})
	}
	return match.Match{
		ID:       id,
		Status:   status,
		Teams:    []match.Team{{ID: teamID, Name: "Team " + teamID}},
		Schedule: slots,
	}
}

func TestSelectCandidate_NoMatchesForTeam(t *testing.T) {
	matches := []match.Match{
		scheduledMatch("m1", match.StatusCompleted, "T1"),
	}

	if _, ok := selectCandidate(matches, "T2"); ok {
		t.Fatalf("expected no candidate for a team outside the grade")
	}
}

func TestSelectCandidate_PrefersStartedOverUpcoming(t *testing.T) {
	later := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	earlier := time.Date(2026, 3, 7, 10, 0, 0, 0, time.UTC)

	matches := []match.Match{
		scheduledMatch("future", match.StatusUpcoming, "T1", later),
		scheduledMatch("done", match.StatusCompleted, "T1", earlier),
	}

	chosen, ok := selectCandidate(matches, "T1")
	if !ok {
		t.Fatalf("expected a candidate")
	}
	if chosen.ID != "done" {
		t.Fatalf("expected the completed match regardless of schedule, got %s", chosen.ID)
	}
}

func TestSelectCandidate_MostRecentStartWinsAmongStarted(t *testing.T) {
	matches := []match.Match{
		scheduledMatch("older", match.StatusCompleted, "T1", time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)),
		scheduledMatch("newer", match.StatusInProgress, "T1", time.Date(2026, 2, 8, 9, 0, 0, 0, time.UTC)),
	}

	chosen, ok := selectCandidate(matches, "T1")
	if !ok {
		t.Fatalf("expected a candidate")
	}
	if chosen.ID != "newer" {
		t.Fatalf("expected the most recently started match, got %s", chosen.ID)
	}
}

func TestSelectCandidate_AllUpcomingFallsBack(t *testing.T) {
	matches := []match.Match{
		scheduledMatch("early", match.StatusUpcoming, "T1", time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)),
		scheduledMatch("late", match.StatusUpcoming, "T1", time.Date(2026, 4, 8, 9, 0, 0, 0, time.UTC)),
	}

	chosen, ok := selectCandidate(matches, "T1")
	if !ok {
		t.Fatalf("expected a candidate")
	}
	if chosen.ID != "late" {
		t.Fatalf("expected the latest upcoming fixture, got %s", chosen.ID)
	}
}

func TestSelectCandidate_ScheduleslessSortsLast(t *testing.T) {
	matches := []match.Match{
		scheduledMatch("no-schedule", match.StatusCompleted, "T1"),
		scheduledMatch("scheduled", match.StatusCompleted, "T1", time.Date(2026, 1, 3, 9, 0, 0, 0, time.UTC)),
	}

	chosen, ok := selectCandidate(matches, "T1")
	if !ok {
		t.Fatalf("expected a candidate")
	}
	if chosen.ID != "scheduled" {
		t.Fatalf("a scheduleless candidate must never outrank a scheduled one, got %s", chosen.ID)
	}
}

func TestSelectCandidate_TiePreservesUpstreamOrder(t *testing.T) {
	start := time.Date(2026, 5, 2, 9, 30, 0, 0, time.UTC)
	matches := []match.Match{
		scheduledMatch("first", match.StatusCompleted, "T1", start),
		scheduledMatch("second", match.StatusCompleted, "T1", start),
	}

	chosen, ok := selectCandidate(matches, "T1")
	if !ok {
		t.Fatalf("expected a candidate")
	}
	if chosen.ID != "first" {
		t.Fatalf("ties must preserve upstream order, got %s", chosen.ID)
	}
}

func TestSelectCandidate_EarliestSlotOrdersMultiDayMatches(t *testing.T) {
	matches := []match.Match{
		scheduledMatch("two-day", match.StatusCompleted, "T1",
			time.Date(2026, 6, 13, 9, 0, 0, 0, time.UTC),
			time.Date(2026, 6, 6, 9, 0, 0, 0, time.UTC)),
		scheduledMatch("one-day", match.StatusCompleted, "T1",
			time.Date(2026, 6, 10, 9, 0, 0, 0, time.UTC)),
	}

	chosen, ok := selectCandidate(matches, "T1")
	if !ok {
		t.Fatalf("expected a candidate")
	}
	// The two-day match's earliest slot (Jun 6) predates Jun 10.
	if chosen.ID != "one-day" {
		t.Fatalf("expected ordering by earliest slot, got %s", chosen.ID)
	}
}

func TestSelectCandidate_DoesNotMutateInput(t *testing.T) {
	matches := []match.Match{
		scheduledMatch("a", match.StatusCompleted, "T1", time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)),
		scheduledMatch("b", match.StatusCompleted, "T1", time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)),
	}

	if _, ok := selectCandidate(matches, "T1"); !ok {
		t.Fatalf("expected a candidate")
	}
	if matches[0].ID != "a" || matches[1].ID != "b" {
		t.Fatalf("input slice order changed: %s, %s", matches[0].ID, matches[1].ID)
	}
}
