package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/willowfeed/matchcentre/internal/domain/match"
)

type stubProvider struct {
	matches    []match.Match
	matchesErr error

	detail      *match.Detail
	detailErr   error
	detailCalls int

	lastBall      *match.Ball
	lastBallErr   error
	lastBallCalls int
}

func (s *stubProvider) GradeMatches(_ context.Context, _ string) ([]match.Match, error) {
	return s.matches, s.matchesErr
}

func (s *stubProvider) MatchDetail(_ context.Context, _ string) (*match.Detail, error) {
	s.detailCalls++
	return s.detail, s.detailErr
}

func (s *stubProvider) LastBall(_ context.Context, _ string) (*match.Ball, error) {
	s.lastBallCalls++
	return s.lastBall, s.lastBallErr
}

func completedMatch(id string, teamIDs ...string) match.Match {
	teams := make([]match.Team, 0, len(teamIDs))
	for _, teamID := range teamIDs {
		teams = append(teams, match.Team{ID: teamID, Name: "Team " + teamID})
	}
	return match.Match{
		ID:       id,
		Status:   match.StatusCompleted,
		Teams:    teams,
		Schedule: []match.ScheduleSlot{{StartsAt: time.Date(2026, 3, 7, 10, 0, 0, 0, time.UTC)}},
	}
}

func TestCurrentMatches_RequiresGradeID(t *testing.T) {
	svc := NewMatchService(&stubProvider{}, nil)

	if _, err := svc.CurrentMatches(context.Background(), "  ", ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestCurrentMatches_GradeFetchFailureIsFatal(t *testing.T) {
	svc := NewMatchService(&stubProvider{matchesErr: errors.New("upstream down")}, nil)

	if _, err := svc.CurrentMatches(context.Background(), "g1", "T1"); err == nil {
		t.Fatalf("expected the grade matches failure to propagate")
	}
}

func TestCurrentMatches_NoTeamPassesThroughUnenriched(t *testing.T) {
	provider := &stubProvider{matches: []match.Match{
		completedMatch("m1", "T1", "T2"),
		completedMatch("m2", "T3", "T4"),
	}}
	svc := NewMatchService(provider, nil)

	got, err := svc.CurrentMatches(context.Background(), "g1", "")
	if err != nil {
		t.Fatalf("current matches: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected the full list, got %d matches", len(got))
	}
	if got[0].Detail != nil || got[0].CurrentPlayers != nil {
		t.Fatalf("passthrough matches must not be enriched: %+v", got[0])
	}
	if provider.detailCalls != 0 || provider.lastBallCalls != 0 {
		t.Fatalf("no enrichment calls expected without a team filter")
	}
}

func TestCurrentMatches_UnknownTeamReturnsEmptyList(t *testing.T) {
	provider := &stubProvider{matches: []match.Match{completedMatch("m1", "T1")}}
	svc := NewMatchService(provider, nil)

	got, err := svc.CurrentMatches(context.Background(), "g1", "T9")
	if err != nil {
		t.Fatalf("current matches: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected an empty list, got %v", got)
	}
}

func TestCurrentMatches_EnrichesChosenMatch(t *testing.T) {
	detail := &match.Detail{Innings: []match.Innings{{
		BattingTeamID: "T1",
		OversBowled:   "31.4",
		Batting:       []match.BattingFigure{{ParticipantID: "p1", Runs: intPtr(58)}},
		Bowling:       []match.BowlingFigure{{ParticipantID: "p9", Overs: strPtr("9.4"), Wickets: intPtr(3)}},
	}}}
	ball := &match.Ball{StrikerID: "p1", StrikerName: "A Opener", BowlerID: "p9", BowlerName: "C Quick"}
	provider := &stubProvider{
		matches:  []match.Match{completedMatch("m1", "T1", "T2")},
		detail:   detail,
		lastBall: ball,
	}
	svc := NewMatchService(provider, nil)

	got, err := svc.CurrentMatches(context.Background(), "g1", "T1")
	if err != nil {
		t.Fatalf("current matches: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected exactly one chosen match, got %d", len(got))
	}

	chosen := got[0]
	if chosen.Detail == nil || chosen.LastBall == nil || chosen.CurrentPlayers == nil {
		t.Fatalf("chosen match must be fully enriched: %+v", chosen)
	}
	if chosen.CurrentPlayers.StrikerRuns == nil || *chosen.CurrentPlayers.StrikerRuns != 58 {
		t.Fatalf("unexpected striker runs: %+v", chosen.CurrentPlayers.StrikerRuns)
	}
	if chosen.Teams[0].OversBowled != "31.4" {
		t.Fatalf("unexpected overs annotation: %q", chosen.Teams[0].OversBowled)
	}
	if chosen.Teams[1].OversBowled != "0.0" {
		t.Fatalf("expected default overs for the fielding team, got %q", chosen.Teams[1].OversBowled)
	}
}

func TestCurrentMatches_DetailFailureDegradesQuietly(t *testing.T) {
	provider := &stubProvider{
		matches:   []match.Match{completedMatch("m1", "T1")},
		detailErr: errors.New("scorecard timeout"),
		lastBall:  &match.Ball{StrikerID: "p1", BowlerID: "p9"},
	}
	svc := NewMatchService(provider, nil)

	got, err := svc.CurrentMatches(context.Background(), "g1", "T1")
	if err != nil {
		t.Fatalf("a detail failure must not fail the request: %v", err)
	}
	chosen := got[0]
	if chosen.Detail != nil {
		t.Fatalf("expected nil detail after a failed fetch")
	}
	if chosen.LastBall == nil || chosen.CurrentPlayers == nil {
		t.Fatalf("later stages must still run: %+v", chosen)
	}
	if chosen.CurrentPlayers.StrikerRuns != nil {
		t.Fatalf("statistics must stay nil without a scorecard")
	}
	if chosen.Teams[0].OversBowled != "0.0" {
		t.Fatalf("expected default overs without a scorecard, got %q", chosen.Teams[0].OversBowled)
	}
}

func TestCurrentMatches_BallFeedFailureLeavesPlayersNil(t *testing.T) {
	provider := &stubProvider{
		matches:     []match.Match{completedMatch("m1", "T1")},
		detail:      &match.Detail{Innings: []match.Innings{{BattingTeamID: "T1", OversBowled: "12.0"}}},
		lastBallErr: errors.New("both ball feeds down"),
	}
	svc := NewMatchService(provider, nil)

	got, err := svc.CurrentMatches(context.Background(), "g1", "T1")
	if err != nil {
		t.Fatalf("a ball feed failure must not fail the request: %v", err)
	}
	chosen := got[0]
	if chosen.LastBall != nil || chosen.CurrentPlayers != nil {
		t.Fatalf("expected nil last ball and players: %+v", chosen)
	}
	if chosen.Detail == nil || chosen.Teams[0].OversBowled != "12.0" {
		t.Fatalf("detail and overs must still be applied: %+v", chosen)
	}
}

func TestCurrentMatches_EmptyBallFeedMeansNoPlayers(t *testing.T) {
	provider := &stubProvider{
		matches: []match.Match{completedMatch("m1", "T1")},
		detail:  &match.Detail{Innings: []match.Innings{{BattingTeamID: "T1"}}},
	}
	svc := NewMatchService(provider, nil)

	got, err := svc.CurrentMatches(context.Background(), "g1", "T1")
	if err != nil {
		t.Fatalf("current matches: %v", err)
	}
	if got[0].CurrentPlayers != nil {
		t.Fatalf("current players exist only when a last ball was resolved")
	}
}
