package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/willowfeed/matchcentre/internal/domain/match"
)

// UpstreamProvider is the scorehub surface the pipeline consumes.
type UpstreamProvider interface {
	GradeMatches(ctx context.Context, gradeID string) ([]match.Match, error)
	MatchDetail(ctx context.Context, matchID string) (*match.Detail, error)
	LastBall(ctx context.Context, matchID string) (*match.Ball, error)
}

// MatchService aggregates the current-match view for a team inside a
// grade. Only the grade matches fetch is fatal; every later stage
// fails soft so the response always carries best-effort data once a
// match has been chosen.
type MatchService struct {
	provider UpstreamProvider
	logger   *slog.Logger
}

func NewMatchService(provider UpstreamProvider, logger *slog.Logger) *MatchService {
	if logger == nil {
		logger = slog.Default()
	}
	return &MatchService{
		provider: provider,
		logger:   logger,
	}
}

// CurrentMatches returns the grade's matches untouched when no team is
// requested, or the single chosen match enriched with detail, last
// ball, current players and per-team overs. A team with no matches in
// the grade yields an empty list, not an error.
func (s *MatchService) CurrentMatches(ctx context.Context, gradeID, teamID string) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.CurrentMatches")
	defer span.End()

	gradeID = strings.TrimSpace(gradeID)
	if gradeID == "" {
		return nil, fmt.Errorf("%w: grade id is required", ErrInvalidInput)
	}

	matches, err := s.provider.GradeMatches(ctx, gradeID)
	if err != nil {
		return nil, fmt.Errorf("grade matches: %w", err)
	}

	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return matches, nil
	}

	chosen, ok := selectCandidate(matches, teamID)
	if !ok {
		return []match.Match{}, nil
	}

	enriched := s.applyStages(ctx, chosen,
		enrichStage{"detail", s.attachDetail},
		enrichStage{"last_ball", s.attachLastBall},
		enrichStage{"current_players", attachCurrentPlayers},
		enrichStage{"team_overs", annotateOvers},
	)

	return []match.Match{enriched}, nil
}

// enrichStage consumes a match record and returns a new one with more
// fields populated. Stages never mutate their input.
type enrichStage struct {
	name  string
	apply func(ctx context.Context, m match.Match) (match.Match, error)
}

// applyStages threads the record through each stage, keeping the last
// good value when a stage fails. Partial enrichment is never an error.
func (s *MatchService) applyStages(ctx context.Context, m match.Match, stages ...enrichStage) match.Match {
	for _, stage := range stages {
		next, err := stage.apply(ctx, m)
		if err != nil {
			s.logger.WarnContext(ctx, "enrichment stage degraded",
				"stage", stage.name, "match_id", m.ID, "error", err)
			continue
		}
		m = next
	}
	return m
}

func (s *MatchService) attachDetail(ctx context.Context, m match.Match) (match.Match, error) {
	detail, err := s.provider.MatchDetail(ctx, m.ID)
	if err != nil {
		return m, err
	}
	m.Detail = detail
	return m, nil
}

func (s *MatchService) attachLastBall(ctx context.Context, m match.Match) (match.Match, error) {
	ball, err := s.provider.LastBall(ctx, m.ID)
	if err != nil {
		return m, err
	}
	m.LastBall = ball
	return m, nil
}

func attachCurrentPlayers(_ context.Context, m match.Match) (match.Match, error) {
	m.CurrentPlayers = buildCurrentPlayers(m.LastBall, m.Detail)
	return m, nil
}

func annotateOvers(_ context.Context, m match.Match) (match.Match, error) {
	return annotateTeamOvers(m), nil
}
