package usecase

import "github.com/willowfeed/matchcentre/internal/domain/match"

// buildCurrentPlayers cross-references the last delivery's identities
// with the scorecard of the current innings (the last one in the
// detail). Without a last ball there are no current players at all.
// Without a usable detail the identities survive and every statistic
// stays nil: an unrecorded value is not a zero.
func buildCurrentPlayers(lastBall *match.Ball, detail *match.Detail) *match.CurrentPlayers {
	if lastBall == nil {
		return nil
	}

	players := &match.CurrentPlayers{
		StrikerID:      lastBall.StrikerID,
		StrikerName:    lastBall.StrikerName,
		NonStrikerID:   lastBall.NonStrikerID,
		NonStrikerName: lastBall.NonStrikerName,
		BowlerID:       lastBall.BowlerID,
		BowlerName:     lastBall.BowlerName,
	}

	innings, ok := detail.CurrentInnings()
	if !ok {
		return players
	}

	batting := indexBattingFigures(innings.Batting)
	bowling := indexBowlingFigures(innings.Bowling)

	if figure, found := batting[players.StrikerID]; found {
		players.StrikerRuns = figure.Runs
		players.StrikerBallsFaced = figure.BallsFaced
	}
	if figure, found := batting[players.NonStrikerID]; found {
		players.NonStrikerRuns = figure.Runs
		players.NonStrikerBallsFaced = figure.BallsFaced
	}

	// A bowler may also have batted earlier in the innings.
	if figure, found := batting[players.BowlerID]; found {
		players.BowlerRuns = figure.Runs
		players.BowlerBallsFaced = figure.BallsFaced
	}
	if figure, found := bowling[players.BowlerID]; found {
		players.BowlerOvers = figure.Overs
		players.BowlerMaidens = figure.Maidens
		players.BowlerRunsConceded = figure.RunsConceded
		players.BowlerWickets = figure.Wickets
		players.BowlerNoBalls = zeroWhenNil(figure.NoBalls)
		players.BowlerWides = zeroWhenNil(figure.Wides)
		players.BowlerEconomy = figure.Economy
		players.BowlerIsBowling = figure.IsBowling
	}

	return players
}

func indexBattingFigures(figures []match.BattingFigure) map[string]match.BattingFigure {
	index := make(map[string]match.BattingFigure, len(figures))
	for _, figure := range figures {
		if figure.ParticipantID == "" {
			continue
		}
		if _, exists := index[figure.ParticipantID]; exists {
			continue
		}
		index[figure.ParticipantID] = figure
	}
	return index
}

func indexBowlingFigures(figures []match.BowlingFigure) map[string]match.BowlingFigure {
	index := make(map[string]match.BowlingFigure, len(figures))
	for _, figure := range figures {
		if figure.ParticipantID == "" {
			continue
		}
		if _, exists := index[figure.ParticipantID]; exists {
			continue
		}
		index[figure.ParticipantID] = figure
	}
	return index
}

// zeroWhenNil applies the bowling sub-field default: when an entry
// exists for the bowler but omits no-balls or wides, those two count
// as 0. Fields of a missing entry stay nil.
func zeroWhenNil(value *int) *int {
	if value != nil {
		return value
	}
	zero := 0
	return &zero
}
