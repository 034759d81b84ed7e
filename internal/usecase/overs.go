package usecase

import "github.com/willowfeed/matchcentre/internal/domain/match"

const defaultOvers = "0.0"

// annotateTeamOvers copies each team's overs summary from the innings
// in which that team batted, keeping the upstream-formatted string.
// Teams that have not batted, or a match without detail, read "0.0".
func annotateTeamOvers(m match.Match) match.Match {
	if len(m.Teams) == 0 {
		return m
	}

	teams := make([]match.Team, len(m.Teams))
	copy(teams, m.Teams)
	for i := range teams {
		teams[i].OversBowled = oversForTeam(m.Detail, teams[i].ID)
	}
	m.Teams = teams

	return m
}

func oversForTeam(detail *match.Detail, teamID string) string {
	if detail == nil || teamID == "" {
		return defaultOvers
	}
	for _, innings := range detail.Innings {
		if innings.BattingTeamID == teamID && innings.OversBowled != "" {
			return innings.OversBowled
		}
	}
	return defaultOvers
}
