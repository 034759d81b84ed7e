package match

import (
	"strings"
	"time"
)

const (
	StatusUpcoming   = "UPCOMING"
	StatusInProgress = "IN_PROGRESS"
	StatusCompleted  = "COMPLETED"
	StatusAbandoned  = "ABANDONED"
)

// Match is one fixture inside a grade, built fresh per request.
// Detail, LastBall and CurrentPlayers are only populated for the
// single match chosen for a team.
type Match struct {
	ID             string
	Status         string
	Grade          string
	Teams          []Team
	Schedule       []ScheduleSlot
	Detail         *Detail
	LastBall       *Ball
	CurrentPlayers *CurrentPlayers
}

// Team is one side of a match. OversBowled carries the upstream
// formatted overs string (e.g. "12.4") and is only set during
// enrichment of the chosen match.
type Team struct {
	ID          string
	Name        string
	OversBowled string
}

// ScheduleSlot is one scheduled start time. Multi-day grade matches
// carry one slot per day of play.
type ScheduleSlot struct {
	StartsAt time.Time
}

// Detail is the scorecard-bearing match record.
type Detail struct {
	Innings []Innings
}

// Innings is one team's batting turn, with its own ordered ball,
// batting and bowling lists.
type Innings struct {
	BattingTeamID string
	OversBowled   string
	Batting       []BattingFigure
	Bowling       []BowlingFigure
	Balls         []Ball
}

// Ball is a single delivery event. Upstream array order is trusted as
// chronological; BowledAt is informational only.
type Ball struct {
	StrikerID      string
	StrikerName    string
	NonStrikerID   string
	NonStrikerName string
	BowlerID       string
	BowlerName     string
	BowledAt       *time.Time
}

// BattingFigure is one batter's tally inside an innings. Nil pointers
// mean the upstream recorded no value, which is distinct from zero.
type BattingFigure struct {
	ParticipantID string
	Runs          *int
	BallsFaced    *int
}

// BowlingFigure is one bowler's tally inside an innings.
type BowlingFigure struct {
	ParticipantID string
	Overs         *string
	Maidens       *int
	RunsConceded  *int
	Wickets       *int
	NoBalls       *int
	Wides         *int
	Economy       *float64
	IsBowling     *bool
}

// CurrentPlayers combines the last delivery's identities with the
// figures looked up from the current innings. It exists if and only
// if a last ball was resolved.
type CurrentPlayers struct {
	StrikerID         string
	StrikerName       string
	StrikerRuns       *int
	StrikerBallsFaced *int

	NonStrikerID         string
	NonStrikerName       string
	NonStrikerRuns       *int
	NonStrikerBallsFaced *int

	BowlerID           string
	BowlerName         string
	BowlerRuns         *int
	BowlerBallsFaced   *int
	BowlerOvers        *string
	BowlerMaidens      *int
	BowlerRunsConceded *int
	BowlerWickets      *int
	BowlerNoBalls      *int
	BowlerWides        *int
	BowlerEconomy      *float64
	BowlerIsBowling    *bool
}

// NormalizeStatus uppercases a status for comparison; unknown values
// pass through so selection never drops a match on status alone.
func NormalizeStatus(value string) string {
	return strings.ToUpper(strings.TrimSpace(value))
}

// IsUpcoming reports whether a match has not started.
func IsUpcoming(status string) bool {
	return NormalizeStatus(status) == StatusUpcoming
}

// HasTeam reports whether the match involves the given team.
func (m Match) HasTeam(teamID string) bool {
	for _, t := range m.Teams {
		if t.ID == teamID {
			return true
		}
	}
	return false
}

// EarliestStart returns the earliest scheduled start time, or false
// when the match has no schedule at all.
func (m Match) EarliestStart() (time.Time, bool) {
	var earliest time.Time
	found := false
	for _, slot := range m.Schedule {
		if slot.StartsAt.IsZero() {
			continue
		}
		if !found || slot.StartsAt.Before(earliest) {
			earliest = slot.StartsAt
			found = true
		}
	}
	return earliest, found
}

// CurrentInnings returns the last innings of the detail, which the
// upstream orders chronologically, or false when no detail exists.
func (d *Detail) CurrentInnings() (Innings, bool) {
	if d == nil || len(d.Innings) == 0 {
		return Innings{}, false
	}
	return d.Innings[len(d.Innings)-1], true
}
