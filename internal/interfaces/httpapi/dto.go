package httpapi

import (
	"time"

	"github.com/willowfeed/matchcentre/internal/domain/match"
)

// The enrichment fields are populated on the chosen match only; the
// plain listing must not carry them at all, so they are omitted when
// nil rather than serialized as nulls.
type matchDTO struct {
	ID             string             `json:"id"`
	Status         string             `json:"status"`
	GradeID        string             `json:"gradeId,omitempty"`
	Teams          []teamDTO          `json:"teams"`
	Schedule       []scheduleSlotDTO  `json:"schedule"`
	Detail         *detailDTO         `json:"detail,omitempty"`
	LastBall       *ballDTO           `json:"lastBall,omitempty"`
	CurrentPlayers *currentPlayersDTO `json:"currentPlayers,omitempty"`
}

type teamDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	OversBowled string `json:"oversBowled,omitempty"`
}

type scheduleSlotDTO struct {
	StartsAt time.Time `json:"startsAt"`
}

type detailDTO struct {
	Innings []inningsDTO `json:"innings"`
}

type inningsDTO struct {
	BattingTeamID string             `json:"battingTeamId"`
	OversBowled   string             `json:"oversBowled"`
	Batting       []battingFigureDTO `json:"batting"`
	Bowling       []bowlingFigureDTO `json:"bowling"`
	Balls         []ballDTO          `json:"balls"`
}

type ballDTO struct {
	StrikerID      string     `json:"strikerId"`
	StrikerName    string     `json:"strikerName"`
	NonStrikerID   string     `json:"nonStrikerId"`
	NonStrikerName string     `json:"nonStrikerName"`
	BowlerID       string     `json:"bowlerId"`
	BowlerName     string     `json:"bowlerName"`
	BowledAt       *time.Time `json:"bowledAt"`
}

type battingFigureDTO struct {
	ParticipantID string `json:"participantId"`
	Runs          *int   `json:"runs"`
	BallsFaced    *int   `json:"ballsFaced"`
}

type bowlingFigureDTO struct {
	ParticipantID string   `json:"participantId"`
	Overs         *string  `json:"overs"`
	Maidens       *int     `json:"maidens"`
	RunsConceded  *int     `json:"runsConceded"`
	Wickets       *int     `json:"wickets"`
	NoBalls       *int     `json:"noBalls"`
	Wides         *int     `json:"wides"`
	Economy       *float64 `json:"economy"`
	IsBowling     *bool    `json:"isBowling"`
}

// Pointer stat fields deliberately omit omitempty: an upstream null is
// part of the contract and must not collapse into a missing key.
type currentPlayersDTO struct {
	StrikerID         string `json:"strikerId"`
	StrikerName       string `json:"strikerName"`
	StrikerRuns       *int   `json:"strikerRuns"`
	StrikerBallsFaced *int   `json:"strikerBallsFaced"`

	NonStrikerID         string `json:"nonStrikerId"`
	NonStrikerName       string `json:"nonStrikerName"`
	NonStrikerRuns       *int   `json:"nonStrikerRuns"`
	NonStrikerBallsFaced *int   `json:"nonStrikerBallsFaced"`

	BowlerID           string   `json:"bowlerId"`
	BowlerName         string   `json:"bowlerName"`
	BowlerRuns         *int     `json:"bowlerRuns"`
	BowlerBallsFaced   *int     `json:"bowlerBallsFaced"`
	BowlerOvers        *string  `json:"bowlerOvers"`
	BowlerMaidens      *int     `json:"bowlerMaidens"`
	BowlerRunsConceded *int     `json:"bowlerRunsConceded"`
	BowlerWickets      *int     `json:"bowlerWickets"`
	BowlerNoBalls      *int     `json:"bowlerNoBalls"`
	BowlerWides        *int     `json:"bowlerWides"`
	BowlerEconomy      *float64 `json:"bowlerEconomy"`
	BowlerIsBowling    *bool    `json:"bowlerIsBowling"`
}

func matchToDTO(m match.Match) matchDTO {
	teams := make([]teamDTO, 0, len(m.Teams))
	for _, t := range m.Teams {
		teams = append(teams, teamDTO{ID: t.ID, Name: t.Name, OversBowled: t.OversBowled})
	}

	schedule := make([]scheduleSlotDTO, 0, len(m.Schedule))
	for _, slot := range m.Schedule {
		schedule = append(schedule, scheduleSlotDTO{StartsAt: slot.StartsAt})
	}

	return matchDTO{
		ID:             m.ID,
		Status:         m.Status,
		GradeID:        m.Grade,
		Teams:          teams,
		Schedule:       schedule,
		Detail:         detailToDTO(m.Detail),
		LastBall:       ballToDTO(m.LastBall),
		CurrentPlayers: currentPlayersToDTO(m.CurrentPlayers),
	}
}

func detailToDTO(d *match.Detail) *detailDTO {
	if d == nil {
		return nil
	}

	innings := make([]inningsDTO, 0, len(d.Innings))
	for _, in := range d.Innings {
		innings = append(innings, inningsToDTO(in))
	}

	return &detailDTO{Innings: innings}
}

func inningsToDTO(in match.Innings) inningsDTO {
	batting := make([]battingFigureDTO, 0, len(in.Batting))
	for _, figure := range in.Batting {
		batting = append(batting, battingFigureDTO{
			ParticipantID: figure.ParticipantID,
			Runs:          figure.Runs,
			BallsFaced:    figure.BallsFaced,
		})
	}

	bowling := make([]bowlingFigureDTO, 0, len(in.Bowling))
	for _, figure := range in.Bowling {
		bowling = append(bowling, bowlingFigureDTO{
			ParticipantID: figure.ParticipantID,
			Overs:         figure.Overs,
			Maidens:       figure.Maidens,
			RunsConceded:  figure.RunsConceded,
			Wickets:       figure.Wickets,
			NoBalls:       figure.NoBalls,
			Wides:         figure.Wides,
			Economy:       figure.Economy,
			IsBowling:     figure.IsBowling,
		})
	}

	balls := make([]ballDTO, 0, len(in.Balls))
	for i := range in.Balls {
		balls = append(balls, *ballToDTO(&in.Balls[i]))
	}

	return inningsDTO{
		BattingTeamID: in.BattingTeamID,
		OversBowled:   in.OversBowled,
		Batting:       batting,
		Bowling:       bowling,
		Balls:         balls,
	}
}

func ballToDTO(b *match.Ball) *ballDTO {
	if b == nil {
		return nil
	}

	return &ballDTO{
		StrikerID:      b.StrikerID,
		StrikerName:    b.StrikerName,
		NonStrikerID:   b.NonStrikerID,
		NonStrikerName: b.NonStrikerName,
		BowlerID:       b.BowlerID,
		BowlerName:     b.BowlerName,
		BowledAt:       b.BowledAt,
	}
}

func currentPlayersToDTO(cp *match.CurrentPlayers) *currentPlayersDTO {
	if cp == nil {
		return nil
	}

	return &currentPlayersDTO{
		StrikerID:         cp.StrikerID,
		StrikerName:       cp.StrikerName,
		StrikerRuns:       cp.StrikerRuns,
		StrikerBallsFaced: cp.StrikerBallsFaced,

		NonStrikerID:         cp.NonStrikerID,
		NonStrikerName:       cp.NonStrikerName,
		NonStrikerRuns:       cp.NonStrikerRuns,
		NonStrikerBallsFaced: cp.NonStrikerBallsFaced,

		BowlerID:           cp.BowlerID,
		BowlerName:         cp.BowlerName,
		BowlerRuns:         cp.BowlerRuns,
		BowlerBallsFaced:   cp.BowlerBallsFaced,
		BowlerOvers:        cp.BowlerOvers,
		BowlerMaidens:      cp.BowlerMaidens,
		BowlerRunsConceded: cp.BowlerRunsConceded,
		BowlerWickets:      cp.BowlerWickets,
		BowlerNoBalls:      cp.BowlerNoBalls,
		BowlerWides:        cp.BowlerWides,
		BowlerEconomy:      cp.BowlerEconomy,
		BowlerIsBowling:    cp.BowlerIsBowling,
	}
}
