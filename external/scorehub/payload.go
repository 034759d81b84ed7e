package scorehub

import (
	"strconv"
	"strings"
	"time"

	"github.com/willowfeed/matchcentre/internal/domain/match"
)

// Two schema generations coexist upstream: figures carry either a flat
// participantId or a nested participant object, and batting runs are
// either runsScored or the legacy runs alias. Each payload is
// inspected once to pick the right accessor set instead of falling
// back field by field.

type participantIDFunc func(map[string]any) string

func flatParticipantID(fig map[string]any) string {
	return stringID(fig, "participantId")
}

func nestedParticipantID(fig map[string]any) string {
	nested, _ := fig["participant"].(map[string]any)
	return stringID(nested, "id")
}

func participantIDAdapter(figures []map[string]any) participantIDFunc {
	for _, fig := range figures {
		if _, ok := fig["participantId"]; ok {
			return flatParticipantID
		}
		if _, ok := fig["participant"]; ok {
			return nestedParticipantID
		}
	}
	return flatParticipantID
}

func battingRunsKey(figures []map[string]any) string {
	for _, fig := range figures {
		if _, ok := fig["runsScored"]; ok {
			return "runsScored"
		}
	}
	for _, fig := range figures {
		if _, ok := fig["runs"]; ok {
			return "runs"
		}
	}
	return "runsScored"
}

func mapBattingFigures(items []any) []match.BattingFigure {
	figures := figureMaps(items)
	if len(figures) == 0 {
		return nil
	}

	participantID := participantIDAdapter(figures)
	runsKey := battingRunsKey(figures)

	out := make([]match.BattingFigure, 0, len(figures))
	for _, fig := range figures {
		out = append(out, match.BattingFigure{
			ParticipantID: participantID(fig),
			Runs:          getIntPtr(fig, runsKey),
			BallsFaced:    getIntPtr(fig, "ballsFaced"),
		})
	}
	return out
}

func mapBowlingFigures(items []any) []match.BowlingFigure {
	figures := figureMaps(items)
	if len(figures) == 0 {
		return nil
	}

	participantID := participantIDAdapter(figures)

	out := make([]match.BowlingFigure, 0, len(figures))
	for _, fig := range figures {
		out = append(out, match.BowlingFigure{
			ParticipantID: participantID(fig),
			Overs:         oversPtr(fig, "oversBowled"),
			Maidens:       getIntPtr(fig, "maidens"),
			RunsConceded:  getIntPtr(fig, "runsConceded"),
			Wickets:       getIntPtr(fig, "wickets"),
			NoBalls:       getIntPtr(fig, "noBalls"),
			Wides:         getIntPtr(fig, "wides"),
			Economy:       getFloatPtr(fig, "economy"),
			IsBowling:     getBoolPtr(fig, "isBowling"),
		})
	}
	return out
}

// ballKeys names the fields a delivery record uses for each role.
// Selection happens once per record: the primary name wins whenever it
// is present, the legacy alias otherwise.
type ballKeys struct {
	strikerID      string
	strikerName    string
	nonStrikerID   string
	nonStrikerName string
	bowlerID       string
	bowlerName     string
}

func ballKeysFor(raw map[string]any) ballKeys {
	keys := ballKeys{
		strikerID:      "strikerParticipantId",
		strikerName:    "strikerName",
		nonStrikerID:   "nonStrikerParticipantId",
		nonStrikerName: "nonStrikerName",
		bowlerID:       "bowlerParticipantId",
		bowlerName:     "bowlerName",
	}
	if _, ok := raw["strikerParticipantId"]; !ok {
		if _, ok := raw["batsmanId"]; ok {
			keys.strikerID, keys.strikerName = "batsmanId", "batsmanName"
		}
	}
	if _, ok := raw["nonStrikerParticipantId"]; !ok {
		if _, ok := raw["nonStrikerId"]; ok {
			keys.nonStrikerID = "nonStrikerId"
		}
	}
	if _, ok := raw["bowlerParticipantId"]; !ok {
		if _, ok := raw["bowlerId"]; ok {
			keys.bowlerID = "bowlerId"
		}
	}
	return keys
}

func mapBall(raw map[string]any) match.Ball {
	keys := ballKeysFor(raw)
	return match.Ball{
		StrikerID:      stringID(raw, keys.strikerID),
		StrikerName:    getString(raw, keys.strikerName),
		NonStrikerID:   stringID(raw, keys.nonStrikerID),
		NonStrikerName: getString(raw, keys.nonStrikerName),
		BowlerID:       stringID(raw, keys.bowlerID),
		BowlerName:     getString(raw, keys.bowlerName),
		BowledAt:       parseUpstreamTime(firstString(raw, "deliveryTime", "timestamp")),
	}
}

func mapBalls(items []any) []match.Ball {
	records := ballMaps(items)
	if len(records) == 0 {
		return nil
	}
	out := make([]match.Ball, 0, len(records))
	for _, record := range records {
		out = append(out, mapBall(record))
	}
	return out
}

func mapInnings(raw map[string]any) match.Innings {
	battingTeamID := stringID(raw, "battingTeamId")
	if battingTeamID == "" {
		if nested, ok := raw["battingTeam"].(map[string]any); ok {
			battingTeamID = stringID(nested, "id")
		}
	}

	batting, _ := raw["batting"].([]any)
	bowling, _ := raw["bowling"].([]any)
	balls, _ := raw["balls"].([]any)

	return match.Innings{
		BattingTeamID: battingTeamID,
		OversBowled:   oversString(raw, "oversBowled"),
		Batting:       mapBattingFigures(batting),
		Bowling:       mapBowlingFigures(bowling),
		Balls:         mapBalls(balls),
	}
}

func mapDetail(record map[string]any) *match.Detail {
	items, _ := record["innings"].([]any)
	detail := &match.Detail{Innings: make([]match.Innings, 0, len(items))}
	for _, item := range items {
		raw, ok := item.(map[string]any)
		if !ok {
			continue
		}
		detail.Innings = append(detail.Innings, mapInnings(raw))
	}
	return detail
}

func mapMatches(items []map[string]any) []match.Match {
	out := make([]match.Match, 0, len(items))
	for _, item := range items {
		out = append(out, mapMatch(item))
	}
	return out
}

func mapMatch(raw map[string]any) match.Match {
	m := match.Match{
		ID:     stringID(raw, "id"),
		Status: match.NormalizeStatus(getString(raw, "status")),
		Grade:  stringID(raw, "gradeId"),
	}

	if teams, ok := raw["teams"].([]any); ok {
		m.Teams = make([]match.Team, 0, len(teams))
		for _, item := range teams {
			record, ok := item.(map[string]any)
			if !ok {
				continue
			}
			m.Teams = append(m.Teams, match.Team{
				ID:   stringID(record, "id"),
				Name: getString(record, "name"),
			})
		}
	}

	schedule, ok := raw["matchSchedule"].([]any)
	if !ok {
		schedule, _ = raw["schedule"].([]any)
	}
	for _, item := range schedule {
		record, ok := item.(map[string]any)
		if !ok {
			continue
		}
		startsAt := parseUpstreamTime(firstString(record, "startDateTime", "startTime"))
		if startsAt == nil {
			continue
		}
		m.Schedule = append(m.Schedule, match.ScheduleSlot{StartsAt: *startsAt})
	}

	return m
}

// unwrapMatchList tolerates both a bare array and a {"matches": [...]}
// container.
func unwrapMatchList(payload any) []map[string]any {
	items, ok := payload.([]any)
	if !ok {
		wrapper, isMap := payload.(map[string]any)
		if !isMap {
			return nil
		}
		items, _ = wrapper["matches"].([]any)
	}

	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		if record, isMap := item.(map[string]any); isMap {
			out = append(out, record)
		}
	}
	return out
}

// unwrapMatchRecord peels the detail envelopes: a "matches" list
// first, then a "match" wrapper, in that order, each at most once.
func unwrapMatchRecord(payload any) (map[string]any, bool) {
	record, ok := payload.(map[string]any)
	if !ok {
		return nil, false
	}

	if items, hasList := record["matches"].([]any); hasList {
		if len(items) == 0 {
			return nil, false
		}
		inner, isMap := items[0].(map[string]any)
		if !isMap {
			return nil, false
		}
		record = inner
	}

	if inner, hasMatch := record["match"].(map[string]any); hasMatch {
		record = inner
	}

	return record, true
}

func figureMaps(items []any) []map[string]any {
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		if record, ok := item.(map[string]any); ok {
			out = append(out, record)
		}
	}
	return out
}

func getString(src map[string]any, key string) string {
	if src == nil {
		return ""
	}
	raw, ok := src[key]
	if !ok || raw == nil {
		return ""
	}
	value, ok := raw.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(value)
}

func firstString(src map[string]any, keys ...string) string {
	for _, key := range keys {
		if value := getString(src, key); value != "" {
			return value
		}
	}
	return ""
}

// stringID reads an identifier that upstream serializes either as a
// string or as a number.
func stringID(src map[string]any, key string) string {
	if src == nil {
		return ""
	}
	switch typed := src[key].(type) {
	case string:
		return strings.TrimSpace(typed)
	case float64:
		return strconv.FormatInt(int64(typed), 10)
	case int64:
		return strconv.FormatInt(typed, 10)
	case int:
		return strconv.Itoa(typed)
	default:
		return ""
	}
}

// getIntPtr keeps the absent-versus-zero distinction: a missing or
// null field stays nil rather than becoming 0.
func getIntPtr(src map[string]any, key string) *int {
	if src == nil {
		return nil
	}
	raw, ok := src[key]
	if !ok || raw == nil {
		return nil
	}
	switch typed := raw.(type) {
	case float64:
		v := int(typed)
		return &v
	case int:
		v := typed
		return &v
	case int64:
		v := int(typed)
		return &v
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(typed))
		if err != nil {
			return nil
		}
		return &parsed
	default:
		return nil
	}
}

func getFloatPtr(src map[string]any, key string) *float64 {
	if src == nil {
		return nil
	}
	raw, ok := src[key]
	if !ok || raw == nil {
		return nil
	}
	switch typed := raw.(type) {
	case float64:
		v := typed
		return &v
	case int:
		v := float64(typed)
		return &v
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(typed), 64)
		if err != nil {
			return nil
		}
		return &parsed
	default:
		return nil
	}
}

func getBoolPtr(src map[string]any, key string) *bool {
	if src == nil {
		return nil
	}
	raw, ok := src[key]
	if !ok || raw == nil {
		return nil
	}
	value, ok := raw.(bool)
	if !ok {
		return nil
	}
	return &value
}

// oversPtr reads an overs value, which upstream formats as a string
// ("12.4") in the current schema and as a number in the legacy one.
func oversPtr(src map[string]any, key string) *string {
	value := oversString(src, key)
	if value == "" {
		return nil
	}
	return &value
}

func oversString(src map[string]any, key string) string {
	if src == nil {
		return ""
	}
	switch typed := src[key].(type) {
	case string:
		return strings.TrimSpace(typed)
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	default:
		return ""
	}
}

func parseUpstreamTime(raw string) *time.Time {
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil
	}

	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
	}
	for _, layout := range layouts {
		parsed, err := time.Parse(layout, value)
		if err == nil {
			v := parsed.UTC()
			return &v
		}
	}
	return nil
}
