package scorehub

// The ball feed arrives in one of four shapes depending on upstream
// routing. Everything is normalized into one ordered list of innings,
// each an ordered list of balls, before any extraction logic runs.
// Ball order inside a feed is trusted as chronological; no timestamp
// sort is applied here.

type ballsShape int

const (
	shapeUnknown ballsShape = iota
	// Top-level array whose elements are innings carrying a balls list.
	shapeInningsList
	// Top-level array of bare ball records.
	shapeFlatBallList
	// Top-level object wrapping an "innings" list.
	shapeWrappedInnings
	// Top-level object wrapping a flat "balls" list.
	shapeWrappedBalls
)

type ballFeed struct {
	innings []feedInnings
}

type feedInnings struct {
	balls []map[string]any
}

func classifyBallsPayload(payload any) ballsShape {
	switch typed := payload.(type) {
	case []any:
		if len(typed) == 0 {
			return shapeFlatBallList
		}
		first, ok := typed[0].(map[string]any)
		if !ok {
			return shapeUnknown
		}
		if _, ok := first["balls"].([]any); ok {
			return shapeInningsList
		}
		return shapeFlatBallList
	case map[string]any:
		if _, ok := typed["innings"].([]any); ok {
			return shapeWrappedInnings
		}
		if _, ok := typed["balls"].([]any); ok {
			return shapeWrappedBalls
		}
	}
	return shapeUnknown
}

func normalizeBallFeed(payload any) ballFeed {
	switch classifyBallsPayload(payload) {
	case shapeInningsList:
		return mapInningsList(payload.([]any))
	case shapeFlatBallList:
		return mapFlatBallList(payload.([]any))
	case shapeWrappedInnings:
		wrapper := payload.(map[string]any)
		return mapInningsList(wrapper["innings"].([]any))
	case shapeWrappedBalls:
		wrapper := payload.(map[string]any)
		return mapFlatBallList(wrapper["balls"].([]any))
	default:
		return ballFeed{}
	}
}

func mapInningsList(items []any) ballFeed {
	feed := ballFeed{innings: make([]feedInnings, 0, len(items))}
	for _, item := range items {
		record, ok := item.(map[string]any)
		if !ok {
			continue
		}
		rawBalls, _ := record["balls"].([]any)
		feed.innings = append(feed.innings, feedInnings{balls: ballMaps(rawBalls)})
	}
	return feed
}

// mapFlatBallList wraps a bare delivery list as a single implicit innings.
func mapFlatBallList(items []any) ballFeed {
	balls := ballMaps(items)
	if len(balls) == 0 {
		return ballFeed{}
	}
	return ballFeed{innings: []feedInnings{{balls: balls}}}
}

func ballMaps(items []any) []map[string]any {
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		if record, ok := item.(map[string]any); ok {
			out = append(out, record)
		}
	}
	return out
}

// lastBall is the final delivery of the final innings in normalized
// order. An empty feed, or a final innings without deliveries, yields
// no ball.
func (f ballFeed) lastBall() (map[string]any, bool) {
	if len(f.innings) == 0 {
		return nil, false
	}
	last := f.innings[len(f.innings)-1]
	if len(last.balls) == 0 {
		return nil, false
	}
	return last.balls[len(last.balls)-1], true
}
