package scorehub

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/willowfeed/matchcentre/internal/domain/match"
	"github.com/willowfeed/matchcentre/internal/platform/logging"
	"github.com/willowfeed/matchcentre/internal/platform/resilience"
)

const (
	defaultBaseURL = "https://api.scorehub.io/v1"

	// Every resource accepts the apiVersion flag except the legacy
	// balls variant, which predates it.
	featureFlagParam = "apiVersion"
	featureFlagValue = "2"

	legacyFormatParam = "format"
	legacyFormatValue = "legacy"

	maxBodyBytes = 6 << 20
)

// Some scorehub routes serve the API payload embedded in a rendered
// page instead of raw JSON, depending on which caching layer answered.
var dtoAssignmentStart = regexp.MustCompile(`window\.Dto\s*=\s*\{`)

var (
	// ErrParse marks a body that is neither JSON nor an embedded
	// window.Dto assignment.
	ErrParse = crerr.New("unparseable scorehub payload")

	errScorehubTransient = crerr.New("scorehub transient failure")
)

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Timeout        time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client fetches grade cricket data from the scorehub API and maps the
// loosely shaped payloads into domain records.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := &http.Client{Timeout: cfg.Timeout}
	if cfg.HTTPClient != nil {
		// Copied so the timeout default never mutates the caller's client.
		clone := *cfg.HTTPClient
		httpClient = &clone
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 10 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

// GradeMatches lists every match of a grade. The upstream answers
// either a bare array or a {"matches": [...]} wrapper.
func (c *Client) GradeMatches(ctx context.Context, gradeID string) ([]match.Match, error) {
	if strings.TrimSpace(gradeID) == "" {
		return nil, fmt.Errorf("grade id is required")
	}

	payload, err := c.fetchJSON(ctx, "/grades/"+url.PathEscape(gradeID)+"/matches", nil, true)
	if err != nil {
		return nil, fmt.Errorf("fetch grade matches grade_id=%s: %w", gradeID, err)
	}

	return mapMatches(unwrapMatchList(payload)), nil
}

// MatchDetail retrieves the scorecard-bearing match record. The
// container shape differs by caching layer, so up to two envelope
// levels are unwrapped: a "matches" list first, then a "match" object.
func (c *Client) MatchDetail(ctx context.Context, matchID string) (*match.Detail, error) {
	if strings.TrimSpace(matchID) == "" {
		return nil, fmt.Errorf("match id is required")
	}

	query := url.Values{}
	query.Set("include", "scorecard")
	payload, err := c.fetchJSON(ctx, "/matches/"+url.PathEscape(matchID), query, true)
	if err != nil {
		return nil, fmt.Errorf("fetch match detail match_id=%s: %w", matchID, err)
	}

	record, ok := unwrapMatchRecord(payload)
	if !ok {
		return nil, crerr.Wrapf(ErrParse, "match detail match_id=%s has no match record", matchID)
	}

	return mapDetail(record), nil
}

// LastBall resolves the most recent delivery of a match. The primary
// ball feed is tried first; when it yields nothing (empty feed or a
// failed fetch) the legacy endpoint variant is tried exactly once.
// A well formed but empty feed is not an error: the ball is simply
// absent, for example before the first delivery of the day.
func (c *Client) LastBall(ctx context.Context, matchID string) (*match.Ball, error) {
	if strings.TrimSpace(matchID) == "" {
		return nil, fmt.Errorf("match id is required")
	}

	ball, primaryErr := c.lastBallFrom(ctx, matchID, ballsPrimary)
	if primaryErr == nil && ball != nil {
		return ball, nil
	}
	if primaryErr != nil {
		c.logger.WarnContext(ctx, "primary ball feed failed, trying legacy variant",
			"match_id", matchID, "error", primaryErr)
	}

	ball, legacyErr := c.lastBallFrom(ctx, matchID, ballsLegacy)
	if legacyErr != nil {
		if primaryErr != nil {
			return nil, fmt.Errorf("fetch ball feed match_id=%s: %w", matchID, legacyErr)
		}
		return nil, fmt.Errorf("fetch legacy ball feed match_id=%s: %w", matchID, legacyErr)
	}

	return ball, nil
}

type ballsVariant int

const (
	ballsPrimary ballsVariant = iota
	ballsLegacy
)

func (c *Client) lastBallFrom(ctx context.Context, matchID string, variant ballsVariant) (*match.Ball, error) {
	path := "/matches/" + url.PathEscape(matchID) + "/balls"

	var payload any
	var err error
	if variant == ballsLegacy {
		query := url.Values{}
		query.Set(legacyFormatParam, legacyFormatValue)
		payload, err = c.fetchJSON(ctx, path, query, false)
	} else {
		payload, err = c.fetchJSON(ctx, path, nil, true)
	}
	if err != nil {
		return nil, err
	}

	feed := normalizeBallFeed(payload)
	raw, ok := feed.lastBall()
	if !ok {
		return nil, nil
	}

	ball := mapBall(raw)
	return &ball, nil
}

// fetchJSON issues one GET and parses the body, reading it exactly
// once. A body that fails straight JSON decoding is searched for an
// embedded window.Dto assignment before giving up with ErrParse.
func (c *Client) fetchJSON(ctx context.Context, path string, query url.Values, withFeatureFlag bool) (any, error) {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "scorehub circuit breaker rejected request", "state", c.breaker.State())
			return nil, fmt.Errorf("scorehub is temporarily unavailable: %w", err)
		}
	}

	values := url.Values{}
	for key, items := range query {
		for _, item := range items {
			values.Add(key, item)
		}
	}
	if withFeatureFlag {
		values.Set(featureFlagParam, featureFlagValue)
	}

	fullURL := c.baseURL + path
	if encoded := values.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	out, err, _ := c.flight.Do(fullURL, func() (any, error) {
		// One execution may serve several coalesced callers, so it must
		// not die with whichever caller's context happens to drive it.
		// The HTTP client timeout still bounds the request.
		raw, reqErr := c.executeRequest(context.WithoutCancel(ctx), fullURL)
		if c.circuitEnabled {
			if reqErr != nil && crerr.Is(reqErr, errScorehubTransient) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return nil, err
	}

	raw, ok := out.([]byte)
	if !ok {
		return nil, fmt.Errorf("unexpected response payload type %T", out)
	}

	return decodeBody(raw)
}

// executeRequest performs a single attempt. Grade and detail fetches
// are deliberately not retried; only the ball feed has a fallback, and
// that is a different endpoint variant, not a retry.
func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, crerr.Wrapf(errScorehubTransient, "send request: %v", err)
	}

	raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	_ = resp.Body.Close()
	if readErr != nil {
		return nil, crerr.Wrapf(errScorehubTransient, "read response body: %v", readErr)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err := fmt.Errorf("scorehub status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
		if isTransientStatus(resp.StatusCode) {
			return nil, crerr.Wrapf(errScorehubTransient, "%v", err)
		}
		return nil, err
	}

	return raw, nil
}

func decodeBody(raw []byte) (any, error) {
	var payload any
	if err := sonic.Unmarshal(raw, &payload); err == nil {
		return payload, nil
	}

	object, ok := extractDtoObject(raw)
	if !ok {
		return nil, crerr.Wrapf(ErrParse, "body is neither JSON nor a Dto page: %s", abbreviateBody(raw))
	}
	if err := sonic.Unmarshal(object, &payload); err != nil {
		return nil, crerr.Wrapf(ErrParse, "embedded Dto assignment does not decode: %v", err)
	}

	return payload, nil
}

// extractDtoObject returns the object literal assigned to window.Dto.
// Brace matching is string aware, so a "};" sequence inside a value
// does not end the capture early.
func extractDtoObject(raw []byte) ([]byte, bool) {
	loc := dtoAssignmentStart.FindIndex(raw)
	if loc == nil {
		return nil, false
	}

	start := loc[1] - 1
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(raw); i++ {
		if inString {
			switch {
			case escaped:
				escaped = false
			case raw[i] == '\\':
				escaped = true
			case raw[i] == '"':
				inString = false
			}
			continue
		}
		switch raw[i] {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return raw[start : i+1], true
			}
		}
	}

	return nil, false
}

func isTransientStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
