package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/willowfeed/matchcentre/internal/platform/logging"
	"github.com/willowfeed/matchcentre/internal/usecase"
)

const missingGradeIDMessage = "Missing gradeId parameter"

type Handler struct {
	matchService        *usecase.MatchService
	clientConfigService *usecase.ClientConfigService
	logger              *logging.Logger
	validator           *validator.Validate
}

func NewHandler(
	matchService *usecase.MatchService,
	clientConfigService *usecase.ClientConfigService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		matchService:        matchService,
		clientConfigService: clientConfigService,
		logger:              logger,
		validator:           validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeJSON(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

type currentMatchesQuery struct {
	GradeID string `validate:"required"`
	TeamID  string
}

func (h *Handler) CurrentMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CurrentMatches")
	defer span.End()

	query := currentMatchesQuery{
		GradeID: strings.TrimSpace(r.URL.Query().Get("gradeId")),
		TeamID:  strings.TrimSpace(r.URL.Query().Get("teamId")),
	}
	if err := h.validator.Struct(query); err != nil {
		writeJSON(ctx, w, http.StatusBadRequest, errorResponse{Error: missingGradeIDMessage})
		return
	}

	matches, err := h.matchService.CurrentMatches(ctx, query.GradeID, query.TeamID)
	if err != nil {
		h.logger.ErrorContext(ctx, "current matches failed", "grade_id", query.GradeID, "team_id", query.TeamID, "error", err)
		writeJSON(ctx, w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	items := make([]matchDTO, 0, len(matches))
	for _, m := range matches {
		items = append(items, matchToDTO(m))
	}

	writeJSON(ctx, w, http.StatusOK, matchesResponse{Matches: items})
}

func (h *Handler) ClientConfig(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ClientConfig")
	defer span.End()

	document, err := h.clientConfigService.Get(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "client config unavailable", "error", err)
		writeError(ctx, w, fmt.Errorf("load client config: %w", err))
		return
	}

	writeJSON(ctx, w, http.StatusOK, document)
}
