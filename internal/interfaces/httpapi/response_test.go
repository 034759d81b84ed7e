package httpapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
)

func TestWriteJSON_BodyAndContentLength(t *testing.T) {
	rec := httptest.NewRecorder()
	writeJSON(context.Background(), rec, http.StatusOK, matchesResponse{Matches: []matchDTO{}})

	body := rec.Body.String()
	if body != `{"matches":[]}` {
		t.Fatalf("unexpected body: %q", body)
	}
	if got := rec.Header().Get("Content-Length"); got != strconv.Itoa(len(body)) {
		t.Fatalf("Content-Length %q does not match body length %d", got, len(body))
	}
	if got := rec.Header().Get("Content-Type"); got != "application/json" {
		t.Fatalf("unexpected content type %q", got)
	}
}

func TestWriteError_StatusMapping(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, errors.New("boom"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 for an unclassified error, got %d", rec.Code)
	}
}
