package usecase

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/willowfeed/matchcentre/internal/platform/cache"
)

func writeTempConfig(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	return path
}

func TestClientConfig_OverrideWins(t *testing.T) {
	override := writeTempConfig(t, "override.json", `{"apiBase":"https://override.example.com"}`)
	bundled := writeTempConfig(t, "bundled.json", `{"apiBase":"https://bundled.example.com"}`)

	svc := NewClientConfigService(override, bundled, nil, nil)
	document, err := svc.Get(context.Background())
	if err != nil {
		t.Fatalf("get client config: %v", err)
	}
	if document["apiBase"] != "https://override.example.com" {
		t.Fatalf("expected the override document, got %v", document)
	}
}

func TestClientConfig_FallsBackToBundled(t *testing.T) {
	bundled := writeTempConfig(t, "bundled.json", `{"apiBase":"https://bundled.example.com"}`)

	svc := NewClientConfigService("/nonexistent/override.json", bundled, nil, nil)
	document, err := svc.Get(context.Background())
	if err != nil {
		t.Fatalf("get client config: %v", err)
	}
	if document["apiBase"] != "https://bundled.example.com" {
		t.Fatalf("expected the bundled document, got %v", document)
	}
}

func TestClientConfig_NotFoundWithoutAnyFile(t *testing.T) {
	svc := NewClientConfigService("", "", nil, nil)

	if _, err := svc.Get(context.Background()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestClientConfig_CachedAcrossCalls(t *testing.T) {
	bundled := writeTempConfig(t, "bundled.json", `{"feature":"on"}`)
	svc := NewClientConfigService("", bundled, cache.NewStore(time.Minute), nil)

	first, err := svc.Get(context.Background())
	if err != nil {
		t.Fatalf("get client config: %v", err)
	}

	// Rewrite the file; the cached document must still be served.
	if err := os.WriteFile(bundled, []byte(`{"feature":"off"}`), 0o600); err != nil {
		t.Fatalf("rewrite bundled config: %v", err)
	}

	second, err := svc.Get(context.Background())
	if err != nil {
		t.Fatalf("get client config again: %v", err)
	}
	if first["feature"] != "on" || second["feature"] != "on" {
		t.Fatalf("expected the cached document, got %v then %v", first, second)
	}
}
