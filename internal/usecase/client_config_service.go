package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/willowfeed/matchcentre/internal/platform/cache"
)

// ClientConfigService serves the deployment configuration document the
// frontend bootstraps from. The file named by the override path (set
// via environment) wins; the bundled file ships with the deployment.
// The parsed document is cached because it only changes on redeploy.
type ClientConfigService struct {
	overridePath string
	bundledPath  string
	store        *cache.Store
	logger       *slog.Logger
}

func NewClientConfigService(overridePath, bundledPath string, store *cache.Store, logger *slog.Logger) *ClientConfigService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ClientConfigService{
		overridePath: strings.TrimSpace(overridePath),
		bundledPath:  strings.TrimSpace(bundledPath),
		store:        store,
		logger:       logger,
	}
}

func (s *ClientConfigService) Get(ctx context.Context) (map[string]any, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ClientConfigService.Get")
	defer span.End()

	if s.store == nil {
		return s.load(ctx)
	}

	value, err := s.store.GetOrLoad(ctx, "client-config", func(ctx context.Context) (any, error) {
		return s.load(ctx)
	})
	if err != nil {
		return nil, err
	}

	document, ok := value.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("unexpected cached client config type %T", value)
	}
	return document, nil
}

func (s *ClientConfigService) load(ctx context.Context) (map[string]any, error) {
	if s.overridePath != "" {
		document, err := readConfigDocument(s.overridePath)
		if err == nil {
			return document, nil
		}
		s.logger.WarnContext(ctx, "override client config unreadable, falling back to bundled file",
			"path", s.overridePath, "error", err)
	}

	if s.bundledPath == "" {
		return nil, fmt.Errorf("%w: no client config file available", ErrNotFound)
	}

	document, err := readConfigDocument(s.bundledPath)
	if err != nil {
		return nil, fmt.Errorf("read bundled client config: %w", err)
	}
	return document, nil
}

func readConfigDocument(path string) (map[string]any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var document map[string]any
	if err := sonic.Unmarshal(raw, &document); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return document, nil
}
