package ingestion

import (
	"context"
	"log/slog"

	"github.com/poiesic/homeqa/core"
	"github.com/poiesic/homeqa/corpus"
)

// InjectAllowlisted registers the pages whose titles pass the home buying
// topic filter, in order, and returns how many were registered. Pages that
// fail the filter are skipped. Validation or persistence errors stop the
// injection; pages before the failing one stay registered.
func InjectAllowlisted(ctx context.Context, registry Registry, pages []core.Document) (int, error) {
	if registry == nil {
		return 0, ErrRegistryRequired
	}

	logger := slog.Default().With("component", "allowlist")
	injected, skipped := 0, 0
	for _, page := range pages {
		if !corpus.HomeBuyingTopic(page.Title) {
			skipped++
			logger.Debug("skipping off-topic page", "title", page.Title)
			continue
		}
		if err := registry.RegisterAll(ctx, page); err != nil {
			return injected, err
		}
		injected++
	}

	logger.Info("allowlisted pages injected", "injected", injected, "skipped", skipped)
	return injected, nil
}
