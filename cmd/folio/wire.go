package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/folio-site/folio/pkg/assistant"
	cachepkg "github.com/folio-site/folio/pkg/cache/sqlite"
	"github.com/folio-site/folio/pkg/config"
	"github.com/folio-site/folio/pkg/llm"
	"github.com/folio-site/folio/pkg/registry"
	"github.com/folio-site/folio/pkg/store"
)

// buildAssistant wires the dispatcher and its collaborators from config.
// A missing API key degrades to offline operation rather than failing.
func buildAssistant(ctx context.Context, cfg *config.Config) (*assistant.Assistant, func(), error) {
	st, err := store.New(cfg.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("init store: %w", err)
	}

	var closers []func()
	closers = append(closers, func() { _ = st.Close() })
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	var cache *cachepkg.Cache
	if cfg.Cache.Enabled {
		cache, err = cachepkg.New(cfg.DBPath, cfg.Cache.TTL)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("init cache: %w", err)
		}
		closers = append(closers, func() { _ = cache.Close() })
	}

	var provider llm.Provider
	if cfg.Gemini.APIKey != "" {
		gemini, err := llm.NewGemini(ctx, cfg.Gemini.APIKey, logger)
		if err != nil {
			logger.Warn("gemini client unavailable, running offline", zap.Error(err))
		} else {
			provider = gemini
		}
	} else {
		logger.Warn("no gemini api key configured, running offline")
	}

	reg := registry.New(provider, cfg.Gemini.PreferredModel, cfg.Assistant.FallbackModels,
		cfg.Assistant.ModelStackTTL, logger)

	a, err := assistant.New(cfg, provider, reg, cache, st, logger)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("init assistant: %w", err)
	}

	logStartup(ctx, cfg, provider, reg)
	return a, cleanup, nil
}

// logStartup reports the assistant's operating tier once at boot.
func logStartup(ctx context.Context, cfg *config.Config, provider llm.Provider, reg *registry.Registry) {
	if provider == nil {
		logger.Warn("assistant initialized in offline mode")
		return
	}
	stack := reg.Resolve(ctx)
	logger.Info("assistant initialized",
		zap.String("api_key", maskKey(cfg.Gemini.APIKey)),
		zap.Int("models", len(stack)),
	)
}

// maskKey keeps only a short prefix of the API key for logs.
func maskKey(key string) string {
	if len(key) > 8 {
		return key[:4] + ".."
	}
	return "none"
}
