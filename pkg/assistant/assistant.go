// Package assistant implements the conversational response dispatcher: caches
// first, then the ranked model stack, then knowledge search, then a static
// offline reply. A dispatch call never fails; it always returns a reply and
// the mode tag of the tier that produced it.
package assistant

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	cachepkg "github.com/folio-site/folio/pkg/cache/sqlite"
	"github.com/folio-site/folio/pkg/config"
	"github.com/folio-site/folio/pkg/llm"
	"github.com/folio-site/folio/pkg/models"
	"github.com/folio-site/folio/pkg/registry"
	"github.com/folio-site/folio/pkg/store"
)

// defaultTemperature is fixed for all model exchanges.
const defaultTemperature float32 = 0.7

// Assistant is the conversation dispatcher. All collaborators are injected;
// the Assistant owns none of their storage.
type Assistant struct {
	cfg      config.AssistantConfig
	provider llm.Provider
	registry *registry.Registry
	cache    *cachepkg.Cache
	store    store.Store
	builder  *ContextBuilder
	quick    QuickResponses
	timeout  time.Duration
	log      *zap.Logger

	// sleep is the inter-model backoff, replaceable in tests.
	sleep func(time.Duration)
}

// New creates an Assistant. cache and provider may be nil; a nil provider
// means every call resolves through the fallback chain.
func New(cfg *config.Config, provider llm.Provider, reg *registry.Registry, cache *cachepkg.Cache, st store.Store, log *zap.Logger) (*Assistant, error) {
	if log == nil {
		log = zap.NewNop()
	}

	quick, err := LoadQuickResponses(cfg.Assistant.QuickResponsesPath)
	if err != nil {
		// A broken quick table degrades to an empty one; it must never
		// block startup.
		log.Warn("quick responses unavailable", zap.Error(err))
		quick = QuickResponses{}
	}

	timeout := cfg.Gemini.CallTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Assistant{
		cfg:      cfg.Assistant,
		provider: provider,
		registry: reg,
		cache:    cache,
		store:    st,
		builder:  NewContextBuilder(st, cfg.Assistant.SystemInstruction, cfg.Contact.Email, log),
		quick:    quick,
		timeout:  timeout,
		log:      log,
		sleep:    time.Sleep,
	}, nil
}

// Respond produces a reply for a user query, trying each tier in priority
// order. It always returns a reply and a mode tag, never an error.
func (a *Assistant) Respond(ctx context.Context, sessionID, userQuery string) (string, models.Mode) {
	return a.respond(ctx, sessionID, userQuery, false)
}

func (a *Assistant) respond(ctx context.Context, sessionID, userQuery string, silent bool) (string, models.Mode) {
	log := a.log
	if silent {
		log = zap.NewNop()
	}

	// Tier 1: static quick table.
	if reply, ok := a.quick.Lookup(userQuery); ok {
		log.Info("serving via quick response")
		a.logTurn(ctx, sessionID, userQuery, reply)
		return reply, models.ModeCached
	}

	// Tier 2: durable response cache, keyed by the full rendered prompt.
	instruction := a.builder.Build(ctx)
	key := cachepkg.HashPrompt(instruction, userQuery)
	if a.cache != nil {
		if reply, ok := a.cache.Get(key); ok {
			log.Info("serving via response cache")
			a.logTurn(ctx, sessionID, userQuery, reply)
			return reply, models.ModeCached
		}
	}

	// Tier 3: the model stack. An empty stack means no backend is usable.
	stack := a.registry.Resolve(ctx)
	if len(stack) == 0 {
		return a.fallbackSearch(ctx, userQuery, log)
	}

	history := a.loadHistory(ctx, sessionID)

	for i, model := range stack {
		reply, err := a.exchange(ctx, model, instruction, history, userQuery)
		if err == nil {
			if a.cache != nil {
				if putErr := a.cache.Put(key, reply); putErr != nil {
					a.log.Warn("response cache write failed", zap.Error(putErr))
				}
			}
			a.logTurn(ctx, sessionID, userQuery, reply)
			log.Info("reply generated", zap.String("model", model))
			return reply, models.ModeOnline
		}

		// Failures are always logged; silent suppresses only informational output.
		switch {
		case errors.Is(err, llm.ErrEmptyReply):
			a.log.Warn("model returned empty reply", zap.String("model", model))
		case llm.IsRateLimited(err):
			a.log.Warn("model rate limited, switching to next", zap.String("model", model))
		default:
			a.log.Warn("model call failed", zap.String("model", model), zap.Error(err))
		}

		if i == len(stack)-1 {
			a.log.Error("all models exhausted, falling back to knowledge search")
			break
		}
		a.sleep(a.cfg.RetryBackoff)
	}

	return a.fallbackSearch(ctx, userQuery, log)
}

// exchange performs one bounded backend call.
func (a *Assistant) exchange(ctx context.Context, model, instruction string, history []models.ConversationTurn, userQuery string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	return a.provider.Exchange(callCtx, llm.ExchangeRequest{
		Model:             model,
		SystemInstruction: instruction,
		Temperature:       defaultTemperature,
		History:           history,
		UserQuery:         userQuery,
	})
}

// loadHistory reads prior turns for the session. A read failure degrades to
// an empty history rather than blocking the call.
func (a *Assistant) loadHistory(ctx context.Context, sessionID string) []models.ConversationTurn {
	history, err := a.store.RecentHistory(ctx, sessionID, a.cfg.HistoryLimit)
	if err != nil {
		a.log.Warn("history read failed", zap.Error(err))
		return nil
	}
	return history
}

// fallbackSearch is the last resort before the offline reply: a keyword
// search over the knowledge store, joined into a bulleted list.
func (a *Assistant) fallbackSearch(ctx context.Context, userQuery string, log *zap.Logger) (string, models.Mode) {
	matches, err := a.store.SearchKnowledge(ctx, userQuery)
	if err != nil {
		a.log.Error("knowledge search failed", zap.Error(err))
		return a.offlineMessage(), models.ModeOffline
	}
	if len(matches) == 0 {
		return a.offlineMessage(), models.ModeOffline
	}

	lines := make([]string, 0, len(matches))
	for _, m := range matches {
		lines = append(lines, "• "+m.Info)
	}
	log.Info("serving via knowledge search", zap.Int("matches", len(matches)))
	return strings.Join(lines, "\n"), models.ModeDatabase
}

func (a *Assistant) offlineMessage() string {
	if a.cfg.OfflineMessage != "" {
		return a.cfg.OfflineMessage
	}
	return "I am currently offline."
}

// logTurn appends to the conversation log. Write failures are logged and
// swallowed; they never block the reply path.
func (a *Assistant) logTurn(ctx context.Context, sessionID, userQuery, botResponse string) {
	if err := a.store.LogConversation(ctx, sessionID, userQuery, botResponse); err != nil {
		a.log.Warn("conversation log write failed", zap.Error(err))
	}
}
