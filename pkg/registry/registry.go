// Package registry resolves the ordered stack of usable backend models,
// merging an explicit preferred model, a configured fallback list and the
// provider's discovered model set, with a bounded cache window.
package registry

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/folio-site/folio/pkg/llm"
)

// cheapTierPattern selects low-cost models when nothing configured is
// available upstream.
const cheapTierPattern = "flash"

// maxCheapTierModels caps the pattern-matched fallback selection.
const maxCheapTierModels = 2

// Registry resolves and caches the model stack. The cached stack is replaced
// atomically under the mutex; callers always receive their own copy, so a
// concurrent refresh never mutates a list a dispatch call is iterating.
type Registry struct {
	provider  llm.Provider
	preferred string
	fallbacks []string
	ttl       time.Duration
	log       *zap.Logger

	mu       sync.Mutex
	cached   []string
	cachedAt time.Time
}

// New creates a Registry. provider may be nil, in which case Resolve always
// returns an empty stack.
func New(provider llm.Provider, preferred string, fallbacks []string, ttl time.Duration, log *zap.Logger) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	return &Registry{
		provider:  provider,
		preferred: preferred,
		fallbacks: fallbacks,
		ttl:       ttl,
		log:       log,
	}
}

// Resolve returns the ordered, deduplicated model stack. An empty result is a
// valid outcome meaning no backend model is usable; Resolve never returns an
// error to the caller.
func (r *Registry) Resolve(ctx context.Context) []string {
	if r.provider == nil {
		return nil
	}

	r.mu.Lock()
	if len(r.cached) > 0 && time.Since(r.cachedAt) < r.ttl {
		stack := copyStack(r.cached)
		r.mu.Unlock()
		return stack
	}
	r.mu.Unlock()

	available, err := r.provider.ListModels(ctx)
	if err != nil {
		r.log.Warn("model list fetch failed, using configured stack unfiltered", zap.Error(err))
		return r.degradedStack()
	}

	availableSet := make(map[string]bool, len(available))
	for _, name := range available {
		availableSet[name] = true
	}

	var stack []string
	if r.preferred != "" && availableSet[r.preferred] {
		stack = append(stack, r.preferred)
	}
	for _, name := range r.fallbacks {
		if availableSet[name] && !contains(stack, name) {
			stack = append(stack, name)
		}
	}
	if len(stack) == 0 {
		for _, name := range available {
			if strings.Contains(name, cheapTierPattern) {
				stack = append(stack, name)
				if len(stack) == maxCheapTierModels {
					break
				}
			}
		}
	}

	if len(stack) > 0 {
		r.mu.Lock()
		r.cached = copyStack(stack)
		r.cachedAt = time.Now()
		r.mu.Unlock()
	}
	return stack
}

// degradedStack is the unfiltered preferred+fallback list used when the
// provider cannot be queried. It keeps the system degraded-but-alive and is
// deliberately not cached.
func (r *Registry) degradedStack() []string {
	var stack []string
	if r.preferred != "" {
		stack = append(stack, r.preferred)
	}
	for _, name := range r.fallbacks {
		if !contains(stack, name) {
			stack = append(stack, name)
		}
	}
	return stack
}

func copyStack(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}

func contains(s []string, v string) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}
