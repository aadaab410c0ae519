package registry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/folio-site/folio/pkg/llm"
)

// fakeProvider lists a fixed model set and counts calls.
type fakeProvider struct {
	available []string
	listErr   error
	listCalls int
}

func (f *fakeProvider) ListModels(ctx context.Context) ([]string, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.available, nil
}

func (f *fakeProvider) Exchange(ctx context.Context, req llm.ExchangeRequest) (string, error) {
	return "", errors.New("not used")
}

func TestResolvePreferredAndFallbacks(t *testing.T) {
	p := &fakeProvider{available: []string{"gemini-2.5-pro", "gemini-2.0-flash", "gemini-2.0-flash-lite"}}
	r := New(p, "gemini-2.5-pro", []string{"gemini-2.0-flash", "gemini-ancient"}, time.Hour, nil)

	stack := r.Resolve(context.Background())
	assert.Equal(t, []string{"gemini-2.5-pro", "gemini-2.0-flash"}, stack,
		"preferred first, then available fallbacks, unavailable names dropped")
}

func TestResolvePreferredNotAvailable(t *testing.T) {
	p := &fakeProvider{available: []string{"gemini-2.0-flash"}}
	r := New(p, "gemini-9000", []string{"gemini-2.0-flash"}, time.Hour, nil)

	stack := r.Resolve(context.Background())
	assert.Equal(t, []string{"gemini-2.0-flash"}, stack)
}

func TestResolveDeduplicates(t *testing.T) {
	p := &fakeProvider{available: []string{"gemini-2.0-flash"}}
	r := New(p, "gemini-2.0-flash", []string{"gemini-2.0-flash"}, time.Hour, nil)

	stack := r.Resolve(context.Background())
	assert.Equal(t, []string{"gemini-2.0-flash"}, stack)
}

func TestResolveCheapTierFallback(t *testing.T) {
	p := &fakeProvider{available: []string{
		"gemini-2.5-pro", "gemini-2.0-flash", "gemini-2.0-flash-lite", "gemini-1.5-flash"}}
	r := New(p, "", []string{"unavailable-model"}, time.Hour, nil)

	stack := r.Resolve(context.Background())
	assert.Equal(t, []string{"gemini-2.0-flash", "gemini-2.0-flash-lite"}, stack,
		"at most two cheap-tier models selected in listing order")
}

func TestResolveCachesWithinTTL(t *testing.T) {
	p := &fakeProvider{available: []string{"gemini-2.0-flash"}}
	r := New(p, "", []string{"gemini-2.0-flash"}, time.Hour, nil)

	first := r.Resolve(context.Background())
	second := r.Resolve(context.Background())

	assert.Equal(t, first, second)
	assert.Equal(t, 1, p.listCalls, "second resolve must be served from cache")
}

func TestResolveRefreshesAfterTTL(t *testing.T) {
	p := &fakeProvider{available: []string{"gemini-2.0-flash"}}
	r := New(p, "", []string{"gemini-2.0-flash"}, time.Nanosecond, nil)

	r.Resolve(context.Background())
	time.Sleep(time.Millisecond)
	r.Resolve(context.Background())

	assert.Equal(t, 2, p.listCalls)
}

func TestResolveReturnsCopy(t *testing.T) {
	p := &fakeProvider{available: []string{"gemini-2.0-flash", "gemini-2.0-flash-lite"}}
	r := New(p, "", []string{"gemini-2.0-flash", "gemini-2.0-flash-lite"}, time.Hour, nil)

	first := r.Resolve(context.Background())
	first[0] = "mutated"

	second := r.Resolve(context.Background())
	assert.Equal(t, "gemini-2.0-flash", second[0], "caller mutation must not reach the cached stack")
}

func TestResolveDegradedOnListFailure(t *testing.T) {
	p := &fakeProvider{listErr: errors.New("api down")}
	r := New(p, "gemini-2.5-pro", []string{"gemini-2.0-flash", "gemini-2.5-pro"}, time.Hour, nil)

	stack := r.Resolve(context.Background())
	assert.Equal(t, []string{"gemini-2.5-pro", "gemini-2.0-flash"}, stack,
		"degraded stack is preferred plus fallbacks, unfiltered and deduplicated")

	// Degraded results are not cached; the provider is queried again.
	r.Resolve(context.Background())
	assert.Equal(t, 2, p.listCalls)
}

func TestResolveNilProvider(t *testing.T) {
	r := New(nil, "gemini-2.5-pro", []string{"gemini-2.0-flash"}, time.Hour, nil)
	assert.Empty(t, r.Resolve(context.Background()))
}

func TestResolveEmptyOutcome(t *testing.T) {
	p := &fakeProvider{available: []string{"imagen-3"}}
	r := New(p, "", nil, time.Hour, nil)

	assert.Empty(t, r.Resolve(context.Background()),
		"no preferred, no fallbacks, no cheap tier means empty stack")
}
