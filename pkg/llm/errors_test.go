package llm

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/genai"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"api 429", genai.APIError{Code: 429, Status: "RESOURCE_EXHAUSTED"}, KindRateLimited},
		{"api resource exhausted", genai.APIError{Code: 400, Status: "RESOURCE_EXHAUSTED"}, KindRateLimited},
		{"api 500", genai.APIError{Code: 500, Status: "INTERNAL"}, KindTransient},
		{"api 401", genai.APIError{Code: 401, Status: "UNAUTHENTICATED"}, KindFatal},
		{"api 400", genai.APIError{Code: 400, Status: "INVALID_ARGUMENT"}, KindFatal},
		{"wrapped 429 text", fmt.Errorf("send: %w", errors.New("got HTTP 429 from upstream")), KindRateLimited},
		{"quota text", errors.New("RESOURCE_EXHAUSTED: quota"), KindRateLimited},
		{"plain network error", errors.New("dial tcp: connection refused"), KindTransient},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classify(tt.err))
		})
	}
}

func TestIsRateLimited(t *testing.T) {
	rateErr := &Error{Kind: KindRateLimited, Model: "gemini-2.0-flash", Err: errors.New("quota")}
	assert.True(t, IsRateLimited(rateErr))
	assert.True(t, IsRateLimited(fmt.Errorf("exchange: %w", rateErr)))

	assert.False(t, IsRateLimited(&Error{Kind: KindTransient, Model: "m", Err: errors.New("boom")}))
	assert.False(t, IsRateLimited(errors.New("429"))) // unclassified errors are not rate limits
}

func TestErrorUnwrap(t *testing.T) {
	inner := ErrEmptyReply
	err := &Error{Kind: KindTransient, Model: "gemini-2.0-flash", Err: inner}

	assert.True(t, errors.Is(err, ErrEmptyReply))
	assert.Contains(t, err.Error(), "gemini-2.0-flash")
	assert.Contains(t, err.Error(), "transient")
}
