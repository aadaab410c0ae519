package llm

import (
	"errors"
	"fmt"
)

// Kind classifies a backend failure for the dispatcher's retry decision.
type Kind int

const (
	// KindTransient covers network errors, 5xx responses and empty replies;
	// the next model in the stack should be tried.
	KindTransient Kind = iota
	// KindRateLimited means the model's quota is exhausted; move on to the
	// next model immediately.
	KindRateLimited
	// KindFatal covers non-retryable client errors such as a revoked key.
	KindFatal
)

// String returns the kind's log label.
func (k Kind) String() string {
	switch k {
	case KindRateLimited:
		return "rate_limited"
	case KindFatal:
		return "fatal"
	default:
		return "transient"
	}
}

// ErrEmptyReply marks a model call that succeeded but produced no text.
// Preserved as retryable, but logged distinctly by callers.
var ErrEmptyReply = errors.New("empty reply from model")

// Error is a classified backend failure.
type Error struct {
	Kind  Kind
	Model string
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("model %s: %s: %v", e.Model, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// IsRateLimited reports whether err is a rate-limit classified failure.
func IsRateLimited(err error) bool {
	var be *Error
	return errors.As(err, &be) && be.Kind == KindRateLimited
}
