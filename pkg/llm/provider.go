// Package llm defines the backend-provider boundary: a narrow interface for
// listing models and performing single exchanges, plus a typed error
// classification set where raw provider errors are interpreted.
package llm

import (
	"context"

	"github.com/folio-site/folio/pkg/models"
)

// ExchangeRequest describes one request/response exchange against a backend
// model, including prior turns replayed as context.
type ExchangeRequest struct {
	Model             string
	SystemInstruction string
	Temperature       float32
	History           []models.ConversationTurn
	UserQuery         string
}

// Provider is a backend capable of producing text replies. Implementations
// classify their raw errors into *Error at this boundary.
type Provider interface {
	// ListModels returns the provider's currently available model names.
	ListModels(ctx context.Context) ([]string, error)
	// Exchange performs one request/response exchange and returns the
	// trimmed reply text. An empty reply is reported as an *Error wrapping
	// ErrEmptyReply, never as ("", nil).
	Exchange(ctx context.Context, req ExchangeRequest) (string, error)
}
