package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// Gemini is a Provider backed by the Google Gemini API. The client is
// constructed once and read-shared by every dispatch call; it must not be
// mutated after construction.
type Gemini struct {
	client *genai.Client
	log    *zap.Logger
}

// NewGemini creates a Gemini provider.
func NewGemini(ctx context.Context, apiKey string, log *zap.Logger) (*Gemini, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}
	if log == nil {
		log = zap.NewNop()
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &Gemini{client: client, log: log}, nil
}

// ListModels returns the provider's available model names, stripped of the
// "models/" prefix.
func (g *Gemini) ListModels(ctx context.Context) ([]string, error) {
	var names []string
	for model, err := range g.client.Models.All(ctx) {
		if err != nil {
			return nil, &Error{Kind: classify(err), Model: "", Err: err}
		}
		names = append(names, strings.TrimPrefix(model.Name, "models/"))
	}
	return names, nil
}

// Exchange performs one chat exchange against the given model with the prior
// turns replayed as history.
func (g *Gemini) Exchange(ctx context.Context, req ExchangeRequest) (string, error) {
	history := make([]*genai.Content, 0, len(req.History)*2)
	for _, turn := range req.History {
		history = append(history, genai.NewContentFromText(turn.UserQuery, genai.RoleUser))
		history = append(history, genai.NewContentFromText(turn.BotResponse, genai.RoleModel))
	}

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(req.SystemInstruction, genai.RoleUser),
		Temperature:       genai.Ptr(req.Temperature),
	}

	chat, err := g.client.Chats.Create(ctx, req.Model, cfg, history)
	if err != nil {
		return "", &Error{Kind: classify(err), Model: req.Model, Err: err}
	}

	resp, err := chat.SendMessage(ctx, genai.Part{Text: req.UserQuery})
	if err != nil {
		return "", &Error{Kind: classify(err), Model: req.Model, Err: err}
	}

	reply := strings.TrimSpace(resp.Text())
	if reply == "" {
		return "", &Error{Kind: KindTransient, Model: req.Model, Err: ErrEmptyReply}
	}
	return reply, nil
}

// classify maps a raw provider error to a Kind. Structured API errors are
// preferred; the substring checks catch rate limits surfaced through wrapped
// transport errors.
func classify(err error) Kind {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return KindTransient
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == http.StatusTooManyRequests || apiErr.Status == "RESOURCE_EXHAUSTED":
			return KindRateLimited
		case apiErr.Code >= http.StatusInternalServerError:
			return KindTransient
		case apiErr.Code >= http.StatusBadRequest:
			return KindFatal
		}
	}

	msg := err.Error()
	if strings.Contains(msg, "429") || strings.Contains(msg, "RESOURCE_EXHAUSTED") {
		return KindRateLimited
	}
	return KindTransient
}
