package models

import "time"

// Mode identifies which tier of the dispatch chain produced a reply.
type Mode string

const (
	// ModeCached means the reply came from the quick table or the response cache.
	ModeCached Mode = "cached_mode"
	// ModeOnline means a backend model produced the reply.
	ModeOnline Mode = "online"
	// ModeDatabase means the reply was assembled from knowledge search results.
	ModeDatabase Mode = "database_mode"
	// ModeOffline means no tier produced a reply.
	ModeOffline Mode = "offline"
)

// ConversationTurn is a single persisted exchange in a chat session.
type ConversationTurn struct {
	SessionID   string    `json:"session_id"`
	UserQuery   string    `json:"user_query"`
	BotResponse string    `json:"bot_response"`
	Timestamp   time.Time `json:"timestamp"`
}

// KnowledgeEntry is a categorized fact from the knowledge store.
type KnowledgeEntry struct {
	Category string `json:"category"`
	Info     string `json:"info"`
}
