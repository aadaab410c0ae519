package store

import (
	"context"
	"fmt"
	"time"

	"github.com/folio-site/folio/pkg/models"
)

// LogConversation appends one turn to the conversation log. The log is
// append-only; rows are never updated or deleted from this subsystem.
func (s *SQLiteStore) LogConversation(ctx context.Context, sessionID, userQuery, botResponse string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO chat_log (session_id, user_query, bot_response, timestamp) VALUES (?, ?, ?, ?)`,
		sessionID, userQuery, botResponse, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("log conversation: %w", err)
	}
	return nil
}

// RecentHistory returns up to limit most recent turns for a session, in
// chronological (oldest-first) order, ready to replay into a model call.
func (s *SQLiteStore) RecentHistory(ctx context.Context, sessionID string, limit int) ([]models.ConversationTurn, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT session_id, user_query, bot_response, timestamp
		 FROM chat_log WHERE session_id = ? ORDER BY timestamp DESC, id DESC LIMIT ?`,
		sessionID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("recent history: %w", err)
	}
	defer rows.Close()

	var turns []models.ConversationTurn
	for rows.Next() {
		var t models.ConversationTurn
		if err := rows.Scan(&t.SessionID, &t.UserQuery, &t.BotResponse, &t.Timestamp); err != nil {
			return nil, fmt.Errorf("scan turn: %w", err)
		}
		turns = append(turns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// The query reads newest-first to apply the limit; flip to chronological.
	for i, j := 0, len(turns)-1; i < j; i, j = i+1, j-1 {
		turns[i], turns[j] = turns[j], turns[i]
	}
	return turns, nil
}
