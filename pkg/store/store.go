package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/folio-site/folio/pkg/models"
)

// Store is the narrow persistence surface the dispatcher depends on.
type Store interface {
	// LogConversation appends one turn to the conversation log.
	LogConversation(ctx context.Context, sessionID, userQuery, botResponse string) error
	// RecentHistory returns up to limit most recent turns for a session,
	// in chronological (oldest-first) order.
	RecentHistory(ctx context.Context, sessionID string, limit int) ([]models.ConversationTurn, error)
	// SearchKnowledge returns knowledge entries matching the query by
	// category or substring containment.
	SearchKnowledge(ctx context.Context, query string) ([]models.KnowledgeEntry, error)
	// AllKnowledge returns every knowledge entry in storage order.
	AllKnowledge(ctx context.Context) ([]models.KnowledgeEntry, error)
	// AllProjects returns all projects, featured first.
	AllProjects(ctx context.Context) ([]models.Project, error)
	// AllCertifications returns all certifications.
	AllCertifications(ctx context.Context) ([]models.Certification, error)
	// AllPosts returns all posts, newest first.
	AllPosts(ctx context.Context) ([]models.Post, error)
	// UserProfile returns the site owner's profile.
	UserProfile(ctx context.Context) (models.Profile, error)
	// Close releases resources.
	Close() error
}

// SQLiteStore implements Store with a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

const createChatLogTable = `
CREATE TABLE IF NOT EXISTS chat_log (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id TEXT NOT NULL,
	user_query TEXT NOT NULL,
	bot_response TEXT NOT NULL,
	timestamp DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_chat_log_session_time ON chat_log(session_id, timestamp);
`

const createKnowledgeTable = `
CREATE TABLE IF NOT EXISTS knowledge (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	category TEXT NOT NULL,
	info TEXT NOT NULL
);
`

const createPortfolioTables = `
CREATE TABLE IF NOT EXISTS projects (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	featured INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS certifications (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL,
	issuer TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS posts (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL,
	summary TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE IF NOT EXISTS profile (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	name TEXT NOT NULL DEFAULT '',
	email TEXT NOT NULL DEFAULT ''
);
`

// New creates a SQLiteStore and runs auto-migration.
func New(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store db: %w", err)
	}

	for _, ddl := range []string{createChatLogTable, createKnowledgeTable, createPortfolioTables} {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return nil, fmt.Errorf("migrate store db: %w", err)
		}
	}

	return &SQLiteStore{db: db}, nil
}

// Close releases the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
