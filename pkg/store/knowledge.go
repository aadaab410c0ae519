package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/folio-site/folio/pkg/models"
)

// minSubstringQuery guards against noise matches on very short queries.
const minSubstringQuery = 4

// AllKnowledge returns every knowledge entry in storage order.
func (s *SQLiteStore) AllKnowledge(ctx context.Context) ([]models.KnowledgeEntry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT category, info FROM knowledge ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("all knowledge: %w", err)
	}
	defer rows.Close()

	var entries []models.KnowledgeEntry
	for rows.Next() {
		var e models.KnowledgeEntry
		if err := rows.Scan(&e.Category, &e.Info); err != nil {
			return nil, fmt.Errorf("scan knowledge: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// SearchKnowledge returns entries whose category appears in the query, or
// whose info text contains the query when the query is at least
// minSubstringQuery characters. Matching is case-insensitive; results keep
// storage order and are not ranked.
func (s *SQLiteStore) SearchKnowledge(ctx context.Context, query string) ([]models.KnowledgeEntry, error) {
	entries, err := s.AllKnowledge(ctx)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(query)
	var matches []models.KnowledgeEntry
	for _, e := range entries {
		if strings.Contains(q, strings.ToLower(e.Category)) {
			matches = append(matches, e)
			continue
		}
		if len(q) >= minSubstringQuery && strings.Contains(strings.ToLower(e.Info), q) {
			matches = append(matches, e)
		}
	}
	return matches, nil
}

// AddKnowledge inserts a knowledge entry. Used by seeding and tests.
func (s *SQLiteStore) AddKnowledge(ctx context.Context, e models.KnowledgeEntry) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO knowledge (category, info) VALUES (?, ?)`, e.Category, e.Info)
	if err != nil {
		return fmt.Errorf("add knowledge: %w", err)
	}
	return nil
}
