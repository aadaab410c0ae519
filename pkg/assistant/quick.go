package assistant

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// QuickResponses is the static exact-match question table. Loaded once at
// startup, read-only thereafter.
type QuickResponses map[string]string

// NormalizeQuery canonicalizes a user query for quick-table lookup: trim,
// lower-case, strip question marks and periods.
func NormalizeQuery(q string) string {
	q = strings.ToLower(strings.TrimSpace(q))
	q = strings.ReplaceAll(q, "?", "")
	q = strings.ReplaceAll(q, ".", "")
	return q
}

// LoadQuickResponses reads the YAML question table at path. Keys are
// normalized on load so lookups are exact matches. An empty path yields an
// empty table.
func LoadQuickResponses(path string) (QuickResponses, error) {
	if path == "" {
		return QuickResponses{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return QuickResponses{}, fmt.Errorf("read quick responses: %w", err)
	}

	raw := map[string]string{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return QuickResponses{}, fmt.Errorf("parse quick responses: %w", err)
	}

	table := make(QuickResponses, len(raw))
	for q, a := range raw {
		table[NormalizeQuery(q)] = a
	}
	return table, nil
}

// Lookup returns the canned reply for a query, if one exists.
func (t QuickResponses) Lookup(query string) (string, bool) {
	reply, ok := t[NormalizeQuery(query)]
	return reply, ok
}
