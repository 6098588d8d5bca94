package sqlite

import (
	"fmt"
	"strings"

	"nodedex/internal/domain"
)

// FTSAvailable reports whether the full-text index was created on open.
func (s *Store) FTSAvailable() bool { return s.ftsEnabled }

// SearchFTS runs a MATCH query, best index rank first.
func (s *Store) SearchFTS(match string, limit int) ([]domain.NodeSummary, error) {
	rows, err := s.db.Query(`
		SELECT n.node_type, n.package_name, n.display_name, n.description, n.category,
		       n.version, n.is_trigger, n.is_ai_tool, n.community
		FROM nodes_fts f
		JOIN nodes n ON n.rowid = f.rowid
		WHERE nodes_fts MATCH ?
		ORDER BY rank
		LIMIT ?
	`, match, limit)
	if err != nil {
		return nil, fmt.Errorf("full-text search failed: %w", err)
	}
	defer rows.Close()
	return scanSummaries(rows)
}

// SearchLike matches the pattern as a case-insensitive substring of node
// type, display name or description.
func (s *Store) SearchLike(pattern string, limit int) ([]domain.NodeSummary, error) {
	p := "%" + escapeLike(pattern) + "%"
	rows, err := s.db.Query(summarySelect+`
		FROM nodes
		WHERE node_type LIKE ? ESCAPE '\'
		   OR display_name LIKE ? ESCAPE '\'
		   OR description LIKE ? ESCAPE '\'
		ORDER BY display_name
		LIMIT ?
	`, p, p, p, limit)
	if err != nil {
		return nil, fmt.Errorf("substring search failed: %w", err)
	}
	defer rows.Close()
	return scanSummaries(rows)
}

// AllNodes returns every summary, ordered by display name.
func (s *Store) AllNodes() ([]domain.NodeSummary, error) {
	rows, err := s.db.Query(summarySelect + " FROM nodes ORDER BY display_name")
	if err != nil {
		return nil, fmt.Errorf("failed to load nodes: %w", err)
	}
	defer rows.Close()
	return scanSummaries(rows)
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
