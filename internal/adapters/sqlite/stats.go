package sqlite

import (
	"fmt"

	"nodedex/internal/domain"
)

// Stats aggregates coverage counters over the stored catalog.
func (s *Store) Stats() (domain.Stats, error) {
	stats := domain.Stats{
		ByPackage:  make(map[string]int),
		ByCategory: make(map[string]int),
		FTSEnabled: s.ftsEnabled,
	}

	err := s.db.QueryRow(`
		SELECT COUNT(*),
			COALESCE(SUM(is_trigger), 0),
			COALESCE(SUM(is_webhook), 0),
			COALESCE(SUM(is_ai_tool), 0),
			COALESCE(SUM(is_versioned), 0)
		FROM nodes`).Scan(
		&stats.TotalNodes, &stats.TriggerNodes, &stats.WebhookNodes,
		&stats.AITools, &stats.VersionedNodes,
	)
	if err != nil {
		return domain.Stats{}, fmt.Errorf("failed to aggregate node counters: %w", err)
	}

	if err := s.countInto(stats.ByPackage, "package_name"); err != nil {
		return domain.Stats{}, err
	}
	if err := s.countInto(stats.ByCategory, "category"); err != nil {
		return domain.Stats{}, err
	}

	templates, err := s.CountTemplates()
	if err != nil {
		return domain.Stats{}, err
	}
	stats.Templates = templates

	return stats, nil
}

// countInto fills dest with per-group node counts. column must be one of the
// indexed grouping columns.
func (s *Store) countInto(dest map[string]int, column string) error {
	rows, err := s.db.Query(fmt.Sprintf(
		"SELECT %s, COUNT(*) FROM nodes WHERE %s != '' GROUP BY %s", column, column, column))
	if err != nil {
		return fmt.Errorf("failed to group nodes by %s: %w", column, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			key   string
			count int
		)
		if err := rows.Scan(&key, &count); err != nil {
			return fmt.Errorf("failed to scan %s group: %w", column, err)
		}
		dest[key] = count
	}
	return rows.Err()
}
