package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"nodedex/internal/application"
	"nodedex/internal/domain"
	"nodedex/internal/ports"
)

// UpsertNode stores one definition, replacing any previous version.
func (s *Store) UpsertNode(def *domain.NodeDefinition) error {
	return upsertNode(s.db, def)
}

// upsertNode runs against either the connection or an open batch. The
// explicit upsert keeps the full-text sync triggers firing; INSERT OR
// REPLACE would delete-and-insert without running them.
func upsertNode(e execer, def *domain.NodeDefinition) error {
	props, err := json.Marshal(def.Properties)
	if err != nil {
		return fmt.Errorf("failed to encode properties for %s: %w", def.NodeType, err)
	}
	ops, err := json.Marshal(def.Operations)
	if err != nil {
		return fmt.Errorf("failed to encode operations for %s: %w", def.NodeType, err)
	}
	creds, err := json.Marshal(def.Credentials)
	if err != nil {
		return fmt.Errorf("failed to encode credentials for %s: %w", def.NodeType, err)
	}
	var community any
	if def.Community != nil {
		raw, err := json.Marshal(def.Community)
		if err != nil {
			return fmt.Errorf("failed to encode community info for %s: %w", def.NodeType, err)
		}
		community = string(raw)
	}

	_, err = e.Exec(`
		INSERT INTO nodes (
			node_type, package_name, display_name, description, category,
			version, is_versioned, is_trigger, is_webhook, is_ai_tool,
			properties, operations, credentials, documentation, community
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(node_type) DO UPDATE SET
			package_name = excluded.package_name,
			display_name = excluded.display_name,
			description = excluded.description,
			category = excluded.category,
			version = excluded.version,
			is_versioned = excluded.is_versioned,
			is_trigger = excluded.is_trigger,
			is_webhook = excluded.is_webhook,
			is_ai_tool = excluded.is_ai_tool,
			properties = excluded.properties,
			operations = excluded.operations,
			credentials = excluded.credentials,
			documentation = excluded.documentation,
			community = excluded.community
	`,
		def.NodeType, def.PackageName, def.DisplayName, def.Description, def.Category,
		def.Version, boolInt(def.IsVersioned), boolInt(def.IsTrigger), boolInt(def.IsWebhook), boolInt(def.IsAITool),
		string(props), string(ops), string(creds), def.Documentation, community,
	)
	if err != nil {
		return fmt.Errorf("failed to store node %s: %w", def.NodeType, err)
	}
	return nil
}

// GetNode retrieves a definition by exact internal node type.
func (s *Store) GetNode(nodeType string) (*domain.NodeDefinition, error) {
	var (
		def       domain.NodeDefinition
		props     string
		ops       string
		creds     string
		community sql.NullString
	)
	err := s.db.QueryRow(`
		SELECT node_type, package_name, display_name, description, category,
		       version, is_versioned, is_trigger, is_webhook, is_ai_tool,
		       properties, operations, credentials, documentation, community
		FROM nodes WHERE node_type = ?
	`, nodeType).Scan(
		&def.NodeType, &def.PackageName, &def.DisplayName, &def.Description, &def.Category,
		&def.Version, &def.IsVersioned, &def.IsTrigger, &def.IsWebhook, &def.IsAITool,
		&props, &ops, &creds, &def.Documentation, &community,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%s: %w", nodeType, application.ErrNodeNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load node %s: %w", nodeType, err)
	}

	if err := json.Unmarshal([]byte(props), &def.Properties); err != nil {
		return nil, fmt.Errorf("failed to decode properties of %s: %w", nodeType, err)
	}
	if err := json.Unmarshal([]byte(ops), &def.Operations); err != nil {
		return nil, fmt.Errorf("failed to decode operations of %s: %w", nodeType, err)
	}
	if err := json.Unmarshal([]byte(creds), &def.Credentials); err != nil {
		return nil, fmt.Errorf("failed to decode credentials of %s: %w", nodeType, err)
	}
	if community.Valid && community.String != "" {
		def.Community = &domain.CommunityInfo{}
		if err := json.Unmarshal([]byte(community.String), def.Community); err != nil {
			return nil, fmt.Errorf("failed to decode community info of %s: %w", nodeType, err)
		}
	}
	return &def, nil
}

// ListNodes returns summaries matching the filter, ordered by display name.
func (s *Store) ListNodes(filter ports.NodeFilter) ([]domain.NodeSummary, error) {
	query := summarySelect + " FROM nodes"
	var conds []string
	var args []any
	if filter.Package != "" {
		conds = append(conds, "package_name = ?")
		args = append(args, filter.Package)
	}
	if filter.Category != "" {
		conds = append(conds, "category = ?")
		args = append(args, filter.Category)
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY display_name"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list nodes: %w", err)
	}
	defer rows.Close()
	return scanSummaries(rows)
}

// CountNodes returns the number of stored definitions.
func (s *Store) CountNodes() (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM nodes").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count nodes: %w", err)
	}
	return n, nil
}

const summarySelect = `SELECT node_type, package_name, display_name, description, category,
	version, is_trigger, is_ai_tool, community`

func scanSummaries(rows *sql.Rows) ([]domain.NodeSummary, error) {
	var out []domain.NodeSummary
	for rows.Next() {
		var (
			n         domain.NodeSummary
			community sql.NullString
		)
		if err := rows.Scan(
			&n.NodeType, &n.PackageName, &n.DisplayName, &n.Description, &n.Category,
			&n.Version, &n.IsTrigger, &n.IsAITool, &community,
		); err != nil {
			return nil, fmt.Errorf("failed to scan node row: %w", err)
		}
		if community.Valid && community.String != "" {
			n.Community = &domain.CommunityInfo{}
			if err := json.Unmarshal([]byte(community.String), n.Community); err != nil {
				return nil, fmt.Errorf("failed to decode community info of %s: %w", n.NodeType, err)
			}
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
