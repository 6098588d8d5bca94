package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"nodedex/internal/application"
	"nodedex/internal/domain"
)

// UpsertTemplate inserts or refreshes a workflow template keyed by its id.
func (s *Store) UpsertTemplate(t *domain.Template) error {
	return upsertTemplate(s.db, t)
}

func upsertTemplate(e execer, t *domain.Template) error {
	nodesUsed, err := json.Marshal(t.NodesUsed)
	if err != nil {
		return fmt.Errorf("failed to marshal nodes_used for template %d: %w", t.ID, err)
	}
	workflow := t.Workflow
	if len(workflow) == 0 {
		workflow = []byte("{}")
	}

	_, err = e.Exec(`
		INSERT INTO templates (id, name, description, author_name, author_username,
			author_verified, nodes_used, workflow, views, url, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			author_name = excluded.author_name,
			author_username = excluded.author_username,
			author_verified = excluded.author_verified,
			nodes_used = excluded.nodes_used,
			workflow = excluded.workflow,
			views = excluded.views,
			url = excluded.url,
			created_at = excluded.created_at`,
		t.ID, t.Name, t.Description, t.AuthorName, t.AuthorUsername,
		boolInt(t.AuthorVerified), string(nodesUsed), string(workflow),
		t.Views, t.URL, t.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert template %d: %w", t.ID, err)
	}
	return nil
}

// GetTemplate returns a single template by id, workflow payload included.
func (s *Store) GetTemplate(id int64) (*domain.Template, error) {
	row := s.db.QueryRow(`
		SELECT id, name, description, author_name, author_username,
			author_verified, nodes_used, workflow, views, url, created_at
		FROM templates WHERE id = ?`, id)

	t, err := scanTemplate(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("template %d: %w", id, application.ErrTemplateNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get template %d: %w", id, err)
	}
	return t, nil
}

// TemplatesForNode returns the most viewed templates whose node list contains
// the given workflow node type.
func (s *Store) TemplatesForNode(workflowNodeType string, limit int) ([]domain.Template, error) {
	if limit <= 0 {
		limit = 10
	}
	// nodes_used is a JSON array of strings, so the quoted type is a
	// substring of the column exactly when the template uses the node.
	needle := "%" + escapeLike(`"`+workflowNodeType+`"`) + "%"

	rows, err := s.db.Query(`
		SELECT id, name, description, author_name, author_username,
			author_verified, nodes_used, workflow, views, url, created_at
		FROM templates
		WHERE nodes_used LIKE ? ESCAPE '\'
		ORDER BY views DESC, id ASC
		LIMIT ?`, needle, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query templates for %s: %w", workflowNodeType, err)
	}
	defer rows.Close()

	var templates []domain.Template
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan template row: %w", err)
		}
		templates = append(templates, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate template rows: %w", err)
	}
	return templates, nil
}

// workflowGraph is the slice of a stored workflow payload we care about when
// extracting per-node configuration examples.
type workflowGraph struct {
	Nodes []struct {
		Name        string         `json:"name"`
		Type        string         `json:"type"`
		TypeVersion float64        `json:"typeVersion"`
		Parameters  map[string]any `json:"parameters"`
	} `json:"nodes"`
}

// ExamplesForNode extracts real node configurations for the given workflow
// node type from the most viewed templates that use it.
func (s *Store) ExamplesForNode(workflowNodeType string, limit int) ([]domain.ConfigExample, error) {
	if limit <= 0 {
		limit = 3
	}
	templates, err := s.TemplatesForNode(workflowNodeType, limit*2)
	if err != nil {
		return nil, err
	}

	var examples []domain.ConfigExample
	for _, t := range templates {
		var graph workflowGraph
		if err := json.Unmarshal(t.Workflow, &graph); err != nil {
			s.log.Warn().Err(err).Int64("template", t.ID).Msg("skipping template with malformed workflow")
			continue
		}
		for _, n := range graph.Nodes {
			if n.Type != workflowNodeType {
				continue
			}
			examples = append(examples, domain.ConfigExample{
				TemplateID:   t.ID,
				TemplateName: t.Name,
				Views:        t.Views,
				NodeName:     n.Name,
				TypeVersion:  n.TypeVersion,
				Config:       domain.ConfigFromAny(n.Parameters),
			})
			if len(examples) >= limit {
				return examples, nil
			}
		}
	}
	return examples, nil
}

// CountTemplates returns the number of stored templates.
func (s *Store) CountTemplates() (int, error) {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM templates").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count templates: %w", err)
	}
	return count, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanTemplate(sc scanner) (*domain.Template, error) {
	var (
		t            domain.Template
		verified     int
		nodesUsedRaw string
		workflowRaw  string
		createdRaw   string
	)
	err := sc.Scan(&t.ID, &t.Name, &t.Description, &t.AuthorName, &t.AuthorUsername,
		&verified, &nodesUsedRaw, &workflowRaw, &t.Views, &t.URL, &createdRaw)
	if err != nil {
		return nil, err
	}
	t.AuthorVerified = verified != 0
	t.Workflow = []byte(workflowRaw)
	if err := json.Unmarshal([]byte(nodesUsedRaw), &t.NodesUsed); err != nil {
		return nil, fmt.Errorf("failed to unmarshal nodes_used for template %d: %w", t.ID, err)
	}
	if createdRaw != "" {
		if ts, err := time.Parse(time.RFC3339, createdRaw); err == nil {
			t.CreatedAt = ts
		}
	}
	return &t, nil
}
