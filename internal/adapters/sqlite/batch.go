package sqlite

import (
	"database/sql"
	"fmt"

	"nodedex/internal/domain"
)

// execer is satisfied by *sql.DB and *sql.Tx so the upsert statements can
// run standalone or inside a batch.
type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

// Batch groups catalog writes into one transaction. Seeding hundreds of
// nodes row-by-row pays a WAL sync per statement; batched it pays one.
type Batch struct {
	tx *sql.Tx
}

// Begin opens a write batch.
func (s *Store) Begin() (*Batch, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin batch: %w", err)
	}
	return &Batch{tx: tx}, nil
}

// UpsertNode stages one node definition in the batch.
func (b *Batch) UpsertNode(def *domain.NodeDefinition) error {
	return upsertNode(b.tx, def)
}

// UpsertTemplate stages one template in the batch.
func (b *Batch) UpsertTemplate(t *domain.Template) error {
	return upsertTemplate(b.tx, t)
}

// DeleteNode removes a node by its internal type.
func (b *Batch) DeleteNode(nodeType string) error {
	_, err := b.tx.Exec("DELETE FROM nodes WHERE node_type = ?", nodeType)
	return err
}

// Commit applies the batch.
func (b *Batch) Commit() error {
	return b.tx.Commit()
}

// Rollback abandons the batch.
func (b *Batch) Rollback() error {
	return b.tx.Rollback()
}
