package catalog

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"nodedex/internal/adapters/sqlite"
)

const versionKey = "catalog_version"

// SeedResult reports what a catalog load did.
type SeedResult struct {
	Nodes     int
	Templates int
	Skipped   bool
	Duration  time.Duration
}

// Seed loads the embedded catalog into the store inside one batch. A store
// already carrying the current catalog version is left untouched unless
// force is set.
func Seed(s *sqlite.Store, log zerolog.Logger, force bool) (*SeedResult, error) {
	start := time.Now()

	current, err := s.GetMeta(versionKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog version: %w", err)
	}
	if current == Version && !force {
		return &SeedResult{Skipped: true, Duration: time.Since(start)}, nil
	}

	nodes, templates, err := Load()
	if err != nil {
		return nil, err
	}

	batch, err := s.Begin()
	if err != nil {
		return nil, err
	}
	defer batch.Rollback()

	result := &SeedResult{}
	for _, def := range nodes {
		if err := batch.UpsertNode(def); err != nil {
			return nil, err
		}
		result.Nodes++
	}
	for _, t := range templates {
		if err := batch.UpsertTemplate(t); err != nil {
			return nil, err
		}
		result.Templates++
	}
	if err := batch.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit catalog: %w", err)
	}

	if err := s.SetMeta(versionKey, Version); err != nil {
		return nil, fmt.Errorf("failed to record catalog version: %w", err)
	}

	result.Duration = time.Since(start)
	log.Info().
		Int("nodes", result.Nodes).
		Int("templates", result.Templates).
		Str("version", Version).
		Dur("took", result.Duration).
		Msg("catalog seeded")
	return result, nil
}
