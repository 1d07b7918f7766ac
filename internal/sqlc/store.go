package sqlc

import (
	"context"
	"database/sql"
	"fmt"

	"eventfinder/internal/events"
)

// Store pairs the queries with the database so writes spanning several
// statements can run in one transaction.
type Store struct {
	*Queries
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		Queries: New(db),
		db:      db,
	}
}

// ArchiveEvents upserts items synchronously.
func (s *Store) ArchiveEvents(ctx context.Context, items []events.Event) error {
	_, err := s.UpsertEvents(ctx, items)
	return err
}

func (s *Store) SaveClassifications(ctx context.Context, names []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.WithTx(tx).ReplaceClassifications(ctx, names); err != nil {
		return fmt.Errorf("failed to replace classifications: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit classifications: %w", err)
	}
	return nil
}
