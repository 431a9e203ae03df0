package database

import (
	"context"
	"fmt"
	"log"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS payments (
        id             BIGSERIAL PRIMARY KEY,
        artist_id      BIGINT         NOT NULL,
        amount_paid    NUMERIC(15, 2) NOT NULL CHECK (amount_paid >= 0),
        payment_date   DATE           NOT NULL,
        concept        VARCHAR(100)   NOT NULL,
        payment_method VARCHAR(20)    NOT NULL,
        status         VARCHAR(20)    NOT NULL DEFAULT 'PENDING'
    )`,
	`CREATE INDEX IF NOT EXISTS idx_payments_artist_date ON payments (artist_id, payment_date DESC)`,
}

// Migrate applies the schema. Every statement is idempotent, so it is safe on
// every start.
func (s *DBService) Migrate(ctx context.Context) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	for i, stmt := range migrations {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Printf("Error during migration rollback: %v", rbErr)
			}
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	log.Printf("Database schema is up to date (%d statements applied)", len(migrations))
	return nil
}
