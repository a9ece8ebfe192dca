package db

import (
	"context"
	"database/sql"
	"fmt"
)

// TxRunner runs fn in one transaction, committing only when fn succeeds
type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx *sql.Tx) error) error
}

type sqlTxRunner struct {
	Db *sql.DB
}

func NewTxRunner(db *sql.DB) TxRunner {
	return sqlTxRunner{Db: db}
}

func (r sqlTxRunner) WithTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.Db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}
