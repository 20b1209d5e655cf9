package usecase

import (
	"context"
	"fmt"

	"parking-booking/pkg/database"

	"github.com/jackc/pgx/v5"
)

// runInTx wraps fn in a single transaction: commit when fn succeeds,
// rollback otherwise. Every multi-row mutation in this package goes through
// here so spot status and booking rows can never diverge.
func runInTx(ctx context.Context, db database.PgxIface, fn func(tx pgx.Tx) error) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}
