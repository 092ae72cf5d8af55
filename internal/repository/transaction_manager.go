package repository

import (
	"context"
	"fmt"

	"quizoraa/internal/domain"

	"github.com/jmoiron/sqlx"
)

// contextKey is the key type for context values
type contextKey string

const (
	// TransactionContextKey stores the active transaction in the context
	TransactionContextKey contextKey = "tx"
)

// txExecutor adapts *sqlx.Tx to DBTX: sqlx exposes NamedQueryContext for
// transactions only as a package-level function, not as a method on Tx.
type txExecutor struct {
	*sqlx.Tx
}

func (t txExecutor) NamedQueryContext(ctx context.Context, query string, arg interface{}) (*sqlx.Rows, error) {
	return sqlx.NamedQueryContext(ctx, t.Tx, query, arg)
}

// GetExecutor returns the transaction from the context, or the base DB when
// no transaction is active.
func GetExecutor(ctx context.Context, db DBTX) DBTX {
	if tx := ctx.Value(TransactionContextKey); tx != nil {
		if sqlxTx, ok := tx.(*sqlx.Tx); ok {
			return txExecutor{sqlxTx}
		}
	}
	return db
}

// TransactionManagerAdapter implements domain.TransactionManager over sqlx.DB
type TransactionManagerAdapter struct {
	db *sqlx.DB
}

// NewTransactionManagerAdapter creates a new transaction manager adapter
func NewTransactionManagerAdapter(db *sqlx.DB) domain.TransactionManager {
	return &TransactionManagerAdapter{db: db}
}

// WithTransaction runs fn inside a transaction, committing on success and
// rolling back on error or panic.
func (tma *TransactionManagerAdapter) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := tma.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil {
				fmt.Printf("failed to rollback transaction: %v\n", rollbackErr)
			}
			panic(p)
		}
	}()

	txCtx := context.WithValue(ctx, TransactionContextKey, tx)

	if err := fn(txCtx); err != nil {
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			return fmt.Errorf("failed to rollback transaction: %v (original error: %w)", rollbackErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
