package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

// Transactor runs a unit of work inside a single database transaction.
// The transaction is committed when fn returns nil and rolled back otherwise,
// including when fn panics or ctx is cancelled.
type Transactor interface {
	// WithinTx runs fn in a read-write transaction on the primary.
	WithinTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error
	// WithinReadTx runs fn in a read-only repeatable-read transaction on the primary,
	// so every query in fn observes the same snapshot.
	WithinReadTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error
}

type transactorImpl struct {
	db *Connection
}

func NewTransactor(db *Connection) Transactor {
	return &transactorImpl{db: db}
}

func (t *transactorImpl) WithinTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	return run(ctx, t.db.Write, &sql.TxOptions{Isolation: sql.LevelReadCommitted}, fn)
}

func (t *transactorImpl) WithinReadTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	return run(ctx, t.db.Write, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}, fn)
}

func run(ctx context.Context, db *sqlx.DB, opts *sql.TxOptions, fn func(tx *sqlx.Tx) error) (err error) {
	tx, err := db.BeginTxx(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error().Err(rbErr).Msg("failed to rollback transaction after panic")
			}

			panic(p)
		}

		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				log.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
