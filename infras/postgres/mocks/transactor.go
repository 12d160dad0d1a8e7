package mocks

import (
	"context"

	"stayengine/infras/postgres"

	"github.com/jmoiron/sqlx"
)

type transactorImpl struct {
}

// WithinTx implements postgres.Transactor.
func (t *transactorImpl) WithinTx(_ context.Context, fn func(tx *sqlx.Tx) error) error {
	return fn(nil)
}

// WithinReadTx implements postgres.Transactor.
func (t *transactorImpl) WithinReadTx(_ context.Context, fn func(tx *sqlx.Tx) error) error {
	return fn(nil)
}

// NewTransactor returns a transactor that runs the unit of work without a database.
func NewTransactor() postgres.Transactor {
	return &transactorImpl{}
}
