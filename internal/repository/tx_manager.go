package repository

import (
	"context"

	"gorm.io/gorm"
)

type contextKey string

const (
	txKey          contextKey = "gorm_tx"
	afterCommitKey contextKey = "after_commit"
)

// TransactionManager runs a unit of work in one database transaction. Repositories
// pick the transaction up from the context through GetDB.
type TransactionManager interface {
	RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error
	// AfterCommit defers fn until the transaction carried by ctx commits. Outside a
	// transaction fn runs immediately; after a rollback it never runs.
	AfterCommit(ctx context.Context, fn func())
}

type transactionManager struct {
	db *gorm.DB
}

func NewTransactionManager(db *gorm.DB) TransactionManager {
	return &transactionManager{db: db}
}

// RunInTx joins the transaction already carried by ctx, if any, so lifecycle hooks
// nested inside a company write commit or roll back together with it.
func (t *transactionManager) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	if _, ok := ctx.Value(txKey).(*gorm.DB); ok {
		return fn(ctx)
	}

	var hooks []func()
	err := t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txCtx := context.WithValue(context.WithValue(ctx, txKey, tx), afterCommitKey, &hooks)
		return fn(txCtx)
	})
	if err != nil {
		return err
	}

	for _, hook := range hooks {
		hook()
	}
	return nil
}

func (t *transactionManager) AfterCommit(ctx context.Context, fn func()) {
	if hooks, ok := ctx.Value(afterCommitKey).(*[]func()); ok {
		*hooks = append(*hooks, fn)
		return
	}
	fn()
}

// GetDB extracts the transaction DB from context if present, otherwise returns root DB.
func GetDB(ctx context.Context, rootDB *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return rootDB.WithContext(ctx)
}
