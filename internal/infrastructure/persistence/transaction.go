package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/tradekart/backend/internal/domain/shared"
)

type txKey struct{}

// GormTransactionManager implements shared.TransactionManager on top of a
// GORM database. The open transaction travels in the context, so repository
// contracts stay free of gorm types while every read and write inside Do
// shares one transaction.
type GormTransactionManager struct {
	db *gorm.DB
}

var _ shared.TransactionManager = (*GormTransactionManager)(nil)

// NewGormTransactionManager creates a new GormTransactionManager
func NewGormTransactionManager(db *gorm.DB) *GormTransactionManager {
	return &GormTransactionManager{db: db}
}

// Do runs fn inside a transaction. A nested Do joins the transaction already
// carried by the context instead of opening a second one.
func (m *GormTransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if txFrom(ctx) != nil {
		return fn(ctx)
	}
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

func txFrom(ctx context.Context) *gorm.DB {
	tx, _ := ctx.Value(txKey{}).(*gorm.DB)
	return tx
}

// dbFrom returns the transaction bound to ctx, or db when none is open
func dbFrom(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx := txFrom(ctx); tx != nil {
		return tx
	}
	return db.WithContext(ctx)
}
