package repository

import (
	"context"

	"gorm.io/gorm"
)

// UnitOfWork encapsulates transaction boundaries and exposes repositories
// bound to the active transaction.
type UnitOfWork struct {
	db *gorm.DB
}

func NewUnitOfWork(db *gorm.DB) *UnitOfWork {
	return &UnitOfWork{db: db}
}

// Do runs fn within a transaction. The transaction is injected into the
// context so repositories pick it up via getDb, and it commits or rolls
// back based on fn's result.
func (u *UnitOfWork) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, TxKey, tx))
	})
}
