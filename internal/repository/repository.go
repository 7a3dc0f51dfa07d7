package repository

import (
	"context"

	"gorm.io/gorm"
)

type contextKey string

var TxKey contextKey = "tx"

// Scope narrows a query, e.g. to one user's rows.
type Scope func(*gorm.DB) *gorm.DB

// Repository holds the queries shared by every GORM-backed store. Entities
// are keyed by their uuid column.
type Repository[T any] struct {
	DB *gorm.DB
}

func (r *Repository[T]) Create(ctx context.Context, entity *T) error {
	return r.getDb(ctx).Create(entity).Error
}

func (r *Repository[T]) FindByUUID(ctx context.Context, entity *T, uuid string) error {
	return r.getDb(ctx).Where("uuid = ?", uuid).Take(entity).Error
}

func (r *Repository[T]) Count(ctx context.Context, scopes ...Scope) (int64, error) {
	var total int64
	err := r.getDb(ctx).Model(new(T)).Scopes(asGorm(scopes)...).Count(&total).Error
	return total, err
}

// FindPage loads page (1-based) of size rows in the given order.
func (r *Repository[T]) FindPage(ctx context.Context, page, size int, order string, scopes ...Scope) ([]*T, error) {
	var rows []*T
	err := r.getDb(ctx).Scopes(asGorm(scopes)...).
		Order(order).
		Offset((page - 1) * size).
		Limit(size).
		Find(&rows).Error
	return rows, err
}

// getDb returns the transaction stored in ctx, or the base handle.
func (r *Repository[T]) getDb(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(TxKey).(*gorm.DB); ok && tx != nil {
		return tx.WithContext(ctx)
	}
	return r.DB.WithContext(ctx)
}

func asGorm(scopes []Scope) []func(*gorm.DB) *gorm.DB {
	out := make([]func(*gorm.DB) *gorm.DB, len(scopes))
	for i, s := range scopes {
		out[i] = s
	}
	return out
}
