package repository

import (
	"context"

	"github.com/Harsh28r/DeltaFrontend-sub002/internal/model"

	"gorm.io/gorm"
)

type PermissionAuditRepository struct {
	Repository[model.PermissionAudit]
}

func NewPermissionAuditRepository(db *gorm.DB) *PermissionAuditRepository {
	return &PermissionAuditRepository{
		Repository: Repository[model.PermissionAudit]{db},
	}
}

// FindByUserID returns one page of a user's audit rows, newest first, and
// the total row count for that user.
func (r *PermissionAuditRepository) FindByUserID(ctx context.Context, userID string, page, size int) ([]*model.PermissionAudit, int64, error) {
	total, err := r.Count(ctx, byUser(userID))
	if err != nil {
		return nil, 0, err
	}

	audits, err := r.FindPage(ctx, page, size, "created_at DESC", byUser(userID))
	if err != nil {
		return nil, 0, err
	}

	return audits, total, nil
}

func byUser(userID string) Scope {
	return func(tx *gorm.DB) *gorm.DB {
		return tx.Where("user_id = ?", userID)
	}
}
