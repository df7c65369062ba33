package repository

import (
	"context"

	"omanvat/internal/model"
	"omanvat/pkg/pagination"

	"gorm.io/gorm"
)

type AuditRepository interface {
	Log(ctx context.Context, entry *model.AuditLog) error
	List(ctx context.Context, entityType string, page, limit int) ([]model.AuditLog, int64, error)
}

type auditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) AuditRepository {
	return &auditRepository{db: db}
}

// Log inserts entry in its own transaction, or behind a savepoint when ctx already carries one,
// so a failed insert never aborts the caller's transaction.
func (r *auditRepository) Log(ctx context.Context, entry *model.AuditLog) error {
	return GetDB(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		return tx.Create(entry).Error
	})
}

func (r *auditRepository) List(ctx context.Context, entityType string, page, limit int) ([]model.AuditLog, int64, error) {
	var logs []model.AuditLog
	var total int64

	db := GetDB(ctx, r.db).Model(&model.AuditLog{})
	if entityType != "" {
		db = db.Where("entity_type = ?", entityType)
	}
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	p := pagination.New(page, limit)
	if err := db.Order("created_at desc").Offset(p.Offset).Limit(p.Limit).Find(&logs).Error; err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}
