package repository

import (
	"context"

	"omanvat/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CustomFieldRepository interface {
	Upsert(ctx context.Context, field *model.CustomField) error
	ListByDocType(ctx context.Context, docType string) ([]model.CustomField, error)
}

type customFieldRepository struct {
	db *gorm.DB
}

func NewCustomFieldRepository(db *gorm.DB) CustomFieldRepository {
	return &customFieldRepository{db: db}
}

// Upsert creates the field or updates every attribute of the existing (dt, fieldname) pair.
func (r *customFieldRepository) Upsert(ctx context.Context, field *model.CustomField) error {
	return GetDB(ctx, r.db).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "dt"}, {Name: "fieldname"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"label", "fieldtype", "fetch_from", "insert_after",
			"print_hide", "read_only", "no_copy", "hidden", "updated_at",
		}),
	}).Create(field).Error
}

func (r *customFieldRepository) ListByDocType(ctx context.Context, docType string) ([]model.CustomField, error) {
	var fields []model.CustomField
	query := GetDB(ctx, r.db).Order("dt asc, fieldname asc")
	if docType != "" {
		query = query.Where("dt = ?", docType)
	}
	if err := query.Find(&fields).Error; err != nil {
		return nil, err
	}
	return fields, nil
}
