package repository

import (
	"context"

	"omanvat/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReportRepository interface {
	SetDisabled(ctx context.Context, name string, disabled bool) error
	FindByName(ctx context.Context, name string) (*model.Report, error)
}

type reportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) SetDisabled(ctx context.Context, name string, disabled bool) error {
	report := model.Report{Name: name, Disabled: disabled}
	return GetDB(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"disabled", "updated_at"}),
	}).Create(&report).Error
}

func (r *reportRepository) FindByName(ctx context.Context, name string) (*model.Report, error) {
	var report model.Report
	if err := GetDB(ctx, r.db).First(&report, "name = ?", name).Error; err != nil {
		return nil, err
	}
	return &report, nil
}
