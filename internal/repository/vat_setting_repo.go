package repository

import (
	"context"

	"omanvat/internal/model"

	"gorm.io/gorm"
)

type VATSettingRepository interface {
	Exists(ctx context.Context, company string) (bool, error)
	Create(ctx context.Context, setting *model.OmanVATSetting) error
	FindByCompany(ctx context.Context, company string) (*model.OmanVATSetting, error)
	Delete(ctx context.Context, company string) error
}

type vatSettingRepository struct {
	db *gorm.DB
}

func NewVATSettingRepository(db *gorm.DB) VATSettingRepository {
	return &vatSettingRepository{db: db}
}

func (r *vatSettingRepository) Exists(ctx context.Context, company string) (bool, error) {
	var count int64
	if err := GetDB(ctx, r.db).Model(&model.OmanVATSetting{}).Where("company = ?", company).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create inserts the setting and its account rows. A second setting for the same company
// fails on the primary key with gorm.ErrDuplicatedKey.
func (r *vatSettingRepository) Create(ctx context.Context, setting *model.OmanVATSetting) error {
	return GetDB(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(setting).Error; err != nil {
			return err
		}
		rows := setting.Rows()
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
}

func (r *vatSettingRepository) FindByCompany(ctx context.Context, company string) (*model.OmanVATSetting, error) {
	db := GetDB(ctx, r.db)

	var setting model.OmanVATSetting
	if err := db.First(&setting, "company = ?", company).Error; err != nil {
		return nil, err
	}

	var rows []model.OmanVATAccount
	if err := db.Where("parent = ?", company).Order("parent_field desc, idx asc").Find(&rows).Error; err != nil {
		return nil, err
	}
	setting.SetRows(rows)

	return &setting, nil
}

// Delete removes the setting and its rows permanently. Deleting a missing setting is not an error.
func (r *vatSettingRepository) Delete(ctx context.Context, company string) error {
	return GetDB(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("parent = ?", company).Delete(&model.OmanVATAccount{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Where("company = ?", company).Delete(&model.OmanVATSetting{}).Error
	})
}
