package repository

import (
	"context"

	"omanvat/internal/model"

	"gorm.io/gorm"
)

type TaxTemplateRepository interface {
	FindAccount(ctx context.Context, company, accountName string) (*model.Account, error)
	CreateAccount(ctx context.Context, account *model.Account) error
	TaxCategoryExists(ctx context.Context, title string) (bool, error)
	CreateTaxCategory(ctx context.Context, category *model.TaxCategory) error
	TaxesAndChargesTemplateExists(ctx context.Context, kind, name string) (bool, error)
	CreateTaxesAndChargesTemplate(ctx context.Context, template *model.TaxesAndChargesTemplate) error
	ItemTaxTemplateExists(ctx context.Context, name string) (bool, error)
	CreateItemTaxTemplate(ctx context.Context, template *model.ItemTaxTemplate) error
	ListItemTaxTemplates(ctx context.Context, company string) ([]model.ItemTaxTemplate, error)
}

type taxTemplateRepository struct {
	db *gorm.DB
}

func NewTaxTemplateRepository(db *gorm.DB) TaxTemplateRepository {
	return &taxTemplateRepository{db: db}
}

// FindAccount looks an account up by its unqualified name within a company.
func (r *taxTemplateRepository) FindAccount(ctx context.Context, company, accountName string) (*model.Account, error) {
	var account model.Account
	if err := GetDB(ctx, r.db).
		Where("company = ? AND account_name = ?", company, accountName).
		First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *taxTemplateRepository) CreateAccount(ctx context.Context, account *model.Account) error {
	return GetDB(ctx, r.db).Create(account).Error
}

func (r *taxTemplateRepository) TaxCategoryExists(ctx context.Context, title string) (bool, error) {
	var count int64
	if err := GetDB(ctx, r.db).Model(&model.TaxCategory{}).Where("title = ?", title).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *taxTemplateRepository) CreateTaxCategory(ctx context.Context, category *model.TaxCategory) error {
	return GetDB(ctx, r.db).Create(category).Error
}

func (r *taxTemplateRepository) TaxesAndChargesTemplateExists(ctx context.Context, kind, name string) (bool, error) {
	var count int64
	if err := GetDB(ctx, r.db).Model(&model.TaxesAndChargesTemplate{}).
		Where("kind = ? AND name = ?", kind, name).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateTaxesAndChargesTemplate inserts the template with its tax rows.
func (r *taxTemplateRepository) CreateTaxesAndChargesTemplate(ctx context.Context, template *model.TaxesAndChargesTemplate) error {
	return GetDB(ctx, r.db).Create(template).Error
}

func (r *taxTemplateRepository) ItemTaxTemplateExists(ctx context.Context, name string) (bool, error) {
	var count int64
	if err := GetDB(ctx, r.db).Model(&model.ItemTaxTemplate{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *taxTemplateRepository) CreateItemTaxTemplate(ctx context.Context, template *model.ItemTaxTemplate) error {
	return GetDB(ctx, r.db).Create(template).Error
}

func (r *taxTemplateRepository) ListItemTaxTemplates(ctx context.Context, company string) ([]model.ItemTaxTemplate, error) {
	var templates []model.ItemTaxTemplate
	if err := GetDB(ctx, r.db).
		Preload("Taxes", func(db *gorm.DB) *gorm.DB { return db.Order("idx asc") }).
		Where("company = ?", company).
		Order("name asc").
		Find(&templates).Error; err != nil {
		return nil, err
	}
	return templates, nil
}
