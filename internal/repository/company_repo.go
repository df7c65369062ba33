package repository

import (
	"context"

	"omanvat/internal/model"
	"omanvat/pkg/pagination"

	"gorm.io/gorm"
)

type CompanyRepository interface {
	Create(ctx context.Context, company *model.Company) error
	Update(ctx context.Context, company *model.Company) error
	Delete(ctx context.Context, name string) error
	FindByName(ctx context.Context, name string) (*model.Company, error)
	List(ctx context.Context, page, limit int) ([]model.Company, int64, error)
}

type companyRepository struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) CompanyRepository {
	return &companyRepository{db: db}
}

func (r *companyRepository) Create(ctx context.Context, company *model.Company) error {
	return GetDB(ctx, r.db).Create(company).Error
}

func (r *companyRepository) Update(ctx context.Context, company *model.Company) error {
	return GetDB(ctx, r.db).Save(company).Error
}

func (r *companyRepository) Delete(ctx context.Context, name string) error {
	return GetDB(ctx, r.db).Where("name = ?", name).Delete(&model.Company{}).Error
}

// FindByName returns gorm.ErrRecordNotFound when the company does not exist.
func (r *companyRepository) FindByName(ctx context.Context, name string) (*model.Company, error) {
	var company model.Company
	if err := GetDB(ctx, r.db).First(&company, "name = ?", name).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *companyRepository) List(ctx context.Context, page, limit int) ([]model.Company, int64, error) {
	var companies []model.Company
	var total int64

	db := GetDB(ctx, r.db)
	if err := db.Model(&model.Company{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	p := pagination.New(page, limit)
	if err := db.Order("name asc").Offset(p.Offset).Limit(p.Limit).Find(&companies).Error; err != nil {
		return nil, 0, err
	}

	return companies, total, nil
}
