package repository

import (
	"context"
	"fmt"

	"omanvat/internal/model"

	"gorm.io/gorm"
)

type PermissionRepository interface {
	AddPermission(ctx context.Context, docType, role string, permLevel int) error
	UpdateProperty(ctx context.Context, docType, role string, permLevel int, right string, value bool) error
	ListByDocType(ctx context.Context, docType string) ([]model.DocPerm, error)
	HasRight(ctx context.Context, docType, role, right string) (bool, error)
}

type permissionRepository struct {
	db *gorm.DB
}

func NewPermissionRepository(db *gorm.DB) PermissionRepository {
	return &permissionRepository{db: db}
}

// AddPermission grants read on docType to role at permLevel unless a grant already exists.
func (r *permissionRepository) AddPermission(ctx context.Context, docType, role string, permLevel int) error {
	perm := model.DocPerm{Parent: docType, Role: role, PermLevel: permLevel}
	return GetDB(ctx, r.db).
		Where("parent = ? AND role = ? AND perm_level = ?", docType, role, permLevel).
		Attrs(model.DocPerm{Read: true}).
		FirstOrCreate(&perm).Error
}

func (r *permissionRepository) UpdateProperty(ctx context.Context, docType, role string, permLevel int, right string, value bool) error {
	column := model.RightColumn(right)
	if column == "" {
		return fmt.Errorf("unknown permission right '%s'", right)
	}

	result := GetDB(ctx, r.db).Model(&model.DocPerm{}).
		Where("parent = ? AND role = ? AND perm_level = ?", docType, role, permLevel).
		Update(column, value)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *permissionRepository) ListByDocType(ctx context.Context, docType string) ([]model.DocPerm, error) {
	var perms []model.DocPerm
	if err := GetDB(ctx, r.db).Where("parent = ?", docType).Order("perm_level asc, role asc").Find(&perms).Error; err != nil {
		return nil, err
	}
	return perms, nil
}

// HasRight reports whether role, or the catch-all "All" role, holds right on docType at level 0.
func (r *permissionRepository) HasRight(ctx context.Context, docType, role, right string) (bool, error) {
	var perms []model.DocPerm
	if err := GetDB(ctx, r.db).
		Where("parent = ? AND perm_level = 0 AND role IN ?", docType, []string{role, model.RoleAll}).
		Find(&perms).Error; err != nil {
		return false, err
	}

	for _, p := range perms {
		if p.Has(right) {
			return true, nil
		}
	}
	return false, nil
}
