package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	ErrCompanyNotFound    = errors.New("company not found")
	ErrVATSettingNotFound = errors.New("oman vat setting not found")
	ErrValidation         = errors.New("validation failed")
)

// translateWriteError turns constraint violations reported by the database into ErrValidation.
func translateWriteError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, gorm.ErrForeignKeyViolated) || errors.Is(err, gorm.ErrCheckConstraintViolated) {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return err
}

// translateLookupError turns a missing company record into ErrCompanyNotFound.
func translateLookupError(name string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: '%s'", ErrCompanyNotFound, name)
	}
	return fmt.Errorf("failed to fetch company '%s': %w", name, err)
}
