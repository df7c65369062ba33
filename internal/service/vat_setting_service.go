package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"omanvat/internal/model"
	"omanvat/internal/repository"
	"omanvat/internal/resource"

	"gorm.io/gorm"
)

// --- Interface ---

type VATSettingService interface {
	CreateIfAbsent(ctx context.Context, companyName string) (bool, error)
	GetVATSetting(ctx context.Context, companyName string) (*model.OmanVATSetting, error)
	DeleteVATSetting(ctx context.Context, companyName string) (bool, error)
}

type vatSettingService struct {
	companyRepo repository.CompanyRepository
	settingRepo repository.VATSettingRepository
	auditRepo   repository.AuditRepository
	txManager   repository.TransactionManager
	resources   resource.Reader
	events      EventPublisher
}

func NewVATSettingService(
	companyRepo repository.CompanyRepository,
	settingRepo repository.VATSettingRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	resources resource.Reader,
	events EventPublisher,
) VATSettingService {
	return &vatSettingService{
		companyRepo: companyRepo,
		settingRepo: settingRepo,
		auditRepo:   auditRepo,
		txManager:   txManager,
		resources:   resources,
		events:      publisherOrNoop(events),
	}
}

// --- Implementation ---

// CreateIfAbsent builds the company's Oman VAT setting from the bundled tax account template
// and saves it. It reports false without touching anything when the company already has one.
// The existence check and the insert are not atomic; a concurrent duplicate is rejected by the
// primary key and surfaces as ErrValidation. Subscribers hear about the new setting only once
// the surrounding transaction commits.
func (s *vatSettingService) CreateIfAbsent(ctx context.Context, companyName string) (bool, error) {
	company, err := s.companyRepo.FindByName(ctx, companyName)
	if err != nil {
		return false, translateLookupError(companyName, err)
	}

	exists, err := s.settingRepo.Exists(ctx, company.Name)
	if err != nil {
		return false, fmt.Errorf("failed to check oman vat setting: %w", err)
	}
	if exists {
		return false, nil
	}

	var template TaxAccountTemplate
	if err := s.resources.ReadJSON(resource.TaxAccountTemplate, &template); err != nil {
		return false, fmt.Errorf("failed to load tax account template: %w", err)
	}

	setting, skipped := BuildVATSetting(template, *company)
	if len(skipped) > 0 {
		slog.WarnContext(ctx, "skipped tax account groups of unknown type",
			"company", company.Name, "count", len(skipped), "types", skipped)
	}

	if err := s.settingRepo.Create(ctx, setting); err != nil {
		return false, fmt.Errorf("failed to save oman vat setting: %w", translateWriteError(err))
	}

	slog.InfoContext(ctx, "oman vat setting created",
		"company", company.Name,
		"sales_accounts", len(setting.SalesAccounts),
		"purchase_accounts", len(setting.PurchaseAccounts))

	writeAuditLog(ctx, s.auditRepo, model.ActionCreateVATSetting, model.DocTypeOmanVATSetting, company.Name, map[string]int{
		"sales_accounts":    len(setting.SalesAccounts),
		"purchase_accounts": len(setting.PurchaseAccounts),
		"skipped_groups":    len(skipped),
	})
	s.txManager.AfterCommit(ctx, func() {
		s.events.Publish(EventVATSettingCreated, setting)
	})

	return true, nil
}

func (s *vatSettingService) GetVATSetting(ctx context.Context, companyName string) (*model.OmanVATSetting, error) {
	setting, err := s.settingRepo.FindByCompany(ctx, companyName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: '%s'", ErrVATSettingNotFound, companyName)
		}
		return nil, fmt.Errorf("failed to fetch oman vat setting: %w", err)
	}
	return setting, nil
}

// DeleteVATSetting hard-deletes the company's setting. It reports false when there was none.
func (s *vatSettingService) DeleteVATSetting(ctx context.Context, companyName string) (bool, error) {
	exists, err := s.settingRepo.Exists(ctx, companyName)
	if err != nil {
		return false, fmt.Errorf("failed to check oman vat setting: %w", err)
	}
	if !exists {
		return false, nil
	}

	if err := s.settingRepo.Delete(ctx, companyName); err != nil {
		return false, fmt.Errorf("failed to delete oman vat setting: %w", err)
	}

	slog.InfoContext(ctx, "oman vat setting deleted", "company", companyName)
	writeAuditLog(ctx, s.auditRepo, model.ActionDeleteVATSetting, model.DocTypeOmanVATSetting, companyName, map[string]string{"company": companyName})
	s.txManager.AfterCommit(ctx, func() {
		s.events.Publish(EventVATSettingDeleted, map[string]string{"company": companyName})
	})

	return true, nil
}
