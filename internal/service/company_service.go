package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"omanvat/internal/model"
	"omanvat/internal/repository"
)

// --- DTOs ---

type CreateCompanyRequest struct {
	Name                string `json:"name" binding:"required"`
	Abbr                string `json:"abbr" binding:"required,max=20"`
	Country             string `json:"country" binding:"required"`
	DefaultCurrency     string `json:"default_currency" binding:"omitempty,len=3"`
	ChartOfAccounts     string `json:"chart_of_accounts"`
	TaxID               string `json:"tax_id"`
	CompanyNameInArabic string `json:"company_name_in_arabic"`
}

type UpdateCompanyRequest struct {
	Country             *string `json:"country"`
	DefaultCurrency     *string `json:"default_currency"`
	ChartOfAccounts     *string `json:"chart_of_accounts"`
	TaxID               *string `json:"tax_id"`
	CompanyNameInArabic *string `json:"company_name_in_arabic"`
}

// --- Interface ---

type CompanyService interface {
	CreateCompany(ctx context.Context, req CreateCompanyRequest) (*model.Company, error)
	UpdateCompany(ctx context.Context, name string, req UpdateCompanyRequest) (*model.Company, error)
	DeleteCompany(ctx context.Context, name string) error
	GetCompany(ctx context.Context, name string) (*model.Company, error)
	ListCompanies(ctx context.Context, page, limit int) ([]model.Company, int64, error)
}

type companyService struct {
	companyRepo  repository.CompanyRepository
	auditRepo    repository.AuditRepository
	txManager    repository.TransactionManager
	vatSettings  VATSettingService
	taxTemplates TaxTemplateService
}

func NewCompanyService(
	companyRepo repository.CompanyRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	vatSettings VATSettingService,
	taxTemplates TaxTemplateService,
) CompanyService {
	return &companyService{
		companyRepo:  companyRepo,
		auditRepo:    auditRepo,
		txManager:    txManager,
		vatSettings:  vatSettings,
		taxTemplates: taxTemplates,
	}
}

// --- Implementation ---

// CreateCompany saves the company and, for an Oman company, imports its tax templates and
// creates its VAT setting. Any failure rolls the company back.
func (s *companyService) CreateCompany(ctx context.Context, req CreateCompanyRequest) (*model.Company, error) {
	company := model.Company{
		Name:                strings.TrimSpace(req.Name),
		Abbr:                strings.TrimSpace(req.Abbr),
		Country:             strings.TrimSpace(req.Country),
		DefaultCurrency:     req.DefaultCurrency,
		ChartOfAccounts:     req.ChartOfAccounts,
		TaxID:               req.TaxID,
		CompanyNameInArabic: req.CompanyNameInArabic,
	}
	if err := validateCompany(company); err != nil {
		return nil, err
	}

	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.companyRepo.Create(txCtx, &company); err != nil {
			return fmt.Errorf("failed to create company: %w", translateWriteError(err))
		}
		return s.onCompanySaved(txCtx, &company)
	})
	if err != nil {
		return nil, err
	}

	writeAuditLog(ctx, s.auditRepo, model.ActionCreateCompany, "Company", company.Name, req)
	return &company, nil
}

// UpdateCompany applies the changed attributes. Moving a company to Oman sets it up like a new
// Oman company; moving it away from Oman deletes its VAT setting.
func (s *companyService) UpdateCompany(ctx context.Context, name string, req UpdateCompanyRequest) (*model.Company, error) {
	var company *model.Company

	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		existing, err := s.companyRepo.FindByName(txCtx, name)
		if err != nil {
			return translateLookupError(name, err)
		}
		wasOman := existing.IsOman()

		if req.Country != nil {
			existing.Country = strings.TrimSpace(*req.Country)
		}
		if req.DefaultCurrency != nil {
			existing.DefaultCurrency = *req.DefaultCurrency
		}
		if req.ChartOfAccounts != nil {
			existing.ChartOfAccounts = *req.ChartOfAccounts
		}
		if req.TaxID != nil {
			existing.TaxID = *req.TaxID
		}
		if req.CompanyNameInArabic != nil {
			existing.CompanyNameInArabic = *req.CompanyNameInArabic
		}
		if err := validateCompany(*existing); err != nil {
			return err
		}

		if err := s.companyRepo.Update(txCtx, existing); err != nil {
			return fmt.Errorf("failed to update company: %w", translateWriteError(err))
		}

		if wasOman && !existing.IsOman() {
			if _, err := s.vatSettings.DeleteVATSetting(txCtx, existing.Name); err != nil {
				return err
			}
		} else if err := s.onCompanySaved(txCtx, existing); err != nil {
			return err
		}

		company = existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	writeAuditLog(ctx, s.auditRepo, model.ActionUpdateCompany, "Company", company.Name, req)
	return company, nil
}

// DeleteCompany removes the company together with its Oman VAT setting.
func (s *companyService) DeleteCompany(ctx context.Context, name string) error {
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		company, err := s.companyRepo.FindByName(txCtx, name)
		if err != nil {
			return translateLookupError(name, err)
		}

		if company.IsOman() {
			if _, err := s.vatSettings.DeleteVATSetting(txCtx, company.Name); err != nil {
				return err
			}
		}

		if err := s.companyRepo.Delete(txCtx, company.Name); err != nil {
			return fmt.Errorf("failed to delete company: %w", translateWriteError(err))
		}
		return nil
	})
	if err != nil {
		return err
	}

	writeAuditLog(ctx, s.auditRepo, model.ActionDeleteCompany, "Company", name, map[string]string{"deleted": name})
	return nil
}

func (s *companyService) GetCompany(ctx context.Context, name string) (*model.Company, error) {
	company, err := s.companyRepo.FindByName(ctx, name)
	if err != nil {
		return nil, translateLookupError(name, err)
	}
	return company, nil
}

func (s *companyService) ListCompanies(ctx context.Context, page, limit int) ([]model.Company, int64, error) {
	companies, total, err := s.companyRepo.List(ctx, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch companies: %w", err)
	}
	return companies, total, nil
}

// --- Helpers ---

// onCompanySaved runs the regional setup for Oman companies.
func (s *companyService) onCompanySaved(ctx context.Context, company *model.Company) error {
	if !company.IsOman() {
		return nil
	}

	if _, err := s.taxTemplates.SetupTaxTemplates(ctx, company.Name); err != nil {
		return err
	}

	created, err := s.vatSettings.CreateIfAbsent(ctx, company.Name)
	if err != nil {
		return err
	}
	if !created {
		slog.DebugContext(ctx, "oman vat setting already present", "company", company.Name)
	}
	return nil
}

func validateCompany(c model.Company) error {
	switch {
	case c.Name == "":
		return fmt.Errorf("%w: company name is required", ErrValidation)
	case c.Abbr == "":
		return fmt.Errorf("%w: company abbr is required", ErrValidation)
	case c.Country == "":
		return fmt.Errorf("%w: company country is required", ErrValidation)
	}
	return nil
}
