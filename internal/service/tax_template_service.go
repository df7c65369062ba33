package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"omanvat/internal/model"
	"omanvat/internal/repository"
	"omanvat/internal/resource"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	anyChartOfAccounts = "*"
	chargeOnNetTotal   = "On Net Total"
	accountTypeTax     = "Tax"
)

// --- DTOs ---

// DetailedTaxData is the tax bracket resource: tax templates keyed by chart of accounts,
// with "*" applying to any chart.
type DetailedTaxData struct {
	ChartOfAccounts map[string]ChartTaxTemplates `json:"chart_of_accounts"`
}

type ChartTaxTemplates struct {
	TaxCategories        []TaxCategoryData     `json:"tax_categories"`
	SalesTaxTemplates    []TaxesAndChargesData `json:"sales_tax_templates"`
	PurchaseTaxTemplates []TaxesAndChargesData `json:"purchase_tax_templates"`
	ItemTaxTemplates     []ItemTaxTemplateData `json:"item_tax_templates"`
}

type TaxCategoryData struct {
	Title        string `json:"title"`
	IsInterState int    `json:"is_inter_state"`
}

// TaxAccountData names a tax ledger account; it is created for the company when missing.
type TaxAccountData struct {
	AccountName string          `json:"account_name"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
	RootType    string          `json:"root_type"`
	AccountType string          `json:"account_type"`
}

type TaxesAndChargesData struct {
	Title       string       `json:"title"`
	IsDefault   int          `json:"is_default"`
	TaxCategory string       `json:"tax_category"`
	Taxes       []TaxRowData `json:"taxes"`
}

type TaxRowData struct {
	AccountHead         TaxAccountData   `json:"account_head"`
	Description         string           `json:"description"`
	ChargeType          string           `json:"charge_type"`
	Rate                *decimal.Decimal `json:"rate"` // defaults to the account's tax_rate
	IncludedInPrintRate int              `json:"included_in_print_rate"`
	AddDeductTax        string           `json:"add_deduct_tax"`
}

type ItemTaxTemplateData struct {
	Title string           `json:"title"`
	Taxes []ItemTaxRowData `json:"taxes"`
}

type ItemTaxRowData struct {
	TaxType TaxAccountData   `json:"tax_type"`
	TaxRate *decimal.Decimal `json:"tax_rate"` // defaults to the account's tax_rate
}

// ImportSummary counts what an import created; existing records are counted as skipped.
type ImportSummary struct {
	Company           string `json:"company"`
	Chart             string `json:"chart"`
	Accounts          int    `json:"accounts"`
	TaxCategories     int    `json:"tax_categories"`
	SalesTemplates    int    `json:"sales_templates"`
	PurchaseTemplates int    `json:"purchase_templates"`
	ItemTaxTemplates  int    `json:"item_tax_templates"`
	Skipped           int    `json:"skipped"`
}

// --- Interface ---

type TaxTemplateService interface {
	SetupTaxTemplates(ctx context.Context, companyName string) (*ImportSummary, error)
	ImportFromDetailedData(ctx context.Context, companyName string, data DetailedTaxData) (*ImportSummary, error)
	ListItemTaxTemplates(ctx context.Context, companyName string) ([]model.ItemTaxTemplate, error)
}

type taxTemplateService struct {
	companyRepo repository.CompanyRepository
	taxRepo     repository.TaxTemplateRepository
	auditRepo   repository.AuditRepository
	txManager   repository.TransactionManager
	resources   resource.Reader
	events      EventPublisher
}

func NewTaxTemplateService(
	companyRepo repository.CompanyRepository,
	taxRepo repository.TaxTemplateRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	resources resource.Reader,
	events EventPublisher,
) TaxTemplateService {
	return &taxTemplateService{
		companyRepo: companyRepo,
		taxRepo:     taxRepo,
		auditRepo:   auditRepo,
		txManager:   txManager,
		resources:   resources,
		events:      publisherOrNoop(events),
	}
}

// --- Implementation ---

// SetupTaxTemplates imports the bundled Oman tax templates for an Oman company.
// Companies in other countries are left alone and get a nil summary.
func (s *taxTemplateService) SetupTaxTemplates(ctx context.Context, companyName string) (*ImportSummary, error) {
	company, err := s.companyRepo.FindByName(ctx, companyName)
	if err != nil {
		return nil, translateLookupError(companyName, err)
	}
	if !company.IsOman() {
		return nil, nil
	}

	var data DetailedTaxData
	if err := s.resources.ReadJSON(resource.TaxBracketTemplate, &data); err != nil {
		return nil, fmt.Errorf("failed to load tax templates: %w", err)
	}

	return s.ImportFromDetailedData(ctx, company.Name, data)
}

// ImportFromDetailedData creates the tax categories, accounts and templates listed for the
// company's chart of accounts (or "*"). Templates that already exist are skipped.
func (s *taxTemplateService) ImportFromDetailedData(ctx context.Context, companyName string, data DetailedTaxData) (*ImportSummary, error) {
	company, err := s.companyRepo.FindByName(ctx, companyName)
	if err != nil {
		return nil, translateLookupError(companyName, err)
	}

	chart, templates, ok := selectChart(data, company.ChartOfAccounts)
	summary := &ImportSummary{Company: company.Name, Chart: chart}
	if !ok {
		slog.WarnContext(ctx, "no tax templates for chart of accounts", "company", company.Name, "chart", company.ChartOfAccounts)
		return summary, nil
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		for _, category := range templates.TaxCategories {
			if err := s.makeTaxCategory(txCtx, category, summary); err != nil {
				return err
			}
		}
		for _, t := range templates.SalesTaxTemplates {
			if err := s.makeTaxesAndChargesTemplate(txCtx, company, model.TemplateKindSales, t, summary); err != nil {
				return err
			}
		}
		for _, t := range templates.PurchaseTaxTemplates {
			if err := s.makeTaxesAndChargesTemplate(txCtx, company, model.TemplateKindPurchase, t, summary); err != nil {
				return err
			}
		}
		for _, t := range templates.ItemTaxTemplates {
			if err := s.makeItemTaxTemplate(txCtx, company, t, summary); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "tax templates imported",
		"company", summary.Company,
		"chart", summary.Chart,
		"sales", summary.SalesTemplates,
		"purchase", summary.PurchaseTemplates,
		"item", summary.ItemTaxTemplates,
		"skipped", summary.Skipped)

	writeAuditLog(ctx, s.auditRepo, model.ActionImportTaxTemplates, "Company", company.Name, summary)
	s.txManager.AfterCommit(ctx, func() {
		s.events.Publish(EventTaxTemplatesReady, summary)
	})

	return summary, nil
}

func (s *taxTemplateService) ListItemTaxTemplates(ctx context.Context, companyName string) ([]model.ItemTaxTemplate, error) {
	templates, err := s.taxRepo.ListItemTaxTemplates(ctx, companyName)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch item tax templates: %w", err)
	}
	return templates, nil
}

// --- Helpers ---

func selectChart(data DetailedTaxData, chartOfAccounts string) (string, ChartTaxTemplates, bool) {
	if chartOfAccounts != "" {
		if t, ok := data.ChartOfAccounts[chartOfAccounts]; ok {
			return chartOfAccounts, t, true
		}
	}
	t, ok := data.ChartOfAccounts[anyChartOfAccounts]
	return anyChartOfAccounts, t, ok
}

func (s *taxTemplateService) makeTaxCategory(ctx context.Context, data TaxCategoryData, summary *ImportSummary) error {
	if data.Title == "" {
		return fmt.Errorf("%w: tax category without title", ErrValidation)
	}

	exists, err := s.taxRepo.TaxCategoryExists(ctx, data.Title)
	if err != nil {
		return fmt.Errorf("failed to check tax category '%s': %w", data.Title, err)
	}
	if exists {
		summary.Skipped++
		return nil
	}

	category := model.TaxCategory{Title: data.Title, IsInterState: data.IsInterState == 1}
	if err := s.taxRepo.CreateTaxCategory(ctx, &category); err != nil {
		return fmt.Errorf("failed to create tax category '%s': %w", data.Title, translateWriteError(err))
	}
	summary.TaxCategories++
	return nil
}

func (s *taxTemplateService) makeTaxesAndChargesTemplate(ctx context.Context, company *model.Company, kind string, data TaxesAndChargesData, summary *ImportSummary) error {
	if data.Title == "" {
		return fmt.Errorf("%w: %s tax template without title", ErrValidation, kind)
	}

	name := QualifyName(data.Title, company.Abbr)
	exists, err := s.taxRepo.TaxesAndChargesTemplateExists(ctx, kind, name)
	if err != nil {
		return fmt.Errorf("failed to check %s tax template '%s': %w", kind, name, err)
	}
	if exists {
		summary.Skipped++
		return nil
	}

	template := model.TaxesAndChargesTemplate{
		Name:        name,
		Kind:        kind,
		Title:       data.Title,
		Company:     company.Name,
		IsDefault:   data.IsDefault == 1,
		TaxCategory: data.TaxCategory,
		Taxes:       make([]model.TaxesAndChargesRow, 0, len(data.Taxes)),
	}

	for i, row := range data.Taxes {
		account, err := s.getOrCreateAccount(ctx, company, row.AccountHead, summary)
		if err != nil {
			return err
		}

		rate := account.TaxRate
		if row.Rate != nil {
			rate = *row.Rate
		}
		chargeType := row.ChargeType
		if chargeType == "" {
			chargeType = chargeOnNetTotal
		}
		description := row.Description
		if description == "" {
			description = account.AccountName
		}

		taxRow := model.TaxesAndChargesRow{
			Idx:                 i + 1,
			ChargeType:          chargeType,
			AccountHead:         account.Name,
			Description:         description,
			Rate:                rate,
			IncludedInPrintRate: row.IncludedInPrintRate == 1,
		}
		if kind == model.TemplateKindPurchase {
			taxRow.AddDeductTax = row.AddDeductTax
			if taxRow.AddDeductTax == "" {
				taxRow.AddDeductTax = "Add"
			}
		}
		template.Taxes = append(template.Taxes, taxRow)
	}

	if err := s.taxRepo.CreateTaxesAndChargesTemplate(ctx, &template); err != nil {
		return fmt.Errorf("failed to create %s tax template '%s': %w", kind, name, translateWriteError(err))
	}

	if kind == model.TemplateKindSales {
		summary.SalesTemplates++
	} else {
		summary.PurchaseTemplates++
	}
	return nil
}

func (s *taxTemplateService) makeItemTaxTemplate(ctx context.Context, company *model.Company, data ItemTaxTemplateData, summary *ImportSummary) error {
	if data.Title == "" {
		return fmt.Errorf("%w: item tax template without title", ErrValidation)
	}

	name := QualifyName(data.Title, company.Abbr)
	exists, err := s.taxRepo.ItemTaxTemplateExists(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to check item tax template '%s': %w", name, err)
	}
	if exists {
		summary.Skipped++
		return nil
	}

	template := model.ItemTaxTemplate{
		Name:    name,
		Title:   data.Title,
		Company: company.Name,
		Taxes:   make([]model.ItemTaxTemplateRow, 0, len(data.Taxes)),
	}

	for i, row := range data.Taxes {
		account, err := s.getOrCreateAccount(ctx, company, row.TaxType, summary)
		if err != nil {
			return err
		}

		rate := account.TaxRate
		if row.TaxRate != nil {
			rate = *row.TaxRate
		}
		template.Taxes = append(template.Taxes, model.ItemTaxTemplateRow{
			Idx:     i + 1,
			TaxType: account.Name,
			TaxRate: rate,
		})
	}

	if err := s.taxRepo.CreateItemTaxTemplate(ctx, &template); err != nil {
		return fmt.Errorf("failed to create item tax template '%s': %w", name, translateWriteError(err))
	}
	summary.ItemTaxTemplates++
	return nil
}

// getOrCreateAccount returns the company's account named data.AccountName, creating it as a
// tax account when it does not exist yet.
func (s *taxTemplateService) getOrCreateAccount(ctx context.Context, company *model.Company, data TaxAccountData, summary *ImportSummary) (*model.Account, error) {
	if data.AccountName == "" {
		return nil, fmt.Errorf("%w: tax row without account_name", ErrValidation)
	}

	account, err := s.taxRepo.FindAccount(ctx, company.Name, data.AccountName)
	if err == nil {
		return account, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to fetch account '%s': %w", data.AccountName, err)
	}

	rootType := data.RootType
	if rootType == "" {
		rootType = model.RootTypeLiability
	}
	accountType := data.AccountType
	if accountType == "" {
		accountType = accountTypeTax
	}

	account = &model.Account{
		Name:        QualifyName(data.AccountName, company.Abbr),
		AccountName: data.AccountName,
		Company:     company.Name,
		RootType:    rootType,
		AccountType: accountType,
		TaxRate:     data.TaxRate,
	}
	if err := s.taxRepo.CreateAccount(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to create account '%s': %w", account.Name, translateWriteError(err))
	}
	summary.Accounts++
	return account, nil
}
