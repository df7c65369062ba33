package service

import (
	"context"
	"testing"

	"omanvat/internal/model"
	"omanvat/internal/resource"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type taxTemplateFixture struct {
	companies *fakeCompanyRepo
	taxes     *fakeTaxTemplateRepo
	tx        *fakeTxManager
	events    *fakePublisher
	svc       TaxTemplateService
}

func newTaxTemplateFixture(reader resource.Reader, companies ...model.Company) *taxTemplateFixture {
	f := &taxTemplateFixture{
		companies: newFakeCompanyRepo(companies...),
		taxes:     newFakeTaxTemplateRepo(),
		tx:        &fakeTxManager{},
		events:    &fakePublisher{},
	}
	f.svc = NewTaxTemplateService(f.companies, f.taxes, &fakeAuditRepo{}, f.tx, reader, f.events)
	return f
}

func TestSetupTaxTemplates_ImportsBundledTemplates(t *testing.T) {
	f := newTaxTemplateFixture(resource.Bundled(), abcCompany)

	summary, err := f.svc.SetupTaxTemplates(context.Background(), "ABC LLC")
	require.NoError(t, err)
	require.NotNil(t, summary)

	assert.Equal(t, "*", summary.Chart)
	assert.Equal(t, 2, summary.TaxCategories)
	assert.Equal(t, 2, summary.SalesTemplates)
	assert.Equal(t, 2, summary.PurchaseTemplates)
	assert.Equal(t, 3, summary.ItemTaxTemplates)
	assert.Equal(t, 4, summary.Accounts)
	assert.Zero(t, summary.Skipped)
	assert.Equal(t, 1, f.tx.calls)

	sales := f.taxes.taxTemplates[model.TemplateKindSales+"|Oman VAT 5% - ABC"]
	assert.True(t, sales.IsDefault)
	require.Len(t, sales.Taxes, 1)
	assert.Equal(t, "VAT 5% - ABC", sales.Taxes[0].AccountHead)
	assert.Equal(t, "On Net Total", sales.Taxes[0].ChargeType)
	assert.True(t, decimal.NewFromInt(5).Equal(sales.Taxes[0].Rate))
	assert.Empty(t, sales.Taxes[0].AddDeductTax)

	reverse := f.taxes.taxTemplates[model.TemplateKindPurchase+"|Oman VAT Reverse Charge - ABC"]
	require.Len(t, reverse.Taxes, 2)
	assert.Equal(t, "Add", reverse.Taxes[0].AddDeductTax)
	assert.Equal(t, "Deduct", reverse.Taxes[1].AddDeductTax)
	assert.Equal(t, 1, reverse.Taxes[0].Idx)
	assert.Equal(t, 2, reverse.Taxes[1].Idx)

	item := f.taxes.itemTemplates["Oman VAT Zero Rated - ABC"]
	require.Len(t, item.Taxes, 1)
	assert.Equal(t, "VAT Zero Rated - ABC", item.Taxes[0].TaxType)
	assert.True(t, item.Taxes[0].TaxRate.IsZero())

	account := f.taxes.accounts["ABC LLC|VAT Reverse Charge Payable"]
	assert.Equal(t, model.RootTypeLiability, account.RootType)
	assert.Equal(t, "Tax", account.AccountType)

	assert.Equal(t, []string{EventTaxTemplatesReady}, f.events.names())
}

func TestSetupTaxTemplates_SecondImportSkipsEverything(t *testing.T) {
	f := newTaxTemplateFixture(resource.Bundled(), abcCompany)
	ctx := context.Background()
	_, err := f.svc.SetupTaxTemplates(ctx, "ABC LLC")
	require.NoError(t, err)

	summary, err := f.svc.SetupTaxTemplates(ctx, "ABC LLC")
	require.NoError(t, err)

	assert.Zero(t, summary.Accounts)
	assert.Zero(t, summary.SalesTemplates+summary.PurchaseTemplates+summary.ItemTaxTemplates+summary.TaxCategories)
	assert.Equal(t, 9, summary.Skipped)
}

func TestSetupTaxTemplates_NonOmanCompanyIsIgnored(t *testing.T) {
	reader := newCountingReader(resource.Bundled())
	f := newTaxTemplateFixture(reader, model.Company{Name: "Gulf Co", Abbr: "GC", Country: "United Arab Emirates"})

	summary, err := f.svc.SetupTaxTemplates(context.Background(), "Gulf Co")

	require.NoError(t, err)
	assert.Nil(t, summary)
	assert.Zero(t, reader.reads[resource.TaxBracketTemplate])
	assert.Empty(t, f.taxes.taxTemplates)
}

func TestSetupTaxTemplates_MissingCompany(t *testing.T) {
	f := newTaxTemplateFixture(resource.Bundled())

	_, err := f.svc.SetupTaxTemplates(context.Background(), "NoSuchCo")

	assert.ErrorIs(t, err, ErrCompanyNotFound)
}

func TestSetupTaxTemplates_MalformedResource(t *testing.T) {
	f := newTaxTemplateFixture(templateFS(map[string]string{resource.TaxBracketTemplate: `{"chart_of_accounts": [`}), abcCompany)

	_, err := f.svc.SetupTaxTemplates(context.Background(), "ABC LLC")

	assert.ErrorIs(t, err, resource.ErrResourceParse)
}

func TestImportFromDetailedData_PrefersCompanyChart(t *testing.T) {
	company := abcCompany
	company.ChartOfAccounts = "Oman - Standard"
	f := newTaxTemplateFixture(nil, company)

	data := DetailedTaxData{ChartOfAccounts: map[string]ChartTaxTemplates{
		"*":               {ItemTaxTemplates: []ItemTaxTemplateData{{Title: "Generic"}}},
		"Oman - Standard": {ItemTaxTemplates: []ItemTaxTemplateData{{Title: "Specific"}}},
	}}

	summary, err := f.svc.ImportFromDetailedData(context.Background(), "ABC LLC", data)
	require.NoError(t, err)

	assert.Equal(t, "Oman - Standard", summary.Chart)
	assert.Contains(t, f.taxes.itemTemplates, "Specific - ABC")
	assert.NotContains(t, f.taxes.itemTemplates, "Generic - ABC")
}

func TestImportFromDetailedData_NoMatchingChart(t *testing.T) {
	f := newTaxTemplateFixture(nil, abcCompany)

	summary, err := f.svc.ImportFromDetailedData(context.Background(), "ABC LLC", DetailedTaxData{})

	require.NoError(t, err)
	assert.Zero(t, summary.ItemTaxTemplates)
	assert.Zero(t, f.tx.calls)
}

func TestImportFromDetailedData_RowRateOverridesAccountRate(t *testing.T) {
	f := newTaxTemplateFixture(nil, abcCompany)
	override := decimal.RequireFromString("2.5")

	data := DetailedTaxData{ChartOfAccounts: map[string]ChartTaxTemplates{
		"*": {PurchaseTaxTemplates: []TaxesAndChargesData{{
			Title: "Partial",
			Taxes: []TaxRowData{{AccountHead: TaxAccountData{AccountName: "VAT 5%", TaxRate: decimal.NewFromInt(5)}, Rate: &override}},
		}}},
	}}

	_, err := f.svc.ImportFromDetailedData(context.Background(), "ABC LLC", data)
	require.NoError(t, err)

	tmpl := f.taxes.taxTemplates[model.TemplateKindPurchase+"|Partial - ABC"]
	require.Len(t, tmpl.Taxes, 1)
	assert.True(t, override.Equal(tmpl.Taxes[0].Rate))
	assert.Equal(t, "Add", tmpl.Taxes[0].AddDeductTax)
	assert.Equal(t, "VAT 5%", tmpl.Taxes[0].Description)
}

func TestImportFromDetailedData_RejectsRowsWithoutAccount(t *testing.T) {
	f := newTaxTemplateFixture(nil, abcCompany)

	data := DetailedTaxData{ChartOfAccounts: map[string]ChartTaxTemplates{
		"*": {SalesTaxTemplates: []TaxesAndChargesData{{Title: "Broken", Taxes: []TaxRowData{{}}}}},
	}}

	_, err := f.svc.ImportFromDetailedData(context.Background(), "ABC LLC", data)

	assert.ErrorIs(t, err, ErrValidation)
	assert.Empty(t, f.taxes.taxTemplates)
}

func TestListItemTaxTemplates(t *testing.T) {
	f := newTaxTemplateFixture(resource.Bundled(), abcCompany)
	ctx := context.Background()
	_, err := f.svc.SetupTaxTemplates(ctx, "ABC LLC")
	require.NoError(t, err)

	templates, err := f.svc.ListItemTaxTemplates(ctx, "ABC LLC")
	require.NoError(t, err)

	require.Len(t, templates, 3)
	assert.Equal(t, "Oman VAT 5% - ABC", templates[0].Name)
}
