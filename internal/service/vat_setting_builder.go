package service

import (
	"omanvat/internal/model"
)

// Group types of the tax account template
const (
	GroupSalesAccount    = "Sales Account"
	GroupPurchaseAccount = "Purchase Account"
)

// TaxAccountRow maps a report title to an item tax template and a ledger account, both unqualified.
type TaxAccountRow struct {
	Title           string `json:"title"`
	ItemTaxTemplate string `json:"item_tax_template"`
	Account         string `json:"account"`
}

// TaxAccountGroup holds the rows of one side of the VAT setting.
type TaxAccountGroup struct {
	Type     string          `json:"type"`
	Accounts []TaxAccountRow `json:"accounts"`
}

// TaxAccountTemplate is the parsed tax account template resource.
type TaxAccountTemplate []TaxAccountGroup

// QualifyName appends the company abbreviation the way account and template names are stored.
func QualifyName(name, abbr string) string {
	return name + " - " + abbr
}

// BuildVATSetting builds the Oman VAT setting of company from template. Rows keep their
// template order within each side. Groups of any other type produce no rows; their types
// are returned so the caller can report them.
func BuildVATSetting(template TaxAccountTemplate, company model.Company) (*model.OmanVATSetting, []string) {
	setting := &model.OmanVATSetting{
		Company:          company.Name,
		SalesAccounts:    []model.OmanVATAccount{},
		PurchaseAccounts: []model.OmanVATAccount{},
	}

	var skipped []string
	for _, group := range template {
		switch group.Type {
		case GroupSalesAccount:
			setting.SalesAccounts = appendQualified(setting.SalesAccounts, group.Accounts, company.Abbr)
		case GroupPurchaseAccount:
			setting.PurchaseAccounts = appendQualified(setting.PurchaseAccounts, group.Accounts, company.Abbr)
		default:
			skipped = append(skipped, group.Type)
		}
	}

	return setting, skipped
}

func appendQualified(dst []model.OmanVATAccount, rows []TaxAccountRow, abbr string) []model.OmanVATAccount {
	for _, row := range rows {
		dst = append(dst, model.OmanVATAccount{
			Idx:             len(dst) + 1,
			Title:           row.Title,
			ItemTaxTemplate: QualifyName(row.ItemTaxTemplate, abbr),
			Account:         QualifyName(row.Account, abbr),
		})
	}
	return dst
}
