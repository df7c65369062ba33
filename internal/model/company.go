package model

import (
	"time"
)

// CountryOman is the country value that activates the Oman VAT localization.
const CountryOman = "Oman"

// Company is the legal entity ledger accounts and tax templates belong to.
// Abbr is appended to account and template names to keep them unique across companies.
type Company struct {
	Name                string    `gorm:"type:varchar(140);primaryKey" json:"name"`
	Abbr                string    `gorm:"type:varchar(20);uniqueIndex;not null" json:"abbr"`
	Country             string    `gorm:"type:varchar(100);not null;index" json:"country"`
	DefaultCurrency     string    `gorm:"type:varchar(3)" json:"default_currency"`
	ChartOfAccounts     string    `gorm:"type:varchar(140)" json:"chart_of_accounts"`
	TaxID               string    `gorm:"type:varchar(50)" json:"tax_id"`
	CompanyNameInArabic string    `gorm:"type:varchar(255)" json:"company_name_in_arabic"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// IsOman reports whether the company is subject to Oman VAT.
func (c Company) IsOman() bool {
	return c.Country == CountryOman
}
