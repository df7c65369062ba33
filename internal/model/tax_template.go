package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Root types of ledger accounts created for tax heads
const (
	RootTypeLiability = "Liability"
	RootTypeAsset     = "Asset"
	RootTypeExpense   = "Expense"
	RootTypeIncome    = "Income"
)

// Kinds of taxes and charges templates
const (
	TemplateKindSales    = "Sales"
	TemplateKindPurchase = "Purchase"
)

// Account is a ledger account owned by a company. Name is "<AccountName> - <Abbr>".
type Account struct {
	Name        string          `gorm:"type:varchar(255);primaryKey" json:"name"`
	AccountName string          `gorm:"type:varchar(140);not null" json:"account_name"`
	Company     string          `gorm:"type:varchar(140);not null;index" json:"company"`
	RootType    string          `gorm:"type:varchar(20);not null" json:"root_type"`
	AccountType string          `gorm:"type:varchar(40)" json:"account_type"`
	TaxRate     decimal.Decimal `gorm:"type:decimal(10,4);not null;default:0" json:"tax_rate"`
	CreatedAt   time.Time       `json:"created_at"`
}

// TaxCategory groups parties that share the same tax treatment.
type TaxCategory struct {
	Title        string    `gorm:"type:varchar(140);primaryKey" json:"title"`
	IsInterState bool      `gorm:"not null" json:"is_inter_state"`
	CreatedAt    time.Time `json:"created_at"`
}

// TaxesAndChargesTemplate is a sales or purchase tax template. Name is "<Title> - <Abbr>" and
// is unique per kind; a sales and a purchase template may share it.
type TaxesAndChargesTemplate struct {
	ID          uuid.UUID            `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name        string               `gorm:"type:varchar(255);not null;uniqueIndex:idx_tax_template_kind_name" json:"name"`
	Kind        string               `gorm:"type:varchar(10);not null;uniqueIndex:idx_tax_template_kind_name" json:"kind"` // Sales, Purchase
	Title       string               `gorm:"type:varchar(140);not null" json:"title"`
	Company     string               `gorm:"type:varchar(140);not null;index" json:"company"`
	IsDefault   bool                 `gorm:"not null" json:"is_default"`
	TaxCategory string               `gorm:"type:varchar(140)" json:"tax_category,omitempty"`
	Taxes       []TaxesAndChargesRow `gorm:"foreignKey:TemplateID;constraint:OnDelete:CASCADE" json:"taxes"`
	CreatedAt   time.Time            `json:"created_at"`
}

// TaxesAndChargesRow is one tax line of a TaxesAndChargesTemplate.
type TaxesAndChargesRow struct {
	ID                  uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"-"`
	TemplateID          uuid.UUID       `gorm:"type:uuid;not null;index" json:"-"`
	Idx                 int             `gorm:"not null" json:"idx"`
	ChargeType          string          `gorm:"type:varchar(40);not null" json:"charge_type"`
	AccountHead         string          `gorm:"type:varchar(255);not null" json:"account_head"`
	Description         string          `gorm:"type:text" json:"description"`
	Rate                decimal.Decimal `gorm:"type:decimal(10,4);not null" json:"rate"`
	IncludedInPrintRate bool            `gorm:"not null" json:"included_in_print_rate"`
	AddDeductTax        string          `gorm:"type:varchar(10)" json:"add_deduct_tax,omitempty"` // purchase only: Add, Deduct
}

// ItemTaxTemplate overrides tax rates per item. Name is "<Title> - <Abbr>".
type ItemTaxTemplate struct {
	Name      string               `gorm:"type:varchar(255);primaryKey" json:"name"`
	Title     string               `gorm:"type:varchar(140);not null" json:"title"`
	Company   string               `gorm:"type:varchar(140);not null;index" json:"company"`
	Taxes     []ItemTaxTemplateRow `gorm:"foreignKey:Parent;references:Name;constraint:OnDelete:CASCADE" json:"taxes"`
	CreatedAt time.Time            `json:"created_at"`
}

// ItemTaxTemplateRow sets the rate applied to one tax account.
type ItemTaxTemplateRow struct {
	ID      uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"-"`
	Parent  string          `gorm:"type:varchar(255);not null;index" json:"-"`
	Idx     int             `gorm:"not null" json:"idx"`
	TaxType string          `gorm:"type:varchar(255);not null" json:"tax_type"` // Account.Name
	TaxRate decimal.Decimal `gorm:"type:decimal(10,4);not null" json:"tax_rate"`
}
