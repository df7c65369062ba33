package model

import (
	"time"

	"github.com/google/uuid"
)

// DocTypeOmanVATSetting is the document type name used for permissions and audit entries.
const DocTypeOmanVATSetting = "OMAN VAT Setting"

// Parent fields of OmanVATAccount rows
const (
	ParentFieldSalesAccounts    = "oman_vat_sales_accounts"
	ParentFieldPurchaseAccounts = "oman_vat_purchase_accounts"
)

// OmanVATSetting maps a company's sales and purchase VAT accounts to item tax templates.
// There is at most one per company; the company name is its primary key.
type OmanVATSetting struct {
	Company          string           `gorm:"type:varchar(140);primaryKey" json:"company"`
	SalesAccounts    []OmanVATAccount `gorm:"-" json:"oman_vat_sales_accounts"`
	PurchaseAccounts []OmanVATAccount `gorm:"-" json:"oman_vat_purchase_accounts"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// Rows returns both account tables as child rows, sales first, with Parent, ParentField and Idx set.
func (s *OmanVATSetting) Rows() []OmanVATAccount {
	rows := make([]OmanVATAccount, 0, len(s.SalesAccounts)+len(s.PurchaseAccounts))
	for i, r := range s.SalesAccounts {
		r.Parent, r.ParentField, r.Idx = s.Company, ParentFieldSalesAccounts, i+1
		rows = append(rows, r)
	}
	for i, r := range s.PurchaseAccounts {
		r.Parent, r.ParentField, r.Idx = s.Company, ParentFieldPurchaseAccounts, i+1
		rows = append(rows, r)
	}
	return rows
}

// SetRows distributes child rows ordered by Idx back into the two account tables. A table
// without rows is left empty, not nil.
func (s *OmanVATSetting) SetRows(rows []OmanVATAccount) {
	s.SalesAccounts = make([]OmanVATAccount, 0, len(rows))
	s.PurchaseAccounts = make([]OmanVATAccount, 0)
	for _, r := range rows {
		switch r.ParentField {
		case ParentFieldSalesAccounts:
			s.SalesAccounts = append(s.SalesAccounts, r)
		case ParentFieldPurchaseAccounts:
			s.PurchaseAccounts = append(s.PurchaseAccounts, r)
		}
	}
}

// OmanVATAccount is one row of either account table of an OmanVATSetting.
type OmanVATAccount struct {
	ID              uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"-"`
	Parent          string    `gorm:"type:varchar(140);not null;index" json:"-"` // OmanVATSetting.Company
	ParentField     string    `gorm:"type:varchar(40);not null;index" json:"-"`
	Idx             int       `gorm:"not null" json:"idx"` // 1-based position within ParentField
	Title           string    `gorm:"type:varchar(140);not null" json:"title"`
	ItemTaxTemplate string    `gorm:"type:varchar(255);not null" json:"item_tax_template"`
	Account         string    `gorm:"type:varchar(255);not null" json:"account"`
}

// TableName keeps both account tables in a single child table.
func (OmanVATAccount) TableName() string {
	return "oman_vat_accounts"
}
