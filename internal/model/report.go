package model

import "time"

// ReportOmanVAT is the VAT return report shipped with the localization.
const ReportOmanVAT = "OMAN VAT"

// Report is a pre-built report that can be switched on or off per site.
type Report struct {
	Name       string    `gorm:"type:varchar(140);primaryKey" json:"name"`
	RefDocType string    `gorm:"type:varchar(140)" json:"ref_doctype"`
	Disabled   bool      `gorm:"not null" json:"disabled"`
	UpdatedAt  time.Time `json:"updated_at"`
}
