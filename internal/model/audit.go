package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	ActionCreateCompany        = "CREATE_COMPANY"
	ActionUpdateCompany        = "UPDATE_COMPANY"
	ActionDeleteCompany        = "DELETE_COMPANY"
	ActionCreateVATSetting     = "CREATE_OMAN_VAT_SETTING"
	ActionDeleteVATSetting     = "DELETE_OMAN_VAT_SETTING"
	ActionRegisterCustomFields = "REGISTER_CUSTOM_FIELDS"
	ActionGrantPermissions     = "GRANT_PERMISSIONS"
	ActionEnableReport         = "ENABLE_REPORT"
	ActionImportTaxTemplates   = "IMPORT_TAX_TEMPLATES"
)

// AuditLog tracks what setup side effect happened to which entity and when
type AuditLog struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Actor      string    `gorm:"type:varchar(140);index" json:"actor"` // user id from the token, empty for hooks and CLI
	Action     string    `gorm:"type:varchar(50);not null;index" json:"action"`
	EntityType string    `gorm:"type:varchar(140);index" json:"entity_type"`
	EntityID   string    `gorm:"type:varchar(255);index" json:"entity_id"`
	Details    string    `gorm:"type:jsonb" json:"details"` // Serialized JSON payload of the action
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
}
