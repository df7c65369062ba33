package model

import (
	"time"

	"github.com/google/uuid"
)

// CustomField adds an attribute to an existing document type without changing its base schema.
type CustomField struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	DocType     string    `gorm:"column:dt;type:varchar(140);not null;uniqueIndex:idx_custom_field_dt_fieldname" json:"dt"`
	Fieldname   string    `gorm:"type:varchar(140);not null;uniqueIndex:idx_custom_field_dt_fieldname" json:"fieldname"`
	Label       string    `gorm:"type:varchar(255);not null" json:"label"`
	Fieldtype   string    `gorm:"type:varchar(40);not null" json:"fieldtype"`
	FetchFrom   string    `gorm:"type:varchar(255)" json:"fetch_from,omitempty"`
	InsertAfter string    `gorm:"type:varchar(140)" json:"insert_after,omitempty"`
	PrintHide   bool      `gorm:"not null" json:"print_hide"`
	ReadOnly    bool      `gorm:"not null" json:"read_only"`
	NoCopy      bool      `gorm:"not null" json:"no_copy"`
	Hidden      bool      `gorm:"not null" json:"hidden"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
