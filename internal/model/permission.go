package model

import (
	"github.com/google/uuid"
)

// Role names used by the Oman VAT permission grants
const (
	RoleAll             = "All"
	RoleAccountsManager = "Accounts Manager"
	RoleAccountsUser    = "Accounts User"
	RoleSystemManager   = "System Manager"
)

// Permission rights that can be toggled on a DocPerm
const (
	RightRead   = "read"
	RightWrite  = "write"
	RightCreate = "create"
	RightDelete = "delete"
)

// DocPerm grants a role rights on a document type at a permission level.
type DocPerm struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Parent    string    `gorm:"type:varchar(140);not null;uniqueIndex:idx_docperm_parent_role_level" json:"parent"` // document type
	Role      string    `gorm:"type:varchar(140);not null;uniqueIndex:idx_docperm_parent_role_level;index" json:"role"`
	PermLevel int       `gorm:"not null;default:0;uniqueIndex:idx_docperm_parent_role_level" json:"permlevel"`
	Read      bool      `gorm:"column:can_read;not null" json:"read"`
	Write     bool      `gorm:"column:can_write;not null" json:"write"`
	Create    bool      `gorm:"column:can_create;not null" json:"create"`
	Delete    bool      `gorm:"column:can_delete;not null" json:"delete"`
}

// RightColumn maps a right to its DocPerm column, or "" for an unknown right.
func RightColumn(right string) string {
	switch right {
	case RightRead, RightWrite, RightCreate, RightDelete:
		return "can_" + right
	}
	return ""
}

// Has reports whether the named right is granted.
func (p DocPerm) Has(right string) bool {
	switch right {
	case RightRead:
		return p.Read
	case RightWrite:
		return p.Write
	case RightCreate:
		return p.Create
	case RightDelete:
		return p.Delete
	}
	return false
}
