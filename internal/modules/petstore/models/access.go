package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Roles assignable through the permission editor. RoleAdmin additionally gates
// the approve/reject action on transactions.
const (
	RoleAdmin      = "admin"
	RoleManager    = "manager"
	RoleSupervisor = "supervisor"
	RoleSeller     = "seller"
)

// AssignableRoles is the fixed list the editor offers.
var AssignableRoles = []string{RoleAdmin, RoleManager, RoleSupervisor, RoleSeller}

// Permission tags a user can be granted. The list is closed; anything else is a
// validation error.
const (
	PermSales     = "sales"
	PermPurchases = "purchases"
	PermReports   = "reports"
	PermInventory = "inventory"
)

var AssignablePermissions = []string{PermSales, PermPurchases, PermReports, PermInventory}

// ValidRole reports whether role is one of the assignable roles.
func ValidRole(role string) bool {
	for _, r := range AssignableRoles {
		if r == role {
			return true
		}
	}
	return false
}

// ValidPermission reports whether tag is one of the assignable permission tags.
func ValidPermission(tag string) bool {
	for _, p := range AssignablePermissions {
		if p == tag {
			return true
		}
	}
	return false
}

// UserAccess maps a user identity to a role and a set of permission tags.
type UserAccess struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Email       string         `gorm:"type:varchar(255);unique;not null" json:"email"`
	Role        string         `gorm:"type:varchar(20);not null" json:"role"`
	Permissions pq.StringArray `gorm:"type:text[]" json:"permissions"`
	LastLoginAt *time.Time     `json:"last_login_at,omitempty"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name
func (UserAccess) TableName() string {
	return "user_access"
}

// BeforeCreate sets UUID before creating
func (a *UserAccess) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// HasPermission reports whether the assignment carries the given tag.
func (a *UserAccess) HasPermission(tag string) bool {
	for _, p := range a.Permissions {
		if p == tag {
			return true
		}
	}
	return false
}
