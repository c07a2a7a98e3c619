package user

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrNotFound      = errors.New("user not found")
	ErrEmailTaken    = errors.New("email already registered")
	ErrNotVerified   = errors.New("user not verified")
	ErrWrongPassword = errors.New("wrong password")
)

type Role string

const (
	RoleVendor     Role = "VENDOR"
	RoleReviewer   Role = "REVIEWER"
	RoleApprover   Role = "APPROVER"
	RoleVerifier   Role = "VERIFIER"
	RoleSuperAdmin Role = "SUPER_ADMIN"
	RoleVisitor    Role = "VISITOR"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleVendor, RoleReviewer, RoleApprover, RoleVerifier, RoleSuperAdmin, RoleVisitor:
		return true
	}
	return false
}

type User struct {
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// Public identifier (32-char lowercase hex)
	UserID       string `gorm:"column:user_id;type:char(32);not null;uniqueIndex:ux_users_user_id"`
	Email        string `gorm:"column:email;size:191;not null;uniqueIndex:ux_users_email"`
	PasswordHash string `gorm:"column:password_hash;size:191;not null"`
	Name         string `gorm:"column:name;size:191;not null"`
	// Company name, meaningful for VENDOR accounts
	VendorName string `gorm:"column:vendor_name;size:191"`
	// Signer title stamped into approved permits, meaningful for APPROVER accounts
	Position   string     `gorm:"column:position;size:191"`
	Role       Role       `gorm:"column:role;type:varchar(16);not null;default:'VENDOR';index"`
	Verified   bool       `gorm:"column:verified;not null;default:false"`
	VerifiedAt *time.Time `gorm:"column:verified_at"`

	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (User) TableName() string { return "users" }
