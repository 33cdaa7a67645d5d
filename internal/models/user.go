package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User belongs to exactly one company; email is unique inside that company.
type User struct {
	BaseModel
	CompanyID    uint       `json:"company_id" gorm:"not null;index;uniqueIndex:uq_company_user_email"`
	Email        string     `json:"email" gorm:"not null;size:120;uniqueIndex:uq_company_user_email"`
	Name         string     `json:"name" gorm:"not null;size:80;default:'User'"`
	Role         string     `json:"role" gorm:"not null;size:20;default:'staff';index"`
	PasswordHash string     `json:"-" gorm:"not null;size:255"`
	LastLoginAt  *time.Time `json:"last_login_at"`

	Company *Company `json:"company,omitempty" gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE"`
}

// TableName table name
func (u *User) TableName() string {
	return "users"
}

// User role constants
const (
	UserRoleStaff      = "staff"
	UserRoleAdmin      = "admin"
	UserRoleAccountant = "accountant"
)

// SetPassword hashes and stores the password.
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

// CheckPassword verifies a candidate password.
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}

// IsAdmin reports whether the user manages their company.
func (u *User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}
