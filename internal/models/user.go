package models

import (
	"strings"
	"time"
)

// Role IDs are fixed and seeded at migration time.
const (
	RoleAdmin     uint = 1
	RoleModerator uint = 2
	RoleUser      uint = 3
)

// UserRole is a reference row in user_roles.
type UserRole struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:50;not null" json:"name"`
	Description string `gorm:"type:text;not null" json:"description"`
}

func (UserRole) TableName() string { return "user_roles" }

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Login        string    `gorm:"size:100;uniqueIndex;not null" json:"login"`
	PasswordHash string    `gorm:"size:200;not null" json:"-"`
	FirstName    string    `gorm:"size:100;not null" json:"first_name"`
	LastName     string    `gorm:"size:100;not null" json:"last_name"`
	MiddleName   string    `gorm:"size:100" json:"middle_name,omitempty"`
	Email        string    `gorm:"size:200" json:"email,omitempty"`
	CreatedAt    time.Time `json:"created_at"`

	RoleID uint      `gorm:"not null" json:"role_id"`
	Role   *UserRole `gorm:"foreignKey:RoleID" json:"role,omitempty"`

	Adoptions []Adoption `gorm:"foreignKey:UserID" json:"-"`
}

// FullName renders "Last First Middle" with the middle name optional.
func (u *User) FullName() string {
	return strings.TrimSpace(u.LastName + " " + u.FirstName + " " + u.MiddleName)
}

func (u *User) IsAdmin() bool     { return u.RoleID == RoleAdmin }
func (u *User) IsModerator() bool { return u.RoleID == RoleModerator }
