package models

import (
	"time"
)

// Role IDs seeded in the roles table.
const (
	RoleAuthor          = 1
	RoleReviewer        = 2
	RoleEditor          = 3
	RoleTechnicalEditor = 4
)

type User struct {
	UserID      int        `gorm:"primaryKey;column:user_id" json:"user_id"`
	Prefix      *string    `gorm:"column:prefix" json:"prefix,omitempty"`
	FirstName   string     `gorm:"column:first_name" json:"first_name"`
	LastName    string     `gorm:"column:last_name" json:"last_name"`
	Email       string     `gorm:"column:email;unique" json:"email"`
	Password    string     `gorm:"column:password" json:"-"`
	RoleID      int        `gorm:"column:role_id" json:"role_id"`
	Affiliation *string    `gorm:"column:affiliation" json:"affiliation,omitempty"`
	OrcidID     *string    `gorm:"column:orcid_id" json:"orcid_id,omitempty"`
	Tel         *string    `gorm:"column:tel" json:"tel,omitempty"`
	CreateAt    *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt    *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt    *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	Role Role `gorm:"foreignKey:RoleID" json:"role,omitempty"`
}

type Role struct {
	RoleID   int        `gorm:"primaryKey;column:role_id" json:"role_id"`
	Role     string     `gorm:"column:role" json:"role"`
	CreateAt *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

// TableName overrides
func (User) TableName() string {
	return "users"
}

func (Role) TableName() string {
	return "roles"
}

// FullName joins the name parts for notification templates.
func (u *User) FullName() string {
	if u.Prefix != nil && *u.Prefix != "" {
		return *u.Prefix + " " + u.FirstName + " " + u.LastName
	}
	return u.FirstName + " " + u.LastName
}
