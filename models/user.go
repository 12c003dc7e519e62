package models

import "time"

// Role values stored in users.role.
const (
	RoleAuthor   = "author"
	RoleReviewer = "reviewer"
	RoleEditor   = "editor"
	RoleAdmin    = "admin"
)

type User struct {
	ID           uint       `gorm:"primaryKey;column:id" json:"id"`
	Name         string     `gorm:"column:name" json:"name"`
	Email        string     `gorm:"column:email;unique" json:"email"`
	PasswordHash string     `gorm:"column:password_hash" json:"-"`
	Affiliation  *string    `gorm:"column:affiliation" json:"affiliation,omitempty"`
	Department   *string    `gorm:"column:department" json:"department,omitempty"`
	Role         string     `gorm:"column:role" json:"role"`
	CreateAt     time.Time  `gorm:"column:create_at;autoCreateTime" json:"created_at"`
	UpdateAt     *time.Time `gorm:"column:update_at" json:"-"`
}

func (User) TableName() string { return "users" }

// ValidRole reports whether the given role is one of the accepted values.
func ValidRole(role string) bool {
	switch role {
	case RoleAuthor, RoleReviewer, RoleEditor, RoleAdmin:
		return true
	}
	return false
}
