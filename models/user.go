package models

import "time"

const (
	RoleAdmin    = "admin"
	RoleMerchant = "merchant"
)

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex;size:64;not null" json:"username"`
	Password  string    `gorm:"size:255;not null" json:"-"` // bcrypt hash, never returned
	Role      string    `gorm:"size:16;not null;default:merchant" json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleMerchant
}
