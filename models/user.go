package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleGuest = "guest"
	RoleHost  = "host"
)

type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name         string `gorm:"size:255" json:"name"`
	Email        string `gorm:"size:255;uniqueIndex" json:"email"`
	PasswordHash string `gorm:"size:255" json:"-"`
	Role         string `gorm:"size:16;default:guest" json:"role"`
}

func ValidRole(role string) bool {
	return role == RoleGuest || role == RoleHost
}
