package models

import (
	"time"

	"gorm.io/gorm"
)

// User is an account that can author posts and comments and follow others.
type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Username     string `gorm:"column:username;uniqueIndex;not null" json:"username"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}
