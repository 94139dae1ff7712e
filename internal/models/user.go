package models

import "time"

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	FullName     string    `gorm:"size:255;not null" json:"full_name"`
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Grade        string    `gorm:"size:10;not null;default:'11'" json:"grade"`
	Phone        string    `gorm:"size:20" json:"phone,omitempty"`
	Role         string    `gorm:"size:10;not null;default:'student'" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)
