package models

import (
	"time"
)

// User is a registered account. Email is the login key but carries no unique
// constraint: duplicate registrations are allowed at the store layer, and
// lookups resolve to the earliest-created match.
type User struct {
	ID           string `gorm:"primaryKey"`
	Name         string `gorm:"not null"`
	Email        string `gorm:"index;not null"`
	PasswordHash string `gorm:"not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
