package models

import "time"

// Admin defines the operator account model based on the 'admins' table
type Admin struct {
	ID          string     `json:"id" db:"id"`
	Email       string     `json:"email" db:"email" example:"admin@kesher.org"`
	Password    string     `json:"-" db:"password"` // Hashed password (excluded from JSON)
	FullName    string     `json:"fullName" db:"full_name"`
	IsActive    bool       `json:"isActive" db:"is_active"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at"` // Timestamp of the last login (nullable)
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
}
