package models

import "time"

// Role is the access category of a user. Every operation in the API is
// gated on one of these three values.
type Role string

const (
	RolePatient Role = "patient"
	RoleDoctor  Role = "doctor"
	RoleAdmin   Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RolePatient, RoleDoctor, RoleAdmin:
		return true
	}
	return false
}

// User represents the users table
type User struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Email        string     `gorm:"uniqueIndex;not null;size:255" json:"email"`
	PasswordHash string     `gorm:"not null;size:255" json:"-"`
	Role         Role       `gorm:"not null;size:20;default:'patient'" json:"role"`
	FirstName    string     `gorm:"size:100;not null" json:"first_name"`
	LastName     string     `gorm:"size:100;not null" json:"last_name"`
	Phone        string     `gorm:"size:30" json:"phone"`
	BirthDate    *time.Time `json:"birth_date,omitempty"`
	RegisteredAt time.Time  `gorm:"autoCreateTime" json:"registered_at"`
	Active       bool       `gorm:"default:true" json:"active"`
}

// TableName specifies the table name for User model
func (User) TableName() string {
	return "users"
}

// FullName returns "LastName FirstName" for display and audit entries.
func (u *User) FullName() string {
	return u.LastName + " " + u.FirstName
}

// RefreshToken represents the refresh_tokens table
type RefreshToken struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	TokenHash string    `gorm:"not null;size:255;index" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
	Revoked   bool      `gorm:"default:false" json:"revoked"`
	User      User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName specifies the table name for RefreshToken model
func (RefreshToken) TableName() string {
	return "refresh_tokens"
}
