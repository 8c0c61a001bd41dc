package database

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a user account in the system
type User struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email" gorm:"uniqueIndex"`
	Phone        string    `json:"phone" gorm:"uniqueIndex"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role" gorm:"default:'user'"`
	ProfilePhoto *string   `json:"profile_photo"`
	CreatedAt    time.Time `json:"created_at" gorm:"default:now()"`
}

func (u *User) TableName() string {
	return "users"
}

// LoginAttempt is one row per login attempt, successful or not. Rows are
// append-only; pruning old rows is an operational concern.
type LoginAttempt struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	Email       string    `json:"email" gorm:"index"`
	IPAddress   string    `json:"ip_address"`
	Success     bool      `json:"success"`
	AttemptedAt time.Time `json:"attempted_at" gorm:"default:now()"`
}

func (a *LoginAttempt) TableName() string {
	return "login_attempts"
}
