package models

import "time"

type Member struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	MemberNumber string    `gorm:"uniqueIndex;size:16;not null" json:"member_number"`
	FullName     string    `gorm:"not null" json:"full_name"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Handicap     float64   `gorm:"not null;default:28" json:"handicap"`
	IsAdmin      bool      `gorm:"not null;default:false" json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Session struct {
	Token     string    `gorm:"primaryKey;size:64" json:"token"`
	MemberID  uint      `gorm:"not null;index" json:"member_id"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`

	Member *Member `gorm:"foreignKey:MemberID" json:"member,omitempty"`
}
