package models

import (
	"time"

	"gorm.io/datatypes"
)

type Outing struct {
	ID                   uint      `gorm:"primaryKey" json:"id"`
	Name                 string    `gorm:"not null" json:"name"`
	Venue                string    `gorm:"not null" json:"venue"`
	Date                 time.Time `gorm:"not null" json:"date"`
	Capacity             int       `gorm:"not null" json:"capacity"`
	MemberPrice          float64   `gorm:"not null" json:"member_price"`
	GuestPrice           float64   `gorm:"not null" json:"guest_price"`
	RegistrationDeadline time.Time `gorm:"not null" json:"registration_deadline"`
	Description          string    `json:"description,omitempty"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`

	MenuItems []MenuItem `gorm:"foreignKey:OutingID" json:"menu_items,omitempty"`
}

type MenuCourse string

const (
	CourseMain    MenuCourse = "main"
	CourseDessert MenuCourse = "dessert"
)

type MenuItem struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	OutingID    uint           `gorm:"not null;index" json:"outing_id"`
	Course      MenuCourse     `gorm:"type:varchar(16);not null" json:"course"`
	Name        string         `gorm:"not null" json:"name"`
	Description string         `json:"description,omitempty"`
	Allergens   datatypes.JSON `json:"allergens,omitempty"`
	Position    int            `gorm:"not null;default:0" json:"position"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}
