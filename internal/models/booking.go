package models

import "time"

type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

// MealNotSelected is stored for guest meal slots the member left blank.
const MealNotSelected = "Not selected"

type Booking struct {
	ID              uint          `gorm:"primaryKey" json:"id"`
	OutingID        uint          `gorm:"not null;index" json:"outing_id"`
	MemberID        uint          `gorm:"not null;index" json:"member_id"`
	MemberHandicap  float64       `gorm:"not null" json:"member_handicap"`
	MainCourse      string        `gorm:"not null" json:"main_course"`
	Dessert         string        `gorm:"not null" json:"dessert"`
	SpecialRequests string        `json:"special_requests,omitempty"`
	TotalCost       float64       `gorm:"not null" json:"total_cost"`
	Status          BookingStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	PaymentStatus   PaymentStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"payment_status"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`

	Guests []Guest `gorm:"foreignKey:BookingID" json:"guests"`
	Outing *Outing `gorm:"foreignKey:OutingID" json:"outing,omitempty"`
	Member *Member `gorm:"foreignKey:MemberID" json:"member,omitempty"`
}

// Guest is a named non-member attendee attached to a booking. Guests have
// no account of their own; Position keeps the original submission order.
type Guest struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	BookingID  uint      `gorm:"not null;index" json:"booking_id"`
	Position   int       `gorm:"not null" json:"position"`
	Name       string    `gorm:"not null" json:"name"`
	Handicap   float64   `gorm:"not null;default:28" json:"handicap"`
	MainCourse string    `gorm:"not null;default:'Not selected'" json:"main_course"`
	Dessert    string    `gorm:"not null;default:'Not selected'" json:"dessert"`
	CreatedAt  time.Time `json:"created_at"`
}

// PartySize is the number of people this booking claims against the
// outing's capacity: the member plus every guest.
func (b *Booking) PartySize() int {
	return 1 + len(b.Guests)
}
