package dto

import (
	"encoding/json"
	"time"

	"github.com/burkedavid/golf-society-booking-sub000/internal/models"
	"github.com/burkedavid/golf-society-booking-sub000/internal/service"
)

type ErrorResponse struct {
	Message string               `json:"message"`
	Fields  []service.FieldError `json:"fields,omitempty"`
}

type MealSelectionResponse struct {
	MainCourse string `json:"main_course"`
	Dessert    string `json:"dessert"`
}

type GuestResponse struct {
	Position   int     `json:"position"`
	Name       string  `json:"name"`
	Handicap   float64 `json:"handicap"`
	MainCourse string  `json:"main_course"`
	Dessert    string  `json:"dessert"`
}

type BookingResponse struct {
	ID              uint                  `json:"id"`
	OutingID        uint                  `json:"outing_id"`
	MemberID        uint                  `json:"member_id"`
	MemberHandicap  float64               `json:"member_handicap"`
	MemberMeals     MealSelectionResponse `json:"member_meals"`
	Guests          []GuestResponse       `json:"guests"`
	SpecialRequests string                `json:"special_requests,omitempty"`
	TotalCost       float64               `json:"total_cost"`
	Status          models.BookingStatus  `json:"status"`
	PaymentStatus   models.PaymentStatus  `json:"payment_status"`
	CreatedAt       time.Time             `json:"created_at"`
}

func ToBookingResponse(b *models.Booking) BookingResponse {
	guests := make([]GuestResponse, len(b.Guests))
	for i, g := range b.Guests {
		guests[i] = GuestResponse{
			Position:   g.Position,
			Name:       g.Name,
			Handicap:   g.Handicap,
			MainCourse: g.MainCourse,
			Dessert:    g.Dessert,
		}
	}

	return BookingResponse{
		ID:             b.ID,
		OutingID:       b.OutingID,
		MemberID:       b.MemberID,
		MemberHandicap: b.MemberHandicap,
		MemberMeals: MealSelectionResponse{
			MainCourse: b.MainCourse,
			Dessert:    b.Dessert,
		},
		Guests:          guests,
		SpecialRequests: b.SpecialRequests,
		TotalCost:       b.TotalCost,
		Status:          b.Status,
		PaymentStatus:   b.PaymentStatus,
		CreatedAt:       b.CreatedAt,
	}
}

type MenuItemResponse struct {
	ID          uint     `json:"id"`
	Course      string   `json:"course"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Allergens   []string `json:"allergens,omitempty"`
	Position    int      `json:"position"`
}

type OutingResponse struct {
	ID                   uint               `json:"id"`
	Name                 string             `json:"name"`
	Venue                string             `json:"venue"`
	Date                 time.Time          `json:"date"`
	Capacity             int                `json:"capacity"`
	MemberPrice          float64            `json:"member_price"`
	GuestPrice           float64            `json:"guest_price"`
	RegistrationDeadline time.Time          `json:"registration_deadline"`
	Description          string             `json:"description,omitempty"`
	MenuItems            []MenuItemResponse `json:"menu_items"`
	SpacesAvailable      int                `json:"spaces_available"`
	CreatedAt            time.Time          `json:"created_at"`
}

func ToOutingResponse(o *models.Outing, spacesAvailable int) OutingResponse {
	items := make([]MenuItemResponse, len(o.MenuItems))
	for i, m := range o.MenuItems {
		var allergens []string
		if len(m.Allergens) > 0 {
			_ = json.Unmarshal(m.Allergens, &allergens)
		}
		items[i] = MenuItemResponse{
			ID:          m.ID,
			Course:      string(m.Course),
			Name:        m.Name,
			Description: m.Description,
			Allergens:   allergens,
			Position:    m.Position,
		}
	}

	return OutingResponse{
		ID:                   o.ID,
		Name:                 o.Name,
		Venue:                o.Venue,
		Date:                 o.Date,
		Capacity:             o.Capacity,
		MemberPrice:          o.MemberPrice,
		GuestPrice:           o.GuestPrice,
		RegistrationDeadline: o.RegistrationDeadline,
		Description:          o.Description,
		MenuItems:            items,
		SpacesAvailable:      spacesAvailable,
		CreatedAt:            o.CreatedAt,
	}
}

type MemberResponse struct {
	ID           uint      `json:"id"`
	MemberNumber string    `json:"member_number"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email"`
	Handicap     float64   `json:"handicap"`
	IsAdmin      bool      `json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
}

func ToMemberResponse(m *models.Member) MemberResponse {
	return MemberResponse{
		ID:           m.ID,
		MemberNumber: m.MemberNumber,
		FullName:     m.FullName,
		Email:        m.Email,
		Handicap:     m.Handicap,
		IsAdmin:      m.IsAdmin,
		CreatedAt:    m.CreatedAt,
	}
}

type LoginResponse struct {
	Token     string         `json:"token"`
	ExpiresAt time.Time      `json:"expires_at"`
	Member    MemberResponse `json:"member"`
}
