package dto

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/burkedavid/golf-society-booking-sub000/internal/models"
	"github.com/burkedavid/golf-society-booking-sub000/internal/service"
	"gorm.io/datatypes"
)

type RegisterRequest struct {
	FullName string  `json:"full_name"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Handicap float64 `json:"handicap"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type MealSelectionRequest struct {
	MainCourse string `json:"main_course"`
	Dessert    string `json:"dessert"`
}

// CreateBookingRequest mirrors the wire contract the society's frontend
// already speaks. total_cost is accepted for compatibility but the server
// always recomputes the price from the outing record.
type CreateBookingRequest struct {
	GuestCount      int                    `json:"guest_count"`
	GuestNames      []string               `json:"guest_names"`
	GuestHandicaps  []float64              `json:"guest_handicaps"`
	MemberHandicap  *float64               `json:"member_handicap"`
	MemberMeals     MealSelectionRequest   `json:"member_meals"`
	GuestMeals      []MealSelectionRequest `json:"guest_meals"`
	SpecialRequests string                 `json:"special_requests"`
	TotalCost       float64                `json:"total_cost"`
}

// ToReservationRequest converts the wire shape into the service input.
// Blank guest names are filtered out; handicaps stay aligned with their
// original index, and absent handicaps fall back to the society default.
func (r *CreateBookingRequest) ToReservationRequest(memberHandicap float64) *service.ReservationRequest {
	if r.MemberHandicap != nil {
		memberHandicap = *r.MemberHandicap
	}

	var guests []service.GuestEntry
	var guestMeals []service.MealSelection
	for i, name := range r.GuestNames {
		if strings.TrimSpace(name) == "" {
			continue
		}
		entry := service.GuestEntry{Name: name}
		if i < len(r.GuestHandicaps) {
			h := r.GuestHandicaps[i]
			entry.Handicap = &h
		}
		guests = append(guests, entry)

		if i < len(r.GuestMeals) {
			guestMeals = append(guestMeals, service.MealSelection{
				MainCourse: r.GuestMeals[i].MainCourse,
				Dessert:    r.GuestMeals[i].Dessert,
			})
		}
	}

	return &service.ReservationRequest{
		MemberHandicap: memberHandicap,
		Guests:         guests,
		MemberMeals: service.MealSelection{
			MainCourse: r.MemberMeals.MainCourse,
			Dessert:    r.MemberMeals.Dessert,
		},
		GuestMeals:      guestMeals,
		SpecialRequests: r.SpecialRequests,
	}
}

type GuestMealPatchRequest struct {
	Position   int    `json:"position"`
	MainCourse string `json:"main_course"`
	Dessert    string `json:"dessert"`
}

type UpdateBookingRequest struct {
	MainCourse      *string                 `json:"main_course"`
	Dessert         *string                 `json:"dessert"`
	SpecialRequests *string                 `json:"special_requests"`
	Status          *string                 `json:"status"`
	PaymentStatus   *string                 `json:"payment_status"`
	GuestMeals      []GuestMealPatchRequest `json:"guest_meals"`
}

func (r *UpdateBookingRequest) ToPatch() *service.BookingPatch {
	patch := &service.BookingPatch{
		MainCourse:      r.MainCourse,
		Dessert:         r.Dessert,
		SpecialRequests: r.SpecialRequests,
	}
	if r.Status != nil {
		s := models.BookingStatus(*r.Status)
		patch.Status = &s
	}
	if r.PaymentStatus != nil {
		p := models.PaymentStatus(*r.PaymentStatus)
		patch.PaymentStatus = &p
	}
	for _, g := range r.GuestMeals {
		patch.GuestMeals = append(patch.GuestMeals, service.GuestMealCorrection{
			Position:   g.Position,
			MainCourse: g.MainCourse,
			Dessert:    g.Dessert,
		})
	}
	return patch
}

type CreateOutingRequest struct {
	Name                 string            `json:"name"`
	Venue                string            `json:"venue"`
	Date                 time.Time         `json:"date"`
	Capacity             int               `json:"capacity"`
	MemberPrice          float64           `json:"member_price"`
	GuestPrice           float64           `json:"guest_price"`
	RegistrationDeadline time.Time         `json:"registration_deadline"`
	Description          string            `json:"description"`
	MenuItems            []MenuItemRequest `json:"menu_items"`
}

func (r *CreateOutingRequest) ToModel() *models.Outing {
	return &models.Outing{
		Name:                 r.Name,
		Venue:                r.Venue,
		Date:                 r.Date,
		Capacity:             r.Capacity,
		MemberPrice:          r.MemberPrice,
		GuestPrice:           r.GuestPrice,
		RegistrationDeadline: r.RegistrationDeadline,
		Description:          r.Description,
		MenuItems:            toMenuItems(r.MenuItems),
	}
}

type MenuItemRequest struct {
	Course      string   `json:"course"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Allergens   []string `json:"allergens"`
	Position    int      `json:"position"`
}

type ReplaceMenuRequest struct {
	Items []MenuItemRequest `json:"items"`
}

func toMenuItems(reqs []MenuItemRequest) []models.MenuItem {
	items := make([]models.MenuItem, len(reqs))
	for i, m := range reqs {
		var allergens datatypes.JSON
		if len(m.Allergens) > 0 {
			b, _ := json.Marshal(m.Allergens)
			allergens = datatypes.JSON(b)
		}
		items[i] = models.MenuItem{
			Course:      models.MenuCourse(m.Course),
			Name:        m.Name,
			Description: m.Description,
			Allergens:   allergens,
			Position:    m.Position,
		}
	}
	return items
}

func (r *ReplaceMenuRequest) ToModels() []models.MenuItem {
	return toMenuItems(r.Items)
}
