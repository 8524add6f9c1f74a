package service

import (
	"fmt"
	"strings"

	"github.com/burkedavid/golf-society-booking-sub000/internal/models"
)

const (
	MaxGuests       = 3
	MinHandicap     = 0.0
	MaxHandicap     = 54.0
	DefaultHandicap = 28.0
)

// FieldError points the caller at the exact input that failed.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries the full field-level detail list for a rejected
// request. All structural checks run before any write, so a single
// response reports every problem at once.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Field + ": " + f.Message
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

func (e *ValidationError) add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

func validHandicap(h float64) bool {
	return h >= MinHandicap && h <= MaxHandicap
}

// validateReservation checks the structural rules of a booking request:
// handicap ranges, guest count, required meal fields, and index alignment
// between guests and guest meals.
func validateReservation(req *ReservationRequest) error {
	verr := &ValidationError{}

	if !validHandicap(req.MemberHandicap) {
		verr.add("member_handicap", fmt.Sprintf("must be between %g and %g", MinHandicap, MaxHandicap))
	}

	if len(req.Guests) > MaxGuests {
		verr.add("guests", fmt.Sprintf("at most %d guests per booking", MaxGuests))
	}
	for i, g := range req.Guests {
		if strings.TrimSpace(g.Name) == "" {
			verr.add(fmt.Sprintf("guests[%d].name", i), "guest name is required")
		}
		if g.Handicap != nil && !validHandicap(*g.Handicap) {
			verr.add(fmt.Sprintf("guests[%d].handicap", i), fmt.Sprintf("must be between %g and %g", MinHandicap, MaxHandicap))
		}
	}

	if strings.TrimSpace(req.MemberMeals.MainCourse) == "" {
		verr.add("member_meals.main_course", "main course selection is required")
	}
	if strings.TrimSpace(req.MemberMeals.Dessert) == "" {
		verr.add("member_meals.dessert", "dessert selection is required")
	}

	if len(req.GuestMeals) > len(req.Guests) {
		verr.add("guest_meals", "more meal entries than guests")
	}

	return verr.orNil()
}

// validateMenuSelections cross-checks meal choices against the outing's
// live catalog. Outings with no catalog configured accept free-form
// selections. Blank guest entries are allowed; they are stored as
// "Not selected".
func validateMenuSelections(req *ReservationRequest, menu []models.MenuItem) error {
	if len(menu) == 0 {
		return nil
	}

	mains := map[string]bool{}
	desserts := map[string]bool{}
	for _, item := range menu {
		switch item.Course {
		case models.CourseMain:
			mains[item.Name] = true
		case models.CourseDessert:
			desserts[item.Name] = true
		}
	}

	verr := &ValidationError{}
	if !mains[req.MemberMeals.MainCourse] {
		verr.add("member_meals.main_course", "not on the menu for this outing")
	}
	if !desserts[req.MemberMeals.Dessert] {
		verr.add("member_meals.dessert", "not on the menu for this outing")
	}
	for i, m := range req.GuestMeals {
		if m.MainCourse != "" && !mains[m.MainCourse] {
			verr.add(fmt.Sprintf("guest_meals[%d].main_course", i), "not on the menu for this outing")
		}
		if m.Dessert != "" && !desserts[m.Dessert] {
			verr.add(fmt.Sprintf("guest_meals[%d].dessert", i), "not on the menu for this outing")
		}
	}
	return verr.orNil()
}
