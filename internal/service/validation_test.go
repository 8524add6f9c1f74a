package service

import (
	"testing"

	"github.com/burkedavid/golf-society-booking-sub000/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRequest() *ReservationRequest {
	return &ReservationRequest{
		MemberHandicap: 12.4,
		Guests: []GuestEntry{
			{Name: "Jim Nelson", Handicap: ptr(18.0)},
			{Name: "Sandy Cole"},
		},
		MemberMeals: MealSelection{MainCourse: "Roast Beef", Dessert: "Sticky Toffee Pudding"},
		GuestMeals: []MealSelection{
			{MainCourse: "Salmon", Dessert: "Cheesecake"},
		},
	}
}

func ptr(f float64) *float64 { return &f }

func TestValidateReservation_Valid(t *testing.T) {
	assert.NoError(t, validateReservation(validRequest()))
}

func TestValidateReservation_NoGuests(t *testing.T) {
	req := validRequest()
	req.Guests = nil
	req.GuestMeals = nil
	assert.NoError(t, validateReservation(req))
}

func TestValidateReservation_MemberHandicapOutOfRange(t *testing.T) {
	for _, h := range []float64{-1, 54.1, 100} {
		req := validRequest()
		req.MemberHandicap = h

		err := validateReservation(req)
		require.Error(t, err)

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "member_handicap", verr.Fields[0].Field)
	}
}

func TestValidateReservation_GuestHandicapOutOfRange(t *testing.T) {
	req := validRequest()
	req.Guests[1].Handicap = ptr(60.0)

	var verr *ValidationError
	require.ErrorAs(t, validateReservation(req), &verr)
	assert.Equal(t, "guests[1].handicap", verr.Fields[0].Field)
}

func TestValidateReservation_TooManyGuests(t *testing.T) {
	req := validRequest()
	req.Guests = []GuestEntry{
		{Name: "A"}, {Name: "B"}, {Name: "C"}, {Name: "D"},
	}

	var verr *ValidationError
	require.ErrorAs(t, validateReservation(req), &verr)
	assert.Equal(t, "guests", verr.Fields[0].Field)
}

func TestValidateReservation_BlankGuestName(t *testing.T) {
	req := validRequest()
	req.Guests[0].Name = "   "

	var verr *ValidationError
	require.ErrorAs(t, validateReservation(req), &verr)
	assert.Equal(t, "guests[0].name", verr.Fields[0].Field)
}

func TestValidateReservation_MissingMeals_CollectsAllFields(t *testing.T) {
	req := validRequest()
	req.MemberMeals = MealSelection{}
	req.MemberHandicap = 99

	var verr *ValidationError
	require.ErrorAs(t, validateReservation(req), &verr)
	assert.Len(t, verr.Fields, 3)

	fields := make([]string, len(verr.Fields))
	for i, f := range verr.Fields {
		fields[i] = f.Field
	}
	assert.Contains(t, fields, "member_handicap")
	assert.Contains(t, fields, "member_meals.main_course")
	assert.Contains(t, fields, "member_meals.dessert")
}

func TestValidateReservation_MoreMealsThanGuests(t *testing.T) {
	req := validRequest()
	req.GuestMeals = []MealSelection{
		{MainCourse: "Salmon"}, {MainCourse: "Salmon"}, {MainCourse: "Salmon"},
	}

	var verr *ValidationError
	require.ErrorAs(t, validateReservation(req), &verr)
	assert.Equal(t, "guest_meals", verr.Fields[0].Field)
}

func sampleMenu() []models.MenuItem {
	return []models.MenuItem{
		{Course: models.CourseMain, Name: "Roast Beef"},
		{Course: models.CourseMain, Name: "Salmon"},
		{Course: models.CourseDessert, Name: "Sticky Toffee Pudding"},
		{Course: models.CourseDessert, Name: "Cheesecake"},
	}
}

func TestValidateMenuSelections_OnMenu(t *testing.T) {
	assert.NoError(t, validateMenuSelections(validRequest(), sampleMenu()))
}

func TestValidateMenuSelections_EmptyCatalogAcceptsAnything(t *testing.T) {
	req := validRequest()
	req.MemberMeals.MainCourse = "Whatever The Chef Brings"
	assert.NoError(t, validateMenuSelections(req, nil))
}

func TestValidateMenuSelections_OffMenuMemberMeal(t *testing.T) {
	req := validRequest()
	req.MemberMeals.MainCourse = "Lobster Thermidor"

	var verr *ValidationError
	require.ErrorAs(t, validateMenuSelections(req, sampleMenu()), &verr)
	assert.Equal(t, "member_meals.main_course", verr.Fields[0].Field)
}

func TestValidateMenuSelections_WrongCourse(t *testing.T) {
	// A dessert name offered as a main course is off-menu
	req := validRequest()
	req.MemberMeals.MainCourse = "Cheesecake"

	var verr *ValidationError
	require.ErrorAs(t, validateMenuSelections(req, sampleMenu()), &verr)
	assert.Equal(t, "member_meals.main_course", verr.Fields[0].Field)
}

func TestValidateMenuSelections_BlankGuestEntriesAllowed(t *testing.T) {
	req := validRequest()
	req.GuestMeals = []MealSelection{{}, {}}
	assert.NoError(t, validateMenuSelections(req, sampleMenu()))
}

func TestValidateMenuSelections_OffMenuGuestMeal(t *testing.T) {
	req := validRequest()
	req.GuestMeals = []MealSelection{{MainCourse: "Pizza"}}

	var verr *ValidationError
	require.ErrorAs(t, validateMenuSelections(req, sampleMenu()), &verr)
	assert.Equal(t, "guest_meals[0].main_course", verr.Fields[0].Field)
}

func TestBuildGuests_DefaultsAndAlignment(t *testing.T) {
	req := &ReservationRequest{
		Guests: []GuestEntry{
			{Name: " Jim Nelson ", Handicap: ptr(18.0)},
			{Name: "Sandy Cole"},
			{Name: "Pat Riley"},
		},
		GuestMeals: []MealSelection{
			{MainCourse: "Salmon", Dessert: "Cheesecake"},
			{MainCourse: "  "},
		},
	}

	guests := buildGuests(req)
	require.Len(t, guests, 3)

	assert.Equal(t, "Jim Nelson", guests[0].Name)
	assert.Equal(t, 18.0, guests[0].Handicap)
	assert.Equal(t, "Salmon", guests[0].MainCourse)
	assert.Equal(t, "Cheesecake", guests[0].Dessert)
	assert.Equal(t, 0, guests[0].Position)

	// no handicap supplied → society default
	assert.Equal(t, DefaultHandicap, guests[1].Handicap)
	// blank meal entry → stored as not selected
	assert.Equal(t, models.MealNotSelected, guests[1].MainCourse)
	assert.Equal(t, models.MealNotSelected, guests[1].Dessert)

	// no meal entry at all for the third guest
	assert.Equal(t, models.MealNotSelected, guests[2].MainCourse)
	assert.Equal(t, 2, guests[2].Position)
}
