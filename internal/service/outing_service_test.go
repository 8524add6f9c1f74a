package service

import (
	"context"
	"testing"
	"time"

	"github.com/burkedavid/golf-society-booking-sub000/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// --- Mock OutingRepository ---

type mockOutingRepo struct {
	createFn      func(ctx context.Context, outing *models.Outing) error
	findByIDFn    func(ctx context.Context, id uint) (*models.Outing, error)
	findAllFn     func(ctx context.Context) ([]models.Outing, error)
	updateFn      func(ctx context.Context, outing *models.Outing) error
	deleteFn      func(ctx context.Context, id uint) error
	replaceMenuFn func(ctx context.Context, outingID uint, items []models.MenuItem) error
	findMenuFn    func(ctx context.Context, outingID uint) ([]models.MenuItem, error)
}

func (m *mockOutingRepo) Create(ctx context.Context, outing *models.Outing) error {
	return m.createFn(ctx, outing)
}
func (m *mockOutingRepo) FindByID(ctx context.Context, id uint) (*models.Outing, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockOutingRepo) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Outing, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockOutingRepo) FindAll(ctx context.Context) ([]models.Outing, error) {
	return m.findAllFn(ctx)
}
func (m *mockOutingRepo) Update(ctx context.Context, outing *models.Outing) error {
	return m.updateFn(ctx, outing)
}
func (m *mockOutingRepo) Delete(ctx context.Context, id uint) error {
	return m.deleteFn(ctx, id)
}
func (m *mockOutingRepo) ReplaceMenu(ctx context.Context, outingID uint, items []models.MenuItem) error {
	return m.replaceMenuFn(ctx, outingID, items)
}
func (m *mockOutingRepo) FindMenu(ctx context.Context, outingID uint) ([]models.MenuItem, error) {
	if m.findMenuFn != nil {
		return m.findMenuFn(ctx, outingID)
	}
	return nil, nil
}

// --- Mock BookingRepository ---

type mockBookingRepo struct {
	findByOutingIDFn func(ctx context.Context, outingID uint, status *models.BookingStatus) ([]models.Booking, error)
	countClaimedFn   func(ctx context.Context, tx *gorm.DB, outingID uint) (int64, error)
}

func (m *mockBookingRepo) Create(ctx context.Context, tx *gorm.DB, b *models.Booking) error {
	return nil
}
func (m *mockBookingRepo) FindByID(ctx context.Context, id uint) (*models.Booking, error) {
	return nil, gorm.ErrRecordNotFound
}
func (m *mockBookingRepo) FindByOutingID(ctx context.Context, outingID uint, status *models.BookingStatus) ([]models.Booking, error) {
	return m.findByOutingIDFn(ctx, outingID, status)
}
func (m *mockBookingRepo) FindByMemberID(ctx context.Context, memberID uint) ([]models.Booking, error) {
	return nil, nil
}
func (m *mockBookingRepo) FindActiveByMemberAndOuting(ctx context.Context, tx *gorm.DB, memberID, outingID uint) (*models.Booking, error) {
	return nil, gorm.ErrRecordNotFound
}
func (m *mockBookingRepo) CountClaimedSpaces(ctx context.Context, tx *gorm.DB, outingID uint) (int64, error) {
	if m.countClaimedFn != nil {
		return m.countClaimedFn(ctx, tx, outingID)
	}
	return 0, nil
}
func (m *mockBookingRepo) Update(ctx context.Context, tx *gorm.DB, booking *models.Booking) error {
	return nil
}
func (m *mockBookingRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, bookingID uint, status models.BookingStatus) error {
	return nil
}
func (m *mockBookingRepo) ReplaceGuests(ctx context.Context, tx *gorm.DB, bookingID uint, guests []models.Guest) error {
	return nil
}
func (m *mockBookingRepo) GetDB() *gorm.DB { return nil }

// --- Tests ---

func sampleOuting() *models.Outing {
	return &models.Outing{
		Name:                 "Spring Medal at Gullane",
		Venue:                "Gullane No. 1",
		Date:                 time.Date(2026, 4, 18, 9, 0, 0, 0, time.UTC),
		Capacity:             44,
		MemberPrice:          90,
		GuestPrice:           105,
		RegistrationDeadline: time.Date(2026, 4, 10, 18, 0, 0, 0, time.UTC),
	}
}

func TestCreateOuting_Success(t *testing.T) {
	repo := &mockOutingRepo{
		createFn: func(ctx context.Context, outing *models.Outing) error {
			outing.ID = 1
			return nil
		},
	}

	svc := NewOutingService(repo, &mockBookingRepo{}, nil) // nil publisher = skip RabbitMQ
	outing := sampleOuting()

	err := svc.CreateOuting(context.Background(), outing)

	assert.NoError(t, err)
	assert.Equal(t, uint(1), outing.ID)
}

func TestCreateOuting_RejectsZeroCapacity(t *testing.T) {
	svc := NewOutingService(&mockOutingRepo{}, &mockBookingRepo{}, nil)
	outing := sampleOuting()
	outing.Capacity = 0

	var verr *ValidationError
	require.ErrorAs(t, svc.CreateOuting(context.Background(), outing), &verr)
	assert.Equal(t, "capacity", verr.Fields[0].Field)
}

func TestCreateOuting_RejectsDeadlineAfterDate(t *testing.T) {
	svc := NewOutingService(&mockOutingRepo{}, &mockBookingRepo{}, nil)
	outing := sampleOuting()
	outing.RegistrationDeadline = outing.Date.Add(24 * time.Hour)

	var verr *ValidationError
	require.ErrorAs(t, svc.CreateOuting(context.Background(), outing), &verr)
	assert.Equal(t, "registration_deadline", verr.Fields[0].Field)
}

func TestCreateOuting_RejectsNegativePrices(t *testing.T) {
	svc := NewOutingService(&mockOutingRepo{}, &mockBookingRepo{}, nil)
	outing := sampleOuting()
	outing.MemberPrice = -1
	outing.GuestPrice = -1

	var verr *ValidationError
	require.ErrorAs(t, svc.CreateOuting(context.Background(), outing), &verr)
	assert.Len(t, verr.Fields, 2)
}

func TestGetOuting_NotFound(t *testing.T) {
	repo := &mockOutingRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.Outing, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}

	svc := NewOutingService(repo, &mockBookingRepo{}, nil)
	outing, err := svc.GetOuting(context.Background(), 999)

	assert.ErrorIs(t, err, ErrOutingNotFound)
	assert.Nil(t, outing)
}

func TestReplaceMenu_RejectsUnknownCourse(t *testing.T) {
	repo := &mockOutingRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.Outing, error) {
			return sampleOuting(), nil
		},
	}

	svc := NewOutingService(repo, &mockBookingRepo{}, nil)
	err := svc.ReplaceMenu(context.Background(), 1, []models.MenuItem{
		{Course: "starter", Name: "Soup"},
	})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "items[0].course", verr.Fields[0].Field)
}

func TestSummary_Aggregation(t *testing.T) {
	outing := sampleOuting()
	outing.ID = 1

	outingRepo := &mockOutingRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.Outing, error) {
			return outing, nil
		},
	}
	bookingRepo := &mockBookingRepo{
		findByOutingIDFn: func(ctx context.Context, outingID uint, status *models.BookingStatus) ([]models.Booking, error) {
			return []models.Booking{
				{
					ID: 1, Status: models.StatusConfirmed, PaymentStatus: models.PaymentPaid,
					MainCourse: "Roast Beef", Dessert: "Cheesecake", TotalCost: 300,
					Guests: []models.Guest{
						{Name: "Jim", MainCourse: "Salmon", Dessert: "Cheesecake"},
						{Name: "Pat", MainCourse: "Roast Beef", Dessert: models.MealNotSelected},
					},
				},
				{
					ID: 2, Status: models.StatusPending, PaymentStatus: models.PaymentPending,
					MainCourse: "Salmon", Dessert: "Sticky Toffee Pudding", TotalCost: 90,
				},
				{
					// cancelled bookings contribute nothing
					ID: 3, Status: models.StatusCancelled, PaymentStatus: models.PaymentRefunded,
					MainCourse: "Salmon", Dessert: "Cheesecake", TotalCost: 195,
					Guests: []models.Guest{{Name: "Ghost"}},
				},
			}, nil
		},
	}

	svc := NewOutingService(outingRepo, bookingRepo, nil)
	summary, err := svc.Summary(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, 2, summary.Bookings)
	assert.Equal(t, 4, summary.People) // 1+2 guests, 1+0 guests
	assert.Equal(t, 40, summary.SpacesLeft)
	assert.Equal(t, 1, summary.Paid)
	assert.Equal(t, 1, summary.Unpaid)
	assert.Equal(t, 390.0, summary.Revenue)

	assert.Equal(t, 2, summary.MainCourses["Roast Beef"])
	assert.Equal(t, 2, summary.MainCourses["Salmon"])
	assert.Equal(t, 2, summary.Desserts["Cheesecake"])
	assert.Equal(t, 1, summary.Desserts[models.MealNotSelected])
}

func TestSummary_OutingNotFound(t *testing.T) {
	repo := &mockOutingRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.Outing, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}

	svc := NewOutingService(repo, &mockBookingRepo{}, nil)
	_, err := svc.Summary(context.Background(), 42)
	assert.ErrorIs(t, err, ErrOutingNotFound)
}
