package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/burkedavid/golf-society-booking-sub000/internal/models"
	"github.com/burkedavid/golf-society-booking-sub000/internal/repository"
	"github.com/burkedavid/golf-society-booking-sub000/pkg/rabbitmq"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrOutingNotFound      = errors.New("outing not found")
	ErrBookingNotFound     = errors.New("booking not found")
	ErrDeadlineExpired     = errors.New("registration deadline has passed")
	ErrDuplicateBooking    = errors.New("member already has a booking for this outing")
	ErrCapacityExceeded    = errors.New("not enough spaces left on this outing")
	ErrConcurrencyConflict = errors.New("booking conflicted with a concurrent reservation")
	ErrAlreadyCancelled    = errors.New("booking is already cancelled")
	ErrInvalidTransition   = errors.New("invalid status transition")
)

type GuestEntry struct {
	Name     string
	Handicap *float64 // nil means the society default of 28
}

type MealSelection struct {
	MainCourse string
	Dessert    string
}

type ReservationRequest struct {
	MemberHandicap  float64
	Guests          []GuestEntry
	MemberMeals     MealSelection
	GuestMeals      []MealSelection // index-aligned with Guests; may be shorter
	SpecialRequests string
}

type GuestMealCorrection struct {
	Position   int
	MainCourse string
	Dessert    string
}

// BookingPatch carries the admin-only corrections. Nil fields are left
// untouched.
type BookingPatch struct {
	MainCourse      *string
	Dessert         *string
	SpecialRequests *string
	Status          *models.BookingStatus
	PaymentStatus   *models.PaymentStatus
	GuestMeals      []GuestMealCorrection
}

type BookingService interface {
	AttemptReservation(ctx context.Context, outingID, memberID uint, req *ReservationRequest) (*models.Booking, error)
	AvailableSpaces(ctx context.Context, outingID uint) (int, error)
	CancelBooking(ctx context.Context, bookingID uint) (*models.Booking, error)
	UpdateBooking(ctx context.Context, bookingID uint, patch *BookingPatch) (*models.Booking, error)
	GetBooking(ctx context.Context, id uint) (*models.Booking, error)
	ListBookingsForOuting(ctx context.Context, outingID uint, status *models.BookingStatus) ([]models.Booking, error)
	ListBookingsForMember(ctx context.Context, memberID uint) ([]models.Booking, error)
}

type bookingService struct {
	bookingRepo repository.BookingRepository
	outingRepo  repository.OutingRepository
	publisher   *rabbitmq.Publisher
}

func NewBookingService(bookingRepo repository.BookingRepository, outingRepo repository.OutingRepository, publisher *rabbitmq.Publisher) BookingService {
	return &bookingService{
		bookingRepo: bookingRepo,
		outingRepo:  outingRepo,
		publisher:   publisher,
	}
}

// AttemptReservation validates and commits one member's booking for an
// outing. All structural validation runs up front; the capacity check and
// the insert then happen under a row lock on the outing so that two
// racing requests can never jointly overshoot capacity. The total cost is
// always computed from the outing's current prices, never taken from the
// caller.
func (s *bookingService) AttemptReservation(ctx context.Context, outingID, memberID uint, req *ReservationRequest) (*models.Booking, error) {
	if err := validateReservation(req); err != nil {
		return nil, err
	}

	booking, err := s.reserve(ctx, outingID, memberID, req)
	if errors.Is(err, ErrConcurrencyConflict) {
		// One automatic retry; a second conflict means the spaces are
		// genuinely gone.
		booking, err = s.reserve(ctx, outingID, memberID, req)
		if errors.Is(err, ErrConcurrencyConflict) {
			return nil, ErrCapacityExceeded
		}
	}
	if err != nil {
		return nil, err
	}

	if s.publisher != nil {
		_ = s.publisher.Publish("booking.created", booking)
	}
	return booking, nil
}

func (s *bookingService) reserve(ctx context.Context, outingID, memberID uint, req *ReservationRequest) (*models.Booking, error) {
	var result *models.Booking

	err := s.bookingRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. Lock the outing row — serializes concurrent reservations
		outing, err := s.outingRepo.FindByIDForUpdate(ctx, tx, outingID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOutingNotFound
			}
			return err
		}

		// 2. Registration window
		if time.Now().After(outing.RegistrationDeadline) {
			return ErrDeadlineExpired
		}

		// 3. Menu cross-check (catalog is admin-managed, stable here)
		menu, err := s.outingRepo.FindMenu(ctx, outingID)
		if err != nil {
			return err
		}
		if err := validateMenuSelections(req, menu); err != nil {
			return err
		}

		// 4. One live booking per member per outing
		_, err = s.bookingRepo.FindActiveByMemberAndOuting(ctx, tx, memberID, outingID)
		if err == nil {
			return ErrDuplicateBooking
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		// 5. Capacity counts people: 1 + guests per live booking
		claimed, err := s.bookingRepo.CountClaimedSpaces(ctx, tx, outingID)
		if err != nil {
			return err
		}
		requested := 1 + len(req.Guests)
		if int(claimed)+requested > outing.Capacity {
			return ErrCapacityExceeded
		}

		booking := &models.Booking{
			OutingID:        outingID,
			MemberID:        memberID,
			MemberHandicap:  req.MemberHandicap,
			MainCourse:      req.MemberMeals.MainCourse,
			Dessert:         req.MemberMeals.Dessert,
			SpecialRequests: req.SpecialRequests,
			TotalCost:       outing.MemberPrice + float64(len(req.Guests))*outing.GuestPrice,
			Status:          models.StatusPending,
			PaymentStatus:   models.PaymentPending,
			Guests:          buildGuests(req),
		}

		if err := s.bookingRepo.Create(ctx, tx, booking); err != nil {
			if isUniqueViolation(err) {
				return ErrDuplicateBooking
			}
			if isSerializationFailure(err) {
				return ErrConcurrencyConflict
			}
			return err
		}

		result = booking
		return nil
	})
	if err != nil {
		if isSerializationFailure(err) {
			return nil, ErrConcurrencyConflict
		}
		return nil, err
	}

	return result, nil
}

func buildGuests(req *ReservationRequest) []models.Guest {
	guests := make([]models.Guest, len(req.Guests))
	for i, g := range req.Guests {
		handicap := DefaultHandicap
		if g.Handicap != nil {
			handicap = *g.Handicap
		}

		mainCourse := models.MealNotSelected
		dessert := models.MealNotSelected
		if i < len(req.GuestMeals) {
			if m := strings.TrimSpace(req.GuestMeals[i].MainCourse); m != "" {
				mainCourse = m
			}
			if d := strings.TrimSpace(req.GuestMeals[i].Dessert); d != "" {
				dessert = d
			}
		}

		guests[i] = models.Guest{
			Position:   i,
			Name:       strings.TrimSpace(g.Name),
			Handicap:   handicap,
			MainCourse: mainCourse,
			Dessert:    dessert,
		}
	}
	return guests
}

// AvailableSpaces recomputes remaining capacity from the live booking set
// on every call. Occupancy is never cached.
func (s *bookingService) AvailableSpaces(ctx context.Context, outingID uint) (int, error) {
	outing, err := s.outingRepo.FindByID(ctx, outingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrOutingNotFound
		}
		return 0, err
	}

	claimed, err := s.bookingRepo.CountClaimedSpaces(ctx, s.bookingRepo.GetDB(), outingID)
	if err != nil {
		return 0, err
	}
	return outing.Capacity - int(claimed), nil
}

func (s *bookingService) CancelBooking(ctx context.Context, bookingID uint) (*models.Booking, error) {
	var result *models.Booking

	err := s.bookingRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		booking, err := s.bookingRepo.FindByID(ctx, bookingID)
		if err != nil {
			return ErrBookingNotFound
		}
		if booking.Status == models.StatusCancelled {
			return ErrAlreadyCancelled
		}

		// Lock the outing so the freed spaces are visible atomically to
		// any racing reservation.
		if _, err := s.outingRepo.FindByIDForUpdate(ctx, tx, booking.OutingID); err != nil {
			return err
		}

		if err := s.bookingRepo.UpdateStatus(ctx, tx, bookingID, models.StatusCancelled); err != nil {
			return err
		}

		booking.Status = models.StatusCancelled
		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.publisher != nil {
		_ = s.publisher.Publish("booking.cancelled", result)
	}
	return result, nil
}

// UpdateBooking applies admin corrections: meal fixes for the member or
// individual guests, and booking/payment status transitions.
func (s *bookingService) UpdateBooking(ctx context.Context, bookingID uint, patch *BookingPatch) (*models.Booking, error) {
	err := s.bookingRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		booking, err := s.bookingRepo.FindByID(ctx, bookingID)
		if err != nil {
			return ErrBookingNotFound
		}

		if patch.Status != nil {
			if !validStatusTransition(booking.Status, *patch.Status) {
				return ErrInvalidTransition
			}
			booking.Status = *patch.Status
		}
		if patch.PaymentStatus != nil {
			if !validPaymentTransition(booking.PaymentStatus, *patch.PaymentStatus) {
				return ErrInvalidTransition
			}
			booking.PaymentStatus = *patch.PaymentStatus
		}
		if patch.MainCourse != nil {
			booking.MainCourse = *patch.MainCourse
		}
		if patch.Dessert != nil {
			booking.Dessert = *patch.Dessert
		}
		if patch.SpecialRequests != nil {
			booking.SpecialRequests = *patch.SpecialRequests
		}

		for _, c := range patch.GuestMeals {
			if c.Position < 0 || c.Position >= len(booking.Guests) {
				return &ValidationError{Fields: []FieldError{{
					Field:   "guest_meals",
					Message: "no guest at the given position",
				}}}
			}
			if c.MainCourse != "" {
				booking.Guests[c.Position].MainCourse = c.MainCourse
			}
			if c.Dessert != "" {
				booking.Guests[c.Position].Dessert = c.Dessert
			}
		}

		if err := s.bookingRepo.Update(ctx, tx, booking); err != nil {
			return err
		}
		return s.bookingRepo.ReplaceGuests(ctx, tx, bookingID, booking.Guests)
	})
	if err != nil {
		return nil, err
	}

	return s.bookingRepo.FindByID(ctx, bookingID)
}

func (s *bookingService) GetBooking(ctx context.Context, id uint) (*models.Booking, error) {
	booking, err := s.bookingRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return booking, nil
}

func (s *bookingService) ListBookingsForOuting(ctx context.Context, outingID uint, status *models.BookingStatus) ([]models.Booking, error) {
	return s.bookingRepo.FindByOutingID(ctx, outingID, status)
}

func (s *bookingService) ListBookingsForMember(ctx context.Context, memberID uint) ([]models.Booking, error) {
	return s.bookingRepo.FindByMemberID(ctx, memberID)
}

func validStatusTransition(from, to models.BookingStatus) bool {
	if from == to {
		return true
	}
	switch from {
	case models.StatusPending:
		return to == models.StatusConfirmed || to == models.StatusCancelled
	case models.StatusConfirmed:
		return to == models.StatusCancelled
	default:
		return false
	}
}

func validPaymentTransition(from, to models.PaymentStatus) bool {
	if from == to {
		return true
	}
	switch from {
	case models.PaymentPending:
		return to == models.PaymentPaid
	case models.PaymentPaid:
		return to == models.PaymentRefunded
	default:
		return false
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	// serialization_failure or deadlock_detected
	return pgErr.Code == "40001" || pgErr.Code == "40P01"
}
