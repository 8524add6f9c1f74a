package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/burkedavid/golf-society-booking-sub000/internal/models"
	"github.com/burkedavid/golf-society-booking-sub000/internal/repository"
	"github.com/burkedavid/golf-society-booking-sub000/pkg/rabbitmq"
	"gorm.io/gorm"
)

// OutingSummary aggregates one outing's bookings for the membership
// secretary: headcounts, payment state, revenue, and how many of each
// menu item the caterer needs. The document rendering itself happens
// downstream.
type OutingSummary struct {
	OutingID    uint           `json:"outing_id"`
	OutingName  string         `json:"outing_name"`
	Bookings    int            `json:"bookings"`
	People      int            `json:"people"`
	SpacesLeft  int            `json:"spaces_left"`
	Paid        int            `json:"paid_bookings"`
	Unpaid      int            `json:"unpaid_bookings"`
	Revenue     float64        `json:"revenue"`
	MainCourses map[string]int `json:"main_courses"`
	Desserts    map[string]int `json:"desserts"`
}

type OutingService interface {
	CreateOuting(ctx context.Context, outing *models.Outing) error
	GetOuting(ctx context.Context, id uint) (*models.Outing, error)
	ListOutings(ctx context.Context) ([]models.Outing, error)
	UpdateOuting(ctx context.Context, outing *models.Outing) error
	DeleteOuting(ctx context.Context, id uint) error
	ReplaceMenu(ctx context.Context, outingID uint, items []models.MenuItem) error
	Summary(ctx context.Context, outingID uint) (*OutingSummary, error)
}

type outingService struct {
	outingRepo  repository.OutingRepository
	bookingRepo repository.BookingRepository
	publisher   *rabbitmq.Publisher
}

func NewOutingService(outingRepo repository.OutingRepository, bookingRepo repository.BookingRepository, publisher *rabbitmq.Publisher) OutingService {
	return &outingService{outingRepo: outingRepo, bookingRepo: bookingRepo, publisher: publisher}
}

func (s *outingService) CreateOuting(ctx context.Context, outing *models.Outing) error {
	if err := validateOuting(outing); err != nil {
		return err
	}

	if err := s.outingRepo.Create(ctx, outing); err != nil {
		return fmt.Errorf("create outing: %w", err)
	}

	if s.publisher != nil {
		_ = s.publisher.Publish("outing.created", outing)
	}
	return nil
}

func validateOuting(outing *models.Outing) error {
	verr := &ValidationError{}
	if strings.TrimSpace(outing.Name) == "" {
		verr.add("name", "name is required")
	}
	if strings.TrimSpace(outing.Venue) == "" {
		verr.add("venue", "venue is required")
	}
	if outing.Capacity <= 0 {
		verr.add("capacity", "capacity must be greater than zero")
	}
	if outing.MemberPrice < 0 {
		verr.add("member_price", "member price cannot be negative")
	}
	if outing.GuestPrice < 0 {
		verr.add("guest_price", "guest price cannot be negative")
	}
	if outing.Date.IsZero() {
		verr.add("date", "date is required")
	}
	if outing.RegistrationDeadline.IsZero() {
		verr.add("registration_deadline", "registration deadline is required")
	} else if !outing.Date.IsZero() && outing.RegistrationDeadline.After(outing.Date) {
		verr.add("registration_deadline", "deadline must not be after the outing date")
	}
	return verr.orNil()
}

func (s *outingService) GetOuting(ctx context.Context, id uint) (*models.Outing, error) {
	outing, err := s.outingRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOutingNotFound
		}
		return nil, err
	}
	return outing, nil
}

func (s *outingService) ListOutings(ctx context.Context) ([]models.Outing, error) {
	return s.outingRepo.FindAll(ctx)
}

func (s *outingService) UpdateOuting(ctx context.Context, outing *models.Outing) error {
	if err := validateOuting(outing); err != nil {
		return err
	}
	if _, err := s.outingRepo.FindByID(ctx, outing.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOutingNotFound
		}
		return err
	}
	return s.outingRepo.Update(ctx, outing)
}

func (s *outingService) DeleteOuting(ctx context.Context, id uint) error {
	if _, err := s.outingRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOutingNotFound
		}
		return err
	}
	return s.outingRepo.Delete(ctx, id)
}

func (s *outingService) ReplaceMenu(ctx context.Context, outingID uint, items []models.MenuItem) error {
	if _, err := s.outingRepo.FindByID(ctx, outingID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOutingNotFound
		}
		return err
	}

	verr := &ValidationError{}
	for i, item := range items {
		if strings.TrimSpace(item.Name) == "" {
			verr.add(fmt.Sprintf("items[%d].name", i), "name is required")
		}
		if item.Course != models.CourseMain && item.Course != models.CourseDessert {
			verr.add(fmt.Sprintf("items[%d].course", i), "course must be 'main' or 'dessert'")
		}
	}
	if err := verr.orNil(); err != nil {
		return err
	}

	return s.outingRepo.ReplaceMenu(ctx, outingID, items)
}

func (s *outingService) Summary(ctx context.Context, outingID uint) (*OutingSummary, error) {
	outing, err := s.outingRepo.FindByID(ctx, outingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOutingNotFound
		}
		return nil, err
	}

	bookings, err := s.bookingRepo.FindByOutingID(ctx, outingID, nil)
	if err != nil {
		return nil, err
	}

	summary := &OutingSummary{
		OutingID:    outing.ID,
		OutingName:  outing.Name,
		MainCourses: map[string]int{},
		Desserts:    map[string]int{},
	}

	for _, b := range bookings {
		if b.Status == models.StatusCancelled {
			continue
		}
		summary.Bookings++
		summary.People += b.PartySize()
		summary.Revenue += b.TotalCost
		if b.PaymentStatus == models.PaymentPaid {
			summary.Paid++
		} else {
			summary.Unpaid++
		}

		summary.MainCourses[b.MainCourse]++
		summary.Desserts[b.Dessert]++
		for _, g := range b.Guests {
			summary.MainCourses[g.MainCourse]++
			summary.Desserts[g.Dessert]++
		}
	}
	summary.SpacesLeft = outing.Capacity - summary.People

	return summary, nil
}
