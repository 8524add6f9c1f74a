package repository

import (
	"context"

	"github.com/burkedavid/golf-society-booking-sub000/internal/models"
	"gorm.io/gorm"
)

type BookingRepository interface {
	Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error
	FindByID(ctx context.Context, id uint) (*models.Booking, error)
	FindByOutingID(ctx context.Context, outingID uint, status *models.BookingStatus) ([]models.Booking, error)
	FindByMemberID(ctx context.Context, memberID uint) ([]models.Booking, error)
	FindActiveByMemberAndOuting(ctx context.Context, tx *gorm.DB, memberID, outingID uint) (*models.Booking, error)
	CountClaimedSpaces(ctx context.Context, tx *gorm.DB, outingID uint) (int64, error)
	Update(ctx context.Context, tx *gorm.DB, booking *models.Booking) error
	UpdateStatus(ctx context.Context, tx *gorm.DB, bookingID uint, status models.BookingStatus) error
	ReplaceGuests(ctx context.Context, tx *gorm.DB, bookingID uint, guests []models.Guest) error
	GetDB() *gorm.DB
}

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *bookingRepository) Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error {
	return tx.WithContext(ctx).Create(booking).Error
}

func (r *bookingRepository) FindByID(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.WithContext(ctx).
		Preload("Guests", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&booking, id).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) FindByOutingID(ctx context.Context, outingID uint, status *models.BookingStatus) ([]models.Booking, error) {
	var bookings []models.Booking
	q := r.db.WithContext(ctx).
		Preload("Guests", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Member").
		Where("outing_id = ?", outingID)
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	if err := q.Order("id ASC").Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) FindByMemberID(ctx context.Context, memberID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Preload("Guests", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Outing").
		Where("member_id = ?", memberID).
		Order("id DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) FindActiveByMemberAndOuting(ctx context.Context, tx *gorm.DB, memberID, outingID uint) (*models.Booking, error) {
	var booking models.Booking
	err := tx.WithContext(ctx).
		Where("member_id = ? AND outing_id = ? AND status <> ?", memberID, outingID, models.StatusCancelled).
		First(&booking).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// CountClaimedSpaces sums people, not bookings: each live booking claims
// one seat for the member plus one per guest row.
func (r *bookingRepository) CountClaimedSpaces(ctx context.Context, tx *gorm.DB, outingID uint) (int64, error) {
	var claimed int64
	err := tx.WithContext(ctx).Raw(`
		SELECT COUNT(DISTINCT b.id) + COUNT(g.id)
		FROM bookings b
		LEFT JOIN guests g ON g.booking_id = b.id
		WHERE b.outing_id = ? AND b.status <> ?
	`, outingID, models.StatusCancelled).Scan(&claimed).Error
	return claimed, err
}

func (r *bookingRepository) Update(ctx context.Context, tx *gorm.DB, booking *models.Booking) error {
	return tx.WithContext(ctx).Omit("Guests", "Outing", "Member").Save(booking).Error
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, tx *gorm.DB, bookingID uint, status models.BookingStatus) error {
	return tx.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ?", bookingID).
		Update("status", status).Error
}

func (r *bookingRepository) ReplaceGuests(ctx context.Context, tx *gorm.DB, bookingID uint, guests []models.Guest) error {
	if err := tx.WithContext(ctx).Where("booking_id = ?", bookingID).Delete(&models.Guest{}).Error; err != nil {
		return err
	}
	for i := range guests {
		guests[i].ID = 0
		guests[i].BookingID = bookingID
	}
	if len(guests) == 0 {
		return nil
	}
	return tx.WithContext(ctx).Create(&guests).Error
}
