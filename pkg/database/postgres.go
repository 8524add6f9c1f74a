package database

import (
	"log"

	"github.com/burkedavid/golf-society-booking-sub000/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewPostgresDB(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Member{},
		&models.Session{},
		&models.Outing{},
		&models.MenuItem{},
		&models.Booking{},
		&models.Guest{},
	); err != nil {
		log.Fatalf("failed to auto-migrate: %v", err)
	}

	// Partial unique index: one live booking per member per outing.
	// Cancelled bookings drop out so the member can rebook.
	db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_booking_active
		ON bookings (outing_id, member_id)
		WHERE status <> 'cancelled'
	`)

	return db
}
