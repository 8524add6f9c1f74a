package repository

import (
	"context"

	"github.com/burkedavid/golf-society-booking-sub000/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OutingRepository interface {
	Create(ctx context.Context, outing *models.Outing) error
	FindByID(ctx context.Context, id uint) (*models.Outing, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Outing, error)
	FindAll(ctx context.Context) ([]models.Outing, error)
	Update(ctx context.Context, outing *models.Outing) error
	Delete(ctx context.Context, id uint) error
	ReplaceMenu(ctx context.Context, outingID uint, items []models.MenuItem) error
	FindMenu(ctx context.Context, outingID uint) ([]models.MenuItem, error)
}

type outingRepository struct {
	db *gorm.DB
}

func NewOutingRepository(db *gorm.DB) OutingRepository {
	return &outingRepository{db: db}
}

func (r *outingRepository) Create(ctx context.Context, outing *models.Outing) error {
	return r.db.WithContext(ctx).Create(outing).Error
}

func (r *outingRepository) FindByID(ctx context.Context, id uint) (*models.Outing, error) {
	var outing models.Outing
	err := r.db.WithContext(ctx).
		Preload("MenuItems", func(db *gorm.DB) *gorm.DB {
			return db.Order("course ASC, position ASC")
		}).
		First(&outing, id).Error
	if err != nil {
		return nil, err
	}
	return &outing, nil
}

// FindByIDForUpdate acquires a row-level lock on the outing within the
// given transaction, serializing concurrent reservation attempts.
func (r *outingRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Outing, error) {
	var outing models.Outing
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&outing, id).Error; err != nil {
		return nil, err
	}
	return &outing, nil
}

func (r *outingRepository) FindAll(ctx context.Context) ([]models.Outing, error) {
	var outings []models.Outing
	if err := r.db.WithContext(ctx).Order("date ASC").Find(&outings).Error; err != nil {
		return nil, err
	}
	return outings, nil
}

func (r *outingRepository) Update(ctx context.Context, outing *models.Outing) error {
	return r.db.WithContext(ctx).Save(outing).Error
}

func (r *outingRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("outing_id = ?", id).Delete(&models.MenuItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Outing{}, id).Error
	})
}

// ReplaceMenu swaps the whole catalog for an outing in one transaction.
func (r *outingRepository) ReplaceMenu(ctx context.Context, outingID uint, items []models.MenuItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("outing_id = ?", outingID).Delete(&models.MenuItem{}).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].OutingID = outingID
		}
		if len(items) == 0 {
			return nil
		}
		return tx.Create(&items).Error
	})
}

func (r *outingRepository) FindMenu(ctx context.Context, outingID uint) ([]models.MenuItem, error) {
	var items []models.MenuItem
	err := r.db.WithContext(ctx).
		Where("outing_id = ?", outingID).
		Order("course ASC, position ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
