package repository

import (
	"context"

	"github.com/burkedavid/golf-society-booking-sub000/internal/models"
	"gorm.io/gorm"
)

type MemberRepository interface {
	Create(ctx context.Context, tx *gorm.DB, member *models.Member) error
	FindByID(ctx context.Context, id uint) (*models.Member, error)
	FindByEmail(ctx context.Context, email string) (*models.Member, error)
	FindAll(ctx context.Context) ([]models.Member, error)
	MaxMemberSequence(ctx context.Context, tx *gorm.DB, prefix string) (int, error)
	GetDB() *gorm.DB
}

type memberRepository struct {
	db *gorm.DB
}

func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &memberRepository{db: db}
}

func (r *memberRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *memberRepository) Create(ctx context.Context, tx *gorm.DB, member *models.Member) error {
	return tx.WithContext(ctx).Create(member).Error
}

func (r *memberRepository) FindByID(ctx context.Context, id uint) (*models.Member, error) {
	var member models.Member
	if err := r.db.WithContext(ctx).First(&member, id).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *memberRepository) FindByEmail(ctx context.Context, email string) (*models.Member, error) {
	var member models.Member
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *memberRepository) FindAll(ctx context.Context) ([]models.Member, error) {
	var members []models.Member
	if err := r.db.WithContext(ctx).Order("member_number ASC").Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

// MaxMemberSequence extracts the highest numeric suffix among member
// numbers carrying the given prefix, e.g. 41 for "GS-041".
func (r *memberRepository) MaxMemberSequence(ctx context.Context, tx *gorm.DB, prefix string) (int, error) {
	var max int
	err := tx.WithContext(ctx).Raw(`
		SELECT COALESCE(MAX(CAST(SUBSTRING(member_number FROM ?) AS INTEGER)), 0)
		FROM members
		WHERE member_number LIKE ?
	`, len(prefix)+1, prefix+"%").Scan(&max).Error
	return max, err
}
