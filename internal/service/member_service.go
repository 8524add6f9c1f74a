package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/burkedavid/golf-society-booking-sub000/internal/models"
	"github.com/burkedavid/golf-society-booking-sub000/internal/repository"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	// Member numbers look like "GS-007": prefix plus a zero-padded
	// three-digit sequence.
	MemberNumberPrefix = "GS-"

	sessionTTL = 24 * time.Hour
)

var (
	ErrMemberNotFound     = errors.New("member not found")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

type RegisterRequest struct {
	FullName string
	Email    string
	Password string
	Handicap float64
}

type MemberService interface {
	Register(ctx context.Context, req *RegisterRequest) (*models.Member, error)
	Authenticate(ctx context.Context, email, password string) (*models.Session, error)
	Logout(ctx context.Context, token string) error
	GetByID(ctx context.Context, id uint) (*models.Member, error)
	List(ctx context.Context) ([]models.Member, error)
}

type memberService struct {
	memberRepo  repository.MemberRepository
	sessionRepo repository.SessionRepository
}

func NewMemberService(memberRepo repository.MemberRepository, sessionRepo repository.SessionRepository) MemberService {
	return &memberService{memberRepo: memberRepo, sessionRepo: sessionRepo}
}

// Register creates a member with the next free member number. The number
// is allocated inside the same transaction as the insert and backed by a
// unique index, so two concurrent registrations cannot end up sharing a
// number; the loser of that race retries once with a fresh sequence.
func (s *memberService) Register(ctx context.Context, req *RegisterRequest) (*models.Member, error) {
	if err := validateRegistration(req); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	var member *models.Member
	for attempt := 0; attempt < 2; attempt++ {
		member, err = s.createWithNextNumber(ctx, req, string(hash))
		if err == nil {
			return member, nil
		}
		if errors.Is(err, ErrEmailTaken) || !isUniqueViolation(err) {
			return nil, err
		}
		// member number collided with a concurrent registration
	}
	return nil, fmt.Errorf("allocate member number: %w", err)
}

func (s *memberService) createWithNextNumber(ctx context.Context, req *RegisterRequest, passwordHash string) (*models.Member, error) {
	var member *models.Member

	err := s.memberRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.memberRepo.FindByEmail(ctx, req.Email); err == nil {
			return ErrEmailTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		seq, err := s.memberRepo.MaxMemberSequence(ctx, tx, MemberNumberPrefix)
		if err != nil {
			return err
		}

		m := &models.Member{
			MemberNumber: FormatMemberNumber(seq + 1),
			FullName:     strings.TrimSpace(req.FullName),
			Email:        strings.ToLower(strings.TrimSpace(req.Email)),
			PasswordHash: passwordHash,
			Handicap:     req.Handicap,
		}
		if err := s.memberRepo.Create(ctx, tx, m); err != nil {
			return err
		}
		member = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return member, nil
}

// FormatMemberNumber renders a sequence as a prefixed, zero-padded
// identifier: 7 → "GS-007". Sequences past 999 widen naturally.
func FormatMemberNumber(seq int) string {
	return fmt.Sprintf("%s%03d", MemberNumberPrefix, seq)
}

func validateRegistration(req *RegisterRequest) error {
	verr := &ValidationError{}
	if strings.TrimSpace(req.FullName) == "" {
		verr.add("full_name", "full name is required")
	}
	if strings.TrimSpace(req.Email) == "" || !strings.Contains(req.Email, "@") {
		verr.add("email", "a valid email address is required")
	}
	if len(req.Password) < 8 {
		verr.add("password", "password must be at least 8 characters")
	}
	if !validHandicap(req.Handicap) {
		verr.add("handicap", fmt.Sprintf("must be between %g and %g", MinHandicap, MaxHandicap))
	}
	return verr.orNil()
}

func (s *memberService) Authenticate(ctx context.Context, email, password string) (*models.Session, error) {
	member, err := s.memberRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(member.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	session := &models.Session{
		Token:     uuid.NewString(),
		MemberID:  member.ID,
		ExpiresAt: time.Now().Add(sessionTTL),
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	session.Member = member
	return session, nil
}

func (s *memberService) Logout(ctx context.Context, token string) error {
	return s.sessionRepo.Delete(ctx, token)
}

func (s *memberService) GetByID(ctx context.Context, id uint) (*models.Member, error) {
	member, err := s.memberRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return member, nil
}

func (s *memberService) List(ctx context.Context) ([]models.Member, error) {
	return s.memberRepo.FindAll(ctx)
}
