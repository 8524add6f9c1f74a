package service

import (
	"context"
	"testing"

	"github.com/burkedavid/golf-society-booking-sub000/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// --- Mock MemberRepository ---

type mockMemberRepo struct {
	findByEmailFn func(ctx context.Context, email string) (*models.Member, error)
	findByIDFn    func(ctx context.Context, id uint) (*models.Member, error)
	findAllFn     func(ctx context.Context) ([]models.Member, error)
}

func (m *mockMemberRepo) Create(ctx context.Context, tx *gorm.DB, member *models.Member) error {
	return nil
}
func (m *mockMemberRepo) FindByID(ctx context.Context, id uint) (*models.Member, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockMemberRepo) FindByEmail(ctx context.Context, email string) (*models.Member, error) {
	return m.findByEmailFn(ctx, email)
}
func (m *mockMemberRepo) FindAll(ctx context.Context) ([]models.Member, error) {
	return m.findAllFn(ctx)
}
func (m *mockMemberRepo) MaxMemberSequence(ctx context.Context, tx *gorm.DB, prefix string) (int, error) {
	return 0, nil
}
func (m *mockMemberRepo) GetDB() *gorm.DB { return nil }

// --- Mock SessionRepository ---

type mockSessionRepo struct {
	created *models.Session
	deleted string
}

func (m *mockSessionRepo) Create(ctx context.Context, session *models.Session) error {
	m.created = session
	return nil
}
func (m *mockSessionRepo) FindByToken(ctx context.Context, token string) (*models.Session, error) {
	return nil, gorm.ErrRecordNotFound
}
func (m *mockSessionRepo) Delete(ctx context.Context, token string) error {
	m.deleted = token
	return nil
}

// --- Tests ---

func TestFormatMemberNumber(t *testing.T) {
	assert.Equal(t, "GS-001", FormatMemberNumber(1))
	assert.Equal(t, "GS-007", FormatMemberNumber(7))
	assert.Equal(t, "GS-042", FormatMemberNumber(42))
	assert.Equal(t, "GS-999", FormatMemberNumber(999))
	// past three digits the number widens rather than wrapping
	assert.Equal(t, "GS-1000", FormatMemberNumber(1000))
}

func TestValidateRegistration_Valid(t *testing.T) {
	assert.NoError(t, validateRegistration(&RegisterRequest{
		FullName: "Angela Burns",
		Email:    "angela@example.com",
		Password: "correct-horse",
		Handicap: 21,
	}))
}

func TestValidateRegistration_CollectsAllProblems(t *testing.T) {
	err := validateRegistration(&RegisterRequest{
		FullName: " ",
		Email:    "not-an-email",
		Password: "short",
		Handicap: 60,
	})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Fields, 4)
}

func testMember(t *testing.T, password string) *models.Member {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &models.Member{
		ID:           7,
		MemberNumber: "GS-007",
		FullName:     "Angela Burns",
		Email:        "angela@example.com",
		PasswordHash: string(hash),
		Handicap:     21,
	}
}

func TestAuthenticate_Success(t *testing.T) {
	member := testMember(t, "correct-horse")
	memberRepo := &mockMemberRepo{
		findByEmailFn: func(ctx context.Context, email string) (*models.Member, error) {
			assert.Equal(t, "angela@example.com", email)
			return member, nil
		},
	}
	sessionRepo := &mockSessionRepo{}

	svc := NewMemberService(memberRepo, sessionRepo)
	session, err := svc.Authenticate(context.Background(), " Angela@Example.com ", "correct-horse")

	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.Equal(t, uint(7), session.MemberID)
	assert.Equal(t, member, session.Member)
	require.NotNil(t, sessionRepo.created)
	assert.Equal(t, session.Token, sessionRepo.created.Token)
}

func TestAuthenticate_WrongPassword(t *testing.T) {
	memberRepo := &mockMemberRepo{
		findByEmailFn: func(ctx context.Context, email string) (*models.Member, error) {
			return testMember(t, "correct-horse"), nil
		},
	}

	svc := NewMemberService(memberRepo, &mockSessionRepo{})
	_, err := svc.Authenticate(context.Background(), "angela@example.com", "wrong")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticate_UnknownEmail(t *testing.T) {
	memberRepo := &mockMemberRepo{
		findByEmailFn: func(ctx context.Context, email string) (*models.Member, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}

	svc := NewMemberService(memberRepo, &mockSessionRepo{})
	_, err := svc.Authenticate(context.Background(), "nobody@example.com", "whatever")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogout_DeletesSession(t *testing.T) {
	sessionRepo := &mockSessionRepo{}
	svc := NewMemberService(&mockMemberRepo{}, sessionRepo)

	require.NoError(t, svc.Logout(context.Background(), "token-123"))
	assert.Equal(t, "token-123", sessionRepo.deleted)
}
