package services

import (
	"context"
	"testing"

	"github.com/commquest/commquest-backend/internal/models"
	"github.com/commquest/commquest-backend/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const testJWTSecret = "test-secret"

func newAuthFixture() (*MockRepository, AuthService) {
	repo := NewMockRepository()
	service := NewAuthService(repo, newTestLogger(), utils.NewValidator(), testJWTSecret)
	return repo, service
}

func hashForTest(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(hash)
}

func TestRegister(t *testing.T) {
	repo, service := newAuthFixture()

	repo.user.On("ExistsByEmail", mock.Anything, "ana@example.com").Return(false, nil)
	repo.user.On("Create", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		u.ID = "u1"
		return u.Email == "ana@example.com" && u.Role == models.RoleCandidate
	})).Return(nil)

	resp, err := service.Register(context.Background(), &RegisterRequest{
		Name:     "Ana",
		Email:    "ana@example.com",
		Password: "password123",
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "Ana", resp.User.Name)

	claims, err := service.ParseToken(resp.Token)
	assert.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, models.RoleCandidate, claims.Role)
}

func TestRegister_EmailTaken(t *testing.T) {
	repo, service := newAuthFixture()

	repo.user.On("ExistsByEmail", mock.Anything, "taken@example.com").Return(true, nil)

	_, err := service.Register(context.Background(), &RegisterRequest{
		Name:     "Ana",
		Email:    "taken@example.com",
		Password: "password123",
	})

	assert.ErrorIs(t, err, ErrEmailTaken)
	repo.user.AssertNotCalled(t, "Create")
}

func TestRegister_ValidationFailure(t *testing.T) {
	_, service := newAuthFixture()

	_, err := service.Register(context.Background(), &RegisterRequest{
		Name:     "Ana",
		Email:    "not-an-email",
		Password: "short",
	})

	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestLogin(t *testing.T) {
	repo, service := newAuthFixture()

	name := "Ana"
	repo.user.On("GetByEmail", mock.Anything, "ana@example.com").Return(&models.User{
		ID:       "u1",
		Name:     &name,
		Email:    "ana@example.com",
		Password: hashForTest(t, "password123"),
		Role:     models.RoleCandidate,
	}, nil)

	resp, err := service.Login(context.Background(), &LoginRequest{
		Email:    "ana@example.com",
		Password: "password123",
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "u1", resp.User.ID)
}

func TestLogin_WrongPassword(t *testing.T) {
	repo, service := newAuthFixture()

	repo.user.On("GetByEmail", mock.Anything, "ana@example.com").Return(&models.User{
		ID:       "u1",
		Email:    "ana@example.com",
		Password: hashForTest(t, "password123"),
	}, nil)

	_, err := service.Login(context.Background(), &LoginRequest{
		Email:    "ana@example.com",
		Password: "wrong-password",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	repo, service := newAuthFixture()

	repo.user.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)

	_, err := service.Login(context.Background(), &LoginRequest{
		Email:    "ghost@example.com",
		Password: "password123",
	})

	// Same error as a bad password: the response never reveals which part
	// was wrong.
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestChangePassword_WrongCurrent(t *testing.T) {
	repo, service := newAuthFixture()

	repo.user.On("GetByID", mock.Anything, "u1").Return(&models.User{
		ID:       "u1",
		Email:    "ana@example.com",
		Password: hashForTest(t, "password123"),
	}, nil)

	err := service.ChangePassword(context.Background(), "u1", &ChangePasswordRequest{
		CurrentPassword: "wrong",
		NewPassword:     "newpassword1",
	})

	assert.ErrorIs(t, err, ErrPasswordMismatch)
	repo.user.AssertNotCalled(t, "Update")
}

func TestParseToken_Invalid(t *testing.T) {
	_, service := newAuthFixture()

	_, err := service.ParseToken("not-a-token")

	assert.ErrorIs(t, err, ErrUnauthorized)
}
