package auth

import (
	"context"
	"errors"
	"testing"

	"wallpapers/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Mock User Repository implementing the interface
type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	if args.Error(0) == nil {
		u.ID = 10
	}
	return args.Error(0)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

// Mock JWT service
type mockJWTService struct {
	mock.Mock
}

func (m *mockJWTService) GenerateToken(userID int64, rank int) (string, error) {
	args := m.Called(userID, rank)
	return args.String(0), args.Error(1)
}

func TestService_Register_Success(t *testing.T) {
	userRepo := new(mockUserRepo)
	jwtSvc := new(mockJWTService)

	userRepo.On("ExistsByEmail", mock.Anything, "test@example.com").Return(false, nil)
	userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Email == "test@example.com" && u.Rank == domain.DefaultRank &&
			bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("securepass123")) == nil
	})).Return(nil)
	jwtSvc.On("GenerateToken", int64(10), 1).Return("fake-jwt-token", nil)

	service := NewService(userRepo, jwtSvc, LogoutConfig{})

	user, token, err := service.Register(context.Background(), RegisterRequest{
		Name:     " Test User ",
		Email:    "Test@Example.com",
		Password: "securepass123",
	})

	require.NoError(t, err)
	assert.Equal(t, "Test User", user.Name)
	assert.Empty(t, user.PasswordHash)
	assert.Equal(t, "fake-jwt-token", token)

	userRepo.AssertExpectations(t)
	jwtSvc.AssertExpectations(t)
}

func TestService_Register_EmailExists(t *testing.T) {
	userRepo := new(mockUserRepo)
	jwtSvc := new(mockJWTService)

	userRepo.On("ExistsByEmail", mock.Anything, "exists@example.com").Return(true, nil)

	service := NewService(userRepo, jwtSvc, LogoutConfig{})

	_, _, err := service.Register(context.Background(), RegisterRequest{
		Email: "exists@example.com",
	})

	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_Register_ConcurrentDuplicate(t *testing.T) {
	userRepo := new(mockUserRepo)
	jwtSvc := new(mockJWTService)

	userRepo.On("ExistsByEmail", mock.Anything, "race@example.com").Return(false, nil)
	userRepo.On("Create", mock.Anything, mock.Anything).Return(&pgconn.PgError{Code: "23505"})

	service := NewService(userRepo, jwtSvc, LogoutConfig{})

	_, _, err := service.Register(context.Background(), RegisterRequest{
		Email:    "race@example.com",
		Password: "securepass123",
	})

	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestService_Login(t *testing.T) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	existingUser := func() *domain.User {
		return &domain.User{ID: 10, Email: "user@example.com", PasswordHash: string(hashed), Rank: 2}
	}

	tests := []struct {
		name     string
		email    string
		password string
		repoUser *domain.User
		repoErr  error
		wantErr  error
	}{
		{name: "success", email: "USER@example.com", password: "password123", repoUser: existingUser()},
		{name: "wrong password", email: "user@example.com", password: "nope", repoUser: existingUser(), wantErr: ErrInvalidCredentials},
		{name: "unknown email", email: "user@example.com", password: "password123", repoErr: gorm.ErrRecordNotFound, wantErr: ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := new(mockUserRepo)
			jwtSvc := new(mockJWTService)

			userRepo.On("GetByEmail", mock.Anything, "user@example.com").Return(tt.repoUser, tt.repoErr)
			jwtSvc.On("GenerateToken", int64(10), 2).Return("login-token", nil)

			service := NewService(userRepo, jwtSvc, LogoutConfig{})
			user, token, err := service.Login(context.Background(), LoginRequest{Email: tt.email, Password: tt.password})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				jwtSvc.AssertNotCalled(t, "GenerateToken", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "login-token", token)
			assert.Empty(t, user.PasswordHash)
		})
	}
}

func TestService_Login_RepositoryError(t *testing.T) {
	userRepo := new(mockUserRepo)
	boom := errors.New("connection reset")
	userRepo.On("GetByEmail", mock.Anything, "user@example.com").Return(nil, boom)

	service := NewService(userRepo, new(mockJWTService), LogoutConfig{})
	_, _, err := service.Login(context.Background(), LoginRequest{Email: "user@example.com", Password: "x"})

	assert.ErrorIs(t, err, boom)
}

func TestService_GetCurrentUser(t *testing.T) {
	userRepo := new(mockUserRepo)
	userRepo.On("GetByID", mock.Anything, int64(10)).Return(&domain.User{ID: 10, PasswordHash: "secret"}, nil)
	userRepo.On("GetByID", mock.Anything, int64(11)).Return(nil, gorm.ErrRecordNotFound)

	service := NewService(userRepo, new(mockJWTService), LogoutConfig{})

	user, err := service.GetCurrentUser(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, user.PasswordHash)

	_, err = service.GetCurrentUser(context.Background(), 11)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestService_LogoutURL(t *testing.T) {
	withProvider := NewService(nil, nil, LogoutConfig{
		Domain:   "tenant.auth0.com",
		ClientID: "abc123",
		ReturnTo: "http://localhost:3000/",
	})
	assert.Equal(t,
		"https://tenant.auth0.com/logout?returnTo=http%3A%2F%2Flocalhost%3A3000%2F&client_id=abc123",
		withProvider.LogoutURL())

	local := NewService(nil, nil, LogoutConfig{ReturnTo: "http://localhost:3000/"})
	assert.Equal(t, "http://localhost:3000/", local.LogoutURL())
}
