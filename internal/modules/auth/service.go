package auth

import (
	"context"
	"errors"
	"strings"

	"wallpapers/internal/domain"
	"wallpapers/internal/pkg/logout"
	"wallpapers/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// LogoutConfig describes the identity provider session to end on logout.
type LogoutConfig struct {
	Domain   string
	ClientID string
	ReturnTo string
}

// Service contains all business logic for authentication
type Service struct {
	users  UserRepositoryInterface
	jwt    jwtService
	logout LogoutConfig
}

func NewService(users UserRepositoryInterface, jwt jwtService, logoutCfg LogoutConfig) *Service {
	return &Service{
		users:  users,
		jwt:    jwt,
		logout: logoutCfg,
	}
}

// Register creates a rank 1 account and signs it in.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*domain.User, string, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if exists {
		return nil, "", ErrEmailAlreadyExists
	}

	hashedPassword, err := s.hashPassword(req.Password)
	if err != nil {
		return nil, "", err
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: hashedPassword,
		Name:         strings.TrimSpace(req.Name),
		Rank:         domain.DefaultRank,
	}
	if err := s.users.Create(ctx, user); err != nil {
		// lost a race with a concurrent registration
		if repository.IsUniqueViolation(err) {
			return nil, "", ErrEmailAlreadyExists
		}
		return nil, "", err
	}

	token, err := s.jwt.GenerateToken(user.ID, user.Rank)
	if err != nil {
		return nil, "", err
	}

	user.PasswordHash = ""
	return user, token, nil
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*domain.User, string, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(user.ID, user.Rank)
	if err != nil {
		return nil, "", err
	}

	user.PasswordHash = ""
	return user, token, nil
}

func (s *Service) GetCurrentUser(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

// LogoutURL is where the client goes to end the provider session. Without a
// configured provider it is just the app root.
func (s *Service) LogoutURL() string {
	if u := logout.URL(s.logout.Domain, s.logout.ClientID, s.logout.ReturnTo); u != "" {
		return u
	}
	return s.logout.ReturnTo
}

func (s *Service) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
