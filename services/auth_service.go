package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/torneos/esports-api/models"
	"github.com/torneos/esports-api/repositories"
	"golang.org/x/crypto/bcrypt"
)

type SignUpInput struct {
	Username string `json:"username"`
	Nickname string `json:"nickname"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AuthService interface {
	SignUp(ctx context.Context, input SignUpInput) (*models.User, error)
	Login(ctx context.Context, input LoginInput) (*models.User, error)
	// AdminLogin is Login restricted to admin-tier accounts.
	AdminLogin(ctx context.Context, input LoginInput) (*models.User, error)
}

type authService struct {
	userRepo repositories.UserRepository
}

func NewAuthService(userRepo repositories.UserRepository) AuthService {
	return &authService{userRepo: userRepo}
}

func (s *authService) SignUp(ctx context.Context, input SignUpInput) (*models.User, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrValidationFailed)
	}
	if len(input.Password) < minPasswordLength {
		return nil, ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Nickname:     strings.TrimSpace(input.Nickname),
		Phone:        input.Phone,
		Email:        input.Email,
		Role:         models.RolePlayer,
		PasswordHash: string(hash),
	}
	if user.Nickname == "" {
		user.Nickname = username
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrUserUsernameConflict) {
			return nil, ErrUsernameConflict
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	user.PasswordHash = ""
	return user, nil
}

func (s *authService) Login(ctx context.Context, input LoginInput) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrAuthenticationFailed
		}
		return nil, fmt.Errorf("failed to find user by username: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, ErrAuthenticationFailed
		}
		return nil, fmt.Errorf("failed to compare password hash: %w", err)
	}

	user.PasswordHash = ""
	return user, nil
}

func (s *authService) AdminLogin(ctx context.Context, input LoginInput) (*models.User, error) {
	user, err := s.Login(ctx, input)
	if err != nil {
		return nil, err
	}
	if !user.Role.IsAdminTier() {
		return nil, ErrForbiddenOperation
	}
	return user, nil
}
