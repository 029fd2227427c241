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

const minPasswordLength = 8

type CreateAdminInput struct {
	Username string
	Password string
	Role     models.UserRole
}

// AdminService is the superadmin-facing account management subsystem.
type AdminService interface {
	ListAdmins(ctx context.Context, actor *models.User) ([]models.User, error)
	CreateAdmin(ctx context.Context, actor *models.User, input CreateAdminInput) (*models.User, error)
	DeleteAdmin(ctx context.Context, actor *models.User, targetID int) error
	ResetPassword(ctx context.Context, actor *models.User, targetID int, newPassword string) error
	ChangePassword(ctx context.Context, actor *models.User, oldPassword, newPassword string) error
	LinkGame(ctx context.Context, actor *models.User, adminID, gameID int) error
	UnlinkGame(ctx context.Context, actor *models.User, adminID, gameID int) error
}

type adminService struct {
	userRepo      repositories.UserRepository
	gameRepo      repositories.GameRepository
	adminGameRepo repositories.AdminGameRepository
	authorizer    *Authorizer
}

func NewAdminService(
	userRepo repositories.UserRepository,
	gameRepo repositories.GameRepository,
	adminGameRepo repositories.AdminGameRepository,
	authorizer *Authorizer,
) AdminService {
	return &adminService{
		userRepo:      userRepo,
		gameRepo:      gameRepo,
		adminGameRepo: adminGameRepo,
		authorizer:    authorizer,
	}
}

// ListAdmins returns every admin-tier account with the games it may manage:
// all games for superadmins, linked games for admins.
func (s *adminService) ListAdmins(ctx context.Context, actor *models.User) ([]models.User, error) {
	if err := s.authorizer.Require(actor.Role, ActionAdminList); err != nil {
		return nil, err
	}

	admins, err := s.userRepo.ListByRoles(ctx, models.RoleAdmin, models.RoleSuperadmin)
	if err != nil {
		return nil, fmt.Errorf("failed to list admins: %w", err)
	}

	var allGames []models.Game
	for i := range admins {
		admins[i].PasswordHash = ""
		switch admins[i].Role {
		case models.RoleSuperadmin:
			if allGames == nil {
				allGames, err = s.gameRepo.GetAll(ctx, false)
				if err != nil {
					return nil, fmt.Errorf("failed to list games: %w", err)
				}
			}
			admins[i].Games = allGames
		case models.RoleAdmin:
			games, err := s.adminGameRepo.ListGamesByAdmin(ctx, admins[i].ID)
			if err != nil {
				return nil, fmt.Errorf("failed to list games for admin %d: %w", admins[i].ID, err)
			}
			admins[i].Games = games
		}
	}
	return admins, nil
}

func (s *adminService) CreateAdmin(ctx context.Context, actor *models.User, input CreateAdminInput) (*models.User, error) {
	if err := s.authorizer.Require(actor.Role, ActionAdminCreate); err != nil {
		return nil, err
	}

	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrValidationFailed)
	}
	if !input.Role.IsAdminTier() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRole, input.Role)
	}
	if len(input.Password) < minPasswordLength {
		return nil, ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &models.User{
		Username:     username,
		Nickname:     username,
		Role:         input.Role,
		PasswordHash: string(hash),
	}
	if err := s.userRepo.Create(ctx, admin); err != nil {
		if errors.Is(err, repositories.ErrUserUsernameConflict) {
			return nil, ErrUsernameConflict
		}
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}

	admin.PasswordHash = ""
	return admin, nil
}

func (s *adminService) DeleteAdmin(ctx context.Context, actor *models.User, targetID int) error {
	if err := s.authorizer.Require(actor.Role, ActionAdminDelete); err != nil {
		return err
	}
	// The self-protection rule fires before any lookup so the caller gets a
	// distinct signal rather than a not-found.
	if actor.ID == targetID {
		return ErrSelfDeletion
	}

	target, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return ErrAdminNotFound
		}
		return fmt.Errorf("failed to load admin %d: %w", targetID, err)
	}
	if !target.Role.IsAdminTier() {
		return ErrAdminNotFound
	}

	if err := s.userRepo.Delete(ctx, targetID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return ErrAdminNotFound
		}
		return fmt.Errorf("failed to delete admin %d: %w", targetID, err)
	}
	return nil
}

func (s *adminService) ResetPassword(ctx context.Context, actor *models.User, targetID int, newPassword string) error {
	if err := s.authorizer.Require(actor.Role, ActionAdminResetPassword); err != nil {
		return err
	}
	if len(newPassword) < minPasswordLength {
		return ErrPasswordTooShort
	}

	target, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return ErrAdminNotFound
		}
		return fmt.Errorf("failed to load admin %d: %w", targetID, err)
	}
	if !target.Role.IsAdminTier() {
		return ErrAdminNotFound
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.userRepo.UpdatePassword(ctx, targetID, string(hash)); err != nil {
		return fmt.Errorf("failed to reset password for admin %d: %w", targetID, err)
	}
	return nil
}

func (s *adminService) ChangePassword(ctx context.Context, actor *models.User, oldPassword, newPassword string) error {
	if err := s.authorizer.Require(actor.Role, ActionChangeOwnPassword); err != nil {
		return err
	}
	if len(newPassword) < minPasswordLength {
		return ErrPasswordTooShort
	}

	current, err := s.userRepo.GetByID(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to load account %d: %w", actor.ID, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(current.PasswordHash), []byte(oldPassword)); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.userRepo.UpdatePassword(ctx, actor.ID, string(hash)); err != nil {
		return fmt.Errorf("failed to change password: %w", err)
	}
	return nil
}

func (s *adminService) LinkGame(ctx context.Context, actor *models.User, adminID, gameID int) error {
	if err := s.authorizer.Require(actor.Role, ActionAdminCreate); err != nil {
		return err
	}

	target, err := s.userRepo.GetByID(ctx, adminID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return ErrAdminNotFound
		}
		return fmt.Errorf("failed to load admin %d: %w", adminID, err)
	}
	if !target.Role.IsAdminTier() {
		return ErrAdminNotFound
	}

	if err := s.adminGameRepo.Link(ctx, adminID, gameID); err != nil {
		switch {
		case errors.Is(err, repositories.ErrAdminGameLinkConflict):
			return nil // already linked, idempotent
		case errors.Is(err, repositories.ErrAdminGameLinkNotFound):
			return ErrGameNotFound
		}
		return fmt.Errorf("failed to link game %d to admin %d: %w", gameID, adminID, err)
	}
	return nil
}

func (s *adminService) UnlinkGame(ctx context.Context, actor *models.User, adminID, gameID int) error {
	if err := s.authorizer.Require(actor.Role, ActionAdminCreate); err != nil {
		return err
	}
	if err := s.adminGameRepo.Unlink(ctx, adminID, gameID); err != nil {
		if errors.Is(err, repositories.ErrAdminGameLinkNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to unlink game %d from admin %d: %w", gameID, adminID, err)
	}
	return nil
}
