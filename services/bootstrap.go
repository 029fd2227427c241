package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/torneos/esports-api/models"
	"github.com/torneos/esports-api/repositories"
	"golang.org/x/crypto/bcrypt"
)

// EnsureSuperadmin guarantees the canonical superadmin account exists after
// startup. It upserts on every run: if the configured username is missing
// the account is created, otherwise its role and credential are reset to
// match configuration. Safe to run on every process start.
func EnsureSuperadmin(ctx context.Context, userRepo repositories.UserRepository, logger *slog.Logger, username, password string) error {
	if username == "" || password == "" {
		return fmt.Errorf("%w: superadmin username and password must be configured", ErrValidationFailed)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash superadmin password: %w", err)
	}

	existing, err := userRepo.GetByUsername(ctx, username)
	switch {
	case err == nil:
		existing.Role = models.RoleSuperadmin
		existing.PasswordHash = string(hash)
		if err := userRepo.Update(ctx, existing); err != nil {
			return fmt.Errorf("failed to resync superadmin account: %w", err)
		}
		logger.Info("superadmin account resynced", slog.String("username", username))
		return nil

	case errors.Is(err, repositories.ErrUserNotFound):
		account := &models.User{
			Username:     username,
			Nickname:     username,
			Role:         models.RoleSuperadmin,
			PasswordHash: string(hash),
		}
		if err := userRepo.Create(ctx, account); err != nil {
			// A concurrent start may have created it in between; resync then.
			if errors.Is(err, repositories.ErrUserUsernameConflict) {
				return EnsureSuperadmin(ctx, userRepo, logger, username, password)
			}
			return fmt.Errorf("failed to create superadmin account: %w", err)
		}
		logger.Info("superadmin account created", slog.String("username", username))
		return nil

	default:
		return fmt.Errorf("failed to look up superadmin account: %w", err)
	}
}
