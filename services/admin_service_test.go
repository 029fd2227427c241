package services

import (
	"context"
	"errors"
	"testing"

	"github.com/torneos/esports-api/models"
	"golang.org/x/crypto/bcrypt"
)

func newAdminFixture(t *testing.T) (AdminService, *fakeUserRepo, *fakeAdminGameRepo) {
	t.Helper()
	userRepo := newFakeUserRepo()
	gameRepo := newFakeGameRepo()
	adminGameRepo := newFakeAdminGameRepo()
	svc := NewAdminService(userRepo, gameRepo, adminGameRepo, NewAuthorizer(adminGameRepo))
	return svc, userRepo, adminGameRepo
}

func seedAccount(t *testing.T, userRepo *fakeUserRepo, username string, role models.UserRole, password string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := &models.User{Username: username, Nickname: username, Role: role, PasswordHash: string(hash)}
	if err := userRepo.Create(context.Background(), user); err != nil {
		t.Fatalf("seed account %s: %v", username, err)
	}
	return user
}

func TestCreateAdminRejectsNonAdminRole(t *testing.T) {
	svc, userRepo, _ := newAdminFixture(t)
	superadmin := seedAccount(t, userRepo, "root", models.RoleSuperadmin, "rootpassword")

	for _, role := range []models.UserRole{models.RolePlayer, models.RoleCaptain, "moderator"} {
		_, err := svc.CreateAdmin(context.Background(), superadmin, CreateAdminInput{
			Username: "new-" + string(role),
			Password: "longenough",
			Role:     role,
		})
		if !errors.Is(err, ErrInvalidRole) {
			t.Fatalf("CreateAdmin(role=%s) error = %v, want ErrInvalidRole", role, err)
		}
	}
}

func TestCreateAdminRejectsShortPassword(t *testing.T) {
	svc, userRepo, _ := newAdminFixture(t)
	superadmin := seedAccount(t, userRepo, "root", models.RoleSuperadmin, "rootpassword")

	_, err := svc.CreateAdmin(context.Background(), superadmin, CreateAdminInput{
		Username: "shorty",
		Password: "short",
		Role:     models.RoleAdmin,
	})
	if !errors.Is(err, ErrPasswordTooShort) {
		t.Fatalf("CreateAdmin error = %v, want ErrPasswordTooShort", err)
	}
}

func TestCreateAdminDeniedToAdmin(t *testing.T) {
	svc, userRepo, _ := newAdminFixture(t)
	admin := seedAccount(t, userRepo, "admin1", models.RoleAdmin, "adminpassword")

	_, err := svc.CreateAdmin(context.Background(), admin, CreateAdminInput{
		Username: "peer",
		Password: "longenough",
		Role:     models.RoleAdmin,
	})
	if !errors.Is(err, ErrForbiddenOperation) {
		t.Fatalf("CreateAdmin error = %v, want ErrForbiddenOperation", err)
	}
}

func TestDeleteAdminSelfProtection(t *testing.T) {
	svc, userRepo, _ := newAdminFixture(t)
	superadmin := seedAccount(t, userRepo, "root", models.RoleSuperadmin, "rootpassword")

	if err := svc.DeleteAdmin(context.Background(), superadmin, superadmin.ID); !errors.Is(err, ErrSelfDeletion) {
		t.Fatalf("DeleteAdmin(self) error = %v, want ErrSelfDeletion", err)
	}
}

func TestDeleteAdminIgnoresNonAdminTargets(t *testing.T) {
	svc, userRepo, _ := newAdminFixture(t)
	superadmin := seedAccount(t, userRepo, "root", models.RoleSuperadmin, "rootpassword")
	player := seedAccount(t, userRepo, "player1", models.RolePlayer, "playerpassword")

	if err := svc.DeleteAdmin(context.Background(), superadmin, player.ID); !errors.Is(err, ErrAdminNotFound) {
		t.Fatalf("DeleteAdmin(player) error = %v, want ErrAdminNotFound", err)
	}
	if err := svc.DeleteAdmin(context.Background(), superadmin, 404); !errors.Is(err, ErrAdminNotFound) {
		t.Fatalf("DeleteAdmin(missing) error = %v, want ErrAdminNotFound", err)
	}
}

func TestDeleteAdminRemovesAccount(t *testing.T) {
	svc, userRepo, _ := newAdminFixture(t)
	superadmin := seedAccount(t, userRepo, "root", models.RoleSuperadmin, "rootpassword")
	admin := seedAccount(t, userRepo, "admin1", models.RoleAdmin, "adminpassword")

	if err := svc.DeleteAdmin(context.Background(), superadmin, admin.ID); err != nil {
		t.Fatalf("DeleteAdmin: %v", err)
	}
	if _, err := userRepo.GetByID(context.Background(), admin.ID); err == nil {
		t.Fatalf("admin account still present after delete")
	}
}

func TestChangePasswordRequiresCurrent(t *testing.T) {
	svc, userRepo, _ := newAdminFixture(t)
	admin := seedAccount(t, userRepo, "admin1", models.RoleAdmin, "adminpassword")

	if err := svc.ChangePassword(context.Background(), admin, "wrongpassword", "newpassword1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("ChangePassword error = %v, want ErrInvalidCredentials", err)
	}

	if err := svc.ChangePassword(context.Background(), admin, "adminpassword", "newpassword1"); err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}
	stored, err := userRepo.GetByID(context.Background(), admin.ID)
	if err != nil {
		t.Fatalf("reload account: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("newpassword1")); err != nil {
		t.Fatalf("new password does not verify: %v", err)
	}
}

func TestResetPasswordSuperadminOnly(t *testing.T) {
	svc, userRepo, _ := newAdminFixture(t)
	superadmin := seedAccount(t, userRepo, "root", models.RoleSuperadmin, "rootpassword")
	admin := seedAccount(t, userRepo, "admin1", models.RoleAdmin, "adminpassword")

	if err := svc.ResetPassword(context.Background(), admin, superadmin.ID, "newpassword1"); !errors.Is(err, ErrForbiddenOperation) {
		t.Fatalf("admin reset error = %v, want ErrForbiddenOperation", err)
	}
	if err := svc.ResetPassword(context.Background(), superadmin, admin.ID, "newpassword1"); err != nil {
		t.Fatalf("superadmin reset: %v", err)
	}
}

func TestListAdminsAttachesLinkedGames(t *testing.T) {
	svc, userRepo, adminGameRepo := newAdminFixture(t)
	superadmin := seedAccount(t, userRepo, "root", models.RoleSuperadmin, "rootpassword")
	admin := seedAccount(t, userRepo, "admin1", models.RoleAdmin, "adminpassword")
	seedAccount(t, userRepo, "player1", models.RolePlayer, "playerpassword")

	adminGameRepo.games[1] = models.Game{ID: 1, Name: "Valorant"}
	if err := adminGameRepo.Link(context.Background(), admin.ID, 1); err != nil {
		t.Fatalf("seed link: %v", err)
	}

	admins, err := svc.ListAdmins(context.Background(), superadmin)
	if err != nil {
		t.Fatalf("ListAdmins: %v", err)
	}
	if len(admins) != 2 {
		t.Fatalf("ListAdmins length = %d, want 2 (players excluded)", len(admins))
	}
	for _, account := range admins {
		if account.PasswordHash != "" {
			t.Fatalf("password hash leaked for %s", account.Username)
		}
		if account.ID == admin.ID && len(account.Games) != 1 {
			t.Fatalf("admin games = %v, want the one linked game", account.Games)
		}
	}
}

func TestLinkGameIdempotent(t *testing.T) {
	svc, userRepo, _ := newAdminFixture(t)
	superadmin := seedAccount(t, userRepo, "root", models.RoleSuperadmin, "rootpassword")
	admin := seedAccount(t, userRepo, "admin1", models.RoleAdmin, "adminpassword")

	if err := svc.LinkGame(context.Background(), superadmin, admin.ID, 1); err != nil {
		t.Fatalf("first link: %v", err)
	}
	if err := svc.LinkGame(context.Background(), superadmin, admin.ID, 1); err != nil {
		t.Fatalf("second link should be idempotent: %v", err)
	}
}
