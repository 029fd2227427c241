package services

import (
	"context"
	"errors"
	"testing"

	"github.com/torneos/esports-api/models"
)

func TestCanRoleTable(t *testing.T) {
	cases := []struct {
		role   models.UserRole
		action Action
		want   bool
	}{
		{models.RoleSuperadmin, ActionGameCreate, true},
		{models.RoleSuperadmin, ActionAdminDelete, true},
		{models.RoleSuperadmin, Action("unknown:action"), true},

		{models.RoleAdmin, ActionGamePartialFix, true},
		{models.RoleAdmin, ActionChangeOwnPassword, true},
		{models.RoleAdmin, ActionGameCreate, false},
		{models.RoleAdmin, ActionGameSetActive, false},
		{models.RoleAdmin, ActionAdminCreate, false},
		{models.RoleAdmin, ActionAdminDelete, false},

		{models.RoleCaptain, ActionGamePartialFix, false},
		{models.RoleCaptain, ActionRegistrationReview, false},
		{models.RolePlayer, ActionTournamentManage, false},
		{models.RolePlayer, Action("unknown:action"), false},
	}
	for _, tc := range cases {
		if got := Can(tc.role, tc.action); got != tc.want {
			t.Errorf("Can(%s, %s) = %v, want %v", tc.role, tc.action, got, tc.want)
		}
	}
}

func TestAdminMayEditGameField(t *testing.T) {
	allowed := []string{"description", "rules"}
	for _, field := range allowed {
		if !AdminMayEditGameField(field) {
			t.Errorf("AdminMayEditGameField(%q) = false, want true", field)
		}
	}
	denied := []string{"name", "category", "active", "cover", ""}
	for _, field := range denied {
		if AdminMayEditGameField(field) {
			t.Errorf("AdminMayEditGameField(%q) = true, want false", field)
		}
	}
}

func TestRequireGameAccess(t *testing.T) {
	adminGameRepo := newFakeAdminGameRepo()
	authorizer := NewAuthorizer(adminGameRepo)

	if err := adminGameRepo.Link(context.Background(), 2, 10); err != nil {
		t.Fatalf("seed link: %v", err)
	}

	superadmin := &models.User{ID: 1, Role: models.RoleSuperadmin}
	if err := authorizer.RequireGameAccess(context.Background(), superadmin, 99); err != nil {
		t.Fatalf("superadmin access to any game: %v", err)
	}

	admin := &models.User{ID: 2, Role: models.RoleAdmin}
	if err := authorizer.RequireGameAccess(context.Background(), admin, 10); err != nil {
		t.Fatalf("admin access to linked game: %v", err)
	}
	if err := authorizer.RequireGameAccess(context.Background(), admin, 11); !errors.Is(err, ErrForbiddenOperation) {
		t.Fatalf("admin access to unlinked game = %v, want ErrForbiddenOperation", err)
	}

	player := &models.User{ID: 3, Role: models.RolePlayer}
	if err := authorizer.RequireGameAccess(context.Background(), player, 10); !errors.Is(err, ErrForbiddenOperation) {
		t.Fatalf("player game access = %v, want ErrForbiddenOperation", err)
	}
}
