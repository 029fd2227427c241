package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/torneos/esports-api/models"
)

func newGameFixture(t *testing.T) (GameService, *fakeGameRepo, *fakeAdminGameRepo, *fakeUploader) {
	t.Helper()
	gameRepo := newFakeGameRepo()
	adminGameRepo := newFakeAdminGameRepo()
	uploader := &fakeUploader{}
	svc := NewGameService(gameRepo, uploader, NewAuthorizer(adminGameRepo))
	return svc, gameRepo, adminGameRepo, uploader
}

func TestCreateGameSuperadminOnly(t *testing.T) {
	svc, _, _, _ := newGameFixture(t)
	admin := &models.User{ID: 2, Role: models.RoleAdmin}

	_, err := svc.CreateGame(context.Background(), admin, CreateGameInput{Name: "Dota 2", Category: models.CategoryTeam})
	if !errors.Is(err, ErrForbiddenOperation) {
		t.Fatalf("admin create error = %v, want ErrForbiddenOperation", err)
	}

	superadmin := &models.User{ID: 1, Role: models.RoleSuperadmin}
	game, err := svc.CreateGame(context.Background(), superadmin, CreateGameInput{Name: "Dota 2", Category: models.CategoryTeam})
	if err != nil {
		t.Fatalf("superadmin create: %v", err)
	}
	if !game.Active {
		t.Fatalf("new game should start active")
	}
}

func TestCreateGameDuplicateName(t *testing.T) {
	svc, _, _, _ := newGameFixture(t)
	superadmin := &models.User{ID: 1, Role: models.RoleSuperadmin}

	if _, err := svc.CreateGame(context.Background(), superadmin, CreateGameInput{Name: "Tekken 8", Category: models.CategoryIndividual}); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := svc.CreateGame(context.Background(), superadmin, CreateGameInput{Name: "Tekken 8", Category: models.CategoryIndividual}); !errors.Is(err, ErrGameNameConflict) {
		t.Fatalf("duplicate create error = %v, want ErrGameNameConflict", err)
	}
}

func TestCreateGameRejectsWrongRulesExtension(t *testing.T) {
	svc, _, _, uploader := newGameFixture(t)
	superadmin := &models.User{ID: 1, Role: models.RoleSuperadmin}

	_, err := svc.CreateGame(context.Background(), superadmin, CreateGameInput{
		Name:     "CS2",
		Category: models.CategoryTeam,
		Rules:    &FileUpload{Filename: "rules.exe", Reader: strings.NewReader("x")},
	})
	if !errors.Is(err, ErrInvalidFileFormat) {
		t.Fatalf("create error = %v, want ErrInvalidFileFormat", err)
	}
	if len(uploader.uploaded) != 0 {
		t.Fatalf("nothing should reach the object store on a rejected upload")
	}
}

func TestPartialUpdateAdminFieldRestrictions(t *testing.T) {
	svc, gameRepo, adminGameRepo, _ := newGameFixture(t)
	admin := &models.User{ID: 2, Role: models.RoleAdmin}

	game := &models.Game{Name: "LoL", Category: models.CategoryTeam, Active: true}
	if err := gameRepo.Create(context.Background(), game); err != nil {
		t.Fatalf("seed game: %v", err)
	}
	if err := adminGameRepo.Link(context.Background(), admin.ID, game.ID); err != nil {
		t.Fatalf("seed link: %v", err)
	}

	description := "Updated tournament rules apply."
	updated, err := svc.PartialUpdateGame(context.Background(), admin, game.ID, PartialGameUpdate{Description: &description})
	if err != nil {
		t.Fatalf("admin description update: %v", err)
	}
	if updated.Description != description {
		t.Fatalf("description = %q, want %q", updated.Description, description)
	}

	inactive := false
	if _, err := svc.PartialUpdateGame(context.Background(), admin, game.ID, PartialGameUpdate{Active: &inactive}); !errors.Is(err, ErrForbiddenOperation) {
		t.Fatalf("admin active toggle error = %v, want ErrForbiddenOperation", err)
	}
	name := "LoL EUW"
	if _, err := svc.PartialUpdateGame(context.Background(), admin, game.ID, PartialGameUpdate{Name: &name}); !errors.Is(err, ErrForbiddenOperation) {
		t.Fatalf("admin rename error = %v, want ErrForbiddenOperation", err)
	}
}

func TestPartialUpdateAdminRequiresLink(t *testing.T) {
	svc, gameRepo, _, _ := newGameFixture(t)
	admin := &models.User{ID: 2, Role: models.RoleAdmin}

	game := &models.Game{Name: "LoL", Category: models.CategoryTeam, Active: true}
	if err := gameRepo.Create(context.Background(), game); err != nil {
		t.Fatalf("seed game: %v", err)
	}

	description := "new"
	if _, err := svc.PartialUpdateGame(context.Background(), admin, game.ID, PartialGameUpdate{Description: &description}); !errors.Is(err, ErrForbiddenOperation) {
		t.Fatalf("unlinked admin update error = %v, want ErrForbiddenOperation", err)
	}
}

func TestPartialUpdateRenameConflict(t *testing.T) {
	svc, gameRepo, _, _ := newGameFixture(t)
	superadmin := &models.User{ID: 1, Role: models.RoleSuperadmin}

	first := &models.Game{Name: "Tekken 8", Category: models.CategoryIndividual, Active: true}
	second := &models.Game{Name: "Street Fighter 6", Category: models.CategoryIndividual, Active: true}
	for _, g := range []*models.Game{first, second} {
		if err := gameRepo.Create(context.Background(), g); err != nil {
			t.Fatalf("seed game: %v", err)
		}
	}

	name := "Tekken 8"
	if _, err := svc.PartialUpdateGame(context.Background(), superadmin, second.ID, PartialGameUpdate{Name: &name}); !errors.Is(err, ErrGameNameConflict) {
		t.Fatalf("rename error = %v, want ErrGameNameConflict", err)
	}

	// Re-asserting a game's own name is not a conflict.
	sameName := "Street Fighter 6"
	if _, err := svc.PartialUpdateGame(context.Background(), superadmin, second.ID, PartialGameUpdate{Name: &sameName}); err != nil {
		t.Fatalf("same-name update: %v", err)
	}
}

func TestSetGameActiveHidesFromPublicList(t *testing.T) {
	svc, gameRepo, _, _ := newGameFixture(t)
	superadmin := &models.User{ID: 1, Role: models.RoleSuperadmin}

	game := &models.Game{Name: "Valorant", Category: models.CategoryTeam, Active: true}
	if err := gameRepo.Create(context.Background(), game); err != nil {
		t.Fatalf("seed game: %v", err)
	}

	if err := svc.SetGameActive(context.Background(), superadmin, game.ID, false); err != nil {
		t.Fatalf("SetGameActive: %v", err)
	}

	visible, err := svc.GetAllGames(context.Background(), true)
	if err != nil {
		t.Fatalf("GetAllGames: %v", err)
	}
	if len(visible) != 0 {
		t.Fatalf("deactivated game still in public list: %v", visible)
	}

	all, err := svc.GetAllGames(context.Background(), false)
	if err != nil {
		t.Fatalf("GetAllGames(all): %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("full list length = %d, want 1", len(all))
	}
}

func TestValidateAttachmentExtensions(t *testing.T) {
	cases := []struct {
		kind     AttachmentKind
		filename string
		ok       bool
	}{
		{AttachmentDocument, "rules.pdf", true},
		{AttachmentDocument, "rules.PDF", true},
		{AttachmentDocument, "rules.png", false},
		{AttachmentImage, "cover.webp", true},
		{AttachmentImage, "cover.mp4", false},
		{AttachmentVideo, "clip.mp4", true},
		{AttachmentVideo, "clip", false},
	}
	for _, tc := range cases {
		err := ValidateAttachment(tc.kind, tc.filename)
		if tc.ok && err != nil {
			t.Errorf("ValidateAttachment(%s, %q) = %v, want nil", tc.kind, tc.filename, err)
		}
		if !tc.ok && !errors.Is(err, ErrInvalidFileFormat) {
			t.Errorf("ValidateAttachment(%s, %q) = %v, want ErrInvalidFileFormat", tc.kind, tc.filename, err)
		}
	}
}
