package services

import (
	"context"
	"errors"
	"testing"

	"github.com/torneos/esports-api/models"
)

func newRegistrationFixture(t *testing.T) (RegistrationService, *fakeUserRepo, *fakeGameRepo, *fakeTeamRepo, *fakeInscriptionRepo) {
	t.Helper()
	userRepo := newFakeUserRepo()
	gameRepo := newFakeGameRepo()
	teamRepo := newFakeTeamRepo()
	inscriptionRepo := newFakeInscriptionRepo()
	rosterRepo := newFakeRosterRepo()
	authorizer := NewAuthorizer(newFakeAdminGameRepo())
	svc := NewRegistrationService(teamRepo, inscriptionRepo, rosterRepo, userRepo, gameRepo, &fakeUploader{}, authorizer)
	return svc, userRepo, gameRepo, teamRepo, inscriptionRepo
}

func seedUserAndGame(t *testing.T, userRepo *fakeUserRepo, gameRepo *fakeGameRepo) (*models.User, *models.Game) {
	t.Helper()
	user := &models.User{Username: "captain1", Role: models.RolePlayer}
	if err := userRepo.Create(context.Background(), user); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	game := &models.Game{Name: "Valorant", Category: models.CategoryTeam, Active: true}
	if err := gameRepo.Create(context.Background(), game); err != nil {
		t.Fatalf("seed game: %v", err)
	}
	return user, game
}

func TestRegisterTeamStartsPending(t *testing.T) {
	svc, userRepo, gameRepo, _, _ := newRegistrationFixture(t)
	user, game := seedUserAndGame(t, userRepo, gameRepo)

	team, err := svc.RegisterTeam(context.Background(), RegisterTeamInput{
		Name:      "Night Owls",
		CaptainID: user.ID,
		GameID:    game.ID,
	})
	if err != nil {
		t.Fatalf("RegisterTeam: %v", err)
	}
	if team.Status != models.RegistrationPending {
		t.Fatalf("new team status = %q, want %q", team.Status, models.RegistrationPending)
	}
}

func TestRegisterTeamRejectsSecondConfirmed(t *testing.T) {
	svc, userRepo, gameRepo, teamRepo, _ := newRegistrationFixture(t)
	user, game := seedUserAndGame(t, userRepo, gameRepo)

	confirmed := &models.Team{Name: "First", CaptainID: user.ID, GameID: game.ID, Status: models.RegistrationConfirmed}
	if err := teamRepo.Create(context.Background(), confirmed); err != nil {
		t.Fatalf("seed confirmed team: %v", err)
	}

	_, err := svc.RegisterTeam(context.Background(), RegisterTeamInput{
		Name:      "Second",
		CaptainID: user.ID,
		GameID:    game.ID,
	})
	if !errors.Is(err, ErrDuplicateRegistration) {
		t.Fatalf("RegisterTeam error = %v, want ErrDuplicateRegistration", err)
	}
}

func TestUpdateTeamStatusConfirmConflict(t *testing.T) {
	svc, userRepo, gameRepo, teamRepo, _ := newRegistrationFixture(t)
	user, game := seedUserAndGame(t, userRepo, gameRepo)
	reviewer := &models.User{ID: 99, Role: models.RoleSuperadmin}

	confirmed := &models.Team{Name: "First", CaptainID: user.ID, GameID: game.ID, Status: models.RegistrationConfirmed}
	if err := teamRepo.Create(context.Background(), confirmed); err != nil {
		t.Fatalf("seed confirmed team: %v", err)
	}
	pending := &models.Team{Name: "Second", CaptainID: user.ID, GameID: game.ID, Status: models.RegistrationPending}
	if err := teamRepo.Create(context.Background(), pending); err != nil {
		t.Fatalf("seed pending team: %v", err)
	}

	_, err := svc.UpdateTeamStatus(context.Background(), reviewer, pending.ID, models.RegistrationConfirmed)
	if !errors.Is(err, ErrDuplicateRegistration) {
		t.Fatalf("UpdateTeamStatus error = %v, want ErrDuplicateRegistration", err)
	}
}

func TestUpdateTeamStatusReconfirmSelfSucceeds(t *testing.T) {
	svc, userRepo, gameRepo, teamRepo, _ := newRegistrationFixture(t)
	user, game := seedUserAndGame(t, userRepo, gameRepo)
	reviewer := &models.User{ID: 99, Role: models.RoleSuperadmin}

	team := &models.Team{Name: "First", CaptainID: user.ID, GameID: game.ID, Status: models.RegistrationConfirmed}
	if err := teamRepo.Create(context.Background(), team); err != nil {
		t.Fatalf("seed team: %v", err)
	}

	updated, err := svc.UpdateTeamStatus(context.Background(), reviewer, team.ID, models.RegistrationConfirmed)
	if err != nil {
		t.Fatalf("re-confirming the same team: %v", err)
	}
	if updated.Status != models.RegistrationConfirmed {
		t.Fatalf("status = %q, want confirmed", updated.Status)
	}
}

func TestUpdateTeamStatusRejectsUnknownStatus(t *testing.T) {
	svc, userRepo, gameRepo, teamRepo, _ := newRegistrationFixture(t)
	user, game := seedUserAndGame(t, userRepo, gameRepo)
	reviewer := &models.User{ID: 99, Role: models.RoleSuperadmin}

	team := &models.Team{Name: "First", CaptainID: user.ID, GameID: game.ID, Status: models.RegistrationPending}
	if err := teamRepo.Create(context.Background(), team); err != nil {
		t.Fatalf("seed team: %v", err)
	}

	if _, err := svc.UpdateTeamStatus(context.Background(), reviewer, team.ID, "approved"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("UpdateTeamStatus error = %v, want ErrInvalidStatus", err)
	}
}

func TestUpdateTeamStatusRequiresReviewer(t *testing.T) {
	svc, userRepo, gameRepo, teamRepo, _ := newRegistrationFixture(t)
	user, game := seedUserAndGame(t, userRepo, gameRepo)

	team := &models.Team{Name: "First", CaptainID: user.ID, GameID: game.ID, Status: models.RegistrationPending}
	if err := teamRepo.Create(context.Background(), team); err != nil {
		t.Fatalf("seed team: %v", err)
	}

	player := &models.User{ID: user.ID, Role: models.RolePlayer}
	if _, err := svc.UpdateTeamStatus(context.Background(), player, team.ID, models.RegistrationConfirmed); !errors.Is(err, ErrForbiddenOperation) {
		t.Fatalf("UpdateTeamStatus error = %v, want ErrForbiddenOperation", err)
	}
}

func TestRegisterIndividualRejectsSecondConfirmed(t *testing.T) {
	svc, userRepo, gameRepo, _, inscriptionRepo := newRegistrationFixture(t)
	user, game := seedUserAndGame(t, userRepo, gameRepo)

	confirmed := &models.IndividualInscription{UserID: user.ID, GameID: game.ID, Status: models.RegistrationConfirmed}
	if err := inscriptionRepo.Create(context.Background(), confirmed); err != nil {
		t.Fatalf("seed confirmed inscription: %v", err)
	}

	_, err := svc.RegisterIndividual(context.Background(), RegisterIndividualInput{UserID: user.ID, GameID: game.ID})
	if !errors.Is(err, ErrDuplicateRegistration) {
		t.Fatalf("RegisterIndividual error = %v, want ErrDuplicateRegistration", err)
	}
}

func TestRegisterIndividualUnknownGame(t *testing.T) {
	svc, userRepo, _, _, _ := newRegistrationFixture(t)
	user := &models.User{Username: "solo", Role: models.RolePlayer}
	if err := userRepo.Create(context.Background(), user); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	_, err := svc.RegisterIndividual(context.Background(), RegisterIndividualInput{UserID: user.ID, GameID: 404})
	if !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("RegisterIndividual error = %v, want ErrGameNotFound", err)
	}
}

func TestRosterManagement(t *testing.T) {
	svc, userRepo, gameRepo, teamRepo, _ := newRegistrationFixture(t)
	captain, game := seedUserAndGame(t, userRepo, gameRepo)

	player := &models.User{Username: "player2", Role: models.RolePlayer}
	if err := userRepo.Create(context.Background(), player); err != nil {
		t.Fatalf("seed player: %v", err)
	}
	team := &models.Team{Name: "Night Owls", CaptainID: captain.ID, GameID: game.ID, Status: models.RegistrationConfirmed}
	if err := teamRepo.Create(context.Background(), team); err != nil {
		t.Fatalf("seed team: %v", err)
	}

	if err := svc.AddRosterMember(context.Background(), captain, team.ID, player.ID); err != nil {
		t.Fatalf("captain adding member: %v", err)
	}
	if err := svc.AddRosterMember(context.Background(), captain, team.ID, player.ID); !errors.Is(err, ErrRosterConflict) {
		t.Fatalf("duplicate roster add error = %v, want ErrRosterConflict", err)
	}

	stranger := &models.User{ID: 404, Role: models.RolePlayer}
	if err := svc.AddRosterMember(context.Background(), stranger, team.ID, player.ID); !errors.Is(err, ErrForbiddenOperation) {
		t.Fatalf("stranger roster add error = %v, want ErrForbiddenOperation", err)
	}

	if err := svc.RemoveRosterMember(context.Background(), captain, team.ID, player.ID); err != nil {
		t.Fatalf("captain removing member: %v", err)
	}
	if err := svc.RemoveRosterMember(context.Background(), captain, team.ID, player.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("removing absent member error = %v, want ErrNotFound", err)
	}
}
