package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/torneos/esports-api/live"
	"github.com/torneos/esports-api/models"
)

type recordingBroadcaster struct {
	rooms    []string
	messages []live.Message
}

func (b *recordingBroadcaster) BroadcastToRoom(roomID string, message live.Message) {
	b.rooms = append(b.rooms, roomID)
	b.messages = append(b.messages, message)
}

func newMatchFixture(t *testing.T) (MatchService, *fakeMatchRepo, *fakeTournamentRepo, *recordingBroadcaster) {
	t.Helper()
	matchRepo := newFakeMatchRepo()
	tournamentRepo := newFakeTournamentRepo()
	participantRepo := newFakeParticipantRepo()
	broadcaster := &recordingBroadcaster{}
	authorizer := NewAuthorizer(newFakeAdminGameRepo())
	svc := NewMatchService(matchRepo, participantRepo, tournamentRepo, authorizer, broadcaster)
	return svc, matchRepo, tournamentRepo, broadcaster
}

func seedMatch(t *testing.T, matchRepo *fakeMatchRepo, tournamentRepo *fakeTournamentRepo) *models.Match {
	t.Helper()
	tournament := &models.Tournament{GameID: 1, Name: "Summer Cup", StartDate: time.Now(), Status: models.TournamentUpcoming}
	if err := tournamentRepo.Create(context.Background(), tournament); err != nil {
		t.Fatalf("seed tournament: %v", err)
	}
	match := &models.Match{TournamentID: tournament.ID, Date: time.Now(), Status: models.MatchProgrammed}
	if err := matchRepo.Create(context.Background(), match); err != nil {
		t.Fatalf("seed match: %v", err)
	}
	return match
}

func TestAttachParticipantRejectsInvalidRef(t *testing.T) {
	svc, matchRepo, tournamentRepo, _ := newMatchFixture(t)
	match := seedMatch(t, matchRepo, tournamentRepo)
	admin := &models.User{ID: 1, Role: models.RoleSuperadmin}

	cases := []struct {
		name string
		ref  models.ParticipantRef
	}{
		{"zero value", models.ParticipantRef{}},
		{"unknown kind", models.ParticipantRef{Kind: "guild", ID: 3}},
		{"missing id", models.ParticipantRef{Kind: models.ParticipantTeam}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.AttachParticipant(context.Background(), admin, match.ID, tc.ref); !errors.Is(err, ErrInvalidParticipant) {
				t.Fatalf("AttachParticipant error = %v, want ErrInvalidParticipant", err)
			}
		})
	}
}

func TestAttachParticipantRejectsDuplicate(t *testing.T) {
	svc, matchRepo, tournamentRepo, _ := newMatchFixture(t)
	match := seedMatch(t, matchRepo, tournamentRepo)
	admin := &models.User{ID: 1, Role: models.RoleSuperadmin}

	if _, err := svc.AttachParticipant(context.Background(), admin, match.ID, models.TeamRef(7)); err != nil {
		t.Fatalf("first attach: %v", err)
	}
	if _, err := svc.AttachParticipant(context.Background(), admin, match.ID, models.TeamRef(7)); !errors.Is(err, ErrDuplicateParticipant) {
		t.Fatalf("duplicate attach error = %v, want ErrDuplicateParticipant", err)
	}

	// A user ref with the same numeric id is a different competitor.
	if _, err := svc.AttachParticipant(context.Background(), admin, match.ID, models.UserRef(7)); err != nil {
		t.Fatalf("user ref with same id: %v", err)
	}
}

func TestAttachParticipantStoresExactlyOneSide(t *testing.T) {
	svc, matchRepo, tournamentRepo, _ := newMatchFixture(t)
	match := seedMatch(t, matchRepo, tournamentRepo)
	admin := &models.User{ID: 1, Role: models.RoleSuperadmin}

	participant, err := svc.AttachParticipant(context.Background(), admin, match.ID, models.UserRef(12))
	if err != nil {
		t.Fatalf("AttachParticipant: %v", err)
	}
	if participant.TeamID != nil {
		t.Fatalf("user participant has team id set")
	}
	if participant.UserID == nil || *participant.UserID != 12 {
		t.Fatalf("user participant user id = %v, want 12", participant.UserID)
	}
	if got := participant.Ref(); got != models.UserRef(12) {
		t.Fatalf("Ref() = %+v, want user ref 12", got)
	}
}

func TestDetachParticipantNotFound(t *testing.T) {
	svc, _, _, _ := newMatchFixture(t)
	admin := &models.User{ID: 1, Role: models.RoleSuperadmin}

	if err := svc.DetachParticipant(context.Background(), admin, 404); !errors.Is(err, ErrParticipantNotFound) {
		t.Fatalf("DetachParticipant error = %v, want ErrParticipantNotFound", err)
	}
}

func TestUpdateMatchBroadcastsToRoom(t *testing.T) {
	svc, matchRepo, tournamentRepo, broadcaster := newMatchFixture(t)
	match := seedMatch(t, matchRepo, tournamentRepo)
	admin := &models.User{ID: 1, Role: models.RoleSuperadmin}

	results := "2-1"
	status := models.MatchPlayed
	if _, err := svc.UpdateMatch(context.Background(), admin, match.ID, UpdateMatchInput{Results: &results, Status: &status}); err != nil {
		t.Fatalf("UpdateMatch: %v", err)
	}

	if len(broadcaster.rooms) != 1 || broadcaster.rooms[0] != live.MatchRoom(match.ID) {
		t.Fatalf("broadcast rooms = %v, want [%s]", broadcaster.rooms, live.MatchRoom(match.ID))
	}
	if broadcaster.messages[0].Type != "MATCH_UPDATED" {
		t.Fatalf("broadcast type = %q, want MATCH_UPDATED", broadcaster.messages[0].Type)
	}
}

func TestUpdateMatchRejectsUnknownStatus(t *testing.T) {
	svc, matchRepo, tournamentRepo, _ := newMatchFixture(t)
	match := seedMatch(t, matchRepo, tournamentRepo)
	admin := &models.User{ID: 1, Role: models.RoleSuperadmin}

	bad := models.MatchStatus("finished")
	if _, err := svc.UpdateMatch(context.Background(), admin, match.ID, UpdateMatchInput{Status: &bad}); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("UpdateMatch error = %v, want ErrInvalidStatus", err)
	}
}

func TestMatchManagementRequiresPrivilege(t *testing.T) {
	svc, matchRepo, tournamentRepo, _ := newMatchFixture(t)
	match := seedMatch(t, matchRepo, tournamentRepo)
	player := &models.User{ID: 5, Role: models.RolePlayer}

	if _, err := svc.AttachParticipant(context.Background(), player, match.ID, models.TeamRef(1)); !errors.Is(err, ErrForbiddenOperation) {
		t.Fatalf("player attach error = %v, want ErrForbiddenOperation", err)
	}
	if err := svc.DeleteMatch(context.Background(), player, match.ID); !errors.Is(err, ErrForbiddenOperation) {
		t.Fatalf("player delete error = %v, want ErrForbiddenOperation", err)
	}
}
