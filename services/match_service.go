package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/torneos/esports-api/live"
	"github.com/torneos/esports-api/models"
	"github.com/torneos/esports-api/repositories"
)

// MatchBroadcaster pushes match updates to live subscribers.
type MatchBroadcaster interface {
	BroadcastToRoom(roomID string, message live.Message)
}

type CreateMatchInput struct {
	TournamentID int
	Date         time.Time
	Round        string
}

type UpdateMatchInput struct {
	Date    *time.Time
	Results *string
	Status  *models.MatchStatus
	Round   *string
}

type MatchService interface {
	CreateMatch(ctx context.Context, actor *models.User, input CreateMatchInput) (*models.Match, error)
	GetMatchByID(ctx context.Context, id int) (*models.Match, error)
	ListByTournament(ctx context.Context, tournamentID int) ([]models.Match, error)
	UpdateMatch(ctx context.Context, actor *models.User, id int, input UpdateMatchInput) (*models.Match, error)
	DeleteMatch(ctx context.Context, actor *models.User, id int) error

	AttachParticipant(ctx context.Context, actor *models.User, matchID int, ref models.ParticipantRef) (*models.MatchParticipant, error)
	DetachParticipant(ctx context.Context, actor *models.User, participantID int) error
	ListParticipants(ctx context.Context, matchID int) ([]models.MatchParticipant, error)
}

type matchService struct {
	matchRepo       repositories.MatchRepository
	participantRepo repositories.ParticipantRepository
	tournamentRepo  repositories.TournamentRepository
	authorizer      *Authorizer
	broadcaster     MatchBroadcaster
}

func NewMatchService(
	matchRepo repositories.MatchRepository,
	participantRepo repositories.ParticipantRepository,
	tournamentRepo repositories.TournamentRepository,
	authorizer *Authorizer,
	broadcaster MatchBroadcaster,
) MatchService {
	return &matchService{
		matchRepo:       matchRepo,
		participantRepo: participantRepo,
		tournamentRepo:  tournamentRepo,
		authorizer:      authorizer,
		broadcaster:     broadcaster,
	}
}

func (s *matchService) CreateMatch(ctx context.Context, actor *models.User, input CreateMatchInput) (*models.Match, error) {
	if err := s.authorizer.Require(actor.Role, ActionMatchManage); err != nil {
		return nil, err
	}
	if input.Date.IsZero() {
		return nil, fmt.Errorf("%w: match date is required", ErrValidationFailed)
	}

	if _, err := s.tournamentRepo.GetByID(ctx, input.TournamentID); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to load tournament %d: %w", input.TournamentID, err)
	}

	match := &models.Match{
		TournamentID: input.TournamentID,
		Date:         input.Date,
		Status:       models.MatchProgrammed,
		Round:        input.Round,
	}
	if err := s.matchRepo.Create(ctx, match); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to create match: %w", err)
	}
	return match, nil
}

func (s *matchService) GetMatchByID(ctx context.Context, id int) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	participants, err := s.participantRepo.ListByMatch(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load participants for match %d: %w", id, err)
	}
	match.Participants = participants
	return match, nil
}

func (s *matchService) ListByTournament(ctx context.Context, tournamentID int) ([]models.Match, error) {
	matches, err := s.matchRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches for tournament %d: %w", tournamentID, err)
	}
	return matches, nil
}

func (s *matchService) UpdateMatch(ctx context.Context, actor *models.User, id int, input UpdateMatchInput) (*models.Match, error) {
	if err := s.authorizer.Require(actor.Role, ActionMatchManage); err != nil {
		return nil, err
	}

	match, err := s.matchRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to load match %d: %w", id, err)
	}

	if input.Date != nil {
		match.Date = *input.Date
	}
	if input.Results != nil {
		match.Results = *input.Results
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, *input.Status)
		}
		match.Status = *input.Status
	}
	if input.Round != nil {
		match.Round = *input.Round
	}

	if err := s.matchRepo.Update(ctx, match); err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to update match %d: %w", id, err)
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToRoom(live.MatchRoom(match.ID), live.Message{
			Type:    "MATCH_UPDATED",
			Payload: match,
		})
	}
	return match, nil
}

func (s *matchService) DeleteMatch(ctx context.Context, actor *models.User, id int) error {
	if err := s.authorizer.Require(actor.Role, ActionMatchManage); err != nil {
		return err
	}
	if err := s.matchRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return ErrMatchNotFound
		}
		return fmt.Errorf("failed to delete match %d: %w", id, err)
	}
	return nil
}

// AttachParticipant adds a competitor to a match. The reference must name
// exactly one team or user, and each may appear at most once per match.
func (s *matchService) AttachParticipant(ctx context.Context, actor *models.User, matchID int, ref models.ParticipantRef) (*models.MatchParticipant, error) {
	if err := s.authorizer.Require(actor.Role, ActionMatchManage); err != nil {
		return nil, err
	}
	if !ref.Valid() {
		return nil, ErrInvalidParticipant
	}

	if _, err := s.matchRepo.GetByID(ctx, matchID); err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to load match %d: %w", matchID, err)
	}

	// Friendly pre-check; the partial unique indexes still catch races.
	existing, err := s.participantRepo.ListByMatch(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants for match %d: %w", matchID, err)
	}
	for _, p := range existing {
		if p.Ref() == ref {
			return nil, ErrDuplicateParticipant
		}
	}

	participant := &models.MatchParticipant{MatchID: matchID}
	switch ref.Kind {
	case models.ParticipantTeam:
		id := ref.ID
		participant.TeamID = &id
	case models.ParticipantUser:
		id := ref.ID
		participant.UserID = &id
	}

	if err := s.participantRepo.Create(ctx, participant); err != nil {
		switch {
		case errors.Is(err, repositories.ErrParticipantConflict):
			return nil, ErrDuplicateParticipant
		case errors.Is(err, repositories.ErrParticipantInvalid):
			return nil, ErrInvalidParticipant
		case errors.Is(err, repositories.ErrParticipantNotFound):
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to attach participant: %w", err)
	}
	return participant, nil
}

func (s *matchService) DetachParticipant(ctx context.Context, actor *models.User, participantID int) error {
	if err := s.authorizer.Require(actor.Role, ActionMatchManage); err != nil {
		return err
	}
	if err := s.participantRepo.Delete(ctx, participantID); err != nil {
		if errors.Is(err, repositories.ErrParticipantNotFound) {
			return ErrParticipantNotFound
		}
		return fmt.Errorf("failed to detach participant %d: %w", participantID, err)
	}
	return nil
}

func (s *matchService) ListParticipants(ctx context.Context, matchID int) ([]models.MatchParticipant, error) {
	participants, err := s.participantRepo.ListByMatch(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants for match %d: %w", matchID, err)
	}
	return participants, nil
}
