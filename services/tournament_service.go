package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/torneos/esports-api/models"
	"github.com/torneos/esports-api/repositories"
	"golang.org/x/sync/errgroup"
)

type CreateTournamentInput struct {
	GameID    int
	Name      string
	StartDate time.Time
}

type UpdateTournamentInput struct {
	Name      *string
	StartDate *time.Time
	Status    *models.TournamentStatus
}

type TournamentService interface {
	CreateTournament(ctx context.Context, actor *models.User, input CreateTournamentInput) (*models.Tournament, error)
	GetTournamentByID(ctx context.Context, id int) (*models.Tournament, error)
	GetAllTournaments(ctx context.Context) ([]models.Tournament, error)
	ListByGame(ctx context.Context, gameID int) ([]models.Tournament, error)
	UpdateTournament(ctx context.Context, actor *models.User, id int, input UpdateTournamentInput) (*models.Tournament, error)
	DeleteTournament(ctx context.Context, actor *models.User, id int) error
}

type tournamentService struct {
	tournamentRepo  repositories.TournamentRepository
	gameRepo        repositories.GameRepository
	matchRepo       repositories.MatchRepository
	participantRepo repositories.ParticipantRepository
	authorizer      *Authorizer
}

func NewTournamentService(
	tournamentRepo repositories.TournamentRepository,
	gameRepo repositories.GameRepository,
	matchRepo repositories.MatchRepository,
	participantRepo repositories.ParticipantRepository,
	authorizer *Authorizer,
) TournamentService {
	return &tournamentService{
		tournamentRepo:  tournamentRepo,
		gameRepo:        gameRepo,
		matchRepo:       matchRepo,
		participantRepo: participantRepo,
		authorizer:      authorizer,
	}
}

func (s *tournamentService) CreateTournament(ctx context.Context, actor *models.User, input CreateTournamentInput) (*models.Tournament, error) {
	if err := s.authorizer.Require(actor.Role, ActionTournamentManage); err != nil {
		return nil, err
	}
	if input.Name == "" {
		return nil, fmt.Errorf("%w: tournament name is required", ErrValidationFailed)
	}
	if input.StartDate.IsZero() {
		return nil, fmt.Errorf("%w: tournament start date is required", ErrValidationFailed)
	}

	if _, err := s.gameRepo.GetByID(ctx, input.GameID); err != nil {
		if errors.Is(err, repositories.ErrGameNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to load game %d: %w", input.GameID, err)
	}

	tournament := &models.Tournament{
		GameID:    input.GameID,
		Name:      input.Name,
		StartDate: input.StartDate,
		Status:    models.TournamentUpcoming,
	}
	if err := s.tournamentRepo.Create(ctx, tournament); err != nil {
		if errors.Is(err, repositories.ErrGameNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to create tournament: %w", err)
	}
	return tournament, nil
}

// GetTournamentByID returns the tournament with its matches, each match
// carrying its participants. Match participant lists load concurrently.
func (s *tournamentService) GetTournamentByID(ctx context.Context, id int) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to load tournament %d: %w", id, err)
	}

	matches, err := s.matchRepo.ListByTournament(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches for tournament %d: %w", id, err)
	}

	g, gctx := errgroup.WithContext(ctx)
	for i := range matches {
		i := i
		g.Go(func() error {
			participants, err := s.participantRepo.ListByMatch(gctx, matches[i].ID)
			if err != nil {
				return fmt.Errorf("failed to load participants for match %d: %w", matches[i].ID, err)
			}
			matches[i].Participants = participants
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	tournament.Matches = matches
	return tournament, nil
}

func (s *tournamentService) GetAllTournaments(ctx context.Context) ([]models.Tournament, error) {
	tournaments, err := s.tournamentRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments: %w", err)
	}
	return tournaments, nil
}

func (s *tournamentService) ListByGame(ctx context.Context, gameID int) ([]models.Tournament, error) {
	tournaments, err := s.tournamentRepo.ListByGame(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments for game %d: %w", gameID, err)
	}
	return tournaments, nil
}

func (s *tournamentService) UpdateTournament(ctx context.Context, actor *models.User, id int, input UpdateTournamentInput) (*models.Tournament, error) {
	if err := s.authorizer.Require(actor.Role, ActionTournamentManage); err != nil {
		return nil, err
	}

	tournament, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to load tournament %d: %w", id, err)
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, fmt.Errorf("%w: tournament name is required", ErrValidationFailed)
		}
		tournament.Name = *input.Name
	}
	if input.StartDate != nil {
		tournament.StartDate = *input.StartDate
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, *input.Status)
		}
		tournament.Status = *input.Status
	}

	if err := s.tournamentRepo.Update(ctx, tournament); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to update tournament %d: %w", id, err)
	}
	return tournament, nil
}

func (s *tournamentService) DeleteTournament(ctx context.Context, actor *models.User, id int) error {
	if err := s.authorizer.Require(actor.Role, ActionTournamentManage); err != nil {
		return err
	}
	if err := s.tournamentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return ErrTournamentNotFound
		}
		return fmt.Errorf("failed to delete tournament %d: %w", id, err)
	}
	return nil
}
