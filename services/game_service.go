package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/torneos/esports-api/models"
	"github.com/torneos/esports-api/repositories"
	"github.com/torneos/esports-api/storage"
)

type CreateGameInput struct {
	Name        string
	Description string
	Category    models.GameCategory
	Rules       *FileUpload
	Cover       *FileUpload
}

// PartialGameUpdate carries the fields a partial update wants to touch.
// Nil pointers mean "leave alone".
type PartialGameUpdate struct {
	Name        *string
	Description *string
	Category    *models.GameCategory
	Active      *bool
	Rules       *FileUpload
	Cover       *FileUpload
}

type GameService interface {
	CreateGame(ctx context.Context, actor *models.User, input CreateGameInput) (*models.Game, error)
	GetGameByID(ctx context.Context, id int) (*models.Game, error)
	GetAllGames(ctx context.Context, onlyActive bool) ([]models.Game, error)
	PartialUpdateGame(ctx context.Context, actor *models.User, id int, update PartialGameUpdate) (*models.Game, error)
	SetGameActive(ctx context.Context, actor *models.User, id int, active bool) error
	DeleteGame(ctx context.Context, actor *models.User, id int) error
}

type gameService struct {
	gameRepo   repositories.GameRepository
	uploader   storage.FileUploader
	authorizer *Authorizer
}

func NewGameService(gameRepo repositories.GameRepository, uploader storage.FileUploader, authorizer *Authorizer) GameService {
	return &gameService{
		gameRepo:   gameRepo,
		uploader:   uploader,
		authorizer: authorizer,
	}
}

func (s *gameService) CreateGame(ctx context.Context, actor *models.User, input CreateGameInput) (*models.Game, error) {
	if err := s.authorizer.Require(actor.Role, ActionGameCreate); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: game name is required", ErrValidationFailed)
	}
	if !input.Category.Valid() {
		return nil, fmt.Errorf("%w: unknown category %q", ErrValidationFailed, input.Category)
	}

	exists, err := s.gameRepo.ExistsByName(ctx, name, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to check game name: %w", err)
	}
	if exists {
		return nil, ErrGameNameConflict
	}

	game := &models.Game{
		Name:        name,
		Description: input.Description,
		Category:    input.Category,
		Active:      true,
	}

	if input.Rules != nil {
		key, err := s.upload(ctx, AttachmentDocument, "rules", input.Rules)
		if err != nil {
			return nil, err
		}
		game.RulesKey = &key
	}
	if input.Cover != nil {
		key, err := s.upload(ctx, AttachmentImage, "games", input.Cover)
		if err != nil {
			return nil, err
		}
		game.CoverKey = &key
	}

	if err := s.gameRepo.Create(ctx, game); err != nil {
		if errors.Is(err, repositories.ErrGameNameConflict) {
			return nil, ErrGameNameConflict
		}
		return nil, fmt.Errorf("failed to create game: %w", err)
	}
	return s.withURLs(game), nil
}

func (s *gameService) GetGameByID(ctx context.Context, id int) (*models.Game, error) {
	game, err := s.gameRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrGameNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to get game %d: %w", id, err)
	}
	return s.withURLs(game), nil
}

func (s *gameService) GetAllGames(ctx context.Context, onlyActive bool) ([]models.Game, error) {
	games, err := s.gameRepo.GetAll(ctx, onlyActive)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	for i := range games {
		s.withURLs(&games[i])
	}
	return games, nil
}

// PartialUpdateGame applies a field-level update. Superadmin may touch any
// field; admin may only touch description and the rules document, and only
// on games linked to their account.
func (s *gameService) PartialUpdateGame(ctx context.Context, actor *models.User, id int, update PartialGameUpdate) (*models.Game, error) {
	if err := s.authorizer.Require(actor.Role, ActionGamePartialFix); err != nil {
		return nil, err
	}

	if actor.Role == models.RoleAdmin {
		if err := s.authorizer.RequireGameAccess(ctx, actor, id); err != nil {
			return nil, err
		}
		if update.Name != nil && !AdminMayEditGameField("name") {
			return nil, ErrForbiddenOperation
		}
		if update.Category != nil && !AdminMayEditGameField("category") {
			return nil, ErrForbiddenOperation
		}
		if update.Active != nil && !AdminMayEditGameField("active") {
			return nil, ErrForbiddenOperation
		}
		if update.Cover != nil && !AdminMayEditGameField("cover") {
			return nil, ErrForbiddenOperation
		}
	}

	game, err := s.gameRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrGameNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to load game %d: %w", id, err)
	}

	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: game name is required", ErrValidationFailed)
		}
		exists, err := s.gameRepo.ExistsByName(ctx, name, id)
		if err != nil {
			return nil, fmt.Errorf("failed to check game name: %w", err)
		}
		if exists {
			return nil, ErrGameNameConflict
		}
		game.Name = name
	}
	if update.Description != nil {
		game.Description = *update.Description
	}
	if update.Category != nil {
		if !update.Category.Valid() {
			return nil, fmt.Errorf("%w: unknown category %q", ErrValidationFailed, *update.Category)
		}
		game.Category = *update.Category
	}
	if update.Active != nil {
		game.Active = *update.Active
	}
	if update.Rules != nil {
		key, err := s.upload(ctx, AttachmentDocument, "rules", update.Rules)
		if err != nil {
			return nil, err
		}
		game.RulesKey = &key
	}
	if update.Cover != nil {
		key, err := s.upload(ctx, AttachmentImage, "games", update.Cover)
		if err != nil {
			return nil, err
		}
		game.CoverKey = &key
	}

	if err := s.gameRepo.Update(ctx, game); err != nil {
		switch {
		case errors.Is(err, repositories.ErrGameNotFound):
			return nil, ErrGameNotFound
		case errors.Is(err, repositories.ErrGameNameConflict):
			return nil, ErrGameNameConflict
		}
		return nil, fmt.Errorf("failed to update game %d: %w", id, err)
	}
	return s.withURLs(game), nil
}

func (s *gameService) SetGameActive(ctx context.Context, actor *models.User, id int, active bool) error {
	if err := s.authorizer.Require(actor.Role, ActionGameSetActive); err != nil {
		return err
	}
	if err := s.gameRepo.SetActive(ctx, id, active); err != nil {
		if errors.Is(err, repositories.ErrGameNotFound) {
			return ErrGameNotFound
		}
		return fmt.Errorf("failed to toggle game %d: %w", id, err)
	}
	return nil
}

func (s *gameService) DeleteGame(ctx context.Context, actor *models.User, id int) error {
	if err := s.authorizer.Require(actor.Role, ActionGameDelete); err != nil {
		return err
	}
	if err := s.gameRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrGameNotFound) {
			return ErrGameNotFound
		}
		return fmt.Errorf("failed to delete game %d: %w", id, err)
	}
	return nil
}

func (s *gameService) upload(ctx context.Context, kind AttachmentKind, prefix string, file *FileUpload) (string, error) {
	if err := ValidateAttachment(kind, file.Filename); err != nil {
		return "", err
	}
	key := storageKey(prefix, file.Filename)
	if _, err := s.uploader.Upload(ctx, key, file.ContentType, file.Reader); err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", prefix, err)
	}
	return key, nil
}

func (s *gameService) withURLs(game *models.Game) *models.Game {
	if game.RulesKey != nil {
		url := s.uploader.GetPublicURL(*game.RulesKey)
		game.RulesURL = &url
	}
	if game.CoverKey != nil {
		url := s.uploader.GetPublicURL(*game.CoverKey)
		game.CoverURL = &url
	}
	return game
}
