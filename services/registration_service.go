package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/torneos/esports-api/models"
	"github.com/torneos/esports-api/repositories"
	"github.com/torneos/esports-api/storage"
)

// FileUpload carries an inbound attachment through the service layer.
type FileUpload struct {
	Filename    string
	ContentType string
	Reader      io.Reader
}

type RegisterTeamInput struct {
	Name      string
	CaptainID int
	GameID    int
	Logo      *FileUpload
	Voucher   *FileUpload
}

type RegisterIndividualInput struct {
	UserID  int
	GameID  int
	Voucher *FileUpload
}

// RegistrationService validates and persists team and individual
// registrations against the one-confirmed-per-(actor, game) rule.
type RegistrationService interface {
	RegisterTeam(ctx context.Context, input RegisterTeamInput) (*models.Team, error)
	RegisterIndividual(ctx context.Context, input RegisterIndividualInput) (*models.IndividualInscription, error)
	UpdateTeamStatus(ctx context.Context, actor *models.User, teamID int, status models.RegistrationStatus) (*models.Team, error)
	UpdateInscriptionStatus(ctx context.Context, actor *models.User, inscriptionID int, status models.RegistrationStatus) (*models.IndividualInscription, error)
	GetTeamByID(ctx context.Context, id int) (*models.Team, error)
	ListTeamsByGame(ctx context.Context, gameID int) ([]models.Team, error)
	ListInscriptionsByGame(ctx context.Context, gameID int) ([]models.IndividualInscription, error)
	AddRosterMember(ctx context.Context, actor *models.User, teamID, userID int) error
	RemoveRosterMember(ctx context.Context, actor *models.User, teamID, userID int) error
}

type registrationService struct {
	teamRepo        repositories.TeamRepository
	inscriptionRepo repositories.InscriptionRepository
	rosterRepo      repositories.TeamPlayerRepository
	userRepo        repositories.UserRepository
	gameRepo        repositories.GameRepository
	uploader        storage.FileUploader
	authorizer      *Authorizer
}

func NewRegistrationService(
	teamRepo repositories.TeamRepository,
	inscriptionRepo repositories.InscriptionRepository,
	rosterRepo repositories.TeamPlayerRepository,
	userRepo repositories.UserRepository,
	gameRepo repositories.GameRepository,
	uploader storage.FileUploader,
	authorizer *Authorizer,
) RegistrationService {
	return &registrationService{
		teamRepo:        teamRepo,
		inscriptionRepo: inscriptionRepo,
		rosterRepo:      rosterRepo,
		userRepo:        userRepo,
		gameRepo:        gameRepo,
		uploader:        uploader,
		authorizer:      authorizer,
	}
}

func (s *registrationService) RegisterTeam(ctx context.Context, input RegisterTeamInput) (*models.Team, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: team name is required", ErrValidationFailed)
	}

	if _, err := s.lookupGame(ctx, input.GameID); err != nil {
		return nil, err
	}
	if _, err := s.lookupUser(ctx, input.CaptainID); err != nil {
		return nil, err
	}

	// Friendly pre-check; the partial unique index remains the last word.
	count, err := s.teamRepo.CountConfirmed(ctx, input.CaptainID, input.GameID, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to check confirmed teams: %w", err)
	}
	if count > 0 {
		return nil, ErrDuplicateRegistration
	}

	team := &models.Team{
		Name:      name,
		CaptainID: input.CaptainID,
		GameID:    input.GameID,
		Status:    models.RegistrationPending,
	}

	if input.Logo != nil {
		key, err := s.upload(ctx, AttachmentImage, "logos", input.Logo)
		if err != nil {
			return nil, err
		}
		team.LogoKey = &key
	}
	if input.Voucher != nil {
		key, err := s.uploadVoucher(ctx, input.Voucher)
		if err != nil {
			return nil, err
		}
		team.VoucherKey = &key
	}

	if err := s.teamRepo.Create(ctx, team); err != nil {
		if errors.Is(err, repositories.ErrTeamConfirmedConflict) {
			return nil, ErrDuplicateRegistration
		}
		return nil, fmt.Errorf("failed to create team: %w", err)
	}
	return team, nil
}

func (s *registrationService) RegisterIndividual(ctx context.Context, input RegisterIndividualInput) (*models.IndividualInscription, error) {
	if _, err := s.lookupGame(ctx, input.GameID); err != nil {
		return nil, err
	}
	if _, err := s.lookupUser(ctx, input.UserID); err != nil {
		return nil, err
	}

	count, err := s.inscriptionRepo.CountConfirmed(ctx, input.UserID, input.GameID, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to check confirmed inscriptions: %w", err)
	}
	if count > 0 {
		return nil, ErrDuplicateRegistration
	}

	inscription := &models.IndividualInscription{
		UserID: input.UserID,
		GameID: input.GameID,
		Status: models.RegistrationPending,
	}

	if input.Voucher != nil {
		key, err := s.uploadVoucher(ctx, input.Voucher)
		if err != nil {
			return nil, err
		}
		inscription.VoucherKey = &key
	}

	if err := s.inscriptionRepo.Create(ctx, inscription); err != nil {
		if errors.Is(err, repositories.ErrInscriptionConfirmedConflict) {
			return nil, ErrDuplicateRegistration
		}
		return nil, fmt.Errorf("failed to create inscription: %w", err)
	}
	return inscription, nil
}

func (s *registrationService) UpdateTeamStatus(ctx context.Context, actor *models.User, teamID int, status models.RegistrationStatus) (*models.Team, error) {
	if err := s.authorizer.Require(actor.Role, ActionRegistrationReview); err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to load team %d: %w", teamID, err)
	}

	// Re-check when entering confirmed, excluding this record so that
	// re-confirming the same team never self-conflicts.
	if status == models.RegistrationConfirmed {
		count, err := s.teamRepo.CountConfirmed(ctx, team.CaptainID, team.GameID, team.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check confirmed teams: %w", err)
		}
		if count > 0 {
			return nil, ErrDuplicateRegistration
		}
	}

	if err := s.teamRepo.UpdateStatus(ctx, teamID, status); err != nil {
		switch {
		case errors.Is(err, repositories.ErrTeamConfirmedConflict):
			return nil, ErrDuplicateRegistration
		case errors.Is(err, repositories.ErrTeamNotFound):
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to update team status: %w", err)
	}

	team.Status = status
	return team, nil
}

func (s *registrationService) UpdateInscriptionStatus(ctx context.Context, actor *models.User, inscriptionID int, status models.RegistrationStatus) (*models.IndividualInscription, error) {
	if err := s.authorizer.Require(actor.Role, ActionRegistrationReview); err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	inscription, err := s.inscriptionRepo.GetByID(ctx, inscriptionID)
	if err != nil {
		if errors.Is(err, repositories.ErrInscriptionNotFound) {
			return nil, ErrInscriptionNotFound
		}
		return nil, fmt.Errorf("failed to load inscription %d: %w", inscriptionID, err)
	}

	if status == models.RegistrationConfirmed {
		count, err := s.inscriptionRepo.CountConfirmed(ctx, inscription.UserID, inscription.GameID, inscription.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check confirmed inscriptions: %w", err)
		}
		if count > 0 {
			return nil, ErrDuplicateRegistration
		}
	}

	if err := s.inscriptionRepo.UpdateStatus(ctx, inscriptionID, status); err != nil {
		switch {
		case errors.Is(err, repositories.ErrInscriptionConfirmedConflict):
			return nil, ErrDuplicateRegistration
		case errors.Is(err, repositories.ErrInscriptionNotFound):
			return nil, ErrInscriptionNotFound
		}
		return nil, fmt.Errorf("failed to update inscription status: %w", err)
	}

	inscription.Status = status
	return inscription, nil
}

func (s *registrationService) GetTeamByID(ctx context.Context, id int) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	members, err := s.rosterRepo.ListByTeam(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load team roster: %w", err)
	}
	for i := range members {
		members[i].PasswordHash = ""
	}
	team.Members = members
	if team.LogoKey != nil {
		url := s.uploader.GetPublicURL(*team.LogoKey)
		team.LogoURL = &url
	}
	return team, nil
}

func (s *registrationService) ListTeamsByGame(ctx context.Context, gameID int) ([]models.Team, error) {
	teams, err := s.teamRepo.ListByGame(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams for game %d: %w", gameID, err)
	}
	for i := range teams {
		if teams[i].LogoKey != nil {
			url := s.uploader.GetPublicURL(*teams[i].LogoKey)
			teams[i].LogoURL = &url
		}
	}
	return teams, nil
}

func (s *registrationService) ListInscriptionsByGame(ctx context.Context, gameID int) ([]models.IndividualInscription, error) {
	inscriptions, err := s.inscriptionRepo.ListByGame(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to list inscriptions for game %d: %w", gameID, err)
	}
	return inscriptions, nil
}

func (s *registrationService) AddRosterMember(ctx context.Context, actor *models.User, teamID, userID int) error {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return ErrTeamNotFound
		}
		return err
	}
	if actor.ID != team.CaptainID && !Can(actor.Role, ActionRegistrationReview) {
		return ErrForbiddenOperation
	}
	if _, err := s.lookupUser(ctx, userID); err != nil {
		return err
	}

	entry := &models.TeamPlayer{TeamID: teamID, UserID: userID}
	if err := s.rosterRepo.Add(ctx, entry); err != nil {
		if errors.Is(err, repositories.ErrRosterConflict) {
			return ErrRosterConflict
		}
		return fmt.Errorf("failed to add roster member: %w", err)
	}
	return nil
}

func (s *registrationService) RemoveRosterMember(ctx context.Context, actor *models.User, teamID, userID int) error {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return ErrTeamNotFound
		}
		return err
	}
	if actor.ID != team.CaptainID && !Can(actor.Role, ActionRegistrationReview) {
		return ErrForbiddenOperation
	}

	if err := s.rosterRepo.Remove(ctx, teamID, userID); err != nil {
		if errors.Is(err, repositories.ErrRosterEntryNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to remove roster member: %w", err)
	}
	return nil
}

func (s *registrationService) lookupGame(ctx context.Context, gameID int) (*models.Game, error) {
	game, err := s.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		if errors.Is(err, repositories.ErrGameNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to load game %d: %w", gameID, err)
	}
	return game, nil
}

func (s *registrationService) lookupUser(ctx context.Context, userID int) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user %d: %w", userID, err)
	}
	return user, nil
}

func (s *registrationService) upload(ctx context.Context, kind AttachmentKind, prefix string, file *FileUpload) (string, error) {
	if err := ValidateAttachment(kind, file.Filename); err != nil {
		return "", err
	}
	key := storageKey(prefix, file.Filename)
	if _, err := s.uploader.Upload(ctx, key, file.ContentType, file.Reader); err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", prefix, err)
	}
	return key, nil
}

// uploadVoucher accepts proof-of-payment as either a document or an image.
func (s *registrationService) uploadVoucher(ctx context.Context, file *FileUpload) (string, error) {
	if err := ValidateAttachment(AttachmentDocument, file.Filename); err != nil {
		if imgErr := ValidateAttachment(AttachmentImage, file.Filename); imgErr != nil {
			return "", err
		}
	}
	key := storageKey("vouchers", file.Filename)
	if _, err := s.uploader.Upload(ctx, key, file.ContentType, file.Reader); err != nil {
		return "", fmt.Errorf("failed to upload voucher: %w", err)
	}
	return key, nil
}
