package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/torneos/esports-api/models"
	"github.com/torneos/esports-api/repositories"
)

type TransmissionInput struct {
	MatchID  int
	Platform string
	URL      string
}

type TransmissionService interface {
	CreateTransmission(ctx context.Context, actor *models.User, input TransmissionInput) (*models.Transmission, error)
	ListByMatch(ctx context.Context, matchID int) ([]models.Transmission, error)
	UpdateTransmission(ctx context.Context, actor *models.User, id int, input TransmissionInput) (*models.Transmission, error)
	DeleteTransmission(ctx context.Context, actor *models.User, id int) error
}

type transmissionService struct {
	transmissionRepo repositories.TransmissionRepository
	authorizer       *Authorizer
}

func NewTransmissionService(transmissionRepo repositories.TransmissionRepository, authorizer *Authorizer) TransmissionService {
	return &transmissionService{
		transmissionRepo: transmissionRepo,
		authorizer:       authorizer,
	}
}

func validateTransmissionInput(input TransmissionInput) error {
	if strings.TrimSpace(input.Platform) == "" {
		return fmt.Errorf("%w: platform is required", ErrValidationFailed)
	}
	parsed, err := url.Parse(input.URL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("%w: stream url must be absolute", ErrValidationFailed)
	}
	return nil
}

func (s *transmissionService) CreateTransmission(ctx context.Context, actor *models.User, input TransmissionInput) (*models.Transmission, error) {
	if err := s.authorizer.Require(actor.Role, ActionTransmissionManage); err != nil {
		return nil, err
	}
	if err := validateTransmissionInput(input); err != nil {
		return nil, err
	}

	transmission := &models.Transmission{
		MatchID:  input.MatchID,
		Platform: strings.TrimSpace(input.Platform),
		URL:      input.URL,
	}
	if err := s.transmissionRepo.Create(ctx, transmission); err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to create transmission: %w", err)
	}
	return transmission, nil
}

func (s *transmissionService) ListByMatch(ctx context.Context, matchID int) ([]models.Transmission, error) {
	transmissions, err := s.transmissionRepo.ListByMatch(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transmissions for match %d: %w", matchID, err)
	}
	return transmissions, nil
}

func (s *transmissionService) UpdateTransmission(ctx context.Context, actor *models.User, id int, input TransmissionInput) (*models.Transmission, error) {
	if err := s.authorizer.Require(actor.Role, ActionTransmissionManage); err != nil {
		return nil, err
	}
	if err := validateTransmissionInput(input); err != nil {
		return nil, err
	}

	transmission := &models.Transmission{
		ID:       id,
		MatchID:  input.MatchID,
		Platform: strings.TrimSpace(input.Platform),
		URL:      input.URL,
	}
	if err := s.transmissionRepo.Update(ctx, transmission); err != nil {
		switch {
		case errors.Is(err, repositories.ErrTransmissionNotFound):
			return nil, ErrNotFound
		case errors.Is(err, repositories.ErrMatchNotFound):
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to update transmission %d: %w", id, err)
	}
	return transmission, nil
}

func (s *transmissionService) DeleteTransmission(ctx context.Context, actor *models.User, id int) error {
	if err := s.authorizer.Require(actor.Role, ActionTransmissionManage); err != nil {
		return err
	}
	if err := s.transmissionRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrTransmissionNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete transmission %d: %w", id, err)
	}
	return nil
}
