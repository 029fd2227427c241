package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/torneos/esports-api/models"
	"github.com/torneos/esports-api/repositories"
)

type ContactInput struct {
	Platform string
	Link     string
}

type ContactService interface {
	CreateContact(ctx context.Context, actor *models.User, input ContactInput) (*models.ContactInfo, error)
	GetAllContacts(ctx context.Context) ([]models.ContactInfo, error)
	UpdateContact(ctx context.Context, actor *models.User, id int, input ContactInput) (*models.ContactInfo, error)
	DeleteContact(ctx context.Context, actor *models.User, id int) error
}

type contactService struct {
	contactRepo repositories.ContactRepository
	authorizer  *Authorizer
}

func NewContactService(contactRepo repositories.ContactRepository, authorizer *Authorizer) ContactService {
	return &contactService{
		contactRepo: contactRepo,
		authorizer:  authorizer,
	}
}

func (s *contactService) CreateContact(ctx context.Context, actor *models.User, input ContactInput) (*models.ContactInfo, error) {
	if err := s.authorizer.Require(actor.Role, ActionContactManage); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Platform) == "" || strings.TrimSpace(input.Link) == "" {
		return nil, fmt.Errorf("%w: platform and link are required", ErrValidationFailed)
	}

	contact := &models.ContactInfo{
		Platform: strings.TrimSpace(input.Platform),
		Link:     strings.TrimSpace(input.Link),
	}
	if err := s.contactRepo.Create(ctx, contact); err != nil {
		return nil, fmt.Errorf("failed to create contact info: %w", err)
	}
	return contact, nil
}

func (s *contactService) GetAllContacts(ctx context.Context) ([]models.ContactInfo, error) {
	contacts, err := s.contactRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list contact info: %w", err)
	}
	return contacts, nil
}

func (s *contactService) UpdateContact(ctx context.Context, actor *models.User, id int, input ContactInput) (*models.ContactInfo, error) {
	if err := s.authorizer.Require(actor.Role, ActionContactManage); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Platform) == "" || strings.TrimSpace(input.Link) == "" {
		return nil, fmt.Errorf("%w: platform and link are required", ErrValidationFailed)
	}

	contact := &models.ContactInfo{
		ID:       id,
		Platform: strings.TrimSpace(input.Platform),
		Link:     strings.TrimSpace(input.Link),
	}
	if err := s.contactRepo.Update(ctx, contact); err != nil {
		if errors.Is(err, repositories.ErrContactNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update contact info %d: %w", id, err)
	}
	return contact, nil
}

func (s *contactService) DeleteContact(ctx context.Context, actor *models.User, id int) error {
	if err := s.authorizer.Require(actor.Role, ActionContactManage); err != nil {
		return err
	}
	if err := s.contactRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrContactNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete contact info %d: %w", id, err)
	}
	return nil
}
