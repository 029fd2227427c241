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

type UploadMediaInput struct {
	Title string
	Type  models.MediaType
	File  *FileUpload
}

type MediaService interface {
	UploadMedia(ctx context.Context, actor *models.User, input UploadMediaInput) (*models.MediaContent, error)
	GetAllMedia(ctx context.Context) ([]models.MediaContent, error)
	DeleteMedia(ctx context.Context, actor *models.User, id int) error
}

type mediaService struct {
	mediaRepo  repositories.MediaRepository
	uploader   storage.FileUploader
	authorizer *Authorizer
}

func NewMediaService(mediaRepo repositories.MediaRepository, uploader storage.FileUploader, authorizer *Authorizer) MediaService {
	return &mediaService{
		mediaRepo:  mediaRepo,
		uploader:   uploader,
		authorizer: authorizer,
	}
}

func (s *mediaService) UploadMedia(ctx context.Context, actor *models.User, input UploadMediaInput) (*models.MediaContent, error) {
	if err := s.authorizer.Require(actor.Role, ActionMediaManage); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidationFailed)
	}
	if !input.Type.Valid() {
		return nil, fmt.Errorf("%w: unknown media type %q", ErrValidationFailed, input.Type)
	}
	if input.File == nil {
		return nil, fmt.Errorf("%w: file is required", ErrValidationFailed)
	}

	kind := AttachmentImage
	if input.Type == models.MediaVideo {
		kind = AttachmentVideo
	}
	if err := ValidateAttachment(kind, input.File.Filename); err != nil {
		return nil, err
	}

	key := storageKey("media_content", input.File.Filename)
	if _, err := s.uploader.Upload(ctx, key, input.File.ContentType, input.File.Reader); err != nil {
		return nil, fmt.Errorf("failed to upload media file: %w", err)
	}

	media := &models.MediaContent{
		Title:   strings.TrimSpace(input.Title),
		Type:    input.Type,
		FileKey: key,
	}
	if err := s.mediaRepo.Create(ctx, media); err != nil {
		return nil, fmt.Errorf("failed to create media content: %w", err)
	}

	url := s.uploader.GetPublicURL(key)
	media.FileURL = &url
	return media, nil
}

func (s *mediaService) GetAllMedia(ctx context.Context) ([]models.MediaContent, error) {
	items, err := s.mediaRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list media content: %w", err)
	}
	for i := range items {
		url := s.uploader.GetPublicURL(items[i].FileKey)
		items[i].FileURL = &url
	}
	return items, nil
}

func (s *mediaService) DeleteMedia(ctx context.Context, actor *models.User, id int) error {
	if err := s.authorizer.Require(actor.Role, ActionMediaManage); err != nil {
		return err
	}

	media, err := s.mediaRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrMediaNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to load media %d: %w", id, err)
	}

	if err := s.mediaRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrMediaNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete media %d: %w", id, err)
	}

	// Best effort; a dangling object is preferable to a failed delete.
	_ = s.uploader.Delete(ctx, media.FileKey)
	return nil
}
