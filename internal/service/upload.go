package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/templui/folio/internal/model"
	"github.com/templui/folio/internal/repository"
	"github.com/templui/folio/internal/storage"
	"github.com/templui/folio/internal/validation"
)

const maxReferenceLength = 500

type UploadService struct {
	storage        storage.Storage
	userRepository repository.UserRepository
	maxFileSize    int64
}

func NewUploadService(storage storage.Storage, userRepository repository.UserRepository, maxFileSize int64) *UploadService {
	return &UploadService{
		storage:        storage,
		userRepository: userRepository,
		maxFileSize:    maxFileSize,
	}
}

// UploadImage validates the image by content and extension and stores it
// under a random name.
func (s *UploadService) UploadImage(ctx context.Context, userID int64, header *multipart.FileHeader) (*model.UploadedImage, error) {
	if header == nil {
		return nil, invalid(errors.New("no image uploaded"))
	}

	err := validation.ValidateFile(header, validation.ImageConstraints(s.maxFileSize))
	if err != nil {
		return nil, invalid(err)
	}

	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer file.Close()

	// Generate unique filename
	ext := strings.ToLower(filepath.Ext(header.Filename))
	filename := uuid.NewString() + ext

	err = s.storage.Save(ctx, filename, file)
	if err != nil {
		return nil, fmt.Errorf("failed to save file: %w", err)
	}

	slog.Info("image uploaded", "user_id", userID, "filename", filename, "size", header.Size)
	return &model.UploadedImage{
		URL:          s.storage.URL(filename),
		Filename:     filename,
		OriginalName: header.Filename,
		Size:         header.Size,
	}, nil
}

// SetAvatar stores an opaque avatar reference; blank clears it.
func (s *UploadService) SetAvatar(ctx context.Context, userID int64, ref string) (*model.SafeUser, error) {
	avatar := optional(ref)
	if avatar != nil && len(*avatar) > maxReferenceLength {
		return nil, invalid(fmt.Errorf("avatar is too long (max %d characters)", maxReferenceLength))
	}

	err := s.userRepository.UpdateAvatar(ctx, userID, avatar)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, notFound("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update avatar: %w", err)
	}

	user, err := s.userRepository.ByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	safe := user.Safe()
	return &safe, nil
}
