package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/wreckster1507/sentiment-analysis/internal/blob"
	"github.com/wreckster1507/sentiment-analysis/internal/model"
	"github.com/wreckster1507/sentiment-analysis/internal/store"
)

// keyPrefix namespaces blob keys; the uuid suffix makes them
// unguessable and collision-free.
const keyPrefix = "inference/"

var videoExtensions = []string{".mp4", ".mov", ".avi"}

var contentTypes = map[string]string{
	".mp4": "video/mp4",
	".mov": "video/quicktime",
	".avi": "video/x-msvideo",
}

// UploadService handles upload initialization and the video upload itself.
type UploadService struct {
	store store.Store
	blobs blob.Store
}

func NewUploadService(s store.Store, b blob.Store) *UploadService {
	return &UploadService{store: s, blobs: b}
}

// validVideoName reports whether name ends in one of the three allowed
// video container extensions, case-insensitively.
func validVideoName(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range videoExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

func contentTypeFor(name string) string {
	lower := strings.ToLower(name)
	for ext, ct := range contentTypes {
		if strings.HasSuffix(lower, ext) {
			return ct
		}
	}
	return "application/octet-stream"
}

// InitUpload validates the declared file type and mints the upload
// ticket: a fresh file id and the namespaced blob key derived from it.
func (s *UploadService) InitUpload(ctx context.Context, fileType string) (*model.UploadTicket, error) {
	if !validVideoName(fileType) {
		return nil, fmt.Errorf("%w: only .mp4, .mov, .avi are supported", model.ErrInvalidInput)
	}
	id := uuid.New().String()
	return &model.UploadTicket{
		FileID:       id,
		Key:          keyPrefix + id,
		FileType:     fileType,
		UploadMethod: "server",
	}, nil
}

// UploadVideo stores the blob and then creates the file record. A failed
// blob write leaves no record behind; a failed record write after a
// successful blob write surfaces the error and may orphan the blob.
func (s *UploadService) UploadVideo(ctx context.Context, userID, fileID, filename string, data []byte) (string, error) {
	if fileID == "" {
		return "", fmt.Errorf("%w: fileId is required", model.ErrInvalidInput)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("%w: no file provided", model.ErrInvalidInput)
	}
	if !validVideoName(filename) {
		return "", fmt.Errorf("%w: only .mp4, .mov, .avi are supported", model.ErrInvalidInput)
	}

	key := keyPrefix + fileID
	if err := s.blobs.Put(ctx, key, contentTypeFor(filename), data); err != nil {
		return "", fmt.Errorf("blob upload: %w", err)
	}

	if _, err := s.store.Files().Create(ctx, &model.VideoFile{Key: key, UserID: userID}); err != nil {
		// Blob already written; the orphan is accepted, not retried.
		return "", fmt.Errorf("file record create: %w", err)
	}
	return key, nil
}
