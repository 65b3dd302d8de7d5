package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"pdf-insight-workspace/internal/config"
	"pdf-insight-workspace/internal/dto"
	"pdf-insight-workspace/internal/pkg/logger"
	"pdf-insight-workspace/internal/workspace"
	"pdf-insight-workspace/pkg/backend"
)

// Client-side upload preconditions. These fail before any network call.
var (
	ErrNoFiles      = errors.New("no files selected")
	ErrTooManyFiles = errors.New("too many files selected")
	ErrFileTooLarge = errors.New("file exceeds maximum size")
)

// UploadInput is one file queued for upload.
type UploadInput struct {
	Name   string
	Size   int64
	Reader io.Reader
}

type IUploadService interface {
	BatchUpload(ctx context.Context, files []UploadInput) (*dto.BatchUploadResponse, error)
}

type uploadService struct {
	client    *backend.Client
	workspace *workspace.Store
	cfg       config.UploadConfig
	logger    logger.ILogger
}

func NewUploadService(
	client *backend.Client,
	workspaceStore *workspace.Store,
	cfg config.UploadConfig,
	sysLogger logger.ILogger,
) IUploadService {
	return &uploadService{
		client:    client,
		workspace: workspaceStore,
		cfg:       cfg,
		logger:    sysLogger,
	}
}

// BatchUpload validates the queue against the configured limits, posts it as
// multipart, and marks the catalog for refresh on success.
func (s *uploadService) BatchUpload(ctx context.Context, files []UploadInput) (*dto.BatchUploadResponse, error) {
	if len(files) == 0 {
		return nil, ErrNoFiles
	}
	if len(files) > s.cfg.MaxFiles {
		return nil, fmt.Errorf("%w: %d files, maximum is %d", ErrTooManyFiles, len(files), s.cfg.MaxFiles)
	}
	for _, f := range files {
		if f.Size > s.cfg.MaxFileSize {
			return nil, fmt.Errorf("%w: %s (%d bytes)", ErrFileTooLarge, f.Name, f.Size)
		}
	}

	uploads := make([]backend.UploadFile, len(files))
	for i, f := range files {
		uploads[i] = backend.UploadFile{Name: f.Name, Reader: f.Reader}
	}

	resp, err := s.client.BatchUpload(ctx, uploads)
	if err != nil {
		s.logger.Error("UploadService", "Batch upload failed", map[string]interface{}{
			"files": len(files),
			"error": err.Error(),
		})
		return nil, fmt.Errorf("batch upload failed: %w", err)
	}

	s.logger.Info("UploadService", "Batch upload finished", map[string]interface{}{
		"total":      resp.TotalFiles,
		"successful": resp.SuccessfulUploads,
	})
	s.workspace.SetDocumentRefresh(true)
	return resp, nil
}
