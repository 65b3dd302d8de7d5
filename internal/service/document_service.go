package service

import (
	"context"
	"fmt"

	"pdf-insight-workspace/internal/dto"
	"pdf-insight-workspace/internal/pkg/logger"
	"pdf-insight-workspace/internal/repository/memory"
	"pdf-insight-workspace/internal/workspace"
	"pdf-insight-workspace/pkg/backend"
)

type IDocumentService interface {
	RefreshDocuments(ctx context.Context) error
	EnsureDetail(ctx context.Context, documentID string) (*dto.DocumentDetail, error)
	Detail(documentID string) (*dto.DocumentDetail, bool)
	LoadEmbedCredential(ctx context.Context) error
}

type documentService struct {
	client       *backend.Client
	documentRepo *memory.DocumentRepository
	workspace    *workspace.Store
	logger       logger.ILogger
}

func NewDocumentService(
	client *backend.Client,
	documentRepo *memory.DocumentRepository,
	workspaceStore *workspace.Store,
	sysLogger logger.ILogger,
) IDocumentService {
	return &documentService{
		client:       client,
		documentRepo: documentRepo,
		workspace:    workspaceStore,
		logger:       sysLogger,
	}
}

// RefreshDocuments reloads the corpus catalog into the workspace and clears
// the refresh flag.
func (s *documentService) RefreshDocuments(ctx context.Context) error {
	docs, err := s.client.ListDocuments(ctx)
	if err != nil {
		s.logger.Error("DocumentService", "Failed to list documents", map[string]interface{}{
			"error": err.Error(),
		})
		return fmt.Errorf("failed to refresh documents: %w", err)
	}
	s.workspace.SetDocuments(docs)
	s.workspace.SetDocumentRefresh(false)
	return nil
}

// EnsureDetail returns cached detail for a document, fetching it on a miss.
// Concurrent calls for the same id may both fetch; the payload is idempotent
// per id so the last writer wins without conflict.
func (s *documentService) EnsureDetail(ctx context.Context, documentID string) (*dto.DocumentDetail, error) {
	if detail, found := s.documentRepo.Get(documentID); found {
		return detail, nil
	}

	detail, err := s.client.GetDocument(ctx, documentID)
	if err != nil {
		s.logger.Error("DocumentService", "Failed to fetch document detail", map[string]interface{}{
			"document_id": documentID,
			"error":       err.Error(),
		})
		return nil, fmt.Errorf("failed to fetch document %s: %w", documentID, err)
	}

	s.documentRepo.Save(documentID, detail)
	s.logger.Info("DocumentService", "Cached document detail", map[string]interface{}{
		"document_id": documentID,
		"sections":    len(detail.Sections),
	})
	return detail, nil
}

// Detail is a cache-only read; it never triggers a fetch.
func (s *documentService) Detail(documentID string) (*dto.DocumentDetail, bool) {
	return s.documentRepo.Get(documentID)
}

// LoadEmbedCredential fetches the viewer embedding credential into the
// workspace.
func (s *documentService) LoadEmbedCredential(ctx context.Context) error {
	clientID, err := s.client.EmbedAPIClientID(ctx)
	if err != nil {
		return fmt.Errorf("failed to load embed credential: %w", err)
	}
	s.workspace.SetEmbedAPIClientID(clientID)
	return nil
}
