package document

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/docwell/editor-server/internal/models"
	"github.com/docwell/editor-server/internal/modules/processing/markdown"
	"github.com/docwell/editor-server/internal/modules/storage/file"
	"github.com/docwell/editor-server/internal/pkg/apierr"
	"github.com/docwell/editor-server/internal/pkg/pagination"
	"github.com/docwell/editor-server/internal/pkg/response"
	"go.uber.org/zap"
)

const (
	defaultTitle   = "Untitled document"
	maxTitleLength = 255
	coverPrefix    = "covers"
)

type Service struct {
	repo   Repository
	store  file.Store
	logger *zap.Logger
}

func NewService(repo Repository, store file.Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, store: store, logger: logger}
}

// Create stores a new document. A cover that fails to upload is dropped with a
// warning and the document is still created.
func (s *Service) Create(ctx context.Context, ownerID string, in CreateInput) (*models.DocumentModel, error) {
	title := strings.TrimSpace(in.Title)
	content, metaTitle, err := prepareContent(in.Content, in.Format)
	if err != nil {
		return nil, err
	}
	if title == "" {
		title = metaTitle
	}
	if title == "" {
		title = defaultTitle
	}
	if len([]rune(title)) > maxTitleLength {
		return nil, apierr.Validation(fmt.Sprintf("Title must be at most %d characters", maxTitleLength))
	}

	doc := &models.DocumentModel{
		OwnerID:   ownerID,
		Title:     title,
		Content:   content,
		WordCount: markdown.WordCount(content),
	}
	if in.Cover != nil {
		doc.CoverImage = s.uploadCover(ctx, ownerID, in.Cover)
	}

	if err := s.repo.Create(ctx, doc); err != nil {
		return nil, apierr.Internal("Failed to create document", err)
	}
	return doc, nil
}

func (s *Service) uploadCover(ctx context.Context, ownerID string, up *Upload) string {
	if s.store == nil {
		s.logger.Warn("cover image skipped: no object store configured", zap.String("owner", ownerID))
		return ""
	}
	if err := file.CoverPolicy.Check(up.Filename, int64(len(up.Data))); err != nil {
		s.logger.Warn("cover image rejected", zap.String("owner", ownerID), zap.String("file", up.Filename), zap.Error(err))
		return ""
	}
	obj, err := s.store.Put(ctx, file.ObjectKey(coverPrefix, up.Filename), up.Data, up.ContentType)
	if err != nil {
		s.logger.Warn("cover image upload failed", zap.String("owner", ownerID), zap.String("driver", s.store.Driver()), zap.Error(err))
		return ""
	}
	return obj.URL
}

func (s *Service) Get(ctx context.Context, ownerID, id string) (*models.DocumentModel, error) {
	doc, err := s.repo.Get(ctx, ownerID, id)
	if err != nil {
		return nil, repoError(err, "Failed to load document")
	}
	return doc, nil
}

func (s *Service) List(ctx context.Context, ownerID string, q pagination.Query) ([]models.DocumentModel, response.Pagination, error) {
	items, pag, err := s.repo.List(ctx, ownerID, q)
	if err != nil {
		return nil, response.Pagination{}, apierr.Internal("Failed to list documents", err)
	}
	return items, pag, nil
}

func (s *Service) Update(ctx context.Context, ownerID, id string, in UpdateInput) (*models.DocumentModel, error) {
	doc, err := s.repo.Get(ctx, ownerID, id)
	if err != nil {
		return nil, repoError(err, "Failed to load document")
	}
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, apierr.Validation("Title cannot be empty")
		}
		if len([]rune(title)) > maxTitleLength {
			return nil, apierr.Validation(fmt.Sprintf("Title must be at most %d characters", maxTitleLength))
		}
		doc.Title = title
	}
	if in.Content != nil {
		content, _, err := prepareContent(*in.Content, in.Format)
		if err != nil {
			return nil, err
		}
		doc.Content = content
		doc.WordCount = markdown.WordCount(content)
	}
	if in.CoverImage != nil {
		doc.CoverImage = strings.TrimSpace(*in.CoverImage)
	}
	if err := s.repo.Save(ctx, doc); err != nil {
		return nil, apierr.Internal("Failed to update document", err)
	}
	return doc, nil
}

func (s *Service) Delete(ctx context.Context, ownerID, id string) error {
	if err := s.repo.Delete(ctx, ownerID, id); err != nil {
		return repoError(err, "Failed to delete document")
	}
	return nil
}

// prepareContent renders markdown input and returns any front matter title.
func prepareContent(content, format string) (string, string, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "html":
		return content, "", nil
	case FormatMarkdown:
		meta, body := markdown.SplitFrontMatter(content)
		rendered, err := markdown.Render(body)
		if err != nil {
			return "", "", apierr.Internal("Failed to render markdown", err)
		}
		return rendered, meta.Title, nil
	default:
		return "", "", apierr.Validation(fmt.Sprintf("Unsupported format %q", format))
	}
}

func repoError(err error, msg string) error {
	if errors.Is(err, ErrNotFound) {
		return apierr.NotFound("Document not found")
	}
	return apierr.Internal(msg, err)
}
