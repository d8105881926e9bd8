package document

import (
	"context"
	"errors"

	"github.com/docwell/editor-server/internal/models"
	"github.com/docwell/editor-server/internal/pkg/pagination"
	"github.com/docwell/editor-server/internal/pkg/response"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a document does not exist for the owner.
var ErrNotFound = errors.New("document not found")

// Repository persists documents. Every lookup is scoped to the owner.
type Repository interface {
	Create(ctx context.Context, doc *models.DocumentModel) error
	Get(ctx context.Context, ownerID, id string) (*models.DocumentModel, error)
	List(ctx context.Context, ownerID string, q pagination.Query) ([]models.DocumentModel, response.Pagination, error)
	Save(ctx context.Context, doc *models.DocumentModel) error
	Delete(ctx context.Context, ownerID, id string) error
}

type gormRepository struct{ db *gorm.DB }

func NewRepository(db *gorm.DB) Repository { return &gormRepository{db: db} }

func (r *gormRepository) Create(ctx context.Context, doc *models.DocumentModel) error {
	return r.db.WithContext(ctx).Create(doc).Error
}

func (r *gormRepository) Get(ctx context.Context, ownerID, id string) (*models.DocumentModel, error) {
	var doc models.DocumentModel
	err := r.db.WithContext(ctx).Where("id = ? AND owner_id = ?", id, ownerID).First(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *gormRepository) List(ctx context.Context, ownerID string, q pagination.Query) ([]models.DocumentModel, response.Pagination, error) {
	tx := r.db.WithContext(ctx).Model(&models.DocumentModel{}).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC")
	items := make([]models.DocumentModel, 0, q.Size)
	pag, err := pagination.Paginate(tx, q, &items)
	if err != nil {
		return nil, response.Pagination{}, err
	}
	return items, pag, nil
}

func (r *gormRepository) Save(ctx context.Context, doc *models.DocumentModel) error {
	return r.db.WithContext(ctx).Save(doc).Error
}

func (r *gormRepository) Delete(ctx context.Context, ownerID, id string) error {
	res := r.db.WithContext(ctx).Where("id = ? AND owner_id = ?", id, ownerID).Delete(&models.DocumentModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
