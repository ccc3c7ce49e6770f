package items

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/freshstockhq/freshstock-backend/pkg/db/models"
)

// Repository defines persistence operations for inventory items.
type Repository interface {
	Create(ctx context.Context, item *models.Item) (*models.Item, error)
	Save(ctx context.Context, item *models.Item) (*models.Item, error)
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Item, error)
	List(ctx context.Context) ([]models.Item, error)
	SearchByName(ctx context.Context, term string) ([]models.Item, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) Create(ctx context.Context, item *models.Item) (*models.Item, error) {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

func (r *repositoryImpl) Save(ctx context.Context, item *models.Item) (*models.Item, error) {
	if err := r.db.WithContext(ctx).Save(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

func (r *repositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Item{}).Error
}

func (r *repositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	var item models.Item
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repositoryImpl) List(ctx context.Context) ([]models.Item, error) {
	var rows []models.Item
	if err := r.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// SearchByName matches the term case-insensitively anywhere in the name.
// LOWER/LIKE keeps the query portable across the Postgres and SQLite drivers.
func (r *repositoryImpl) SearchByName(ctx context.Context, term string) ([]models.Item, error) {
	var rows []models.Item
	pattern := "%" + strings.ToLower(term) + "%"
	err := r.db.WithContext(ctx).
		Where("LOWER(name) LIKE ?", pattern).
		Order("created_at DESC, id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
