package auditlog

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/freshstockhq/freshstock-backend/pkg/db/models"
	"github.com/freshstockhq/freshstock-backend/pkg/pagination"
)

// Repository is the persistence contract for audit log entries.
//
// It is append-only by design: no update or delete methods exist.
type Repository interface {
	Append(ctx context.Context, entry *models.AuditLog) error
	List(ctx context.Context, params listParams) ([]models.AuditLog, *pagination.Cursor, error)
	ListBetween(ctx context.Context, from, to time.Time, limit int) ([]models.AuditLog, error)
}

type listParams struct {
	Limit  int
	Cursor *pagination.Cursor
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns an audit log repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) Append(ctx context.Context, entry *models.AuditLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *repositoryImpl) List(ctx context.Context, params listParams) ([]models.AuditLog, *pagination.Cursor, error) {
	limit := pagination.LimitWithBuffer(params.Limit)
	normalized := pagination.NormalizeLimit(params.Limit)
	query := r.db.WithContext(ctx).Model(&models.AuditLog{})
	if params.Cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", params.Cursor.CreatedAt, params.Cursor.ID)
	}

	var rows []models.AuditLog
	if err := query.Order("created_at DESC, id DESC").Limit(limit).Find(&rows).Error; err != nil {
		return nil, nil, err
	}

	if len(rows) > normalized {
		next := rows[normalized]
		rows = rows[:normalized]
		return rows, &pagination.Cursor{CreatedAt: next.CreatedAt, ID: next.ID}, nil
	}
	return rows, nil, nil
}

func (r *repositoryImpl) ListBetween(ctx context.Context, from, to time.Time, limit int) ([]models.AuditLog, error) {
	var rows []models.AuditLog
	err := r.db.WithContext(ctx).
		Where("created_at BETWEEN ? AND ?", from, to).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
