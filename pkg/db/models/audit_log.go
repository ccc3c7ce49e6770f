package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/freshstockhq/freshstock-backend/pkg/enums"
)

// AuditLog is an immutable record describing one inventory mutation.
//
// ItemID is a weak reference: the item may no longer exist after a delete,
// so ItemName and Details carry denormalized snapshots. Rows are insert-only;
// nothing in this codebase updates or deletes them.
type AuditLog struct {
	ID          uuid.UUID         `gorm:"column:id;type:uuid;primaryKey"`
	Action      enums.AuditAction `gorm:"column:action;type:text;not null"`
	ItemID      uuid.UUID         `gorm:"column:item_id;type:uuid;not null"`
	ItemName    string            `gorm:"column:item_name;type:text;not null"`
	PerformedBy string            `gorm:"column:performed_by;type:text;not null;default:system"`
	Details     json.RawMessage   `gorm:"column:details;type:jsonb"`
	CreatedAt   time.Time         `gorm:"column:created_at;autoCreateTime"`
}

// BeforeCreate assigns the id client-side so the model works on both the
// Postgres and SQLite drivers.
func (l *AuditLog) BeforeCreate(*gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
