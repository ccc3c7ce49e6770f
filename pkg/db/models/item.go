package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/freshstockhq/freshstock-backend/pkg/enums"
)

// Item is a perishable-goods inventory record.
type Item struct {
	ID         uuid.UUID          `gorm:"column:id;type:uuid;primaryKey"`
	Name       string             `gorm:"column:name;type:text;not null"`
	Price      decimal.Decimal    `gorm:"column:price;type:numeric(12,2);not null"`
	Quantity   int                `gorm:"column:quantity;not null"`
	ExpiryDate time.Time          `gorm:"column:expiry_date;type:date;not null"`
	Category   enums.ItemCategory `gorm:"column:category;type:text;not null"`
	CreatedAt  time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

// BeforeCreate assigns the id client-side so the model works on both the
// Postgres and SQLite drivers.
func (i *Item) BeforeCreate(*gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
