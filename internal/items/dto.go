package items

import (
	"time"

	"github.com/google/uuid"

	"github.com/freshstockhq/freshstock-backend/pkg/db/models"
)

const expiryDateLayout = "2006-01-02"

// ItemDTO is the wire representation of an inventory item.
type ItemDTO struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Price      float64   `json:"price"`
	Quantity   int       `json:"quantity"`
	ExpiryDate string    `json:"expiryDate"`
	Category   string    `json:"category"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// NewItemDTO maps a stored item onto the wire shape.
func NewItemDTO(item *models.Item) *ItemDTO {
	if item == nil {
		return nil
	}
	return &ItemDTO{
		ID:         item.ID,
		Name:       item.Name,
		Price:      item.Price.InexactFloat64(),
		Quantity:   item.Quantity,
		ExpiryDate: item.ExpiryDate.Format(expiryDateLayout),
		Category:   item.Category.String(),
		CreatedAt:  item.CreatedAt,
		UpdatedAt:  item.UpdatedAt,
	}
}

func newItemDTOs(rows []models.Item) []ItemDTO {
	out := make([]ItemDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *NewItemDTO(&rows[i]))
	}
	return out
}

// DeleteResult confirms a removal to the caller.
type DeleteResult struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// ItemSnapshot captures the five business fields in normalized form. It is
// embedded in audit details so entries stay readable after the item is gone.
type ItemSnapshot struct {
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Quantity   int     `json:"quantity"`
	ExpiryDate string  `json:"expiryDate"`
	Category   string  `json:"category"`
}

type addDetails struct {
	AddedData ItemSnapshot `json:"addedData"`
}

type updateDetails struct {
	OriginalData  ItemDTO        `json:"originalData"`
	UpdatedFields map[string]any `json:"updatedFields"`
}

type deleteDetails struct {
	DeletedData ItemDTO `json:"deletedData"`
}
