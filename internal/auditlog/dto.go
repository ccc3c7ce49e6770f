package auditlog

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/freshstockhq/freshstock-backend/pkg/db/models"
)

// EntryDTO is the wire representation of one audit log entry.
type EntryDTO struct {
	ID          uuid.UUID       `json:"id"`
	Action      string          `json:"action"`
	ItemID      uuid.UUID       `json:"itemId"`
	ItemName    string          `json:"itemName"`
	PerformedBy string          `json:"performedBy"`
	Timestamp   time.Time       `json:"timestamp"`
	Details     json.RawMessage `json:"details"`
}

// NewEntryDTO maps a stored audit log row onto the wire shape.
func NewEntryDTO(row *models.AuditLog) *EntryDTO {
	if row == nil {
		return nil
	}
	return &EntryDTO{
		ID:          row.ID,
		Action:      row.Action.String(),
		ItemID:      row.ItemID,
		ItemName:    row.ItemName,
		PerformedBy: row.PerformedBy,
		Timestamp:   row.CreatedAt,
		Details:     row.Details,
	}
}

func newEntryDTOs(rows []models.AuditLog) []EntryDTO {
	out := make([]EntryDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *NewEntryDTO(&rows[i]))
	}
	return out
}
