package auditlog

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/freshstockhq/freshstock-backend/pkg/db/models"
	"github.com/freshstockhq/freshstock-backend/pkg/enums"
	pkgerrors "github.com/freshstockhq/freshstock-backend/pkg/errors"
	"github.com/freshstockhq/freshstock-backend/pkg/pagination"
)

// DefaultActor is recorded as performedBy while no auth subsystem exists.
const DefaultActor = "system"

// Service records audit entries and serves the read-only log views.
//
// Callers on the mutation path treat Record as best-effort; the service
// itself reports failures honestly and leaves the swallowing to them.
type Service interface {
	Record(ctx context.Context, entry Entry) error
	ListAll(ctx context.Context, params ListParams) (*ListResult, error)
	ListForDay(ctx context.Context, day time.Time, limit int) ([]EntryDTO, error)
}

// Entry is one mutation outcome to append to the log.
type Entry struct {
	Action      enums.AuditAction
	ItemID      uuid.UUID
	ItemName    string
	PerformedBy string
	Details     any
}

// ListParams configures pagination for the full log view.
type ListParams struct {
	Limit  int
	Cursor string
}

// ListResult wraps returned entries and the cursor for the next page.
type ListResult struct {
	Items  []EntryDTO `json:"items"`
	Cursor string     `json:"cursor"`
}

type service struct {
	repo  Repository
	actor string
	clock func() time.Time
}

// NewService wires audit log dependencies. actor becomes the default
// performedBy label when an entry carries none.
func NewService(repo Repository, actor string) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "audit log repository required")
	}
	if actor == "" {
		actor = DefaultActor
	}
	return &service{repo: repo, actor: actor, clock: time.Now}, nil
}

func (s *service) Record(ctx context.Context, entry Entry) error {
	if !entry.Action.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "audit action required")
	}
	if entry.ItemID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "audit item id required")
	}

	var details json.RawMessage
	if entry.Details != nil {
		raw, err := json.Marshal(entry.Details)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "encode audit details")
		}
		details = raw
	}

	performedBy := entry.PerformedBy
	if performedBy == "" {
		performedBy = s.actor
	}

	row := &models.AuditLog{
		Action:      entry.Action,
		ItemID:      entry.ItemID,
		ItemName:    entry.ItemName,
		PerformedBy: performedBy,
		Details:     details,
		CreatedAt:   s.clock().UTC(),
	}
	if err := s.repo.Append(ctx, row); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "append audit entry")
	}
	return nil
}

func (s *service) ListAll(ctx context.Context, params ListParams) (*ListResult, error) {
	query := listParams{Limit: params.Limit}
	if params.Cursor != "" {
		cursor, err := pagination.ParseCursor(params.Cursor)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
		}
		query.Cursor = cursor
	}

	rows, next, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list audit entries")
	}

	cursor := ""
	if next != nil {
		cursor = pagination.EncodeCursor(*next)
	}

	return &ListResult{
		Items:  newEntryDTOs(rows),
		Cursor: cursor,
	}, nil
}

func (s *service) ListForDay(ctx context.Context, day time.Time, limit int) ([]EntryDTO, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1).Add(-time.Nanosecond)

	rows, err := s.repo.ListBetween(ctx, start, end, pagination.NormalizeLimit(limit))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list audit entries for day")
	}
	return newEntryDTOs(rows), nil
}
