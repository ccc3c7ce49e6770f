package items

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/freshstockhq/freshstock-backend/internal/auditlog"
	"github.com/freshstockhq/freshstock-backend/pkg/db/models"
	"github.com/freshstockhq/freshstock-backend/pkg/enums"
	pkgerrors "github.com/freshstockhq/freshstock-backend/pkg/errors"
	"github.com/freshstockhq/freshstock-backend/pkg/logger"
	"github.com/freshstockhq/freshstock-backend/pkg/metrics"
)

// Service exposes inventory item operations.
type Service interface {
	Create(ctx context.Context, input CreateItemInput) (*ItemDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateItemInput) (*ItemDTO, error)
	Delete(ctx context.Context, id uuid.UUID) (*DeleteResult, error)
	List(ctx context.Context) ([]ItemDTO, error)
	SearchByName(ctx context.Context, term string) ([]ItemDTO, error)
}

// CreateItemInput holds the payload to create an item. All five fields are
// required; category is normalized (trim + lowercase) before persistence.
type CreateItemInput struct {
	Name       string
	Price      float64
	Quantity   int
	ExpiryDate string
	Category   string
}

// UpdateItemInput holds optional mutation values; nil fields stay untouched.
type UpdateItemInput struct {
	Name       *string
	Price      *float64
	Quantity   *int
	ExpiryDate *string
	Category   *string
}

// auditRecorder is the slice of the audit log service the mutation path needs.
type auditRecorder interface {
	Record(ctx context.Context, entry auditlog.Entry) error
}

type service struct {
	repo     Repository
	recorder auditRecorder
	logg     *logger.Logger
	metrics  *metrics.MutationMetrics
}

// NewService constructs an item service instance.
func NewService(repo Repository, recorder auditRecorder, logg *logger.Logger, mm *metrics.MutationMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("item repository required")
	}
	if recorder == nil {
		return nil, fmt.Errorf("audit recorder required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, recorder: recorder, logg: logg, metrics: mm}, nil
}

// Create validates and normalizes the input, inserts the item, and appends
// an ADD_ITEM audit entry best-effort.
func (s *service) Create(ctx context.Context, input CreateItemInput) (*ItemDTO, error) {
	normalized, err := normalizeCreate(input)
	if err != nil {
		return nil, err
	}

	item := &models.Item{
		Name:       normalized.name,
		Price:      normalized.price,
		Quantity:   normalized.quantity,
		ExpiryDate: normalized.expiryDate,
		Category:   normalized.category,
	}
	created, err := s.repo.Create(ctx, item)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert item")
	}

	s.metrics.IncMutation(enums.AuditActionAddItem.String())
	s.recordAudit(ctx, auditlog.Entry{
		Action:   enums.AuditActionAddItem,
		ItemID:   created.ID,
		ItemName: created.Name,
		Details:  addDetails{AddedData: normalized.snapshot()},
	})

	return NewItemDTO(created), nil
}

// Update applies only the provided fields to an existing item and appends an
// UPDATE_ITEM audit entry carrying the pre-update snapshot best-effort.
//
// An empty partial update is accepted: it changes nothing but still records
// an entry with updatedFields {}.
func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateItemInput) (*ItemDTO, error) {
	normalized, updatedFields, err := normalizeUpdate(input)
	if err != nil {
		return nil, err
	}

	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load item")
	}
	// Snapshot before mutating: the audit entry needs the original state.
	original := *NewItemDTO(item)

	applyUpdate(item, normalized)
	updated, err := s.repo.Save(ctx, item)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update item")
	}

	s.metrics.IncMutation(enums.AuditActionUpdateItem.String())
	s.recordAudit(ctx, auditlog.Entry{
		Action:   enums.AuditActionUpdateItem,
		ItemID:   updated.ID,
		ItemName: updated.Name,
		Details:  updateDetails{OriginalData: original, UpdatedFields: updatedFields},
	})

	return NewItemDTO(updated), nil
}

// Delete removes the item and appends a DELETE_ITEM audit entry carrying the
// full pre-delete snapshot best-effort.
func (s *service) Delete(ctx context.Context, id uuid.UUID) (*DeleteResult, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load item")
	}
	snapshot := *NewItemDTO(item)

	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete item")
	}

	s.metrics.IncMutation(enums.AuditActionDeleteItem.String())
	s.recordAudit(ctx, auditlog.Entry{
		Action:   enums.AuditActionDeleteItem,
		ItemID:   item.ID,
		ItemName: item.Name,
		Details:  deleteDetails{DeletedData: snapshot},
	})

	return &DeleteResult{ID: item.ID, Name: item.Name}, nil
}

// List returns all items, most recently created first.
func (s *service) List(ctx context.Context) ([]ItemDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list items")
	}
	return newItemDTOs(rows), nil
}

// SearchByName performs a case-insensitive substring match against names.
func (s *service) SearchByName(ctx context.Context, term string) ([]ItemDTO, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item name is required").
			WithDetails(map[string]string{"name": "is required"})
	}

	rows, err := s.repo.SearchByName(ctx, term)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: search items")
	}
	if len(rows) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
	}
	return newItemDTOs(rows), nil
}

// recordAudit is the isolated failure boundary around the audit write. The
// primary mutation has already succeeded by the time this runs; any error or
// panic from the recorder is logged, counted, and discarded so the
// caller-visible result never changes.
func (s *service) recordAudit(ctx context.Context, entry auditlog.Entry) {
	defer func() {
		if rec := recover(); rec != nil {
			s.metrics.IncAuditWriteFailure()
			ctx = s.logg.WithField(ctx, "audit_action", entry.Action.String())
			s.logg.Error(ctx, "audit write panicked", fmt.Errorf("panic: %v", rec))
		}
	}()

	if err := s.recorder.Record(ctx, entry); err != nil {
		s.metrics.IncAuditWriteFailure()
		ctx = s.logg.WithFields(ctx, map[string]any{
			"audit_action": entry.Action.String(),
			"item_id":      entry.ItemID.String(),
		})
		s.logg.Error(ctx, "audit write failed", err)
	}
}

type normalizedItem struct {
	name       string
	price      decimal.Decimal
	quantity   int
	expiryDate time.Time
	category   enums.ItemCategory
}

func (n normalizedItem) snapshot() ItemSnapshot {
	return ItemSnapshot{
		Name:       n.name,
		Price:      n.price.InexactFloat64(),
		Quantity:   n.quantity,
		ExpiryDate: n.expiryDate.Format(expiryDateLayout),
		Category:   n.category.String(),
	}
}

func normalizeCreate(input CreateItemInput) (*normalizedItem, error) {
	var (
		combined error
		fields   = map[string]string{}
		out      normalizedItem
	)

	out.name = strings.TrimSpace(input.Name)
	if out.name == "" {
		combined = multierr.Append(combined, fmt.Errorf("name is required"))
		fields["name"] = "is required"
	}

	price, err := normalizePrice(input.Price)
	if err != nil {
		combined = multierr.Append(combined, err)
		fields["price"] = "must be a positive decimal"
	} else {
		out.price = price
	}

	if input.Quantity <= 0 {
		combined = multierr.Append(combined, fmt.Errorf("quantity must be positive, got %d", input.Quantity))
		fields["quantity"] = "must be a positive integer"
	} else {
		out.quantity = input.Quantity
	}

	expiry, err := parseExpiryDate(input.ExpiryDate)
	if err != nil {
		combined = multierr.Append(combined, err)
		fields["expiryDate"] = "must be a valid date"
	} else {
		out.expiryDate = expiry
	}

	category, err := enums.ParseItemCategory(input.Category)
	if err != nil {
		combined = multierr.Append(combined, err)
		fields["category"] = "must be either 'fruit' or 'vegetable'"
	} else {
		out.category = category
	}

	if combined != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, combined, "invalid item input").WithDetails(fields)
	}
	return &out, nil
}

// normalizeUpdate validates whichever fields are present and returns both the
// parsed values and the normalized wire-shaped map recorded as updatedFields.
func normalizeUpdate(input UpdateItemInput) (*UpdateItemInput, map[string]any, error) {
	var (
		combined error
		fields   = map[string]string{}
		out      UpdateItemInput
		updated  = map[string]any{}
	)

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			combined = multierr.Append(combined, fmt.Errorf("name cannot be empty"))
			fields["name"] = "cannot be empty"
		} else {
			out.Name = &name
			updated["name"] = name
		}
	}

	if input.Price != nil {
		if _, err := normalizePrice(*input.Price); err != nil {
			combined = multierr.Append(combined, err)
			fields["price"] = "must be a positive decimal"
		} else {
			out.Price = input.Price
			updated["price"] = *input.Price
		}
	}

	if input.Quantity != nil {
		if *input.Quantity <= 0 {
			combined = multierr.Append(combined, fmt.Errorf("quantity must be positive, got %d", *input.Quantity))
			fields["quantity"] = "must be a positive integer"
		} else {
			out.Quantity = input.Quantity
			updated["quantity"] = *input.Quantity
		}
	}

	if input.ExpiryDate != nil {
		expiry, err := parseExpiryDate(*input.ExpiryDate)
		if err != nil {
			combined = multierr.Append(combined, err)
			fields["expiryDate"] = "must be a valid date"
		} else {
			formatted := expiry.Format(expiryDateLayout)
			out.ExpiryDate = &formatted
			updated["expiryDate"] = formatted
		}
	}

	if input.Category != nil {
		category, err := enums.ParseItemCategory(*input.Category)
		if err != nil {
			combined = multierr.Append(combined, err)
			fields["category"] = "must be either 'fruit' or 'vegetable'"
		} else {
			normalized := category.String()
			out.Category = &normalized
			updated["category"] = normalized
		}
	}

	if combined != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeValidation, combined, "invalid item input").WithDetails(fields)
	}
	return &out, updated, nil
}

func applyUpdate(item *models.Item, input *UpdateItemInput) {
	if input.Name != nil {
		item.Name = *input.Name
	}
	if input.Price != nil {
		item.Price = decimal.NewFromFloat(*input.Price)
	}
	if input.Quantity != nil {
		item.Quantity = *input.Quantity
	}
	if input.ExpiryDate != nil {
		expiry, _ := parseExpiryDate(*input.ExpiryDate)
		item.ExpiryDate = expiry
	}
	if input.Category != nil {
		item.Category = enums.ItemCategory(*input.Category)
	}
}

func normalizePrice(value float64) (decimal.Decimal, error) {
	price := decimal.NewFromFloat(value)
	if !price.IsPositive() {
		return decimal.Decimal{}, fmt.Errorf("price must be positive, got %v", value)
	}
	return price, nil
}

// parseExpiryDate accepts plain dates and full RFC3339 timestamps; either
// way only the calendar date is kept.
func parseExpiryDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(expiryDateLayout, value); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid expiry date %q", value)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}
