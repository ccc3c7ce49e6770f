package items

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/freshstockhq/freshstock-backend/internal/auditlog"
	"github.com/freshstockhq/freshstock-backend/pkg/db/models"
	"github.com/freshstockhq/freshstock-backend/pkg/enums"
	pkgerrors "github.com/freshstockhq/freshstock-backend/pkg/errors"
	"github.com/freshstockhq/freshstock-backend/pkg/logger"
)

type fakeRepo struct {
	byID      map[uuid.UUID]*models.Item
	createErr error
	saveErr   error
	deleteErr error
	created   int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: map[uuid.UUID]*models.Item{}}
}

func (f *fakeRepo) Create(_ context.Context, item *models.Item) (*models.Item, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	f.byID[item.ID] = item
	f.created++
	return item, nil
}

func (f *fakeRepo) Save(_ context.Context, item *models.Item) (*models.Item, error) {
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	f.byID[item.ID] = item
	return item, nil
}

func (f *fakeRepo) Delete(_ context.Context, id uuid.UUID) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Item, error) {
	item, ok := f.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *item
	return &copied, nil
}

func (f *fakeRepo) List(_ context.Context) ([]models.Item, error) {
	out := []models.Item{}
	for _, item := range f.byID {
		out = append(out, *item)
	}
	return out, nil
}

func (f *fakeRepo) SearchByName(_ context.Context, _ string) ([]models.Item, error) {
	return f.List(context.Background())
}

type fakeRecorder struct {
	entries []auditlog.Entry
	err     error
	panics  bool
}

func (f *fakeRecorder) Record(_ context.Context, entry auditlog.Entry) error {
	if f.panics {
		panic("recorder exploded")
	}
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, entry)
	return nil
}

func newTestService(t *testing.T, repo Repository, recorder auditRecorder) *service {
	t.Helper()
	svc, err := NewService(repo, recorder, logger.New(logger.Options{ServiceName: "test"}), nil)
	require.NoError(t, err)
	return svc.(*service)
}

func validCreateInput() CreateItemInput {
	return CreateItemInput{
		Name:       "Apple",
		Price:      1.50,
		Quantity:   10,
		ExpiryDate: "2026-09-15",
		Category:   "fruit",
	}
}

func TestCreateRecordsAuditEntry(t *testing.T) {
	repo := newFakeRepo()
	recorder := &fakeRecorder{}
	svc := newTestService(t, repo, recorder)

	dto, err := svc.Create(context.Background(), validCreateInput())
	require.NoError(t, err)
	require.NotNil(t, dto)
	assert.Equal(t, "Apple", dto.Name)
	assert.Equal(t, "fruit", dto.Category)
	assert.Equal(t, "2026-09-15", dto.ExpiryDate)

	require.Len(t, recorder.entries, 1)
	entry := recorder.entries[0]
	assert.Equal(t, enums.AuditActionAddItem, entry.Action)
	assert.Equal(t, dto.ID, entry.ItemID)
	assert.Equal(t, "Apple", entry.ItemName)
	details, ok := entry.Details.(addDetails)
	require.True(t, ok)
	assert.Equal(t, "Apple", details.AddedData.Name)
	assert.Equal(t, 10, details.AddedData.Quantity)
}

func TestCreateNormalizesCategory(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(t, repo, &fakeRecorder{})

	input := validCreateInput()
	input.Category = "  FRUIT "
	dto, err := svc.Create(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, "fruit", dto.Category)
}

func TestCreateRejectsInvalidInputWithoutWrites(t *testing.T) {
	repo := newFakeRepo()
	recorder := &fakeRecorder{}
	svc := newTestService(t, repo, recorder)

	input := CreateItemInput{
		Name:       "  ",
		Price:      -2,
		Quantity:   0,
		ExpiryDate: "not-a-date",
		Category:   "meat",
	}
	_, err := svc.Create(context.Background(), input)
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

	details, ok := typed.Details().(map[string]string)
	require.True(t, ok)
	for _, field := range []string{"name", "price", "quantity", "expiryDate", "category"} {
		assert.Contains(t, details, field)
	}

	assert.Zero(t, repo.created, "no item row may exist after a rejected create")
	assert.Empty(t, recorder.entries, "no audit row may exist after a rejected create")
}

func TestCreateSucceedsWhenAuditWriteFails(t *testing.T) {
	repo := newFakeRepo()
	recorder := &fakeRecorder{err: errors.New("audit store down")}
	svc := newTestService(t, repo, recorder)

	dto, err := svc.Create(context.Background(), validCreateInput())
	require.NoError(t, err)
	require.NotNil(t, dto)
	assert.Equal(t, 1, repo.created)
}

func TestCreateSucceedsWhenAuditWritePanics(t *testing.T) {
	repo := newFakeRepo()
	recorder := &fakeRecorder{panics: true}
	svc := newTestService(t, repo, recorder)

	dto, err := svc.Create(context.Background(), validCreateInput())
	require.NoError(t, err)
	require.NotNil(t, dto)
}

func TestUpdateAppliesOnlyProvidedFields(t *testing.T) {
	repo := newFakeRepo()
	recorder := &fakeRecorder{}
	svc := newTestService(t, repo, recorder)

	created, err := svc.Create(context.Background(), validCreateInput())
	require.NoError(t, err)

	qty := 3
	dto, err := svc.Update(context.Background(), created.ID, UpdateItemInput{Quantity: &qty})
	require.NoError(t, err)
	assert.Equal(t, 3, dto.Quantity)
	assert.Equal(t, "Apple", dto.Name)
	assert.Equal(t, created.Price, dto.Price)

	require.Len(t, recorder.entries, 2)
	entry := recorder.entries[1]
	assert.Equal(t, enums.AuditActionUpdateItem, entry.Action)
	details, ok := entry.Details.(updateDetails)
	require.True(t, ok)
	assert.Equal(t, 10, details.OriginalData.Quantity, "original snapshot keeps the pre-update value")
	assert.Equal(t, map[string]any{"quantity": 3}, details.UpdatedFields)
}

func TestUpdateWithEmptyBodyStillRecordsEntry(t *testing.T) {
	repo := newFakeRepo()
	recorder := &fakeRecorder{}
	svc := newTestService(t, repo, recorder)

	created, err := svc.Create(context.Background(), validCreateInput())
	require.NoError(t, err)

	dto, err := svc.Update(context.Background(), created.ID, UpdateItemInput{})
	require.NoError(t, err)
	assert.Equal(t, created.Quantity, dto.Quantity)

	require.Len(t, recorder.entries, 2)
	details, ok := recorder.entries[1].Details.(updateDetails)
	require.True(t, ok)
	assert.Empty(t, details.UpdatedFields)
}

func TestUpdateRejectsInvalidFields(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(t, repo, &fakeRecorder{})

	created, err := svc.Create(context.Background(), validCreateInput())
	require.NoError(t, err)

	badQty := -5
	badCat := "frozen"
	_, err = svc.Update(context.Background(), created.ID, UpdateItemInput{Quantity: &badQty, Category: &badCat})
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestUpdateMissingItemReturnsNotFound(t *testing.T) {
	svc := newTestService(t, newFakeRepo(), &fakeRecorder{})

	qty := 1
	_, err := svc.Update(context.Background(), uuid.New(), UpdateItemInput{Quantity: &qty})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestDeleteRecordsSnapshot(t *testing.T) {
	repo := newFakeRepo()
	recorder := &fakeRecorder{}
	svc := newTestService(t, repo, recorder)

	created, err := svc.Create(context.Background(), validCreateInput())
	require.NoError(t, err)

	result, err := svc.Delete(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, result.ID)
	assert.Equal(t, "Apple", result.Name)

	require.Len(t, recorder.entries, 2)
	entry := recorder.entries[1]
	assert.Equal(t, enums.AuditActionDeleteItem, entry.Action)
	details, ok := entry.Details.(deleteDetails)
	require.True(t, ok)
	assert.Equal(t, created.ID, details.DeletedData.ID)
	assert.Equal(t, 10, details.DeletedData.Quantity)
}

func TestDeleteTwiceReturnsNotFound(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(t, repo, &fakeRecorder{})

	created, err := svc.Create(context.Background(), validCreateInput())
	require.NoError(t, err)

	_, err = svc.Delete(context.Background(), created.ID)
	require.NoError(t, err)

	_, err = svc.Delete(context.Background(), created.ID)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestSearchByNameRequiresTerm(t *testing.T) {
	svc := newTestService(t, newFakeRepo(), &fakeRecorder{})

	_, err := svc.SearchByName(context.Background(), "   ")
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestSearchByNameEmptyResultIsNotFound(t *testing.T) {
	svc := newTestService(t, newFakeRepo(), &fakeRecorder{})

	_, err := svc.SearchByName(context.Background(), "mango")
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestParseExpiryDateAcceptsTimestamps(t *testing.T) {
	got, err := parseExpiryDate("2026-09-15T10:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, "2026-09-15", got.Format(expiryDateLayout))
}

func TestNormalizePriceKeepsCents(t *testing.T) {
	price, err := normalizePrice(1.5)
	require.NoError(t, err)
	assert.True(t, price.Equal(decimal.NewFromFloat(1.5)))
}
