package items

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/freshstockhq/freshstock-backend/internal/auditlog"
	"github.com/freshstockhq/freshstock-backend/pkg/db/models"
	"github.com/freshstockhq/freshstock-backend/pkg/enums"
	"github.com/freshstockhq/freshstock-backend/pkg/logger"
)

func setupScenarioDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Item{}, &models.AuditLog{}))

	require.NoError(t, db.Exec("DELETE FROM items").Error)
	require.NoError(t, db.Exec("DELETE FROM audit_logs").Error)
	return db
}

// Full lifecycle against real repositories: every mutation leaves a matching
// audit row and the delete snapshot reflects the last saved state.
func TestItemLifecycleWritesAuditTrail(t *testing.T) {
	db := setupScenarioDB(t)
	ctx := context.Background()

	auditSvc, err := auditlog.NewService(auditlog.NewRepository(db), "")
	require.NoError(t, err)

	svc, err := NewService(NewRepository(db), auditSvc, logger.New(logger.Options{ServiceName: "test"}), nil)
	require.NoError(t, err)

	created, err := svc.Create(ctx, CreateItemInput{
		Name:       "Carrot",
		Price:      0.80,
		Quantity:   12,
		ExpiryDate: "2026-09-20",
		Category:   "vegetable",
	})
	require.NoError(t, err)

	qty := 3
	_, err = svc.Update(ctx, created.ID, UpdateItemInput{Quantity: &qty})
	require.NoError(t, err)

	_, err = svc.Delete(ctx, created.ID)
	require.NoError(t, err)

	listed, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, listed)

	var rows []models.AuditLog
	require.NoError(t, db.Order("created_at ASC").Find(&rows).Error)
	require.Len(t, rows, 3)

	byAction := map[enums.AuditAction]models.AuditLog{}
	for _, row := range rows {
		assert.Equal(t, created.ID, row.ItemID)
		assert.Equal(t, "Carrot", row.ItemName)
		assert.Equal(t, auditlog.DefaultActor, row.PerformedBy)
		byAction[row.Action] = row
	}
	require.Contains(t, byAction, enums.AuditActionAddItem)
	require.Contains(t, byAction, enums.AuditActionUpdateItem)
	require.Contains(t, byAction, enums.AuditActionDeleteItem)

	var add struct {
		AddedData ItemSnapshot `json:"addedData"`
	}
	require.NoError(t, json.Unmarshal(byAction[enums.AuditActionAddItem].Details, &add))
	assert.Equal(t, 12, add.AddedData.Quantity)

	var update struct {
		OriginalData  ItemDTO        `json:"originalData"`
		UpdatedFields map[string]any `json:"updatedFields"`
	}
	require.NoError(t, json.Unmarshal(byAction[enums.AuditActionUpdateItem].Details, &update))
	assert.Equal(t, 12, update.OriginalData.Quantity)
	assert.Equal(t, float64(3), update.UpdatedFields["quantity"])

	var deleted struct {
		DeletedData ItemDTO `json:"deletedData"`
	}
	require.NoError(t, json.Unmarshal(byAction[enums.AuditActionDeleteItem].Details, &deleted))
	assert.Equal(t, 3, deleted.DeletedData.Quantity, "delete snapshot carries the updated quantity")
}

func TestRepositorySearchByNameIsCaseInsensitive(t *testing.T) {
	db := setupScenarioDB(t)
	ctx := context.Background()
	repo := NewRepository(db)

	for _, name := range []string{"Green Apple", "Banana", "apple pie filling"} {
		_, err := repo.Create(ctx, &models.Item{
			Name:       name,
			Quantity:   1,
			Category:   enums.ItemCategoryFruit,
			ExpiryDate: mustParseDate(t, "2026-09-01"),
		})
		require.NoError(t, err)
	}

	rows, err := repo.SearchByName(ctx, "APPLE")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	for _, row := range rows {
		assert.Contains(t, []string{"Green Apple", "apple pie filling"}, row.Name)
	}
}

func mustParseDate(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(expiryDateLayout, value)
	require.NoError(t, err)
	return parsed
}
