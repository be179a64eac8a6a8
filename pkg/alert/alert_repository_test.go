package alert

import (
	"Pantry-API/entities"
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&entities.Member{},
		&entities.Ingredient{},
		&entities.IngredientLog{},
		&entities.Alert{},
	))
	return db
}

func countAlerts(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&entities.Alert{}).Count(&count).Error)
	return count
}

func TestSaveAllWithoutDuplicatesInsertsNewKeys(t *testing.T) {
	db := newTestDB(t)
	repo := NewAlertRepository(db)
	ctx := context.Background()

	saved, err := repo.SaveAllWithoutDuplicates(ctx, []*entities.Alert{
		{MemberID: uuid.New(), IngredientID: uuid.New(), Comment: "contains peanuts"},
		{MemberID: uuid.New(), IngredientID: uuid.New(), Comment: "high sodium"},
	})
	require.NoError(t, err)
	require.Len(t, saved, 2)
	require.EqualValues(t, 2, countAlerts(t, db))
}

func TestSaveAllWithoutDuplicatesFiltersExistingKeys(t *testing.T) {
	db := newTestDB(t)
	repo := NewAlertRepository(db)
	ctx := context.Background()

	memberID := uuid.New()
	milkID := uuid.New()

	_, err := repo.SaveAllWithoutDuplicates(ctx, []*entities.Alert{
		{MemberID: memberID, IngredientID: milkID, Comment: "lactose intolerance"},
	})
	require.NoError(t, err)

	// A second delivery for the same pair must not produce a second row or
	// overwrite the stored comment.
	saved, err := repo.SaveAllWithoutDuplicates(ctx, []*entities.Alert{
		{MemberID: memberID, IngredientID: milkID, Comment: "different comment"},
		{MemberID: memberID, IngredientID: uuid.New(), Comment: "new pair"},
	})
	require.NoError(t, err)
	require.Len(t, saved, 1)
	require.Equal(t, "new pair", saved[0].Comment)
	require.EqualValues(t, 2, countAlerts(t, db))

	kept, err := repo.FindByKey(ctx, memberID, milkID)
	require.NoError(t, err)
	require.Equal(t, "lactose intolerance", kept.Comment)
}

func TestSaveAllWithoutDuplicatesDropsRepeatsWithinBatch(t *testing.T) {
	db := newTestDB(t)
	repo := NewAlertRepository(db)
	ctx := context.Background()

	memberID := uuid.New()
	ingredientID := uuid.New()

	saved, err := repo.SaveAllWithoutDuplicates(ctx, []*entities.Alert{
		{MemberID: memberID, IngredientID: ingredientID, Comment: "first"},
		{MemberID: memberID, IngredientID: ingredientID, Comment: "second"},
	})
	require.NoError(t, err)
	require.Len(t, saved, 1)
	require.Equal(t, "first", saved[0].Comment)
	require.EqualValues(t, 1, countAlerts(t, db))
}

func TestSaveAllWithoutDuplicatesEmptyBatch(t *testing.T) {
	db := newTestDB(t)
	repo := NewAlertRepository(db)

	saved, err := repo.SaveAllWithoutDuplicates(context.Background(), nil)
	require.NoError(t, err)
	require.Empty(t, saved)
}

func TestFindByKeyNotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewAlertRepository(db)

	_, err := repo.FindByKey(context.Background(), uuid.New(), uuid.New())
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
