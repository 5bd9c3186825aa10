package database

import (
	"context"
	"testing"

	"shareit/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndGetItem(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	owner := createTestUser(t, db, "Owner", "owner@example.com")
	item := createTestItem(t, db, owner.ID, "Drill", true)

	got, err := db.GetItemByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Drill", got.Name)
	assert.Equal(t, owner.ID, got.OwnerID)
	assert.True(t, got.Available)
	assert.Nil(t, got.RequestID)
}

func TestCreateItem_WithRequest(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	owner := createTestUser(t, db, "Owner", "owner@example.com")
	requestor := createTestUser(t, db, "Requestor", "req@example.com")

	request := &models.ItemRequest{Description: "need a drill", RequestorID: requestor.ID}
	require.NoError(t, db.CreateRequest(ctx, request))

	item := &models.Item{Name: "Drill", Available: true, OwnerID: owner.ID, RequestID: &request.ID}
	require.NoError(t, db.CreateItem(ctx, item))

	got, err := db.GetItemByID(ctx, item.ID)
	require.NoError(t, err)
	require.NotNil(t, got.RequestID)
	assert.Equal(t, request.ID, *got.RequestID)
}

func TestGetItemByID_NotFound(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.GetItemByID(context.Background(), 404)
	assert.ErrorIs(t, err, models.ErrItemNotFound)
}

func TestUpdateItem_Partial(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	owner := createTestUser(t, db, "Owner", "owner@example.com")
	item := createTestItem(t, db, owner.ID, "Drill", true)

	available := false
	updated, err := db.UpdateItem(ctx, item.ID, models.ItemPatch{Available: &available})
	require.NoError(t, err)
	assert.False(t, updated.Available)
	assert.Equal(t, "Drill", updated.Name)

	name := "Hammer drill"
	desc := "heavy duty"
	updated, err = db.UpdateItem(ctx, item.ID, models.ItemPatch{Name: &name, Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, "Hammer drill", updated.Name)
	assert.Equal(t, "heavy duty", updated.Description)
	assert.False(t, updated.Available)
}

func TestDeleteItem(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	owner := createTestUser(t, db, "Owner", "owner@example.com")
	item := createTestItem(t, db, owner.ID, "Drill", true)

	require.NoError(t, db.DeleteItem(ctx, item.ID))
	_, err := db.GetItemByID(ctx, item.ID)
	assert.ErrorIs(t, err, models.ErrItemNotFound)
}

func TestSearchItems(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	owner := createTestUser(t, db, "Owner", "owner@example.com")
	createTestItem(t, db, owner.ID, "Electric Drill", true)
	createTestItem(t, db, owner.ID, "Hammer", true)
	hidden := createTestItem(t, db, owner.ID, "Cordless drill", false)
	_ = hidden

	t.Run("CaseInsensitiveNameMatch", func(t *testing.T) {
		items, err := db.SearchItems(ctx, "DRILL", models.Page{})
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "Electric Drill", items[0].Name)
	})

	t.Run("DescriptionMatch", func(t *testing.T) {
		items, err := db.SearchItems(ctx, "hammer descr", models.Page{})
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "Hammer", items[0].Name)
	})

	t.Run("UnavailableExcluded", func(t *testing.T) {
		items, err := db.SearchItems(ctx, "cordless", models.Page{})
		require.NoError(t, err)
		assert.Empty(t, items)
	})
}

func TestGetItemsByOwner_Pagination(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	owner := createTestUser(t, db, "Owner", "owner@example.com")
	other := createTestUser(t, db, "Other", "other@example.com")
	for i := 0; i < 5; i++ {
		createTestItem(t, db, owner.ID, "Item", true)
	}
	createTestItem(t, db, other.ID, "Foreign", true)

	all, err := db.GetItemsByOwner(ctx, owner.ID, models.Page{})
	require.NoError(t, err)
	assert.Len(t, all, 5)

	page, err := models.NewPage(intp(2), intp(2))
	require.NoError(t, err)
	items, err := db.GetItemsByOwner(ctx, owner.ID, page)
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, all[2].ID, items[0].ID)
}

func TestGetItemsByRequestID(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	owner := createTestUser(t, db, "Owner", "owner@example.com")
	requestor := createTestUser(t, db, "Requestor", "req@example.com")

	request := &models.ItemRequest{Description: "need a ladder", RequestorID: requestor.ID}
	require.NoError(t, db.CreateRequest(ctx, request))

	item := &models.Item{Name: "Ladder", Available: true, OwnerID: owner.ID, RequestID: &request.ID}
	require.NoError(t, db.CreateItem(ctx, item))
	createTestItem(t, db, owner.ID, "Unrelated", true)

	items, err := db.GetItemsByRequestID(ctx, request.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Ladder", items[0].Name)
}

func intp(v int) *int { return &v }
