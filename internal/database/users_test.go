package database

import (
	"context"
	"testing"

	"shareit/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndGetUser(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	user := createTestUser(t, db, "Alice", "alice@example.com")
	assert.NotZero(t, user.ID)
	assert.False(t, user.CreatedAt.IsZero())

	got, err := db.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.Name)
	assert.Equal(t, "alice@example.com", got.Email)
}

func TestGetUserByID_NotFound(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.GetUserByID(context.Background(), 999)
	assert.ErrorIs(t, err, models.ErrUserNotFound)
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	db := setupTestDB(t)

	createTestUser(t, db, "Alice", "alice@example.com")
	err := db.CreateUser(context.Background(), &models.User{Name: "Other", Email: "alice@example.com"})
	assert.ErrorIs(t, err, models.ErrDuplicateEmail)
}

func TestUpdateUser_Partial(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	user := createTestUser(t, db, "Alice", "alice@example.com")

	newName := "Alice B"
	updated, err := db.UpdateUser(ctx, user.ID, models.UserPatch{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, "Alice B", updated.Name)
	assert.Equal(t, "alice@example.com", updated.Email)

	newEmail := "alice.b@example.com"
	updated, err = db.UpdateUser(ctx, user.ID, models.UserPatch{Email: &newEmail})
	require.NoError(t, err)
	assert.Equal(t, "Alice B", updated.Name)
	assert.Equal(t, "alice.b@example.com", updated.Email)
}

func TestUpdateUser_EmailConflict(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	createTestUser(t, db, "Alice", "alice@example.com")
	bob := createTestUser(t, db, "Bob", "bob@example.com")

	taken := "alice@example.com"
	_, err := db.UpdateUser(ctx, bob.ID, models.UserPatch{Email: &taken})
	assert.ErrorIs(t, err, models.ErrDuplicateEmail)

	// Re-setting a user's own email is not a conflict.
	own := "bob@example.com"
	_, err = db.UpdateUser(ctx, bob.ID, models.UserPatch{Email: &own})
	assert.NoError(t, err)
}

func TestUpdateUser_NotFound(t *testing.T) {
	db := setupTestDB(t)

	name := "Ghost"
	_, err := db.UpdateUser(context.Background(), 42, models.UserPatch{Name: &name})
	assert.ErrorIs(t, err, models.ErrUserNotFound)
}

func TestDeleteUser_Idempotent(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	user := createTestUser(t, db, "Alice", "alice@example.com")

	require.NoError(t, db.DeleteUser(ctx, user.ID))
	_, err := db.GetUserByID(ctx, user.ID)
	assert.ErrorIs(t, err, models.ErrUserNotFound)

	// Deleting an absent id is a no-op.
	assert.NoError(t, db.DeleteUser(ctx, user.ID))
	assert.NoError(t, db.DeleteUser(ctx, 999))
}

func TestGetAllUsers(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	users, err := db.GetAllUsers(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)

	createTestUser(t, db, "Alice", "alice@example.com")
	createTestUser(t, db, "Bob", "bob@example.com")

	users, err = db.GetAllUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "Alice", users[0].Name)
	assert.Equal(t, "Bob", users[1].Name)
}

func TestUserExists(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	user := createTestUser(t, db, "Alice", "alice@example.com")

	exists, err := db.UserExists(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = db.UserExists(ctx, 777)
	require.NoError(t, err)
	assert.False(t, exists)
}
