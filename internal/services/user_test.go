package services_test

import (
	"context"
	"testing"

	"github.com/oaktires/accounts-api/internal/services"
	"github.com/oaktires/accounts-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedUser(t *testing.T, repo *fakeUserRepo, username, email string) string {
	t.Helper()
	svc := newAuthService(t, repo, nil)
	user, err := svc.Register(context.Background(), registerInput(username, email))
	require.NoError(t, err)
	return user.ID
}

func TestUserService_UpdateAppliesFields(t *testing.T) {
	repo := newFakeUserRepo()
	id := seedUser(t, repo, "alice", "alice@example.com")
	svc := services.NewUserService(repo)

	updated, err := svc.Update(context.Background(), id, services.UpdateUserInput{
		FirstName: "Alicia",
		LastName:  "Jones",
	})
	require.NoError(t, err)

	assert.Equal(t, "Alicia", updated.FirstName)
	assert.Equal(t, "Jones", updated.LastName)
	// Untouched fields keep their values.
	assert.Equal(t, "alice", updated.Username)
	assert.Equal(t, "alice@example.com", updated.Email)
}

func TestUserService_UpdateRevalidatesUniqueness(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "alice", "alice@example.com")
	bobID := seedUser(t, repo, "bob", "bob@example.com")
	svc := services.NewUserService(repo)

	_, err := svc.Update(context.Background(), bobID, services.UpdateUserInput{Username: "alice"})
	assert.ErrorIs(t, err, store.ErrConflict)

	_, err = svc.Update(context.Background(), bobID, services.UpdateUserInput{Email: "alice@example.com"})
	assert.ErrorIs(t, err, store.ErrConflict)
}

func TestUserService_MissingIDIsNotFound(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "alice", "alice@example.com")
	svc := services.NewUserService(repo)

	_, err := svc.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = svc.Update(context.Background(), "missing", services.UpdateUserInput{FirstName: "X"})
	assert.ErrorIs(t, err, store.ErrNotFound)

	err = svc.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestUserService_ListAndDelete(t *testing.T) {
	repo := newFakeUserRepo()
	aliceID := seedUser(t, repo, "alice", "alice@example.com")
	seedUser(t, repo, "bob", "bob@example.com")
	svc := services.NewUserService(repo)

	users, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 2)

	require.NoError(t, svc.Delete(context.Background(), aliceID))

	users, err = svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestUsernameMatchingIsCaseSensitive(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "alice", "alice@example.com")

	_, err := repo.GetByUsername(context.Background(), "Alice")
	assert.ErrorIs(t, err, store.ErrNotFound)
}
