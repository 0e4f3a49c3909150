package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobify/internal/model"
)

func TestMemoryAccountRepository_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryAccountRepository()

	account := &model.Account{
		Email:        "a@x.com",
		PasswordHash: "hash",
		Role:         model.RoleEmployer,
		Profile:      map[string]any{"company": "Acme"},
	}
	require.NoError(t, repo.Create(ctx, account))
	assert.NotEqual(t, uuid.Nil, account.ID)

	found, err := repo.FindByEmailAndRole(ctx, "a@x.com", model.RoleEmployer)
	require.NoError(t, err)
	assert.Equal(t, account.ID, found.ID)
	assert.Equal(t, "Acme", found.Profile["company"])

	byID, err := repo.FindByID(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", byID.Email)
}

func TestMemoryAccountRepository_RoleScopedLookup(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryAccountRepository()

	require.NoError(t, repo.Create(ctx, &model.Account{Email: "a@x.com", PasswordHash: "h", Role: model.RoleEmployer}))

	_, err := repo.FindByEmailAndRole(ctx, "a@x.com", model.RoleJobSeeker)
	assert.ErrorIs(t, err, ErrAccountNotFound)

	// Same email under another role is a separate account.
	require.NoError(t, repo.Create(ctx, &model.Account{Email: "a@x.com", PasswordHash: "h", Role: model.RoleJobSeeker}))
}

func TestMemoryAccountRepository_Duplicate(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryAccountRepository()

	require.NoError(t, repo.Create(ctx, &model.Account{Email: "a@x.com", PasswordHash: "h1", Role: model.RoleEmployer}))
	err := repo.Create(ctx, &model.Account{Email: "a@x.com", PasswordHash: "h2", Role: model.RoleEmployer})
	assert.ErrorIs(t, err, ErrDuplicateAccount)

	found, err := repo.FindByEmailAndRole(ctx, "a@x.com", model.RoleEmployer)
	require.NoError(t, err)
	assert.Equal(t, "h1", found.PasswordHash, "first record must not be overwritten")
}

func TestMemoryAccountRepository_Save(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryAccountRepository()

	account := &model.Account{Email: "a@x.com", PasswordHash: "old", Role: model.RoleEmployer}
	require.NoError(t, repo.Create(ctx, account))

	account.PasswordHash = "new"
	require.NoError(t, repo.Save(ctx, account))

	found, err := repo.FindByEmailAndRole(ctx, "a@x.com", model.RoleEmployer)
	require.NoError(t, err)
	assert.Equal(t, "new", found.PasswordHash)

	err = repo.Save(ctx, &model.Account{ID: uuid.New(), Email: "b@x.com", Role: model.RoleEmployer})
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestMemoryAccountRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryAccountRepository()

	account := &model.Account{Email: "a@x.com", PasswordHash: "h", Role: model.RoleEmployer}
	require.NoError(t, repo.Create(ctx, account))

	found, err := repo.FindByID(ctx, account.ID)
	require.NoError(t, err)
	found.PasswordHash = "tampered"

	again, err := repo.FindByID(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, "h", again.PasswordHash)
}
