package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"jobify/internal/auth"
	"jobify/internal/model"
	"jobify/internal/repository"
	"jobify/internal/service"
)

func TestReadAccounts(t *testing.T) {
	accounts, err := readAccounts("accounts.json")
	require.NoError(t, err)
	require.Len(t, accounts, 3)

	assert.Equal(t, "hiring@acme.example", accounts[0].Email)
	assert.Equal(t, model.RoleEmployer, accounts[0].Role)
	assert.Equal(t, "Acme Corp", accounts[0].Profile["company"])
	assert.NotContains(t, accounts[0].Profile, "password")
}

func TestReadAccounts_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"email": "x"}`), 0o600))

	_, err := readAccounts(path)
	assert.Error(t, err)
}

// recordingAccountService wraps the real service and records evictions.
type recordingAccountService struct {
	service.AccountService
	invalidated []uuid.UUID
}

func (r *recordingAccountService) InvalidateAccount(ctx context.Context, id uuid.UUID) {
	r.invalidated = append(r.invalidated, id)
	r.AccountService.InvalidateAccount(ctx, id)
}

func TestSeedAccounts(t *testing.T) {
	ctx := context.Background()
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	repo := repository.NewMemoryAccountRepository()
	hasher := auth.NewHasher(bcrypt.MinCost, 2)
	authService := service.NewAuthService(repo, hasher, auth.NewJWTService("test-secret", time.Hour))
	accountService := &recordingAccountService{AccountService: service.NewAccountService(repo, nil)}

	accounts := []model.NewAccount{
		{Email: "a@x.com", Password: "first", Role: model.RoleEmployer, Profile: map[string]any{"company": "Acme"}},
		{Email: "a@x.com", Password: "first", Role: model.RoleJobSeeker},
	}
	seeded, updated, err := seedAccounts(ctx, log, authService, accountService, repo, hasher, accounts)
	require.NoError(t, err)
	assert.Equal(t, 2, seeded)
	assert.Equal(t, 0, updated)
	assert.Empty(t, accountService.invalidated)

	before, err := repo.FindByEmailAndRole(ctx, "a@x.com", model.RoleEmployer)
	require.NoError(t, err)

	accounts[0].Password = "second"
	accounts[0].Profile = map[string]any{"location": "Remote"}
	seeded, updated, err = seedAccounts(ctx, log, authService, accountService, repo, hasher, accounts[:1])
	require.NoError(t, err)
	assert.Equal(t, 0, seeded)
	assert.Equal(t, 1, updated)

	after, err := repo.FindByEmailAndRole(ctx, "a@x.com", model.RoleEmployer)
	require.NoError(t, err)
	assert.Equal(t, before.ID, after.ID)
	assert.Equal(t, []uuid.UUID{after.ID}, accountService.invalidated)
	assert.Equal(t, "Acme", after.Profile["company"])
	assert.Equal(t, "Remote", after.Profile["location"])

	_, err = authService.Authenticate(ctx, "a@x.com", "second", model.RoleEmployer)
	assert.NoError(t, err)
	_, err = authService.Authenticate(ctx, "a@x.com", "first", model.RoleEmployer)
	assert.Error(t, err)
	_, err = authService.Authenticate(ctx, "a@x.com", "first", model.RoleJobSeeker)
	assert.NoError(t, err)
}
