package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"jobify/internal/auth"
	"jobify/internal/cache"
	"jobify/internal/config"
	"jobify/internal/db"
	"jobify/internal/logger"
	"jobify/internal/model"
	"jobify/internal/repository"
	"jobify/internal/service"
)

const defaultSeedFile = "cmd/seed/accounts.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New("info", "json").WithError(err).Fatal("load config")
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	log.Info("Starting seed script...")

	seedFile := os.Getenv("SEED_FILE")
	if seedFile == "" {
		seedFile = defaultSeedFile
	}

	gormDB, err := db.Open(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}
	log.Info("Connected to database")

	accounts, err := readAccounts(seedFile)
	if err != nil {
		log.WithError(err).Fatal("Failed to read seed file")
	}
	log.WithField("file", seedFile).Infof("Read %d accounts", len(accounts))

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()

	accountRepo := repository.NewAccountRepository(gormDB)
	hasher := auth.NewHasher(cfg.BcryptCost, cfg.HashWorkers)
	authService := service.NewAuthService(accountRepo, hasher, auth.NewJWTService(cfg.JWTSecret, cfg.TokenTTL))
	accountService := service.NewAccountService(accountRepo, cacheClient)

	seeded, updated, err := seedAccounts(context.Background(), log, authService, accountService, accountRepo, hasher, accounts)
	if err != nil {
		log.WithError(err).Fatal("Failed to seed accounts")
	}

	log.WithFields(logrus.Fields{
		"created": seeded,
		"updated": updated,
		"total":   seeded + updated,
	}).Info("Seed completed successfully")
}

// readAccounts parses a JSON array of sign-up payloads.
func readAccounts(path string) ([]model.NewAccount, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var payloads []map[string]any
	if err := json.Unmarshal(raw, &payloads); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	accounts := make([]model.NewAccount, 0, len(payloads))
	for _, p := range payloads {
		accounts = append(accounts, model.NewAccountFromPayload(p))
	}
	return accounts, nil
}

// seedAccounts registers new accounts and resets the password and profile of
// ones that already exist for the same (email, role). Updated accounts are
// evicted from the read cache.
func seedAccounts(
	ctx context.Context,
	log logrus.FieldLogger,
	authService service.AuthService,
	accountService service.AccountService,
	repo repository.AccountRepository,
	hasher *auth.Hasher,
	accounts []model.NewAccount,
) (seeded int, updated int, err error) {
	for _, acct := range accounts {
		entry := log.WithFields(logrus.Fields{"email": acct.Email, "role": acct.Role})

		existing, err := repo.FindByEmailAndRole(ctx, acct.Email, acct.Role)
		if err != nil && !errors.Is(err, repository.ErrAccountNotFound) {
			return seeded, updated, fmt.Errorf("error checking account %s/%s: %w", acct.Role, acct.Email, err)
		}

		if existing == nil {
			if err := authService.Register(ctx, acct); err != nil {
				return seeded, updated, fmt.Errorf("error creating account %s/%s: %w", acct.Role, acct.Email, err)
			}
			entry.Debug("account created")
			seeded++
			continue
		}

		hash, err := hasher.Hash(ctx, acct.Password)
		if err != nil {
			return seeded, updated, fmt.Errorf("error hashing password for %s/%s: %w", acct.Role, acct.Email, err)
		}
		existing.PasswordHash = hash
		for k, v := range acct.Profile {
			if existing.Profile == nil {
				existing.Profile = make(map[string]any, len(acct.Profile))
			}
			existing.Profile[k] = v
		}
		if err := repo.Save(ctx, existing); err != nil {
			return seeded, updated, fmt.Errorf("error updating account %s/%s: %w", acct.Role, acct.Email, err)
		}
		accountService.InvalidateAccount(ctx, existing.ID)
		entry.Debug("account updated")
		updated++
	}

	return seeded, updated, nil
}
