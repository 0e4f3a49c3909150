package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"jobify/internal/cache"
	"jobify/internal/model"
	"jobify/internal/repository"
)

const accountCacheTTL = 5 * time.Minute

// AccountService serves account lookups for authenticated callers.
type AccountService interface {
	GetAccount(ctx context.Context, id uuid.UUID) (*model.Account, error)
	// InvalidateAccount drops the cached copy; call it after every write to the account.
	InvalidateAccount(ctx context.Context, id uuid.UUID)
}

// accountCache is the subset of *cache.Client the service uses.
type accountCache interface {
	GetJSON(ctx context.Context, key string, dst any) bool
	SetJSON(ctx context.Context, key string, v any, ttl time.Duration)
	Delete(ctx context.Context, key string)
}

type accountService struct {
	repo  repository.AccountRepository
	cache accountCache
}

// NewAccountService creates a new account service. cache may be nil.
func NewAccountService(repo repository.AccountRepository, cache *cache.Client) AccountService {
	return &accountService{
		repo:  repo,
		cache: cache,
	}
}

func (s *accountService) cacheKey(id uuid.UUID) string {
	return fmt.Sprintf("account:%s", id.String())
}

// GetAccount retrieves an account by ID with caching. The cached copy never
// contains the password hash.
func (s *accountService) GetAccount(ctx context.Context, id uuid.UUID) (*model.Account, error) {
	var cached model.Account
	if s.cache.GetJSON(ctx, s.cacheKey(id), &cached) {
		return &cached, nil
	}

	account, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get account: %w", err)
	}

	s.cache.SetJSON(ctx, s.cacheKey(id), account, accountCacheTTL)
	return account, nil
}

// InvalidateAccount removes the cached account so the next read goes to the store.
func (s *accountService) InvalidateAccount(ctx context.Context, id uuid.UUID) {
	s.cache.Delete(ctx, s.cacheKey(id))
}
