package repository

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/google/uuid"

	"jobify/internal/model"
)

type emailRole struct {
	email string
	role  model.Role
}

type memoryAccountRepository struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]*model.Account
	byLogin map[emailRole]uuid.UUID
}

// NewMemoryAccountRepository returns an in-process AccountRepository with the
// same error contract as the GORM one. Records are copied in and out.
func NewMemoryAccountRepository() AccountRepository {
	return &memoryAccountRepository{
		byID:    make(map[uuid.UUID]*model.Account),
		byLogin: make(map[emailRole]uuid.UUID),
	}
}

func (r *memoryAccountRepository) Create(_ context.Context, account *model.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := emailRole{email: account.Email, role: account.Role}
	if _, ok := r.byLogin[key]; ok {
		return ErrDuplicateAccount
	}
	if account.ID == uuid.Nil {
		account.ID = uuid.New()
	}
	if _, ok := r.byID[account.ID]; ok {
		return ErrDuplicateAccount
	}

	now := time.Now()
	account.CreatedAt = now
	account.UpdatedAt = now

	r.byID[account.ID] = clone(account)
	r.byLogin[key] = account.ID
	return nil
}

func (r *memoryAccountRepository) FindByEmailAndRole(_ context.Context, email string, role model.Role) (*model.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byLogin[emailRole{email: email, role: role}]
	if !ok {
		return nil, ErrAccountNotFound
	}
	return clone(r.byID[id]), nil
}

func (r *memoryAccountRepository) FindByID(_ context.Context, id uuid.UUID) (*model.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.byID[id]
	if !ok {
		return nil, ErrAccountNotFound
	}
	return clone(account), nil
}

func (r *memoryAccountRepository) Save(_ context.Context, account *model.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.byID[account.ID]
	if !ok {
		return ErrAccountNotFound
	}

	oldKey := emailRole{email: existing.Email, role: existing.Role}
	newKey := emailRole{email: account.Email, role: account.Role}
	if newKey != oldKey {
		if _, taken := r.byLogin[newKey]; taken {
			return ErrDuplicateAccount
		}
		delete(r.byLogin, oldKey)
		r.byLogin[newKey] = account.ID
	}

	account.CreatedAt = existing.CreatedAt
	account.UpdatedAt = time.Now()
	r.byID[account.ID] = clone(account)
	return nil
}

func clone(a *model.Account) *model.Account {
	c := *a
	if a.Profile != nil {
		c.Profile = maps.Clone(a.Profile)
	}
	return &c
}
