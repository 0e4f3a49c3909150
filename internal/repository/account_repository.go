package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"jobify/internal/model"
)

var (
	// ErrAccountNotFound is returned when no account matches a lookup.
	ErrAccountNotFound = errors.New("account not found")
	// ErrDuplicateAccount is returned when an (email, role) pair is already registered.
	ErrDuplicateAccount = errors.New("account with this email and role already exists")
)

// AccountRepository defines account persistence operations.
type AccountRepository interface {
	Create(ctx context.Context, account *model.Account) error
	FindByEmailAndRole(ctx context.Context, email string, role model.Role) (*model.Account, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Account, error)
	Save(ctx context.Context, account *model.Account) error
}

type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a GORM-backed account repository. The DB should
// be opened with TranslateError so duplicate keys surface as gorm.ErrDuplicatedKey.
func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

// Create inserts a new account in a single statement.
func (r *accountRepository) Create(ctx context.Context, account *model.Account) error {
	return translate(r.db.WithContext(ctx).Create(account).Error)
}

// FindByEmailAndRole finds the account registered under email for role.
func (r *accountRepository) FindByEmailAndRole(ctx context.Context, email string, role model.Role) (*model.Account, error) {
	var account model.Account
	if err := r.db.WithContext(ctx).
		Where("email = ? AND role = ?", email, role).
		First(&account).Error; err != nil {
		return nil, translate(err)
	}
	return &account, nil
}

// FindByID finds an account by ID.
func (r *accountRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Account, error) {
	var account model.Account
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&account).Error; err != nil {
		return nil, translate(err)
	}
	return &account, nil
}

// Save updates an existing account.
func (r *accountRepository) Save(ctx context.Context, account *model.Account) error {
	return translate(r.db.WithContext(ctx).Save(account).Error)
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrAccountNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicateAccount
	default:
		return err
	}
}
