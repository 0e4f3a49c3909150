package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"jobify/internal/auth"
	apperrors "jobify/internal/errors"
	"jobify/internal/model"
	"jobify/internal/repository"
)

// AuthService registers accounts and exchanges credentials for bearer tokens.
type AuthService interface {
	Register(ctx context.Context, acct model.NewAccount) error
	Authenticate(ctx context.Context, email, password string, role model.Role) (token string, err error)
}

type authService struct {
	accountRepo repository.AccountRepository
	hasher      *auth.Hasher
	jwtService  *auth.JWTService
}

// NewAuthService creates a new authentication service.
func NewAuthService(accountRepo repository.AccountRepository, hasher *auth.Hasher, jwtService *auth.JWTService) AuthService {
	return &authService{
		accountRepo: accountRepo,
		hasher:      hasher,
		jwtService:  jwtService,
	}
}

// Register hashes the password and creates the account. It does not sign the
// caller in. Duplicate (email, role) pairs are rejected by the store.
func (s *authService) Register(ctx context.Context, acct model.NewAccount) error {
	if !acct.Role.Valid() {
		return apperrors.Wrap(apperrors.ErrAccountCreationFailed, fmt.Errorf("unknown role %q", acct.Role))
	}

	hash, err := s.hasher.Hash(ctx, acct.Password)
	if err != nil {
		return err
	}

	account := &model.Account{
		ID:           uuid.New(),
		Email:        acct.Email,
		PasswordHash: hash,
		Role:         acct.Role,
	}
	if len(acct.Profile) > 0 {
		account.Profile = datatypes.JSONMap(acct.Profile)
	}

	if err := s.accountRepo.Create(ctx, account); err != nil {
		return apperrors.Wrap(apperrors.ErrAccountCreationFailed, err)
	}
	return nil
}

// Authenticate looks up the account by (email, role), checks the password and
// issues a token for the account ID.
func (s *authService) Authenticate(ctx context.Context, email, password string, role model.Role) (string, error) {
	account, err := s.accountRepo.FindByEmailAndRole(ctx, email, role)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			s.hasher.CompareDummy(ctx, password)
			return "", &apperrors.AccountNotFoundError{Role: string(role)}
		}
		return "", fmt.Errorf("find account: %w", err)
	}

	ok, err := s.hasher.Compare(ctx, account.PasswordHash, password)
	if err != nil {
		return "", fmt.Errorf("compare password: %w", err)
	}
	if !ok {
		return "", apperrors.ErrInvalidCredentials
	}

	token, err := s.jwtService.Issue(account.ID.String())
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}
