// Package service provides the business logic layer for Hearth.
//
// Mutating methods accept the already-deserialized request payload as a
// map. Each use case follows the same ordering: resolve referenced
// entities, validate scalar fields, check uniqueness, mutate storage,
// then synchronize relationships. Multi-entity writes run inside a
// repository.TxManager transaction.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/prn-tf/hearth/internal/credentials"
	"github.com/prn-tf/hearth/internal/domain"
	"github.com/prn-tf/hearth/internal/repository"
)

// AccountService handles account operations.
type AccountService struct {
	accountRepo repository.AccountRepository
	creds       *credentials.Manager
	logger      zerolog.Logger
}

// NewAccountService creates a new AccountService.
func NewAccountService(
	accountRepo repository.AccountRepository,
	creds *credentials.Manager,
	logger zerolog.Logger,
) *AccountService {
	return &AccountService{
		accountRepo: accountRepo,
		creds:       creds,
		logger:      logger.With().Str("service", "account").Logger(),
	}
}

// Create registers a new account from a payload with first_name,
// last_name, email and password fields. The email is normalized and must
// be unique; the password passes the strength policy and is stored only
// as a bcrypt hash.
func (s *AccountService) Create(ctx context.Context, payload map[string]any) (*domain.Account, error) {
	firstName, err := domain.ValidateName(payload["first_name"], "First name")
	if err != nil {
		return nil, err
	}
	lastName, err := domain.ValidateName(payload["last_name"], "Last name")
	if err != nil {
		return nil, err
	}
	email, err := domain.ValidateEmail(payload["email"])
	if err != nil {
		return nil, err
	}
	hash, err := s.creds.Hash(payload["password"])
	if err != nil {
		return nil, err
	}

	// Email uniqueness is case-insensitive through normalization.
	if _, err := s.accountRepo.GetByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrEmailTaken, email)
	} else if !errors.Is(err, domain.ErrAccountNotFound) {
		return nil, err
	}

	account := domain.NewAccount(firstName, lastName, email, hash)
	if isAdmin, ok := payload["is_admin"].(bool); ok {
		account.IsAdmin = isAdmin
	}

	if err := s.accountRepo.Add(ctx, account); err != nil {
		return nil, err
	}

	s.logger.Info().Str("account_id", account.ID).Msg("account created")
	return account, nil
}

// Update applies the allowed fields of the payload to an existing
// account. Unknown keys are ignored. An email change re-checks
// uniqueness against other accounts; a password change re-runs the
// strength policy.
func (s *AccountService) Update(ctx context.Context, id string, payload map[string]any) (*domain.Account, error) {
	account, err := s.accountRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if raw, ok := payload["first_name"]; ok {
		firstName, err := domain.ValidateName(raw, "First name")
		if err != nil {
			return nil, err
		}
		account.FirstName = firstName
	}
	if raw, ok := payload["last_name"]; ok {
		lastName, err := domain.ValidateName(raw, "Last name")
		if err != nil {
			return nil, err
		}
		account.LastName = lastName
	}
	if raw, ok := payload["email"]; ok {
		email, err := domain.ValidateEmail(raw)
		if err != nil {
			return nil, err
		}
		if email != account.Email {
			other, err := s.accountRepo.GetByEmail(ctx, email)
			if err == nil && other.ID != account.ID {
				return nil, fmt.Errorf("%w: %s", domain.ErrEmailTaken, email)
			}
			if err != nil && !errors.Is(err, domain.ErrAccountNotFound) {
				return nil, err
			}
		}
		account.Email = email
	}
	if raw, ok := payload["password"]; ok {
		hash, err := s.creds.Hash(raw)
		if err != nil {
			return nil, err
		}
		account.PasswordHash = hash
	}
	if raw, ok := payload["is_admin"]; ok {
		isAdmin, ok := raw.(bool)
		if !ok {
			return nil, &domain.ValidationError{
				Kind:   domain.ErrTypeMismatch,
				Field:  "Admin flag",
				Reason: "must be a boolean",
			}
		}
		account.IsAdmin = isAdmin
	}

	account.Touch()
	if err := s.accountRepo.Update(ctx, account); err != nil {
		return nil, err
	}

	s.logger.Info().Str("account_id", account.ID).Msg("account updated")
	return account, nil
}

// Get retrieves an account by id.
func (s *AccountService) Get(ctx context.Context, id string) (*domain.Account, error) {
	return s.accountRepo.Get(ctx, id)
}

// GetByEmail retrieves an account by email, normalizing it first.
func (s *AccountService) GetByEmail(ctx context.Context, email any) (*domain.Account, error) {
	normalized, err := domain.ValidateEmail(email)
	if err != nil {
		return nil, err
	}
	return s.accountRepo.GetByEmail(ctx, normalized)
}

// List returns all accounts.
func (s *AccountService) List(ctx context.Context) ([]*domain.Account, error) {
	return s.accountRepo.GetAll(ctx)
}

// Authenticate verifies an email/password pair and returns the matching
// account. Unknown emails and wrong passwords are indistinguishable to
// the caller.
func (s *AccountService) Authenticate(ctx context.Context, email, password any) (*domain.Account, error) {
	normalized, err := domain.ValidateEmail(email)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	account, err := s.accountRepo.GetByEmail(ctx, normalized)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	ok, err := s.creds.Verify(account.PasswordHash, password)
	if err != nil {
		return nil, err
	}
	if !ok {
		s.logger.Warn().Str("account_id", account.ID).Msg("failed login attempt")
		return nil, domain.ErrInvalidCredentials
	}
	return account, nil
}
