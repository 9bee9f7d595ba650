package memory

import (
	"context"

	"github.com/prn-tf/hearth/internal/domain"
	"github.com/prn-tf/hearth/internal/repository"
)

// accountRecord stores a defensive copy so callers mutating a fetched
// account cannot change the store without going through Update.
type accountRecord struct {
	account domain.Account
}

// accountRepository implements repository.AccountRepository in memory.
type accountRepository struct {
	store *Store
}

// NewAccountRepository creates an in-memory account repository.
func NewAccountRepository(store *Store) repository.AccountRepository {
	return &accountRepository{store: store}
}

func (r *accountRepository) Add(ctx context.Context, account *domain.Account) error {
	unlock := r.store.lock(ctx)
	defer unlock()

	r.store.accounts[account.ID] = &accountRecord{account: *account}
	return nil
}

func (r *accountRepository) Get(ctx context.Context, id string) (*domain.Account, error) {
	unlock := r.store.rlock(ctx)
	defer unlock()

	rec, ok := r.store.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	account := rec.account
	return &account, nil
}

func (r *accountRepository) GetAll(ctx context.Context) ([]*domain.Account, error) {
	unlock := r.store.rlock(ctx)
	defer unlock()

	accounts := make([]*domain.Account, 0, len(r.store.accounts))
	for _, rec := range r.store.accounts {
		account := rec.account
		accounts = append(accounts, &account)
	}
	return accounts, nil
}

func (r *accountRepository) Update(ctx context.Context, account *domain.Account) error {
	unlock := r.store.lock(ctx)
	defer unlock()

	if _, ok := r.store.accounts[account.ID]; !ok {
		return domain.ErrAccountNotFound
	}
	r.store.accounts[account.ID] = &accountRecord{account: *account}
	return nil
}

func (r *accountRepository) Delete(ctx context.Context, id string) error {
	unlock := r.store.lock(ctx)
	defer unlock()

	if _, ok := r.store.accounts[id]; !ok {
		return domain.ErrAccountNotFound
	}
	delete(r.store.accounts, id)
	return nil
}

func (r *accountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	unlock := r.store.rlock(ctx)
	defer unlock()

	for _, rec := range r.store.accounts {
		if rec.account.Email == email {
			account := rec.account
			return &account, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}
