package memory

import (
	"context"
	"sync"
	"time"

	"coinwall/internal/core/domain"
	"coinwall/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// WalletRepo implements ports.WalletRepository on a mutex-guarded map.
// Every balance mutation runs under the lock as one read-modify-write,
// so concurrent spends cannot drive the balance negative.
type WalletRepo struct {
	mu       sync.RWMutex
	wallets  map[uuid.UUID]*domain.Wallet
	byDigest map[string]uuid.UUID
}

// NewWalletRepo creates an empty in-memory wallet repository.
func NewWalletRepo() *WalletRepo {
	return &WalletRepo{
		wallets:  make(map[uuid.UUID]*domain.Wallet),
		byDigest: make(map[string]uuid.UUID),
	}
}

func (r *WalletRepo) Create(ctx context.Context, w *domain.Wallet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *w
	r.wallets[w.ID] = &cp
	r.byDigest[w.SecretDigest] = w.ID
	return nil
}

func (r *WalletRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Wallet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return clone(r.wallets[id]), nil
}

func (r *WalletRepo) GetByAddress(ctx context.Context, address string) (*domain.Wallet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, w := range r.wallets {
		if w.Address == address {
			return clone(w), nil
		}
	}
	return nil, nil
}

func (r *WalletRepo) GetByDigest(ctx context.Context, digest string) (*domain.Wallet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byDigest[digest]
	if !ok {
		return nil, nil
	}
	return clone(r.wallets[id]), nil
}

// GetOrCreateByDigest checks and inserts under one lock acquisition, so
// two racing first submissions of the same passphrase resolve to the
// same record.
func (r *WalletRepo) GetOrCreateByDigest(ctx context.Context, w *domain.Wallet) (*domain.Wallet, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if id, ok := r.byDigest[w.SecretDigest]; ok {
		return clone(r.wallets[id]), false, nil
	}
	cp := *w
	r.wallets[w.ID] = &cp
	r.byDigest[w.SecretDigest] = w.ID
	return clone(&cp), true, nil
}

func (r *WalletRepo) UpdateNickname(ctx context.Context, id uuid.UUID, nickname string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.wallets[id]
	if !ok {
		return pgx.ErrNoRows
	}
	w.Nickname = nickname
	w.UpdatedAt = time.Now().UTC()
	return nil
}

// Award adds amount under the store lock. The tx argument is ignored.
func (r *WalletRepo) Award(ctx context.Context, tx pgx.Tx, id uuid.UUID, amount int64) (*domain.Wallet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.wallets[id]
	if !ok {
		return nil, nil
	}
	w.Balance += amount
	w.UpdatedAt = time.Now().UTC()
	return clone(w), nil
}

// Spend subtracts amount under the store lock, rejecting the mutation
// when the balance is short. The tx argument is ignored.
func (r *WalletRepo) Spend(ctx context.Context, tx pgx.Tx, id uuid.UUID, amount int64) (*domain.Wallet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.wallets[id]
	if !ok {
		return nil, nil
	}
	if w.Balance < amount {
		return nil, ports.ErrInsufficientBalance
	}
	w.Balance -= amount
	w.UpdatedAt = time.Now().UTC()
	return clone(w), nil
}

// clone copies a wallet so callers never share store-owned memory.
func clone(w *domain.Wallet) *domain.Wallet {
	if w == nil {
		return nil
	}
	cp := *w
	return &cp
}
