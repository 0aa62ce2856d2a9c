package memory

import (
	"context"
	"sync"

	"coinwall/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// LedgerRepo implements ports.LedgerRepository on a mutex-guarded slice.
type LedgerRepo struct {
	mu      sync.RWMutex
	entries []domain.LedgerEntry
}

// NewLedgerRepo creates an empty in-memory ledger repository.
func NewLedgerRepo() *LedgerRepo {
	return &LedgerRepo{}
}

// Create appends an entry. The tx argument is ignored.
func (r *LedgerRepo) Create(ctx context.Context, tx pgx.Tx, e *domain.LedgerEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, *e)
	return nil
}

// ListByWallet returns entries newest-first, capped at limit.
func (r *LedgerRepo) ListByWallet(ctx context.Context, walletID uuid.UUID, limit int) ([]domain.LedgerEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.LedgerEntry, 0, limit)
	for i := len(r.entries) - 1; i >= 0 && len(out) < limit; i-- {
		if r.entries[i].WalletID == walletID {
			out = append(out, r.entries[i])
		}
	}
	return out, nil
}
