package ports

import (
	"context"
	"errors"

	"coinwall/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ErrInsufficientBalance is returned by WalletRepository.Spend when the
// wallet exists but its balance does not cover the amount.
var ErrInsufficientBalance = errors.New("insufficient balance")

// WalletRepository defines persistence operations for wallets.
// Lookups return (nil, nil) when no record matches. Methods accepting
// pgx.Tx run inside a transaction so the balance update and its ledger
// entry commit together.
type WalletRepository interface {
	Create(ctx context.Context, w *domain.Wallet) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Wallet, error)
	GetByAddress(ctx context.Context, address string) (*domain.Wallet, error)
	GetByDigest(ctx context.Context, digest string) (*domain.Wallet, error)
	// GetOrCreateByDigest resolves the wallet owning w.SecretDigest,
	// inserting w when none exists yet. The check and insert are atomic,
	// so concurrent first submissions of one passphrase converge on a
	// single record. Returns the stored wallet and whether it was created
	// by this call.
	GetOrCreateByDigest(ctx context.Context, w *domain.Wallet) (*domain.Wallet, bool, error)
	UpdateNickname(ctx context.Context, id uuid.UUID, nickname string) error
	// Award atomically adds amount to the balance and returns the updated
	// record, or nil when the wallet does not exist.
	Award(ctx context.Context, tx pgx.Tx, id uuid.UUID, amount int64) (*domain.Wallet, error)
	// Spend atomically subtracts amount only when the balance covers it,
	// as a single conditional read-modify-write. Returns the updated
	// record, nil when the wallet does not exist, or
	// ErrInsufficientBalance when the balance is too low.
	Spend(ctx context.Context, tx pgx.Tx, id uuid.UUID, amount int64) (*domain.Wallet, error)
}

// LedgerRepository defines persistence for balance mutation audit records.
type LedgerRepository interface {
	Create(ctx context.Context, tx pgx.Tx, e *domain.LedgerEntry) error
	// ListByWallet returns entries newest-first, capped at limit.
	ListByWallet(ctx context.Context, walletID uuid.UUID, limit int) ([]domain.LedgerEntry, error)
}

// PostRepository defines persistence for wall posts.
type PostRepository interface {
	Create(ctx context.Context, p *domain.Post) error
	// ListRecent returns posts newest-first, capped at limit.
	ListRecent(ctx context.Context, limit int) ([]domain.Post, error)
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
