package ports

import (
	"context"
	"time"

	"coinwall/internal/core/domain"

	"github.com/google/uuid"
)

// --- Service Ports (Business Logic) ---

// WalletService defines the ledger business logic.
type WalletService interface {
	// CreateOrUpsert resolves a wallet from an externally supplied
	// passphrase: an existing wallet gets its nickname updated, a new
	// one is created with the configured starting balance.
	CreateOrUpsert(ctx context.Context, nickname, mnemonic string) (*domain.Wallet, error)
	// Generate creates a wallet from a fresh random mnemonic. The words
	// are returned exactly once and are not retrievable again.
	Generate(ctx context.Context, alias string) (*GeneratedWallet, error)
	// ImportByWords resolves a wallet from exactly twelve words,
	// creating it with an empty nickname when absent.
	ImportByWords(ctx context.Context, words string) (*domain.Wallet, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Wallet, error)
	GetByAddress(ctx context.Context, address string) (*domain.Wallet, error)
	Award(ctx context.Context, req MutationRequest) (*domain.Wallet, error)
	Spend(ctx context.Context, req MutationRequest) (*domain.Wallet, error)
	History(ctx context.Context, id uuid.UUID, limit int) ([]domain.LedgerEntry, error)
}

// GeneratedWallet pairs a freshly created wallet with its mnemonic words.
type GeneratedWallet struct {
	Wallet *domain.Wallet
	Words  []string
}

// MutationRequest holds validated input for a balance mutation.
type MutationRequest struct {
	WalletID uuid.UUID
	Amount   int64
	Reason   *string // optional free-text audit note
}

// WallService defines the public wall business logic.
type WallService interface {
	List(ctx context.Context, limit int) ([]domain.Post, error)
	Post(ctx context.Context, text, nick string) (*domain.Post, error)
}

// Broadcaster fans a wall event out to live subscribers. Delivery is
// best-effort: implementations must not block and must work with zero
// subscribers.
type Broadcaster interface {
	Publish(event domain.WallEvent)
}

// FeedCache caches the serialized default wall feed.
type FeedCache interface {
	Get(ctx context.Context) ([]byte, error) // nil, nil on cache miss
	Set(ctx context.Context, payload []byte, ttl time.Duration) error
	Invalidate(ctx context.Context) error
}
