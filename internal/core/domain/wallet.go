package domain

import (
	"time"

	"github.com/google/uuid"
)

// Wallet is a coin balance addressed by an identifier derived from a
// secret passphrase. The digest is the uniqueness key: the same
// passphrase always resolves to the same wallet record.
type Wallet struct {
	ID           uuid.UUID `json:"id"`
	Address      string    `json:"address"`
	SecretDigest string    `json:"-"` // hex SHA3-256 of the passphrase, never exposed
	Nickname     string    `json:"nickname"`
	Balance      int64     `json:"balance"` // smallest currency unit, never negative
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// LedgerEntryKind discriminates balance mutations.
type LedgerEntryKind string

const (
	LedgerEntryAward LedgerEntryKind = "award"
	LedgerEntrySpend LedgerEntryKind = "spend"
)

// LedgerEntry is an immutable audit record of a single balance mutation.
type LedgerEntry struct {
	ID        uuid.UUID       `json:"id"`
	WalletID  uuid.UUID       `json:"wallet_id"`
	Kind      LedgerEntryKind `json:"kind"`
	Amount    int64           `json:"amount"`
	Reason    *string         `json:"reason,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}
