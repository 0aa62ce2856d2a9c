package dto

import (
	"time"

	"coinwall/internal/core/domain"
)

// CreateWalletRequest is the body for POST /wallet.
type CreateWalletRequest struct {
	Nickname string `json:"nickname"`
	Mnemonic string `json:"mnemonic"`
}

// GenerateWalletRequest is the body for POST /wallet/create.
type GenerateWalletRequest struct {
	Alias string `json:"alias"`
}

// ImportWalletRequest is the body for POST /wallet/import.
type ImportWalletRequest struct {
	Words string `json:"words"`
}

// MutateRequest is the body for award and spend calls.
type MutateRequest struct {
	Amount int64   `json:"amount"`
	Reason *string `json:"reason,omitempty"`
}

// PostWallRequest is the body for POST /wall.
type PostWallRequest struct {
	Text string `json:"text"`
	Nick string `json:"nick"`
}

// WalletResponse is the wallet record shape returned to clients. The
// passphrase digest is never part of it.
type WalletResponse struct {
	ID        string    `json:"id"`
	Address   string    `json:"address"`
	Nickname  string    `json:"nickname"`
	Balance   int64     `json:"balance"`
	CreatedAt time.Time `json:"created_at"`
}

// GeneratedWalletResponse carries the mnemonic words exactly once,
// at creation time.
type GeneratedWalletResponse struct {
	WalletResponse
	Words []string `json:"words"`
}

// ToWalletResponse maps a domain wallet to its client shape.
func ToWalletResponse(w *domain.Wallet) WalletResponse {
	return WalletResponse{
		ID:        w.ID.String(),
		Address:   w.Address,
		Nickname:  w.Nickname,
		Balance:   w.Balance,
		CreatedAt: w.CreatedAt,
	}
}
