package postgres

import (
	"context"
	"errors"
	"fmt"

	"coinwall/internal/core/domain"
	"coinwall/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const walletColumns = "id, address, secret_digest, nickname, balance, created_at, updated_at"

// WalletRepo implements ports.WalletRepository.
type WalletRepo struct {
	pool Pool
}

// NewWalletRepo creates a new WalletRepo.
func NewWalletRepo(pool Pool) *WalletRepo {
	return &WalletRepo{pool: pool}
}

// Create inserts a new wallet into the database.
func (r *WalletRepo) Create(ctx context.Context, w *domain.Wallet) error {
	query := `INSERT INTO wallets (id, address, secret_digest, nickname, balance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.pool.Exec(ctx, query,
		w.ID, w.Address, w.SecretDigest, w.Nickname, w.Balance,
		w.CreatedAt, w.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert wallet: %w", err)
	}
	return nil
}

// GetByID fetches a wallet by its UUID.
func (r *WalletRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE id = $1`
	return r.scanOne(r.pool.QueryRow(ctx, query, id), "get wallet by id")
}

// GetByAddress fetches a wallet by its display address.
func (r *WalletRepo) GetByAddress(ctx context.Context, address string) (*domain.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE address = $1`
	return r.scanOne(r.pool.QueryRow(ctx, query, address), "get wallet by address")
}

// GetByDigest fetches a wallet by its passphrase digest.
func (r *WalletRepo) GetByDigest(ctx context.Context, digest string) (*domain.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE secret_digest = $1`
	return r.scanOne(r.pool.QueryRow(ctx, query, digest), "get wallet by digest")
}

// GetOrCreateByDigest inserts w unless a wallet already owns the digest.
// ON CONFLICT DO NOTHING makes concurrent first submissions of the same
// passphrase converge on one row; the loser re-reads the winner's record.
func (r *WalletRepo) GetOrCreateByDigest(ctx context.Context, w *domain.Wallet) (*domain.Wallet, bool, error) {
	query := `INSERT INTO wallets (id, address, secret_digest, nickname, balance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (secret_digest) DO NOTHING
		RETURNING ` + walletColumns

	created, err := r.scanOne(r.pool.QueryRow(ctx, query,
		w.ID, w.Address, w.SecretDigest, w.Nickname, w.Balance,
		w.CreatedAt, w.UpdatedAt,
	), "insert wallet by digest")
	if err != nil {
		return nil, false, err
	}
	if created != nil {
		return created, true, nil
	}

	existing, err := r.GetByDigest(ctx, w.SecretDigest)
	if err != nil {
		return nil, false, err
	}
	if existing == nil {
		return nil, false, fmt.Errorf("wallet for digest vanished after conflicting insert")
	}
	return existing, false, nil
}

// UpdateNickname updates only the display label.
func (r *WalletRepo) UpdateNickname(ctx context.Context, id uuid.UUID, nickname string) error {
	query := `UPDATE wallets SET nickname = $1, updated_at = NOW() WHERE id = $2`

	tag, err := r.pool.Exec(ctx, query, nickname, id)
	if err != nil {
		return fmt.Errorf("update nickname: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("wallet not found: %s", id)
	}
	return nil
}

// Award adds amount to the balance in a single atomic statement.
// Returns nil when the wallet does not exist. MUST be called within a
// transaction so the ledger entry commits with it.
func (r *WalletRepo) Award(ctx context.Context, tx pgx.Tx, id uuid.UUID, amount int64) (*domain.Wallet, error) {
	query := `UPDATE wallets SET balance = balance + $1, updated_at = NOW()
		WHERE id = $2
		RETURNING ` + walletColumns

	return r.scanOne(tx.QueryRow(ctx, query, amount, id), "award wallet")
}

// Spend subtracts amount in a single conditional statement; the WHERE
// clause makes concurrent overspends impossible. Returns nil when the
// wallet does not exist and ports.ErrInsufficientBalance when the
// balance does not cover the amount. MUST be called within a transaction.
func (r *WalletRepo) Spend(ctx context.Context, tx pgx.Tx, id uuid.UUID, amount int64) (*domain.Wallet, error) {
	query := `UPDATE wallets SET balance = balance - $1, updated_at = NOW()
		WHERE id = $2 AND balance >= $1
		RETURNING ` + walletColumns

	w, err := r.scanOne(tx.QueryRow(ctx, query, amount, id), "spend wallet")
	if err != nil {
		return nil, err
	}
	if w != nil {
		return w, nil
	}

	// Zero rows: either the wallet is missing or the balance is short.
	var exists bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM wallets WHERE id = $1)`, id).Scan(&exists); err != nil {
		return nil, fmt.Errorf("check wallet exists: %w", err)
	}
	if !exists {
		return nil, nil
	}
	return nil, ports.ErrInsufficientBalance
}

func (r *WalletRepo) scanOne(row pgx.Row, op string) (*domain.Wallet, error) {
	w := &domain.Wallet{}
	err := row.Scan(
		&w.ID, &w.Address, &w.SecretDigest, &w.Nickname, &w.Balance,
		&w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return w, nil
}
