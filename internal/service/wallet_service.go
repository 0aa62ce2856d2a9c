package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"coinwall/internal/core/domain"
	"coinwall/internal/core/ports"
	"coinwall/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	maxNicknameLen    = 40
	defaultHistoryLen = 50
	maxHistoryLen     = 200
)

// WalletServiceImpl implements ports.WalletService.
type WalletServiceImpl struct {
	walletRepo      ports.WalletRepository
	ledgerRepo      ports.LedgerRepository
	transactor      ports.DBTransactor
	addr            *AddressService
	minWords        int
	startingBalance int64
	log             zerolog.Logger
}

// NewWalletService creates a new WalletServiceImpl.
func NewWalletService(
	walletRepo ports.WalletRepository,
	ledgerRepo ports.LedgerRepository,
	transactor ports.DBTransactor,
	addr *AddressService,
	minWords int,
	startingBalance int64,
	log zerolog.Logger,
) *WalletServiceImpl {
	if minWords <= 0 {
		minWords = MnemonicWordCount
	}
	return &WalletServiceImpl{
		walletRepo:      walletRepo,
		ledgerRepo:      ledgerRepo,
		transactor:      transactor,
		addr:            addr,
		minWords:        minWords,
		startingBalance: startingBalance,
		log:             log,
	}
}

// CreateOrUpsert resolves a wallet by passphrase digest. Re-submitting
// the same passphrase yields the same record with only the nickname
// updated, never a duplicate.
func (s *WalletServiceImpl) CreateOrUpsert(ctx context.Context, nickname, mnemonic string) (*domain.Wallet, error) {
	nickname = capRunes(strings.TrimSpace(nickname), maxNicknameLen)
	if nickname == "" {
		return nil, apperror.ErrBadPayload("nickname must not be empty")
	}
	if len(strings.Fields(mnemonic)) < s.minWords {
		return nil, apperror.ErrBadPayload(fmt.Sprintf("mnemonic must contain at least %d words", s.minWords))
	}

	digest := s.addr.Digest(mnemonic)

	w, created, err := s.walletRepo.GetOrCreateByDigest(ctx, s.newWallet(digest, nickname, s.startingBalance))
	if err != nil {
		return nil, apperror.ErrStoreFailure(fmt.Errorf("resolve wallet by digest: %w", err))
	}
	if created {
		s.log.Info().
			Str("wallet_id", w.ID.String()).
			Str("address", w.Address).
			Msg("wallet created")
		return w, nil
	}

	if w.Nickname != nickname {
		if err := s.walletRepo.UpdateNickname(ctx, w.ID, nickname); err != nil {
			return nil, apperror.ErrStoreFailure(fmt.Errorf("update nickname: %w", err))
		}
		w.Nickname = nickname
		w.UpdatedAt = time.Now().UTC()
	}
	return w, nil
}

// Generate creates a wallet from a fresh random mnemonic and returns the
// words exactly once.
func (s *WalletServiceImpl) Generate(ctx context.Context, alias string) (*ports.GeneratedWallet, error) {
	alias = capRunes(strings.TrimSpace(alias), maxNicknameLen)

	words, err := s.addr.GenerateMnemonic(MnemonicWordCount)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("generate mnemonic: %w", err))
	}

	digest := s.addr.Digest(strings.Join(words, " "))
	w := s.newWallet(digest, alias, 0)
	if err := s.walletRepo.Create(ctx, w); err != nil {
		return nil, apperror.ErrStoreFailure(fmt.Errorf("create wallet: %w", err))
	}

	s.log.Info().
		Str("wallet_id", w.ID.String()).
		Str("address", w.Address).
		Msg("wallet generated")

	return &ports.GeneratedWallet{Wallet: w, Words: words}, nil
}

// ImportByWords resolves a wallet from exactly twelve words.
func (s *WalletServiceImpl) ImportByWords(ctx context.Context, words string) (*domain.Wallet, error) {
	if len(strings.Fields(words)) != MnemonicWordCount {
		return nil, apperror.ErrNeedTwelveWords()
	}

	digest := s.addr.Digest(words)

	w, _, err := s.walletRepo.GetOrCreateByDigest(ctx, s.newWallet(digest, "", 0))
	if err != nil {
		return nil, apperror.ErrStoreFailure(fmt.Errorf("resolve wallet by digest: %w", err))
	}
	return w, nil
}

// GetByID fetches a wallet by its UUID.
func (s *WalletServiceImpl) GetByID(ctx context.Context, id uuid.UUID) (*domain.Wallet, error) {
	w, err := s.walletRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.ErrStoreFailure(fmt.Errorf("get wallet: %w", err))
	}
	if w == nil {
		return nil, apperror.ErrNotFound("wallet")
	}
	return w, nil
}

// GetByAddress fetches a wallet by its display address.
func (s *WalletServiceImpl) GetByAddress(ctx context.Context, address string) (*domain.Wallet, error) {
	w, err := s.walletRepo.GetByAddress(ctx, strings.TrimSpace(address))
	if err != nil {
		return nil, apperror.ErrStoreFailure(fmt.Errorf("get wallet by address: %w", err))
	}
	if w == nil {
		return nil, apperror.ErrNotFound("wallet")
	}
	return w, nil
}

// Award credits the wallet. The balance update and its ledger entry
// commit in one transaction.
func (s *WalletServiceImpl) Award(ctx context.Context, req ports.MutationRequest) (*domain.Wallet, error) {
	return s.mutate(ctx, req, domain.LedgerEntryAward)
}

// Spend debits the wallet. The conditional update rejects the mutation
// when the balance does not cover the amount; the balance never goes
// negative, also under concurrent spends.
func (s *WalletServiceImpl) Spend(ctx context.Context, req ports.MutationRequest) (*domain.Wallet, error) {
	return s.mutate(ctx, req, domain.LedgerEntrySpend)
}

func (s *WalletServiceImpl) mutate(ctx context.Context, req ports.MutationRequest, kind domain.LedgerEntryKind) (*domain.Wallet, error) {
	if req.Amount <= 0 {
		return nil, apperror.ErrBadAmount()
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.ErrStoreFailure(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	var w *domain.Wallet
	switch kind {
	case domain.LedgerEntryAward:
		w, err = s.walletRepo.Award(ctx, dbTx, req.WalletID, req.Amount)
	case domain.LedgerEntrySpend:
		w, err = s.walletRepo.Spend(ctx, dbTx, req.WalletID, req.Amount)
	}
	if err != nil {
		if errors.Is(err, ports.ErrInsufficientBalance) {
			return nil, apperror.ErrInsufficientFunds()
		}
		return nil, apperror.ErrStoreFailure(fmt.Errorf("%s wallet: %w", kind, err))
	}
	if w == nil {
		return nil, apperror.ErrNotFound("wallet")
	}

	entry := &domain.LedgerEntry{
		ID:        uuid.New(),
		WalletID:  w.ID,
		Kind:      kind,
		Amount:    req.Amount,
		Reason:    req.Reason,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.ledgerRepo.Create(ctx, dbTx, entry); err != nil {
		return nil, apperror.ErrStoreFailure(fmt.Errorf("create ledger entry: %w", err))
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.ErrStoreFailure(fmt.Errorf("commit tx: %w", err))
	}

	s.log.Info().
		Str("wallet_id", w.ID.String()).
		Str("kind", string(kind)).
		Int64("amount", req.Amount).
		Int64("balance", w.Balance).
		Msg("balance mutated")

	return w, nil
}

// History lists ledger entries for a wallet, newest-first.
func (s *WalletServiceImpl) History(ctx context.Context, id uuid.UUID, limit int) ([]domain.LedgerEntry, error) {
	if limit <= 0 {
		limit = defaultHistoryLen
	} else if limit > maxHistoryLen {
		limit = maxHistoryLen
	}

	w, err := s.walletRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.ErrStoreFailure(fmt.Errorf("get wallet: %w", err))
	}
	if w == nil {
		return nil, apperror.ErrNotFound("wallet")
	}

	entries, err := s.ledgerRepo.ListByWallet(ctx, id, limit)
	if err != nil {
		return nil, apperror.ErrStoreFailure(fmt.Errorf("list ledger entries: %w", err))
	}
	return entries, nil
}

func (s *WalletServiceImpl) newWallet(digest, nickname string, balance int64) *domain.Wallet {
	now := time.Now().UTC()
	return &domain.Wallet{
		ID:           uuid.New(),
		Address:      s.addr.DeriveAddress(digest),
		SecretDigest: digest,
		Nickname:     nickname,
		Balance:      balance,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// capRunes truncates s to at most n runes.
func capRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
