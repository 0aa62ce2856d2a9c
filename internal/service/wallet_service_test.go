package service

import (
	"context"
	"strings"
	"testing"

	"coinwall/internal/core/domain"
	"coinwall/internal/core/ports"
	"coinwall/internal/core/ports/mocks"
	"coinwall/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type walletTestDeps struct {
	svc        *WalletServiceImpl
	walletRepo *mocks.MockWalletRepository
	ledgerRepo *mocks.MockLedgerRepository
	transactor *mocks.MockDBTransactor
	addr       *AddressService
	ctrl       *gomock.Controller
}

func setupWalletService(t *testing.T) *walletTestDeps {
	ctrl := gomock.NewController(t)
	d := &walletTestDeps{
		walletRepo: mocks.NewMockWalletRepository(ctrl),
		ledgerRepo: mocks.NewMockLedgerRepository(ctrl),
		transactor: mocks.NewMockDBTransactor(ctrl),
		addr:       NewAddressService(),
		ctrl:       ctrl,
	}
	d.svc = NewWalletService(
		d.walletRepo, d.ledgerRepo, d.transactor, d.addr,
		12, 0, zerolog.Nop(),
	)
	return d
}

// mockTx implements pgx.Tx for testing
type mockTx struct{ pgx.Tx }

func (m *mockTx) Rollback(_ context.Context) error { return nil }
func (m *mockTx) Commit(_ context.Context) error   { return nil }

func assertAppError(t *testing.T, err error, expectedCode string) {
	t.Helper()
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, expectedCode, appErr.Code)
}

const testMnemonic = "apple banana cherry dog eagle forest gold harbor island jungle kite lemon"

// ==================== CreateOrUpsert Tests ====================

func TestWalletService_CreateOrUpsert_CreatesNew(t *testing.T) {
	d := setupWalletService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	digest := d.addr.Digest(testMnemonic)

	d.walletRepo.EXPECT().GetOrCreateByDigest(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, w *domain.Wallet) (*domain.Wallet, bool, error) {
			return w, true, nil
		})

	w, err := d.svc.CreateOrUpsert(ctx, "alice", testMnemonic)
	require.NoError(t, err)
	require.NotNil(t, w)
	assert.Equal(t, "alice", w.Nickname)
	assert.Equal(t, digest, w.SecretDigest)
	assert.Equal(t, d.addr.DeriveAddress(digest), w.Address)
	assert.Equal(t, int64(0), w.Balance)
}

func TestWalletService_CreateOrUpsert_SamePhraseSameWallet(t *testing.T) {
	d := setupWalletService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	digest := d.addr.Digest(testMnemonic)
	existing := &domain.Wallet{
		ID:           uuid.New(),
		Address:      d.addr.DeriveAddress(digest),
		SecretDigest: digest,
		Nickname:     "alice",
		Balance:      700,
	}

	d.walletRepo.EXPECT().GetOrCreateByDigest(ctx, gomock.Any()).Return(existing, false, nil)
	// Same nickname, so no update.

	w, err := d.svc.CreateOrUpsert(ctx, "alice", testMnemonic)
	require.NoError(t, err)
	assert.Equal(t, existing.ID, w.ID)
	assert.Equal(t, int64(700), w.Balance)
}

func TestWalletService_CreateOrUpsert_UpdatesNickname(t *testing.T) {
	d := setupWalletService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	digest := d.addr.Digest(testMnemonic)
	existing := &domain.Wallet{
		ID:           uuid.New(),
		SecretDigest: digest,
		Nickname:     "alice",
		Balance:      700,
	}

	d.walletRepo.EXPECT().GetOrCreateByDigest(ctx, gomock.Any()).Return(existing, false, nil)
	d.walletRepo.EXPECT().UpdateNickname(ctx, existing.ID, "bob").Return(nil)

	w, err := d.svc.CreateOrUpsert(ctx, "bob", testMnemonic)
	require.NoError(t, err)
	assert.Equal(t, existing.ID, w.ID)
	assert.Equal(t, "bob", w.Nickname)
	assert.Equal(t, int64(700), w.Balance, "upsert must not touch the balance")
}

func TestWalletService_CreateOrUpsert_EmptyNickname(t *testing.T) {
	d := setupWalletService(t)
	defer d.ctrl.Finish()

	w, err := d.svc.CreateOrUpsert(context.Background(), "   ", testMnemonic)
	assert.Nil(t, w)
	assertAppError(t, err, "bad_payload")
}

func TestWalletService_CreateOrUpsert_ShortMnemonic(t *testing.T) {
	d := setupWalletService(t)
	defer d.ctrl.Finish()

	w, err := d.svc.CreateOrUpsert(context.Background(), "alice", "too few words")
	assert.Nil(t, w)
	assertAppError(t, err, "bad_payload")
}

func TestWalletService_CreateOrUpsert_CapsNickname(t *testing.T) {
	d := setupWalletService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	long := strings.Repeat("x", 100)

	d.walletRepo.EXPECT().GetOrCreateByDigest(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, w *domain.Wallet) (*domain.Wallet, bool, error) {
			return w, true, nil
		})

	w, err := d.svc.CreateOrUpsert(ctx, long, testMnemonic)
	require.NoError(t, err)
	assert.Len(t, w.Nickname, maxNicknameLen)
}

// ==================== Generate Tests ====================

func TestWalletService_Generate_Success(t *testing.T) {
	d := setupWalletService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	d.walletRepo.EXPECT().Create(ctx, gomock.Any()).Return(nil)

	result, err := d.svc.Generate(ctx, "fresh")
	require.NoError(t, err)
	require.NotNil(t, result)
	require.Len(t, result.Words, MnemonicWordCount)
	assert.Equal(t, "fresh", result.Wallet.Nickname)
	assert.Equal(t, int64(0), result.Wallet.Balance)

	// The returned words derive exactly the stored digest.
	phrase := strings.Join(result.Words, " ")
	assert.Equal(t, d.addr.Digest(phrase), result.Wallet.SecretDigest)
	assert.Equal(t, d.addr.DeriveAddress(result.Wallet.SecretDigest), result.Wallet.Address)
}

// ==================== ImportByWords Tests ====================

func TestWalletService_ImportByWords_WrongWordCount(t *testing.T) {
	d := setupWalletService(t)
	defer d.ctrl.Finish()

	for _, words := range []string{"", "one two three", testMnemonic + " extra"} {
		w, err := d.svc.ImportByWords(context.Background(), words)
		assert.Nil(t, w)
		assertAppError(t, err, "need_12_words")
	}
}

func TestWalletService_ImportByWords_ResolvesExisting(t *testing.T) {
	d := setupWalletService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	digest := d.addr.Digest(testMnemonic)
	existing := &domain.Wallet{ID: uuid.New(), SecretDigest: digest, Balance: 42}

	d.walletRepo.EXPECT().GetOrCreateByDigest(ctx, gomock.Any()).Return(existing, false, nil)

	w, err := d.svc.ImportByWords(ctx, testMnemonic)
	require.NoError(t, err)
	assert.Equal(t, existing.ID, w.ID)
	assert.Equal(t, int64(42), w.Balance)
}

func TestWalletService_ImportByWords_CreatesWhenAbsent(t *testing.T) {
	d := setupWalletService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	digest := d.addr.Digest(testMnemonic)

	d.walletRepo.EXPECT().GetOrCreateByDigest(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, w *domain.Wallet) (*domain.Wallet, bool, error) {
			assert.Equal(t, digest, w.SecretDigest)
			return w, true, nil
		})

	w, err := d.svc.ImportByWords(ctx, testMnemonic)
	require.NoError(t, err)
	assert.Equal(t, digest, w.SecretDigest)
	assert.Empty(t, w.Nickname)
	assert.Equal(t, int64(0), w.Balance)
}

// ==================== Lookup Tests ====================

func TestWalletService_GetByID_NotFound(t *testing.T) {
	d := setupWalletService(t)
	defer d.ctrl.Finish()

	id := uuid.New()
	d.walletRepo.EXPECT().GetByID(gomock.Any(), id).Return(nil, nil)

	w, err := d.svc.GetByID(context.Background(), id)
	assert.Nil(t, w)
	assertAppError(t, err, "not_found")
}

func TestWalletService_GetByAddress_TrimsInput(t *testing.T) {
	d := setupWalletService(t)
	defer d.ctrl.Finish()

	existing := &domain.Wallet{ID: uuid.New(), Address: "MWC-1234-5678-9ABC-DEF0"}
	d.walletRepo.EXPECT().GetByAddress(gomock.Any(), existing.Address).Return(existing, nil)

	w, err := d.svc.GetByAddress(context.Background(), "  "+existing.Address+" ")
	require.NoError(t, err)
	assert.Equal(t, existing.ID, w.ID)
}

// ==================== Award / Spend Tests ====================

func TestWalletService_Award_Success(t *testing.T) {
	d := setupWalletService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	walletID := uuid.New()
	tx := &mockTx{}
	reason := "quest reward"
	updated := &domain.Wallet{ID: walletID, Balance: 150}

	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.walletRepo.EXPECT().Award(ctx, tx, walletID, int64(150)).Return(updated, nil)
	d.ledgerRepo.EXPECT().Create(ctx, tx, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ pgx.Tx, e *domain.LedgerEntry) error {
			assert.Equal(t, walletID, e.WalletID)
			assert.Equal(t, domain.LedgerEntryAward, e.Kind)
			assert.Equal(t, int64(150), e.Amount)
			require.NotNil(t, e.Reason)
			assert.Equal(t, reason, *e.Reason)
			return nil
		})

	w, err := d.svc.Award(ctx, ports.MutationRequest{
		WalletID: walletID,
		Amount:   150,
		Reason:   &reason,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(150), w.Balance)
}

func TestWalletService_Award_BadAmount(t *testing.T) {
	d := setupWalletService(t)
	defer d.ctrl.Finish()

	for _, amount := range []int64{0, -5} {
		w, err := d.svc.Award(context.Background(), ports.MutationRequest{
			WalletID: uuid.New(),
			Amount:   amount,
		})
		assert.Nil(t, w)
		assertAppError(t, err, "bad_amount")
	}
}

func TestWalletService_Spend_Success(t *testing.T) {
	d := setupWalletService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	walletID := uuid.New()
	tx := &mockTx{}
	updated := &domain.Wallet{ID: walletID, Balance: 30}

	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.walletRepo.EXPECT().Spend(ctx, tx, walletID, int64(70)).Return(updated, nil)
	d.ledgerRepo.EXPECT().Create(ctx, tx, gomock.Any()).Return(nil)

	w, err := d.svc.Spend(ctx, ports.MutationRequest{WalletID: walletID, Amount: 70})
	require.NoError(t, err)
	assert.Equal(t, int64(30), w.Balance)
}

func TestWalletService_Spend_InsufficientFunds(t *testing.T) {
	d := setupWalletService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	walletID := uuid.New()
	tx := &mockTx{}

	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.walletRepo.EXPECT().Spend(ctx, tx, walletID, int64(1000)).Return(nil, ports.ErrInsufficientBalance)

	w, err := d.svc.Spend(ctx, ports.MutationRequest{WalletID: walletID, Amount: 1000})
	assert.Nil(t, w)
	assertAppError(t, err, "insufficient_funds")
}

func TestWalletService_Spend_WalletNotFound(t *testing.T) {
	d := setupWalletService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	walletID := uuid.New()
	tx := &mockTx{}

	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.walletRepo.EXPECT().Spend(ctx, tx, walletID, int64(10)).Return(nil, nil)

	w, err := d.svc.Spend(ctx, ports.MutationRequest{WalletID: walletID, Amount: 10})
	assert.Nil(t, w)
	assertAppError(t, err, "not_found")
}

func TestWalletService_Award_LedgerFailureAborts(t *testing.T) {
	d := setupWalletService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	walletID := uuid.New()
	tx := &mockTx{}

	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.walletRepo.EXPECT().Award(ctx, tx, walletID, int64(5)).Return(&domain.Wallet{ID: walletID, Balance: 5}, nil)
	d.ledgerRepo.EXPECT().Create(ctx, tx, gomock.Any()).Return(assert.AnError)

	w, err := d.svc.Award(ctx, ports.MutationRequest{WalletID: walletID, Amount: 5})
	assert.Nil(t, w)
	assertAppError(t, err, "store_failure")
}

// ==================== History Tests ====================

func TestWalletService_History_Success(t *testing.T) {
	d := setupWalletService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	walletID := uuid.New()
	entries := []domain.LedgerEntry{
		{ID: uuid.New(), WalletID: walletID, Kind: domain.LedgerEntrySpend, Amount: 10},
		{ID: uuid.New(), WalletID: walletID, Kind: domain.LedgerEntryAward, Amount: 50},
	}

	d.walletRepo.EXPECT().GetByID(ctx, walletID).Return(&domain.Wallet{ID: walletID}, nil)
	d.ledgerRepo.EXPECT().ListByWallet(ctx, walletID, 25).Return(entries, nil)

	result, err := d.svc.History(ctx, walletID, 25)
	require.NoError(t, err)
	assert.Equal(t, entries, result)
}

func TestWalletService_History_ClampsLimit(t *testing.T) {
	d := setupWalletService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	walletID := uuid.New()

	d.walletRepo.EXPECT().GetByID(ctx, walletID).Return(&domain.Wallet{ID: walletID}, nil).Times(2)

	// Non-positive limits fall back to the default page size.
	d.ledgerRepo.EXPECT().ListByWallet(ctx, walletID, defaultHistoryLen).Return(nil, nil)
	_, err := d.svc.History(ctx, walletID, 0)
	require.NoError(t, err)

	// Oversized limits clamp to the maximum, not the default.
	d.ledgerRepo.EXPECT().ListByWallet(ctx, walletID, maxHistoryLen).Return(nil, nil)
	_, err = d.svc.History(ctx, walletID, maxHistoryLen+1)
	require.NoError(t, err)
}

func TestWalletService_History_WalletNotFound(t *testing.T) {
	d := setupWalletService(t)
	defer d.ctrl.Finish()

	walletID := uuid.New()
	d.walletRepo.EXPECT().GetByID(gomock.Any(), walletID).Return(nil, nil)

	entries, err := d.svc.History(context.Background(), walletID, 10)
	assert.Nil(t, entries)
	assertAppError(t, err, "not_found")
}
