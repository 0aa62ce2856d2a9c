package memory

import (
	"context"
	"testing"
	"time"

	"coinwall/internal/core/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerRepo_ListByWallet_FiltersAndOrders(t *testing.T) {
	repo := NewLedgerRepo()
	ctx := context.Background()
	mine := uuid.New()
	other := uuid.New()

	entries := []*domain.LedgerEntry{
		{ID: uuid.New(), WalletID: mine, Kind: domain.LedgerEntryAward, Amount: 100},
		{ID: uuid.New(), WalletID: other, Kind: domain.LedgerEntryAward, Amount: 999},
		{ID: uuid.New(), WalletID: mine, Kind: domain.LedgerEntrySpend, Amount: 30},
	}
	for _, e := range entries {
		e.CreatedAt = time.Now().UTC()
		require.NoError(t, repo.Create(ctx, nil, e))
	}

	got, err := repo.ListByWallet(ctx, mine, 10)
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Newest-first: the spend was appended last.
	assert.Equal(t, domain.LedgerEntrySpend, got[0].Kind)
	assert.Equal(t, domain.LedgerEntryAward, got[1].Kind)
}

func TestLedgerRepo_ListByWallet_RespectsLimit(t *testing.T) {
	repo := NewLedgerRepo()
	ctx := context.Background()
	walletID := uuid.New()

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Create(ctx, nil, &domain.LedgerEntry{
			ID:       uuid.New(),
			WalletID: walletID,
			Kind:     domain.LedgerEntryAward,
			Amount:   int64(i + 1),
		}))
	}

	got, err := repo.ListByWallet(ctx, walletID, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(5), got[0].Amount)
	assert.Equal(t, int64(4), got[1].Amount)
}
