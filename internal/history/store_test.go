package history

import (
	"context"
	"encoding/json"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suhas-sunder/allsavingscalc-sub000/pkg/calculator"
	"go.uber.org/zap"
)

func openTestStore(t *testing.T, maxEntries int) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"), maxEntries, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRecordAndGet(t *testing.T) {
	store := openTestStore(t, 5)
	fixed := time.Date(2026, time.March, 4, 5, 6, 7, 0, time.UTC)
	store.now = func() time.Time { return fixed }
	ctx := context.Background()

	in := calculator.CompoundInput{Principal: 1000, AnnualRate: 5, Years: 2}
	summary := calculator.Summary{InitialBalance: 1000, FinalBalance: 1104.94, TotalInterest: 104.94, Months: 24}

	entry, err := store.Record(ctx, "two years", in, summary)
	require.NoError(t, err)
	_, err = uuid.Parse(entry.ID)
	require.NoError(t, err, "entry id must be a uuid")
	assert.Equal(t, "compound", entry.Calculator)

	got, err := store.Get(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, "two years", got.Name)
	assert.Equal(t, summary, got.Summary)
	assert.True(t, fixed.Equal(got.CreatedAt))

	var decoded calculator.CompoundInput
	require.NoError(t, json.Unmarshal(got.Input, &decoded))
	assert.Equal(t, in, decoded)

	_, err = store.Get(ctx, uuid.New().String())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRecordPrunesOldest(t *testing.T) {
	store := openTestStore(t, 3)
	ctx := context.Background()

	var ids []string
	for i := 1; i <= 5; i++ {
		entry, err := store.Record(ctx, "", calculator.BalanceInput{Months: i, AnnualRate: 1}, calculator.Summary{Months: i})
		require.NoError(t, err)
		ids = append(ids, entry.ID)
	}

	entries, err := store.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, []string{ids[4], ids[3], ids[2]}, []string{entries[0].ID, entries[1].ID, entries[2].ID})

	limited, err := store.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, 5, limited[0].Summary.Months)
}

func TestDeleteAndClear(t *testing.T) {
	store := openTestStore(t, 10)
	ctx := context.Background()

	first, err := store.Record(ctx, "a", calculator.SavingsInput{Years: 1}, calculator.Summary{})
	require.NoError(t, err)
	_, err = store.Record(ctx, "b", calculator.SavingsInput{Years: 2}, calculator.Summary{})
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, first.ID))
	assert.ErrorIs(t, store.Delete(ctx, first.ID), ErrNotFound)

	deleted, err := store.Clear(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	entries, err := store.List(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestConcurrentRecords(t *testing.T) {
	store := openTestStore(t, 100)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := store.Record(ctx, "", calculator.CompoundInput{Years: i + 1}, calculator.Summary{Months: 12 * (i + 1)})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	entries, err := store.List(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, entries, 20)
}

func TestRecordRejectsNilInput(t *testing.T) {
	store := openTestStore(t, 0)
	_, err := store.Record(context.Background(), "", nil, calculator.Summary{})
	assert.Error(t, err)
	assert.Equal(t, 50, store.maxEntries)
}
