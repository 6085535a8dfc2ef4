package store_test

import (
	"path/filepath"
	"testing"

	"github.com/kharidoapp/checkout-engine/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSQLiteStore(t *testing.T) (store.Store, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "slots.db")

	st, err := store.NewSQLiteStore(path)
	require.NoError(t, err, "Failed to open sqlite slot store")

	t.Cleanup(func() {
		st.Close()
	})

	return st, path
}

func TestSQLiteStore(t *testing.T) {
	st, _ := setupSQLiteStore(t)
	ctx := t.Context()

	t.Run("Missing Slot Reads As Absent", func(t *testing.T) {
		var out slotRecord

		found, err := st.Read(ctx, store.SlotCheckout, &out)

		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("Round Trip", func(t *testing.T) {
		in := slotRecord{Label: "cart", Count: 3}

		require.NoError(t, st.Write(ctx, store.SlotCart, in))

		var out slotRecord

		found, err := st.Read(ctx, store.SlotCart, &out)

		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, in, out)
	})

	t.Run("Upsert Overwrites", func(t *testing.T) {
		require.NoError(t, st.Write(ctx, store.SlotCart, slotRecord{Label: "replaced"}))

		var out slotRecord

		found, err := st.Read(ctx, store.SlotCart, &out)

		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "replaced", out.Label)
	})

	t.Run("Malformed Value Reads As Absent", func(t *testing.T) {
		require.NoError(t, st.Write(ctx, store.SlotOrders, 42))

		var out []slotRecord

		found, err := st.Read(ctx, store.SlotOrders, &out)

		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, st.Write(ctx, store.SlotSaved, slotRecord{Label: "saved"}))
		require.NoError(t, st.Delete(ctx, store.SlotSaved))

		var out slotRecord

		found, err := st.Read(ctx, store.SlotSaved, &out)

		require.NoError(t, err)
		assert.False(t, found)
	})
}

func TestSQLiteStorePersistsAcrossReopen(t *testing.T) {
	ctx := t.Context()
	path := filepath.Join(t.TempDir(), "slots.db")

	first, err := store.NewSQLiteStore(path)
	require.NoError(t, err)

	require.NoError(t, first.Write(ctx, store.SlotCart, slotRecord{Label: "durable", Count: 1}))
	require.NoError(t, first.Close())

	second, err := store.NewSQLiteStore(path)
	require.NoError(t, err)

	defer second.Close()

	var out slotRecord

	found, err := second.Read(ctx, store.SlotCart, &out)

	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "durable", out.Label)
}
