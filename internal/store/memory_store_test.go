package store_test

import (
	"testing"

	"github.com/kharidoapp/checkout-engine/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type slotRecord struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

func TestMemoryStore(t *testing.T) {
	st := store.NewMemoryStore()
	ctx := t.Context()

	t.Run("Missing Slot Reads As Absent", func(t *testing.T) {
		var out slotRecord

		found, err := st.Read(ctx, "nowhere", &out)

		require.NoError(t, err)
		assert.False(t, found)
		assert.Zero(t, out)
	})

	t.Run("Round Trip", func(t *testing.T) {
		in := slotRecord{Label: "cart", Count: 2}

		require.NoError(t, st.Write(ctx, store.SlotCart, in))

		var out slotRecord

		found, err := st.Read(ctx, store.SlotCart, &out)

		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, in, out)
	})

	t.Run("Write Replaces The Whole Value", func(t *testing.T) {
		require.NoError(t, st.Write(ctx, store.SlotCart, slotRecord{Label: "second"}))

		var out slotRecord

		found, err := st.Read(ctx, store.SlotCart, &out)

		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "second", out.Label)
		assert.Zero(t, out.Count)
	})

	t.Run("Malformed Value Reads As Absent", func(t *testing.T) {
		require.NoError(t, st.Write(ctx, store.SlotOrders, "not an order list"))

		var out []slotRecord

		found, err := st.Read(ctx, store.SlotOrders, &out)

		require.NoError(t, err, "malformed data is discarded, never surfaced")
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

	t.Run("Read Hands Out Copies", func(t *testing.T) {
		require.NoError(t, st.Write(ctx, "copies", slotRecord{Label: "original"}))

		var first slotRecord

		_, err := st.Read(ctx, "copies", &first)
		require.NoError(t, err)

		first.Label = "mutated"

		var second slotRecord

		_, err = st.Read(ctx, "copies", &second)
		require.NoError(t, err)
		assert.Equal(t, "original", second.Label)
	})
}

func TestSellerCatalogSlot(t *testing.T) {
	assert.Equal(t, "products:abc", store.SellerCatalogSlot("abc"))
}
