package store_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/kharidoapp/checkout-engine/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedisStore(t *testing.T) (store.Store, redismock.ClientMock) {
	t.Helper()

	client, mock := redismock.NewClientMock()

	return store.NewRedisStore(client), mock
}

func TestRedisStoreRead(t *testing.T) {
	ctx := t.Context()
	record := slotRecord{Label: "cart", Count: 2}
	jsonData, err := json.Marshal(record)
	require.NoError(t, err)

	t.Run("Success - Slot Found", func(t *testing.T) {
		// Arrange
		st, mock := setupRedisStore(t)
		mock.ExpectGet(store.SlotCart).SetVal(string(jsonData))

		var out slotRecord

		// Act
		found, err := st.Read(ctx, store.SlotCart, &out)

		// Assert
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, record, out)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Missing Slot Reads As Absent", func(t *testing.T) {
		st, mock := setupRedisStore(t)
		mock.ExpectGet(store.SlotCart).RedisNil()

		var out slotRecord

		found, err := st.Read(ctx, store.SlotCart, &out)

		require.NoError(t, err)
		assert.False(t, found)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Malformed Value Reads As Absent", func(t *testing.T) {
		st, mock := setupRedisStore(t)
		mock.ExpectGet(store.SlotCart).SetVal("{not json")

		var out slotRecord

		found, err := st.Read(ctx, store.SlotCart, &out)

		require.NoError(t, err)
		assert.False(t, found)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Error - Connection Failure", func(t *testing.T) {
		st, mock := setupRedisStore(t)
		mock.ExpectGet(store.SlotCart).SetErr(errors.New("connection refused"))

		var out slotRecord

		found, err := st.Read(ctx, store.SlotCart, &out)

		require.Error(t, err)
		assert.False(t, found)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRedisStoreWrite(t *testing.T) {
	ctx := t.Context()
	record := slotRecord{Label: "orders", Count: 1}
	jsonData, err := json.Marshal(record)
	require.NoError(t, err)

	t.Run("Success - No Expiry", func(t *testing.T) {
		// Arrange
		st, mock := setupRedisStore(t)
		mock.ExpectSet(store.SlotOrders, jsonData, 0).SetVal("OK")

		// Act
		err := st.Write(ctx, store.SlotOrders, record)

		// Assert
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Error - Set Failure", func(t *testing.T) {
		st, mock := setupRedisStore(t)
		mock.ExpectSet(store.SlotOrders, jsonData, 0).SetErr(errors.New("readonly replica"))

		err := st.Write(ctx, store.SlotOrders, record)

		require.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRedisStoreDelete(t *testing.T) {
	ctx := t.Context()

	t.Run("Success", func(t *testing.T) {
		st, mock := setupRedisStore(t)
		mock.ExpectDel(store.SlotSaved).SetVal(1)

		require.NoError(t, st.Delete(ctx, store.SlotSaved))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Error - Del Failure", func(t *testing.T) {
		st, mock := setupRedisStore(t)
		mock.ExpectDel(store.SlotSaved).SetErr(errors.New("connection refused"))

		require.Error(t, st.Delete(ctx, store.SlotSaved))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
