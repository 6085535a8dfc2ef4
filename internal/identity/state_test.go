package identity_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/kharidoapp/checkout-engine/internal/identity"
	"github.com/kharidoapp/checkout-engine/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateCurrent(t *testing.T) {
	state := identity.NewState()

	assert.Nil(t, state.Current(), "nobody is signed in initially")

	principal := &models.Principal{ID: uuid.New(), Email: "a@example.com"}
	state.Set(principal)

	require.NotNil(t, state.Current())
	assert.Equal(t, principal.ID, state.Current().ID)

	state.Set(nil)

	assert.Nil(t, state.Current(), "sign-out clears the cell")
}

func TestStateNotifications(t *testing.T) {
	state := identity.NewState()

	var seen []*models.Principal

	unsubscribe := state.Subscribe(func(p *models.Principal) {
		seen = append(seen, p)
	})

	principal := &models.Principal{ID: uuid.New()}

	t.Run("Sign-In Notifies", func(t *testing.T) {
		state.Set(principal)

		require.Len(t, seen, 1)
		assert.Equal(t, principal.ID, seen[0].ID)
	})

	t.Run("Same Principal Is Silent", func(t *testing.T) {
		state.Set(&models.Principal{ID: principal.ID, Email: "same@example.com"})

		assert.Len(t, seen, 1)
	})

	t.Run("Identity Change Notifies", func(t *testing.T) {
		other := &models.Principal{ID: uuid.New()}
		state.Set(other)

		require.Len(t, seen, 2)
		assert.Equal(t, other.ID, seen[1].ID)
	})

	t.Run("Sign-Out Notifies With Nil", func(t *testing.T) {
		state.Set(nil)

		require.Len(t, seen, 3)
		assert.Nil(t, seen[2])
	})

	t.Run("Unsubscribe Stops Delivery", func(t *testing.T) {
		unsubscribe()
		unsubscribe() // second call is harmless

		state.Set(principal)

		assert.Len(t, seen, 3)
	})
}
