package flow_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/kharidoapp/checkout-engine/internal/flow"
	"github.com/kharidoapp/checkout-engine/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestRequireAuth(t *testing.T) {
	t.Run("Signed In Proceeds", func(t *testing.T) {
		outcome := flow.RequireAuth(&models.Principal{ID: uuid.New()})

		assert.True(t, outcome.Proceed())
	})

	t.Run("Signed Out Redirects", func(t *testing.T) {
		outcome := flow.RequireAuth(nil)

		assert.False(t, outcome.Proceed())
		assert.Equal(t, flow.ReasonSignIn, outcome.Redirect)
	})
}

func TestRequireNonEmptyCart(t *testing.T) {
	t.Run("Items Proceed", func(t *testing.T) {
		outcome := flow.RequireNonEmptyCart([]models.CartItem{{ID: "k1"}})

		assert.True(t, outcome.Proceed())
	})

	t.Run("Empty Redirects", func(t *testing.T) {
		outcome := flow.RequireNonEmptyCart(nil)

		assert.False(t, outcome.Proceed())
		assert.Equal(t, flow.ReasonEmptyCart, outcome.Redirect)
	})
}
