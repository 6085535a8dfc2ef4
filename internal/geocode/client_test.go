package geocode_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/kharidoapp/checkout-engine/internal/config"
	"github.com/kharidoapp/checkout-engine/internal/geocode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *geocode.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return geocode.NewClient(&config.Geocoder{BaseURL: server.URL, Timeout: 2 * time.Second})
}

func TestReverse(t *testing.T) {
	ctx := t.Context()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/reverse", r.URL.Path)
			assert.Equal(t, "jsonv2", r.URL.Query().Get("format"))
			assert.Equal(t, "12.97", r.URL.Query().Get("lat"))
			assert.Equal(t, "77.59", r.URL.Query().Get("lon"))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"address":{"road":"MG Road","city":"Bengaluru","postcode":"560001"}}`))
		})

		// Act
		result, err := client.Reverse(ctx, 12.97, 77.59)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "MG Road", result.Street)
		assert.Equal(t, "Bengaluru", result.City)
		assert.Equal(t, "560001", result.Pincode)
	})

	t.Run("Partial Address Leaves Blanks", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"address":{"city":"Bengaluru"}}`))
		})

		result, err := client.Reverse(ctx, 12.97, 77.59)

		require.NoError(t, err)
		assert.Empty(t, result.Street)
		assert.Equal(t, "Bengaluru", result.City)
		assert.Empty(t, result.Pincode)
	})

	t.Run("Error - Provider Failure", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "rate limited", http.StatusTooManyRequests)
		})

		result, err := client.Reverse(ctx, 12.97, 77.59)

		require.Error(t, err)
		assert.Nil(t, result)
		assert.Contains(t, err.Error(), "429")
	})

	t.Run("Error - Malformed Body", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("not json"))
		})

		result, err := client.Reverse(ctx, 12.97, 77.59)

		require.Error(t, err)
		assert.Nil(t, result)
	})
}
