package sendgrid_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kharidoapp/checkout-engine/internal/models"
	sendgrid_client "github.com/kharidoapp/checkout-engine/pkg/sendgrid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmailService(t *testing.T) {
	service := sendgrid_client.NewEmailService("test-api-key", "orders@example.com", "Checkout Engine")

	assert.NotNil(t, service)
}

type sendgridV3Payload struct {
	Personalizations []struct {
		To      []map[string]string `json:"to"`
		Subject string              `json:"subject"`
	} `json:"personalizations"`
	From    map[string]string `json:"from"`
	Content []struct {
		Type  string `json:"type"`
		Value string `json:"value"`
	} `json:"content"`
}

func testOrder() *models.Order {
	return &models.Order{
		ID:      uuid.MustParse("33333333-3333-3333-3333-333333333333"),
		OwnerID: uuid.New(),
		Items: []models.CartItem{
			{ID: "k1", Title: "Kettle", Price: 500, Quantity: 1},
			{ID: "k2", Title: "Mug", Price: 300, Quantity: 2},
		},
		Address:       models.Address{Name: "A", Street: "B", City: "C", Pincode: "D"},
		Total:         1100,
		PaymentMethod: models.PaymentMethodCOD,
		Status:        models.OrderStatusConfirmedCOD,
		CreatedAt:     time.Now().UTC(),
	}
}

func TestSendOrderConfirmation(t *testing.T) {
	apiKey := "SG.test-api-key"
	ctx := t.Context()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		var payload sendgridV3Payload

		mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "Bearer "+apiKey, r.Header.Get("Authorization"))

			body, err := io.ReadAll(r.Body)
			require.NoError(t, err)
			require.NoError(t, json.Unmarshal(body, &payload))

			w.WriteHeader(http.StatusAccepted)
		}))
		defer mockServer.Close()

		service := sendgrid_client.NewEmailService(apiKey, "orders@example.com", "Checkout Engine")
		service.GetSendGridClient().Request.BaseURL = mockServer.URL

		// Act
		err := service.SendOrderConfirmation(ctx, "buyer@example.com", testOrder())

		// Assert
		require.NoError(t, err)
		require.Len(t, payload.Personalizations, 1)
		assert.Equal(t, "buyer@example.com", payload.Personalizations[0].To[0]["email"])
		assert.Equal(t, "Order confirmed: 33333333-3333-3333-3333-333333333333", payload.Personalizations[0].Subject)
		assert.Equal(t, "orders@example.com", payload.From["email"])

		require.Len(t, payload.Content, 1)
		assert.Equal(t, "text/plain", payload.Content[0].Type)
		assert.Contains(t, payload.Content[0].Value, "2 item(s)")
		assert.Contains(t, payload.Content[0].Value, "1100.00")
	})

	t.Run("Failure - Provider Error Status", func(t *testing.T) {
		mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer mockServer.Close()

		service := sendgrid_client.NewEmailService(apiKey, "orders@example.com", "Checkout Engine")
		service.GetSendGridClient().Request.BaseURL = mockServer.URL

		err := service.SendOrderConfirmation(ctx, "buyer@example.com", testOrder())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "status code: 500")
	})
}
