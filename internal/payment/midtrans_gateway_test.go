package payment

import (
	"bytes"
	"context"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockRoundTripper allows us to mock the HTTP response
type MockRoundTripper func(req *http.Request) *http.Response

func (f MockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req), nil
}

func TestMidtransGateway_CreateSnapToken(t *testing.T) {
	serverKey := "SB-Mid-server-test"
	gw := NewMidtransGateway(serverKey, true).(*midtransGateway)

	req := SnapRequest{
		ReferenceID:   "D10-C1",
		GrossAmount:   50500,
		CustomerName:  "Ahmad",
		CustomerEmail: "ahmad@example.com",
		CustomerPhone: "081234567890",
		ItemName:      "Donasi: Bantu Dhuafa",
	}

	t.Run("Success", func(t *testing.T) {
		respBody := `{"token":"snap-token-abc","redirect_url":"https://app.sandbox.midtrans.com/snap/v4/redirection/snap-token-abc"}`

		gw.httpClient.Transport = MockRoundTripper(func(r *http.Request) *http.Response {
			assert.Equal(t, "POST", r.Method)
			assert.Equal(t, "https://app.sandbox.midtrans.com/snap/v1/transactions", r.URL.String())

			user, _, ok := r.BasicAuth()
			assert.True(t, ok)
			assert.Equal(t, serverKey, user)

			body, _ := io.ReadAll(r.Body)
			var payload map[string]any
			require.NoError(t, json.Unmarshal(body, &payload))

			txn := payload["transaction_details"].(map[string]any)
			assert.Equal(t, "D10-C1", txn["order_id"])
			assert.Equal(t, float64(50500), txn["gross_amount"])

			customer := payload["customer_details"].(map[string]any)
			assert.Equal(t, "6281234567890", customer["phone"])

			return &http.Response{
				StatusCode: http.StatusCreated,
				Body:       io.NopCloser(bytes.NewBufferString(respBody)),
			}
		})

		token, err := gw.CreateSnapToken(context.Background(), req)

		require.NoError(t, err)
		assert.Equal(t, "snap-token-abc", token.Token)
		assert.Contains(t, token.RedirectURL, "redirection")
	})

	t.Run("Gateway error", func(t *testing.T) {
		gw.httpClient.Transport = MockRoundTripper(func(r *http.Request) *http.Response {
			return &http.Response{
				StatusCode: http.StatusUnauthorized,
				Body:       io.NopCloser(bytes.NewBufferString(`{"error_messages":["unauthorized"]}`)),
			}
		})

		_, err := gw.CreateSnapToken(context.Background(), req)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "midtrans error")
	})
}

func TestMidtransGateway_GetStatus(t *testing.T) {
	gw := NewMidtransGateway("SB-Mid-server-test", true).(*midtransGateway)

	t.Run("Settlement", func(t *testing.T) {
		respBody := `{
			"order_id": "D10-C1",
			"transaction_status": "settlement",
			"fraud_status": "accept",
			"payment_type": "qris",
			"gross_amount": "50500.00"
		}`

		gw.httpClient.Transport = MockRoundTripper(func(r *http.Request) *http.Response {
			assert.Equal(t, "GET", r.Method)
			assert.Equal(t, "https://api.sandbox.midtrans.com/v2/D10-C1/status", r.URL.String())

			return &http.Response{
				StatusCode: http.StatusOK,
				Body:       io.NopCloser(bytes.NewBufferString(respBody)),
			}
		})

		status, err := gw.GetStatus(context.Background(), "D10-C1")

		require.NoError(t, err)
		assert.Equal(t, "settlement", status.TransactionStatus)
		assert.Equal(t, "50500.00", status.GrossAmount)
	})

	t.Run("Unknown transaction", func(t *testing.T) {
		gw.httpClient.Transport = MockRoundTripper(func(r *http.Request) *http.Response {
			return &http.Response{
				StatusCode: http.StatusNotFound,
				Body:       io.NopCloser(bytes.NewBufferString(`{"status_code":"404"}`)),
			}
		})

		_, err := gw.GetStatus(context.Background(), "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestMidtransGateway_VerifySignature(t *testing.T) {
	serverKey := "SB-Mid-server-test"
	gw := NewMidtransGateway(serverKey, true)

	n := &Notification{
		OrderID:     "D10-C1",
		StatusCode:  "200",
		GrossAmount: "50500.00",
	}

	sum := sha512.Sum512([]byte(n.OrderID + n.StatusCode + n.GrossAmount + serverKey))
	n.SignatureKey = hex.EncodeToString(sum[:])

	assert.NoError(t, gw.VerifySignature(n))

	n.SignatureKey = "tampered"
	assert.ErrorIs(t, gw.VerifySignature(n), ErrBadSignature)
}

func TestClassifyStatus(t *testing.T) {
	assert.Equal(t, OutcomeSuccess, ClassifyStatus("settlement", ""))
	assert.Equal(t, OutcomeSuccess, ClassifyStatus("capture", "accept"))
	assert.Equal(t, OutcomePending, ClassifyStatus("capture", "challenge"))
	assert.Equal(t, OutcomePending, ClassifyStatus("pending", ""))
	assert.Equal(t, OutcomeFailed, ClassifyStatus("deny", ""))
	assert.Equal(t, OutcomeFailed, ClassifyStatus("cancel", ""))
	assert.Equal(t, OutcomeFailed, ClassifyStatus("expire", ""))
	assert.Equal(t, OutcomeUnknown, ClassifyStatus("refund", ""))

	assert.True(t, OutcomeSuccess.Terminal())
	assert.True(t, OutcomeFailed.Terminal())
	assert.False(t, OutcomePending.Terminal())
}
