package payment

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soldera/orderpay/internal/domain/money"
)

type providerRequest struct {
	OrderID  string `json:"order_id"`
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

func TestProvider_ChargeSuccess(t *testing.T) {
	var got providerRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/charges", r.URL.Path)

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"transaction_id":"txn-42","message":"Payment processed successfully"}`))
	}))
	defer srv.Close()

	p := NewProvider(srv.URL, WithHTTPClient(srv.Client()))
	amount, err := money.FromString("38.45", "USD")
	require.NoError(t, err)

	out, err := p.Charge(context.Background(), "order-1", amount)
	require.NoError(t, err)

	assert.True(t, out.Success)
	assert.Equal(t, "txn-42", out.TransactionID)
	assert.Equal(t, providerRequest{OrderID: "order-1", Amount: "38.45", Currency: "USD"}, got)
}

func TestProvider_ChargeDeclined(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"transaction_id":"txn-43","message":"insufficient funds"}`))
	}))
	defer srv.Close()

	p := NewProvider(srv.URL, WithHTTPClient(srv.Client()))
	amount, err := money.FromString("10.00", "USD")
	require.NoError(t, err)

	out, err := p.Charge(context.Background(), "order-1", amount)
	require.NoError(t, err, "a decline is an outcome, not an error")

	assert.False(t, out.Success)
	assert.Equal(t, "insufficient funds", out.Message)
}

func TestProvider_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	p := NewProvider(srv.URL, WithHTTPClient(srv.Client()))
	amount, err := money.FromString("10.00", "USD")
	require.NoError(t, err)

	_, err = p.Charge(context.Background(), "order-1", amount)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestProvider_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"success":`))
	}))
	defer srv.Close()

	p := NewProvider(srv.URL, WithHTTPClient(srv.Client()))
	amount, err := money.FromString("10.00", "USD")
	require.NoError(t, err)

	_, err = p.Charge(context.Background(), "order-1", amount)
	require.Error(t, err)
}
