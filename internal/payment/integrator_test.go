package payment

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPaymentID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id, err := NewPaymentID()
		require.NoError(t, err)
		assert.Len(t, id, 64)

		raw, err := hex.DecodeString(id)
		require.NoError(t, err)
		assert.Len(t, raw, PaymentIDBytes)

		assert.False(t, seen[id], "payment id repeated")
		seen[id] = true
	}
}

func TestClient_IntegrateAddress(t *testing.T) {
	var got integrateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/address/integrate", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"address":"TRTLintegrated123"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/v1/", "secret", time.Second)
	addr, err := c.IntegrateAddress(context.Background(), "TRTLbase", "abcd")

	require.NoError(t, err)
	assert.Equal(t, "TRTLintegrated123", addr)
	assert.Equal(t, "TRTLbase", got.Address)
	assert.Equal(t, "abcd", got.PaymentID)
}

func TestClient_IntegrateAddressFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		errMsg string
	}{
		{"service error", http.StatusBadRequest, `{"message":"invalid address"}`, "invalid address"},
		{"missing address", http.StatusOK, `{}`, "no address"},
		{"server error without body", http.StatusBadGateway, ``, "Bad Gateway"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls++
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := NewClient(srv.URL, "", time.Second)
			_, err := c.IntegrateAddress(context.Background(), "TRTLbase", "abcd")

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
			assert.Equal(t, 1, calls, "integrator must not retry")
		})
	}
}
