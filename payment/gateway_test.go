package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGateway(t *testing.T, url string) *Gateway {
	t.Helper()
	t.Setenv("PAYMENT_STORE_ID", "12345")
	t.Setenv("PAYMENT_AUTH_KEY", "test-key")
	t.Setenv("PAYMENT_API_URL", url)
	t.Setenv("PAYMENT_MODE", "sandbox")

	gateway, err := NewGatewayFromEnv()
	require.NoError(t, err)
	return gateway
}

func TestNewGatewayFromEnvMissingConfig(t *testing.T) {
	t.Setenv("PAYMENT_STORE_ID", "")
	t.Setenv("PAYMENT_AUTH_KEY", "")
	t.Setenv("PAYMENT_API_URL", "")

	_, err := NewGatewayFromEnv()
	assert.Error(t, err)
}

func TestAuthorizeSuccess(t *testing.T) {
	var captured map[string]interface{}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"transaction": map[string]interface{}{"status": "authorized", "reference": "txn-42"},
		})
	}))
	defer ts.Close()

	gateway := newTestGateway(t, ts.URL)
	result, err := gateway.Authorize(context.Background(), 3998, "USD", "pm-1")
	require.NoError(t, err)

	assert.Equal(t, "authorized", result.Status)
	assert.Equal(t, "txn-42", result.Reference)

	// request carried store credentials and the transaction body
	assert.EqualValues(t, 12345, captured["store"])
	txn := captured["transaction"].(map[string]interface{})
	assert.EqualValues(t, 3998, txn["amount"])
	assert.Equal(t, "USD", txn["currency"])
	assert.Equal(t, "pm-1", txn["methodref"])
	assert.EqualValues(t, 1, txn["test"]) // sandbox mode
}

func TestAuthorizeDeclined(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"transaction": map[string]interface{}{"status": "declined", "reference": "txn-43"},
		})
	}))
	defer ts.Close()

	gateway := newTestGateway(t, ts.URL)
	_, err := gateway.Authorize(context.Background(), 100, "USD", "pm-1")
	assert.ErrorIs(t, err, ErrDeclined)
}

func TestAuthorizeProviderError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]interface{}{"code": "E101", "message": "store disabled"},
		})
	}))
	defer ts.Close()

	gateway := newTestGateway(t, ts.URL)
	_, err := gateway.Authorize(context.Background(), 100, "USD", "pm-1")
	assert.ErrorIs(t, err, ErrProvider)
}

func TestAuthorizeNon200(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer ts.Close()

	gateway := newTestGateway(t, ts.URL)
	_, err := gateway.Authorize(context.Background(), 100, "USD", "pm-1")
	assert.ErrorIs(t, err, ErrProvider)
}

func TestAuthorizeMalformedResponse(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer ts.Close()

	gateway := newTestGateway(t, ts.URL)
	_, err := gateway.Authorize(context.Background(), 100, "USD", "pm-1")
	assert.ErrorIs(t, err, ErrProvider)
}

func TestAuthorizeUnreachableGateway(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close() // shut down before the call

	gateway := newTestGateway(t, ts.URL)
	_, err := gateway.Authorize(context.Background(), 100, "USD", "pm-1")
	assert.ErrorIs(t, err, ErrProvider)
}

func TestAuthorizeContextTimeout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer ts.Close()

	gateway := newTestGateway(t, ts.URL)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := gateway.Authorize(ctx, 100, "USD", "pm-1")
	assert.ErrorIs(t, err, ErrProvider)
}
