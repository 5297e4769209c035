package lib

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestClient(host string) *WebpayClient {
	return &WebpayClient{
		Host:         host,
		CommerceCode: "597055555532",
		APIKey:       "test-api-key",
		HTTPClient:   &http.Client{Timeout: 5 * time.Second},
	}
}

func TestCreateTransaction(t *testing.T) {
	var gotReq WebpayCreateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/transactions", r.URL.Path)
		assert.Equal(t, "597055555532", r.Header.Get("Tbk-Api-Key-Id"))
		assert.Equal(t, "test-api-key", r.Header.Get("Tbk-Api-Key-Secret"))
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("could not decode request body: %s", err.Error())
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"token":"01abc","url":"https://webpay.example/init"}`))
	}))
	defer srv.Close()

	wc := newTestClient(srv.URL)
	res, err := wc.CreateTransaction(context.Background(), &WebpayCreateRequest{
		BuyOrder:  "RB-7-123456",
		SessionID: "pago-arriendo-espacio-3",
		Amount:    1500,
		ReturnURL: "https://api.example/api/v1/payments/webpay/return",
	})
	assert.NoError(t, err)
	assert.Equal(t, "01abc", res.Token)
	assert.Equal(t, "https://webpay.example/init", res.URL)
	assert.Equal(t, "RB-7-123456", gotReq.BuyOrder)
	assert.Equal(t, int64(1500), gotReq.Amount)
}

func TestCreateTransactionMissingToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"url":"https://webpay.example/init"}`))
	}))
	defer srv.Close()

	wc := newTestClient(srv.URL)
	_, err := wc.CreateTransaction(context.Background(), &WebpayCreateRequest{BuyOrder: "RB-1-1", SessionID: "s", Amount: 100, ReturnURL: "r"})
	assert.Error(t, err)
	gwErr, ok := err.(*GatewayError)
	assert.True(t, ok)
	assert.Contains(t, gwErr.Raw, "webpay.example")
}

func TestCreateTransactionRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"error_message":"buy_order exceeds max length"}`))
	}))
	defer srv.Close()

	wc := newTestClient(srv.URL)
	_, err := wc.CreateTransaction(context.Background(), &WebpayCreateRequest{BuyOrder: "x", SessionID: "s", Amount: 100, ReturnURL: "r"})
	gwErr, ok := err.(*GatewayError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusUnprocessableEntity, gwErr.StatusCode)
	assert.Contains(t, gwErr.Raw, "buy_order exceeds max length")
}

func TestCommitTransaction(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/transactions/01abc", r.URL.Path)
		assert.Equal(t, "597055555532", r.Header.Get("Tbk-Api-Key-Id"))
		w.Write([]byte(`{"status":"AUTHORIZED","authorization_code":"X1","payment_type_code":"VN","amount":1500,"buy_order":"RB-7-123456"}`))
	}))
	defer srv.Close()

	wc := newTestClient(srv.URL)
	res, err := wc.CommitTransaction(context.Background(), "01abc")
	assert.NoError(t, err)
	assert.Equal(t, "AUTHORIZED", res.Status)
	assert.Equal(t, "X1", res.AuthorizationCode)
	assert.Equal(t, "VN", res.PaymentTypeCode)
	assert.Equal(t, int64(1500), res.Amount)
	assert.Equal(t, "RB-7-123456", res.BuyOrder)
}

func TestCommitTransactionMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>maintenance</html>`))
	}))
	defer srv.Close()

	wc := newTestClient(srv.URL)
	res, err := wc.CommitTransaction(context.Background(), "01abc")
	assert.NoError(t, err)
	assert.Equal(t, "", res.Status)
}

func TestCommitTransactionFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error_message":"Not authorized"}`))
	}))
	defer srv.Close()

	wc := newTestClient(srv.URL)
	_, err := wc.CommitTransaction(context.Background(), "01abc")
	gwErr, ok := err.(*GatewayError)
	assert.True(t, ok)
	assert.Equal(t, "commit", gwErr.Op)
	assert.Contains(t, gwErr.Raw, "Not authorized")
}
