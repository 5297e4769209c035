package lib

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"rentabarrio/src/config"
)

// WebpayClient Thin client over the Webpay REST API. Both calls carry the
// commerce credentials as headers; the transaction token is the only state.
type WebpayClient struct {
	Host         string
	CommerceCode string
	APIKey       string
	HTTPClient   *http.Client
}

var webpayClient *WebpayClient

func GetWebpayClient() *WebpayClient {
	if webpayClient != nil {
		return webpayClient
	}
	wc := &WebpayClient{
		Host:         config.WebpayHost(),
		CommerceCode: config.WebpayCommerceCode(),
		APIKey:       config.WebpayAPIKey(),
		HTTPClient:   &http.Client{Timeout: 30 * time.Second},
	}
	webpayClient = wc
	return wc
}

// NewWebpayClient Replace gateway instance with custom client implementation
func NewWebpayClient(c *WebpayClient) *WebpayClient {
	webpayClient = c
	return webpayClient
}

type WebpayCreateRequest struct {
	BuyOrder  string `json:"buy_order"`
	SessionID string `json:"session_id"`
	Amount    int64  `json:"amount"`
	ReturnURL string `json:"return_url"`
}

type WebpayCreateResponse struct {
	Token string `json:"token"`
	URL   string `json:"url"`
}

type WebpayCommitResponse struct {
	Status            string `json:"status"`
	AuthorizationCode string `json:"authorization_code"`
	PaymentTypeCode   string `json:"payment_type_code"`
	Amount            int64  `json:"amount"`
	BuyOrder          string `json:"buy_order"`
}

// GatewayError Non-success response from Webpay. Raw keeps the gateway's
// payload untouched for diagnostics.
type GatewayError struct {
	Op         string
	StatusCode int
	Raw        string
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("webpay %s failed with status %d: %s", e.Op, e.StatusCode, e.Raw)
}

func (c *WebpayClient) do(ctx context.Context, method string, path string, payload any) (int, []byte, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, err
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.Host+path, body)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Tbk-Api-Key-Id", c.CommerceCode)
	req.Header.Set("Tbk-Api-Key-Secret", c.APIKey)
	req.Header.Set("Content-Type", "application/json")
	hc := c.HTTPClient
	if hc == nil {
		hc = http.DefaultClient
	}
	res, err := hc.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer res.Body.Close()
	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return res.StatusCode, nil, err
	}
	return res.StatusCode, raw, nil
}

// CreateTransaction Opens a payment session for one order. A missing token in
// an otherwise successful response is treated the same as a rejection.
func (c *WebpayClient) CreateTransaction(ctx context.Context, params *WebpayCreateRequest) (*WebpayCreateResponse, error) {
	status, raw, err := c.do(ctx, http.MethodPost, "/transactions", params)
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, &GatewayError{Op: "create", StatusCode: status, Raw: string(raw)}
	}
	var out WebpayCreateResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, &GatewayError{Op: "create", StatusCode: status, Raw: string(raw)}
	}
	if out.Token == "" {
		log.Printf("[webpay] create response is missing a token: %s\n", string(raw))
		return nil, &GatewayError{Op: "create", StatusCode: status, Raw: string(raw)}
	}
	return &out, nil
}

// CommitTransaction Exchanges a token for the final authorization outcome.
// Repeating the call for an already-committed token is the gateway's problem,
// not ours; whatever it answers is the authoritative state.
func (c *WebpayClient) CommitTransaction(ctx context.Context, token string) (*WebpayCommitResponse, error) {
	status, raw, err := c.do(ctx, http.MethodPut, "/transactions/"+token, nil)
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, &GatewayError{Op: "commit", StatusCode: status, Raw: string(raw)}
	}
	var out WebpayCommitResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		// An unreadable success body carries no authorization; the empty
		// status downgrades the payment instead of failing the call.
		log.Printf("[webpay] commit response is not valid JSON: %s\n", string(raw))
		return &WebpayCommitResponse{}, nil
	}
	return &out, nil
}
