package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

// Gateway talks to the hosted payment provider over JSON.
type Gateway struct {
	storeID  int
	authKey  string
	apiURL   string
	testMode int
	client   *http.Client
}

// NewGatewayFromEnv builds a Gateway from PAYMENT_* environment variables.
// PAYMENT_MODE=sandbox or dev flips the test flag on the live endpoint.
func NewGatewayFromEnv() (*Gateway, error) {
	storeID, _ := strconv.Atoi(os.Getenv("PAYMENT_STORE_ID"))
	authKey := os.Getenv("PAYMENT_AUTH_KEY")
	apiURL := os.Getenv("PAYMENT_API_URL")

	testMode := 0
	mode := strings.ToLower(os.Getenv("PAYMENT_MODE"))
	if mode == "sandbox" || mode == "dev" {
		testMode = 1
	}

	if storeID == 0 || authKey == "" || apiURL == "" {
		return nil, fmt.Errorf("payment gateway configuration missing")
	}

	return &Gateway{
		storeID:  storeID,
		authKey:  authKey,
		apiURL:   apiURL,
		testMode: testMode,
		client:   &http.Client{Timeout: 10 * time.Second},
	}, nil
}

type gatewayResponse struct {
	Transaction struct {
		Status    string `json:"status"`
		Reference string `json:"reference"`
	} `json:"transaction"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Authorize sends an authorization request and classifies the outcome as
// declined or provider failure. A timeout surfaces as ErrProvider.
func (g *Gateway) Authorize(ctx context.Context, amountMinorUnits int64, currency, methodRef string) (Result, error) {
	payload := map[string]interface{}{
		"method":  "authorize",
		"store":   g.storeID,
		"authkey": g.authKey,
		"transaction": map[string]interface{}{
			"test":      g.testMode,
			"amount":    amountMinorUnits,
			"currency":  currency,
			"methodref": methodRef,
		},
	}

	jsonData, _ := json.Marshal(payload)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrProvider, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("%w: failed to reach gateway: %v", ErrProvider, err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("%w: gateway returned %d: %s", ErrProvider, resp.StatusCode, string(body))
	}

	var gr gatewayResponse
	if err := json.Unmarshal(body, &gr); err != nil {
		return Result{}, fmt.Errorf("%w: failed to parse gateway response: %v", ErrProvider, err)
	}
	if gr.Error != nil {
		return Result{}, fmt.Errorf("%w: %s (%s)", ErrProvider, gr.Error.Message, gr.Error.Code)
	}

	result := Result{Status: gr.Transaction.Status, Reference: gr.Transaction.Reference}
	switch strings.ToLower(gr.Transaction.Status) {
	case "authorized", "paid":
		return result, nil
	case "declined":
		return Result{}, fmt.Errorf("%w: reference %s", ErrDeclined, gr.Transaction.Reference)
	default:
		return Result{}, fmt.Errorf("%w: unexpected status %q", ErrProvider, gr.Transaction.Status)
	}
}
