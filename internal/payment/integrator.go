// Package payment derives per-listing TurtleCoin integrated addresses.
package payment

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// PaymentIDBytes is the size of a payment id before hex encoding.
const PaymentIDBytes = 32

// Integrator derives an integrated address from a base wallet address and a payment id.
type Integrator interface {
	IntegrateAddress(ctx context.Context, address, paymentID string) (string, error)
}

// NewPaymentID returns 32 cryptographically random bytes, hex encoded.
func NewPaymentID() (string, error) {
	buf := make([]byte, PaymentIDBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate payment id: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// Client calls the TRTL Services API.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

var _ Integrator = (*Client)(nil)

// NewClient creates a TRTL Services client.
func NewClient(baseURL, token string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: timeout},
	}
}

type integrateRequest struct {
	Address   string `json:"address"`
	PaymentID string `json:"paymentId"`
}

// IntegrateAddress asks the service for the integrated address of (address, paymentID).
// It is attempted once.
func (c *Client) IntegrateAddress(ctx context.Context, address, paymentID string) (string, error) {
	payload, err := json.Marshal(integrateRequest{Address: address, PaymentID: paymentID})
	if err != nil {
		return "", fmt.Errorf("marshal integrate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/address/integrate", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build integrate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("integrate address: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read integrate response: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		msg := gjson.GetBytes(body, "message").String()
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return "", fmt.Errorf("integrate address: service returned %d: %s", resp.StatusCode, msg)
	}

	integrated := gjson.GetBytes(body, "address").String()
	if integrated == "" {
		return "", fmt.Errorf("integrate address: response has no address")
	}
	return integrated, nil
}
